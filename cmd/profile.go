package cmd

import (
	"strings"

	"github.com/JustAGod1/wifi-dumper/report"
	"github.com/JustAGod1/wifi-dumper/sink"
)

// profile models the YAML file describing one router: how to reach it, which
// command prints the hotspot table, how that table is laid out, what to
// extract from it and where to publish the result. Every section is optional;
// missing values fall back to defaultProfile.
type profile struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	SSHHost     sshHost         `yaml:"ssh_host,omitempty"`
	Report      commandEntry    `yaml:"report,omitempty"`
	Parser      parserSettings  `yaml:"parser,omitempty"`
	Extract     extractSettings `yaml:"extract,omitempty"`
	Sink        sinkSettings    `yaml:"sink,omitempty"`
}

// sshHost describes the router connection when not provided via CLI flags.
// CLI flags take precedence over these values when set.
type sshHost struct {
	IP   string `yaml:"ip"`
	User string `yaml:"user"`
}

// parserSettings describes the indentation convention of the dump.
// RootColumn is a pointer because 0 is a meaningful value.
type parserSettings struct {
	IndentStep int  `yaml:"indent_step,omitempty"`
	RootColumn *int `yaml:"root_column,omitempty"`
}

type extractSettings struct {
	Group     string `yaml:"group,omitempty"`
	IDField   string `yaml:"id_field,omitempty"`
	FlagField string `yaml:"flag_field,omitempty"`
	FlagValue string `yaml:"flag_value,omitempty"`
}

type sinkSettings struct {
	RedisAddr string `yaml:"redis_addr,omitempty"`
	RedisDB   int    `yaml:"redis_db,omitempty"`
	Key       string `yaml:"key,omitempty"`
}

// defaultProfile matches a stock Keenetic router on its default address.
func defaultProfile() *profile {
	p := &profile{
		Name:        "keenetic",
		Description: "Active hotspot hosts of the home router",
	}
	p.applyDefaults()
	return p
}

// applyDefaults fills every unset field.
func (p *profile) applyDefaults() {
	if strings.TrimSpace(p.SSHHost.IP) == "" {
		p.SSHHost.IP = "192.168.1.1"
	}
	if strings.TrimSpace(p.SSHHost.User) == "" {
		p.SSHHost.User = "admin"
	}
	if strings.TrimSpace(p.Report.Command) == "" {
		p.Report.Command = "show ip hotspot"
	}
	if p.Parser.IndentStep == 0 {
		p.Parser.IndentStep = report.DefaultStep
	}
	if p.Parser.RootColumn == nil {
		root := report.DefaultRootColumn
		p.Parser.RootColumn = &root
	}
	q := report.DefaultQuery
	if p.Extract.Group == "" {
		p.Extract.Group = q.Group
	}
	if p.Extract.IDField == "" {
		p.Extract.IDField = q.IDField
	}
	if p.Extract.FlagField == "" {
		p.Extract.FlagField = q.FlagField
	}
	if p.Extract.FlagValue == "" {
		p.Extract.FlagValue = q.FlagValue
	}
	if p.Sink.RedisAddr == "" {
		p.Sink.RedisAddr = "127.0.0.1:6379"
	}
	if p.Sink.Key == "" {
		p.Sink.Key = "mac_addresses"
	}
}

// target returns the SSH address, adding port 22 when the profile has none.
func (p *profile) target() string {
	host := strings.TrimSpace(p.SSHHost.IP)
	if strings.Contains(host, ":") {
		return host
	}
	return host + ":22"
}

func (p *profile) builder() report.Builder {
	return report.Builder{Step: p.Parser.IndentStep, RootColumn: *p.Parser.RootColumn}
}

func (p *profile) query() report.Query {
	return report.Query{
		Group:     p.Extract.Group,
		IDField:   p.Extract.IDField,
		FlagField: p.Extract.FlagField,
		FlagValue: p.Extract.FlagValue,
	}
}

func (p *profile) redisOptions() sink.Options {
	return sink.Options{Addr: p.Sink.RedisAddr, DB: p.Sink.RedisDB}
}
