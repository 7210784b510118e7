package cmd

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlSnapshot is the --out file: what was published, where and when.
type yamlSnapshot struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Generated   string   `yaml:"generated"`
	Target      string   `yaml:"target"`
	Command     string   `yaml:"command"`
	Key         string   `yaml:"key"`
	Count       int      `yaml:"count"`
	Active      []string `yaml:"active"`
}

func newYAMLSnapshot(p *profile, active []string, at time.Time) *yamlSnapshot {
	if active == nil {
		active = []string{}
	}
	return &yamlSnapshot{
		Name:        p.Name,
		Description: p.Description,
		Generated:   at.Format(time.RFC3339),
		Target:      p.target(),
		Command:     p.Report.line(),
		Key:         p.Sink.Key,
		Count:       len(active),
		Active:      active,
	}
}

// writeYAMLSnapshot encodes s with two-space indentation.
func writeYAMLSnapshot(w io.Writer, s *yamlSnapshot) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		_ = enc.Close()
		return err
	}
	_ = enc.Close()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
