package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. WIFI_DUMPER_PASSWORD.
const envPrefix = "WIFI_DUMPER"

// init configures the root command's persistent flags, binds them to
// environment variables via Viper, and registers all subcommands.
func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgProfile, "profile", "p", "", "Path to YAML profile (router, parser and sink settings)")
	pf.StringVarP(&cfgTarget, "target", "t", "", "Router address host:port (default from profile, 192.168.1.1:22)")
	pf.StringVarP(&cfgUser, "user", "u", "", "SSH username (default from profile, admin)")
	pf.StringVar(&cfgPassword, "password", "", "SSH password (or set WIFI_DUMPER_PASSWORD)")
	pf.StringVar(&cfgKeyPath, "key", "", "Path to SSH private key (PEM, OpenSSH)")
	pf.StringVar(&cfgPassphrase, "passphrase", "", "Private key passphrase (or set WIFI_DUMPER_PASSPHRASE)")
	pf.StringVar(&cfgKnownHosts, "known-hosts", filepath.Join(os.Getenv("HOME"), ".ssh", "known_hosts"), "Path to known_hosts file")
	pf.BoolVar(&cfgStrictHost, "strict-host-key", true, "Require host key verification (disable to accept any host key)")
	pf.DurationVar(&cfgTimeout, "cmd-timeout", 30*time.Second, "Report command timeout (e.g., 30s). 0 disables")
	pf.DurationVar(&cfgConnTimeout, "conn-timeout", 15*time.Second, "Connection timeout")
	pf.BoolVarP(&cfgVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&cfgRedisAddr, "redis-addr", "", "Redis address host:port (default from profile, 127.0.0.1:6379)")
	pf.StringVar(&cfgRedisPassword, "redis-password", "", "Redis password (or set WIFI_DUMPER_REDIS_PASSWORD)")
	pf.IntVar(&cfgRedisDB, "redis-db", -1, "Redis database number (default from profile, 0)")
	pf.StringVar(&cfgRedisKey, "redis-key", "", "Redis set receiving the MAC addresses (default from profile, mac_addresses)")
	pf.StringVarP(&cfgOutPath, "out", "o", "", "Also write the latest result as a YAML snapshot to this path")
	pf.StringVar(&cfgRawOut, "raw-out", "", "Append every raw report fetched from the router to this file")

	syncCmd.Flags().BoolVar(&cfgDryRun, "dry-run", false, "Print the active MAC addresses instead of writing Redis")

	watchCmd.Flags().DurationVar(&cfgInterval, "interval", 10*time.Second, "Delay between polls")
	watchCmd.Flags().StringVar(&cfgMetricsListen, "metrics-listen", "", "Serve Prometheus metrics on this address (e.g., :9310)")
	watchCmd.Flags().BoolVar(&cfgPersistentShell, "persistent-shell", false, "Reuse one PTY shell for all polls (router must expose a POSIX shell)")

	parseCmd.Flags().StringVarP(&cfgInPath, "in", "i", "", "Saved report to parse (default stdin)")
	parseCmd.Flags().BoolVar(&cfgTree, "tree", false, "Print the parsed tree instead of the active MAC addresses")

	bindConfig()

	// Pull in environment overrides on init
	cobra.OnInitialize(applyEnvOverrides)

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(verifyCmd)
}

// bindConfig binds the flags to Viper keys and enables environment lookup.
func bindConfig() {
	pf := rootCmd.PersistentFlags()
	for _, name := range []string{
		"profile", "target", "user", "password", "key", "passphrase", "known-hosts", "strict-host-key",
		"cmd-timeout", "conn-timeout", "verbose", "redis-addr", "redis-password", "redis-db", "redis-key",
		"out", "raw-out",
	} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
	_ = viper.BindPFlag("interval", watchCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("metrics-listen", watchCmd.Flags().Lookup("metrics-listen"))

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// applyEnvOverrides copies values Viper found in the environment into the
// cfg* globals. Flags given on the command line are already reflected by
// Viper, so they keep precedence.
func applyEnvOverrides() {
	setString := func(dst *string, key string) {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) {
		if v := viper.GetString(key); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	setString(&cfgProfile, "profile")
	setString(&cfgTarget, "target")
	setString(&cfgUser, "user")
	setString(&cfgPassword, "password")
	setString(&cfgKeyPath, "key")
	setString(&cfgPassphrase, "passphrase")
	setString(&cfgKnownHosts, "known-hosts")
	setString(&cfgRedisAddr, "redis-addr")
	setString(&cfgRedisPassword, "redis-password")
	setString(&cfgRedisKey, "redis-key")
	setString(&cfgOutPath, "out")
	setString(&cfgRawOut, "raw-out")
	setString(&cfgMetricsListen, "metrics-listen")
	setDuration(&cfgTimeout, "cmd-timeout")
	setDuration(&cfgConnTimeout, "conn-timeout")
	setDuration(&cfgInterval, "interval")
	// Booleans and numbers
	if viper.IsSet("strict-host-key") {
		cfgStrictHost = viper.GetBool("strict-host-key")
	}
	if viper.IsSet("verbose") {
		cfgVerbose = viper.GetBool("verbose")
	}
	if viper.IsSet("redis-db") {
		cfgRedisDB = viper.GetInt("redis-db")
	}
}
