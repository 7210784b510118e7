// Package cmd implements the wifi-dumper command-line interface.
//
// wifi-dumper logs into a Keenetic-style router over SSH, runs
// `show ip hotspot`, parses the indentation-structured dump with package
// report, and publishes the MAC addresses of the active hosts as a Redis set.
//
// New contributors should start with rootCmd.go and init.go for the cobra and
// viper wiring, syncOnce.go for the fetch/parse/publish pipeline,
// sshReportSource.go for how reports are fetched, and watchCmd.go for the
// polling loop with its metrics endpoint.
package cmd
