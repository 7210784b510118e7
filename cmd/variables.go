package cmd

import (
	"time"

	"go.uber.org/zap"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

var (
	// Global configuration populated by flags and/or environment variables.
	// These are declared here so they are visible across subcommands.
	cfgProfile     string
	cfgTarget      string
	cfgUser        string
	cfgPassword    string
	cfgKeyPath     string
	cfgPassphrase  string
	cfgKnownHosts  string
	cfgStrictHost  bool
	cfgTimeout     time.Duration
	cfgConnTimeout time.Duration
	cfgVerbose     bool

	cfgRedisAddr     string
	cfgRedisPassword string
	cfgRedisDB       int
	cfgRedisKey      string

	cfgOutPath string
	cfgRawOut  string
	cfgDryRun  bool

	cfgInterval        time.Duration
	cfgMetricsListen   string
	cfgPersistentShell bool

	cfgInPath string
	cfgTree   bool
)

// logger is replaced in PersistentPreRunE; until then nothing is logged.
var logger = zap.NewNop()

// Allow tests to stub dialing, command execution and the result store
var (
	dialSSHFunc          = dialSSH
	runRemoteCommandFunc = runRemoteCommand
	newSinkFunc          = newRedisSink
)
