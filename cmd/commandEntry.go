package cmd

// commandEntry is the router command that prints the report.
type commandEntry struct {
	// "command" is preferred; "cmd" also accepted during unmarshal
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	// Optional timeout like "30s"; overrides --cmd-timeout if set
	Timeout string `yaml:"timeout,omitempty"`
}
