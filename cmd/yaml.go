package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlUnmarshalImpl is separated for clarity/testability
func yamlUnmarshalImpl(b []byte, out any) error {
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	return nil
}

// UnmarshalYAML accepts both "command" and "cmd", and a bare string as a
// shorthand for the command line.
func (c *commandEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Command = value.Value
		return nil
	}
	var aux struct {
		Command string   `yaml:"command"`
		Cmd     string   `yaml:"cmd"`
		Args    []string `yaml:"args"`
		Timeout string   `yaml:"timeout"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	c.Command = aux.Command
	if c.Command == "" {
		c.Command = aux.Cmd
	}
	c.Args = aux.Args
	c.Timeout = aux.Timeout
	return nil
}
