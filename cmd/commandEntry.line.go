package cmd

import "strings"

// line builds the command line sent to the router, appending arguments with
// shell quoting.
func (c *commandEntry) line() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	quoted := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		quoted = append(quoted, shellQuote(a))
	}
	return strings.TrimSpace(c.Command + " " + strings.Join(quoted, " "))
}
