package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JustAGod1/wifi-dumper/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a saved report and print the active MAC addresses",
	Long: "Reads a saved `show ip hotspot` dump from --in or stdin and prints what sync would publish, " +
		"or the parsed tree with --tree. Uses the parser and extract settings of --profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := resolveProfile()
		if err != nil {
			return err
		}
		var in io.Reader = cmd.InOrStdin()
		if cfgInPath != "" {
			f, err := os.Open(cfgInPath)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return err
		}

		tree, err := p.builder().Build(report.Tokenize(string(b)))
		if err != nil {
			return fmt.Errorf("parse report: %w", err)
		}
		out := cmd.OutOrStdout()
		if cfgTree {
			_, err := io.WriteString(out, tree.String())
			return err
		}
		active, err := report.ExtractActive(tree, p.query())
		if err != nil {
			return fmt.Errorf("extract %s: %w", p.Extract.IDField, err)
		}
		for _, id := range active.Sorted() {
			_, _ = fmt.Fprintln(out, id)
		}
		return nil
	},
}
