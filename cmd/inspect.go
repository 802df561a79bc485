package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/propgen/internal/parser"
)

func init() {
	rootCmd.AddCommand(NewInspectCommand())
}

func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "print the parsed property declarations as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			props, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(c.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(props); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
