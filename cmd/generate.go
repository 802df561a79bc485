package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/propgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var manifestPath string

	var generateCmd = &cobra.Command{
		Use:   "generate [flags] [file]",
		Short: "generate property registration",
		Long: `Generate the param spec registry, Property and SetProperty methods of a
type from a property declaration file. Intended for go:generate:

	//go:generate propgen generate -t MyObject myobject.props`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c, args)
			if err != nil {
				return err
			}
			_, err = generate.Generate(opts, manifestPath)
			return err
		},
	}
	addOptionFlags(generateCmd)
	generateCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "record the generated file in this manifest")

	return generateCmd
}
