package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cmmoran/propgen/pkg/action/check"
	"github.com/cmmoran/propgen/pkg/manifest"
)

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	var manifestPath string

	var checkCmd = &cobra.Command{
		Use:   "check [flags] [file]",
		Short: "verify generated files are up to date",
		Long: `Regenerate in memory and diff against the files on disk. With an
input file, given as argument, flag, config or environment, only that file
is checked; otherwise every file recorded in the manifest is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c, args)
			if errors.Is(err, errNoInput) {
				diffs, err := check.CheckManifest(manifestPath)
				outs := make([]string, 0, len(diffs))
				for out := range diffs {
					outs = append(outs, out)
				}
				sort.Strings(outs)
				for _, out := range outs {
					fmt.Fprintf(c.OutOrStdout(), "--- %s (-on disk +generated)\n%s\n", out, diffs[out])
				}
				return err
			}
			if err != nil {
				return err
			}
			diff, err := check.Check(opts)
			if diff != "" {
				fmt.Fprintf(c.OutOrStdout(), "--- %s (-on disk +generated)\n%s\n", opts.OutFile, diff)
			}
			return err
		},
	}
	addOptionFlags(checkCmd)
	checkCmd.Flags().StringVarP(&manifestPath, "manifest", "m", manifest.DefaultPath, "manifest listing generated files")

	return checkCmd
}
