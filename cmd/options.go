package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/propgen/pkg/propgen"
)

var errNoInput = errors.New("no input file: pass one as argument or set in_file")

// optionFlags maps config keys to the flags that override them.
var optionFlags = map[string]string{
	"in_file":      "input",
	"out_file":     "output",
	"package":      "package",
	"package_path": "package-path",
	"type":         "type",
	"receiver":     "receiver",
	"host":         "host",
	"imports":      "import",
	"fix_imports":  "fix-imports",
}

func addOptionFlags(c *cobra.Command) {
	defaults := propgen.NewOptions()
	c.Flags().StringP("input", "i", "", "property declaration file")
	c.Flags().StringP("output", "o", "", "generated Go file (default <input>_props.go)")
	c.Flags().StringP("package", "p", "", "package clause of the generated file (default $GOPACKAGE or resolved from the output directory)")
	c.Flags().String("package-path", "", "import path of the generated file's package")
	c.Flags().StringP("type", "t", "", "receiver type of the generated methods")
	c.Flags().StringP("receiver", "r", "", "receiver name visible to get/set blocks (default first letter of type)")
	c.Flags().String("host", defaults.Host, "import path of the host object system package")
	c.Flags().StringToString("import", map[string]string{}, "alias=import/path for object element types, ex: gtk=github.com/diamondburned/gotk4/pkg/gtk/v4")
	c.Flags().Bool("fix-imports", defaults.FixImports, "run goimports over the generated file")
}

// loadOptions merges config, environment and flags into propgen options. A
// positional argument wins over any configured input file.
func loadOptions(c *cobra.Command, args []string) (*propgen.Options, error) {
	for key, name := range optionFlags {
		if err := viper.BindPFlag(key, c.Flags().Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	opts := propgen.NewOptions()
	if err := viper.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	if len(args) > 0 {
		opts.InFile = args[0]
	}
	if opts.InFile == "" {
		return nil, errNoInput
	}
	if opts.Package == "" {
		opts.Package = os.Getenv("GOPACKAGE")
	}
	return opts, nil
}
