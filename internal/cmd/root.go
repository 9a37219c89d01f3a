package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var opts calcOptions

	rootCmd := &cobra.Command{
		Use:   "imc '<json>'",
		Short: "Compute a Body Mass Index from a JSON object",
		Long: `imc reads a JSON object with "altura" (metres, default 1) and "peso"
(kilograms, default 0) and prints one JSON line: {"bmi": <value>} or
{"error": "<message>"}. Computation failures are reported on stdout and
the exit status is 0.

Only arguments starting with "--" are flags. Anything else, including
"-1" or "help", is the JSON document.

  imc '{"altura": 1.8, "peso": 70}'    Compute from an argument
  echo '{"peso": 70}' | imc -          Compute from a pipe
  imc < input.json                     Compute from a redirected file`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Flags are parsed in RunE so that dash-prefixed documents such
		// as -1 reach the calculator instead of pflag's shorthand parser.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flagArgs, input := splitArgs(cmd.Flags(), args)
			if err := cmd.Flags().Parse(flagArgs); err != nil {
				return err
			}
			if help, _ := cmd.Flags().GetBool("help"); help {
				return cmd.Help()
			}
			if opts.version {
				writeVersion(cmd.OutOrStdout())
				return nil
			}
			if cmd.Flags().Changed("format") {
				if err := opts.validate(); err != nil {
					return err
				}
			}
			return runCalc(cmd, input, &opts)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&opts.format, "format", "", `Output format: "json" or "text" (default from config, else json)`)
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file (default $IMC_CONFIG or ~/.imc/config.yaml)")
	rootCmd.Flags().BoolVar(&opts.version, "version", false, "Print the imc version")

	return rootCmd
}

// splitArgs separates long flags (and their values) from the positional
// arguments. A lone "-" and every token with a single leading dash stay
// positional; "--" ends flag scanning.
func splitArgs(fs *pflag.FlagSet, args []string) (flagArgs, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return flagArgs, append(positional, args[i+1:]...)
		case !strings.HasPrefix(arg, "--"):
			positional = append(positional, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		f := fs.Lookup(strings.TrimPrefix(arg, "--"))
		if f != nil && f.NoOptDefVal == "" && i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return flagArgs, positional
}
