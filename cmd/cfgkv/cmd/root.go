package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/calumari/cfgkv"
	"github.com/calumari/cfgkv/internal/settings"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	lenient bool

	settings *settings.Settings
	log      *slog.Logger
}

// NewRootCommand builds the cfgkv command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cfgkv [FILE]",
		Short: "Parse, inspect and convert key = value; configuration files",
		Long: `cfgkv reads configuration files made of lines such as

  # comment
  name  = 'edge-proxy';
  port  = 0x1F90;
  hosts = ['a', 'b'];

Given a single FILE it parses it and prints the normalised document, or the
parse error.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.dump(cmd, args[0], a.settings.Output.Format)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "settings file (default: $"+settings.EnvVar+" or ./"+settings.DefaultPath+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log parser activity to stderr")
	root.PersistentFlags().BoolVar(&a.lenient, "lenient-arrays", false, "accept stray commas inside arrays")

	root.AddCommand(
		newDumpCmd(a),
		newGetCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and reports any error on stderr.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	s, path, err := settings.Resolve(a.cfgFile)
	if err != nil {
		return err
	}
	if a.lenient {
		s.Parse.LenientArrays = true
	}
	level, err := s.LogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.settings = s
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if path != "" {
		a.log.Debug("settings loaded", slog.String("path", path))
	}
	return nil
}

func (a *app) parse(path string) (cfgkv.Document, error) {
	return cfgkv.ParseFile(path, a.settings.ParseOptions(a.log)...)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
