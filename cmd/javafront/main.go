package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javafront/config"
)

const appVersion = "0.1.0"

// app is the state shared by every subcommand once the configuration
// has been loaded.
type app struct {
	fs         afero.Fs
	configPath string
	verbose    int
	cfg        *config.Config
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "javafront",
		Short:         "A version-aware Java front end",
		Version:       appVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.fs, a.configPath)
			if err != nil {
				return err
			}
			if a.verbose > 0 {
				cfg.Verbosity = a.verbose
			}
			a.cfg = cfg
			commonlog.Configure(cfg.Verbosity, cfg.LogPath())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "configuration file")
	rootCmd.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "log more (repeat for more detail)")

	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newResolveCmd(a))
	rootCmd.AddCommand(newClasspathCmd(a))
	rootCmd.AddCommand(newVersionsCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))

	return rootCmd
}

func main() {
	a := &app{fs: afero.NewOsFs()}
	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}
