package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/javafront/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server publishing parse diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(appVersion, a.cfg.Version)
			return server.RunStdio()
		},
	}
}
