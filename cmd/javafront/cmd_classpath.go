package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javafront/java/classpath"
)

func newClasspathCmd(a *app) *cobra.Command {
	var (
		cp     string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "classpath",
		Short: "List the classes visible on the classpath",
		Long: `Print the binary name of every class the classpath can load, in
classpath order. Classes shadowed by an earlier entry are listed once.

Examples:
  javafront classpath --classpath build/classes:lib/dep.jar
  javafront classpath -p java.util.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := a.cfg.Classpath
			if cmd.Flags().Changed("classpath") {
				entries = classpath.SplitList(cp)
			}
			path, err := classpath.NewPath(a.fs, entries)
			if err != nil {
				return err
			}
			defer path.Close()

			names, err := path.Names()
			if err != nil {
				return err
			}
			for _, name := range names {
				if strings.HasPrefix(name, prefix) {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cp, "classpath", "", "classpath entries separated by the OS list separator")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "only list names starting with this prefix")

	return cmd
}
