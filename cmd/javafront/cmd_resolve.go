package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javafront/format"
	"github.com/dhamidi/javafront/java/classpath"
	"github.com/dhamidi/javafront/java/symbols"
)

func newResolveCmd(a *app) *cobra.Command {
	var (
		cp           string
		outputFormat string
		arity        int
	)

	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve class names against the classpath",
		Long: `Resolve canonical or binary class names and describe the symbols.
Names that cannot be loaded resolve to unresolved placeholders; --arity
gives those placeholders a number of type parameters.

Examples:
  javafront resolve --classpath lib/rt.jar java.util.Map.Entry
  javafront resolve -f json 'java.lang.String[]'`,
		Args: cobra.MinimumNArgs(1),
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

			enc, err := format.NewSymbolEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			session := symbols.NewSession(path)
			for _, name := range args {
				sym := session.Resolve(name)
				if u, ok := sym.(*symbols.UnresolvedClass); ok && arity >= 0 {
					if _, err := u.SetTypeParameterCount(arity); err != nil {
						return err
					}
				}
				if err := enc.Encode(sym); err != nil {
					return fmt.Errorf("encode %s: %w", name, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cp, "classpath", "", "classpath entries separated by the OS list separator")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")
	cmd.Flags().IntVar(&arity, "arity", -1, "type parameter count for unresolved names")

	return cmd
}
