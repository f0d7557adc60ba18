package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/version"
)

func newVersionsCmd(a *app) *cobra.Command {
	var (
		rangeSpec   string
		except      []string
		productions bool
	)

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List the supported Java language levels",
		Long: `List language levels in order. --range a..b selects an inclusive range,
which runs backwards when a is after b; --except removes levels.
With --productions each gated production is listed with the levels on
which it is legal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if productions {
				for _, p := range parser.Productions() {
					fmt.Fprintf(w, "%s\t%s\n", p, p.Versions())
				}
				return nil
			}

			vs, err := selectVersions(rangeSpec, except)
			if err != nil {
				return err
			}
			for _, v := range vs {
				marker := ""
				if v == a.cfg.Version {
					marker = "\t(configured)"
				}
				fmt.Fprintf(w, "%s%s\n", v, marker)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeSpec, "range", "", "inclusive range such as 1.5..11")
	cmd.Flags().StringSliceVar(&except, "except", nil, "levels to leave out")
	cmd.Flags().BoolVar(&productions, "productions", false, "list gated productions instead")

	return cmd
}

func selectVersions(rangeSpec string, except []string) ([]version.Version, error) {
	vs := version.Versions()
	if rangeSpec != "" {
		from, to, ok := strings.Cut(rangeSpec, "..")
		if !ok {
			return nil, fmt.Errorf("invalid range %q: want FROM..TO", rangeSpec)
		}
		a, err := version.Parse(from)
		if err != nil {
			return nil, err
		}
		b, err := version.Parse(to)
		if err != nil {
			return nil, err
		}
		vs = version.Range(a, b)
	}

	skip := make(map[version.Version]bool)
	for _, name := range except {
		v, err := version.Parse(name)
		if err != nil {
			return nil, err
		}
		skip[v] = true
	}
	out := vs[:0:0]
	for _, v := range vs {
		if !skip[v] {
			out = append(out, v)
		}
	}
	return out, nil
}
