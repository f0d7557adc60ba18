package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dhamidi/javafront/format"
	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/version"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		versionName  string
		contextName  string
		outputFormat string
		source       string
		validate     bool
		matrix       bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse Java source and print its syntax tree",
		Long: `Parse a file, standard input ("-") or the text given with --source
as one of the parsing contexts and print the resulting tree.

With --matrix the source is parsed on every language level and one line
per level reports whether it was accepted.

Examples:
  javafront parse Foo.java
  javafront parse -c annotation -s '@F(a = 1)' -f java
  javafront parse -c expression -s 'x -> x' --matrix`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := parser.ContextByName(contextName)
			if err != nil {
				return err
			}
			level := a.cfg.Version
			if versionName != "" {
				if level, err = version.Parse(versionName); err != nil {
					return err
				}
			}

			name, src, err := readSource(a.fs, cmd.InOrStdin(), args, source)
			if err != nil {
				return err
			}
			if matrix {
				return printMatrix(cmd.OutOrStdout(), src, ctx)
			}

			node, err := parser.Parse(src, level, ctx, parser.WithFile(name))
			if err != nil {
				return err
			}
			if validate {
				if err := parser.Validate(node); err != nil {
					return fmt.Errorf("invalid tree: %w", err)
				}
			}

			enc, err := format.NewNodeEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return enc.Encode(node)
		},
	}

	cmd.Flags().StringVarP(&versionName, "java", "j", "", "language level (default from configuration)")
	cmd.Flags().StringVarP(&contextName, "context", "c", "compilation-unit", "parsing context")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, positions, json, java)")
	cmd.Flags().StringVarP(&source, "source", "s", "", "parse this text instead of a file")
	cmd.Flags().BoolVar(&validate, "validate", false, "check tree invariants after parsing")
	cmd.Flags().BoolVar(&matrix, "matrix", false, "report acceptance on every language level")

	return cmd
}

// readSource returns the display name and text to parse.
func readSource(fs afero.Fs, stdin io.Reader, args []string, source string) (string, string, error) {
	switch {
	case source != "" && len(args) > 0:
		return "", "", fmt.Errorf("--source and a file argument are mutually exclusive")
	case source != "":
		return "", source, nil
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read standard input: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := afero.ReadFile(fs, args[0])
	if err != nil {
		return "", "", fmt.Errorf("read java file: %w", err)
	}
	return args[0], string(data), nil
}

func printMatrix(w io.Writer, src string, ctx parser.Context) error {
	for _, v := range version.Versions() {
		if _, err := parser.Parse(src, v, ctx); err != nil {
			fmt.Fprintf(w, "%s\terror\t%s\n", v, err)
			continue
		}
		fmt.Fprintf(w, "%s\tok\n", v)
	}
	return nil
}
