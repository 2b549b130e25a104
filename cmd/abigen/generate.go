package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/codegen"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode -g TYPE... [-t TYPE...] [--lib]",
		Short: "Print a tuple encoder and the helpers it needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			given, targets, library, err := tupleFlags(cmd)
			if err != nil {
				return err
			}

			g := codegen.New()
			code, err := g.TupleEncoder(given, targets, library)
			funcs := g.Flush()
			if err != nil {
				return err
			}
			if err := g.Close(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printSection(w, "inline")
			fmt.Fprint(w, code)
			fmt.Fprintln(w)
			printFunctions(w, funcs)
			return nil
		},
	}
	addTupleFlags(cmd)
	return cmd
}

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup TYPE",
		Short: "Print the cleanup procedure of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := abitype.Parse(args[0])
			if err != nil {
				return err
			}
			revert, err := cmd.Flags().GetBool("revert")
			if err != nil {
				return err
			}
			return printOne(cmd, func(g *codegen.Generator) (string, error) {
				return g.Cleanup(t, revert)
			})
		},
	}
	cmd.Flags().Bool("revert", false, "abort with revert instead of invalid() on enum range errors")
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert FROM TO",
		Short: "Print the conversion procedure between two types",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := abitype.Parse(args[0])
			if err != nil {
				return err
			}
			to, err := abitype.Parse(args[1])
			if err != nil {
				return err
			}
			return printOne(cmd, func(g *codegen.Generator) (string, error) {
				return g.Conversion(from, to)
			})
		},
	}
}

// printOne generates one procedure and prints it with its dependencies.
func printOne(cmd *cobra.Command, gen func(*codegen.Generator) (string, error)) error {
	g := codegen.New()
	name, err := gen(g)
	funcs := g.Flush()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printSection(w, name)
	printFunctions(w, funcs)
	return g.Close()
}

func addTupleFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("given", "g", nil, "type of each value, in order")
	cmd.Flags().StringArrayP("target", "t", nil, "target type of each value (defaults to the given types)")
	cmd.Flags().Bool("lib", false, "encode for a library call")
	_ = cmd.MarkFlagRequired("given")
}

func tupleFlags(cmd *cobra.Command) (given, targets []abitype.Type, library bool, err error) {
	givenStr, err := cmd.Flags().GetStringArray("given")
	if err != nil {
		return nil, nil, false, err
	}
	targetStr, err := cmd.Flags().GetStringArray("target")
	if err != nil {
		return nil, nil, false, err
	}
	library, err = cmd.Flags().GetBool("lib")
	if err != nil {
		return nil, nil, false, err
	}

	givenStr = splitTypeArgs(givenStr)
	targetStr = splitTypeArgs(targetStr)
	if len(targetStr) == 0 {
		targetStr = givenStr
	}
	if len(targetStr) != len(givenStr) {
		return nil, nil, false, fmt.Errorf("%d given types for %d target types", len(givenStr), len(targetStr))
	}

	if given, err = abitype.ParseList(givenStr); err != nil {
		return nil, nil, false, err
	}
	if targets, err = abitype.ParseList(targetStr); err != nil {
		return nil, nil, false, err
	}
	return given, targets, library, nil
}

// splitTypeArgs splits comma separated type lists, keeping commas inside
// parentheses and quotes.
func splitTypeArgs(args []string) []string {
	var out []string
	for _, a := range args {
		out = append(out, splitTypes(a)...)
	}
	return out
}

func splitTypes(s string) []string {
	var (
		out   []string
		depth int
		quote bool
		start int
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '"':
			quote = !quote
		case quote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			out = appendType(out, s[start:i])
			start = i + 1
		}
	}
	return appendType(out, s[start:])
}

func appendType(out []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		out = append(out, s)
	}
	return out
}
