package main

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/layout"
	"github.com/wippyai/abigen/yul"
	"github.com/wippyai/abigen/yul/interp"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval -g TYPE... [-t TYPE...] -v VALUE...",
		Short: "Encode values with a generated tuple encoder and print the head",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			given, targets, library, err := tupleFlags(cmd)
			if err != nil {
				return err
			}
			valueStr, err := cmd.Flags().GetStringArray("value")
			if err != nil {
				return err
			}
			valueStr = splitTypeArgs(valueStr)
			if len(valueStr) != len(given) {
				return fmt.Errorf("%d values for %d types", len(valueStr), len(given))
			}
			headStart, err := cmd.Flags().GetUint64("head-start")
			if err != nil {
				return err
			}

			g := codegen.New()
			block, err := g.EncodeTuple(given, targets, library)
			funcs := g.Flush()
			if err != nil {
				return err
			}
			if err := g.Close(); err != nil {
				return err
			}

			defs := make([]*yul.FunctionDefinition, len(funcs))
			for i, f := range funcs {
				defs[i] = f.Def
			}
			m, err := interp.New(defs)
			if err != nil {
				return err
			}

			env := map[string]*uint256.Int{codegen.HeadStartVar: uint256.NewInt(headStart)}
			for i, s := range valueStr {
				v, err := parseWord(s)
				if err != nil {
					return err
				}
				env[codegen.ValueVar(i)] = v
			}
			if err := m.Exec(block.Statements, env); err != nil {
				return err
			}

			info, err := layout.NewCalculator().Calculate(targets)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, off := range info.Offsets {
				word, err := m.Memory().ReadWord(headStart + uint64(off))
				if err != nil {
					return err
				}
				label := fmt.Sprintf("%-8s %4d", targets[i].String(), headStart+uint64(off))
				printWord(w, label, new(uint256.Int).SetBytes32(word[:]))
			}
			fmt.Fprintf(w, "end %s\n", valueColor.Sprint(env[codegen.ValueVar(0)].Dec()))
			return nil
		},
	}
	addTupleFlags(cmd)
	cmd.Flags().StringArrayP("value", "v", nil, "value of each element (decimal, 0x-hex or negative)")
	cmd.Flags().Uint64("head-start", 0, "memory offset of the head")
	return cmd
}
