package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/holiman/uint256"

	"github.com/wippyai/abigen/codegen"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	keywordColor = color.New(color.FgMagenta)
	nameColor    = color.New(color.FgGreen, color.Bold)
	valueColor   = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// highlight colors the header line of every function definition.
func highlight(code string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(code, "\n") {
		rest, ok := strings.CutPrefix(line, "function ")
		if !ok {
			b.WriteString(line)
			continue
		}
		name, tail, _ := strings.Cut(rest, "(")
		b.WriteString(keywordColor.Sprint("function "))
		b.WriteString(nameColor.Sprint(name))
		b.WriteString("(")
		b.WriteString(tail)
	}
	return b.String()
}

func printSection(w io.Writer, title string) {
	fmt.Fprintln(w, headerColor.Sprint("// "+title))
}

func printFunctions(w io.Writer, funcs []codegen.Function) {
	printSection(w, fmt.Sprintf("%d helper functions", len(funcs)))
	for i, f := range funcs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, highlight(f.Code))
	}
}

// printWord writes a padded 32-byte hex word.
func printWord(w io.Writer, label string, v *uint256.Int) {
	b := v.Bytes32()
	fmt.Fprintf(w, "%s %s\n", label, valueColor.Sprint("0x"+hex.EncodeToString(b[:])))
}

// parseWord accepts decimal, 0x-hex and negative decimal values.
func parseWord(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		// FromHex rejects leading zeros
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			v = new(uint256.Int)
		} else {
			v, err = uint256.FromHex("0x" + digits)
		}
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", s, err)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}
