package yul

import (
	"strings"
)

const indent = "    "

// Print renders n as source text. Blocks and definitions end with a newline.
func Print(n Node) string {
	p := &printer{}
	p.node(n, 0)
	return p.b.String()
}

// PrintStatements renders stmts without surrounding braces, one per line.
// Used for code that is spliced inline into another block.
func PrintStatements(stmts []Statement) string {
	p := &printer{}
	for _, s := range stmts {
		p.statement(s, 0)
	}
	return p.b.String()
}

type printer struct {
	b strings.Builder
}

func (p *printer) pad(depth int) {
	for i := 0; i < depth; i++ {
		p.b.WriteString(indent)
	}
}

func (p *printer) node(n Node, depth int) {
	switch v := n.(type) {
	case Statement:
		p.statement(v, depth)
	case Expression:
		p.expression(v)
	}
}

func (p *printer) statement(s Statement, depth int) {
	p.pad(depth)
	switch v := s.(type) {
	case *FunctionDefinition:
		p.b.WriteString("function ")
		p.b.WriteString(v.Name)
		p.b.WriteByte('(')
		p.b.WriteString(strings.Join(v.Params, ", "))
		p.b.WriteByte(')')
		if len(v.Returns) > 0 {
			p.b.WriteString(" -> ")
			p.b.WriteString(strings.Join(v.Returns, ", "))
		}
		p.b.WriteByte(' ')
		p.block(v.Body, depth)
	case *Block:
		p.block(v, depth)
	case *VariableDeclaration:
		p.b.WriteString("let ")
		p.b.WriteString(strings.Join(v.Names, ", "))
		if v.Value != nil {
			p.b.WriteString(" := ")
			p.expression(v.Value)
		}
	case *Assignment:
		p.b.WriteString(strings.Join(v.Names, ", "))
		p.b.WriteString(" := ")
		p.expression(v.Value)
	case *ExpressionStatement:
		p.expression(v.Expr)
	case *Switch:
		p.b.WriteString("switch ")
		p.expression(v.Expr)
		for _, c := range v.Cases {
			p.b.WriteByte('\n')
			p.pad(depth)
			p.b.WriteString("case ")
			p.b.WriteString(c.Value.Value)
			p.b.WriteByte(' ')
			p.block(c.Body, depth)
		}
		if v.Default != nil {
			p.b.WriteByte('\n')
			p.pad(depth)
			p.b.WriteString("default ")
			p.block(v.Default, depth)
		}
	}
	p.b.WriteByte('\n')
}

// block writes "{ ... }" without a trailing newline; an empty block is "{ }".
func (p *printer) block(b *Block, depth int) {
	if b == nil || len(b.Statements) == 0 {
		p.b.WriteString("{ }")
		return
	}
	p.b.WriteString("{\n")
	for _, s := range b.Statements {
		p.statement(s, depth+1)
	}
	p.pad(depth)
	p.b.WriteByte('}')
}

func (p *printer) expression(e Expression) {
	switch v := e.(type) {
	case *Identifier:
		p.b.WriteString(v.Name)
	case *Literal:
		p.b.WriteString(v.Value)
	case *FunctionCall:
		p.b.WriteString(v.Name)
		p.b.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expression(a)
		}
		p.b.WriteByte(')')
	}
}
