package yul

import (
	"strconv"

	"github.com/holiman/uint256"
)

// Node is any element of a generated code fragment.
type Node interface {
	node()
}

// Expression is a node that produces values.
type Expression interface {
	Node
	expression()
}

// Statement is a node that appears inside a block.
type Statement interface {
	Node
	statement()
}

// Identifier references a variable. Names starting with '$' are stack slots
// of the embedding code generator and are bound by whoever splices the code.
type Identifier struct {
	Name string
}

// Literal is a number literal, kept in the form the printer writes.
type Literal struct {
	Value string
}

// FunctionCall calls a builtin or a generated procedure by name.
type FunctionCall struct {
	Name string
	Args []Expression
}

func (*Identifier) node()         {}
func (*Identifier) expression()   {}
func (*Literal) node()            {}
func (*Literal) expression()      {}
func (*FunctionCall) node()       {}
func (*FunctionCall) expression() {}

// Block is a braced statement list.
type Block struct {
	Statements []Statement
}

// VariableDeclaration is "let a, b := value"; Value may be nil.
type VariableDeclaration struct {
	Value Expression
	Names []string
}

// Assignment is "a, b := value".
type Assignment struct {
	Value Expression
	Names []string
}

// ExpressionStatement is a call evaluated for its effect.
type ExpressionStatement struct {
	Expr Expression
}

// Case is one arm of a switch.
type Case struct {
	Value *Literal
	Body  *Block
}

// Switch selects the first case whose literal equals Expr, else Default.
type Switch struct {
	Expr    Expression
	Default *Block
	Cases   []Case
}

// FunctionDefinition is a named procedure.
type FunctionDefinition struct {
	Body    *Block
	Name    string
	Params  []string
	Returns []string
}

func (*Block) node()                    {}
func (*Block) statement()               {}
func (*VariableDeclaration) node()      {}
func (*VariableDeclaration) statement() {}
func (*Assignment) node()               {}
func (*Assignment) statement()          {}
func (*ExpressionStatement) node()      {}
func (*ExpressionStatement) statement() {}
func (*Switch) node()                   {}
func (*Switch) statement()              {}
func (*FunctionDefinition) node()       {}
func (*FunctionDefinition) statement()  {}

// Ident returns an identifier expression.
func Ident(name string) *Identifier { return &Identifier{Name: name} }

// Num returns a decimal literal.
func Num(v uint64) *Literal { return &Literal{Value: strconv.FormatUint(v, 10)} }

// Dec returns w as a decimal literal.
func Dec(w *uint256.Int) *Literal { return &Literal{Value: w.Dec()} }

// Hex returns w as a compact 0x-prefixed literal.
func Hex(w *uint256.Int) *Literal { return &Literal{Value: w.Hex()} }

// Call returns a call expression.
func Call(name string, args ...Expression) *FunctionCall {
	return &FunctionCall{Name: name, Args: args}
}

// Let declares a single variable.
func Let(name string, value Expression) *VariableDeclaration {
	return &VariableDeclaration{Names: []string{name}, Value: value}
}

// Assign assigns a single variable.
func Assign(name string, value Expression) *Assignment {
	return &Assignment{Names: []string{name}, Value: value}
}

// Do evaluates a call for its side effects.
func Do(name string, args ...Expression) *ExpressionStatement {
	return &ExpressionStatement{Expr: Call(name, args...)}
}

// NewBlock returns a block holding stmts.
func NewBlock(stmts ...Statement) *Block {
	return &Block{Statements: stmts}
}

// Func returns a single-result procedure definition.
func Func(name string, params []string, result string, body ...Statement) *FunctionDefinition {
	return &FunctionDefinition{
		Name:    name,
		Params:  params,
		Returns: []string{result},
		Body:    NewBlock(body...),
	}
}

// Empty reports whether the definition has nothing to emit.
func (f *FunctionDefinition) Empty() bool {
	return f == nil || f.Name == "" || f.Body == nil || len(f.Body.Statements) == 0
}
