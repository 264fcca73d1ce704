// Package cabs defines the abstract syntax tree for C produced by the
// parser, together with a C-source printer and a canonical tree dump.
package cabs

// Node is the base interface for all AST nodes
type Node interface {
	implCabsNode()
}

// Expr is the interface for all expression nodes
type Expr interface {
	Node
	implCabsExpr()
}

// Stmt is the interface for all statement nodes
type Stmt interface {
	Node
	implCabsStmt()
}

// Definition is the interface for top-level definitions
type Definition interface {
	Node
	implDefinition()
}

// Program is the ordered sequence of top-level definitions in a
// translation unit.
type Program struct {
	Definitions []Definition
}

// BinaryOp represents binary operators, including assignment forms and
// the comma operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd // &&
	OpOr  // ||
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl // <<
	OpShr // >>
	OpAssign
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
	OpModAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpShlAssign
	OpShrAssign
	OpComma
)

var binaryOpNames = []string{
	"+", "-", "*", "/", "%",
	"<", "<=", ">", ">=", "==", "!=",
	"&&", "||", "&", "|", "^", "<<", ">>",
	"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=",
	",",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsAssign reports whether the operator is plain or compound assignment.
func (op BinaryOp) IsAssign() bool {
	return op >= OpAssign && op <= OpShrAssign
}

// UnaryOp represents unary operators
type UnaryOp int

const (
	OpNeg     UnaryOp = iota // -
	OpPlus                   // +
	OpNot                    // !
	OpBitNot                 // ~
	OpPreInc                 // ++x
	OpPreDec                 // --x
	OpPostInc                // x++
	OpPostDec                // x--
	OpAddrOf                 // &
	OpDeref                  // *
)

var unaryOpNames = []string{"-", "+", "!", "~", "++", "--", "post++", "post--", "&", "*"}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

// IsPostfix reports whether the operator follows its operand.
func (op UnaryOp) IsPostfix() bool {
	return op == OpPostInc || op == OpPostDec
}

// Constant represents an integer constant. Text preserves the source
// spelling (radix prefix, suffixes); Value is its numeric value.
type Constant struct {
	Value int64
	Text  string
}

// FloatConstant represents a floating-point constant, kept as spelled.
type FloatConstant struct {
	Text string
}

// CharLiteral represents a character constant; Value is the body
// between the quotes with escapes unprocessed.
type CharLiteral struct {
	Value string
}

// StringLiteral represents a string literal; Value is the body between
// the quotes with escapes unprocessed.
type StringLiteral struct {
	Value string
}

// Variable represents an identifier expression
type Variable struct {
	Name string
}

// Unary represents a unary expression
type Unary struct {
	Op   UnaryOp
	Expr Expr
}

// Binary represents a binary expression, including assignments and the
// comma operator.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// Paren represents a parenthesized expression
type Paren struct {
	Expr Expr
}

// Conditional represents the ternary operator: cond ? then : else
type Conditional struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Call represents a function call. Arguments are assignment
// expressions; the comma operator never appears unparenthesized here.
type Call struct {
	Func Expr
	Args []Expr
}

// Index represents array subscript access: arr[idx]
type Index struct {
	Array Expr
	Index Expr
}

// Member represents member access: s.x or p->x
type Member struct {
	Expr    Expr
	Name    string
	IsArrow bool
}

// SizeofExpr represents sizeof applied to an expression
type SizeofExpr struct {
	Expr Expr
}

// SizeofType represents sizeof applied to a type name
type SizeofType struct {
	Type Type
}

// Cast represents a cast expression: (type)expr
type Cast struct {
	Type Type
	Expr Expr
}

// Decl represents one declared name with its type descriptor.
type Decl struct {
	Name      string
	Type      Type
	Init      Expr   // nil when absent
	Storage   string // "", "static", "extern", "auto", "register"
	IsTypedef bool
}

// Statements

// Computation represents an expression statement
type Computation struct {
	Expr Expr
}

// Return represents a return statement
type Return struct {
	Expr Expr // nil for bare return
}

// Block represents a compound statement; it owns a scope.
type Block struct {
	Items []Stmt
}

// If represents if and if-else statements
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

// While represents a while loop
type While struct {
	Cond Expr
	Body Stmt
}

// DoWhile represents a do-while loop
type DoWhile struct {
	Body Stmt
	Cond Expr
}

// For represents a for loop. Each clause is independently optional;
// InitDecl holds a C99 declaration init, Init an expression init.
type For struct {
	InitDecl []Decl
	Init     Expr
	Cond     Expr
	Step     Expr
	Body     Stmt
}

// Case is one case or default label group in a switch body. Expr is
// nil for default. Stmts may be empty when control falls through to
// the next label.
type Case struct {
	Expr  Expr
	Stmts []Stmt
}

// Switch represents a switch statement; fall-through between cases is
// preserved, never synthesized away.
type Switch struct {
	Expr  Expr
	Cases []Case
}

// Break represents a break statement
type Break struct{}

// Continue represents a continue statement
type Continue struct{}

// Goto represents a goto statement
type Goto struct {
	Label string
}

// Label represents a labeled statement
type Label struct {
	Name string
	Stmt Stmt
}

// Empty represents the empty statement ';'
type Empty struct{}

// DeclStmt represents a block-level declaration; several declarators
// sharing one specifier produce several Decls.
type DeclStmt struct {
	Decls []Decl
}

// Top-level definitions

// Param represents one function parameter
type Param struct {
	Name string // may be empty (abstract declarator)
	Type Type
}

// FunDef represents a function definition, or a prototype when Body
// is nil.
type FunDef struct {
	Return   Type
	Name     string
	Params   []Param
	Variadic bool
	Storage  string
	Body     *Block // nil for a declaration
}

// FuncType returns the function type descriptor of the definition.
func (f FunDef) FuncType() FuncType {
	return FuncType{Return: f.Return, Params: f.Params, Variadic: f.Variadic}
}

// VarDef represents a file-scope variable declaration
type VarDef struct {
	Decl
}

// TypedefDef represents one typedef'd name
type TypedefDef struct {
	Name string
	Type Type
}

// StructDef represents a top-level struct definition
type StructDef struct {
	Name   string // empty for anonymous
	Fields []Field
}

// UnionDef represents a top-level union definition
type UnionDef struct {
	Name   string
	Fields []Field
}

// EnumDef represents a top-level enum definition
type EnumDef struct {
	Name   string
	Values []EnumValue
}

// Marker methods for interface implementation
func (Constant) implCabsNode() {}
func (Constant) implCabsExpr() {}

func (FloatConstant) implCabsNode() {}
func (FloatConstant) implCabsExpr() {}

func (CharLiteral) implCabsNode() {}
func (CharLiteral) implCabsExpr() {}

func (StringLiteral) implCabsNode() {}
func (StringLiteral) implCabsExpr() {}

func (Variable) implCabsNode() {}
func (Variable) implCabsExpr() {}

func (Unary) implCabsNode() {}
func (Unary) implCabsExpr() {}

func (Binary) implCabsNode() {}
func (Binary) implCabsExpr() {}

func (Paren) implCabsNode() {}
func (Paren) implCabsExpr() {}

func (Conditional) implCabsNode() {}
func (Conditional) implCabsExpr() {}

func (Call) implCabsNode() {}
func (Call) implCabsExpr() {}

func (Index) implCabsNode() {}
func (Index) implCabsExpr() {}

func (Member) implCabsNode() {}
func (Member) implCabsExpr() {}

func (SizeofExpr) implCabsNode() {}
func (SizeofExpr) implCabsExpr() {}

func (SizeofType) implCabsNode() {}
func (SizeofType) implCabsExpr() {}

func (Cast) implCabsNode() {}
func (Cast) implCabsExpr() {}

func (Computation) implCabsNode() {}
func (Computation) implCabsStmt() {}

func (Return) implCabsNode() {}
func (Return) implCabsStmt() {}

func (Block) implCabsNode() {}
func (Block) implCabsStmt() {}

func (If) implCabsNode() {}
func (If) implCabsStmt() {}

func (While) implCabsNode() {}
func (While) implCabsStmt() {}

func (DoWhile) implCabsNode() {}
func (DoWhile) implCabsStmt() {}

func (For) implCabsNode() {}
func (For) implCabsStmt() {}

func (Switch) implCabsNode() {}
func (Switch) implCabsStmt() {}

func (Break) implCabsNode() {}
func (Break) implCabsStmt() {}

func (Continue) implCabsNode() {}
func (Continue) implCabsStmt() {}

func (Goto) implCabsNode() {}
func (Goto) implCabsStmt() {}

func (Label) implCabsNode() {}
func (Label) implCabsStmt() {}

func (Empty) implCabsNode() {}
func (Empty) implCabsStmt() {}

func (DeclStmt) implCabsNode() {}
func (DeclStmt) implCabsStmt() {}

func (FunDef) implCabsNode()   {}
func (FunDef) implDefinition() {}

func (VarDef) implCabsNode()   {}
func (VarDef) implDefinition() {}

func (TypedefDef) implCabsNode()   {}
func (TypedefDef) implDefinition() {}

func (StructDef) implCabsNode()   {}
func (StructDef) implDefinition() {}

func (UnionDef) implCabsNode()   {}
func (UnionDef) implDefinition() {}

func (EnumDef) implCabsNode()   {}
func (EnumDef) implDefinition() {}
