package cabs

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders the AST back to C source. Because the parser keeps
// explicit Paren nodes, the output re-parses to a structurally
// identical tree.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new AST printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// ExprString renders a single expression to a string.
func ExprString(e Expr) string {
	var b strings.Builder
	NewPrinter(&b).printExpr(e)
	return b.String()
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, def := range prog.Definitions {
		p.printDefinition(def)
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

func (p *Printer) printDefinition(def Definition) {
	switch d := def.(type) {
	case FunDef:
		p.printFunDef(d)
	case TypedefDef:
		p.printTypedefDef(d)
	case StructDef:
		p.printFieldBody("struct", d.Name, d.Fields)
	case UnionDef:
		p.printFieldBody("union", d.Name, d.Fields)
	case EnumDef:
		p.printEnumDef(d)
	case VarDef:
		p.printDecl(d.Decl)
		fmt.Fprintln(p.w, ";")
	default:
		fmt.Fprintf(p.w, "/* unknown definition %T */\n", def)
	}
}

func (p *Printer) printFunDef(f FunDef) {
	if f.Storage != "" {
		fmt.Fprintf(p.w, "%s ", f.Storage)
	}
	fmt.Fprint(p.w, FormatDecl(f.FuncType(), f.Name))
	if f.Body == nil {
		// Function declaration (prototype)
		fmt.Fprintln(p.w, ";")
	} else {
		fmt.Fprintln(p.w)
		p.printBlock(f.Body)
	}
}

func (p *Printer) printTypedefDef(t TypedefDef) {
	switch inline := t.Type.(type) {
	case StructType:
		if inline.HasBody {
			fmt.Fprintf(p.w, "typedef struct %s{\n", spaceAfterName(inline.Name))
			p.printFields(inline.Fields)
			fmt.Fprintf(p.w, "} %s;\n", t.Name)
			return
		}
	case UnionType:
		if inline.HasBody {
			fmt.Fprintf(p.w, "typedef union %s{\n", spaceAfterName(inline.Name))
			p.printFields(inline.Fields)
			fmt.Fprintf(p.w, "} %s;\n", t.Name)
			return
		}
	case EnumType:
		if inline.HasBody {
			fmt.Fprintf(p.w, "typedef enum %s{\n", spaceAfterName(inline.Name))
			p.printEnumValues(inline.Values)
			fmt.Fprintf(p.w, "} %s;\n", t.Name)
			return
		}
	}
	fmt.Fprintf(p.w, "typedef %s;\n", FormatDecl(t.Type, t.Name))
}

func spaceAfterName(name string) string {
	if name == "" {
		return ""
	}
	return name + " "
}

func (p *Printer) printFieldBody(kw, name string, fields []Field) {
	if name != "" {
		fmt.Fprintf(p.w, "%s %s {\n", kw, name)
	} else {
		fmt.Fprintf(p.w, "%s {\n", kw)
	}
	p.printFields(fields)
	fmt.Fprintln(p.w, "};")
}

func (p *Printer) printFields(fields []Field) {
	p.indent++
	for _, field := range fields {
		p.writeIndent()
		fmt.Fprintf(p.w, "%s;\n", FormatDecl(field.Type, field.Name))
	}
	p.indent--
}

func (p *Printer) printEnumDef(e EnumDef) {
	if e.Name != "" {
		fmt.Fprintf(p.w, "enum %s {\n", e.Name)
	} else {
		fmt.Fprintln(p.w, "enum {")
	}
	p.printEnumValues(e.Values)
	fmt.Fprintln(p.w, "};")
}

func (p *Printer) printEnumValues(values []EnumValue) {
	p.indent++
	for i, val := range values {
		p.writeIndent()
		fmt.Fprint(p.w, val.Name)
		if val.Expr != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(val.Expr)
		}
		if i < len(values)-1 {
			fmt.Fprint(p.w, ",")
		}
		fmt.Fprintln(p.w)
	}
	p.indent--
}

func (p *Printer) printDecl(d Decl) {
	if d.IsTypedef {
		fmt.Fprint(p.w, "typedef ")
	}
	if d.Storage != "" {
		fmt.Fprintf(p.w, "%s ", d.Storage)
	}
	fmt.Fprint(p.w, FormatDecl(d.Type, d.Name))
	if d.Init != nil {
		fmt.Fprint(p.w, " = ")
		p.printExpr(d.Init)
	}
}

func (p *Printer) printBlock(b *Block) {
	p.writeIndent()
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, stmt := range b.Items {
		p.printStmt(stmt)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

// printSubStmt prints the body of a control statement: blocks stay at
// the current indent level, single statements indent one step.
func (p *Printer) printSubStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case Block:
		p.printBlock(&s)
	case *Block:
		p.printBlock(s)
	default:
		p.indent++
		p.printStmt(stmt)
		p.indent--
	}
}

func (p *Printer) printStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case Return:
		p.writeIndent()
		fmt.Fprint(p.w, "return")
		if s.Expr != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Expr)
		}
		fmt.Fprintln(p.w, ";")
	case Computation:
		p.writeIndent()
		p.printExpr(s.Expr)
		fmt.Fprintln(p.w, ";")
	case If:
		p.writeIndent()
		fmt.Fprint(p.w, "if (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.printSubStmt(s.Then)
		if s.Else != nil {
			p.writeIndent()
			fmt.Fprintln(p.w, "else")
			p.printSubStmt(s.Else)
		}
	case While:
		p.writeIndent()
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ")")
		p.printSubStmt(s.Body)
	case DoWhile:
		p.writeIndent()
		fmt.Fprintln(p.w, "do")
		p.printSubStmt(s.Body)
		p.writeIndent()
		fmt.Fprint(p.w, "while (")
		p.printExpr(s.Cond)
		fmt.Fprintln(p.w, ");")
	case For:
		p.writeIndent()
		fmt.Fprint(p.w, "for (")
		if len(s.InitDecl) > 0 {
			p.printDeclList(s.InitDecl)
		} else if s.Init != nil {
			p.printExpr(s.Init)
		}
		fmt.Fprint(p.w, ";")
		if s.Cond != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Cond)
		}
		fmt.Fprint(p.w, ";")
		if s.Step != nil {
			fmt.Fprint(p.w, " ")
			p.printExpr(s.Step)
		}
		fmt.Fprintln(p.w, ")")
		p.printSubStmt(s.Body)
	case Break:
		p.writeIndent()
		fmt.Fprintln(p.w, "break;")
	case Continue:
		p.writeIndent()
		fmt.Fprintln(p.w, "continue;")
	case Switch:
		p.writeIndent()
		fmt.Fprint(p.w, "switch (")
		p.printExpr(s.Expr)
		fmt.Fprintln(p.w, ") {")
		for _, c := range s.Cases {
			p.writeIndent()
			if c.Expr == nil {
				fmt.Fprintln(p.w, "default:")
			} else {
				fmt.Fprint(p.w, "case ")
				p.printExpr(c.Expr)
				fmt.Fprintln(p.w, ":")
			}
			p.indent++
			for _, cs := range c.Stmts {
				p.printStmt(cs)
			}
			p.indent--
		}
		p.writeIndent()
		fmt.Fprintln(p.w, "}")
	case Goto:
		p.writeIndent()
		fmt.Fprintf(p.w, "goto %s;\n", s.Label)
	case Label:
		p.writeIndent()
		fmt.Fprintf(p.w, "%s:\n", s.Name)
		p.printStmt(s.Stmt)
	case Empty:
		p.writeIndent()
		fmt.Fprintln(p.w, ";")
	case Block:
		p.printBlock(&s)
	case *Block:
		p.printBlock(s)
	case DeclStmt:
		p.writeIndent()
		p.printDeclList(s.Decls)
		fmt.Fprintln(p.w, ";")
	default:
		p.writeIndent()
		fmt.Fprintf(p.w, "/* unknown stmt %T */;\n", stmt)
	}
}

// printDeclList prints a declarator group sharing one specifier, as
// the parser produced it: "long first = 0, second = 1". No trailing
// semicolon, so for-loop inits can reuse it.
func (p *Printer) printDeclList(decls []Decl) {
	first := decls[0]
	if first.IsTypedef {
		fmt.Fprint(p.w, "typedef ")
	}
	if first.Storage != "" {
		fmt.Fprintf(p.w, "%s ", first.Storage)
	}
	spec, _ := declParts(first.Type, first.Name)
	fmt.Fprint(p.w, spec)
	for i, d := range decls {
		if i > 0 {
			fmt.Fprint(p.w, ",")
		}
		_, decl := declParts(d.Type, d.Name)
		if decl != "" {
			fmt.Fprintf(p.w, " %s", decl)
		}
		if d.Init != nil {
			fmt.Fprint(p.w, " = ")
			p.printExpr(d.Init)
		}
	}
}

func (p *Printer) printExpr(expr Expr) {
	switch e := expr.(type) {
	case Constant:
		if e.Text != "" {
			fmt.Fprint(p.w, e.Text)
		} else {
			fmt.Fprintf(p.w, "%d", e.Value)
		}
	case FloatConstant:
		fmt.Fprint(p.w, e.Text)
	case StringLiteral:
		fmt.Fprintf(p.w, "\"%s\"", e.Value)
	case CharLiteral:
		fmt.Fprintf(p.w, "'%s'", e.Value)
	case Variable:
		fmt.Fprint(p.w, e.Name)
	case Unary:
		p.printUnary(e)
	case Binary:
		p.printExpr(e.Left)
		fmt.Fprintf(p.w, " %s ", e.Op.String())
		p.printExpr(e.Right)
	case Paren:
		fmt.Fprint(p.w, "(")
		p.printExpr(e.Expr)
		fmt.Fprint(p.w, ")")
	case Conditional:
		p.printExpr(e.Cond)
		fmt.Fprint(p.w, " ? ")
		p.printExpr(e.Then)
		fmt.Fprint(p.w, " : ")
		p.printExpr(e.Else)
	case Call:
		p.printExpr(e.Func)
		fmt.Fprint(p.w, "(")
		for i, arg := range e.Args {
			if i > 0 {
				fmt.Fprint(p.w, ", ")
			}
			p.printExpr(arg)
		}
		fmt.Fprint(p.w, ")")
	case Index:
		p.printExpr(e.Array)
		fmt.Fprint(p.w, "[")
		p.printExpr(e.Index)
		fmt.Fprint(p.w, "]")
	case Member:
		p.printExpr(e.Expr)
		if e.IsArrow {
			fmt.Fprint(p.w, "->")
		} else {
			fmt.Fprint(p.w, ".")
		}
		fmt.Fprint(p.w, e.Name)
	case SizeofExpr:
		fmt.Fprint(p.w, "sizeof ")
		p.printExpr(e.Expr)
	case SizeofType:
		fmt.Fprintf(p.w, "sizeof(%s)", TypeString(e.Type))
	case Cast:
		fmt.Fprintf(p.w, "(%s)", TypeString(e.Type))
		p.printExpr(e.Expr)
	default:
		fmt.Fprintf(p.w, "/* unknown expr %T */", expr)
	}
}

func (p *Printer) printUnary(u Unary) {
	if u.Op.IsPostfix() {
		p.printExpr(u.Expr)
		if u.Op == OpPostInc {
			fmt.Fprint(p.w, "++")
		} else {
			fmt.Fprint(p.w, "--")
		}
		return
	}
	switch u.Op {
	case OpNeg:
		fmt.Fprint(p.w, "-")
	case OpPlus:
		fmt.Fprint(p.w, "+")
	case OpNot:
		fmt.Fprint(p.w, "!")
	case OpBitNot:
		fmt.Fprint(p.w, "~")
	case OpPreInc:
		fmt.Fprint(p.w, "++")
	case OpPreDec:
		fmt.Fprint(p.w, "--")
	case OpAddrOf:
		fmt.Fprint(p.w, "&")
	case OpDeref:
		fmt.Fprint(p.w, "*")
	default:
		fmt.Fprintf(p.w, "/* unknown unary op %d */", u.Op)
	}
	p.printExpr(u.Expr)
}
