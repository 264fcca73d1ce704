package cabs

import (
	"fmt"
	"io"
	"strings"
)

// Dumper writes the canonical AST dump: one node per line, two-space
// indentation encoding nesting, each node labeled with its kind and
// defining attributes. Output is byte-deterministic for a given tree,
// so dumps can serve as golden-file oracles.
type Dumper struct {
	w     io.Writer
	depth int
}

// NewDumper creates a Dumper writing to w.
func NewDumper(w io.Writer) *Dumper {
	return &Dumper{w: w}
}

// DumpString renders the dump of a whole program as a string.
func DumpString(prog *Program) string {
	var b strings.Builder
	NewDumper(&b).DumpProgram(prog)
	return b.String()
}

// DumpProgram dumps every top-level definition in source order.
func (d *Dumper) DumpProgram(prog *Program) {
	for _, def := range prog.Definitions {
		d.dumpDefinition(def)
	}
}

func (d *Dumper) line(format string, args ...interface{}) {
	fmt.Fprint(d.w, strings.Repeat("  ", d.depth))
	fmt.Fprintf(d.w, format, args...)
	fmt.Fprintln(d.w)
}

func (d *Dumper) nested(f func()) {
	d.depth++
	f()
	d.depth--
}

func (d *Dumper) dumpDefinition(def Definition) {
	switch t := def.(type) {
	case FunDef:
		label := "FunDef"
		if t.Body == nil {
			label = "FunDecl"
		}
		if t.Storage != "" {
			d.line("%s %s '%s' %s", label, t.Name, TypeString(t.FuncType()), t.Storage)
		} else {
			d.line("%s %s '%s'", label, t.Name, TypeString(t.FuncType()))
		}
		if t.Body != nil {
			d.nested(func() { d.dumpStmt(*t.Body) })
		}
	case VarDef:
		d.dumpDecl(t.Decl)
	case TypedefDef:
		d.line("TypedefDef %s '%s'", t.Name, TypeString(t.Type))
		d.dumpTypeBody(t.Type)
	case StructDef:
		d.line("StructDef %s", anonName(t.Name))
		d.nested(func() { d.dumpFields(t.Fields) })
	case UnionDef:
		d.line("UnionDef %s", anonName(t.Name))
		d.nested(func() { d.dumpFields(t.Fields) })
	case EnumDef:
		d.line("EnumDef %s", anonName(t.Name))
		d.nested(func() { d.dumpEnumValues(t.Values) })
	default:
		d.line("Unknown %T", def)
	}
}

func anonName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}

// dumpTypeBody emits members of struct/union/enum specifiers that
// carry a body, so inline definitions are visible in the dump.
func (d *Dumper) dumpTypeBody(t Type) {
	switch ty := t.(type) {
	case StructType:
		if ty.HasBody {
			d.nested(func() { d.dumpFields(ty.Fields) })
		}
	case UnionType:
		if ty.HasBody {
			d.nested(func() { d.dumpFields(ty.Fields) })
		}
	case EnumType:
		if ty.HasBody {
			d.nested(func() { d.dumpEnumValues(ty.Values) })
		}
	}
}

func (d *Dumper) dumpFields(fields []Field) {
	for _, f := range fields {
		d.line("Field %s '%s'", f.Name, TypeString(f.Type))
	}
}

func (d *Dumper) dumpEnumValues(values []EnumValue) {
	for _, v := range values {
		d.line("EnumConst %s %d", v.Name, v.Value)
	}
}

func (d *Dumper) dumpDecl(decl Decl) {
	label := "Decl"
	if decl.IsTypedef {
		label = "TypedefDef"
	}
	if decl.Storage != "" {
		d.line("%s %s '%s' %s", label, decl.Name, TypeString(decl.Type), decl.Storage)
	} else {
		d.line("%s %s '%s'", label, decl.Name, TypeString(decl.Type))
	}
	d.dumpTypeBody(decl.Type)
	if decl.Init != nil {
		d.nested(func() { d.dumpExpr(decl.Init) })
	}
}

func (d *Dumper) dumpStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case Block:
		d.line("Block")
		d.nested(func() {
			for _, item := range s.Items {
				d.dumpStmt(item)
			}
		})
	case *Block:
		d.dumpStmt(*s)
	case Computation:
		d.line("Computation")
		d.nested(func() { d.dumpExpr(s.Expr) })
	case Return:
		d.line("Return")
		if s.Expr != nil {
			d.nested(func() { d.dumpExpr(s.Expr) })
		}
	case If:
		d.line("If")
		d.nested(func() {
			d.dumpExpr(s.Cond)
			d.dumpStmt(s.Then)
			if s.Else != nil {
				d.line("Else")
				d.nested(func() { d.dumpStmt(s.Else) })
			}
		})
	case While:
		d.line("While")
		d.nested(func() {
			d.dumpExpr(s.Cond)
			d.dumpStmt(s.Body)
		})
	case DoWhile:
		d.line("DoWhile")
		d.nested(func() {
			d.dumpStmt(s.Body)
			d.dumpExpr(s.Cond)
		})
	case For:
		d.line("For")
		d.nested(func() {
			if len(s.InitDecl) > 0 {
				d.line("Init")
				d.nested(func() {
					for _, decl := range s.InitDecl {
						d.dumpDecl(decl)
					}
				})
			} else if s.Init != nil {
				d.line("Init")
				d.nested(func() { d.dumpExpr(s.Init) })
			}
			if s.Cond != nil {
				d.line("Cond")
				d.nested(func() { d.dumpExpr(s.Cond) })
			}
			if s.Step != nil {
				d.line("Step")
				d.nested(func() { d.dumpExpr(s.Step) })
			}
			d.dumpStmt(s.Body)
		})
	case Switch:
		d.line("Switch")
		d.nested(func() {
			d.dumpExpr(s.Expr)
			for _, c := range s.Cases {
				if c.Expr == nil {
					d.line("Default")
				} else {
					d.line("Case %s", ExprString(c.Expr))
				}
				d.nested(func() {
					for _, cs := range c.Stmts {
						d.dumpStmt(cs)
					}
				})
			}
		})
	case Break:
		d.line("Break")
	case Continue:
		d.line("Continue")
	case Goto:
		d.line("Goto %s", s.Label)
	case Label:
		d.line("Label %s", s.Name)
		d.nested(func() { d.dumpStmt(s.Stmt) })
	case Empty:
		d.line("Empty")
	case DeclStmt:
		d.line("DeclStmt")
		d.nested(func() {
			for _, decl := range s.Decls {
				d.dumpDecl(decl)
			}
		})
	default:
		d.line("Unknown %T", stmt)
	}
}

func (d *Dumper) dumpExpr(expr Expr) {
	switch e := expr.(type) {
	case Constant:
		d.line("Constant %d", e.Value)
	case FloatConstant:
		d.line("FloatConstant %s", e.Text)
	case StringLiteral:
		d.line("StringLiteral \"%s\"", e.Value)
	case CharLiteral:
		d.line("CharLiteral '%s'", e.Value)
	case Variable:
		d.line("Variable %s", e.Name)
	case Unary:
		d.line("Unary %s", e.Op)
		d.nested(func() { d.dumpExpr(e.Expr) })
	case Binary:
		d.line("Binary %s", e.Op)
		d.nested(func() {
			d.dumpExpr(e.Left)
			d.dumpExpr(e.Right)
		})
	case Paren:
		d.line("Paren")
		d.nested(func() { d.dumpExpr(e.Expr) })
	case Conditional:
		d.line("Conditional")
		d.nested(func() {
			d.dumpExpr(e.Cond)
			d.dumpExpr(e.Then)
			d.dumpExpr(e.Else)
		})
	case Call:
		d.line("Call")
		d.nested(func() {
			d.dumpExpr(e.Func)
			for _, arg := range e.Args {
				d.dumpExpr(arg)
			}
		})
	case Index:
		d.line("Index")
		d.nested(func() {
			d.dumpExpr(e.Array)
			d.dumpExpr(e.Index)
		})
	case Member:
		if e.IsArrow {
			d.line("Member ->%s", e.Name)
		} else {
			d.line("Member .%s", e.Name)
		}
		d.nested(func() { d.dumpExpr(e.Expr) })
	case SizeofExpr:
		d.line("SizeofExpr")
		d.nested(func() { d.dumpExpr(e.Expr) })
	case SizeofType:
		d.line("SizeofType '%s'", TypeString(e.Type))
	case Cast:
		d.line("Cast '%s'", TypeString(e.Type))
		d.nested(func() { d.dumpExpr(e.Expr) })
	default:
		d.line("Unknown %T", expr)
	}
}
