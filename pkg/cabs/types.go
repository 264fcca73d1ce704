package cabs

import (
	"strings"

	"github.com/jpshackelford/ralph-cc-go/pkg/ctypes"
)

// Type is the interface for all type descriptors. A descriptor is
// exclusively owned by the declaration that introduces it; array sizes
// may reference expressions (variable-length arrays).
type Type interface {
	Node
	implCabsType()
}

// BaseType is a built-in arithmetic or void type with qualifiers.
type BaseType struct {
	Spec     ctypes.Type
	Const    bool
	Volatile bool
	Restrict bool
}

// NamedType references a typedef'd name.
type NamedType struct {
	Name     string
	Const    bool
	Volatile bool
}

// StructType references or defines a struct type. Fields is non-nil
// only when the specifier carried a body.
type StructType struct {
	Name    string // empty for anonymous
	Fields  []Field
	HasBody bool
}

// UnionType references or defines a union type.
type UnionType struct {
	Name    string
	Fields  []Field
	HasBody bool
}

// EnumType references or defines an enum type.
type EnumType struct {
	Name    string
	Values  []EnumValue
	HasBody bool
}

// PointerType is pointer-to-Elem.
type PointerType struct {
	Elem Type
}

// ArrayType is array-of-Elem. Size is nil for an unspecified bound;
// a non-constant Size expression denotes a variable-length array and
// is preserved as written.
type ArrayType struct {
	Elem Type
	Size Expr
}

// FuncType is function-returning-Return.
type FuncType struct {
	Return   Type
	Params   []Param
	Variadic bool
}

// Field is one struct or union member.
type Field struct {
	Name string
	Type Type
}

// EnumValue is one enumeration constant. Expr is nil when the value
// was implicit; Value is always resolved (explicit constant, or one
// greater than the previous constant, starting at zero).
type EnumValue struct {
	Name  string
	Expr  Expr
	Value int64
}

func (BaseType) implCabsNode()    {}
func (BaseType) implCabsType()    {}
func (NamedType) implCabsNode()   {}
func (NamedType) implCabsType()   {}
func (StructType) implCabsNode()  {}
func (StructType) implCabsType()  {}
func (UnionType) implCabsNode()   {}
func (UnionType) implCabsType()   {}
func (EnumType) implCabsNode()    {}
func (EnumType) implCabsType()    {}
func (PointerType) implCabsNode() {}
func (PointerType) implCabsType() {}
func (ArrayType) implCabsNode()   {}
func (ArrayType) implCabsType()   {}
func (FuncType) implCabsNode()    {}
func (FuncType) implCabsType()    {}

// specString renders the leading specifier of a declaration: the base
// type with its qualifiers, or the struct/union/enum/typedef reference.
func specString(t Type) string {
	switch ty := t.(type) {
	case BaseType:
		var b strings.Builder
		if ty.Const {
			b.WriteString("const ")
		}
		if ty.Volatile {
			b.WriteString("volatile ")
		}
		if ty.Restrict {
			b.WriteString("restrict ")
		}
		b.WriteString(ty.Spec.String())
		return b.String()
	case NamedType:
		var b strings.Builder
		if ty.Const {
			b.WriteString("const ")
		}
		if ty.Volatile {
			b.WriteString("volatile ")
		}
		b.WriteString(ty.Name)
		return b.String()
	case StructType:
		if ty.Name == "" {
			return "struct <anonymous>"
		}
		return "struct " + ty.Name
	case UnionType:
		if ty.Name == "" {
			return "union <anonymous>"
		}
		return "union " + ty.Name
	case EnumType:
		if ty.Name == "" {
			return "enum <anonymous>"
		}
		return "enum " + ty.Name
	}
	return "?"
}

// FormatDecl renders a declarator in C syntax: the type descriptor
// wrapped around the declared name, inside-out. An empty name yields
// an abstract declarator, e.g. "int (*)(int, int)".
func FormatDecl(t Type, name string) string {
	spec, decl := declParts(t, name)
	if decl == "" {
		return spec
	}
	return spec + " " + decl
}

// declParts splits a declaration into the leading specifier and the
// declarator text wrapped around the name, so a declarator group can
// share one printed specifier ("long first = 0, second = 1").
func declParts(t Type, name string) (string, string) {
	switch ty := t.(type) {
	case PointerType:
		inner := "*" + name
		switch ty.Elem.(type) {
		case ArrayType, FuncType:
			inner = "(" + inner + ")"
		}
		return declParts(ty.Elem, inner)
	case ArrayType:
		size := ""
		if ty.Size != nil {
			size = ExprString(ty.Size)
		}
		return declParts(ty.Elem, name+"["+size+"]")
	case FuncType:
		var b strings.Builder
		b.WriteString(name)
		b.WriteString("(")
		for i, p := range ty.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatDecl(p.Type, p.Name))
		}
		if ty.Variadic {
			if len(ty.Params) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("...")
		}
		b.WriteString(")")
		return declParts(ty.Return, b.String())
	default:
		return specString(t), name
	}
}

// TypeString renders a type descriptor without a declared name, the
// form used in casts, sizeof, and the tree dump.
func TypeString(t Type) string {
	return FormatDecl(t, "")
}

// TypeEqual compares two type descriptors structurally. Array sizes
// compare by their printed expression, so VLA bounds match only when
// spelled alike.
func TypeEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ta := a.(type) {
	case BaseType:
		tb, ok := b.(BaseType)
		return ok && ctypes.Equal(ta.Spec, tb.Spec) &&
			ta.Const == tb.Const && ta.Volatile == tb.Volatile && ta.Restrict == tb.Restrict
	case NamedType:
		tb, ok := b.(NamedType)
		return ok && ta.Name == tb.Name && ta.Const == tb.Const && ta.Volatile == tb.Volatile
	case StructType:
		tb, ok := b.(StructType)
		return ok && ta.Name == tb.Name
	case UnionType:
		tb, ok := b.(UnionType)
		return ok && ta.Name == tb.Name
	case EnumType:
		tb, ok := b.(EnumType)
		return ok && ta.Name == tb.Name
	case PointerType:
		tb, ok := b.(PointerType)
		return ok && TypeEqual(ta.Elem, tb.Elem)
	case ArrayType:
		tb, ok := b.(ArrayType)
		if !ok || !TypeEqual(ta.Elem, tb.Elem) {
			return false
		}
		if (ta.Size == nil) != (tb.Size == nil) {
			return false
		}
		return ta.Size == nil || ExprString(ta.Size) == ExprString(tb.Size)
	case FuncType:
		tb, ok := b.(FuncType)
		if !ok || ta.Variadic != tb.Variadic || len(ta.Params) != len(tb.Params) {
			return false
		}
		if !TypeEqual(ta.Return, tb.Return) {
			return false
		}
		for i, p := range ta.Params {
			if !TypeEqual(p.Type, tb.Params[i].Type) {
				return false
			}
		}
		return true
	}
	return false
}
