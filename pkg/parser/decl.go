package parser

import (
	"strconv"
	"strings"

	"github.com/jpshackelford/ralph-cc-go/pkg/cabs"
	"github.com/jpshackelford/ralph-cc-go/pkg/ctypes"
	"github.com/jpshackelford/ralph-cc-go/pkg/lexer"
)

// declSpecs is the result of parsing a declaration-specifier sequence:
// one base type shared by every declarator that follows.
type declSpecs struct {
	storage   string
	isTypedef bool
	base      cabs.Type
}

// typeKeywords are the tokens that can begin a type specifier.
var typeKeywords = map[lexer.TokenType]bool{
	lexer.TokenVoid:     true,
	lexer.TokenChar:     true,
	lexer.TokenShort:    true,
	lexer.TokenInt_:     true,
	lexer.TokenLong:     true,
	lexer.TokenFloat_:   true,
	lexer.TokenDouble:   true,
	lexer.TokenSigned:   true,
	lexer.TokenUnsigned: true,
	lexer.TokenStruct:   true,
	lexer.TokenUnion:    true,
	lexer.TokenEnum:     true,
	lexer.TokenConst:    true,
	lexer.TokenVolatile: true,
	lexer.TokenRestrict: true,
}

var storageKeywords = map[lexer.TokenType]string{
	lexer.TokenStatic:   "static",
	lexer.TokenExtern:   "extern",
	lexer.TokenAuto:     "auto",
	lexer.TokenRegister: "register",
}

// isDeclarationStart reports whether the current token can begin a
// declaration. An identifier counts only when the typedef context
// knows it as a type name.
func (p *Parser) isDeclarationStart() bool {
	if typeKeywords[p.curToken.Type] || p.curTokenIs(lexer.TokenTypedef) || p.curTokenIs(lexer.TokenInline) {
		return true
	}
	if _, ok := storageKeywords[p.curToken.Type]; ok {
		return true
	}
	return p.curTokenIs(lexer.TokenIdent) && p.typedefs.IsTypeName(p.curToken.Literal)
}

// isTypeNameStart reports whether tok can begin a type name (for casts
// and sizeof); storage classes are excluded.
func (p *Parser) isTypeNameStart(tok lexer.Token) bool {
	if typeKeywords[tok.Type] {
		return true
	}
	return tok.Type == lexer.TokenIdent && p.typedefs.IsTypeName(tok.Literal)
}

// parseDeclSpecifiers consumes storage classes, qualifiers, and type
// specifiers, combining multi-keyword arithmetic types (unsigned long
// long, signed char, ...) into one base type.
func (p *Parser) parseDeclSpecifiers() declSpecs {
	var specs declSpecs
	var isConst, isVolatile, isRestrict bool
	var hasVoid, hasChar, hasShort, hasInt, hasFloat, hasDouble bool
	var longCount int
	var sign ctypes.Signedness
	var hasSign, sawArith bool

	for !p.failed() {
		switch {
		case p.curTokenIs(lexer.TokenTypedef):
			specs.isTypedef = true
			p.nextToken()
		case storageKeywords[p.curToken.Type] != "":
			specs.storage = storageKeywords[p.curToken.Type]
			p.nextToken()
		case p.curTokenIs(lexer.TokenConst):
			isConst = true
			p.nextToken()
		case p.curTokenIs(lexer.TokenVolatile):
			isVolatile = true
			p.nextToken()
		case p.curTokenIs(lexer.TokenRestrict):
			isRestrict = true
			p.nextToken()
		case p.curTokenIs(lexer.TokenInline):
			// accepted and dropped; carries no parse-level meaning
			p.nextToken()
		case p.curTokenIs(lexer.TokenVoid):
			hasVoid, sawArith = true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenChar):
			hasChar, sawArith = true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenShort):
			hasShort, sawArith = true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenInt_):
			hasInt, sawArith = true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenLong):
			longCount++
			sawArith = true
			p.nextToken()
		case p.curTokenIs(lexer.TokenFloat_):
			hasFloat, sawArith = true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenDouble):
			hasDouble, sawArith = true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenSigned):
			sign, hasSign, sawArith = ctypes.Signed, true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenUnsigned):
			sign, hasSign, sawArith = ctypes.Unsigned, true, true
			p.nextToken()
		case p.curTokenIs(lexer.TokenStruct):
			specs.base = p.parseStructOrUnion(false)
			return specs
		case p.curTokenIs(lexer.TokenUnion):
			specs.base = p.parseStructOrUnion(true)
			return specs
		case p.curTokenIs(lexer.TokenEnum):
			specs.base = p.parseEnumSpecifier()
			return specs
		case p.curTokenIs(lexer.TokenIdent) && !sawArith && p.typedefs.IsTypeName(p.curToken.Literal):
			specs.base = cabs.NamedType{Name: p.curToken.Literal, Const: isConst, Volatile: isVolatile}
			p.nextToken()
			return specs
		default:
			if !sawArith {
				p.errorf("expected type specifier, got %s", p.curToken.Type)
				return specs
			}
			specs.base = cabs.BaseType{
				Spec:     combineArith(hasVoid, hasChar, hasShort, hasInt, hasFloat, hasDouble, longCount, sign, hasSign),
				Const:    isConst,
				Volatile: isVolatile,
				Restrict: isRestrict,
			}
			return specs
		}
	}
	return specs
}

// combineArith maps a multiset of arithmetic type keywords onto one
// base type, per the C specifier-combination rules.
func combineArith(hasVoid, hasChar, hasShort, hasInt, hasFloat, hasDouble bool, longCount int, sign ctypes.Signedness, hasSign bool) ctypes.Type {
	switch {
	case hasVoid:
		return ctypes.Void()
	case hasChar:
		return ctypes.Tint{Size: ctypes.I8, Sign: sign}
	case hasFloat:
		return ctypes.Float()
	case hasDouble:
		return ctypes.Double()
	case hasShort:
		return ctypes.Tint{Size: ctypes.I16, Sign: sign}
	case longCount > 0:
		return ctypes.Tlong{Sign: sign}
	case hasInt || hasSign:
		return ctypes.Tint{Size: ctypes.I32, Sign: sign}
	}
	return ctypes.Int()
}

// typeWrap transforms a base type into the type a declarator denotes.
type typeWrap func(cabs.Type) cabs.Type

func identityWrap(t cabs.Type) cabs.Type { return t }

// parseDeclarator parses one (possibly abstract) declarator over the
// given base type, following the C declarator spiral: pointers bind to
// the declarator, array and parameter-list suffixes bind tighter, and
// parentheses regroup.
func (p *Parser) parseDeclarator(base cabs.Type) (string, cabs.Type) {
	name, wrap := p.declaratorWrap()
	if p.failed() {
		return "", nil
	}
	return name, wrap(base)
}

// declaratorWrap parses a declarator and returns the declared name
// together with a function that wraps a base type into the declared
// type. Deferring the wrapping keeps the parse single-pass: suffixes
// apply to the base before an inner parenthesized declarator does.
func (p *Parser) declaratorWrap() (string, typeWrap) {
	if p.curTokenIs(lexer.TokenStar) {
		p.nextToken()
		// Pointer qualifiers are accepted and discarded.
		for p.curTokenIs(lexer.TokenConst) || p.curTokenIs(lexer.TokenVolatile) || p.curTokenIs(lexer.TokenRestrict) {
			p.nextToken()
		}
		name, inner := p.declaratorWrap()
		return name, func(t cabs.Type) cabs.Type {
			return inner(cabs.PointerType{Elem: t})
		}
	}

	var name string
	inner := identityWrap
	switch {
	case p.curTokenIs(lexer.TokenIdent):
		name = p.curToken.Literal
		p.nextToken()
	case p.curTokenIs(lexer.TokenLParen) && p.parenIsDeclarator():
		p.nextToken()
		name, inner = p.declaratorWrap()
		if !p.expect(lexer.TokenRParen) {
			return "", identityWrap
		}
	}

	suffix := p.declSuffixWrap()
	return name, func(t cabs.Type) cabs.Type {
		return inner(suffix(t))
	}
}

// parenIsDeclarator disambiguates '(' in direct-declarator position:
// a nested declarator when followed by *, another (, or an identifier
// that is not a type name; otherwise a parameter list.
func (p *Parser) parenIsDeclarator() bool {
	switch p.peekToken.Type {
	case lexer.TokenStar, lexer.TokenLParen:
		return true
	case lexer.TokenIdent:
		return !p.typedefs.IsTypeName(p.peekToken.Literal)
	}
	return false
}

// declSuffixWrap parses the array and parameter-list suffixes of a
// direct declarator and returns their combined type transformation.
func (p *Parser) declSuffixWrap() typeWrap {
	type suffix struct {
		isFunc   bool
		size     cabs.Expr
		params   []cabs.Param
		variadic bool
	}
	var suffixes []suffix

	for !p.failed() {
		if p.curTokenIs(lexer.TokenLBracket) {
			p.nextToken()
			var size cabs.Expr
			if !p.curTokenIs(lexer.TokenRBracket) {
				size = p.parseAssignment()
			}
			if !p.expect(lexer.TokenRBracket) {
				return identityWrap
			}
			suffixes = append(suffixes, suffix{size: size})
		} else if p.curTokenIs(lexer.TokenLParen) {
			params, variadic := p.parseParamList()
			suffixes = append(suffixes, suffix{isFunc: true, params: params, variadic: variadic})
		} else {
			break
		}
	}

	return func(t cabs.Type) cabs.Type {
		for i := len(suffixes) - 1; i >= 0; i-- {
			s := suffixes[i]
			if s.isFunc {
				t = cabs.FuncType{Return: t, Params: s.params, Variadic: s.variadic}
			} else {
				t = cabs.ArrayType{Elem: t, Size: s.size}
			}
		}
		return t
	}
}

// parseParamList parses a parenthesized parameter-type list. A lone
// void means no parameters; a trailing ellipsis marks a variadic
// function.
func (p *Parser) parseParamList() ([]cabs.Param, bool) {
	p.nextToken() // consume '('

	if p.curTokenIs(lexer.TokenRParen) {
		p.nextToken()
		return nil, false
	}
	if p.curTokenIs(lexer.TokenVoid) && p.peekTokenIs(lexer.TokenRParen) {
		p.nextToken()
		p.nextToken()
		return nil, false
	}

	var params []cabs.Param
	variadic := false
	for !p.failed() {
		if p.curTokenIs(lexer.TokenEllipsis) {
			variadic = true
			p.nextToken()
			break
		}
		specs := p.parseDeclSpecifiers()
		if p.failed() {
			return nil, false
		}
		name, typ := p.parseDeclarator(specs.base)
		if p.failed() {
			return nil, false
		}
		params = append(params, cabs.Param{Name: name, Type: typ})
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	p.expect(lexer.TokenRParen)
	return params, variadic
}

// parseStructOrUnion parses a struct or union specifier: a tag
// reference, or a definition with a member list, or both.
func (p *Parser) parseStructOrUnion(isUnion bool) cabs.Type {
	p.nextToken() // consume 'struct' or 'union'

	var name string
	if p.curTokenIs(lexer.TokenIdent) {
		name = p.curToken.Literal
		p.nextToken()
	}

	if !p.curTokenIs(lexer.TokenLBrace) {
		if name == "" {
			p.addError("expected struct name or member list")
			return nil
		}
		if isUnion {
			return cabs.UnionType{Name: name}
		}
		return cabs.StructType{Name: name}
	}

	p.nextToken() // consume '{'
	var fields []cabs.Field
	for !p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) && !p.failed() {
		specs := p.parseDeclSpecifiers()
		if p.failed() {
			return nil
		}
		for !p.failed() {
			fname, ftype := p.parseDeclarator(specs.base)
			if p.failed() {
				return nil
			}
			fields = append(fields, cabs.Field{Name: fname, Type: ftype})
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
		if !p.expect(lexer.TokenSemicolon) {
			return nil
		}
	}
	if !p.expect(lexer.TokenRBrace) {
		return nil
	}

	if isUnion {
		return cabs.UnionType{Name: name, Fields: fields, HasBody: true}
	}
	return cabs.StructType{Name: name, Fields: fields, HasBody: true}
}

// parseEnumSpecifier parses an enum specifier. Enumeration constants
// take an explicit integer-constant value or one greater than the
// previous constant, starting at zero.
func (p *Parser) parseEnumSpecifier() cabs.Type {
	p.nextToken() // consume 'enum'

	var name string
	if p.curTokenIs(lexer.TokenIdent) {
		name = p.curToken.Literal
		p.nextToken()
	}

	if !p.curTokenIs(lexer.TokenLBrace) {
		if name == "" {
			p.addError("expected enum name or enumerator list")
			return nil
		}
		return cabs.EnumType{Name: name}
	}

	p.nextToken() // consume '{'
	var values []cabs.EnumValue
	next := int64(0)
	for !p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) && !p.failed() {
		if !p.curTokenIs(lexer.TokenIdent) {
			p.errorf("expected enumerator name, got %s", p.curToken.Type)
			return nil
		}
		val := cabs.EnumValue{Name: p.curToken.Literal}
		p.nextToken()
		if p.curTokenIs(lexer.TokenAssign) {
			p.nextToken()
			val.Expr = p.parseConditional()
			if p.failed() {
				return nil
			}
			if v, ok := evalConstExpr(val.Expr); ok {
				next = v
			}
		}
		val.Value = next
		next++
		values = append(values, val)
		if p.curTokenIs(lexer.TokenComma) {
			p.nextToken()
		}
	}
	if !p.expect(lexer.TokenRBrace) {
		return nil
	}
	return cabs.EnumType{Name: name, Values: values, HasBody: true}
}

// parseTypeName parses a type name as used in casts and sizeof:
// specifiers followed by an optional abstract declarator.
func (p *Parser) parseTypeName() cabs.Type {
	specs := p.parseDeclSpecifiers()
	if p.failed() {
		return nil
	}
	name, typ := p.parseDeclarator(specs.base)
	if name != "" {
		p.errorf("unexpected declared name %q in type name", name)
		return nil
	}
	return typ
}

// evalConstExpr folds the small class of integer-constant expressions
// the grammar needs resolved (enumerator values). Anything beyond it
// keeps the spelled expression.
func evalConstExpr(e cabs.Expr) (int64, bool) {
	switch v := e.(type) {
	case cabs.Constant:
		return v.Value, true
	case cabs.Paren:
		return evalConstExpr(v.Expr)
	case cabs.Unary:
		x, ok := evalConstExpr(v.Expr)
		if !ok {
			return 0, false
		}
		switch v.Op {
		case cabs.OpNeg:
			return -x, true
		case cabs.OpPlus:
			return x, true
		case cabs.OpBitNot:
			return ^x, true
		case cabs.OpNot:
			if x == 0 {
				return 1, true
			}
			return 0, true
		}
		return 0, false
	case cabs.Binary:
		l, ok := evalConstExpr(v.Left)
		if !ok {
			return 0, false
		}
		r, ok := evalConstExpr(v.Right)
		if !ok {
			return 0, false
		}
		switch v.Op {
		case cabs.OpAdd:
			return l + r, true
		case cabs.OpSub:
			return l - r, true
		case cabs.OpMul:
			return l * r, true
		case cabs.OpDiv:
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case cabs.OpMod:
			if r == 0 {
				return 0, false
			}
			return l % r, true
		case cabs.OpShl:
			return l << uint(r), true
		case cabs.OpShr:
			return l >> uint(r), true
		case cabs.OpBitAnd:
			return l & r, true
		case cabs.OpBitOr:
			return l | r, true
		case cabs.OpBitXor:
			return l ^ r, true
		}
		return 0, false
	}
	return 0, false
}

// parseIntLiteral converts an integer lexeme, stripping any
// u/l suffixes; the radix prefix selects the base.
func parseIntLiteral(text string) int64 {
	s := strings.TrimRight(text, "uUlL")
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return int64(v)
	}
	return 0
}
