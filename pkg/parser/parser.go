// Package parser implements a recursive descent parser for C. The
// classic typedef ambiguity is resolved through a scope-aware typedef
// context consulted wherever a type specifier may begin.
package parser

import (
	"fmt"

	"github.com/jpshackelford/ralph-cc-go/pkg/cabs"
	"github.com/jpshackelford/ralph-cc-go/pkg/lexer"
)

// SyntaxError is a positioned parse failure. The first error aborts
// the translation unit; no partial AST is ever returned.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Column, e.Msg)
}

// Parser parses C source code into a cabs AST
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []string
	err       *SyntaxError
	typedefs  *TypedefContext
}

// New creates a new Parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:        l,
		typedefs: NewTypedefContext(),
	}
	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

// Err returns the first error encountered, or nil.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

func (p *Parser) addError(msg string) {
	if p.err == nil {
		p.err = &SyntaxError{Line: p.curToken.Line, Column: p.curToken.Column, Msg: msg}
	}
	p.errors = append(p.errors, fmt.Sprintf("line %d, col %d: %s",
		p.curToken.Line, p.curToken.Column, msg))
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.addError(fmt.Sprintf(format, args...))
}

// failed reports whether the parse has already aborted.
func (p *Parser) failed() bool {
	return p.err != nil
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expect(t lexer.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf("expected %s, got %s", t, p.curToken.Type)
	return false
}

// ParseProgram parses a whole translation unit. On any lex or parse
// error it returns nil; callers never observe a partial tree.
func (p *Parser) ParseProgram() *cabs.Program {
	program := &cabs.Program{}

	for !p.curTokenIs(lexer.TokenEOF) && !p.failed() {
		defs := p.parseTopLevel()
		if p.failed() {
			return nil
		}
		program.Definitions = append(program.Definitions, defs...)
	}
	if p.failed() {
		return nil
	}
	return program
}

// parseTopLevel parses one external declaration, which may introduce
// several definitions (e.g. typedef int a, b;).
func (p *Parser) parseTopLevel() []cabs.Definition {
	specs := p.parseDeclSpecifiers()
	if p.failed() {
		return nil
	}

	// A bare struct/union/enum specifier defines a tag (or an
	// anonymous aggregate) with no declarator.
	if p.curTokenIs(lexer.TokenSemicolon) {
		p.nextToken()
		return p.tagDefinition(specs)
	}

	name, typ := p.parseDeclarator(specs.base)
	if p.failed() {
		return nil
	}

	// Function definition or prototype.
	if ft, ok := typ.(cabs.FuncType); ok && !specs.isTypedef {
		if p.curTokenIs(lexer.TokenLBrace) {
			return p.finishFunDef(specs, name, ft)
		}
		if p.curTokenIs(lexer.TokenSemicolon) {
			p.nextToken()
			return []cabs.Definition{cabs.FunDef{
				Return:   ft.Return,
				Name:     name,
				Params:   ft.Params,
				Variadic: ft.Variadic,
				Storage:  specs.storage,
			}}
		}
	}

	return p.finishDeclList(specs, name, typ)
}

// tagDefinition converts a declarator-less specifier into a top-level
// type definition.
func (p *Parser) tagDefinition(specs declSpecs) []cabs.Definition {
	switch t := specs.base.(type) {
	case cabs.StructType:
		return []cabs.Definition{cabs.StructDef{Name: t.Name, Fields: t.Fields}}
	case cabs.UnionType:
		return []cabs.Definition{cabs.UnionDef{Name: t.Name, Fields: t.Fields}}
	case cabs.EnumType:
		return []cabs.Definition{cabs.EnumDef{Name: t.Name, Values: t.Values}}
	}
	p.addError("declaration declares nothing")
	return nil
}

func (p *Parser) finishFunDef(specs declSpecs, name string, ft cabs.FuncType) []cabs.Definition {
	// Parameters and body share one scope frame.
	p.typedefs.PushScope()
	body := p.parseBlockBody()
	p.typedefs.PopScope()
	if p.failed() {
		return nil
	}
	return []cabs.Definition{cabs.FunDef{
		Return:   ft.Return,
		Name:     name,
		Params:   ft.Params,
		Variadic: ft.Variadic,
		Storage:  specs.storage,
		Body:     body,
	}}
}

// finishDeclList parses the remainder of a comma-separated declarator
// list whose first declarator is already consumed, through the
// terminating semicolon.
func (p *Parser) finishDeclList(specs declSpecs, name string, typ cabs.Type) []cabs.Definition {
	var defs []cabs.Definition

	add := func(name string, typ cabs.Type, init cabs.Expr) {
		if specs.isTypedef {
			p.typedefs.Declare(name)
			defs = append(defs, cabs.TypedefDef{Name: name, Type: typ})
			return
		}
		defs = append(defs, cabs.VarDef{Decl: cabs.Decl{
			Name:    name,
			Type:    typ,
			Init:    init,
			Storage: specs.storage,
		}})
	}

	var init cabs.Expr
	if p.curTokenIs(lexer.TokenAssign) {
		p.nextToken()
		init = p.parseAssignment()
	}
	add(name, typ, init)

	for p.curTokenIs(lexer.TokenComma) && !p.failed() {
		p.nextToken()
		name, typ := p.parseDeclarator(specs.base)
		if p.failed() {
			return nil
		}
		var init cabs.Expr
		if p.curTokenIs(lexer.TokenAssign) {
			p.nextToken()
			init = p.parseAssignment()
		}
		add(name, typ, init)
	}
	if !p.expect(lexer.TokenSemicolon) {
		return nil
	}
	if p.failed() {
		return nil
	}
	return defs
}
