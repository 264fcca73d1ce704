package parser

import (
	"github.com/jpshackelford/ralph-cc-go/pkg/cabs"
	"github.com/jpshackelford/ralph-cc-go/pkg/lexer"
)

// parseBlockBody parses a brace-enclosed sequence of declarations and
// statements. The caller decides which scope frame the block runs in;
// nested blocks push their own.
func (p *Parser) parseBlockBody() *cabs.Block {
	if !p.expect(lexer.TokenLBrace) {
		return nil
	}
	block := &cabs.Block{}
	for !p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) && !p.failed() {
		stmt := p.parseStatement()
		if p.failed() {
			return nil
		}
		block.Items = append(block.Items, stmt)
	}
	if !p.expect(lexer.TokenRBrace) {
		return nil
	}
	return block
}

// parseBlock parses a compound statement in its own scope.
func (p *Parser) parseBlock() *cabs.Block {
	p.typedefs.PushScope()
	block := p.parseBlockBody()
	p.typedefs.PopScope()
	return block
}

func (p *Parser) parseStatement() cabs.Stmt {
	switch p.curToken.Type {
	case lexer.TokenReturn:
		return p.parseReturn()
	case lexer.TokenIf:
		return p.parseIf()
	case lexer.TokenWhile:
		return p.parseWhile()
	case lexer.TokenDo:
		return p.parseDoWhile()
	case lexer.TokenFor:
		return p.parseFor()
	case lexer.TokenSwitch:
		return p.parseSwitch()
	case lexer.TokenBreak:
		p.nextToken()
		if !p.expect(lexer.TokenSemicolon) {
			return nil
		}
		return cabs.Break{}
	case lexer.TokenContinue:
		p.nextToken()
		if !p.expect(lexer.TokenSemicolon) {
			return nil
		}
		return cabs.Continue{}
	case lexer.TokenGoto:
		p.nextToken()
		if !p.curTokenIs(lexer.TokenIdent) {
			p.errorf("expected label after goto, got %s", p.curToken.Type)
			return nil
		}
		label := p.curToken.Literal
		p.nextToken()
		if !p.expect(lexer.TokenSemicolon) {
			return nil
		}
		return cabs.Goto{Label: label}
	case lexer.TokenLBrace:
		block := p.parseBlock()
		if p.failed() {
			return nil
		}
		return *block
	case lexer.TokenSemicolon:
		p.nextToken()
		return cabs.Empty{}
	case lexer.TokenIdent:
		// A labeled statement: the identifier is followed by a colon
		// and is not part of an expression.
		if p.peekTokenIs(lexer.TokenColon) && !p.typedefs.IsTypeName(p.curToken.Literal) {
			name := p.curToken.Literal
			p.nextToken()
			p.nextToken()
			stmt := p.parseStatement()
			if p.failed() {
				return nil
			}
			return cabs.Label{Name: name, Stmt: stmt}
		}
	}

	if p.isDeclarationStart() {
		decls := p.parseLocalDecls()
		if p.failed() {
			return nil
		}
		return cabs.DeclStmt{Decls: decls}
	}

	return p.parseExprStatement()
}

func (p *Parser) parseExprStatement() cabs.Stmt {
	expr := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.TokenSemicolon) {
		return nil
	}
	return cabs.Computation{Expr: expr}
}

func (p *Parser) parseReturn() cabs.Stmt {
	p.nextToken()
	var value cabs.Expr
	if !p.curTokenIs(lexer.TokenSemicolon) {
		value = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.TokenSemicolon) {
		return nil
	}
	return cabs.Return{Expr: value}
}

// parseIf resolves the dangling else naturally: the else binds to the
// nearest unmatched if because the inner parseStatement consumes it
// first.
func (p *Parser) parseIf() cabs.Stmt {
	p.nextToken()
	cond := p.parseParenExpr()
	if p.failed() {
		return nil
	}
	then := p.parseStatement()
	if p.failed() {
		return nil
	}
	stmt := cabs.If{Cond: cond, Then: then}
	if p.curTokenIs(lexer.TokenElse) {
		p.nextToken()
		els := p.parseStatement()
		if p.failed() {
			return nil
		}
		stmt.Else = els
	}
	return stmt
}

func (p *Parser) parseWhile() cabs.Stmt {
	p.nextToken()
	cond := p.parseParenExpr()
	if p.failed() {
		return nil
	}
	body := p.parseStatement()
	if p.failed() {
		return nil
	}
	return cabs.While{Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile() cabs.Stmt {
	p.nextToken()
	body := p.parseStatement()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.TokenWhile) {
		return nil
	}
	cond := p.parseParenExpr()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.TokenSemicolon) {
		return nil
	}
	return cabs.DoWhile{Cond: cond, Body: body}
}

// parseFor parses for statements with any combination of empty
// clauses. A declaration in the init clause scopes to the loop.
func (p *Parser) parseFor() cabs.Stmt {
	p.nextToken()
	if !p.expect(lexer.TokenLParen) {
		return nil
	}

	p.typedefs.PushScope()
	defer p.typedefs.PopScope()

	stmt := cabs.For{}
	switch {
	case p.curTokenIs(lexer.TokenSemicolon):
		p.nextToken()
	case p.isDeclarationStart():
		stmt.InitDecl = p.parseLocalDecls()
		if p.failed() {
			return nil
		}
	default:
		stmt.Init = p.parseExpression()
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.TokenSemicolon) {
			return nil
		}
	}

	if !p.curTokenIs(lexer.TokenSemicolon) {
		stmt.Cond = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.TokenSemicolon) {
		return nil
	}

	if !p.curTokenIs(lexer.TokenRParen) {
		stmt.Step = p.parseExpression()
		if p.failed() {
			return nil
		}
	}
	if !p.expect(lexer.TokenRParen) {
		return nil
	}

	stmt.Body = p.parseStatement()
	if p.failed() {
		return nil
	}
	return stmt
}

// parseSwitch groups the body statements under their case and default
// labels, keeping fall-through: a case with no break simply ends where
// the next label starts.
func (p *Parser) parseSwitch() cabs.Stmt {
	p.nextToken()
	expr := p.parseParenExpr()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.TokenLBrace) {
		return nil
	}

	p.typedefs.PushScope()
	defer p.typedefs.PopScope()

	var cases []cabs.Case
	for !p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) && !p.failed() {
		var c cabs.Case
		switch {
		case p.curTokenIs(lexer.TokenCase):
			p.nextToken()
			c.Expr = p.parseConditional()
			if p.failed() {
				return nil
			}
			if !p.expect(lexer.TokenColon) {
				return nil
			}
		case p.curTokenIs(lexer.TokenDefault):
			p.nextToken()
			if !p.expect(lexer.TokenColon) {
				return nil
			}
		default:
			p.errorf("expected case or default, got %s", p.curToken.Type)
			return nil
		}

		for !p.curTokenIs(lexer.TokenCase) && !p.curTokenIs(lexer.TokenDefault) &&
			!p.curTokenIs(lexer.TokenRBrace) && !p.curTokenIs(lexer.TokenEOF) && !p.failed() {
			stmt := p.parseStatement()
			if p.failed() {
				return nil
			}
			c.Stmts = append(c.Stmts, stmt)
		}
		cases = append(cases, c)
	}
	if !p.expect(lexer.TokenRBrace) {
		return nil
	}
	return cabs.Switch{Expr: expr, Cases: cases}
}

func (p *Parser) parseParenExpr() cabs.Expr {
	if !p.expect(lexer.TokenLParen) {
		return nil
	}
	expr := p.parseExpression()
	if p.failed() {
		return nil
	}
	if !p.expect(lexer.TokenRParen) {
		return nil
	}
	return expr
}

// parseLocalDecls parses one block-scope declaration through its
// semicolon, registering typedef names in the current scope.
func (p *Parser) parseLocalDecls() []cabs.Decl {
	specs := p.parseDeclSpecifiers()
	if p.failed() {
		return nil
	}

	var decls []cabs.Decl
	for !p.failed() {
		name, typ := p.parseDeclarator(specs.base)
		if p.failed() {
			return nil
		}
		var init cabs.Expr
		if p.curTokenIs(lexer.TokenAssign) {
			p.nextToken()
			init = p.parseAssignment()
			if p.failed() {
				return nil
			}
		}
		if specs.isTypedef {
			p.typedefs.Declare(name)
		}
		decls = append(decls, cabs.Decl{
			Name:      name,
			Type:      typ,
			Init:      init,
			Storage:   specs.storage,
			IsTypedef: specs.isTypedef,
		})
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	if !p.expect(lexer.TokenSemicolon) {
		return nil
	}
	return decls
}
