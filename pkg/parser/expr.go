package parser

import (
	"github.com/jpshackelford/ralph-cc-go/pkg/cabs"
	"github.com/jpshackelford/ralph-cc-go/pkg/lexer"
)

// Binding powers for the binary operator grammar, comma lowest. The
// conditional operator sits between assignment and logical-or;
// assignment and the conditional associate to the right.
const (
	precComma = iota + 1
	precAssign
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

type opInfo struct {
	op   cabs.BinaryOp
	prec int
}

var binaryOps = map[lexer.TokenType]opInfo{
	lexer.TokenComma:     {cabs.OpComma, precComma},
	lexer.TokenOr:        {cabs.OpOr, precLogicalOr},
	lexer.TokenAnd:       {cabs.OpAnd, precLogicalAnd},
	lexer.TokenPipe:      {cabs.OpBitOr, precBitOr},
	lexer.TokenCaret:     {cabs.OpBitXor, precBitXor},
	lexer.TokenAmpersand: {cabs.OpBitAnd, precBitAnd},
	lexer.TokenEq:        {cabs.OpEq, precEquality},
	lexer.TokenNe:        {cabs.OpNe, precEquality},
	lexer.TokenLt:        {cabs.OpLt, precRelational},
	lexer.TokenLe:        {cabs.OpLe, precRelational},
	lexer.TokenGt:        {cabs.OpGt, precRelational},
	lexer.TokenGe:        {cabs.OpGe, precRelational},
	lexer.TokenShl:       {cabs.OpShl, precShift},
	lexer.TokenShr:       {cabs.OpShr, precShift},
	lexer.TokenPlus:      {cabs.OpAdd, precAdditive},
	lexer.TokenMinus:     {cabs.OpSub, precAdditive},
	lexer.TokenStar:      {cabs.OpMul, precMultiplicative},
	lexer.TokenSlash:     {cabs.OpDiv, precMultiplicative},
	lexer.TokenPercent:   {cabs.OpMod, precMultiplicative},
}

var assignOps = map[lexer.TokenType]cabs.BinaryOp{
	lexer.TokenAssign:        cabs.OpAssign,
	lexer.TokenPlusAssign:    cabs.OpAddAssign,
	lexer.TokenMinusAssign:   cabs.OpSubAssign,
	lexer.TokenStarAssign:    cabs.OpMulAssign,
	lexer.TokenSlashAssign:   cabs.OpDivAssign,
	lexer.TokenPercentAssign: cabs.OpModAssign,
	lexer.TokenAndAssign:     cabs.OpAndAssign,
	lexer.TokenOrAssign:      cabs.OpOrAssign,
	lexer.TokenXorAssign:     cabs.OpXorAssign,
	lexer.TokenShlAssign:     cabs.OpShlAssign,
	lexer.TokenShrAssign:     cabs.OpShrAssign,
}

// parseExpression parses a full expression including the comma
// operator.
func (p *Parser) parseExpression() cabs.Expr {
	return p.parseBinary(precComma)
}

// parseAssignment parses at assignment level, the grammar used for
// initializers, call arguments, and array sizes, where a comma is a
// separator rather than an operator.
func (p *Parser) parseAssignment() cabs.Expr {
	return p.parseBinary(precAssign)
}

// parseConditional parses at conditional level, as required for case
// labels and enumerator values.
func (p *Parser) parseConditional() cabs.Expr {
	return p.parseBinary(precConditional)
}

// parseBinary is a precedence climber over the binary operator table.
// Assignment and the conditional are handled here so right
// associativity falls out of reusing the same minimum precedence.
func (p *Parser) parseBinary(minPrec int) cabs.Expr {
	left := p.parseUnary()
	if p.failed() {
		return nil
	}

	for !p.failed() {
		if op, ok := assignOps[p.curToken.Type]; ok && minPrec <= precAssign {
			p.nextToken()
			right := p.parseBinary(precAssign)
			if p.failed() {
				return nil
			}
			left = cabs.Binary{Op: op, Left: left, Right: right}
			continue
		}
		if p.curTokenIs(lexer.TokenQuestion) && minPrec <= precConditional {
			p.nextToken()
			then := p.parseExpression()
			if p.failed() {
				return nil
			}
			if !p.expect(lexer.TokenColon) {
				return nil
			}
			els := p.parseBinary(precConditional)
			if p.failed() {
				return nil
			}
			left = cabs.Conditional{Cond: left, Then: then, Else: els}
			continue
		}
		info, ok := binaryOps[p.curToken.Type]
		if !ok || info.prec < minPrec {
			break
		}
		p.nextToken()
		right := p.parseBinary(info.prec + 1)
		if p.failed() {
			return nil
		}
		left = cabs.Binary{Op: info.op, Left: left, Right: right}
	}
	return left
}

var prefixOps = map[lexer.TokenType]cabs.UnaryOp{
	lexer.TokenMinus:     cabs.OpNeg,
	lexer.TokenPlus:      cabs.OpPlus,
	lexer.TokenNot:       cabs.OpNot,
	lexer.TokenTilde:     cabs.OpBitNot,
	lexer.TokenIncrement: cabs.OpPreInc,
	lexer.TokenDecrement: cabs.OpPreDec,
	lexer.TokenAmpersand: cabs.OpAddrOf,
	lexer.TokenStar:      cabs.OpDeref,
}

// parseUnary parses prefix operators, sizeof, and casts, then hands
// off to the postfix grammar.
func (p *Parser) parseUnary() cabs.Expr {
	if op, ok := prefixOps[p.curToken.Type]; ok {
		p.nextToken()
		expr := p.parseUnary()
		if p.failed() {
			return nil
		}
		return cabs.Unary{Op: op, Expr: expr}
	}

	if p.curTokenIs(lexer.TokenSizeof) {
		// sizeof(type) only when the parenthesis opens a type name;
		// otherwise the operand is a unary expression.
		if p.peekTokenIs(lexer.TokenLParen) {
			p.nextToken() // now at '('
			if p.isTypeNameStart(p.peekToken) {
				p.nextToken() // consume '('
				typ := p.parseTypeName()
				if p.failed() {
					return nil
				}
				if !p.expect(lexer.TokenRParen) {
					return nil
				}
				return cabs.SizeofType{Type: typ}
			}
			expr := p.parseUnary()
			if p.failed() {
				return nil
			}
			return cabs.SizeofExpr{Expr: expr}
		}
		p.nextToken()
		expr := p.parseUnary()
		if p.failed() {
			return nil
		}
		return cabs.SizeofExpr{Expr: expr}
	}

	if p.curTokenIs(lexer.TokenLParen) && p.isTypeNameStart(p.peekToken) {
		p.nextToken() // consume '('
		typ := p.parseTypeName()
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.TokenRParen) {
			return nil
		}
		expr := p.parseUnary()
		if p.failed() {
			return nil
		}
		return cabs.Cast{Type: typ, Expr: expr}
	}

	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by its postfix
// operators.
func (p *Parser) parsePostfix() cabs.Expr {
	expr := p.parsePrimary()
	if p.failed() {
		return nil
	}
	return p.parsePostfixFrom(expr)
}

func (p *Parser) parsePostfixFrom(expr cabs.Expr) cabs.Expr {
	for !p.failed() {
		switch {
		case p.curTokenIs(lexer.TokenLParen):
			p.nextToken()
			var args []cabs.Expr
			for !p.curTokenIs(lexer.TokenRParen) && !p.failed() {
				args = append(args, p.parseAssignment())
				if !p.curTokenIs(lexer.TokenComma) {
					break
				}
				p.nextToken()
			}
			if !p.expect(lexer.TokenRParen) {
				return nil
			}
			expr = cabs.Call{Func: expr, Args: args}
		case p.curTokenIs(lexer.TokenLBracket):
			p.nextToken()
			index := p.parseExpression()
			if p.failed() {
				return nil
			}
			if !p.expect(lexer.TokenRBracket) {
				return nil
			}
			expr = cabs.Index{Array: expr, Index: index}
		case p.curTokenIs(lexer.TokenDot), p.curTokenIs(lexer.TokenArrow):
			isArrow := p.curTokenIs(lexer.TokenArrow)
			p.nextToken()
			if !p.curTokenIs(lexer.TokenIdent) {
				p.errorf("expected member name, got %s", p.curToken.Type)
				return nil
			}
			expr = cabs.Member{Expr: expr, Name: p.curToken.Literal, IsArrow: isArrow}
			p.nextToken()
		case p.curTokenIs(lexer.TokenIncrement):
			expr = cabs.Unary{Op: cabs.OpPostInc, Expr: expr}
			p.nextToken()
		case p.curTokenIs(lexer.TokenDecrement):
			expr = cabs.Unary{Op: cabs.OpPostDec, Expr: expr}
			p.nextToken()
		default:
			return expr
		}
	}
	return nil
}

// parsePrimary parses identifiers, literals, and parenthesized
// expressions. Parentheses become explicit nodes so printed output
// parses back to the same tree.
func (p *Parser) parsePrimary() cabs.Expr {
	switch p.curToken.Type {
	case lexer.TokenIdent:
		expr := cabs.Variable{Name: p.curToken.Literal}
		p.nextToken()
		return expr
	case lexer.TokenInt:
		expr := cabs.Constant{Value: parseIntLiteral(p.curToken.Literal), Text: p.curToken.Literal}
		p.nextToken()
		return expr
	case lexer.TokenFloat:
		expr := cabs.FloatConstant{Text: p.curToken.Literal}
		p.nextToken()
		return expr
	case lexer.TokenCharLit:
		expr := cabs.CharLiteral{Value: p.curToken.Literal}
		p.nextToken()
		return expr
	case lexer.TokenString:
		expr := cabs.StringLiteral{Value: p.curToken.Literal}
		p.nextToken()
		return expr
	case lexer.TokenLParen:
		p.nextToken()
		inner := p.parseExpression()
		if p.failed() {
			return nil
		}
		if !p.expect(lexer.TokenRParen) {
			return nil
		}
		return cabs.Paren{Expr: inner}
	case lexer.TokenIllegal:
		p.addError(p.curToken.Literal)
		return nil
	}
	p.errorf("expected expression, got %s", p.curToken.Type)
	return nil
}
