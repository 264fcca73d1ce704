package lexer

import (
	"unicode"
)

// Lexer tokenizes C source code
type Lexer struct {
	input    string
	pos      int  // current position in input
	readPos  int  // next reading position
	ch       byte // current character
	line     int
	column   int
	filename string // set by #line directives
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Filename returns the filename set by the most recent #line directive,
// or the empty string if none was seen.
func (l *Lexer) Filename() string {
	return l.filename
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekChar2() byte {
	if l.readPos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+1]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			if tok, ok := l.skipBlockComment(); !ok {
				return tok
			}
			continue
		}
		if l.ch == '#' && l.atLineStart() {
			l.skipDirective()
			continue
		}
		break
	}

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
	case '+':
		switch l.peekChar() {
		case '+':
			tok = l.twoCharToken(TokenIncrement, "++")
		case '=':
			tok = l.twoCharToken(TokenPlusAssign, "+=")
		default:
			tok = l.newToken(TokenPlus, l.ch)
		}
	case '-':
		switch l.peekChar() {
		case '-':
			tok = l.twoCharToken(TokenDecrement, "--")
		case '=':
			tok = l.twoCharToken(TokenMinusAssign, "-=")
		case '>':
			tok = l.twoCharToken(TokenArrow, "->")
		default:
			tok = l.newToken(TokenMinus, l.ch)
		}
	case '*':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenStarAssign, "*=")
		} else {
			tok = l.newToken(TokenStar, l.ch)
		}
	case '/':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenSlashAssign, "/=")
		} else {
			tok = l.newToken(TokenSlash, l.ch)
		}
	case '%':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenPercentAssign, "%=")
		} else {
			tok = l.newToken(TokenPercent, l.ch)
		}
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenEq, "==")
		} else {
			tok = l.newToken(TokenAssign, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenNe, "!=")
		} else {
			tok = l.newToken(TokenNot, l.ch)
		}
	case '<':
		switch l.peekChar() {
		case '=':
			tok = l.twoCharToken(TokenLe, "<=")
		case '<':
			if l.peekChar2() == '=' {
				tok = l.threeCharToken(TokenShlAssign, "<<=")
			} else {
				tok = l.twoCharToken(TokenShl, "<<")
			}
		default:
			tok = l.newToken(TokenLt, l.ch)
		}
	case '>':
		switch l.peekChar() {
		case '=':
			tok = l.twoCharToken(TokenGe, ">=")
		case '>':
			if l.peekChar2() == '=' {
				tok = l.threeCharToken(TokenShrAssign, ">>=")
			} else {
				tok = l.twoCharToken(TokenShr, ">>")
			}
		default:
			tok = l.newToken(TokenGt, l.ch)
		}
	case '&':
		switch l.peekChar() {
		case '&':
			tok = l.twoCharToken(TokenAnd, "&&")
		case '=':
			tok = l.twoCharToken(TokenAndAssign, "&=")
		default:
			tok = l.newToken(TokenAmpersand, l.ch)
		}
	case '|':
		switch l.peekChar() {
		case '|':
			tok = l.twoCharToken(TokenOr, "||")
		case '=':
			tok = l.twoCharToken(TokenOrAssign, "|=")
		default:
			tok = l.newToken(TokenPipe, l.ch)
		}
	case '^':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenXorAssign, "^=")
		} else {
			tok = l.newToken(TokenCaret, l.ch)
		}
	case '~':
		tok = l.newToken(TokenTilde, l.ch)
	case '?':
		tok = l.newToken(TokenQuestion, l.ch)
	case ':':
		tok = l.newToken(TokenColon, l.ch)
	case '(':
		tok = l.newToken(TokenLParen, l.ch)
	case ')':
		tok = l.newToken(TokenRParen, l.ch)
	case '{':
		tok = l.newToken(TokenLBrace, l.ch)
	case '}':
		tok = l.newToken(TokenRBrace, l.ch)
	case '[':
		tok = l.newToken(TokenLBracket, l.ch)
	case ']':
		tok = l.newToken(TokenRBracket, l.ch)
	case ';':
		tok = l.newToken(TokenSemicolon, l.ch)
	case ',':
		tok = l.newToken(TokenComma, l.ch)
	case '.':
		if l.peekChar() == '.' && l.peekChar2() == '.' {
			tok = l.threeCharToken(TokenEllipsis, "...")
		} else {
			tok = l.newToken(TokenDot, l.ch)
		}
	case '"':
		lit, errMsg := l.readString()
		if errMsg != "" {
			tok.Type = TokenIllegal
			tok.Literal = errMsg
		} else {
			tok.Type = TokenString
			tok.Literal = lit
		}
		return tok
	case '\'':
		lit, errMsg := l.readCharLit()
		if errMsg != "" {
			tok.Type = TokenIllegal
			tok.Literal = errMsg
		} else {
			tok.Type = TokenCharLit
			tok.Literal = lit
		}
		return tok
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			tok.Literal, tok.Type = l.readNumber()
			return tok
		} else {
			tok = l.newToken(TokenIllegal, l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

func (l *Lexer) twoCharToken(tokenType TokenType, literal string) Token {
	tok := Token{Type: tokenType, Literal: literal, Line: l.line, Column: l.column}
	l.readChar()
	return tok
}

func (l *Lexer) threeCharToken(tokenType TokenType, literal string) Token {
	tok := Token{Type: tokenType, Literal: literal, Line: l.line, Column: l.column}
	l.readChar()
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// skipBlockComment consumes a /* */ comment. If the comment is not
// terminated before EOF it returns an illegal token and false.
func (l *Lexer) skipBlockComment() (Token, bool) {
	start := Token{Type: TokenIllegal, Literal: "unterminated comment", Line: l.line, Column: l.column}
	l.readChar() // consume /
	l.readChar() // consume *
	for {
		if l.ch == 0 {
			return start, false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume *
			l.readChar() // consume /
			return Token{}, true
		}
		l.readChar()
	}
}

// atLineStart reports whether only whitespace precedes the current
// character on its line.
func (l *Lexer) atLineStart() bool {
	for i := l.pos - 1; i >= 0; i-- {
		switch l.input[i] {
		case ' ', '\t', '\r':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// skipDirective consumes a preprocessor line. The content is never
// tokenized; #line and GCC-style "# N" linemarkers update the position
// the lexer reports for subsequent tokens.
func (l *Lexer) skipDirective() {
	l.readChar() // consume '#'
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	lineNum := -1
	if isLetter(l.ch) {
		word := l.readIdentifier()
		if word == "line" {
			for l.ch == ' ' || l.ch == '\t' {
				l.readChar()
			}
			if isDigit(l.ch) {
				lineNum = l.readDecimal()
			}
		}
	} else if isDigit(l.ch) {
		lineNum = l.readDecimal()
	}

	if lineNum >= 0 {
		for l.ch == ' ' || l.ch == '\t' {
			l.readChar()
		}
		if l.ch == '"' {
			if name, errMsg := l.readString(); errMsg == "" {
				l.filename = name
			}
		}
	}

	// Discard the rest of the line, including linemarker flags.
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	if lineNum >= 0 {
		// The newline is already current, so its line increment has
		// happened; the next line must report exactly lineNum.
		l.line = lineNum
	}
	if l.ch == '\n' {
		l.readChar()
	}
}

func (l *Lexer) readDecimal() int {
	n := 0
	for isDigit(l.ch) {
		n = n*10 + int(l.ch-'0')
		l.readChar()
	}
	return n
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber reads an integer or floating-point literal. The raw
// lexeme, including radix prefix and suffixes, is preserved.
func (l *Lexer) readNumber() (string, TokenType) {
	pos := l.pos
	isFloat := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // consume 0
		l.readChar() // consume x
		for isHexDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' {
			isFloat = true
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	if isFloat {
		if l.ch == 'f' || l.ch == 'F' || l.ch == 'l' || l.ch == 'L' {
			l.readChar()
		}
		return l.input[pos:l.pos], TokenFloat
	}
	for l.ch == 'u' || l.ch == 'U' || l.ch == 'l' || l.ch == 'L' {
		l.readChar()
	}
	return l.input[pos:l.pos], TokenInt
}

// readString reads a string literal body. Escape sequences are
// validated but kept raw so the printer can reproduce the source
// spelling. The second result is an error message, empty on success.
func (l *Lexer) readString() (string, string) {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return "", "unterminated string literal"
		}
		if l.ch == '\\' {
			if !validEscape(l.peekChar()) {
				return "", "invalid escape sequence"
			}
			l.readChar() // skip escaped char
		}
		l.readChar()
	}
	str := l.input[pos:l.pos]
	l.readChar() // consume closing quote
	return str, ""
}

func (l *Lexer) readCharLit() (string, string) {
	l.readChar() // consume opening quote
	pos := l.pos
	for l.ch != '\'' {
		if l.ch == 0 || l.ch == '\n' {
			return "", "unterminated character literal"
		}
		if l.ch == '\\' {
			if !validEscape(l.peekChar()) {
				return "", "invalid escape sequence"
			}
			l.readChar() // skip escaped char
		}
		l.readChar()
	}
	str := l.input[pos:l.pos]
	l.readChar() // consume closing quote
	return str, ""
}

// validEscape reports whether ch can follow a backslash in a string or
// character literal: the C simple escapes, octal digits, and \x hex.
func validEscape(ch byte) bool {
	switch ch {
	case 'n', 't', 'r', 'v', 'f', 'a', 'b', '\\', '\'', '"', '?', 'x':
		return true
	}
	return '0' <= ch && ch <= '7'
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
