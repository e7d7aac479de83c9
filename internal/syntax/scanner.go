package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner performs lexical analysis on Taipan source code.
// It produces a lazy, finite token sequence terminated by an EOF token.
// A lexical error is terminal: the scanner reports it and ends the
// stream, so an ill-formed program never reaches later stages.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token  // token type
	lit    string // token literal (identifier name, number text, decoded string)
	tokPos Pos    // token start position

	// ASI (automatic semicolon insertion) state
	nlsemi bool // whether to insert semicolon at newline

	// Configuration
	asiEnabled bool // whether ASI is enabled (default true)

	// Terminal error state
	bad bool // set after a lexical error; forces EOF

	// Literal accumulation
	litBuf strings.Builder
}

// NewScanner creates a new Scanner for the given source.
// The errh function is called for each lexical error; if nil, errors
// are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(pos Pos, msg string)) *Scanner {
	s := &Scanner{
		source:     *newSource(filename, src, errh),
		asiEnabled: true,
	}
	return s
}

// SetASIEnabled enables or disables automatic semicolon insertion.
func (s *Scanner) SetASIEnabled(enabled bool) {
	s.asiEnabled = enabled
}

// Next advances to the next token.
func (s *Scanner) Next() {
	if s.bad {
		s.tok = _EOF
		s.lit = ""
		return
	}

	// 1. Check if we need to insert a semicolon at newline/EOF
	nlsemi := s.nlsemi
	s.nlsemi = false

redo:
	// 2. Skip whitespace (not including '\n') and comments
	s.skipWhitespace()
	if s.ch == '#' {
		s.skipLineComment()
	}

	// 3. ASI: insert semicolon before newline or EOF if needed
	if s.asiEnabled && nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	// 4. Skip newlines when not inserting a semicolon
	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	// 5. Record token start position
	s.tokPos = s.pos()

	// 6. Scan token based on current character
	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case isOperatorStart(s.ch):
		s.scanOperator()

	default:
		s.fail(s.tokPos, fmt.Sprintf("unexpected character %q", s.ch))
		return
	}

	// 7. Set nlsemi flag for next token
	s.nlsemi = s.shouldInsertSemi()
}

// Token returns the current token type.
func (s *Scanner) Token() Token {
	return s.tok
}

// Literal returns the current token's literal value.
// For number tokens this is the source text; for string tokens it is
// the decoded content.
func (s *Scanner) Literal() string {
	return s.lit
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tokPos
}

// fail reports a terminal lexical error and ends the token stream.
func (s *Scanner) fail(pos Pos, msg string) {
	s.errorAt(pos, msg)
	s.bad = true
	s.tok = _EOF
	s.lit = ""
}

// skipWhitespace skips space, tab, and carriage return.
// Newline is NOT skipped here because it may trigger ASI.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// skipLineComment skips a # comment (from # to end of line).
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

// shouldInsertSemi reports whether a semicolon should be inserted
// after the current token when followed by a newline.
func (s *Scanner) shouldInsertSemi() bool {
	switch s.tok {
	case _Name, _Number, _String:
		return true
	case _Return:
		return true
	case _Rparen, _Rbrace:
		return true
	}
	return false
}

// startLit begins accumulating a literal.
func (s *Scanner) startLit() {
	s.litBuf.Reset()
	s.litBuf.WriteRune(s.ch)
}

// continueLit adds the current character to the literal being accumulated.
func (s *Scanner) continueLit() {
	s.litBuf.WriteRune(s.ch)
}

// stopLit ends literal accumulation and returns the accumulated string.
func (s *Scanner) stopLit() string {
	return s.litBuf.String()
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	s.startLit()
	s.nextch()

	for isLetter(s.ch) || isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	s.lit = s.stopLit()

	// Check if it's a keyword
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a number literal: a decimal integer with an
// optional fraction (42, 3.14, 42.). The literal text is preserved so
// the code generator can reproduce it verbatim.
func (s *Scanner) scanNumber() {
	s.startLit()
	s.nextch()

	for isDigit(s.ch) {
		s.continueLit()
		s.nextch()
	}

	if s.ch == '.' {
		s.continueLit()
		s.nextch()
		for isDigit(s.ch) {
			s.continueLit()
			s.nextch()
		}
	}

	s.lit = s.stopLit()
	s.tok = _Number
}

// scanString scans a string literal.
// The resulting literal is the decoded string content (escape
// sequences are interpreted).
func (s *Scanner) scanString() {
	s.nextch() // skip opening "
	var b strings.Builder

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			s.tok = _String
			return

		case s.ch == '\\':
			r, ok := s.scanEscape()
			if !ok {
				return // terminal error already reported
			}
			b.WriteRune(r)

		case s.ch == '\n' || s.ch < 0:
			s.fail(s.tokPos, "string not terminated")
			return

		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// scanEscape scans an escape sequence and returns the decoded rune.
// The supported set is fixed: \n \t \r \\ \".
func (s *Scanner) scanEscape() (rune, bool) {
	pos := s.pos()
	s.nextch() // skip \

	switch s.ch {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\':
		s.nextch()
		return '\\', true
	case '"':
		s.nextch()
		return '"', true
	default:
		s.fail(pos, fmt.Sprintf("unknown escape sequence: \\%c", s.ch))
		return 0, false
	}
}

// scanOperator scans an operator or delimiter.
func (s *Scanner) scanOperator() {
	pos := s.tokPos
	ch := s.ch
	s.nextch()

	switch ch {
	case '+':
		s.tok = _Add
		s.lit = "+"
	case '-':
		s.tok = _Sub
		s.lit = "-"
	case '*':
		s.tok = _Mul
		s.lit = "*"
	case '/':
		s.tok = _Div
		s.lit = "/"
	case '%':
		s.tok = _Rem
		s.lit = "%"
	case '&':
		if s.ch == '&' {
			s.nextch()
			s.tok = _AndAnd
			s.lit = "&&"
		} else {
			s.fail(pos, "unexpected character '&' (did you mean '&&'?)")
		}
	case '|':
		if s.ch == '|' {
			s.nextch()
			s.tok = _OrOr
			s.lit = "||"
		} else {
			s.fail(pos, "unexpected character '|' (did you mean '||'?)")
		}
	case '<':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Leq
			s.lit = "<="
		} else {
			s.tok = _Lss
			s.lit = "<"
		}
	case '>':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Geq
			s.lit = ">="
		} else {
			s.tok = _Gtr
			s.lit = ">"
		}
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Eql
			s.lit = "=="
		} else {
			s.tok = _Assign
			s.lit = "="
		}
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Neq
			s.lit = "!="
		} else {
			s.tok = _Not
			s.lit = "!"
		}
	case '(':
		s.tok = _Lparen
		s.lit = "("
	case ')':
		s.tok = _Rparen
		s.lit = ")"
	case '{':
		s.tok = _Lbrace
		s.lit = "{"
	case '}':
		s.tok = _Rbrace
		s.lit = "}"
	case ',':
		s.tok = _Comma
		s.lit = ","
	case ';':
		s.tok = _Semi
		s.lit = ";"
	}
}
