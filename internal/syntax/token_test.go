package syntax

import (
	"strings"
	"testing"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		// Special tokens
		{_EOF, "EOF"},

		// Literals
		{_Name, "NAME"},
		{_Number, "NUMBER"},
		{_String, "STRING"},

		// Operators
		{_Assign, "="},
		{_OrOr, "||"},
		{_AndAnd, "&&"},
		{_Eql, "=="},
		{_Neq, "!="},
		{_Lss, "<"},
		{_Leq, "<="},
		{_Gtr, ">"},
		{_Geq, ">="},
		{_Add, "+"},
		{_Sub, "-"},
		{_Mul, "*"},
		{_Div, "/"},
		{_Rem, "%"},
		{_Not, "!"},

		// Delimiters
		{_Lparen, "("},
		{_Rparen, ")"},
		{_Lbrace, "{"},
		{_Rbrace, "}"},
		{_Comma, ","},
		{_Semi, ";"},

		// Keywords
		{_Else, "else"},
		{_Func, "func"},
		{_If, "if"},
		{_Input, "input"},
		{_Let, "let"},
		{_Print, "print"},
		{_Return, "return"},
		{_While, "while"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("Token(%d).String() = %q, want %q", tt.tok, got, tt.want)
			}
		})
	}
}

func TestTokenStringUnknown(t *testing.T) {
	tok := Token(999)
	got := tok.String()
	if !strings.HasPrefix(got, "token(") {
		t.Errorf("unknown token string = %q, want prefix 'token('", got)
	}
}

func TestTokenPrecedence(t *testing.T) {
	tests := []struct {
		tok  Token
		want int
	}{
		// Non-operators have precedence 0
		{_EOF, 0},
		{_Name, 0},
		{_Number, 0},
		{_Assign, 0},
		{_Lparen, 0},
		{_Not, 0}, // unary only

		// Precedence 1: ||
		{_OrOr, 1},

		// Precedence 2: &&
		{_AndAnd, 2},

		// Precedence 3: comparison
		{_Eql, 3},
		{_Neq, 3},
		{_Lss, 3},
		{_Leq, 3},
		{_Gtr, 3},
		{_Geq, 3},

		// Precedence 4: additive
		{_Add, 4},
		{_Sub, 4},

		// Precedence 5: multiplicative
		{_Mul, 5},
		{_Div, 5},
		{_Rem, 5},
	}

	for _, tt := range tests {
		t.Run(tt.tok.String(), func(t *testing.T) {
			if got := tt.tok.Precedence(); got != tt.want {
				t.Errorf("Token(%v).Precedence() = %d, want %d", tt.tok, got, tt.want)
			}
		})
	}
}

func TestTokenIsKeyword(t *testing.T) {
	kws := []Token{
		_Else, _Func, _If, _Input, _Let, _Print, _Return, _While,
	}

	nonKeywords := []Token{
		_EOF, _Name, _Number, _String, _Assign,
		_Add, _Sub, _Lparen, _Rparen,
	}

	for _, tok := range kws {
		if !tok.IsKeyword() {
			t.Errorf("%v.IsKeyword() = false, want true", tok)
		}
	}

	for _, tok := range nonKeywords {
		if tok.IsKeyword() {
			t.Errorf("%v.IsKeyword() = true, want false", tok)
		}
	}
}

func TestTokenIsLiteral(t *testing.T) {
	if !_Number.IsLiteral() || !_String.IsLiteral() {
		t.Error("_Number and _String should be literals")
	}

	nonLiterals := []Token{_EOF, _Name, _Assign, _Func}
	for _, tok := range nonLiterals {
		if tok.IsLiteral() {
			t.Errorf("%v.IsLiteral() = true, want false", tok)
		}
	}
}

func TestTokenIsOperator(t *testing.T) {
	operators := []Token{
		_Assign, _OrOr, _AndAnd,
		_Eql, _Neq, _Lss, _Leq, _Gtr, _Geq,
		_Add, _Sub, _Mul, _Div, _Rem,
		_Not,
	}

	nonOperators := []Token{
		_EOF, _Name, _Number, _String,
		_Lparen, _Rparen, _Lbrace, _Rbrace,
		_Func, _If, _While,
	}

	for _, tok := range operators {
		if !tok.IsOperator() {
			t.Errorf("%v.IsOperator() = false, want true", tok)
		}
	}

	for _, tok := range nonOperators {
		if tok.IsOperator() {
			t.Errorf("%v.IsOperator() = true, want false", tok)
		}
	}
}

func TestTokenIsComparison(t *testing.T) {
	comparisons := []Token{_Eql, _Neq, _Lss, _Leq, _Gtr, _Geq}
	for _, tok := range comparisons {
		if !tok.IsComparison() {
			t.Errorf("%v.IsComparison() = false, want true", tok)
		}
	}

	nonComparisons := []Token{_Assign, _Add, _AndAnd, _Not}
	for _, tok := range nonComparisons {
		if tok.IsComparison() {
			t.Errorf("%v.IsComparison() = true, want false", tok)
		}
	}
}

func TestTokenIsLogical(t *testing.T) {
	if !_AndAnd.IsLogical() || !_OrOr.IsLogical() {
		t.Error("&& and || should be logical operators")
	}
	if _Eql.IsLogical() || _Not.IsLogical() {
		t.Error("== and ! are not binary logical operators")
	}
}

func TestLookupKeyword(t *testing.T) {
	keywordTests := []struct {
		ident string
		want  Token
	}{
		{"else", _Else},
		{"func", _Func},
		{"if", _If},
		{"input", _Input},
		{"let", _Let},
		{"print", _Print},
		{"return", _Return},
		{"while", _While},
	}

	for _, tt := range keywordTests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestLookupKeywordNonKeyword(t *testing.T) {
	// Type names and ordinary identifiers should return _Name
	nonKeywords := []string{
		"number", "string",
		"foo", "bar", "Let", "While", "_underscore", "input2",
	}

	for _, ident := range nonKeywords {
		t.Run(ident, func(t *testing.T) {
			if got := LookupKeyword(ident); got != _Name {
				t.Errorf("LookupKeyword(%q) = %v, want _Name", ident, got)
			}
		})
	}
}

func TestKeywordCount(t *testing.T) {
	expectedCount := 8
	count := 0
	for tok := _Else; tok <= _While; tok++ {
		count++
	}
	if count != expectedCount {
		t.Errorf("keyword count = %d, want %d", count, expectedCount)
	}

	if len(keywords) != expectedCount {
		t.Errorf("keywords map size = %d, want %d", len(keywords), expectedCount)
	}
}
