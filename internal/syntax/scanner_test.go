package syntax

import (
	"strings"
	"testing"
)

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifiers (ASI inserts ; at EOF for _Name)
		{"ident", "foo", []Token{_Name, _Semi}, []string{"foo", "EOF"}},
		{"ident_underscore", "_bar", []Token{_Name, _Semi}, []string{"_bar", "EOF"}},
		{"ident_mixed", "foo123", []Token{_Name, _Semi}, []string{"foo123", "EOF"}},
		{"ident_caps", "FooBar", []Token{_Name, _Semi}, []string{"FooBar", "EOF"}},

		// Type names are NOT keywords, just names bound in the universe scope
		{"typename_number", "number", []Token{_Name, _Semi}, []string{"number", "EOF"}},
		{"typename_string", "string", []Token{_Name, _Semi}, []string{"string", "EOF"}},

		// Number literals (ASI inserts ; at EOF)
		{"num_int", "123", []Token{_Number, _Semi}, []string{"123", "EOF"}},
		{"num_zero", "0", []Token{_Number, _Semi}, []string{"0", "EOF"}},
		{"num_frac", "3.14", []Token{_Number, _Semi}, []string{"3.14", "EOF"}},
		{"num_trailing_dot", "3.", []Token{_Number, _Semi}, []string{"3.", "EOF"}},
		{"num_leading_zero", "007", []Token{_Number, _Semi}, []string{"007", "EOF"}},

		// String literals (decoded content)
		{"string_simple", `"hello"`, []Token{_String, _Semi}, []string{"hello", "EOF"}},
		{"string_empty", `""`, []Token{_String, _Semi}, []string{"", "EOF"}},
		{"string_escape_n", `"a\nb"`, []Token{_String, _Semi}, []string{"a\nb", "EOF"}},
		{"string_escape_t", `"a\tb"`, []Token{_String, _Semi}, []string{"a\tb", "EOF"}},
		{"string_escape_r", `"a\rb"`, []Token{_String, _Semi}, []string{"a\rb", "EOF"}},
		{"string_escape_backslash", `"a\\b"`, []Token{_String, _Semi}, []string{"a\\b", "EOF"}},
		{"string_escape_quote", `"a\"b"`, []Token{_String, _Semi}, []string{"a\"b", "EOF"}},

		// Single-char operators (no ASI for most operators)
		{"op_add", "+", []Token{_Add}, []string{"+"}},
		{"op_sub", "-", []Token{_Sub}, []string{"-"}},
		{"op_mul", "*", []Token{_Mul}, []string{"*"}},
		{"op_div", "/", []Token{_Div}, []string{"/"}},
		{"op_rem", "%", []Token{_Rem}, []string{"%"}},
		{"op_not", "!", []Token{_Not}, []string{"!"}},
		{"op_lss", "<", []Token{_Lss}, []string{"<"}},
		{"op_gtr", ">", []Token{_Gtr}, []string{">"}},
		{"op_assign", "=", []Token{_Assign}, []string{"="}},

		// Two-char operators
		{"op_andand", "&&", []Token{_AndAnd}, []string{"&&"}},
		{"op_oror", "||", []Token{_OrOr}, []string{"||"}},
		{"op_eql", "==", []Token{_Eql}, []string{"=="}},
		{"op_neq", "!=", []Token{_Neq}, []string{"!="}},
		{"op_leq", "<=", []Token{_Leq}, []string{"<="}},
		{"op_geq", ">=", []Token{_Geq}, []string{">="}},

		// Delimiters (ASI for ) and })
		{"delim_lparen", "(", []Token{_Lparen}, []string{"("}},
		{"delim_rparen", ")", []Token{_Rparen, _Semi}, []string{")", "EOF"}},
		{"delim_lbrace", "{", []Token{_Lbrace}, []string{"{"}},
		{"delim_rbrace", "}", []Token{_Rbrace, _Semi}, []string{"}", "EOF"}},
		{"delim_comma", ",", []Token{_Comma}, []string{","}},
		{"delim_semi", ";", []Token{_Semi}, []string{";"}},

		// Keywords (ASI only for return)
		{"kw_else", "else", []Token{_Else}, []string{"else"}},
		{"kw_func", "func", []Token{_Func}, []string{"func"}},
		{"kw_if", "if", []Token{_If}, []string{"if"}},
		{"kw_input", "input", []Token{_Input}, []string{"input"}},
		{"kw_let", "let", []Token{_Let}, []string{"let"}},
		{"kw_print", "print", []Token{_Print}, []string{"print"}},
		{"kw_return", "return", []Token{_Return, _Semi}, []string{"return", "EOF"}},
		{"kw_while", "while", []Token{_While}, []string{"while"}},

		// Compound expressions (last token triggers ASI)
		{"expr_add", "1 + 2", []Token{_Number, _Add, _Number, _Semi}, []string{"1", "+", "2", "EOF"}},
		{"expr_call", "foo()", []Token{_Name, _Lparen, _Rparen, _Semi}, []string{"foo", "(", ")", "EOF"}},
		{"expr_compare", "a == b", []Token{_Name, _Eql, _Name, _Semi}, []string{"a", "==", "b", "EOF"}},
		{"expr_logical", "a && b || c", []Token{_Name, _AndAnd, _Name, _OrOr, _Name, _Semi}, []string{"a", "&&", "b", "||", "c", "EOF"}},
		{"stmt_assign", "x = 1", []Token{_Name, _Assign, _Number, _Semi}, []string{"x", "=", "1", "EOF"}},
		{"stmt_let", "let x = 1", []Token{_Let, _Name, _Assign, _Number, _Semi}, []string{"let", "x", "=", "1", "EOF"}},

		// Comments
		{"comment_skip", "a # comment\nb", []Token{_Name, _Semi, _Name, _Semi}, []string{"a", "newline", "b", "EOF"}},
		{"comment_eof", "a # comment", []Token{_Name, _Semi}, []string{"a", "EOF"}},
		{"comment_only", "# just a comment", []Token{}, []string{}},

		// Whitespace handling
		{"whitespace_spaces", "  a  ", []Token{_Name, _Semi}, []string{"a", "EOF"}},
		{"whitespace_tabs", "\ta\t", []Token{_Name, _Semi}, []string{"a", "EOF"}},
		{"whitespace_mixed", " \t a \t ", []Token{_Name, _Semi}, []string{"a", "EOF"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner("test", strings.NewReader(tt.src), nil)
			for i, wantTok := range tt.tokens {
				s.Next()
				if s.Token() != wantTok {
					t.Errorf("token %d: got %v, want %v", i, s.Token(), wantTok)
				}
				if tt.lits != nil && tt.lits[i] != "" {
					if s.Literal() != tt.lits[i] {
						t.Errorf("literal %d: got %q, want %q", i, s.Literal(), tt.lits[i])
					}
				}
			}
			s.Next()
			if !s.Token().IsEOF() {
				t.Errorf("expected EOF, got %v %q", s.Token(), s.Literal())
			}
		})
	}
}

func TestASI(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		// Identifier followed by newline
		{
			"ident_newline",
			"foo\nbar",
			[]Token{_Name, _Semi, _Name},
			[]string{"foo", "newline", "bar"},
		},
		// Number followed by newline
		{
			"number_newline",
			"123\n456",
			[]Token{_Number, _Semi, _Number},
			[]string{"123", "newline", "456"},
		},
		// return followed by newline
		{
			"return_newline",
			"return\n1",
			[]Token{_Return, _Semi, _Number},
			[]string{"return", "newline", "1"},
		},
		// ) followed by newline
		{
			"rparen_newline",
			"foo()\nbar",
			[]Token{_Name, _Lparen, _Rparen, _Semi, _Name},
			[]string{"foo", "(", ")", "newline", "bar"},
		},
		// } followed by newline
		{
			"rbrace_newline",
			"{\n}\nfoo",
			[]Token{_Lbrace, _Rbrace, _Semi, _Name},
			[]string{"{", "}", "newline", "foo"},
		},
		// + followed by newline (no ASI)
		{
			"add_newline",
			"1 +\n2",
			[]Token{_Number, _Add, _Number},
			[]string{"1", "+", "2"},
		},
		// = followed by newline (no ASI)
		{
			"assign_newline",
			"x =\n1",
			[]Token{_Name, _Assign, _Number},
			[]string{"x", "=", "1"},
		},
		// , followed by newline (no ASI)
		{
			"comma_newline",
			"a,\nb",
			[]Token{_Name, _Comma, _Name},
			[]string{"a", ",", "b"},
		},
		// ASI at EOF
		{
			"ident_eof",
			"foo",
			[]Token{_Name, _Semi},
			[]string{"foo", "EOF"},
		},
		// Multiple newlines collapse to one semicolon
		{
			"multiple_newlines",
			"foo\n\n\nbar",
			[]Token{_Name, _Semi, _Name},
			[]string{"foo", "newline", "bar"},
		},
		// Comment does not block ASI
		{
			"comment_before_newline",
			"foo # trailing\nbar",
			[]Token{_Name, _Semi, _Name},
			[]string{"foo", "newline", "bar"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner("test", strings.NewReader(tt.src), nil)
			for i, wantTok := range tt.tokens {
				s.Next()
				if s.Token() != wantTok {
					t.Errorf("token %d: got %v, want %v", i, s.Token(), wantTok)
				}
				if tt.lits[i] != "" {
					if s.Literal() != tt.lits[i] {
						t.Errorf("literal %d: got %q, want %q", i, s.Literal(), tt.lits[i])
					}
				}
			}
		})
	}
}

func TestASIDisabled(t *testing.T) {
	src := "foo\nbar"
	s := NewScanner("test", strings.NewReader(src), nil)
	s.SetASIEnabled(false)

	// Without ASI, newlines are just skipped
	s.Next()
	if s.Token() != _Name || s.Literal() != "foo" {
		t.Errorf("got %v %q, want NAME foo", s.Token(), s.Literal())
	}

	s.Next()
	if s.Token() != _Name || s.Literal() != "bar" {
		t.Errorf("got %v %q, want NAME bar", s.Token(), s.Literal())
	}

	s.Next()
	if !s.Token().IsEOF() {
		t.Errorf("expected EOF, got %v", s.Token())
	}
}

func TestPosition(t *testing.T) {
	src := `let total = 0

func foo() {
    total = 123
}`

	expected := []struct {
		tok  Token
		line uint32
		col  uint32
	}{
		{_Let, 1, 1},
		{_Name, 1, 5},    // total
		{_Assign, 1, 11}, // =
		{_Number, 1, 13}, // 0
		{_Semi, 1, 14},   // ASI at newline
		{_Func, 3, 1},    // after blank line
		{_Name, 3, 6},    // foo
		{_Lparen, 3, 9},  // (
		{_Rparen, 3, 10}, // )
		{_Lbrace, 3, 12}, // {
		{_Name, 4, 5},    // total
		{_Assign, 4, 11}, // =
		{_Number, 4, 13}, // 123
		{_Semi, 4, 16},   // ASI
		{_Rbrace, 5, 1},  // }
		{_Semi, 5, 2},    // ASI at EOF
	}

	s := NewScanner("test.tai", strings.NewReader(src), nil)
	for i, exp := range expected {
		s.Next()
		pos := s.Pos()
		if s.Token() != exp.tok {
			t.Errorf("token %d: got %v, want %v", i, s.Token(), exp.tok)
		}
		if pos.Line() != exp.line || pos.Col() != exp.col {
			t.Errorf("token %d (%v): pos = %d:%d, want %d:%d",
				i, s.Token(), pos.Line(), pos.Col(), exp.line, exp.col)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unterminated_string", `"hello`, "string not terminated"},
		{"string_over_newline", "\"hello\nworld\"", "string not terminated"},
		{"bad_escape", `"\q"`, "unknown escape sequence"},
		{"bad_char", "@", "unexpected character"},
		{"bad_char_dollar", "$", "unexpected character"},
		{"lone_amp", "a & b", "did you mean '&&'"},
		{"lone_pipe", "a | b", "did you mean '||'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errMsg string
			errh := func(pos Pos, msg string) {
				if errMsg == "" { // capture first error only
					errMsg = msg
				}
			}
			s := NewScanner("test", strings.NewReader(tt.src), errh)
			for {
				s.Next()
				if s.Token().IsEOF() {
					break
				}
			}
			if errMsg == "" {
				t.Errorf("expected error containing %q, got no error", tt.wantErr)
			} else if !strings.Contains(errMsg, tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, errMsg)
			}
		})
	}
}

// A lexical error ends the token stream so later stages never see a
// partial program.
func TestScanErrorIsTerminal(t *testing.T) {
	src := "let x = 1\n@\nlet y = 2"

	var errCount int
	errh := func(pos Pos, msg string) { errCount++ }

	s := NewScanner("test", strings.NewReader(src), errh)
	var tokens []Token
	for {
		s.Next()
		if s.Token().IsEOF() {
			break
		}
		tokens = append(tokens, s.Token())
	}

	if errCount != 1 {
		t.Errorf("expected 1 error, got %d", errCount)
	}
	// Tokens after the bad character must not appear.
	for _, tok := range tokens {
		if tok == _Let && len(tokens) > 6 {
			t.Errorf("scanner produced tokens past the lexical error: %v", tokens)
			break
		}
	}
	if len(tokens) != 5 { // let x = 1 ;
		t.Errorf("expected 5 tokens before the error, got %d: %v", len(tokens), tokens)
	}

	// The stream stays at EOF afterwards.
	s.Next()
	if !s.Token().IsEOF() {
		t.Errorf("expected EOF after terminal error, got %v", s.Token())
	}
}

func TestScanErrorPosition(t *testing.T) {
	src := "let x = 1\n  @"

	var errPos Pos
	errh := func(pos Pos, msg string) {
		if !errPos.IsValid() {
			errPos = pos
		}
	}

	s := NewScanner("test", strings.NewReader(src), errh)
	for {
		s.Next()
		if s.Token().IsEOF() {
			break
		}
	}

	if errPos.Line() != 2 || errPos.Col() != 3 {
		t.Errorf("error position = %d:%d, want 2:3", errPos.Line(), errPos.Col())
	}
}

func TestCompleteProgram(t *testing.T) {
	src := `# sum of squares up to a limit
func square(x number) number {
    return x * x
}

let limit = 10
let total = 0
let i = 1

while i <= limit {
    total = total + square(i)
    i = i + 1
}

print "sum of squares:"
print total
`

	s := NewScanner("test.tai", strings.NewReader(src), nil)
	tokenCount := 0
	for {
		s.Next()
		tokenCount++
		if s.Token().IsEOF() {
			break
		}
		if tokenCount > 1000 {
			t.Fatal("too many tokens, possible infinite loop")
		}
	}

	// Just verify it doesn't crash and produces a reasonable number of tokens
	if tokenCount < 50 {
		t.Errorf("expected at least 50 tokens, got %d", tokenCount)
	}
}

func TestCommentsInCode(t *testing.T) {
	src := `# This is a comment
let x = 1 # another comment

# Comment before func
func foo() { # inline comment
    print x # print it
    # standalone comment
    return # bare return
}
`

	expected := []Token{
		_Let, _Name, _Assign, _Number, _Semi,
		_Func, _Name, _Lparen, _Rparen, _Lbrace,
		_Print, _Name, _Semi,
		_Return, _Semi,
		_Rbrace, _Semi,
	}

	s := NewScanner("test.tai", strings.NewReader(src), nil)
	for i, wantTok := range expected {
		s.Next()
		if s.Token() != wantTok {
			t.Errorf("token %d: got %v, want %v", i, s.Token(), wantTok)
		}
	}
}

func FuzzScanner(f *testing.F) {
	// Seed corpus
	seeds := []string{
		"let x = 1",
		"func foo() number { return 123 }",
		`let s = "hello\nworld"`,
		"x = 1.5 + 2.",
		"if a && b || c { }",
		"while i < 10 { i = i + 1 }",
		"print \"hi\"",
		"input n",
		"# comment\nfoo()",
		"!(-1)",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		errh := func(pos Pos, msg string) {
			// Errors are acceptable, we just don't want panics
		}
		s := NewScanner("fuzz", strings.NewReader(src), errh)
		for i := 0; i < 10000; i++ { // Prevent infinite loops
			s.Next()
			if s.Token().IsEOF() {
				break
			}
		}
	})
}
