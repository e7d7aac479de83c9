// Package compile wires the compiler stages into a single entry point:
// Taipan source in, C source or diagnostics out.
//
// Stages run strictly in order: lexing, parsing, semantic analysis,
// code generation. A stage with errors stops the pipeline, so no C is
// ever produced for an invalid program.
package compile

import (
	"bytes"
	"strings"

	"github.com/taipan-lang/taipan/internal/codegen"
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/sema"
	"github.com/taipan-lang/taipan/internal/syntax"
)

// Options configures a compilation.
type Options struct {
	// DisableASI turns off automatic semicolon insertion, requiring
	// explicit semicolons after every statement.
	DisableASI bool
}

// Compile translates Taipan source text to C.
// On success it returns the generated C and an empty diagnostic list.
// On failure it returns an empty string and the diagnostics in report
// order.
func Compile(filename, src string, opts *Options) (string, []diag.Diagnostic) {
	if opts == nil {
		opts = &Options{}
	}
	var bag diag.Bag

	// Lexing. The scanner stops at its first error, so this pass
	// reports at most one diagnostic; running it separately keeps
	// lexical errors distinguishable from syntax errors.
	s := syntax.NewScanner(filename, strings.NewReader(src), func(pos syntax.Pos, msg string) {
		bag.Errorf(diag.LexicalError, pos, "%s", msg)
	})
	s.SetASIEnabled(!opts.DisableASI)
	for {
		s.Next()
		if s.Token() == syntax.EOF {
			break
		}
	}
	if bag.HasErrors() {
		return "", bag.All()
	}

	// Parsing
	p := syntax.NewParser(filename, strings.NewReader(src), func(pos syntax.Pos, msg string) {
		bag.Errorf(diag.SyntaxError, pos, "%s", msg)
	})
	p.SetASIEnabled(!opts.DisableASI)
	file := p.Parse()
	if bag.HasErrors() {
		return "", bag.All()
	}

	// Semantic analysis
	info := &sema.Info{}
	conf := &sema.Config{
		Error: func(code diag.Code, pos syntax.Pos, msg string) {
			bag.Errorf(code, pos, "%s", msg)
		},
	}
	sema.Check(file, conf, info)
	if bag.HasErrors() {
		return "", bag.All()
	}

	// Code generation
	var buf bytes.Buffer
	if err := codegen.Generate(&buf, file, info); err != nil {
		bag.Errorf(diag.InternalError, file.Pos(), "code generation failed: %v", err)
		return "", bag.All()
	}
	return buf.String(), bag.All()
}
