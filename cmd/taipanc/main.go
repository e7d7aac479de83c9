// Package main implements the Taipan compiler entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/taipan-lang/taipan/internal/compile"
	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
)

// Compiler flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	noASI      = flag.Bool("no-asi", false, "Disable automatic semicolon insertion")
	emitC      = flag.Bool("c", false, "Output generated C instead of building")
	output     = flag.String("o", "", "Output file")
	runProg    = flag.Bool("run", false, "Build and run the program")
	ccPath     = flag.String("cc", "", "C compiler to use (default: $CC, cc, clang, gcc)")
	rtPath     = flag.String("runtime", "", "Path to the runtime C source (default: discovered runtime/std.c)")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Taipan Compiler %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: taipanc [options] <file.tai>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("taipanc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: taipanc [options] <file.tai>")
		os.Exit(1)
	}

	filename := args[0]

	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}
	if *emitAST {
		os.Exit(runEmitAST(filename))
	}

	os.Exit(runCompile(filename))
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	s := syntax.NewScanner(filename, f, errh)
	if *noASI {
		s.SetASIEnabled(false)
	}

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		fmt.Printf("%-20s %-12s %s\n", s.Pos().String(), s.Token().String(), formatLiteral(s.Literal()))
		if s.Token() == syntax.EOF {
			break
		}
	}

	if len(errs) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}
	return 0
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	p := syntax.NewParser(filename, f, errh)
	if *noASI {
		p.SetASIEnabled(false)
	}
	ast := p.Parse()

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// runCompile translates the input file to C and, unless -c is given,
// builds it against the runtime with the system C compiler.
func runCompile(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	opts := &compile.Options{DisableASI: *noASI}
	code, diags := compile.Compile(filename, string(src), opts)
	printDiags(diags)
	if code == "" {
		return 1
	}

	if *emitC {
		if *output == "" || *output == "-" {
			fmt.Print(code)
			return 0
		}
		if err := os.WriteFile(*output, []byte(code), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	cc, err := findCC()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	rt, err := findRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	tmpDir, err := os.MkdirTemp("", "taipanc")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer os.RemoveAll(tmpDir)

	cFile := filepath.Join(tmpDir, "out.c")
	if err := os.WriteFile(cFile, []byte(code), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	binFile := *output
	if binFile == "" {
		binFile = strings.TrimSuffix(filepath.Base(filename), ".tai")
	}
	if *runProg && *output == "" {
		binFile = filepath.Join(tmpDir, "a.out")
	}

	cmd := exec.Command(cc, "-O2", "-o", binFile, cFile, rt, "-lm")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s failed:\n%s%v\n", cc, out, err)
		return 1
	}

	if *runProg {
		run := exec.Command(binFile)
		run.Stdin = os.Stdin
		run.Stdout = os.Stdout
		run.Stderr = os.Stderr
		if err := run.Run(); err != nil {
			if exit, ok := err.(*exec.ExitError); ok {
				return exit.ExitCode()
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}
	return 0
}

// printDiags renders diagnostics to stderr, one per line.
func printDiags(diags []diag.Diagnostic) {
	color := colorEnabled()
	for _, d := range diags {
		if color {
			fmt.Fprintf(os.Stderr, "\033[1m%s:\033[0m \033[31m%s:\033[0m %s\n", d.Pos, d.Code, d.Msg)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", d.Pos, d.Code, d.Msg)
		}
	}
}

// findCC locates a C compiler: the -cc flag, $CC, then cc, clang, gcc
// on PATH.
func findCC() (string, error) {
	candidates := []string{*ccPath, os.Getenv("CC"), "cc", "clang", "gcc"}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if path, err := exec.LookPath(c); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no C compiler found (tried cc, clang, gcc; set -cc or $CC)")
}

// findRuntime locates runtime/std.c: the -runtime flag, then walking up
// from the working directory.
func findRuntime() (string, error) {
	if *rtPath != "" {
		return *rtPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, "runtime", "std.c")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("runtime/std.c not found; set -runtime")
		}
		dir = parent
	}
}
