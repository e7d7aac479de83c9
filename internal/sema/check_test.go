package sema

import (
	"strings"
	"testing"

	"github.com/taipan-lang/taipan/internal/diag"
	"github.com/taipan-lang/taipan/internal/syntax"
	"github.com/taipan-lang/taipan/internal/types"
)

// parseAndCheck parses source code and runs the semantic analyzer.
// Returns the collected info and any semantic error messages.
func parseAndCheck(t *testing.T, src string) (*Info, []string, []diag.Code) {
	t.Helper()

	var parseErrs []string
	parseErrh := func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, pos.String()+": "+msg)
	}

	p := syntax.NewParser("test.tai", strings.NewReader(src), parseErrh)
	file := p.Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	var errs []string
	var codes []diag.Code
	conf := &Config{
		Error: func(code diag.Code, pos syntax.Pos, msg string) {
			errs = append(errs, pos.String()+": "+msg)
			codes = append(codes, code)
		},
	}
	info := &Info{}

	Check(file, conf, info)
	return info, errs, codes
}

// expectNoErrors checks that the source analyzes without errors.
func expectNoErrors(t *testing.T, src string) {
	t.Helper()
	_, errs, _ := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Errorf("unexpected errors:\n%s", strings.Join(errs, "\n"))
	}
}

// expectErrors checks that analysis produces the expected error substrings.
func expectErrors(t *testing.T, src string, expectedMsgs ...string) {
	t.Helper()
	_, errs, _ := parseAndCheck(t, src)
	if len(errs) == 0 {
		t.Errorf("expected errors containing %v, got none", expectedMsgs)
		return
	}
	errText := strings.Join(errs, "\n")
	for _, msg := range expectedMsgs {
		if !strings.Contains(errText, msg) {
			t.Errorf("expected error containing %q, got:\n%s", msg, errText)
		}
	}
}

// expectCode checks that analysis produces an error with the given code.
func expectCode(t *testing.T, src string, code diag.Code) {
	t.Helper()
	_, errs, codes := parseAndCheck(t, src)
	for _, c := range codes {
		if c == code {
			return
		}
	}
	t.Errorf("expected an error with code %s, got:\n%s", code, strings.Join(errs, "\n"))
}

func TestBasicDeclarations(t *testing.T) {
	expectNoErrors(t, `
let x number
let y = 3.14
let s string = "hello"
let t string
`)
}

func TestTypeInference(t *testing.T) {
	expectNoErrors(t, `
let x = 42
let y = -x
let s = "hello"
let z = x + y * 2
`)
}

func TestFunctionDeclarations(t *testing.T) {
	expectNoErrors(t, `
func add(a number, b number) number {
    return a + b
}

func greet(name string) {
    print name
}

let x = add(1, 2)
greet("hello")
`)
}

func TestFunctionHoisting(t *testing.T) {
	// Top-level code may call a function declared later in the file.
	expectNoErrors(t, `
let x = double(21)

func double(n number) number {
    return n * 2
}
`)
}

func TestGlobalVisibleInFunction(t *testing.T) {
	expectNoErrors(t, `
func bump() {
    counter = counter + 1
}

let counter = 0
bump()
`)
}

func TestIfStatement(t *testing.T) {
	expectNoErrors(t, `
let x = 10
if x > 5 {
    print "big"
} else if x > 0 {
    print "small"
} else {
    print "negative"
}
`)
}

func TestWhileLoop(t *testing.T) {
	expectNoErrors(t, `
let i = 0
while i < 10 {
    print i
    i = i + 1
}
`)
}

func TestInputStatement(t *testing.T) {
	expectNoErrors(t, `
let n number
input n
print n
`)
}

func TestLocalShadowing(t *testing.T) {
	expectNoErrors(t, `
let x = 1
{
    let x = "inner"
    print x
}
print x
`)
}

func TestComparisonYieldsNumber(t *testing.T) {
	// Comparisons and logical operators produce numbers, so they
	// compose with arithmetic.
	expectNoErrors(t, `
let x = 5
let flag = x > 3 && x < 10
let sum = (x == 5) + 1
if !flag {
    print "no"
}
`)
}

func TestUndefinedVariable(t *testing.T) {
	expectErrors(t, `
print y
`, "undefined: y")
	expectCode(t, "print y\n", diag.UndefinedSymbol)
}

func TestUndefinedFunction(t *testing.T) {
	expectErrors(t, `
frobnicate(1)
`, "undefined: frobnicate")
}

func TestTypeMismatchDeclaration(t *testing.T) {
	expectErrors(t, `
let x number = "hello"
`, "cannot use string as number in variable declaration")
	expectCode(t, `let x number = "hello"`+"\n", diag.TypeMismatch)
}

func TestAssignmentMismatch(t *testing.T) {
	expectErrors(t, `
let x = 1
x = "hello"
`, "cannot use string as number in assignment")
}

func TestNonNumberCondition(t *testing.T) {
	expectErrors(t, `
let s = "hi"
if s {
    print s
}
`, "non-number condition in if statement")

	expectErrors(t, `
while "forever" {
    print 1
}
`, "non-number condition in while statement")
}

func TestStringArithmetic(t *testing.T) {
	expectErrors(t, `
let s = "a" + "b"
`, "operator + requires number operands")
}

func TestStringComparison(t *testing.T) {
	expectErrors(t, `
let s = "a"
if s == "a" {
    print s
}
`, "operator == not defined for string")
}

func TestMixedComparison(t *testing.T) {
	expectErrors(t, `
let x = 1
let s = "a"
if x == s {
    print x
}
`, "mismatched types number and string")
}

func TestUnaryOnString(t *testing.T) {
	expectErrors(t, `
let s = "hi"
let x = -s
`, "operator - requires a number operand")

	expectErrors(t, `
let s = "hi"
let y = !s
`, "operator ! requires a number operand")
}

func TestDuplicateDeclaration(t *testing.T) {
	expectErrors(t, `
let x = 1
let x = 2
`, "x redeclared in this block")
	expectCode(t, "let x = 1\nlet x = 2\n", diag.DuplicateDeclaration)
}

func TestDuplicateFunction(t *testing.T) {
	expectErrors(t, `
func f() {
    print 1
}
func f() {
    print 2
}
`, "f redeclared in this block")
}

func TestDuplicateParameter(t *testing.T) {
	expectErrors(t, `
func f(a number, a number) number {
    return a
}
`, "a redeclared in this block")
}

func TestFunctionVariableClash(t *testing.T) {
	expectErrors(t, `
func x() {
    print 1
}
let x = 2
`, "x redeclared in this block")
}

func TestCallNonFunction(t *testing.T) {
	expectErrors(t, `
let x = 1
x(2)
`, "cannot call non-function x")
}

func TestWrongArgumentCount(t *testing.T) {
	expectErrors(t, `
func add(a number, b number) number {
    return a + b
}
let x = add(1)
`, "wrong number of arguments in call to add: got 1, want 2")
	expectCode(t, `
func add(a number, b number) number {
    return a + b
}
let x = add(1, 2, 3)
`, diag.ArityMismatch)
}

func TestArgumentTypeMismatch(t *testing.T) {
	expectErrors(t, `
func double(n number) number {
    return n * 2
}
let x = double("two")
`, "cannot use string as number in argument")
}

func TestVoidCallAsValue(t *testing.T) {
	expectErrors(t, `
func shout() {
    print "hey"
}
let x = shout()
`, "cannot use no-value expression as variable initializer")

	expectErrors(t, `
func shout() {
    print "hey"
}
print shout()
`, "cannot print no-value expression")
}

func TestFunctionAsValue(t *testing.T) {
	expectErrors(t, `
func f() number {
    return 1
}
let x = f
`, "f is a function, not a value")
}

func TestTypeNameAsValue(t *testing.T) {
	expectErrors(t, `
let x = number
`, "number is not an expression")
}

func TestReturnOutsideFunction(t *testing.T) {
	expectErrors(t, `
let x = 1
return x
`, "return statement outside function")
	expectCode(t, "return 1\n", diag.InvalidControlFlow)
}

func TestMissingReturnValue(t *testing.T) {
	expectErrors(t, `
func f() number {
    return
}
`, "missing return value")
}

func TestUnexpectedReturnValue(t *testing.T) {
	expectErrors(t, `
func f() {
    return 1
}
`, "unexpected return value in void function")
}

func TestReturnTypeMismatch(t *testing.T) {
	expectErrors(t, `
func f() number {
    return "one"
}
`, "cannot use string as number in return statement")
}

func TestMissingReturn(t *testing.T) {
	expectErrors(t, `
func f(x number) number {
    if x > 0 {
        return 1
    }
}
`, "missing return statement")
	expectCode(t, `
func f() number {
    print 1
}
`, diag.InvalidControlFlow)
}

func TestMustReturnBothBranches(t *testing.T) {
	expectNoErrors(t, `
func sign(x number) number {
    if x > 0 {
        return 1
    } else if x < 0 {
        return 0 - 1
    } else {
        return 0
    }
}
`)
}

func TestLoopDoesNotGuaranteeReturn(t *testing.T) {
	// A while body returning on every iteration still does not prove
	// the loop runs, so the function needs a return after it.
	expectErrors(t, `
func f() number {
    while 1 {
        return 1
    }
}
`, "missing return statement")
}

func TestReturnAfterLoop(t *testing.T) {
	expectNoErrors(t, `
func f() number {
    while 0 {
        print 1
    }
    return 2
}
`)
}

func TestInputNonNumber(t *testing.T) {
	expectErrors(t, `
let s string
input s
`, "input requires a number variable, s has type string")
}

func TestInputUndefined(t *testing.T) {
	expectErrors(t, `
input n
`, "undefined: n")
}

func TestInputFunction(t *testing.T) {
	expectErrors(t, `
func f() {
    print 1
}
input f
`, "cannot read input into f")
}

func TestAssignToFunction(t *testing.T) {
	expectErrors(t, `
func f() {
    print 1
}
f = 3
`, "cannot assign to f")
}

func TestGlobalForwardReferenceInInitializer(t *testing.T) {
	// Globals are hoisted for name resolution, but an initializer
	// cannot read a global whose own declaration comes later.
	expectErrors(t, `
let a = b + 1
let b = 2
`, "cannot use b before its type is known")
}

func TestLetWithoutTypeOrInitializer(t *testing.T) {
	// The parser already rejects this form; the equivalent reaches the
	// analyzer only through explicit void-call inference failures,
	// covered above. Annotation-only and initializer-only forms are fine.
	expectNoErrors(t, `
let a number
let b = 1
`)
}

func TestLocalLetInFunction(t *testing.T) {
	expectNoErrors(t, `
func sum(n number) number {
    let total = 0
    let i = 1
    while i <= n {
        total = total + i
        i = i + 1
    }
    return total
}
print sum(10)
`)
}

func TestShadowedTypeName(t *testing.T) {
	// Declaring a variable named number makes the type name
	// unavailable in that scope.
	expectErrors(t, `
let number = 1
let x number
`, "number is not a type")
}

func TestInfoTypes(t *testing.T) {
	src := `
let x = 1 + 2
`
	info, errs, _ := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	// Every recorded expression type must be number
	for e, tv := range info.Types {
		if !types.IsNumber(tv.Type) {
			t.Errorf("expression %T has type %s, want number", e, tv.Type)
		}
		if !tv.IsValue() {
			t.Errorf("expression %T is not a value", e)
		}
	}
}

func TestInfoDefsAndUses(t *testing.T) {
	src := `
let x = 1
print x
`
	info, errs, _ := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var def, use types.Object
	for name, obj := range info.Defs {
		if name.Value == "x" {
			def = obj
		}
	}
	for name, obj := range info.Uses {
		if name.Value == "x" {
			use = obj
		}
	}
	if def == nil {
		t.Fatal("no definition recorded for x")
	}
	if use != def {
		t.Errorf("use of x resolves to %v, want %v", use, def)
	}

	v, ok := def.(*types.Var)
	if !ok {
		t.Fatalf("x is %T, want *types.Var", def)
	}
	if !v.IsGlobal() {
		t.Error("top-level x not marked global")
	}
	if !types.IsNumber(v.Type()) {
		t.Errorf("x has type %s, want number", v.Type())
	}
}

func TestInfoScopes(t *testing.T) {
	src := `
func f(a number) number {
    return a
}
`
	info, errs, _ := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	var funcScope *types.Scope
	for _, s := range info.Scopes {
		if s.Comment() == "function f" {
			funcScope = s
		}
	}
	if funcScope == nil {
		t.Fatal("no scope recorded for function f")
	}
	if funcScope.Lookup("a") == nil {
		t.Error("parameter a not in function scope")
	}
}

func TestFirstError(t *testing.T) {
	src := `
print y
print z
`
	var parseErrs []string
	p := syntax.NewParser("test.tai", strings.NewReader(src), func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, msg)
	})
	file := p.Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}

	err := Check(file, nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
	if serr.Code != diag.UndefinedSymbol {
		t.Errorf("first error code = %s, want UndefinedSymbol", serr.Code)
	}
	if !strings.Contains(serr.Msg, "undefined: y") {
		t.Errorf("first error = %q, want undefined: y", serr.Msg)
	}
}

func TestCompleteProgram(t *testing.T) {
	expectNoErrors(t, `
# Factorial with a running prompt.

func fact(n number) number {
    if n <= 1 {
        return 1
    }
    return n * fact(n - 1)
}

let n number
print "enter a number:"
input n
while n > 0 {
    print fact(n)
    input n
}
print "done"
`)
}
