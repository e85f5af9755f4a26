package compiler

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"lime/vm"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func compileAndRun(t *testing.T, src string) string {
	prog, err := Parse([]byte(src))
	assert(t, err == nil, "parse failed: %v", err)
	img, err := CompileProgram(prog)
	assert(t, err == nil, "compile failed: %v", err)

	var out bytes.Buffer
	m := vm.NewVMWithIO(img, &out, bytes.NewReader(nil))
	err = m.Run()
	assert(t, err == nil, "run failed: %v", err)
	return out.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	src := `
		var a: i32 = 2 + 3 * 4;
		print(a);
	`
	got := compileAndRun(t, src)
	assert(t, got == "14", "expected 14, got %q", got)
}

func TestIntToRealPromotion(t *testing.T) {
	src := `
		var x: f64 = 3 + 0.5;
		print(x);
	`
	got := compileAndRun(t, src)
	assert(t, got == "3.500000", "expected 3.500000, got %q", got)
}

func TestFunctionCall(t *testing.T) {
	src := `
		func add(x: i32, y: i32): i32 {
			return x + y;
		}
		print(add(7, 35));
	`
	got := compileAndRun(t, src)
	assert(t, got == "42", "expected 42, got %q", got)
}

func TestForLoopSum(t *testing.T) {
	src := `
		var sum: i64 = 0;
		for var i: i64 = 0; i < 11; i = i + 1 {
			sum = sum + i;
		}
		print(sum);
	`
	got := compileAndRun(t, src)
	assert(t, got == "55", "expected 55, got %q", got)
}

func TestShortCircuitAnd(t *testing.T) {
	src := `
		var a: bool = true;
		var b: bool = false;
		print(a && b);
	`
	got := compileAndRun(t, src)
	assert(t, got == "false", "expected false, got %q", got)
}

func TestShortCircuitOr(t *testing.T) {
	src := `
		var a: bool = false;
		var b: bool = true;
		print(a || b);
	`
	got := compileAndRun(t, src)
	assert(t, got == "true", "expected true, got %q", got)
}

func TestArrayLiteralIndexAndLen(t *testing.T) {
	src := `
		var arr: [3]i64 = {10, 20, 30};
		print(arr[1]);
		print(len(arr));
	`
	got := compileAndRun(t, src)
	assert(t, got == "203", "expected 203, got %q", got)
}

func TestStringPrint(t *testing.T) {
	src := `print("hello");`
	got := compileAndRun(t, src)
	assert(t, got == "hello", "expected hello, got %q", got)
}

func TestBreakAndContinue(t *testing.T) {
	src := `
		var sum: i64 = 0;
		for var i: i64 = 0; i < 10; i = i + 1 {
			if i == 5 {
				break;
			}
			if i % 2 == 0 {
				continue;
			}
			sum = sum + i;
		}
		print(sum);
	`
	// i = 1,3 before break at i==5 -> sum = 1+3 = 4
	got := compileAndRun(t, src)
	assert(t, got == "4", "expected 4, got %q", got)
}

func TestDivideByZeroPropagatesAsRuntimeError(t *testing.T) {
	src := `
		var a: i64 = 1;
		var b: i64 = 0;
		print(a / b);
	`
	prog, err := Parse([]byte(src))
	assert(t, err == nil, "parse failed: %v", err)
	img, err := CompileProgram(prog)
	assert(t, err == nil, "compile failed: %v", err)

	var out bytes.Buffer
	m := vm.NewVMWithIO(img, &out, bytes.NewReader(nil))
	err = m.Run()
	assert(t, err != nil, "expected a divide-by-zero error")
}

func TestFuncDeclInterleavedWithTopLevelStatements(t *testing.T) {
	// A func declaration appearing in the middle of the top-level
	// statement stream must not be fallen into by straight-line
	// execution; only the later print(triple(4)) call should reach it.
	src := `
		print("before");
		func triple(x: i64): i64 {
			return x * 3;
		}
		print(triple(4));
	`
	got := compileAndRun(t, src)
	assert(t, got == "before12", "expected before12, got %q", got)
}

func TestCastBuiltinTruncatesUnsigned(t *testing.T) {
	src := `print(u8(300));`
	got := compileAndRun(t, src)
	assert(t, got == "44", "expected 44, got %q", got)
}

func TestCastBuiltinTruncatesSigned(t *testing.T) {
	src := `print(i8(200));`
	got := compileAndRun(t, src)
	assert(t, got == "-56", "expected -56, got %q", got)
}

func TestIntConstantSelectsNarrowestEncoding(t *testing.T) {
	src := `
		print(0);
		print(1);
		print(100);
		print(40000);
		print(3000000000);
	`
	prog, err := Parse([]byte(src))
	assert(t, err == nil, "parse failed: %v", err)
	img, err := CompileProgram(prog)
	assert(t, err == nil, "compile failed: %v", err)

	var buf bytes.Buffer
	assert(t, vm.Disassemble(img.Code, &buf) == nil, "disassemble failed")
	dasm := buf.String()
	assert(t, strings.Contains(dasm, "iconst_0"), "expected iconst_0 in %s", dasm)
	assert(t, strings.Contains(dasm, "iconst_1"), "expected iconst_1 in %s", dasm)
	assert(t, strings.Contains(dasm, "i8const"), "expected i8const in %s", dasm)
	assert(t, strings.Contains(dasm, "i32const"), "expected i32const in %s", dasm)
	assert(t, strings.Contains(dasm, "i64const"), "expected i64const in %s", dasm)
}
