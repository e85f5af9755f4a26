package vm

import (
	"bytes"
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

func assembleAndCheck(t *testing.T, src string) []byte {
	code, err := Assemble(src)
	assert(t, err == nil, "failed to assemble: %v", err)
	return code
}

func runAndCheckErr(t *testing.T, code []byte, want error) *VM {
	v := NewVMWithIO(Image{Code: code}, &bytes.Buffer{}, bytes.NewReader(nil))
	err := v.Run()
	if want == nil {
		assert(t, err == nil, "expected clean exit, got %v", err)
	} else {
		assert(t, err == want, "expected %v, got %v", want, err)
	}
	return v
}

var (
	addTwoConstants = `
		i64const 2
		i64const 3
		iadd
		halt
	`

	divByZero = `
		i64const 4
		iconst_0
		idiv
		halt
	`

	infiniteJump = `
	loop:
		jmp loop
	`

	noHalt = `
		iconst_1
	`
)

func TestArithmetic(t *testing.T) {
	code := assembleAndCheck(t, addTwoConstants)
	v := runAndCheckErr(t, code, nil)
	assert(t, v.sp == 1, "expected one value left on stack, got sp=%d", v.sp)
	assert(t, asInt(v.stack[0]) == 5, "expected 5, got %d", asInt(v.stack[0]))
}

func TestDivideByZero(t *testing.T) {
	runAndCheckErr(t, assembleAndCheck(t, divByZero), errDivideByZero)
}

func TestJumpAndComparison(t *testing.T) {
	src := `
		i64const 10
		i64const 10
		ieq
		jez skip
		iconst_1
		jmp done
	skip:
		iconst_0
	done:
		halt
	`
	v := runAndCheckErr(t, assembleAndCheck(t, src), nil)
	assert(t, asInt(v.stack[v.sp-1]) == 1, "expected branch taken, got %d", asInt(v.stack[v.sp-1]))
}

func TestJezHandlesFloatZeroBitPattern(t *testing.T) {
	src := `
		rconst_0
		jez reached
		i64const 99
		halt
	reached:
		iconst_1
		halt
	`
	v := runAndCheckErr(t, assembleAndCheck(t, src), nil)
	assert(t, asInt(v.stack[v.sp-1]) == 1, "jez should treat all-zero bits as zero, got %d", asInt(v.stack[v.sp-1]))
}

func TestCallReturn(t *testing.T) {
	// proc double(x i64) i64 { return x*2 }; print(double(21))
	src := `
		i64const 21
		call fn
		halt
	fn:
		proc 1 1
		xload 0
		i64const 2
		imul
		ret
	`
	v := runAndCheckErr(t, assembleAndCheck(t, src), nil)
	assert(t, asInt(v.stack[v.sp-1]) == 42, "expected 42, got %d", asInt(v.stack[v.sp-1]))
}

func TestArrayLoadStore(t *testing.T) {
	src := `
		i64const 0x30005
		astore 0
		i64const 7
		iconst_0
		xstorei 0
		iconst_0
		xloadi 0
		halt
	`
	v := runAndCheckErr(t, assembleAndCheck(t, src), nil)
	assert(t, asInt(v.stack[v.sp-1]) == 7, "expected 7, got %d", asInt(v.stack[v.sp-1]))
}

func TestStackUnderflow(t *testing.T) {
	src := `
		iadd
		halt
	`
	runAndCheckErr(t, assembleAndCheck(t, src), errStackUnderflow)
}

func TestRunningOffEndOfCodeFinishesCleanly(t *testing.T) {
	v := NewVMWithIO(Image{Code: assembleAndCheck(t, noHalt)}, &bytes.Buffer{}, bytes.NewReader(nil))
	err := v.Run()
	assert(t, err == nil, "running off the end of code should finish cleanly, got %v", err)
}

func TestSaveAndLoadImageRoundTrips(t *testing.T) {
	img := Image{Code: assembleAndCheck(t, addTwoConstants), Data: []byte("hi\x00")}
	var buf bytes.Buffer
	assert(t, WriteImage(&buf, img) == nil, "write failed")
	got, err := ReadImage(&buf)
	assert(t, err == nil, "read failed: %v", err)
	assert(t, bytes.Equal(got.Code, img.Code), "code mismatch")
	assert(t, bytes.Equal(got.Data, img.Data), "data mismatch")
}

func TestIntCastTruncatesThroughNarrowerWidth(t *testing.T) {
	src := `
		i64const 300
		iu8cast
		halt
	`
	v := runAndCheckErr(t, assembleAndCheck(t, src), nil)
	assert(t, v.stack[v.sp-1] == 44, "expected 300 truncated through uint8 to be 44, got %d", v.stack[v.sp-1])

	src2 := `
		i64const 200
		i8cast
		halt
	`
	v2 := runAndCheckErr(t, assembleAndCheck(t, src2), nil)
	assert(t, asInt(v2.stack[v2.sp-1]) == -56, "expected 200 reinterpreted as int8 to be -56, got %d", asInt(v2.stack[v2.sp-1]))
}

func TestDisassembleFormat(t *testing.T) {
	code := assembleAndCheck(t, "i64const 5\nhalt\n")
	var buf bytes.Buffer
	assert(t, Disassemble(code, &buf) == nil, "disassemble failed")
	out := buf.String()
	assert(t, bytes.Contains([]byte(out), []byte("i64const")), "expected mnemonic in output: %s", out)
}
