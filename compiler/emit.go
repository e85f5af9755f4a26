package compiler

import (
	"encoding/binary"
	"math"

	"lime/vm"
)

// Emitter accumulates a compiled Image: a code buffer and a data buffer
// for string literals, plus helpers for each instruction shape codegen
// needs. It plays the role original_source/ast.c's eval_* functions play
// against the C vm_t directly, but against Go buffers instead of a
// process-global VM.
type Emitter struct {
	code *vm.Buffer
	data *vm.Buffer

	// strLits dedups identical string literals to a single data-segment
	// offset, the way a real linker would dedup string constants.
	strLits map[string]int
}

func NewEmitter() *Emitter {
	return &Emitter{code: vm.NewBuffer(), data: vm.NewBuffer(), strLits: map[string]int{}}
}

func (e *Emitter) Image() vm.Image {
	return vm.Image{Code: e.code.Bytes(), Data: e.data.Bytes()}
}

func (e *Emitter) Offset() int { return e.code.Len() }

func (e *Emitter) Op(op vm.Opcode) {
	e.code.Add(byte(op))
}

func (e *Emitter) OpU16(op vm.Opcode, arg uint16) {
	e.code.Add(byte(op))
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], arg)
	e.code.Adds(tmp[:])
}

func (e *Emitter) OpU32x2(op vm.Opcode, a, b uint16) {
	e.code.Add(byte(op))
	var tmp [4]byte
	binary.LittleEndian.PutUint16(tmp[0:2], a)
	binary.LittleEndian.PutUint16(tmp[2:4], b)
	e.code.Adds(tmp[:])
}

func (e *Emitter) OpU64(op vm.Opcode, arg uint64) {
	e.code.Add(byte(op))
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], arg)
	e.code.Adds(tmp[:])
}

func (e *Emitter) OpU32(op vm.Opcode, arg uint32) {
	e.code.Add(byte(op))
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], arg)
	e.code.Adds(tmp[:])
}

// IntConst emits the narrowest integer constant opcode whose signed range
// covers v: iconst_0/iconst_1 for 0/1, otherwise the smallest of
// i8const/i16const/i32const/i64const.
func (e *Emitter) IntConst(v int64) {
	switch {
	case v == 0:
		e.Op(vm.Iconst0)
	case v == 1:
		e.Op(vm.Iconst1)
	case v >= math.MinInt8 && v <= math.MaxInt8:
		e.OpByte(vm.I8const, byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		e.OpU16(vm.I16const, uint16(int16(v)))
	case v >= math.MinInt32 && v <= math.MaxInt32:
		e.OpU32(vm.I32const, uint32(int32(v)))
	default:
		e.OpU64(vm.I64const, uint64(v))
	}
}

// FloatConst emits the narrowest real constant opcode: rconst_0/rconst_1/
// rconst_pi for 0.0/1.0/pi, otherwise the full 8-byte rconst.
func (e *Emitter) FloatConst(f float64) {
	switch {
	case f == 0:
		e.Op(vm.Rconst0)
	case f == 1:
		e.Op(vm.Rconst1)
	case f == math.Pi:
		e.Op(vm.RconstPi)
	default:
		e.OpU64(vm.Rconst, math.Float64bits(f))
	}
}

func (e *Emitter) OpByte(op vm.Opcode, arg byte) {
	e.code.Add(byte(op))
	e.code.Add(arg)
}

// OpJump emits a branch opcode with a placeholder 8-byte target and
// registers the operand's offset with label for later fixup.
func (e *Emitter) OpJump(op vm.Opcode, label *Label) {
	e.code.Add(byte(op))
	off := e.code.Len()
	e.code.Adds(make([]byte, 8))
	if label.Resolved() {
		e.patchUint64(off, uint64(label.Target()))
	} else {
		label.Mark(off)
	}
}

func (e *Emitter) patchUint64(offset int, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	e.code.Sets(offset, tmp[:])
}

// FixLabelHere resolves label to the emitter's current offset.
func (e *Emitter) FixLabelHere(label *Label) {
	label.Fix(e, e.Offset())
}

// StringLiteral writes s (NUL-terminated) to the data segment, reusing
// an existing offset if the same literal was already emitted.
func (e *Emitter) StringLiteral(s string) int {
	if off, ok := e.strLits[s]; ok {
		return off
	}
	off := e.data.Adds(append([]byte(s), 0))
	e.strLits[s] = off
	return off
}
