package compiler

import (
	"fmt"

	"lime/vm"
)

// emitShortCircuit implements && and || without evaluating the right
// operand when the left one already determines the result -- the
// original_source's IAND/IOR map onto C's short-circuiting && and ||
// directly; here the same guarantee needs explicit jumps since the VM
// has no non-strict evaluation of its own.
func emitShortCircuit(n *Binary, e *Emitter) error {
	if err := Emit(n.Left, e); err != nil {
		return err
	}
	shortLabel := NewLabel()
	endLabel := NewLabel()
	if n.Op == TkAndAnd {
		e.OpJump(vm.Jez, shortLabel)
	} else {
		e.OpJump(vm.Jnz, shortLabel)
	}
	if err := Emit(n.Right, e); err != nil {
		return err
	}
	e.OpJump(vm.Jmp, endLabel)
	e.FixLabelHere(shortLabel)
	if n.Op == TkAndAnd {
		e.Op(vm.Iconst0)
	} else {
		e.Op(vm.Iconst1)
	}
	e.FixLabelHere(endLabel)
	return nil
}

func emitUnaryOp(n *Unary, e *Emitter) error {
	real := n.Operand.Type().IsReal()
	switch n.Op {
	case TkMinus:
		if real {
			e.Op(vm.Rneg)
		} else {
			e.Op(vm.Ineg)
		}
	case TkBang:
		e.Op(vm.Inot)
	case TkTilde:
		e.Op(vm.Ibnot)
	default:
		return fmt.Errorf("unhandled unary operator")
	}
	return nil
}

// binaryOperandIsReal reports whether the operands were promoted to a
// real type; this is not the same as n.Type() (comparisons and logical
// ops always produce bool regardless of the operand type they compare).
func binaryOperandIsReal(n *Binary) bool {
	return n.Left.Type().IsReal() || n.Right.Type().IsReal() || n.LeftPromote || n.RightPromote
}

func emitBinaryOp(n *Binary, e *Emitter) error {
	real := binaryOperandIsReal(n)
	switch n.Op {
	case TkPlus:
		if real {
			e.Op(vm.Radd)
		} else {
			e.Op(vm.Iadd)
		}
	case TkMinus:
		if real {
			e.Op(vm.Rsub)
		} else {
			e.Op(vm.Isub)
		}
	case TkStar:
		if real {
			e.Op(vm.Rmul)
		} else {
			e.Op(vm.Imul)
		}
	case TkSlash:
		if real {
			e.Op(vm.Rdiv)
		} else {
			e.Op(vm.Idiv)
		}
	case TkPercent:
		if real {
			e.Op(vm.Rmod)
		} else {
			e.Op(vm.Imod)
		}
	case TkAmp:
		e.Op(vm.Iband)
	case TkPipe:
		e.Op(vm.Ibor)
	case TkCaret:
		e.Op(vm.Ibxor)
	case TkAndAnd:
		e.Op(vm.Iand)
	case TkOrOr:
		e.Op(vm.Ior)
	case TkEq:
		if real {
			e.Op(vm.Req)
		} else {
			e.Op(vm.Ieq)
		}
	case TkNe:
		if real {
			e.Op(vm.Rne)
		} else {
			e.Op(vm.Ine)
		}
	case TkLt:
		if real {
			e.Op(vm.Rlt)
		} else {
			e.Op(vm.Ilt)
		}
	case TkLe:
		if real {
			e.Op(vm.Rle)
		} else {
			e.Op(vm.Ile)
		}
	case TkGt:
		if real {
			e.Op(vm.Rgt)
		} else {
			e.Op(vm.Igt)
		}
	case TkGe:
		if real {
			e.Op(vm.Rge)
		} else {
			e.Op(vm.Ige)
		}
	default:
		return fmt.Errorf("unhandled binary operator")
	}
	return nil
}

// realMathBuiltins maps each single-operand real-math builtin straight
// to its VM opcode, matching original_source/builtins.c's
// BUILTIN_FUNCTIONS table. print, len, abs, mod, pow, atan2, itor and
// rtoi are dispatched by emitBuiltinCall's own switch, and the cast
// builtins by intCastOpcodes; abs branches on the argument's type class
// instead of a single unconditional "abs" opcode that only ever worked
// for one type in the original.
var realMathBuiltins = map[string]vm.Opcode{
	"sqrt": vm.Rsqrt, "exp": vm.Rexp, "sin": vm.Rsin, "cos": vm.Rcos,
	"tan": vm.Rtan, "asin": vm.Rasin, "acos": vm.Racos, "log": vm.Rlog,
	"log10": vm.Rlog10, "log2": vm.Rlog2, "ceil": vm.Rceil,
	"floor": vm.Rfloor, "round": vm.Rround,
}

var castBuiltins = map[string]vm.TypeTag{
	"i8": vm.TagI8, "u8": vm.TagU8, "i16": vm.TagI16, "u16": vm.TagU16,
	"i32": vm.TagI32, "u32": vm.TagU32, "i64": vm.TagI64, "u64": vm.TagU64,
}

// intCastOpcodes maps each cast builtin to the opcode that truncates
// and reinterprets the stored 64-bit cell through the narrower C-style
// width, matching original_source/vm.c:521-566's I8CAST..IU64CAST union
// reinterpretation.
var intCastOpcodes = map[string]vm.Opcode{
	"i8": vm.I8cast, "u8": vm.Iu8cast,
	"i16": vm.I16cast, "u16": vm.Iu16cast,
	"i32": vm.I32cast, "u32": vm.Iu32cast,
	"i64": vm.I64cast, "u64": vm.Iu64cast,
}

func emitBuiltinCall(n *BuiltinCall, e *Emitter) error {
	for _, arg := range n.Args {
		if err := Emit(arg, e); err != nil {
			return err
		}
	}

	switch n.Name {
	case "print":
		arg := n.Args[0]
		if arg.Type().IsString() {
			e.Op(vm.Sprint)
		} else {
			e.OpByte(vm.Nprint, byte(arg.Type()))
		}
		return nil

	case "len":
		arg := n.Args[0]
		if arg.Type().IsString() {
			e.Op(vm.Slen)
		} else {
			ident := arg.(*Ident)
			e.OpU16(vm.Alen, uint16(ident.Sym.Slot))
		}
		return nil

	case "abs":
		if n.Args[0].Type().IsReal() {
			e.Op(vm.Rabs)
		} else {
			e.Op(vm.Iabs)
		}
		return nil

	case "mod":
		if n.Args[0].Type().IsReal() {
			e.Op(vm.Rmod)
		} else {
			e.Op(vm.Imod)
		}
		return nil

	case "pow":
		e.Op(vm.Rpow)
		return nil

	case "atan2":
		e.Op(vm.Ratan2)
		return nil

	case "itor":
		e.Op(vm.Itor)
		return nil
	case "rtoi":
		e.Op(vm.Rtoi)
		return nil
	}

	if op, ok := realMathBuiltins[n.Name]; ok {
		e.Op(op)
		return nil
	}

	if op, ok := intCastOpcodes[n.Name]; ok {
		e.Op(op)
		return nil
	}

	return fmt.Errorf("unknown builtin %q", n.Name)
}
