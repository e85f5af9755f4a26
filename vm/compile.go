package vm

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Assemble turns a textual instruction listing into a code segment. It
// exists for unit tests that want to exercise the VM dispatch loop
// directly without going through the lexer/parser/codegen pipeline --
// the same role the teacher's CompileSourceFromBuffer plays for gvm's
// own tests, adapted here to Lime's mnemonic set and operand widths
// instead of a register machine's.
//
// Syntax: one instruction per line, "mnemonic arg1 arg2 ...", "//" line
// comments, and "label:" lines that later jmp/jez/jnz/call lines can
// reference by name instead of a numeric offset.
var asmComment = regexp.MustCompile(`//.*`)

func Assemble(src string) ([]byte, error) {
	labelOffsets := map[string]int{}
	type pendingRef struct {
		offset int
		label  string
	}
	var pending []pendingRef

	buf := NewBuffer()

	for lineNo, rawLine := range strings.Split(src, "\n") {
		line := asmComment.ReplaceAllString(rawLine, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			labelOffsets[strings.TrimSuffix(line, ":")] = buf.Len()
			continue
		}

		fields := strings.Fields(line)
		mnemonic := fields[0]
		op, ok := OpcodeByMnemonic(mnemonic)
		if !ok {
			return nil, fmt.Errorf("line %d: unknown instruction %q", lineNo+1, mnemonic)
		}
		buf.Add(byte(op))

		args := fields[1:]
		if op.IsJump() || op == Call {
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: %s needs exactly one target", lineNo+1, mnemonic)
			}
			if n, err := strconv.ParseInt(args[0], 0, 64); err == nil {
				writeUint64(buf, uint64(n))
			} else {
				pending = append(pending, pendingRef{offset: buf.Len(), label: args[0]})
				writeUint64(buf, 0)
			}
			continue
		}

		// proc packs two uint16 operands (args, vars) rather than
		// ArgBytes' single 4-byte slot, so it's handled on its own.
		if op == Proc {
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: proc needs exactly two operands", lineNo+1)
			}
			for _, a := range args {
				n, err := strconv.ParseInt(a, 0, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad operand %q: %w", lineNo+1, a, err)
				}
				var tmp [2]byte
				binary.LittleEndian.PutUint16(tmp[:], uint16(n))
				buf.Adds(tmp[:])
			}
			continue
		}

		for _, a := range args {
			n, err := strconv.ParseInt(a, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad operand %q: %w", lineNo+1, a, err)
			}
			switch op.ArgBytes() {
			case 1:
				buf.Add(byte(n))
			case 2:
				var tmp [2]byte
				binary.LittleEndian.PutUint16(tmp[:], uint16(n))
				buf.Adds(tmp[:])
			case 4:
				var tmp [4]byte
				binary.LittleEndian.PutUint32(tmp[:], uint32(n))
				buf.Adds(tmp[:])
			case 8:
				writeUint64(buf, uint64(n))
			}
		}
	}

	for _, ref := range pending {
		target, ok := labelOffsets[ref.label]
		if !ok {
			return nil, fmt.Errorf("undefined label %q", ref.label)
		}
		var tmp [8]byte
		binary.LittleEndian.PutUint64(tmp[:], uint64(target))
		buf.Sets(ref.offset, tmp[:])
	}

	return buf.Bytes(), nil
}

func writeUint64(buf *Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Adds(tmp[:])
}
