package vm

import (
	"bufio"
	"fmt"
	"io"
)

// Disassemble writes one line per instruction to w, in the format
// "<hex ip>\t <mnemonic>[ 0x<byte>]*": the mnemonic followed by its
// immediate operand bytes rendered one at a time, matching
// original_source/vm.c's vm_dasm_opcode rather than assembling the
// operand into a single integer.
func Disassemble(code []byte, w io.Writer) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	ip := 0
	for ip < len(code) {
		op := Opcode(code[ip])
		argBytes := op.ArgBytes()
		if ip+1+argBytes > len(code) {
			return errBadBytecodeFile
		}
		fmt.Fprintf(bw, "%04x\t %s", ip, op.String())
		for i := 0; i < argBytes; i++ {
			fmt.Fprintf(bw, " 0x%02x", code[ip+1+i])
		}
		fmt.Fprintln(bw)
		ip += 1 + argBytes
	}
	return nil
}
