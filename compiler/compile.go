package compiler

import (
	"lime/vm"
)

// CompileProgram lowers a parsed Program into a runnable vm.Image: the
// global block runs directly, terminated by halt, matching
// original_source/parser.c's parser_parse ("ast_block_t* block =
// ast_new_block(...); statements(block, TK_FIN); eval(block);
// EMIT(HALT);") rather than calling into a required "main" entry
// point. This also differs from the original in that it no longer
// always executes immediately after parsing and no longer always
// writes a hardcoded "out.asm" disassembly file -- both decoupled here
// into independent, optional steps driven by the caller instead.
func CompileProgram(prog *Program) (vm.Image, error) {
	e := NewEmitter()

	if err := Emit(prog.Body, e); err != nil {
		return vm.Image{}, err
	}
	e.Op(vm.Halt)

	return e.Image(), nil
}
