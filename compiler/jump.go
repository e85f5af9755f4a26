package compiler

// Label is a patch-list target, grounded on original_source/jump.h's
// jump_t: a label can be jumped to before its address is known (forward
// branches), so every branch site that references it before it's fixed
// is recorded and patched once the address is resolved.
type Label struct {
	sites   []int // code offsets of the pending 8-byte jump target operands
	target  int
	resolved bool
}

func NewLabel() *Label { return &Label{} }

// Mark records a pending branch site at offset (the offset of the jump
// target's immediate operand, not the opcode byte), to be patched once
// Fix is called. If the label is already resolved, the caller should
// write the known target directly instead of calling Mark.
func (l *Label) Mark(offset int) {
	l.sites = append(l.sites, offset)
}

// Fix resolves the label to addr and patches every previously marked
// site. Calling Fix twice on the same label is a no-op the second time,
// matching JUMP_FIX's idempotency in the original macro API -- codegen
// paths that can reach the same label twice (e.g. a shared loop-exit
// label referenced by both a falling-through condition and an explicit
// break) must not double-patch it.
func (l *Label) Fix(e *Emitter, addr int) {
	if l.resolved {
		return
	}
	l.resolved = true
	l.target = addr
	for _, site := range l.sites {
		e.patchUint64(site, uint64(addr))
	}
	l.sites = nil
}

func (l *Label) Resolved() bool { return l.resolved }
func (l *Label) Target() int    { return l.target }
