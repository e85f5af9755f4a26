package compiler

import "lime/vm"

type SymbolKind int

const (
	SymVar SymbolKind = iota
	SymArray
	SymFunc
)

// ContextKind tags what a Context represents, matching
// original_source/parser.c's context_t kind discriminant: the global
// block, a function body, a loop body, or an ordinary nested block.
type ContextKind int

const (
	KindGlobal ContextKind = iota
	KindFunc
	KindLoop
	KindNormal
)

// Symbol describes one declared name: its frame-relative slot, its
// scalar type (or element type, for arrays), and for functions its
// parameter types and return type.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type vm.TypeTag
	Slot int

	ArrayLen int // number of elements, for SymArray

	Params  []vm.TypeTag // for SymFunc
	Returns vm.TypeTag   // for SymFunc
	Label   *Label       // entry point, for SymFunc
}

// Context is one lexical scope. Slot allocation is function-relative:
// nested blocks share their enclosing function's monotonic slot counter
// instead of resetting per block, matching original_source/parser.c's
// context_t tree (a block that declares a local does not reuse a slot
// freed by a sibling block, trading slot density for a much simpler
// codegen -- no scope-exit cleanup of the slot counter is needed).
type Context struct {
	parent *Context
	names  map[string]*Symbol

	// nextSlot is shared by reference across an entire function's nested
	// contexts; the function-level Context owns the counter, child
	// blocks just point at it.
	nextSlot *int

	funcCtx *Context // nearest enclosing function context, nil at top level
	loop    *LoopInfo

	returnType vm.TypeTag // valid only on a function context

	Kind ContextKind
}

type LoopInfo struct {
	Parent    *LoopInfo
	BreakTo   *Label
	ContinueTo *Label
}

func NewGlobalContext() *Context {
	slot := 0
	return &Context{names: map[string]*Symbol{}, nextSlot: &slot, Kind: KindGlobal}
}

// NewFunctionContext starts a fresh function scope with its own slot
// counter, rooted at global so functions cannot close over locals from
// an enclosing function (Lime has no closures).
func (c *Context) NewFunctionContext() *Context {
	slot := 0
	child := &Context{parent: c, names: map[string]*Symbol{}, nextSlot: &slot, Kind: KindFunc}
	child.funcCtx = child
	return child
}

// NewBlockContext opens a nested scope that shares the enclosing
// function's slot counter.
func (c *Context) NewBlockContext() *Context {
	return &Context{
		parent:   c,
		names:    map[string]*Symbol{},
		nextSlot: c.nextSlot,
		funcCtx:  c.funcCtx,
		loop:     c.loop,
		Kind:     KindNormal,
	}
}

func (c *Context) NewLoopContext(breakTo, continueTo *Label) *Context {
	child := c.NewBlockContext()
	child.loop = &LoopInfo{Parent: c.loop, BreakTo: breakTo, ContinueTo: continueTo}
	child.Kind = KindLoop
	return child
}

// IsGlobal reports whether this context is the program's top-level
// block, the context whose Block node needs the synthetic frame
// prologue emitted ahead of its statements.
func (c *Context) IsGlobal() bool { return c.Kind == KindGlobal }

// Declare allocates a new symbol's slot and adds it to this context's
// local name map only; it rejects redeclaration within this context, but
// allows shadowing an outer context's symbol of the same name -- matching
// original_source/parser.c's local-only redeclaration check.
func (c *Context) Declare(name string, typ vm.TypeTag) (*Symbol, error) {
	if _, exists := c.names[name]; exists {
		return nil, errRedeclared(name)
	}
	sym := &Symbol{Name: name, Kind: SymVar, Type: typ, Slot: *c.nextSlot}
	*c.nextSlot++
	c.names[name] = sym
	return sym, nil
}

// DeclareArray reserves slot..slot+len as the array's exclusive range: no
// other symbol may later be allocated into it (unlike
// original_source/vm.c's astore, which can alias a scalar's slot if the
// compiler doesn't reserve the range up front).
func (c *Context) DeclareArray(name string, elemType vm.TypeTag, length int) (*Symbol, error) {
	if _, exists := c.names[name]; exists {
		return nil, errRedeclared(name)
	}
	sym := &Symbol{Name: name, Kind: SymArray, Type: elemType, ArrayLen: length, Slot: *c.nextSlot}
	*c.nextSlot += 1 + length
	c.names[name] = sym
	return sym, nil
}

func (c *Context) DeclareFunc(name string, params []vm.TypeTag, returns vm.TypeTag, label *Label) (*Symbol, error) {
	if _, exists := c.names[name]; exists {
		return nil, errRedeclared(name)
	}
	sym := &Symbol{Name: name, Kind: SymFunc, Params: params, Returns: returns, Label: label}
	c.names[name] = sym
	return sym, nil
}

// Resolve walks outward through parent contexts, matching
// original_source/parser.c's context_get(context, id, false).
func (c *Context) Resolve(name string) (*Symbol, bool) {
	for ctx := c; ctx != nil; ctx = ctx.parent {
		if sym, ok := ctx.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// InLoop reports whether break/continue are legal here.
func (c *Context) InLoop() bool { return c.loop != nil }

func (c *Context) BreakLabel() *Label {
	if c.loop == nil {
		return nil
	}
	return c.loop.BreakTo
}

func (c *Context) ContinueLabel() *Label {
	if c.loop == nil {
		return nil
	}
	return c.loop.ContinueTo
}

func errRedeclared(name string) error {
	return &redeclaredError{name}
}

type redeclaredError struct{ name string }

func (e *redeclaredError) Error() string { return "redeclared identifier '" + e.name + "'" }
