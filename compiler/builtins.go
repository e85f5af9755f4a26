package compiler

import "lime/vm"

// BuiltinSig describes one builtin function's call-site contract:
// how many arguments it takes, which type class they must belong to,
// and the static result type. Grounded on
// original_source/builtins.c's BUILTIN_FUNCTIONS table and
// is_builtin_type_acceptable, generalized from the original's single
// "acceptable type" flag per entry to handle print/len's two
// acceptable type classes directly in the parser instead of a
// copy-pasted keyword table (the original's BUILTIN_DATATYPES[] table
// has a copy-paste bug mapping "u8" to the wrong token, not worth
// replicating).
type BuiltinSig struct {
	Name    string
	Arity   int
	Accepts func(vm.TypeTag) bool
	Result  func(argType vm.TypeTag) vm.TypeTag
}

func acceptsReal(t vm.TypeTag) bool    { return t.IsReal() }
func acceptsNumeric(t vm.TypeTag) bool { return t.IsReal() || t.IsInteger() }
func acceptsAny(vm.TypeTag) bool       { return true }

func sameType(t vm.TypeTag) vm.TypeTag  { return t }
func alwaysVoid(vm.TypeTag) vm.TypeTag  { return vm.TagVoid }
func alwaysI64(vm.TypeTag) vm.TypeTag   { return vm.TagI64 }
func alwaysF64(vm.TypeTag) vm.TypeTag   { return vm.TagF64 }

var builtinTable = map[string]BuiltinSig{
	"print": {"print", 1, acceptsAny, alwaysVoid},
	"len":   {"len", 1, acceptsAny, alwaysI64},

	"abs":  {"abs", 1, acceptsNumeric, sameType},
	"mod":  {"mod", 2, acceptsNumeric, sameType},
	"pow":  {"pow", 2, acceptsReal, alwaysF64},

	"sqrt":   {"sqrt", 1, acceptsReal, alwaysF64},
	"exp":    {"exp", 1, acceptsReal, alwaysF64},
	"sin":    {"sin", 1, acceptsReal, alwaysF64},
	"cos":    {"cos", 1, acceptsReal, alwaysF64},
	"tan":    {"tan", 1, acceptsReal, alwaysF64},
	"asin":   {"asin", 1, acceptsReal, alwaysF64},
	"acos":   {"acos", 1, acceptsReal, alwaysF64},
	"atan2":  {"atan2", 2, acceptsReal, alwaysF64},
	"log":    {"log", 1, acceptsReal, alwaysF64},
	"log10":  {"log10", 1, acceptsReal, alwaysF64},
	"log2":   {"log2", 1, acceptsReal, alwaysF64},
	"ceil":   {"ceil", 1, acceptsReal, alwaysF64},
	"floor":  {"floor", 1, acceptsReal, alwaysF64},
	"round":  {"round", 1, acceptsReal, alwaysF64},

	"itor": {"itor", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, alwaysF64},
	"rtoi": {"rtoi", 1, acceptsReal, alwaysI64},

	"i8":  {"i8", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagI8 }},
	"u8":  {"u8", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagU8 }},
	"i16": {"i16", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagI16 }},
	"u16": {"u16", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagU16 }},
	"i32": {"i32", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagI32 }},
	"u32": {"u32", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagU32 }},
	"i64": {"i64", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagI64 }},
	"u64": {"u64", 1, func(t vm.TypeTag) bool { return t.IsInteger() }, func(vm.TypeTag) vm.TypeTag { return vm.TagU64 }},
}

func LookupBuiltin(name string) (BuiltinSig, bool) {
	sig, ok := builtinTable[name]
	return sig, ok
}
