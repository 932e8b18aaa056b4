// Package builtins defines the set of names that populate the synthetic
// Builtin scope — the root of every module's scope tree (see
// github.com/mna/pybind/lang/binder). This is the language's "export
// filter": names the binder makes visible everywhere without an import, but
// which a stub file listing more than this (helper types used only to type
// the stubs themselves) must not leak to user code.
package builtins

// Names is the set of official built-in identifiers, the kind of thing a
// language reference's "Built-in Functions" and "Built-in Constants"
// appendices list. It is never mutated after package init, mirroring
// lang/machine.Universe's "do not modify" contract in the teacher repository
// this package is adapted from.
var Names = map[string]bool{
	// constants
	"None": true, "True": true, "False": true, "NotImplemented": true,
	"Ellipsis": true, "__debug__": true,

	// functions
	"abs": true, "all": true, "any": true, "ascii": true, "bin": true,
	"bool": true, "bytearray": true, "bytes": true, "callable": true,
	"chr": true, "classmethod": true, "compile": true, "complex": true,
	"delattr": true, "dict": true, "dir": true, "divmod": true,
	"enumerate": true, "eval": true, "exec": true, "filter": true,
	"float": true, "format": true, "frozenset": true, "getattr": true,
	"globals": true, "hasattr": true, "hash": true, "help": true,
	"hex": true, "id": true, "input": true, "int": true,
	"isinstance": true, "issubclass": true, "iter": true, "len": true,
	"list": true, "locals": true, "map": true, "max": true,
	"memoryview": true, "min": true, "next": true, "object": true,
	"oct": true, "open": true, "ord": true, "pow": true, "print": true,
	"property": true, "range": true, "repr": true, "reversed": true,
	"round": true, "set": true, "setattr": true, "slice": true,
	"sorted": true, "staticmethod": true, "str": true, "sum": true,
	"super": true, "tuple": true, "type": true, "vars": true, "zip": true,

	// built-in exception types, also names that, e.g., a bare "except" clause
	// or a "raise X" statement's X may legally reference.
	"BaseException": true, "Exception": true, "ArithmeticError": true,
	"AssertionError": true, "AttributeError": true, "EOFError": true,
	"FileExistsError": true, "FileNotFoundError": true, "ImportError": true,
	"IndentationError": true, "IndexError": true, "KeyError": true,
	"KeyboardInterrupt": true, "LookupError": true, "MemoryError": true,
	"ModuleNotFoundError": true, "NameError": true, "NotImplementedError": true,
	"OSError": true, "OverflowError": true, "RecursionError": true,
	"ReferenceError": true, "RuntimeError": true, "StopIteration": true,
	"StopAsyncIteration": true, "SyntaxError": true, "SystemError": true,
	"SystemExit": true, "TabError": true, "TimeoutError": true,
	"TypeError": true, "UnboundLocalError": true, "UnicodeError": true,
	"ValueError": true, "ZeroDivisionError": true, "Warning": true,
	"DeprecationWarning": true, "UserWarning": true,
}

// IsBuiltin reports whether name is one of the language's official built-in
// identifiers — the set the synthetic Builtin scope's export filter allows
// through.
func IsBuiltin(name string) bool {
	return Names[name]
}
