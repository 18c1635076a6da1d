package config

// Version is the current onyoc version.
var Version = "0.1.0"

const SourceFileExt = ".onyo"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".onyo"}

// TrimSourceExt removes the recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// DefaultInterpreterName is the executable looked up in PATH when
// -p/--interpreter-path is not given.
const DefaultInterpreterName = "onyo-rs"

// ReservedIterNext is the name of the identifier reserved by the language-level
// iterator protocol hook. Its interned ident_id is recorded in the IR as
// reserved_idents.next.
const ReservedIterNext = "next"

// Built-in call names. A call site naming one of these lowers to a fixed
// unary/binary IR operator instead of a user-defined function lookup.
const (
	BuiltinPrint  = "print"
	BuiltinRead   = "read"
	BuiltinWrite  = "write"
	BuiltinJoin   = "join"
	BuiltinType   = "type"
	BuiltinErr    = "err"
	BuiltinBool   = "bool"
	BuiltinInt    = "int"
	BuiltinFloat  = "float"
	BuiltinStr    = "str"
	BuiltinLen    = "len"
	BuiltinPush   = "push"
	BuiltinRemove = "remove"
	BuiltinIndex  = "index"
)

// MainFunctionName is the required entry point; absence is a diagnostic.
const MainFunctionName = "main"
