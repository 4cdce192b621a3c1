package tgrep

import "fmt"

// SyntaxError reports a malformed or incompletely consumed query string.
// It is only ever returned at compile time, never while matching.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("tgrep: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// UndefinedMacroError reports a macro reference that has no binding in
// the query's macro environment. It is returned lazily, the first time
// evaluation reaches the reference.
type UndefinedMacroError struct {
	Name string
}

func (e *UndefinedMacroError) Error() string {
	return fmt.Sprintf("tgrep: macro %q not defined", e.Name)
}
