package tgrep

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MacroLibrary is the on-disk form of a reusable macro collection: a
// YAML mapping of macro names to query expressions.
//
//	macros:
//	  np: /^NP/
//	  clause: S < (NP $.. VP)
type MacroLibrary struct {
	Macros map[string]string `yaml:"macros"`
}

// LoadMacroLibrary reads a macro library file. The patterns are not
// compiled here; pass the map to CompileWithMacros so compile errors can
// name the query they surfaced in.
func LoadMacroLibrary(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lib MacroLibrary
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("macro library %s: %w", path, err)
	}
	return lib.Macros, nil
}
