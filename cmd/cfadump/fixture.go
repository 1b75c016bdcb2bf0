package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/cfa/ast"
)

// loadModule reads and decodes a JSON AST fixture describing a module body.
func loadModule(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cfadump: read fixture %s: %w", path, err)
	}
	module, err := ast.DecodeModule(data)
	if err != nil {
		return nil, fmt.Errorf("cfadump: decode fixture %s: %w", path, err)
	}
	return module, nil
}

// topLevelFunctions returns every function or coroutine defined directly in
// module's body. Nested scopes are not searched: each function is its own
// analysis unit, and the lint command works one unit at a time.
func topLevelFunctions(module *ast.Module) []ast.Coroutine {
	var out []ast.Coroutine
	for _, stmt := range module.Body {
		if fn, ok := stmt.(ast.Coroutine); ok {
			out = append(out, fn)
		}
	}
	return out
}
