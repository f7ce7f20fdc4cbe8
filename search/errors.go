package search

import "fmt"

// searchErrorf wraps err with Solve's method context and the constraint's
// variable list, mirroring the method-name-prefixed wrapping the rest of
// the solver uses for every sentinel error.
func searchErrorf(method string, vars []string, err error) error {
	return fmt.Errorf("search.%s: constraint over %v: %w", method, vars, err)
}
