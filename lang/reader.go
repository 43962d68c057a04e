package lang

import (
	"io"

	"github.com/luthersystems/yascl/ast"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the program it contains.
	Read(name string, r io.Reader) (*ast.Program, error)
}
