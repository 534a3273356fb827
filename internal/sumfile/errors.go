package sumfile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat reports structural problems with the file itself:
	// non-ASCII bytes, a missing separator line, or a separator too close to
	// the start of the file for a header and preheader to exist.
	ErrInvalidFormat = errors.New("invalid sum file")

	// ErrAmbiguousLayout reports duplicate header columns that cannot be
	// resolved. The only duplication the format allows is DEPTH appearing
	// exactly twice with preheader markers ordering the two occurrences.
	ErrAmbiguousLayout = errors.New("ambiguous sum file layout")
)

// UnknownColumnError reports a header label, or a caller-supplied empty
// column label, with no alias table entry.
type UnknownColumnError struct {
	Label string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown sum file column %q", e.Label)
}

// ColumnCountMismatchError reports disagreement between the number of columns
// declared by the header and the number inferred from the body.
type ColumnCountMismatchError struct {
	Expected int // columns declared by the header
	Found    int // columns inferred from the body
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("sum file body has %d columns, header declares %d", e.Found, e.Expected)
}
