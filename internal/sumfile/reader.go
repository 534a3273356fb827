package sumfile

import (
	"fmt"
	"iter"
	"strings"
)

// Row maps each canonical field of the resolved layout to its decoded value.
// Every row carries the full field set of its layout; fields that could not
// be decoded hold an absent Value.
type Row map[Field]Value

// Decoder holds the resolved layout and body column slices for one file.
// All structural validation happens in [Decode]; rows decode lazily.
type Decoder struct {
	layout *Layout
	slices sliceSet
	body   []string
}

// Decode validates the structure of a sum file and prepares lazy row
// decoding. emptyCols lists raw header labels (alias table spellings) whose
// column content should be ignored.
//
// Decode fails, before any row is produced, on non-ASCII input, a missing or
// misplaced separator line, unknown header or emptyCols labels, unresolvable
// duplicate columns, and body/header column count disagreement. Per-field
// problems inside a row never fail the file.
func Decode(data []byte, emptyCols ...string) (*Decoder, error) {
	for i, b := range data {
		if b >= 0x80 {
			return nil, fmt.Errorf("%w: non-ASCII byte 0x%02x at offset %d", ErrInvalidFormat, b, i)
		}
	}

	layout, body, err := resolveLayout(splitLines(string(data)), emptyCols)
	if err != nil {
		return nil, err
	}

	// A header with no records is legal and yields no rows; the column count
	// check only applies when there is a body to infer columns from.
	var slices sliceSet
	if len(body) > 0 {
		slices = bodySlices(body)
		if err := checkColumnCount(layout, len(slices)); err != nil {
			return nil, err
		}
	}

	return &Decoder{layout: layout, slices: slices, body: body}, nil
}

// checkColumnCount verifies that the body-inferred column count can satisfy
// the layout's token demand. Latitude and longitude span three body columns
// each, a parameter list spans zero or one, comments absorb any remainder,
// and caller-declared empty fields demand nothing (their body columns are
// blank, so they produce no slices). A body outside these bounds means the
// header and body describe different tables.
func checkColumnCount(layout *Layout, found int) error {
	required := 0
	optional := 0
	openEnded := false
	for _, f := range layout.Fields {
		if layout.Empty(f) {
			continue
		}
		switch f {
		case FieldLat, FieldLon:
			required += 3
		case FieldParameters:
			optional++
		case FieldComments:
			openEnded = true
		default:
			required++
		}
	}
	if found < required || (!openEnded && found > required+optional) {
		return &ColumnCountMismatchError{Expected: required, Found: found}
	}
	return nil
}

// Fields returns the canonical field for each column, in column order.
func (d *Decoder) Fields() []Field {
	return d.layout.Fields
}

// Rows returns a single-pass sequence of decoded rows, one per body line in
// body order. Rows are decoded on demand; stopping early skips the rest.
func (d *Decoder) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, line := range d.body {
			if !yield(d.decodeLine(line)) {
				return
			}
		}
	}
}

func (d *Decoder) decodeLine(line string) Row {
	cur := &cursor{tokens: d.slices.tokens(line)}
	row := make(Row, len(d.layout.Fields))
	for _, f := range d.layout.Fields {
		if d.layout.Empty(f) {
			row[f] = Value{}
			continue
		}
		row[f] = decoders[f](cur)
	}
	return row
}

// splitLines splits on newlines, tolerating CRLF line endings. A trailing
// newline does not produce a final empty line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
