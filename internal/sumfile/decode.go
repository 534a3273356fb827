package sumfile

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the decoded forms a cell can take.
type ValueKind int

const (
	// KindAbsent marks a field with no value: the row ran out of tokens, the
	// caller declared the column empty, or a per-field decode failed.
	KindAbsent ValueKind = iota
	// KindText holds a raw (scalar, parameter, or comment) string.
	KindText
	// KindDegrees holds a signed decimal-degree coordinate, positive north
	// and east.
	KindDegrees
)

// Value is one decoded cell of a row.
type Value struct {
	Kind    ValueKind
	Text    string
	Degrees float64
}

// Absent reports whether the field carried no usable value.
func (v Value) Absent() bool { return v.Kind == KindAbsent }

func textValue(s string) Value { return Value{Kind: KindText, Text: s} }
func degreesValue(d float64) Value { return Value{Kind: KindDegrees, Degrees: d} }

// cursor walks one row's tokens front to back. Decoders consume a fixed
// number of tokens each, so the cursor position is the only shared state and
// every field stays aligned with its column.
type cursor struct {
	tokens []string
	pos    int
}

func (c *cursor) next() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}
	t := c.tokens[c.pos]
	c.pos++
	return t, true
}

func (c *cursor) peek() (string, bool) {
	if c.pos >= len(c.tokens) {
		return "", false
	}
	return c.tokens[c.pos], true
}

// rest drains every remaining token.
func (c *cursor) rest() []string {
	t := c.tokens[c.pos:]
	c.pos = len(c.tokens)
	return t
}

type decodeFunc func(*cursor) Value

// decoders maps each canonical field to its decoding function. Decoding is a
// positional protocol: fields are decoded in layout order and each decoder
// consumes an agreed number of tokens.
var decoders = map[Field]decodeFunc{
	FieldExpocode:       decodeScalar,
	FieldWoceSect:       decodeScalar,
	FieldStnnbr:         decodeScalar,
	FieldCastno:         decodeScalar,
	FieldType:           decodeScalar,
	FieldDate:           decodeScalar,
	FieldTime:           decodeScalar,
	FieldEvent:          decodeScalar,
	FieldNav:            decodeScalar,
	FieldDepth:          decodeScalar,
	FieldCorrectedDepth: decodeScalar,
	FieldHeight:         decodeScalar,
	FieldWire:           decodeScalar,
	FieldBottles:        decodeScalar,
	FieldMaxPressure:    decodeScalar,
	FieldLat:            decodeLatLon,
	FieldLon:            decodeLatLon,
	FieldParameters:     decodeParameters,
	FieldComments:       decodeComments,
}

// decodeScalar pops one token, trimmed. Absent only when the row has run out
// of tokens; an all-blank token decodes to the empty string.
func decodeScalar(c *cursor) Value {
	t, ok := c.next()
	if !ok {
		return Value{}
	}
	return textValue(strings.TrimSpace(t))
}

// hemisphereSign maps the hemisphere letter to the sign of the coordinate.
var hemisphereSign = map[string]float64{
	"N": 1,
	"S": -1,
	"E": 1,
	"W": -1,
}

// decodeLatLon pops three tokens (degree, minute, hemisphere) and combines
// them into signed decimal degrees. All three tokens are always consumed,
// even when empty, so later fields keep their positions. A malformed
// coordinate yields absence for this field only.
func decodeLatLon(c *cursor) Value {
	degTok, _ := c.next()
	minTok, _ := c.next()
	hemTok, _ := c.next()

	deg, err := strconv.ParseFloat(strings.TrimSpace(degTok), 64)
	if err != nil {
		return Value{}
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(minTok), 64)
	if err != nil {
		return Value{}
	}
	sign, ok := hemisphereSign[strings.ToUpper(strings.TrimSpace(hemTok))]
	if !ok {
		return Value{}
	}
	return degreesValue(sign * (deg + min/60))
}

// decodeParameters takes the next token only when it looks like a parameter
// list. The column is optional and there is no reserved separator between it
// and trailing free text, so content shape is the only way to tell them
// apart: parameter lists contain nothing but digits, commas, hyphens, and
// spaces. A token that fails the test is left for the comments decoder.
func decodeParameters(c *cursor) Value {
	t, ok := c.peek()
	if !ok {
		return Value{}
	}
	for i := 0; i < len(t); i++ {
		switch b := t[i]; {
		case b >= '0' && b <= '9':
		case b == ',' || b == '-' || b == ' ':
		default:
			return Value{}
		}
	}
	c.next()
	return textValue(t)
}

// decodeComments drains every remaining token into one space-joined string.
// It must be the last field decoded for a row.
func decodeComments(c *cursor) Value {
	return textValue(strings.Join(c.rest(), " "))
}
