package sumfile

import (
	"fmt"
	"strings"
)

// separatorRun is the minimum number of leading '-' characters that mark the
// header/body separator line.
const separatorRun = 10

// Layout is the per-file column layout resolved from the header and
// preheader lines. It is computed once and consumed by every row.
type Layout struct {
	// Fields holds the canonical field for each column, left to right, with
	// the depth/corrected-depth duplicate already resolved.
	Fields []Field

	empty map[Field]bool
}

// Empty reports whether the caller declared the field's column content
// ignorable. Empty fields are skipped during decoding and record absence.
func (l *Layout) Empty(f Field) bool {
	return l.empty[f]
}

// resolveLayout locates the separator, resolves the header labels through the
// alias table, disambiguates duplicate DEPTH columns against the preheader
// markers, and translates the caller's empty column labels. It returns the
// layout and the body lines (everything after the separator, possibly empty).
func resolveLayout(lines []string, emptyCols []string) (*Layout, []string, error) {
	sep := -1
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasPrefix(trimmed, strings.Repeat("-", separatorRun)) {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, nil, fmt.Errorf("%w: no header separator line", ErrInvalidFormat)
	}
	if sep < 2 {
		return nil, nil, fmt.Errorf("%w: separator on line %d leaves no room for header and preheader", ErrInvalidFormat, sep+1)
	}

	header := lines[sep-1]
	preheader := lines[sep-2]
	body := lines[sep+1:]

	fields := make([]Field, 0, 16)
	for _, label := range headerLabels(header) {
		f, ok := canonicalField(label)
		if !ok {
			return nil, nil, &UnknownColumnError{Label: label}
		}
		fields = append(fields, f)
	}

	if err := resolveDepthDuplicate(fields, preheader); err != nil {
		return nil, nil, err
	}

	empty := make(map[Field]bool, len(emptyCols))
	for _, label := range emptyCols {
		f, ok := canonicalField(label)
		if !ok {
			return nil, nil, &UnknownColumnError{Label: label}
		}
		empty[f] = true
	}

	return &Layout{Fields: fields, empty: empty}, body, nil
}

// headerLabels splits the header line on runs of spaces. Only the space
// character delimits labels; tabs stay attached so spellings like
// "COMMENTS\t" reach the alias lookup as written.
func headerLabels(header string) []string {
	var labels []string
	start := -1
	for i := 0; i < len(header); i++ {
		if header[i] == ' ' {
			if start >= 0 {
				labels = append(labels, header[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		labels = append(labels, header[start:])
	}
	return labels
}

// resolveDepthDuplicate retags one of two DEPTH occurrences as corrected
// depth. Files that carry both an uncorrected and a corrected depth repeat
// the DEPTH header and distinguish the two on the preheader: "UNC" marks the
// uncorrected column and "COR" (or "XXX" in older files) the corrected one.
// Whichever marker starts further right identifies the later occurrence.
// Any other duplication, or markers that cannot be ordered, is ambiguous.
func resolveDepthDuplicate(fields []Field, preheader string) error {
	counts := make(map[Field]int, len(fields))
	for _, f := range fields {
		counts[f]++
	}

	dup := false
	for f, n := range counts {
		if n == 1 {
			continue
		}
		if f != FieldDepth || n != 2 {
			return fmt.Errorf("%w: column %q appears %d times", ErrAmbiguousLayout, f, n)
		}
		dup = true
	}
	if !dup {
		return nil
	}

	unc := strings.Index(preheader, "UNC")
	cor := strings.Index(preheader, "COR")
	if cor < 0 {
		cor = strings.Index(preheader, "XXX")
	}
	if unc < 0 || cor < 0 || unc == cor {
		return fmt.Errorf("%w: two DEPTH columns but preheader markers do not order them", ErrAmbiguousLayout)
	}

	first, second := -1, -1
	for i, f := range fields {
		if f != FieldDepth {
			continue
		}
		if first < 0 {
			first = i
		} else {
			second = i
		}
	}

	if cor > unc {
		fields[second] = FieldCorrectedDepth
	} else {
		fields[first] = FieldCorrectedDepth
	}
	return nil
}
