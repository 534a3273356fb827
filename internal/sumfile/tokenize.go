package sumfile

// columnSpan is a half-open character range over a body line.
type columnSpan struct {
	start, end int
}

// sliceSet holds the column spans shared by every body line. Spans are
// computed jointly over the whole body: a character position belongs to a gap
// only when it is blank, or past the end of the line, in every body line.
type sliceSet []columnSpan

// bodySlices computes the joint column spans for a body. The body must be
// scanned in full before any line can be sliced, so this runs once up front.
func bodySlices(body []string) sliceSet {
	width := 0
	for _, line := range body {
		if len(line) > width {
			width = len(line)
		}
	}

	// gap[p] stays true only while every line is blank (or absent) at p.
	gap := make([]bool, width)
	for p := range gap {
		gap[p] = true
	}
	for _, line := range body {
		for p := 0; p < len(line); p++ {
			if line[p] != ' ' {
				gap[p] = false
			}
		}
	}

	var spans sliceSet
	start := -1
	for p := 0; p < width; p++ {
		if gap[p] {
			if start >= 0 {
				spans = append(spans, columnSpan{start, p})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = p
		}
	}
	if start >= 0 {
		spans = append(spans, columnSpan{start, width})
	}
	return spans
}

// tokens slices one line into raw column tokens. Lines shorter than a span
// yield empty tokens for it; no padding is ever materialized.
func (s sliceSet) tokens(line string) []string {
	out := make([]string, len(s))
	for i, span := range s {
		start, end := span.start, span.end
		if start > len(line) {
			start = len(line)
		}
		if end > len(line) {
			end = len(line)
		}
		out[i] = line[start:end]
	}
	return out
}
