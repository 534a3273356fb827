package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/tidewrack/sumfile-etl/internal/sumfile"
)

// AssembleCasts consumes a decoded row sequence and groups it into casts by
// (stnnbr, castno), in order of first appearance. Rows within a group become
// entries of the cast's event map, keyed by lowercased event code; rows with
// no event code are keyed by the empty string. Each cast is stamped with the
// originating file path and the current clock time.
func AssembleCasts(rows iter.Seq[sumfile.Row], sourceFile string) []Cast {
	var order []string
	groups := make(map[string]*Cast)

	for row := range rows {
		key := text(row, sumfile.FieldStnnbr) + "\x00" + text(row, sumfile.FieldCastno)
		cast, ok := groups[key]
		if !ok {
			cast = &Cast{
				Stnnbr:     text(row, sumfile.FieldStnnbr),
				Castno:     text(row, sumfile.FieldCastno),
				Events:     make(map[string]Event),
				SourceFile: sourceFile,
			}
			groups[key] = cast
			order = append(order, key)
		}
		mergeCastFields(cast, row)
		code := strings.ToLower(text(row, sumfile.FieldEvent))
		cast.Events[code] = buildEvent(row)
	}

	casts := make([]Cast, 0, len(order))
	now := clock.Now()
	for _, key := range order {
		c := groups[key]
		c.ID = generateID(c.Type, c.Expocode, c.Stnnbr, c.Castno)
		c.ProcessedAt = now
		casts = append(casts, *c)
	}
	return casts
}

// mergeCastFields fills cast-level fields from a row. The manual expects
// these to be consistent across a cast's records, so the first value present
// wins; comments instead accumulate across records.
func mergeCastFields(cast *Cast, row sumfile.Row) {
	setIfEmpty(&cast.Type, text(row, sumfile.FieldType))
	setIfEmpty(&cast.Expocode, text(row, sumfile.FieldExpocode))
	setIfEmpty(&cast.WoceSect, text(row, sumfile.FieldWoceSect))
	setIfEmpty(&cast.Parameters, strings.TrimSpace(text(row, sumfile.FieldParameters)))

	if c := strings.TrimSpace(text(row, sumfile.FieldComments)); c != "" {
		if cast.Comments == "" {
			cast.Comments = c
		} else {
			cast.Comments += " " + c
		}
	}
}

func buildEvent(row sumfile.Row) Event {
	date, precision := combineDateTime(text(row, sumfile.FieldDate), text(row, sumfile.FieldTime))
	return Event{
		Date:           date,
		DatePrecision:  precision,
		Lat:            degrees(row, sumfile.FieldLat),
		Lon:            degrees(row, sumfile.FieldLon),
		Nav:            text(row, sumfile.FieldNav),
		Depth:          optionalInt(row, sumfile.FieldDepth),
		CorrectedDepth: optionalInt(row, sumfile.FieldCorrectedDepth),
		Height:         optionalInt(row, sumfile.FieldHeight),
		Wire:           optionalInt(row, sumfile.FieldWire),
		MaxPressure:    optionalInt(row, sumfile.FieldMaxPressure),
		Bottles:        optionalInt(row, sumfile.FieldBottles),
	}
}

// combineDateTime builds a UTC timestamp from an MMDDYY date and an HHMM
// time. A missing or malformed date yields the zero time; a missing or
// malformed time degrades the precision to a day instead of failing.
func combineDateTime(dateTok, timeTok string) (time.Time, DatePrecision) {
	dateTok = strings.TrimSpace(dateTok)
	if len(dateTok) != 6 {
		return time.Time{}, 0
	}
	month, errM := strconv.Atoi(dateTok[0:2])
	day, errD := strconv.Atoi(dateTok[2:4])
	yy, errY := strconv.Atoi(dateTok[4:6])
	if errM != nil || errD != nil || errY != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, 0
	}

	// Two-digit year pivot: WOCE cruises run from the late 1980s onward.
	year := 2000 + yy
	if yy >= 69 {
		year = 1900 + yy
	}

	hour, minute, ok := parseHHMM(timeTok)
	if !ok {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), PrecisionDay
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.UTC), PrecisionMinute
}

// parseHHMM parses a 24-hour HHMM time, zero-padding three-digit values.
func parseHHMM(hhmm string) (hour, minute int, ok bool) {
	hhmm = strings.TrimSpace(hhmm)
	if len(hhmm) == 3 {
		hhmm = "0" + hhmm
	}
	if len(hhmm) != 4 {
		return 0, 0, false
	}
	hour, errH := strconv.Atoi(hhmm[:2])
	minute, errM := strconv.Atoi(hhmm[2:])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

func text(row sumfile.Row, f sumfile.Field) string {
	v := row[f]
	if v.Kind != sumfile.KindText {
		return ""
	}
	return v.Text
}

func degrees(row sumfile.Row, f sumfile.Field) *float64 {
	v := row[f]
	if v.Kind != sumfile.KindDegrees {
		return nil
	}
	d := v.Degrees
	return &d
}

// optionalInt parses a numeric column, omitting the field when the value is
// absent or not an integer rather than failing the cast.
func optionalInt(row sumfile.Row, f sumfile.Field) *int {
	s := strings.TrimSpace(text(row, f))
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// generateID produces a deterministic ID from the cast's identity fields.
// Reprocessing the same file yields the same IDs, so downstream upserts
// (ON CONFLICT DO NOTHING) stay replay safe.
func generateID(castType, expocode, stnnbr, castno string) string {
	input := fmt.Sprintf("%s|%s|%s", expocode, stnnbr, castno)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if castType == "" {
		return short
	}
	return strings.ToLower(castType) + "-" + short
}

// SerializeCast marshals a cast into an output event for the sink topic.
func SerializeCast(cast Cast) (OutputEvent, error) {
	data, err := json.Marshal(cast)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize cast: %w", err)
	}
	return OutputEvent{
		Key:   []byte(cast.ID),
		Value: data,
		Headers: map[string]string{
			"cast_type":    cast.Type,
			"processed_at": cast.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
