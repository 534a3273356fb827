package domain

import (
	"context"
	"time"
)

// RawFile is one sum file picked up from the spool, before decoding.
type RawFile struct {
	Path string
	Data []byte
	// Commit acknowledges the file after its casts have been loaded,
	// typically by moving it out of the spool directory.
	Commit func(ctx context.Context) error
}

// DatePrecision is the resolution of an event timestamp, in seconds.
type DatePrecision int

const (
	// PrecisionMinute marks events whose row carried both date and time.
	PrecisionMinute DatePrecision = 60
	// PrecisionDay marks events whose row carried only a date.
	PrecisionDay DatePrecision = 86400
)

// Event is one record of a cast, keyed in Cast.Events by its event code
// (be, bo, en, ...).
type Event struct {
	Date          time.Time     `json:"date,omitzero"`
	DatePrecision DatePrecision `json:"date_precision,omitempty"`

	Lat *float64 `json:"lat,omitempty"` // decimal degrees north
	Lon *float64 `json:"lon,omitempty"` // decimal degrees east
	Nav string   `json:"nav,omitempty"`

	Depth          *int `json:"depth,omitempty"`
	CorrectedDepth *int `json:"cdepth,omitempty"`
	Height         *int `json:"height,omitempty"` // height above bottom
	Wire           *int `json:"wire,omitempty"`   // wire out
	MaxPressure    *int `json:"max_pressure,omitempty"`
	Bottles        *int `json:"bottles,omitempty"`
}

// Cast aggregates every sum file row sharing a (stnnbr, castno) pair.
type Cast struct {
	ID         string `json:"id"`
	Type       string `json:"type,omitempty"`
	Expocode   string `json:"expocode,omitempty"`
	WoceSect   string `json:"woce_sect,omitempty"`
	Stnnbr     string `json:"stnnbr"`
	Castno     string `json:"castno"`
	Parameters string `json:"parameters,omitempty"`
	Comments   string `json:"comments,omitempty"`

	Events map[string]Event `json:"events"`

	SourceFile  string    `json:"source_file,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
