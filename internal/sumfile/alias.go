package sumfile

// Field is a canonical column name. Every header spelling observed in
// real sum files maps to exactly one Field.
type Field string

const (
	FieldExpocode       Field = "expocode"
	FieldWoceSect       Field = "woce_sect"
	FieldStnnbr         Field = "stnnbr"
	FieldCastno         Field = "castno"
	FieldParameters     Field = "parameters"
	FieldComments       Field = "comments"
	FieldMaxPressure    Field = "max_pressure"
	FieldWire           Field = "wire"
	FieldBottles        Field = "bottles"
	FieldHeight         Field = "height"
	FieldLat            Field = "lat"
	FieldLon            Field = "lon"
	FieldType           Field = "type"
	FieldDate           Field = "date"
	FieldTime           Field = "time"
	FieldEvent          Field = "event"
	FieldNav            Field = "nav"
	FieldDepth          Field = "depth"
	FieldCorrectedDepth Field = "corrected_depth"
)

// aliases maps raw header spellings, case-preserved as they appear in files,
// to canonical fields. The spellings were collected from the sum files in the
// CCHDO archive; several are producer typos kept verbatim.
var aliases = map[string]Field{
	"EXPOCODE": FieldExpocode,

	"SECT":   FieldWoceSect,
	"WHP-ID": FieldWoceSect,
	"WOCE":   FieldWoceSect,

	"STNNBR": FieldStnnbr,
	"CASTNO": FieldCastno,

	"PARAMETERS": FieldParameters,
	"PARAM":      FieldParameters,
	"PARAMETER":  FieldParameters,
	"PARAMS":     FieldParameters,
	"PARAMATER":  FieldParameters,
	"PARAMMETER": FieldParameters,

	"COM":        FieldComments,
	"COMM":       FieldComments,
	"COMME":      FieldComments,
	"COMMEN":     FieldComments,
	"COMMUNTS":   FieldComments,
	"COMMENTS":   FieldComments,
	"COMMENT":    FieldComments,
	"COMMMENTS":  FieldComments,
	"MOORING":    FieldComments,
	"C":          FieldComments,
	"CO":         FieldComments,
	"COMMENTS\t": FieldComments,

	"PRESS":    FieldMaxPressure,
	"PRESSURE": FieldMaxPressure,

	"WIRE":  FieldWire,
	"OUT":   FieldWire,
	"WHEEL": FieldWire,

	"BOTTLES": FieldBottles,
	"BOTTLE":  FieldBottles,

	"BOTTOM": FieldHeight,
	"ALT":    FieldHeight,

	"LATITUDE":  FieldLat,
	"LONGITUDE": FieldLon,

	"TYPE": FieldType,
	"DATE": FieldDate,
	"TIME": FieldTime,
	"CODE": FieldEvent,
	"NAV":  FieldNav,

	"DEPTH":  FieldDepth,
	"CDEPTH": FieldCorrectedDepth,
}

// canonicalField resolves a raw header label against the alias table.
func canonicalField(label string) (Field, bool) {
	f, ok := aliases[label]
	return f, ok
}
