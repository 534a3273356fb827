// Package sumfile decodes WOCE hydrographic "sum" files into structured rows.
//
// # Format
//
// A sum file describes the casts of a hydrographic cruise as a
// whitespace-delimited table. The format (WOCE manual, section 3.3) predates
// fixed column widths: every producer aligns columns differently and spells
// header labels differently, so the layout has to be inferred per file. The
// parts that are dependable:
//
//   - A separator line of repeated '-' characters (at least ten, trailing
//     whitespace ignored) divides header from body.
//   - The line directly above the separator carries the column headers, each
//     label separated from its neighbors by at least one space.
//   - The line above that (the preheader) carries unit annotations. It matters
//     only when the file has both an uncorrected and a corrected depth column:
//     the "UNC" and "COR" (or "XXX") markers on the preheader tell the two
//     DEPTH headers apart.
//   - Body records keep at least one space between columns, and those gaps
//     extend through the entire body. Column positions are therefore inferred
//     from the body itself, never trusted from the header: a character position
//     is a column gap only when it is blank in every body record.
//   - The file is strict ASCII. Anything else is rejected.
//
// Header labels are normalized through a closed alias table ([Field] lists the
// canonical names); a label outside the table is an error rather than a guess.
//
// # Field syntax
//
// Most columns hold a single whitespace-trimmed token. Latitude and longitude
// span three tokens ("[D]DD MM.MM X" where X is N, S, E, or W). The parameter
// list is optional and self-delimiting: it is only taken when the next token
// consists of digits, commas, hyphens, and spaces. Comments absorb whatever
// remains on the record.
//
// # Error model
//
// Structural problems (no separator, unknown header, ambiguous duplicate
// columns, body/header column count disagreement, non-ASCII bytes) fail the
// whole file before the first row is produced. Per-field problems (a lat/lon
// that does not parse, an unrecognized hemisphere letter) resolve to an absent
// value in that one row and decoding continues.
package sumfile
