// Package domain models hydrographic casts assembled from WOCE sum file rows.
//
// # Records and casts
//
// A sum file row describes one shipboard event: the beginning of a cast (BE),
// the instrument at the bottom (BO), the end of the cast (EN), and so on. The
// WOCE manual is explicit that no two records may share a STNNBR and CASTNO
// on the same cruise, which makes (stnnbr, castno) the identity of a cast and
// every row with that pair an event of it. Aggregation therefore groups the
// decoded row stream by that pair and keys each group's rows by event code.
//
// Cast-level columns (expocode, section, parameters) are expected to repeat
// across a cast's rows; the first value present wins. Comments are the
// exception: the manual allows them to continue across all records of a cast,
// so they are concatenated in row order.
//
// # Times
//
// Sum file dates are MMDDYY and times are HHMM. The two combine into a UTC
// timestamp carrying a precision: minute resolution when the time column is
// present, day resolution otherwise. The two-digit year pivots at 69 — 69 and
// above is the 1900s, below is the 2000s — since WOCE cruises span the late
// 1980s through the 2000s.
//
// # ID generation
//
// Cast IDs are deterministic SHA-256 hashes of expocode|stnnbr|castno,
// prefixed with the cast type. Reprocessing a file yields the same IDs, so
// downstream consumers can upsert idempotently.
package domain
