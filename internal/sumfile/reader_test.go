package sumfile_test

import (
	"os"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewrack/sumfile-etl/internal/sumfile"
)

func decodeAll(t *testing.T, data []byte, emptyCols ...string) []sumfile.Row {
	t.Helper()
	d, err := sumfile.Decode(data, emptyCols...)
	require.NoError(t, err)
	return slices.Collect(d.Rows())
}

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/woce_a20.sum")
	require.NoError(t, err)
	return data
}

func TestDecode_SingleRow(t *testing.T) {
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  CASTNO  LATITUDE\n" +
		"----------\n" +
		"001  002  12 30.0 N\n")

	d, err := sumfile.Decode(data)
	require.NoError(t, err)
	assert.Equal(t,
		[]sumfile.Field{sumfile.FieldStnnbr, sumfile.FieldCastno, sumfile.FieldLat},
		d.Fields())

	rows := slices.Collect(d.Rows())
	require.Len(t, rows, 1)
	assert.Equal(t, "001", rows[0][sumfile.FieldStnnbr].Text)
	assert.Equal(t, "002", rows[0][sumfile.FieldCastno].Text)
	assert.Equal(t, sumfile.KindDegrees, rows[0][sumfile.FieldLat].Kind)
	assert.Equal(t, 12.5, rows[0][sumfile.FieldLat].Degrees)
}

func TestDecode_FullFixture(t *testing.T) {
	rows := decodeAll(t, loadFixture(t))
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "316N138", first[sumfile.FieldExpocode].Text)
	assert.Equal(t, "A20", first[sumfile.FieldWoceSect].Text)
	assert.Equal(t, "1", first[sumfile.FieldStnnbr].Text)
	assert.Equal(t, "1", first[sumfile.FieldCastno].Text)
	assert.Equal(t, "ROS", first[sumfile.FieldType].Text)
	assert.Equal(t, "041593", first[sumfile.FieldDate].Text)
	assert.Equal(t, "1030", first[sumfile.FieldTime].Text)
	assert.Equal(t, "BE", first[sumfile.FieldEvent].Text)
	assert.Equal(t, "GPS", first[sumfile.FieldNav].Text)
	assert.Equal(t, 12.5, first[sumfile.FieldLat].Degrees)
	assert.Equal(t, -170.25, first[sumfile.FieldLon].Degrees)
	assert.Equal(t, "4500", first[sumfile.FieldDepth].Text)
	assert.Equal(t, "4510", first[sumfile.FieldCorrectedDepth].Text)
	assert.Equal(t, "36", first[sumfile.FieldBottles].Text)
	assert.Equal(t, "1,2,3", first[sumfile.FieldParameters].Text)
	assert.Equal(t, "good weather", first[sumfile.FieldComments].Text)

	second := rows[1]
	assert.InDelta(t, -9.005, second[sumfile.FieldLat].Degrees, 1e-9)
	assert.Equal(t, 171.0, second[sumfile.FieldLon].Degrees)
	assert.Equal(t, "EN", second[sumfile.FieldEvent].Text)
	assert.Equal(t, "300", second[sumfile.FieldDepth].Text)
	assert.Equal(t, "rough seas (night)", second[sumfile.FieldComments].Text)
}

func TestDecode_RowKeysMatchLayout(t *testing.T) {
	d, err := sumfile.Decode(loadFixture(t))
	require.NoError(t, err)

	want := d.Fields()
	for row := range d.Rows() {
		assert.Len(t, row, len(want))
		for _, f := range want {
			assert.Contains(t, row, f)
		}
	}
}

func TestDecode_Idempotent(t *testing.T) {
	data := loadFixture(t)
	first := decodeAll(t, data)
	second := decodeAll(t, data)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated decode mismatch (-first +second):\n%s", diff)
	}
}

func TestDecode_StopEarly(t *testing.T) {
	d, err := sumfile.Decode(loadFixture(t))
	require.NoError(t, err)

	seen := 0
	for range d.Rows() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestDecode_EmptyBody(t *testing.T) {
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  CASTNO\n" +
		"----------\n")
	rows := decodeAll(t, data)
	assert.Empty(t, rows)
}

func TestDecode_CRLF(t *testing.T) {
	data := []byte("CRUISE SUMMARY\r\n" +
		"STNNBR  CASTNO  LATITUDE\r\n" +
		"----------\r\n" +
		"001  002  12 30.0 N\r\n")
	rows := decodeAll(t, data)
	require.Len(t, rows, 1)
	assert.Equal(t, 12.5, rows[0][sumfile.FieldLat].Degrees)
}

func TestDecode_EmptyCols(t *testing.T) {
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  CASTNO  BOTTLES  COMMENTS\n" +
		"----------\n" +
		"001  002  all good\n")

	rows := decodeAll(t, data, "BOTTLES")
	require.Len(t, rows, 1)
	assert.True(t, rows[0][sumfile.FieldBottles].Absent())
	assert.Equal(t, "001", rows[0][sumfile.FieldStnnbr].Text)
	assert.Equal(t, "002", rows[0][sumfile.FieldCastno].Text)
	// The empty column consumed nothing, so the comment tokens stay aligned.
	assert.Equal(t, "all good", rows[0][sumfile.FieldComments].Text)
}

func TestDecode_MalformedCoordinateIsRowLocal(t *testing.T) {
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  LATITUDE\n" +
		"----------\n" +
		"001  12 30.0 N\n" +
		"002  xx 30.0 N\n")

	rows := decodeAll(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, 12.5, rows[0][sumfile.FieldLat].Degrees)
	assert.True(t, rows[1][sumfile.FieldLat].Absent())
	assert.Equal(t, "002", rows[1][sumfile.FieldStnnbr].Text)
}

func TestDecode_NonASCII(t *testing.T) {
	data := []byte("CRUISE SUMMARY caf\xc3\xa9\n" +
		"STNNBR  CASTNO\n" +
		"----------\n")
	_, err := sumfile.Decode(data)
	require.ErrorIs(t, err, sumfile.ErrInvalidFormat)
}

func TestDecode_NoSeparator(t *testing.T) {
	_, err := sumfile.Decode([]byte("just some text\nwith no separator\n"))
	require.ErrorIs(t, err, sumfile.ErrInvalidFormat)
}

func TestDecode_SeparatorTooEarly(t *testing.T) {
	_, err := sumfile.Decode([]byte("STNNBR\n----------\n"))
	require.ErrorIs(t, err, sumfile.ErrInvalidFormat)
}

func TestDecode_UnknownColumn(t *testing.T) {
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  FOO\n" +
		"----------\n")
	_, err := sumfile.Decode(data)

	var unknown *sumfile.UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "FOO", unknown.Label)
}

func TestDecode_UnknownEmptyCol(t *testing.T) {
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  CASTNO\n" +
		"----------\n")
	_, err := sumfile.Decode(data, "NOT-A-COLUMN")

	var unknown *sumfile.UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "NOT-A-COLUMN", unknown.Label)
}

func TestDecode_DuplicateDepth(t *testing.T) {
	t.Run("UNC before COR retags second occurrence", func(t *testing.T) {
		data := []byte("  UNC     COR\n" +
			"STNNBR  DEPTH  DEPTH\n" +
			"----------\n" +
			"001  4500  4510\n")

		d, err := sumfile.Decode(data)
		require.NoError(t, err)
		assert.Equal(t,
			[]sumfile.Field{sumfile.FieldStnnbr, sumfile.FieldDepth, sumfile.FieldCorrectedDepth},
			d.Fields())

		rows := slices.Collect(d.Rows())
		require.Len(t, rows, 1)
		assert.Equal(t, "4500", rows[0][sumfile.FieldDepth].Text)
		assert.Equal(t, "4510", rows[0][sumfile.FieldCorrectedDepth].Text)
	})

	t.Run("COR before UNC retags first occurrence", func(t *testing.T) {
		data := []byte("  COR     UNC\n" +
			"STNNBR  DEPTH  DEPTH\n" +
			"----------\n" +
			"001  4510  4500\n")

		d, err := sumfile.Decode(data)
		require.NoError(t, err)
		assert.Equal(t,
			[]sumfile.Field{sumfile.FieldStnnbr, sumfile.FieldCorrectedDepth, sumfile.FieldDepth},
			d.Fields())
	})

	t.Run("XXX marks corrected when COR is absent", func(t *testing.T) {
		data := []byte("  UNC     XXX\n" +
			"STNNBR  DEPTH  DEPTH\n" +
			"----------\n" +
			"001  4500  4510\n")

		d, err := sumfile.Decode(data)
		require.NoError(t, err)
		assert.Equal(t,
			[]sumfile.Field{sumfile.FieldStnnbr, sumfile.FieldDepth, sumfile.FieldCorrectedDepth},
			d.Fields())
	})

	t.Run("missing markers are ambiguous", func(t *testing.T) {
		data := []byte("SHIP: KNORR\n" +
			"STNNBR  DEPTH  DEPTH\n" +
			"----------\n")
		_, err := sumfile.Decode(data)
		require.ErrorIs(t, err, sumfile.ErrAmbiguousLayout)
	})

	t.Run("three DEPTH columns are ambiguous", func(t *testing.T) {
		data := []byte("  UNC     COR\n" +
			"STNNBR  DEPTH  DEPTH  DEPTH\n" +
			"----------\n")
		_, err := sumfile.Decode(data)
		require.ErrorIs(t, err, sumfile.ErrAmbiguousLayout)
	})

	t.Run("duplicate of any other column is ambiguous", func(t *testing.T) {
		data := []byte("  UNC     COR\n" +
			"STNNBR  STNNBR\n" +
			"----------\n")
		_, err := sumfile.Decode(data)
		require.ErrorIs(t, err, sumfile.ErrAmbiguousLayout)
	})
}

func TestDecode_ColumnCountMismatch(t *testing.T) {
	// The body runs its three columns together, so only one column can be
	// inferred from it.
	data := []byte("CRUISE SUMMARY\n" +
		"STNNBR  CASTNO  TYPE\n" +
		"----------\n" +
		"001002ROS\n")
	_, err := sumfile.Decode(data)

	var mismatch *sumfile.ColumnCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Found)
}
