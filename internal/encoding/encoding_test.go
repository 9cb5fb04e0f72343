package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/billy/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Name,Amount,Due Date\nCafé subscription,12.50,2025-05-01\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_UTF8BOMStripped(t *testing.T) {
	content := "Name,Amount\nRent,1200\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, content...)

	assert.Equal(t, content, decode(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Café" with 0xE9 for é, as spreadsheet exports often produce.
	input := []byte{'C', 'a', 'f', 0xE9, ',', '1', '2', '.', '5', '0', '\n'}

	assert.Equal(t, "Café,12.50\n", decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 LE BOM followed by "Rent" in little-endian code units.
	input := []byte{0xFF, 0xFE, 'R', 0, 'e', 0, 'n', 0, 't', 0}

	assert.Equal(t, "Rent", decode(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
