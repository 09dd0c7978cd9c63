package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedHeader(t *testing.T) {
	header := expectedHeader([]string{"Name", "Status"}, "Notion Page ID")
	assert.Equal(t, []string{"Name", "Status", "Notion Page ID"}, header)
}

func TestVerifyHeader(t *testing.T) {
	expected := []string{"Name", "Status", "Notion Page ID"}

	assert.NoError(t, verifyHeader([]string{"Name", "Status", "Notion Page ID"}, expected))

	err := verifyHeader([]string{"Name", "State", "Notion Page ID"}, expected)
	require.Error(t, err)
	var mismatch *HeaderMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, expected, mismatch.Expected)

	assert.Error(t, verifyHeader([]string{"Name", "Status"}, expected))
	assert.Error(t, verifyHeader(nil, expected))
}

func TestBuildRowIndex(t *testing.T) {
	rows := [][]string{
		{"a", "p1"},
		{"b", ""}, // empty id: not indexed
		{"c"},     // short row: not indexed
		{"d", "p4"},
	}

	index := buildRowIndex(rows, 1)

	assert.Equal(t, map[string]int{"p1": 2, "p4": 5}, index)
}

func TestColumnIndex(t *testing.T) {
	header := []string{"Name", "Status", "Notion Page ID"}
	assert.Equal(t, 2, columnIndex(header, "Notion Page ID"))
	assert.Equal(t, -1, columnIndex(header, "Missing"))
}
