package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportXLSX(t *testing.T) {
	db := newTestDB(t)
	store := NewWordStore(db, nil)
	user := seedUser(t, db, "kata")
	seedWord(t, db, user.ID, "apple", "alma")

	importer := NewWordImporter(store)
	wb := buildWorkbook(t, [][]string{
		{"Word", "Translation", "Definition"},
		{"dog", "kutya", "a domesticated canine"},
		{"Apple", "alma"},       // already owned, skipped
		{"  cat  ", "macska"},   // trimmed
		{"", "hianyzo"},         // no word, ignored
		{"sun"},                 // no translation, ignored
	})

	result, err := importer.ImportXLSX(user.ID, wb)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)

	words, err := store.ByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, words, 3)

	byWord := map[string]int{}
	for _, w := range words {
		byWord[w.Word]++
	}
	assert.Contains(t, byWord, "dog")
	assert.Contains(t, byWord, "cat")
}

func TestImportXLSXNotAWorkbook(t *testing.T) {
	db := newTestDB(t)
	importer := NewWordImporter(NewWordStore(db, nil))

	_, err := importer.ImportXLSX(1, bytes.NewBufferString("definitely not xlsx"))
	assert.Error(t, err)
}
