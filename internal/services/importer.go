package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gaborvas/wordtrainer/internal/models"
)

// ImportResult summarizes one bulk vocabulary import.
type ImportResult struct {
	TotalRows int      `json:"total_rows"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors,omitempty"`
}

// WordImporter loads vocabulary from uploaded .xlsx workbooks: word in
// column A, translation in column B, optional definition in column C, first
// row treated as a header. Duplicate words (case-insensitive, per user) are
// skipped, not overwritten.
type WordImporter struct {
	words *WordStore
}

func NewWordImporter(words *WordStore) *WordImporter {
	return &WordImporter{words: words}
}

// ImportXLSX reads the first sheet of the workbook and inserts the rows as
// the user's words with origin "import".
func (im *WordImporter) ImportXLSX(userID uint, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		word := strings.TrimSpace(row[0])
		translation := strings.TrimSpace(row[1])
		if word == "" || translation == "" {
			continue
		}
		result.TotalRows++

		record := &models.Word{
			UserID:      userID,
			Word:        word,
			Translation: translation,
			Origin:      models.OriginImport,
		}
		if len(row) > 2 {
			record.Definition = strings.TrimSpace(row[2])
		}

		switch err := im.words.Create(record); {
		case err == nil:
			result.Created++
		case errors.Is(err, ErrDuplicateWord):
			result.Skipped++
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("row %d (%s): %v", i+1, word, err))
		}
	}

	infoLog("Import for user=%d: %d created, %d skipped, %d errors",
		userID, result.Created, result.Skipped, len(result.Errors))
	return result, nil
}
