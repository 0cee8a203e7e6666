package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"promptforge/prompt"
)

// XlsxExtractor handles spreadsheets, flattening every sheet to tabular text.
// Sheet order is preserved; sheets are joined with a blank-line separator.
type XlsxExtractor struct{}

// NewXlsxExtractor creates a new spreadsheet extractor.
func NewXlsxExtractor() *XlsxExtractor {
	return &XlsxExtractor{}
}

// Extract flattens all sheets to tab-separated rows.
func (e *XlsxExtractor) Extract(name, _ string, data []byte) (prompt.NormalizedDocument, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()

	var sheets []string
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("read sheet %s: %w", sheetName, err))
		}
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
		sheets = append(sheets, b.String())
	}

	text := strings.Join(sheets, "\n")
	if strings.TrimSpace(text) == "" {
		return prompt.NormalizedDocument{}, extractionFailed(name, fmt.Errorf("workbook contains no cell data"))
	}
	return textDocument(name, text), nil
}

// Kind returns the content family this extractor handles.
func (e *XlsxExtractor) Kind() Kind {
	return KindXlsx
}
