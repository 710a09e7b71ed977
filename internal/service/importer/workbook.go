package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readSheet loads the first worksheet of an uploaded workbook as a string
// grid.
func readSheet(r io.Reader) ([][]string, error) {
	const op = "importer.readSheet"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", op, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", op)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: read rows: %w", op, err)
	}
	return rows, nil
}
