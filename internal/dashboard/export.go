package dashboard

import (
	"bytes"
	"fmt"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/filter"
	"github.com/KaramelBytes/catalogdash/internal/utils"
)

// EncodeCSV serialises the view with a header row and no index column.
// Empty columns means every dataset column in source order.
func EncodeCSV(v filter.View, columns []string) ([]byte, error) {
	if len(columns) == 0 {
		columns = v.Columns
	}
	var buf bytes.Buffer
	if err := catalog.WriteCSV(&buf, v.Titles, columns); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportCSV writes the view to path atomically and returns the number of rows written.
func ExportCSV(path string, v filter.View, columns []string) (int, error) {
	b, err := EncodeCSV(v, columns)
	if err != nil {
		return 0, err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	return v.Len(), nil
}
