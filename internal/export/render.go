package export

import (
	"encoding/csv"
	"strings"

	"github.com/mskaar/ordrecsv/internal/order"
)

// CombinedCSV renders every section's rows as one CSV document in
// section-then-row order, header included. Used by callers that want the
// combined output without touching the filesystem.
func CombinedCSV(sections []order.Section) (string, error) {
	var sb strings.Builder

	cw := csv.NewWriter(&sb)
	if err := cw.Write(header); err != nil {
		return "", err
	}
	for i := range sections {
		if err := writeRows(cw, &sections[i]); err != nil {
			return "", err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
