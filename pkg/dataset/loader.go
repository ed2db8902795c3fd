package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"voucher-segments/pkg/models"
)

// Column headers expected in the raw snapshot sheet.
var columns = []string{
	"customer_id",
	"country_code",
	"timestamp",
	"first_order_ts",
	"last_order_ts",
	"total_orders",
	"voucher_amount",
}

// Load reads the raw order-history snapshot from the first sheet of an xlsx
// export. Cells come back as strings; nothing is validated here, the
// cleaning stage owns the invariants. Fully empty rows are skipped.
func Load(path string) ([]models.RawOrderRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("snapshot %s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("snapshot %s: empty sheet", path)
	}

	idx := make(map[string]int, len(columns))
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("snapshot %s: missing column %q", path, c)
		}
	}

	cell := func(row []string, name string) string {
		i := idx[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := make([]models.RawOrderRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := models.RawOrderRecord{
			CustomerID:    cell(row, "customer_id"),
			CountryCode:   cell(row, "country_code"),
			Timestamp:     cell(row, "timestamp"),
			FirstOrderTS:  cell(row, "first_order_ts"),
			LastOrderTS:   cell(row, "last_order_ts"),
			TotalOrders:   cell(row, "total_orders"),
			VoucherAmount: cell(row, "voucher_amount"),
		}
		if rec == (models.RawOrderRecord{}) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
