package domain

// StockRecord is one raw row of a spreadsheet-backed table, keyed by column
// header. Values are always strings; an empty string means the cell was
// absent. Reserved columns (timestamp, email, staff) live alongside item
// observation columns in the same map.
type StockRecord map[string]string

// Table is the header/rows shape returned by the tabular data provider.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// CurrentStockItem is one row of the processing table with its condition
// recomputed from the quantities. Condition values present in the source are
// never trusted.
type CurrentStockItem struct {
	Item       string    `json:"item"`
	Unit       string    `json:"unit"`
	Vendor     string    `json:"vendor"`
	Category   string    `json:"category"`
	ParQty     float64   `json:"par_qty"`
	MinRestock float64   `json:"min_restock"`
	CurrentQty float64   `json:"current_qty"`
	Condition  Condition `json:"condition"`
}

// ItemRow is one line of the date-range trend table. Before and After hold
// the observed value, or "-" when the item was not observed that day.
type ItemRow struct {
	ItemName string `json:"item_name"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

// VendorMessage groups the items a vendor needs to restock together with the
// composed request text addressed to that vendor.
type VendorMessage struct {
	Vendor  string             `json:"vendor"`
	Items   []CurrentStockItem `json:"items"`
	Message string             `json:"message"`
}

// SupplierContact is one row of the supplier-contact table. Phone is
// normalized to digits only (no separators, no leading +). Name matches the
// Vendor field of stock items by exact equality.
type SupplierContact struct {
	Name  string `json:"name"`
	Media string `json:"media"`
	Phone string `json:"phone,omitempty"`
	Alias string `json:"alias,omitempty"`
}

// LatestMeta identifies the chronologically latest submission across the
// full history, used for "last updated" reporting.
type LatestMeta struct {
	Timestamp string `json:"timestamp"`
	Staff     string `json:"staff"`
}
