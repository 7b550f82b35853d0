package inventory

// StockLevel is a read-only view of a product's remaining stock, used
// by the restock watcher.
type StockLevel struct {
	ProductID int64
	Name      string
	StockQty  int
}
