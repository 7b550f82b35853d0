package inventory

import (
	"context"
	"log"
)

// defaultRestockThreshold is the stock level at or below which a
// product is flagged for restocking.
const defaultRestockThreshold = 5

type storer interface {
	findStockLevel(ctx context.Context, productID int64) (*StockLevel, error)
}

type service struct {
	store            storer
	restockThreshold int
}

func NewService(inventoryStore storer) *service {
	return &service{
		store:            inventoryStore,
		restockThreshold: defaultRestockThreshold,
	}
}

// checkStockLevel logs a restock warning if the product's remaining
// stock is at or below the threshold. The product may already be
// deleted by the time the event arrives; that is not an error.
func (s *service) checkStockLevel(ctx context.Context, productID int64) error {
	level, err := s.store.findStockLevel(ctx, productID)
	if err != nil {
		return err
	}

	if level == nil {
		return nil
	}

	if level.StockQty <= s.restockThreshold {
		log.Printf(
			"restock needed: product %d (%s) has %d left\n",
			level.ProductID,
			level.Name,
			level.StockQty,
		)
	}

	return nil
}
