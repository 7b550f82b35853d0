package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/servererrors"
	"github.com/eng-by-sjb/yellow-pines-catalog-api/internal/storage"
	"github.com/shopspring/decimal"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

// createOne runs the whole order-creation protocol in one transaction:
// order shell first, then per item lock the product row, check stock,
// snapshot the price, decrement stock. Any failure rolls everything
// back; the deferred Rollback is a no-op after Commit.
//
// Items are processed strictly in input order. A product id appearing
// twice is handled per occurrence; re-locking a row the transaction
// already holds is a no-op in postgres.
func (s *Store) createOne(ctx context.Context, newOrder *CreateOrderRequest) (*Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to begin order transaction in order store: %w",
			err,
		)
	}
	defer tx.Rollback()

	var order Order
	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO orders(customer_id, status, total_amount, shipping_address)
			VALUES($1, $2, 0, $3)
			RETURNING id, customer_id, order_date, status, shipping_address`,
		newOrder.CustomerID,
		StatusPending,
		newOrder.ShippingAddress,
	).Scan(
		&order.ID,
		&order.CustomerID,
		&order.OrderDate,
		&order.Status,
		&order.ShippingAddress,
	)
	if err != nil {
		// the service pre-checks the customer; the fk constraint is
		// the authority if that check lost a race with a delete
		if storage.IsForeignKeyViolation(err) {
			return nil, servererrors.ErrCustomerNotFound
		}

		return nil, fmt.Errorf(
			"failed to insert order shell in order store: %w",
			err,
		)
	}

	total := decimal.Zero
	order.Items = make([]*OrderItem, 0, len(newOrder.Items))

	for _, item := range newOrder.Items {
		var unitPrice decimal.Decimal
		var stockQty int

		// the exclusive row lock serializes concurrent orders racing
		// on the same product until this transaction ends
		err = tx.QueryRowContext(
			ctx,
			`SELECT price, stock_qty FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID,
		).Scan(&unitPrice, &stockQty)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &servererrors.ProductNotFoundError{
				ProductID: item.ProductID,
			}
		}
		if err != nil {
			return nil, fmt.Errorf(
				"failed to lock product row in order store: %w",
				err,
			)
		}

		if stockQty < item.Quantity {
			return nil, &servererrors.InsufficientStockError{
				ProductID: item.ProductID,
			}
		}

		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		orderItem := OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		}

		err = tx.QueryRowContext(
			ctx,
			`INSERT INTO order_items(order_id, product_id, quantity, unit_price, line_total)
				VALUES($1, $2, $3, $4, $5)
				RETURNING id`,
			order.ID,
			item.ProductID,
			item.Quantity,
			unitPrice,
			lineTotal,
		).Scan(&orderItem.ID)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to insert order item in order store: %w",
				err,
			)
		}

		_, err = tx.ExecContext(
			ctx,
			`UPDATE products SET stock_qty = stock_qty - $1, updated_at = now() WHERE id = $2`,
			item.Quantity,
			item.ProductID,
		)
		if err != nil {
			// the stock_qty >= 0 check constraint is the authority if
			// the in-transaction stock check above ever misses
			if storage.IsCheckViolation(err) {
				return nil, &servererrors.InsufficientStockError{
					ProductID: item.ProductID,
				}
			}

			return nil, fmt.Errorf(
				"failed to decrement product stock in order store: %w",
				err,
			)
		}

		total = total.Add(lineTotal)
		order.Items = append(order.Items, &orderItem)
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE orders SET total_amount = $1 WHERE id = $2`,
		total,
		order.ID,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to set order total in order store: %w",
			err,
		)
	}
	order.TotalAmount = total

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf(
			"failed to commit order transaction in order store: %w",
			err,
		)
	}

	return &order, nil
}

func (s *Store) findByID(ctx context.Context, orderID int64) (*Order, error) {
	query := `SELECT id, customer_id, order_date, status, total_amount, shipping_address
		FROM orders WHERE id = $1`

	var order Order
	err := s.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID,
		&order.CustomerID,
		&order.OrderDate,
		&order.Status,
		&order.TotalAmount,
		&order.ShippingAddress,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan order from order store: %w",
			err,
		)
	}

	// related rows are fetched explicitly, never lazily
	order.Items, err = s.findItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *Store) findAll(ctx context.Context, skip, limit int) ([]*Order, error) {
	query := `SELECT id, customer_id, order_date, status, total_amount, shipping_address
		FROM orders ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all orders from order store: %w",
			err,
		)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		var order Order
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.OrderDate,
			&order.Status,
			&order.TotalAmount,
			&order.ShippingAddress,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order from order store: %w",
				err,
			)
		}

		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		order.Items, err = s.findItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (s *Store) findItems(ctx context.Context, orderID int64) ([]*OrderItem, error) {
	query := `SELECT id, product_id, quantity, unit_price, line_total
		FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get order items from order store: %w",
			err,
		)
	}
	defer rows.Close()

	items := []*OrderItem{}
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan order item from order store: %w",
				err,
			)
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}
