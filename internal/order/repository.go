package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string, opts ListOptions) ([]*Order, error)
	ListByVendor(ctx context.Context, vendorID string, opts ListOptions) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, from, to OrderStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id, order_number, customer_id, customer_name, vendor_id, vendor_name,
	status, subtotal, delivery_fee, tax, total, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.VendorID, &o.VendorName,
		&o.Status, &o.Subtotal, &o.DeliveryFee, &o.Tax, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) CreateOrder(ctx context.Context, order *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, order_number, customer_id, customer_name, vendor_id, vendor_name,
			status, subtotal, delivery_fee, tax, total
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at, updated_at
	`,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		order.CustomerName,
		order.VendorID,
		order.VendorName,
		order.Status,
		order.Subtotal,
		order.DeliveryFee,
		order.Tax,
		order.Total,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	// 2. Insert order items
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (
				id, order_id, menu_item_id, name, quantity, price, line_total
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
		`,
			item.ID,
			order.ID,
			item.MenuItemID,
			item.Name,
			item.Quantity,
			item.Price,
			item.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", item.MenuItemID, err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID string, opts ListOptions) ([]*Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.list(ctx, query, customerID, opts)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID string, opts ListOptions) ([]*Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE vendor_id = $1
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.list(ctx, query, vendorID, opts)
}

func (r *repository) list(ctx context.Context, query, ownerID string, opts ListOptions) ([]*Order, error) {
	var status sql.NullString
	if opts.Status != nil {
		status = sql.NullString{String: string(*opts.Status), Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, query, ownerID, status, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the line items of all orders with a single query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []OrderItem{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, price, line_total
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, name
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.Price, &it.LineTotal,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}

	return rows.Err()
}

// UpdateStatus moves the order from one status to another. It fails with
// ErrStaleStatus when the stored status is no longer from.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStatus
	}
	return nil
}
