package menu

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	ListVendors(ctx context.Context, openOnly bool) ([]Vendor, error)
	GetVendor(ctx context.Context, id string) (*Vendor, error)
	ListMenuItems(ctx context.Context, vendorID string, availableOnly bool) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*MenuItem, error)
	GetMenuItemsByIDs(ctx context.Context, ids []string) ([]MenuItem, error)
	CreateMenuItem(ctx context.Context, item *MenuItem) error
	UpdateMenuItem(ctx context.Context, item *MenuItem) error
	DeleteMenuItem(ctx context.Context, id, vendorID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const menuItemColumns = `
	m.id, m.vendor_id, v.name, v.is_open,
	m.name, m.description, m.price, m.is_available,
	m.created_at, m.updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(row rowScanner) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(
		&m.ID, &m.VendorID, &m.VendorName, &m.VendorOpen,
		&m.Name, &m.Description, &m.Price, &m.IsAvailable,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *repository) ListVendors(ctx context.Context, openOnly bool) ([]Vendor, error) {
	query := `
		SELECT id, name, description, is_open, created_at
		FROM vendors
		WHERE ($1 = false OR is_open = true)
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, openOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vendors := []Vendor{}
	for rows.Next() {
		var v Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.IsOpen, &v.CreatedAt); err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

func (r *repository) GetVendor(ctx context.Context, id string) (*Vendor, error) {
	query := `
		SELECT id, name, description, is_open, created_at
		FROM vendors
		WHERE id = $1
	`

	var v Vendor
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&v.ID, &v.Name, &v.Description, &v.IsOpen, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

func (r *repository) ListMenuItems(ctx context.Context, vendorID string, availableOnly bool) ([]MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
		FROM menu_items m
		JOIN vendors v ON v.id = m.vendor_id
		WHERE m.vendor_id = $1
		  AND ($2 = false OR m.is_available = true)
		ORDER BY m.name
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}

	return items, rows.Err()
}

func (r *repository) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
		FROM menu_items m
		JOIN vendors v ON v.id = m.vendor_id
		WHERE m.id = $1
	`

	m, err := scanMenuItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetMenuItemsByIDs(ctx context.Context, ids []string) ([]MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
		FROM menu_items m
		JOIN vendors v ON v.id = m.vendor_id
		WHERE m.id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]MenuItem, 0, len(ids))
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}

	return items, rows.Err()
}

func (r *repository) CreateMenuItem(ctx context.Context, item *MenuItem) error {
	query := `
		INSERT INTO menu_items (id, vendor_id, name, description, price, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowContext(ctx, query,
		item.ID, item.VendorID, item.Name, item.Description, item.Price, item.IsAvailable,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *repository) UpdateMenuItem(ctx context.Context, item *MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, is_available = $4, updated_at = NOW()
		WHERE id = $5 AND vendor_id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Description, item.Price, item.IsAvailable, item.ID, item.VendorID,
	).Scan(&item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMenuItemNotFound
	}
	return err
}

func (r *repository) DeleteMenuItem(ctx context.Context, id, vendorID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM menu_items WHERE id = $1 AND vendor_id = $2`,
		id, vendorID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
