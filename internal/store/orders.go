package store

import (
	"database/sql"
	"fmt"

	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
	"github.com/254Kioko/spin-flow-log/internal/models"
)

// CreateOrder inserts the order and writes the store-assigned id back into
// it. Status defaults to whatever the caller set (Pending at submission);
// created_at is assigned by the database and never touched again.
func (s *Store) CreateOrder(order *models.Order) error {
	query := `
		INSERT INTO laundry_orders (name, contact, clothes, status, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, order.Name, order.Contact, order.Clothes, order.Status.String())
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	order.ID = int(id)
	return nil
}

func (s *Store) GetAllOrders(limit, offset int) ([]models.Order, error) {
	query := `
		SELECT id, name, contact, clothes, status, created_at
		FROM laundry_orders
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// GetOrderByID returns ErrNotFound when no order has the given id. The
// tracking page relies on that being distinct from a driver error.
func (s *Store) GetOrderByID(id int) (*models.Order, error) {
	query := `SELECT id, name, contact, clothes, status, created_at FROM laundry_orders WHERE id = ?`
	o, err := scanOrder(s.DB.QueryRow(query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Store) GetTotalOrdersCount() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM laundry_orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateOrderStatus persists the new status filtered by id equality. Any
// status may be set from any other; ordering is not enforced. A missing
// row reports ErrNotFound so the caller never shows a transition that was
// not applied.
func (s *Store) UpdateOrderStatus(id int, status lifecycle.Status) error {
	query := `UPDATE laundry_orders SET status = ? WHERE id = ?`
	res, err := s.DB.Exec(query, status.String(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanOrder works for both sql.Row and sql.Rows scans. The status column
// is stored as its canonical label and parsed back through the lifecycle
// enumeration; a value outside it is a data error, not a display fallback.
func scanOrder(scan func(dest ...any) error) (*models.Order, error) {
	var o models.Order
	var status string
	if err := scan(&o.ID, &o.Name, &o.Contact, &o.Clothes, &status, &o.CreatedAt); err != nil {
		return nil, err
	}
	st, err := lifecycle.Parse(status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}
	o.Status = st
	return &o, nil
}
