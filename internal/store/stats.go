package store

import (
	"database/sql"
	"fmt"

	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
)

type DashboardStats struct {
	TotalOrders    int
	ActiveOrders   int // everything not yet Collected
	ReadyOrders    int
	TodayOrders    int
	OrdersByStatus map[lifecycle.Status]int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[lifecycle.Status]int),
	}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM laundry_orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM laundry_orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		st, err := lifecycle.Parse(label)
		if err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		stats.OrdersByStatus[st] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for st, count := range stats.OrdersByStatus {
		if st != lifecycle.Collected {
			stats.ActiveOrders += count
		}
	}
	stats.ReadyOrders = stats.OrdersByStatus[lifecycle.Ready]

	err = s.DB.QueryRow(
		"SELECT COUNT(*) FROM laundry_orders WHERE date(created_at) = date('now')",
	).Scan(&stats.TodayOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	return stats, nil
}
