package models

import (
	"time"

	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
	"github.com/254Kioko/spin-flow-log/internal/ticket"
)

// Order is the sole persistent entity: one customer laundry request,
// created whole at submission and never deleted. Collected is terminal by
// convention only.
type Order struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Contact   string           `json:"contact"`
	Clothes   string           `json:"clothes"` // free text: type, quantity, notes
	Status    lifecycle.Status `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// Ticket is the public code customers use on the tracking page.
func (o *Order) Ticket() string {
	return ticket.Encode(o.ID)
}
