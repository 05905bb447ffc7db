// Package ticket maps numeric order ids to the human-facing ticket codes
// customers use for tracking (e.g. 42 <-> "LMS-000042").
package ticket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const Prefix = "LMS-"

// ErrInvalidTicket reports a code that cannot be decoded at all, as
// opposed to one that decodes but matches no order. The tracking page
// shows both as "order not found"; callers that care can tell them apart.
var ErrInvalidTicket = errors.New("invalid ticket format")

// Encode renders an order id as a ticket code, zero-padded to six digits.
// Ids above 999999 simply widen the numeric part.
func Encode(id int) string {
	return fmt.Sprintf("%s%06d", Prefix, id)
}

// Decode parses a ticket code back to its order id. The prefix is matched
// case-insensitively and surrounding whitespace is ignored.
func Decode(code string) (int, error) {
	code = strings.TrimSpace(code)
	if len(code) < len(Prefix) || !strings.EqualFold(code[:len(Prefix)], Prefix) {
		return 0, ErrInvalidTicket
	}
	id, err := strconv.Atoi(code[len(Prefix):])
	if err != nil || id < 0 {
		return 0, ErrInvalidTicket
	}
	return id, nil
}
