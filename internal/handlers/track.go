package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
	"github.com/254Kioko/spin-flow-log/internal/models"
	"github.com/254Kioko/spin-flow-log/internal/store"
	"github.com/254Kioko/spin-flow-log/internal/ticket"
	"github.com/gorilla/csrf"
)

// TrackOrder renders the tracking page. With a ?ticket= parameter it
// decodes the code, looks the order up and shows its progress timeline.
// A malformed code and a miss are different errors internally but the
// customer sees the same "not found" message for both.
func (h *OrderHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "customer-session")
	defer session.Save(r, w)

	tmpl := h.Templates.Get("track.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Ticket":    "",
	}

	code := r.URL.Query().Get("ticket")
	if code != "" {
		data["Ticket"] = code
		order, err := h.lookupOrder(code)
		switch {
		case err == nil:
			data["Order"] = order
			data["Progress"] = lifecycle.Progress(order.Status)
		case errors.Is(err, ticket.ErrInvalidTicket), errors.Is(err, store.ErrNotFound):
			slog.Info("Order lookup failed", "ticket", code, "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Order not found. Please check your ticket number and try again."})
		default:
			slog.Error("Order lookup error", "ticket", code, "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Tracking failed. Please try again later."})
		}
	}

	data["Flashes"] = GetFlash(session)
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *OrderHandler) lookupOrder(code string) (*models.Order, error) {
	id, err := ticket.Decode(code)
	if err != nil {
		return nil, err
	}
	return h.Store.GetOrderByID(id)
}
