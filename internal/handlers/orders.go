package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
	"github.com/254Kioko/spin-flow-log/internal/models"
	"github.com/254Kioko/spin-flow-log/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

// ClothesTypes populates the submission form's select box.
var ClothesTypes = []string{
	"Shirts",
	"Trousers",
	"Jackets",
	"Dresses",
	"Suits",
	"Casual Wear",
	"Formal Wear",
	"Delicate Items",
	"Blankets",
	"Curtains",
}

type OrderHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *OrderHandler) OrderForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("order_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "customer-session")
	data := map[string]interface{}{
		"ClothesTypes": ClothesTypes,
		"CsrfField":    csrf.TemplateField(r),
		"Flashes":      GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "customer-session")
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	name := r.FormValue("name")
	contact := r.FormValue("contact")
	clothesType := r.FormValue("clothes_type")
	qtyStr := r.FormValue("quantity")
	notes := r.FormValue("notes")

	// Validation happens entirely before any store call.
	errors := make(map[string]string)
	if name == "" {
		errors["name"] = "Your name is required."
	}
	if contact == "" {
		errors["contact"] = "A phone number or other contact is required."
	}
	if clothesType == "" {
		errors["clothes_type"] = "Please select a clothes type."
	}
	quantity, err := strconv.Atoi(qtyStr)
	if qtyStr == "" || err != nil || quantity < 1 {
		errors["quantity"] = "Quantity must be a positive number."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// No structured sub-fields are persisted; type, quantity and notes are
	// concatenated into the single free-text clothes column.
	clothes := fmt.Sprintf("%s (%d items)", clothesType, quantity)
	if notes != "" {
		clothes += " - " + notes
	}

	order := &models.Order{
		Name:    name,
		Contact: contact,
		Clothes: clothes,
		Status:  lifecycle.Pending,
	}

	if err := h.Store.CreateOrder(order); err != nil {
		slog.Error("Failed to create order", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to submit order. Please try again."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	slog.Info("Order submitted", "id", order.ID, "ticket", order.Ticket())
	session.AddFlash(FlashMessage{
		Type:    "success",
		Message: "Order submitted successfully! Your ticket number is " + order.Ticket() + ". Save this for tracking.",
	})
	http.Redirect(w, r, "/track?ticket="+order.Ticket(), http.StatusSeeOther)
}
