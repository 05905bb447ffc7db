package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/254Kioko/spin-flow-log/internal/auth"
	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
	"github.com/254Kioko/spin-flow-log/internal/store"
	"github.com/gorilla/csrf"
)

type AdminHandler struct {
	Store     *store.Store
	Guard     *auth.Guard
	Templates *TemplateCache
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if h.Guard.IsAuthenticated(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session := h.Guard.Session(r)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	ok, err := h.Guard.Login(w, r, password)
	if err != nil {
		slog.Error("Failed to save admin session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	if !ok {
		session := h.Guard.Session(r)
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid password"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	slog.Info("Admin login successful, redirecting to /admin")
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Guard.Logout(w, r); err != nil {
		slog.Error("Failed to clear admin session", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Dashboard shows the stats cards and the paginated orders table. Each row
// offers all four statuses as a free choice; there is no forward-only rule.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	pageStr := r.URL.Query().Get("page")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 20 // Default limit
	}

	offset := (page - 1) * limit

	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	orders, err := h.Store.GetAllOrders(limit, offset)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	totalPages := (stats.TotalOrders + limit - 1) / limit
	if totalPages == 0 { // Handle case with no orders
		totalPages = 1
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session := h.Guard.Session(r)
	data := map[string]interface{}{
		"Stats":       stats,
		"Orders":      orders,
		"Statuses":    lifecycle.All,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
		"CurrentPage": page,
		"TotalPages":  totalPages,
		"Limit":       limit,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateOrderStatus persists the chosen status, then redirects so the
// dashboard re-renders from the store. The visible state never advances
// before the store acknowledges the write.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session := h.Guard.Session(r)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	status, err := lifecycle.Parse(r.FormValue("status"))
	if err != nil {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	if err := h.Store.UpdateOrderStatus(id, status); err != nil {
		slog.Error("Failed to update order status", "id", id, "status", status.String(), "error", err)
		msg := "Error updating status. Please try again."
		if errors.Is(err, store.ErrNotFound) {
			msg = "Order no longer exists."
		}
		session.AddFlash(FlashMessage{Type: "error", Message: msg})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order status updated to " + status.String() + "."})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
