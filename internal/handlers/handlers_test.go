package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/254Kioko/spin-flow-log/internal/auth"
	"github.com/254Kioko/spin-flow-log/internal/lifecycle"
	"github.com/254Kioko/spin-flow-log/internal/models"
	"github.com/254Kioko/spin-flow-log/internal/store"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTemplates writes stripped-down versions of the real pages so handler
// tests can assert on rendered content without the full markup.
func testTemplates(t *testing.T) *TemplateCache {
	t.Helper()
	dir := t.TempDir()
	pages := map[string]string{
		"order_form.html": `{{range .Flashes}}[{{.Type}}] {{.Message}} {{end}}form`,
		"track.html":      `{{range .Flashes}}[{{.Type}}] {{.Message}} {{end}}{{with .Order}}{{.Name}} {{.Ticket}} {{.Status}}{{end}} {{if .Progress}}{{range .Progress}}{{if .Completed}}done:{{.Status}} {{end}}{{end}}{{end}}`,
		"login.html":      `{{range .Flashes}}[{{.Type}}] {{.Message}} {{end}}login`,
		"admin.html":      `{{range .Flashes}}[{{.Type}}] {{.Message}} {{end}}{{.Stats.TotalOrders}} orders {{range .Orders}}{{.Ticket}}={{.Status}} {{end}}`,
	}
	for name, body := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	tc := NewTemplateCache()
	require.NoError(t, tc.Load(dir))
	return tc
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.DB.Close() })
	require.NoError(t, s.InitSchema())
	return s
}

func newSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSubmitOrderCreatesOrderAndRedirectsToTracking(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{Store: db, Templates: testTemplates(t), SessionStore: newSessionStore()}

	rec := httptest.NewRecorder()
	h.SubmitOrder(rec, postForm("/order", url.Values{
		"name":         {"John Doe"},
		"contact":      {"555-1000"},
		"clothes_type": {"Shirts"},
		"quantity":     {"5"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/track?ticket=LMS-000001", rec.Header().Get("Location"))

	order, err := db.GetOrderByID(1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", order.Name)
	assert.Equal(t, "555-1000", order.Contact)
	assert.Equal(t, "Shirts (5 items)", order.Clothes)
	assert.Equal(t, lifecycle.Pending, order.Status)
}

func TestSubmitOrderAppendsNotes(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{Store: db, Templates: testTemplates(t), SessionStore: newSessionStore()}

	rec := httptest.NewRecorder()
	h.SubmitOrder(rec, postForm("/order", url.Values{
		"name":         {"Jane"},
		"contact":      {"555-2000"},
		"clothes_type": {"Suits"},
		"quantity":     {"2"},
		"notes":        {"Dry clean only"},
	}))

	order, err := db.GetOrderByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Suits (2 items) - Dry clean only", order.Clothes)
}

func TestSubmitOrderValidationBlocksStoreCall(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{Store: db, Templates: testTemplates(t), SessionStore: newSessionStore()}

	cases := []url.Values{
		{"contact": {"555-1000"}, "clothes_type": {"Shirts"}, "quantity": {"5"}}, // no name
		{"name": {"John"}, "clothes_type": {"Shirts"}, "quantity": {"5"}},        // no contact
		{"name": {"John"}, "contact": {"555-1000"}, "quantity": {"5"}},           // no type
		{"name": {"John"}, "contact": {"555-1000"}, "clothes_type": {"Shirts"}},  // no quantity
		{"name": {"John"}, "contact": {"555-1000"}, "clothes_type": {"Shirts"}, "quantity": {"0"}},
		{"name": {"John"}, "contact": {"555-1000"}, "clothes_type": {"Shirts"}, "quantity": {"five"}},
	}
	for _, form := range cases {
		rec := httptest.NewRecorder()
		h.SubmitOrder(rec, postForm("/order", form))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"), "form %v", form)
	}

	count, err := db.GetTotalOrdersCount()
	require.NoError(t, err)
	assert.Zero(t, count, "no order reaches the store on validation failure")
}

func TestTrackOrderFound(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{Store: db, Templates: testTemplates(t), SessionStore: newSessionStore()}

	order := &models.Order{Name: "John Doe", Contact: "555-1000", Clothes: "Shirts (5 items)", Status: lifecycle.Ready}
	require.NoError(t, db.CreateOrder(order))

	rec := httptest.NewRecorder()
	h.TrackOrder(rec, httptest.NewRequest(http.MethodGet, "/track?ticket="+order.Ticket(), nil))

	body := rec.Body.String()
	assert.Contains(t, body, "John Doe")
	assert.Contains(t, body, "LMS-000001")
	// Ready marks the first three timeline steps completed, not the last.
	assert.Contains(t, body, "done:Pending")
	assert.Contains(t, body, "done:In Progress")
	assert.Contains(t, body, "done:Ready")
	assert.NotContains(t, body, "done:Collected")
}

func TestTrackOrderNotFoundAndInvalidLookAlike(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{Store: db, Templates: testTemplates(t), SessionStore: newSessionStore()}

	// A well-formed ticket with no matching row and a malformed ticket
	// render the identical message.
	for _, code := range []string{"LMS-000042", "LMS-ABCDEF"} {
		rec := httptest.NewRecorder()
		h.TrackOrder(rec, httptest.NewRequest(http.MethodGet, "/track?ticket="+code, nil))
		assert.Contains(t, rec.Body.String(), "Order not found", "code %q", code)
	}
}

func newAdminHandler(t *testing.T, db *store.Store) *AdminHandler {
	t.Helper()
	return &AdminHandler{
		Store:     db,
		Guard:     auth.NewGuard(newSessionStore(), "admin123", ""),
		Templates: testTemplates(t),
	}
}

func TestUpdateOrderStatusPersistsAndRedirects(t *testing.T) {
	db := newTestStore(t)
	h := newAdminHandler(t, db)

	order := &models.Order{Name: "n", Contact: "c", Clothes: "cl", Status: lifecycle.Ready}
	require.NoError(t, db.CreateOrder(order))

	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, postForm("/admin/orders/status", url.Values{
		"id":     {"1"},
		"status": {"Collected"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	got, err := db.GetOrderByID(1)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Collected, got.Status)
}

func TestUpdateOrderStatusBackward(t *testing.T) {
	db := newTestStore(t)
	h := newAdminHandler(t, db)

	order := &models.Order{Name: "n", Contact: "c", Clothes: "cl", Status: lifecycle.Ready}
	require.NoError(t, db.CreateOrder(order))

	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, postForm("/admin/orders/status", url.Values{
		"id":     {"1"},
		"status": {"Pending"},
	}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	got, err := db.GetOrderByID(1)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Pending, got.Status)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	db := newTestStore(t)
	h := newAdminHandler(t, db)

	order := &models.Order{Name: "n", Contact: "c", Clothes: "cl", Status: lifecycle.Pending}
	require.NoError(t, db.CreateOrder(order))

	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, postForm("/admin/orders/status", url.Values{
		"id":     {"1"},
		"status": {"Lost"},
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	got, err := db.GetOrderByID(1)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Pending, got.Status, "visible state does not advance")
}

func TestUpdateOrderStatusMissingOrder(t *testing.T) {
	db := newTestStore(t)
	h := newAdminHandler(t, db)

	rec := httptest.NewRecorder()
	h.UpdateOrderStatus(rec, postForm("/admin/orders/status", url.Values{
		"id":     {"999"},
		"status": {"Ready"},
	}))

	// Failure is surfaced as a flash on the redirected dashboard, not a 500.
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func TestLoginPostWrongPasswordRedirectsBack(t *testing.T) {
	db := newTestStore(t)
	h := newAdminHandler(t, db)

	rec := httptest.NewRecorder()
	h.LoginPost(rec, postForm("/admin/login", url.Values{"password": {"wrong"}}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	// The flag stays unset: a protected view still redirects to login.
	next := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	assert.False(t, h.Guard.IsAuthenticated(next))
}

func TestDashboardRendersOrdersAndStats(t *testing.T) {
	db := newTestStore(t)
	h := newAdminHandler(t, db)

	require.NoError(t, db.CreateOrder(&models.Order{Name: "n", Contact: "c", Clothes: "cl", Status: lifecycle.Ready}))
	require.NoError(t, db.CreateOrder(&models.Order{Name: "m", Contact: "c", Clothes: "cl", Status: lifecycle.Pending}))

	rec := httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "2 orders")
	assert.Contains(t, body, "LMS-000001=Ready")
	assert.Contains(t, body, "LMS-000002=Pending")
}
