// Package auth gates the admin views. It is not a security boundary —
// a single shared secret and a cookie flag, matching the rest of the app's
// threat model — but the state has an explicit owner: one Guard instance
// constructed in main and injected into the handlers that need it.
package auth

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

const sessionName = "admin-session"

type Guard struct {
	Sessions *sessions.CookieStore
	// Password is compared in constant time. When PasswordHash is set it
	// wins and Password is ignored.
	Password     string
	PasswordHash string
	LoginPath    string
}

func NewGuard(store *sessions.CookieStore, password, passwordHash string) *Guard {
	return &Guard{
		Sessions:     store,
		Password:     password,
		PasswordHash: passwordHash,
		LoginPath:    "/admin/login",
	}
}

// Login checks the password and, on success, persists the authenticated
// flag in the session cookie. Returns whether the password matched; the
// flag is only ever set on a match.
func (g *Guard) Login(w http.ResponseWriter, r *http.Request, password string) (bool, error) {
	if !g.check(password) {
		return false, nil
	}
	session, _ := g.Sessions.Get(r, sessionName)
	session.Values["authenticated"] = true
	session.Options.Path = "/"
	if err := session.Save(r, w); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the flag and expires the cookie. This is the only way the
// flag is reset.
func (g *Guard) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := g.Sessions.Get(r, sessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	return session.Save(r, w)
}

// IsAuthenticated is a pure query of the persisted flag.
func (g *Guard) IsAuthenticated(r *http.Request) bool {
	session, _ := g.Sessions.Get(r, sessionName)
	auth, ok := session.Values["authenticated"].(bool)
	return ok && auth
}

// Require redirects unauthenticated requests to the login page before the
// protected handler runs.
func (g *Guard) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.IsAuthenticated(r) {
			slog.Info("Unauthenticated admin request, redirecting to login", "path", r.URL.Path)
			http.Redirect(w, r, g.LoginPath, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (g *Guard) check(password string) bool {
	if g.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.Password), []byte(password)) == 1
}

// Session exposes the named admin session for handlers that flash messages
// on it.
func (g *Guard) Session(r *http.Request) *sessions.Session {
	session, _ := g.Sessions.Get(r, sessionName)
	return session
}
