package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"reels/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account has been deactivated")
)

// UserFinder is the slice of the identity store the authenticator needs.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator checks credentials, issues sessions and resolves the
// principal of each request.
type Authenticator struct {
	Hasher   Hasher
	Sessions *Sessions
	users    UserFinder
	admins   map[string]bool
}

func NewAuthenticator(users UserFinder, hasher Hasher, sessions *Sessions, adminUsernames []string) *Authenticator {
	admins := make(map[string]bool, len(adminUsernames))
	for _, name := range adminUsernames {
		admins[name] = true
	}
	return &Authenticator{Hasher: hasher, Sessions: sessions, users: users, admins: admins}
}

// Login verifies the credentials of an active user.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil || !a.Hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInactiveAccount
	}
	return user, nil
}

// PrincipalFor builds the principal of an active user.
func (a *Authenticator) PrincipalFor(user *models.User) Principal {
	roles := []Role{RoleUser}
	if a.admins[user.Username] {
		roles = append(roles, RoleAdmin)
	}
	return Authenticated{ID: user.ID, Name: user.Username, Roles: roles}
}

// Middleware resolves the principal once per request. Sessions pointing at
// a missing or deactivated user are treated as anonymous.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var principal Principal = Anonymous{}
		if id, ok := a.Sessions.CurrentUserID(r); ok {
			user, err := a.users.FindByID(r.Context(), id)
			switch {
			case err != nil:
				logrus.WithFields(logrus.Fields{"user_id": id, "error": err}).Debug("Session user not found")
			case !user.Active:
				logrus.WithField("user_id", id).Debug("Session user deactivated")
			default:
				principal = a.PrincipalFor(user)
			}
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireAuth rejects requests whose principal cannot engage.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !PrincipalFrom(r.Context()).CanEngage() {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects requests from non-admins.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFrom(r.Context())
		if !p.IsAuthenticated() {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !p.CanAdminister() {
			writeError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next(w, r)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"status": status, "error_msg": msg})
}
