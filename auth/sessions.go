package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "session-cookie"
	userIDKey   = "user_id"
)

// Sessions issues and reads the signed session cookie.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret []byte, secure bool) *Sessions {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// Issue binds the session cookie to userID.
func (s *Sessions) Issue(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// Clear expires the session cookie.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// CurrentUserID reads the user id from a valid session cookie.
func (s *Sessions) CurrentUserID(r *http.Request) (uint, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := session.Values[userIDKey].(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}
