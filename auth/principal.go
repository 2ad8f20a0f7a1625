package auth

import "context"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal is the actor behind a request. It is resolved once by
// Middleware and read by handlers through PrincipalFrom.
type Principal interface {
	IsAuthenticated() bool
	UserID() uint
	Username() string
	// CanEngage covers uploading, liking, commenting and following.
	CanEngage() bool
	CanAdminister() bool
}

// Authenticated is a logged-in, active user.
type Authenticated struct {
	ID    uint
	Name  string
	Roles []Role
}

func (a Authenticated) IsAuthenticated() bool { return true }
func (a Authenticated) UserID() uint          { return a.ID }
func (a Authenticated) Username() string      { return a.Name }
func (a Authenticated) CanEngage() bool       { return true }

func (a Authenticated) CanAdminister() bool {
	for _, r := range a.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// Anonymous is any request without a valid session.
type Anonymous struct{}

func (Anonymous) IsAuthenticated() bool { return false }
func (Anonymous) UserID() uint          { return 0 }
func (Anonymous) Username() string      { return "" }
func (Anonymous) CanEngage() bool       { return false }
func (Anonymous) CanAdminister() bool   { return false }

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the request's principal, Anonymous when none was set.
func PrincipalFrom(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok && p != nil {
		return p
	}
	return Anonymous{}
}
