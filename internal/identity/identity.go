package identity

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Common errors
var (
	// ErrNotAuthenticated means no principal is attached to the request.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnrecognizedPrincipal means something is attached under the
	// principal key but it is not a *Principal.
	ErrUnrecognizedPrincipal = errors.New("unrecognized principal")
)

// PrincipalContextKey is the gin context key the auth middleware stores the
// request principal under.
const PrincipalContextKey = "auth.principal"

// Principal is the per-request authenticated identity. It is set once by the
// auth middleware and read-only afterwards. It never outlives the request.
type Principal struct {
	UserID int64
	Raw    interface{} // the validated token claims the principal came from
}

// UserIDSetter is the capability a service request object implements to
// receive the current user id before the service method runs. A nil id means
// the caller is anonymous; services accepting anonymous callers must handle
// it explicitly.
type UserIDSetter interface {
	SetUserID(id *int64)
}

// SetPrincipal attaches the principal to the request context.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(PrincipalContextKey, p)
}

// CurrentPrincipal returns the request principal, or (nil, nil) when the
// request is anonymous. A value of the wrong type under the principal key is
// an ErrUnrecognizedPrincipal, never treated as anonymous.
func CurrentPrincipal(c *gin.Context) (*Principal, error) {
	v, exists := c.Get(PrincipalContextKey)
	if !exists || v == nil {
		return nil, nil
	}

	p, ok := v.(*Principal)
	if !ok {
		return nil, ErrUnrecognizedPrincipal
	}

	return p, nil
}

// Inject resolves the caller's user id and assigns it to every argument that
// implements UserIDSetter. Arguments without the capability are skipped
// silently; a call may have zero, one, or several eligible arguments.
//
// Inject fails closed: with no principal (or a principal without an id) it
// returns ErrNotAuthenticated and no argument is touched, so the service
// method must not run.
func Inject(c *gin.Context, args ...interface{}) error {
	p, err := CurrentPrincipal(c)
	if err != nil {
		return err
	}
	if p == nil || p.UserID == 0 {
		return ErrNotAuthenticated
	}

	id := p.UserID
	assign(&id, args)
	return nil
}

// InjectOptional is the anonymous-tolerant variant of Inject: a missing
// principal (or one without an id) assigns nil instead of failing. A
// wrong-shaped principal still fails; a malformed principal is a fault, not
// an anonymous caller.
func InjectOptional(c *gin.Context, args ...interface{}) error {
	p, err := CurrentPrincipal(c)
	if err != nil {
		return err
	}

	var id *int64
	if p != nil && p.UserID != 0 {
		v := p.UserID
		id = &v
	}

	assign(id, args)
	return nil
}

func assign(id *int64, args []interface{}) {
	for _, arg := range args {
		if setter, ok := arg.(UserIDSetter); ok {
			setter.SetUserID(id)
		}
	}
}
