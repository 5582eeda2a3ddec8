package identity

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settableRequest struct {
	UserID *int64
}

func (r *settableRequest) SetUserID(id *int64) {
	r.UserID = id
}

type plainRequest struct {
	UserID *int64
}

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestCurrentPrincipal(t *testing.T) {
	t.Run("anonymous request has no principal and no error", func(t *testing.T) {
		c := newTestContext(t)

		p, err := CurrentPrincipal(c)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("returns the stored principal", func(t *testing.T) {
		c := newTestContext(t)
		SetPrincipal(c, &Principal{UserID: 42})

		p, err := CurrentPrincipal(c)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, int64(42), p.UserID)
	})

	t.Run("wrong-shaped value under the principal key is a fault", func(t *testing.T) {
		c := newTestContext(t)
		c.Set(PrincipalContextKey, "not-a-principal")

		_, err := CurrentPrincipal(c)
		assert.ErrorIs(t, err, ErrUnrecognizedPrincipal)
	})
}

func TestInject(t *testing.T) {
	t.Run("assigns the user id to every setter argument", func(t *testing.T) {
		c := newTestContext(t)
		SetPrincipal(c, &Principal{UserID: 42})

		first := &settableRequest{}
		second := &settableRequest{}

		require.NoError(t, Inject(c, first, second))

		require.NotNil(t, first.UserID)
		assert.Equal(t, int64(42), *first.UserID)
		require.NotNil(t, second.UserID)
		assert.Equal(t, int64(42), *second.UserID)
	})

	t.Run("skips arguments without the setter", func(t *testing.T) {
		c := newTestContext(t)
		SetPrincipal(c, &Principal{UserID: 42})

		plain := &plainRequest{}
		settable := &settableRequest{}

		require.NoError(t, Inject(c, plain, settable))

		assert.Nil(t, plain.UserID)
		require.NotNil(t, settable.UserID)
		assert.Equal(t, int64(42), *settable.UserID)
	})

	t.Run("fails closed without a principal", func(t *testing.T) {
		c := newTestContext(t)

		req := &settableRequest{}
		err := Inject(c, req)

		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Nil(t, req.UserID)
	})

	t.Run("a principal without an id is not authenticated", func(t *testing.T) {
		c := newTestContext(t)
		SetPrincipal(c, &Principal{})

		err := Inject(c, &settableRequest{})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("wrong-shaped principal fails, not treated as anonymous", func(t *testing.T) {
		c := newTestContext(t)
		c.Set(PrincipalContextKey, 12345)

		err := Inject(c, &settableRequest{})
		assert.ErrorIs(t, err, ErrUnrecognizedPrincipal)
	})
}

func TestInjectOptional(t *testing.T) {
	t.Run("assigns the id when a principal is present", func(t *testing.T) {
		c := newTestContext(t)
		SetPrincipal(c, &Principal{UserID: 7})

		req := &settableRequest{}
		require.NoError(t, InjectOptional(c, req))

		require.NotNil(t, req.UserID)
		assert.Equal(t, int64(7), *req.UserID)
	})

	t.Run("assigns nil for an anonymous caller", func(t *testing.T) {
		c := newTestContext(t)

		req := &settableRequest{UserID: new(int64)}
		require.NoError(t, InjectOptional(c, req))

		assert.Nil(t, req.UserID)
	})

	t.Run("wrong-shaped principal still fails", func(t *testing.T) {
		c := newTestContext(t)
		c.Set(PrincipalContextKey, struct{}{})

		err := InjectOptional(c, &settableRequest{})
		assert.ErrorIs(t, err, ErrUnrecognizedPrincipal)
	})
}
