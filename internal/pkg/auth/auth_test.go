package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/pkg/auth"
)

func newRequest(t *testing.T, header string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, "/v1/search/reindex", nil)
	require.NoError(t, err)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	a := auth.New("searchsync", "test-secret")

	t.Run("admin token is accepted", func(t *testing.T) {
		token, err := a.IssueToken("ops", auth.RoleAdmin)
		require.NoError(t, err)

		require.NoError(t, a.Authorize(newRequest(t, "Bearer "+token)))
	})

	t.Run("user token is rejected", func(t *testing.T) {
		token, err := a.IssueToken("viewer", auth.RoleUser)
		require.NoError(t, err)

		err = a.Authorize(newRequest(t, "Bearer "+token))
		require.Error(t, err)
		assert.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("missing header", func(t *testing.T) {
		err := a.Authorize(newRequest(t, ""))
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("malformed header", func(t *testing.T) {
		err := a.Authorize(newRequest(t, "Basic abc"))
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := auth.New("searchsync", "other-secret")
		token, err := other.IssueToken("ops", auth.RoleAdmin)
		require.NoError(t, err)

		err = a.Authorize(newRequest(t, "Bearer "+token))
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("garbage token", func(t *testing.T) {
		err := a.Authorize(newRequest(t, "Bearer not-a-token"))
		require.Error(t, err)
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})
}
