package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/model"
	"github.com/opencatalog/searchsync/internal/service/reindex"
)

// stubService scripts the reindex service responses.
type stubService struct {
	submitRec  *model.JobRecord
	submitErr  error
	statusRec  *model.JobRecord
	statusErr  error
	lastReq    *reindex.ReindexRequest
	lastMode   model.RunMode
	submitHits int
}

func (s *stubService) Submit(_ context.Context, req *reindex.ReindexRequest) (*model.JobRecord, error) {
	s.submitHits++
	s.lastReq = req
	return s.submitRec, s.submitErr
}

func (s *stubService) LastStatus(_ context.Context, mode model.RunMode) (*model.JobRecord, error) {
	s.lastMode = mode
	return s.statusRec, s.statusErr
}

// stubAuthorizer accepts every request unless an error is scripted.
type stubAuthorizer struct {
	err error
}

func (a *stubAuthorizer) Authorize(_ *http.Request) error {
	return a.err
}

func newTestServer(t *testing.T, authz Authorizer, svc ReindexService) *httptest.Server {
	t.Helper()

	if authz == nil {
		authz = &stubAuthorizer{}
	}

	srv := New(t.Context(), &Config{
		Host:             "localhost",
		Port:             0,
		RequestBodyLimit: 1 << 20,
	}, authz, svc)

	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleReindex(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := &stubService{
			submitRec: &model.JobRecord{
				Status:   model.JobStatusStarting,
				Entities: []string{"table"},
			},
		}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Post(
			ts.URL+"/v1/search/reindex",
			"application/json",
			strings.NewReader(`{"entities":["table"],"runMode":"BATCH","batchSize":50}`),
		)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusAccepted, resp.StatusCode)

		var rec model.JobRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
		assert.Equal(t, model.JobStatusStarting, rec.Status)

		require.NotNil(t, svc.lastReq)
		assert.Equal(t, []string{"table"}, svc.lastReq.Entities)
		assert.Equal(t, model.RunModeBatch, svc.lastReq.RunMode)
		assert.Equal(t, 50, svc.lastReq.BatchSize)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := &stubService{}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Post(ts.URL+"/v1/search/reindex", "application/json", strings.NewReader(`{broken`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Zero(t, svc.submitHits)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &stubService{
			submitErr: status.Error(codes.InvalidArgument, "entities are required"),
		}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Post(ts.URL+"/v1/search/reindex", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := &stubService{}
		authz := &stubAuthorizer{err: status.Error(codes.Unauthenticated, "missing authorization header")}
		ts := newTestServer(t, authz, svc)

		resp, err := http.Post(
			ts.URL+"/v1/search/reindex",
			"application/json",
			strings.NewReader(`{"entities":["table"],"runMode":"BATCH"}`),
		)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Zero(t, svc.submitHits)
	})

	t.Run("forbidden", func(t *testing.T) {
		svc := &stubService{}
		authz := &stubAuthorizer{err: status.Error(codes.PermissionDenied, "admin role required")}
		ts := newTestServer(t, authz, svc)

		resp, err := http.Post(
			ts.URL+"/v1/search/reindex",
			"application/json",
			strings.NewReader(`{"entities":["table"],"runMode":"BATCH"}`),
		)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Zero(t, svc.submitHits)
	})

	t.Run("wrong method", func(t *testing.T) {
		svc := &stubService{}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Get(ts.URL + "/v1/search/reindex")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}

func TestHandleReindexStatus(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &stubService{
			statusRec: &model.JobRecord{
				Status: model.JobStatusActive,
				Stats:  model.Stats{Total: 5, Success: 5},
			},
		}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Get(ts.URL + "/v1/search/reindex/status/BATCH")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, model.RunModeBatch, svc.lastMode)

		var rec model.JobRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
		assert.Equal(t, model.JobStatusActive, rec.Status)
		assert.Equal(t, 5, rec.Stats.Total)
	})

	t.Run("invalid run mode", func(t *testing.T) {
		svc := &stubService{}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Get(ts.URL + "/v1/search/reindex/status/ONCE")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("no record", func(t *testing.T) {
		svc := &stubService{
			statusErr: status.Error(codes.NotFound, "no job record"),
		}
		ts := newTestServer(t, nil, svc)

		resp, err := http.Get(ts.URL + "/v1/search/reindex/status/STREAM")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestHandleHealthz(t *testing.T) {
	ts := newTestServer(t, nil, &stubService{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
