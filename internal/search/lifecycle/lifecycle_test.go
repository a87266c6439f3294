package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/search/lifecycle"
	lifecyclemock "github.com/opencatalog/searchsync/internal/search/lifecycle/mock"
)

func TestEnsureIndex(t *testing.T) {
	ctrl := gomock.NewController(t)

	engine := lifecyclemock.NewMockSearchEngine(ctrl)
	reporter := lifecyclemock.NewMockFailureReporter(ctrl)

	// Test cases
	tests := []struct {
		name       string
		kind       lifecycle.IndexKind
		mock       func()
		want       bool
		wantStatus lifecycle.IndexStatus
	}{
		{
			name: "creates missing index",
			kind: lifecycle.KindTable,
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "table_search_index").Return(false, nil)
				engine.EXPECT().CreateIndex(gomock.Any(), "table_search_index", gomock.Any()).Return(nil)
			},
			want:       true,
			wantStatus: lifecycle.IndexStatusCreated,
		},
		{
			name: "adopts existing index",
			kind: lifecycle.KindTopic,
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "topic_search_index").Return(true, nil)
			},
			want:       true,
			wantStatus: lifecycle.IndexStatusCreated,
		},
		{
			name: "marks failed and reports on engine error",
			kind: lifecycle.KindUser,
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "user_search_index").
					Return(false, status.Error(codes.Internal, "engine unavailable"))
				reporter.EXPECT().RecordStreamFailure(gomock.Any(), gomock.Any(), gomock.Any())
			},
			want:       false,
			wantStatus: lifecycle.IndexStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := lifecycle.New(engine, reporter)

			tt.mock()
			got := m.EnsureIndex(t.Context(), tt.kind)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStatus, m.Status(tt.kind))
		})
	}
}

func TestEnsureIndexIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)

	engine := lifecyclemock.NewMockSearchEngine(ctrl)
	reporter := lifecyclemock.NewMockFailureReporter(ctrl)
	m := lifecycle.New(engine, reporter)

	// Exactly one existence check and one create for any number of calls.
	engine.EXPECT().IndexExists(gomock.Any(), "tag_search_index").Return(false, nil).Times(1)
	engine.EXPECT().CreateIndex(gomock.Any(), "tag_search_index", gomock.Any()).Return(nil).Times(1)

	for i := 0; i < 5; i++ {
		assert.True(t, m.EnsureIndex(t.Context(), lifecycle.KindTag))
	}
	assert.Equal(t, lifecycle.IndexStatusCreated, m.Status(lifecycle.KindTag))
}

func TestReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)

	engine := lifecyclemock.NewMockSearchEngine(ctrl)
	reporter := lifecyclemock.NewMockFailureReporter(ctrl)

	// Test cases
	tests := []struct {
		name       string
		kind       lifecycle.IndexKind
		mock       func()
		wantStatus lifecycle.IndexStatus
	}{
		{
			name: "updates settings of existing index",
			kind: lifecycle.KindDashboard,
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "dashboard_search_index").Return(true, nil)
				engine.EXPECT().UpdateSettings(gomock.Any(), "dashboard_search_index", gomock.Any()).Return(nil)
			},
			wantStatus: lifecycle.IndexStatusCreated,
		},
		{
			name: "creates missing index",
			kind: lifecycle.KindPipeline,
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "pipeline_search_index").Return(false, nil)
				engine.EXPECT().CreateIndex(gomock.Any(), "pipeline_search_index", gomock.Any()).Return(nil)
			},
			wantStatus: lifecycle.IndexStatusCreated,
		},
		{
			name: "marks failed and reports on update error",
			kind: lifecycle.KindTeam,
			mock: func() {
				engine.EXPECT().IndexExists(gomock.Any(), "team_search_index").Return(true, nil)
				engine.EXPECT().UpdateSettings(gomock.Any(), "team_search_index", gomock.Any()).
					Return(status.Error(codes.Internal, "settings rejected"))
				reporter.EXPECT().RecordStreamFailure(gomock.Any(), gomock.Any(), gomock.Any())
			},
			wantStatus: lifecycle.IndexStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := lifecycle.New(engine, reporter)

			tt.mock()
			m.Reconcile(t.Context(), tt.kind)
			assert.Equal(t, tt.wantStatus, m.Status(tt.kind))
		})
	}
}

func TestDropIndex(t *testing.T) {
	ctrl := gomock.NewController(t)

	engine := lifecyclemock.NewMockSearchEngine(ctrl)
	reporter := lifecyclemock.NewMockFailureReporter(ctrl)

	t.Run("recreate order is delete then create", func(t *testing.T) {
		m := lifecycle.New(engine, reporter)

		gomock.InOrder(
			engine.EXPECT().IndexExists(gomock.Any(), "glossary_search_index").Return(true, nil),
			engine.EXPECT().DeleteIndex(gomock.Any(), "glossary_search_index").Return(nil),
			engine.EXPECT().IndexExists(gomock.Any(), "glossary_search_index").Return(false, nil),
			engine.EXPECT().CreateIndex(gomock.Any(), "glossary_search_index", gomock.Any()).Return(nil),
		)

		m.DropIndex(t.Context(), lifecycle.KindGlossary)
		assert.Equal(t, lifecycle.IndexStatusNotCreated, m.Status(lifecycle.KindGlossary))

		assert.True(t, m.EnsureIndex(t.Context(), lifecycle.KindGlossary))
		assert.Equal(t, lifecycle.IndexStatusCreated, m.Status(lifecycle.KindGlossary))
	})

	t.Run("delete failure is reported but not fatal", func(t *testing.T) {
		m := lifecycle.New(engine, reporter)

		engine.EXPECT().IndexExists(gomock.Any(), "mlmodel_search_index").Return(true, nil)
		engine.EXPECT().DeleteIndex(gomock.Any(), "mlmodel_search_index").
			Return(status.Error(codes.Internal, "engine unavailable"))
		reporter.EXPECT().RecordStreamFailure(gomock.Any(), gomock.Any(), gomock.Any())

		m.DropIndex(t.Context(), lifecycle.KindMLModel)
	})
}
