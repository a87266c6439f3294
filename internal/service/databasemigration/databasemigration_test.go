package databasemigration_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opencatalog/searchsync/internal/service/databasemigration"
	databasemigrationmock "github.com/opencatalog/searchsync/internal/service/databasemigration/mock"
)

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := databasemigrationmock.NewMockRepository(ctrl)
	s := databasemigration.New(repo)

	// Test cases
	tests := []struct {
		name  string
		mock  func()
		isErr bool
	}{
		{
			name: "success",
			mock: func() {
				gomock.InOrder(
					repo.EXPECT().MigratePostgres(gomock.Any()).Return(nil),
					repo.EXPECT().MigrateClickHouse(gomock.Any()).Return(nil),
					repo.EXPECT().SetupSearchIndexes(gomock.Any()).Return(nil),
				)
			},
			isErr: false,
		},
		{
			name: "postgres migration failure stops the run",
			mock: func() {
				repo.EXPECT().MigratePostgres(gomock.Any()).
					Return(status.Error(codes.Internal, "postgres migration failed"))
			},
			isErr: true,
		},
		{
			name: "clickhouse migration failure stops the run",
			mock: func() {
				gomock.InOrder(
					repo.EXPECT().MigratePostgres(gomock.Any()).Return(nil),
					repo.EXPECT().MigrateClickHouse(gomock.Any()).
						Return(status.Error(codes.Internal, "clickhouse migration failed")),
				)
			},
			isErr: true,
		},
		{
			name: "search index setup failure stops the run",
			mock: func() {
				gomock.InOrder(
					repo.EXPECT().MigratePostgres(gomock.Any()).Return(nil),
					repo.EXPECT().MigrateClickHouse(gomock.Any()).Return(nil),
					repo.EXPECT().SetupSearchIndexes(gomock.Any()).
						Return(status.Error(codes.Internal, "index setup failed")),
				)
			},
			isErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			err := s.Run(t.Context())
			if tt.isErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
