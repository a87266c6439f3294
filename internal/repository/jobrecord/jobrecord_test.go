package jobrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencatalog/searchsync/internal/model"
	"github.com/opencatalog/searchsync/internal/repository/jobrecord"
)

func TestKeyForMode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, jobrecord.BatchKey, jobrecord.KeyForMode(model.RunModeBatch))
	assert.Equal(t, jobrecord.StreamKey, jobrecord.KeyForMode(model.RunModeStream))
}
