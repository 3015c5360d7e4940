// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

func TestBatchSubmitEmpty(t *testing.T) {
	creator := &fakeCreator{}

	created, err := NewBatch().Submit(context.Background(), creator)
	require.NoError(t, err)
	assert.Empty(t, created)
	require.Len(t, creator.calls, 1)
	assert.NotNil(t, creator.calls[0])
	assert.Empty(t, creator.calls[0])
}

func TestBatchSubmitZeroValue(t *testing.T) {
	creator := &fakeCreator{}
	var b Batch

	_, err := b.Submit(context.Background(), creator)
	require.NoError(t, err)
	require.Len(t, creator.calls, 1)
	assert.NotNil(t, creator.calls[0])
}

func TestBatchSubmitSendsEverythingOnce(t *testing.T) {
	creator := &fakeCreator{}
	b := NewBatch()
	b.Add(clubhouse.CreateStoryParams{Name: "one"})
	b.Add(clubhouse.CreateStoryParams{Name: "two"})

	created, err := b.Submit(context.Background(), creator)
	require.NoError(t, err)
	assert.Len(t, created, 2)
	require.Len(t, creator.calls, 1)
	assert.Equal(t, "one", creator.calls[0][0].Name)
	assert.Equal(t, "two", creator.calls[0][1].Name)
}

func TestBatchSubmitFailure(t *testing.T) {
	creator := &fakeCreator{err: errors.New("bulk rejected")}
	b := NewBatch()
	b.Add(clubhouse.CreateStoryParams{Name: "one"})

	_, err := b.Submit(context.Background(), creator)
	assert.EqualError(t, err, "bulk rejected")
}
