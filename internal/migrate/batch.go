// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"context"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

// Batch accumulates converted stories for a single bulk submission.
type Batch struct {
	stories []clubhouse.CreateStoryParams
}

// NewBatch creates an empty batch.
func NewBatch() *Batch {
	return &Batch{stories: []clubhouse.CreateStoryParams{}}
}

// Add appends a story.
func (b *Batch) Add(story clubhouse.CreateStoryParams) {
	b.stories = append(b.stories, story)
}

// Len returns the number of accumulated stories.
func (b *Batch) Len() int {
	return len(b.stories)
}

// Stories returns the accumulated stories in insertion order.
func (b *Batch) Stories() []clubhouse.CreateStoryParams {
	return b.stories
}

// Submit sends every accumulated story in one call, even when the batch is empty.
func (b *Batch) Submit(ctx context.Context, creator StoryCreator) ([]clubhouse.Story, error) {
	stories := b.stories
	if stories == nil {
		stories = []clubhouse.CreateStoryParams{}
	}
	return creator.CreateStories(ctx, stories)
}
