// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package migrate

import (
	"context"
	"errors"

	"github.com/similigh/github2clubhouse/internal/integrations/clubhouse"
)

type fakeEpicService struct {
	epics       []clubhouse.Epic
	nextID      int64
	listCalls   int
	createCalls []clubhouse.CreateEpicParams
	listErr     error
}

func (f *fakeEpicService) ListEpics(ctx context.Context) ([]clubhouse.Epic, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]clubhouse.Epic(nil), f.epics...), nil
}

func (f *fakeEpicService) CreateEpic(ctx context.Context, params clubhouse.CreateEpicParams) (*clubhouse.Epic, error) {
	f.createCalls = append(f.createCalls, params)
	f.nextID++
	return &clubhouse.Epic{ID: 100 + f.nextID, Name: params.Name, Description: params.Description, Deadline: params.Deadline}, nil
}

type fakeComments struct {
	byIssue map[int][]Comment
	calls   []int
}

func (f *fakeComments) IssueComments(ctx context.Context, number int) ([]Comment, error) {
	f.calls = append(f.calls, number)
	if f.byIssue == nil {
		return nil, errors.New("no comments configured")
	}
	return f.byIssue[number], nil
}

type fakeCreator struct {
	calls [][]clubhouse.CreateStoryParams
	err   error
}

func (f *fakeCreator) CreateStories(ctx context.Context, stories []clubhouse.CreateStoryParams) ([]clubhouse.Story, error) {
	f.calls = append(f.calls, stories)
	if f.err != nil {
		return nil, f.err
	}
	created := make([]clubhouse.Story, len(stories))
	for i, s := range stories {
		created[i] = clubhouse.Story{ID: int64(i + 1), Name: s.Name, ProjectID: s.ProjectID}
	}
	return created, nil
}
