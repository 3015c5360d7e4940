// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package pipeline

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/similigh/github2clubhouse/internal/core/config"
)

type recordingStep struct {
	name string
	err  error
	log  *[]string
}

func (s *recordingStep) Name() string { return s.name }

func (s *recordingStep) Run(ctx *Context) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestPipelineRunStopsOnError(t *testing.T) {
	var log []string
	p := New(
		&recordingStep{name: "a", log: &log},
		&recordingStep{name: "b", err: errors.New("boom"), log: &log},
		&recordingStep{name: "c", log: &log},
	)

	err := p.Run(NewContext(context.Background(), config.Default()))
	if err == nil || err.Error() != "step 'b' failed: boom" {
		t.Errorf("Expected wrapped step error, got %v", err)
	}
	if !reflect.DeepEqual(log, []string{"a", "b"}) {
		t.Errorf("Expected steps a,b to run, got %v", log)
	}
}

func TestPipelineRunSkipIsGraceful(t *testing.T) {
	var log []string
	p := New(
		&recordingStep{name: "a", err: ErrSkipPipeline, log: &log},
		&recordingStep{name: "b", log: &log},
	)

	if err := p.Run(NewContext(context.Background(), config.Default())); err != nil {
		t.Errorf("Expected nil error on skip, got %v", err)
	}
	if !reflect.DeepEqual(log, []string{"a"}) {
		t.Errorf("Expected only step a to run, got %v", log)
	}
}

func TestNewContext(t *testing.T) {
	ctx := NewContext(context.Background(), config.Default())

	if ctx.Batch == nil || ctx.Batch.Len() != 0 {
		t.Error("Expected an empty batch")
	}
	if ctx.Result == nil || ctx.Result.RunID == "" {
		t.Error("Expected a run ID")
	}

	other := NewContext(context.Background(), config.Default())
	if other.Result.RunID == ctx.Result.RunID {
		t.Error("Expected distinct run IDs")
	}

	// no Progress set: must not panic
	ctx.ReportProgress(1, 2)

	var got [2]int
	ctx.Progress = func(current, total int) { got = [2]int{current, total} }
	ctx.ReportProgress(3, 4)
	if got != [2]int{3, 4} {
		t.Errorf("Expected progress 3/4, got %v", got)
	}
}

func TestResolveSteps(t *testing.T) {
	if got := ResolveSteps([]string{"x"}, "prepare"); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Expected explicit steps to win, got %v", got)
	}
	if got := ResolveSteps(nil, "submit"); !reflect.DeepEqual(got, Presets["submit"]) {
		t.Errorf("Expected submit preset, got %v", got)
	}
	if got := ResolveSteps(nil, "unknown"); !reflect.DeepEqual(got, Presets["import"]) {
		t.Errorf("Expected import preset by default, got %v", got)
	}

	full := append(append([]string{}, Presets["prepare"]...), Presets["submit"]...)
	if !reflect.DeepEqual(full, Presets["import"]) {
		t.Errorf("Expected import to equal prepare+submit, got %v", Presets["import"])
	}
}

func TestBuildFromNamesUnknownStep(t *testing.T) {
	r := NewRegistry()
	if _, err := r.BuildFromNames([]string{"missing"}, &Dependencies{}); err == nil {
		t.Error("Expected error for unknown step")
	}
}
