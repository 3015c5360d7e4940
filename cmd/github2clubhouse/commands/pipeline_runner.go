// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-19

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/github2clubhouse/internal/core/pipeline"
	"github.com/similigh/github2clubhouse/internal/tui"
)

// Wrapper step to send status updates
type statusReportingStep struct {
	inner      pipeline.Step
	statusChan chan<- tui.PipelineStatusMsg
}

func (s *statusReportingStep) Name() string {
	return s.inner.Name()
}

func (s *statusReportingStep) Run(ctx *pipeline.Context) error {
	send(ctx, s.statusChan, tui.PipelineStatusMsg{Step: s.Name(), Status: "started", Message: "Starting..."})

	err := s.inner.Run(ctx)

	if err != nil {
		if errors.Is(err, pipeline.ErrSkipPipeline) {
			send(ctx, s.statusChan, tui.PipelineStatusMsg{Step: s.Name(), Status: "skipped", Message: ctx.Result.SkipReason})
			return err
		}
		send(ctx, s.statusChan, tui.PipelineStatusMsg{Step: s.Name(), Status: "error", Message: err.Error()})
		return err
	}

	send(ctx, s.statusChan, tui.PipelineStatusMsg{Step: s.Name(), Status: "success", Message: "Completed"})
	return nil
}

// send delivers msg unless the run was cancelled, so a closed TUI never blocks the pipeline.
func send(ctx *pipeline.Context, ch chan<- tui.PipelineStatusMsg, msg tui.PipelineStatusMsg) {
	select {
	case ch <- msg:
	case <-ctx.Ctx.Done():
	}
}

func wrapSteps(p *pipeline.Pipeline, statusChan chan<- tui.PipelineStatusMsg) *pipeline.Pipeline {
	var wrapped []pipeline.Step
	for _, step := range p.Steps() {
		wrapped = append(wrapped, &statusReportingStep{inner: step, statusChan: statusChan})
	}
	return pipeline.New(wrapped...)
}

// splitAtConfirmation separates the steps that can run under the TUI from those that
// need the terminal back.
func splitAtConfirmation(names []string) (before, after []string) {
	for i, name := range names {
		if name == "confirmation" {
			return names[:i], names[i:]
		}
	}
	return names, nil
}

// runWithTUI runs p while a bubbletea program renders its progress.
// It returns the pipeline error, or errCancelled if the operator quit first.
func runWithTUI(title string, p *pipeline.Pipeline, pCtx *pipeline.Context, cancel func()) error {
	statusChan := make(chan tui.PipelineStatusMsg)
	names := make([]string, 0, len(p.Steps()))
	for _, step := range p.Steps() {
		names = append(names, step.Name())
	}

	pCtx.Progress = func(current, total int) {
		send(pCtx, statusChan, tui.PipelineStatusMsg{Step: "story_converter", Status: "progress", Current: current, Total: total})
	}

	done := make(chan error, 1)
	go func() {
		defer close(statusChan)
		done <- wrapSteps(p, statusChan).Run(pCtx)
	}()

	program := tea.NewProgram(tui.NewModel(title, names, statusChan))
	final, err := program.Run()

	// The model stops reading once it exits; keep the pipeline from blocking on sends.
	go func() {
		for range statusChan {
		}
	}()

	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return <-done
	}
	return tuiOutcome(m, cancel, done)
}

// tuiOutcome turns the final model state into the run's error.
// A model that gave up on the pipeline cancels it before its error is reported.
func tuiOutcome(m tui.Model, cancel func(), done <-chan error) error {
	switch {
	case m.Quitting():
		cancel()
		<-done
		return errCancelled
	case !m.Succeeded() && m.Err() != nil:
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return m.Err()
	}
	return <-done
}

var errCancelled = errors.New("import cancelled")

// runPlain runs p printing one line per step to w, for CI and non-terminal sessions.
func runPlain(w io.Writer, p *pipeline.Pipeline, pCtx *pipeline.Context) error {
	pCtx.Progress = func(current, total int) {
		fmt.Fprintf(w, "\r  converted %d/%d issues", current, total)
		if current == total {
			fmt.Fprintln(w)
		}
	}

	for _, step := range p.Steps() {
		start := time.Now()
		if err := pipeline.New(step).Run(pCtx); err != nil {
			fmt.Fprintf(w, "❌ %s\n", step.Name())
			return err
		}
		if pCtx.Result.Aborted || pCtx.Result.SkipReason != "" {
			fmt.Fprintf(w, "○ %s (%s)\n", step.Name(), pCtx.Result.SkipReason)
			return nil
		}
		if verbose {
			fmt.Fprintf(w, "✓ %s (%s)\n", step.Name(), time.Since(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(w, "✓ %s\n", step.Name())
		}
	}
	return nil
}

func stepList(names []string) string {
	return strings.Join(names, ", ")
}
