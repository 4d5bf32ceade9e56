package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cppdoc/internal/driver"
	"cppdoc/internal/ui"
)

type correlateOutcome struct {
	results []*driver.FileResult
	err     error
}

// correlate runs the pipeline over paths, with the progress UI when enabled.
func correlate(cmd *cobra.Command, sess *driver.Session, paths []string, jobs int) ([]*driver.FileResult, error) {
	useUI, err := wantUI(cmd, len(paths))
	if err != nil {
		return nil, err
	}
	if !useUI {
		return driver.CorrelateFiles(cmd.Context(), sess, paths, jobs)
	}
	return correlateWithUI(cmd.Context(), cmd.Name(), sess, paths, jobs)
}

func correlateWithUI(ctx context.Context, title string, sess *driver.Session, paths []string, jobs int) ([]*driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan correlateOutcome, 1)

	sess.Progress = driver.ChannelSink{Ch: events}
	go func() {
		res, err := driver.CorrelateFiles(ctx, sess, paths, jobs)
		outcomeCh <- correlateOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI may quit before the pipeline; keep workers unblocked
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	sess.Progress = nil
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
