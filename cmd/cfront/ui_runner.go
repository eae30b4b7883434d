package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cfront/internal/driver"
	"cfront/internal/ui"
)

type dirOutcome struct {
	results []driver.FileResult
	err     error
}

// runDirWithUI прогоняет каталог с прогресс-интерфейсом в терминале.
// Сам прогон идёт в горутине, интерфейс питается событиями Progress.
func runDirWithUI(ctx context.Context, dir string, opts driver.Options) ([]driver.FileResult, error) {
	files, err := driver.ListScripts(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = func(res *driver.FileResult) {
			events <- ui.Event{Path: res.Path, Status: statusOf(res)}
		}
		results, err := driver.RunDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

func statusOf(res *driver.FileResult) ui.Status {
	switch {
	case res.Failed || res.Bag.HasErrors():
		return ui.StatusFailed
	case res.Cached:
		return ui.StatusCached
	}
	return ui.StatusOK
}
