package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-labs/drivealbum-cli/internal/download"
)

func completion(result download.Result, level download.Level) EventMsg {
	return EventMsg{
		Message: result.Name,
		Level:   level,
		Result:  &result,
	}
}

func TestModel_CountsCompletions(t *testing.T) {
	m := New("Holiday 2024", 3, nil)

	var model tea.Model = m
	model, _ = model.Update(completion(download.Result{Name: "a.jpg", Success: true, Size: 100}, download.LevelSuccess))
	model, _ = model.Update(completion(download.Result{Name: "b.jpg", Success: true, Skipped: true, Size: 50}, download.LevelVerbose))
	model, _ = model.Update(completion(download.Result{Name: "c.jpg", Err: fmt.Errorf("boom")}, download.LevelError))

	got := model.(Model)
	assert.Equal(t, 3, got.completed)
	assert.Equal(t, 1, got.skipped)
	assert.Equal(t, 1, got.failed)
	assert.Equal(t, int64(150), got.bytes)
}

func TestModel_DoneQuits(t *testing.T) {
	m := New("Holiday 2024", 2, nil)

	stats := download.Stats{Total: 2, Downloaded: 2, TotalBytes: 512}
	model, cmd := m.Update(DoneMsg{Stats: stats})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	got := model.(Model)
	assert.True(t, got.done)
	assert.Equal(t, stats, got.Stats())
	assert.NoError(t, got.Err())
}

func TestModel_InterruptCancelsAndQuits(t *testing.T) {
	cancelled := false
	m := New("Holiday 2024", 2, func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, cancelled)
}

func TestModel_ViewShowsAlbumAndCounters(t *testing.T) {
	m := New("Holiday 2024", 4, nil)

	var model tea.Model = m
	model, _ = model.Update(completion(download.Result{Name: "a.jpg", Success: true, Size: 2048}, download.LevelSuccess))

	view := model.(Model).View()
	assert.Contains(t, view, "Holiday 2024")
	assert.Contains(t, view, "1/4")
	assert.Contains(t, view, "2.00 KB")
	assert.Contains(t, view, "a.jpg")
}

func TestModel_LogTailBounded(t *testing.T) {
	var model tea.Model = New("Holiday 2024", 100, nil)

	for i := 0; i < 30; i++ {
		model, _ = model.Update(completion(download.Result{
			Name:    fmt.Sprintf("img-%02d.jpg", i),
			Success: true,
		}, download.LevelSuccess))
	}

	got := model.(Model)
	assert.Len(t, got.logs, maxLogLines)
	assert.Equal(t, "img-29.jpg", got.logs[len(got.logs)-1].message)
}
