// Package chooser is the terminal implementation of the single-list selection widget.
package chooser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-opener/pkg/picker"
)

// Chooser shows options in a filterable list and waits for the user.
type Chooser struct {
	input  io.Reader
	output io.Writer
}

// New creates a chooser drawing on stderr so stdout stays free for results.
func New() *Chooser {
	return &Chooser{input: os.Stdin, output: os.Stderr}
}

// Choose implements picker.Chooser.
func (c *Chooser) Choose(ctx context.Context, prompt string, options []picker.Option) (int, error) {
	p := tea.NewProgram(newModel(prompt, options),
		tea.WithContext(ctx),
		tea.WithInput(c.input),
		tea.WithOutput(c.output),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) {
			return -1, picker.ErrCancelled
		}
		return -1, fmt.Errorf("run chooser: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.cancelled || m.chosen < 0 {
		return -1, picker.ErrCancelled
	}
	return m.chosen, nil
}

// item implements the list.Item interface for one option.
type item struct {
	index  int
	option picker.Option
}

func (i item) FilterValue() string { return i.option.FilterValue() }
func (i item) Title() string       { return i.option.Label }
func (i item) Description() string { return i.option.Detail }

type model struct {
	list      list.Model
	keys      keyMap
	chosen    int
	cancelled bool
}

func newModel(prompt string, options []picker.Option) model {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = item{index: i, option: o}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.DefaultTheme.Colors.Orange).
		BorderForeground(theme.DefaultTheme.Colors.Orange)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		BorderForeground(theme.DefaultTheme.Colors.Orange)

	l := list.New(items, delegate, 80, 20)
	l.Title = prompt
	l.Styles.Title = theme.DefaultTheme.Header
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	// Quitting is handled by the model so a dismissal is reported as a cancellation.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = defaultKeyMap.ShortHelp
	l.AdditionalFullHelpKeys = defaultKeyMap.FullHelp

	return model{
		list:   l,
		keys:   defaultKeyMap,
		chosen: -1,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Abort) {
			m.cancelled = true
			return m, tea.Quit
		}
		// While the filter input is focused every other key belongs to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Choose):
			if selected, ok := m.list.SelectedItem().(item); ok {
				m.chosen = selected.index
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Cancel) && m.list.FilterState() != list.FilterApplied:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.list.View()
}
