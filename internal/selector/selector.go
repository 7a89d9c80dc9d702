// Package selector lets the operator pick the calendar to work with and
// remembers the choice.
package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guilherme-santos/invoicez/file"
	"github.com/guilherme-santos/invoicez/internal"
)

var ErrNoCalendars = errors.New("selector: the account has no calendars")

type (
	Calendar = internal.Calendar
)

type CalendarLister interface {
	Calendars(context.Context) ([]*Calendar, error)
}

// Storage keeps the selected calendar id. Read returns file.ErrNoSelection
// when nothing was selected yet.
type Storage interface {
	Read() (string, error)
	Write(calendarID string) error
}

type Prompter interface {
	// AskIndex returns a number between 1 and max.
	AskIndex(_ context.Context, question string, max int) (int, error)
}

const question = "Please enter the number that corresponds to the calendar to use"

type Selector struct {
	output   io.Writer
	logger   *slog.Logger
	lister   CalendarLister
	storage  Storage
	prompter Prompter

	rule   lipgloss.Style
	index  lipgloss.Style
	bold   lipgloss.Style
	notice lipgloss.Style
}

func New(output io.Writer, logger *slog.Logger, lister CalendarLister, storage Storage, prompter Prompter) *Selector {
	if output == nil {
		output = os.Stdout
	}
	if logger == nil {
		logger = internal.DiscardLogger()
	}
	r := lipgloss.NewRenderer(output)
	return &Selector{
		output:   output,
		logger:   logger,
		lister:   lister,
		storage:  storage,
		prompter: prompter,
		rule:     r.NewStyle().Bold(true),
		index:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		bold:     r.NewStyle().Bold(true),
		notice:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	}
}

// HasSelection reports whether a calendar was selected before.
func (s Selector) HasSelection() bool {
	_, err := s.storage.Read()
	return err == nil
}

// GetSelected returns the selected calendar id, running the selection first
// when there is none.
func (s Selector) GetSelected(ctx context.Context) (string, error) {
	id, err := s.storage.Read()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, file.ErrNoSelection) {
		s.logger.Warn("Ignoring unreadable calendar selection", internal.Err(err))
	}

	fmt.Fprintln(s.output, s.notice.Render("No selected calendar. Starting the selection procedure."))
	return s.ListAndSelect(ctx)
}

// ListAndSelect shows the account's calendars in the order the provider
// returned them, asks the operator to pick one and saves its id.
func (s Selector) ListAndSelect(ctx context.Context) (string, error) {
	cals, err := s.lister.Calendars(ctx)
	if err != nil {
		return "", err
	}
	if len(cals) == 0 {
		return "", ErrNoCalendars
	}
	s.logger.Debug("Listed calendars", slog.Int("count", len(cals)))

	fmt.Fprintln(s.output, s.title("📅 Available calendars"))
	fmt.Fprintln(s.output)
	for i, cal := range cals {
		fmt.Fprintf(s.output, "%s. %s\n", s.index.Render(fmt.Sprint(i+1)), cal.Name)
	}
	fmt.Fprintln(s.output)
	fmt.Fprintln(s.output, s.title("📌 Selection"))
	fmt.Fprintln(s.output)

	n, err := s.prompter.AskIndex(ctx, question, len(cals))
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(cals) {
		return "", fmt.Errorf("selector: answer %d out of range 1-%d", n, len(cals))
	}
	selected := cals[n-1]

	if err := s.storage.Write(selected.ID); err != nil {
		return "", fmt.Errorf("selector: saving selected calendar: %w", err)
	}
	s.logger.Debug("Calendar selected", internal.CalendarID(selected.ID))

	fmt.Fprintln(s.output)
	fmt.Fprintf(s.output, "👌 Calendar %s is selected.\n", s.bold.Render(selected.Name))
	return selected.ID, nil
}

func (s Selector) title(text string) string {
	const width = 60
	line := width - lipgloss.Width(text) - 1
	if line < 3 {
		line = 3
	}
	return s.rule.Render(text + " " + strings.Repeat("─", line))
}
