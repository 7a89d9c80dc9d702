package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var ErrNoSelection = errors.New("no calendar selected")

// Selection stores the id of the calendar picked by the operator as plain
// UTF-8 text.
type Selection struct {
	path string
}

func NewSelection(path string) *Selection {
	return &Selection{path: path}
}

func (s Selection) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoSelection
	}
	if err != nil {
		return "", fmt.Errorf("file: reading selected calendar: %w", err)
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", ErrNoSelection
	}
	return id, nil
}

func (s Selection) Write(calendarID string) error {
	if calendarID == "" {
		return errors.New("file: empty calendar id")
	}
	return writeFile(s.path, []byte(calendarID), 0o644)
}
