package internal

import "time"

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "02 Jan 06 15:04"
)

// FormatDateTime renders t in local time for terminal output.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(DateTimeFormat)
}

type Date struct {
	time.Time
}

func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day(), t.Location())
}

func NewDate(year int, month time.Month, day int, loc *time.Location) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

func Parse(layout, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return NewDateFromTime(t), nil
}

func (d Date) String() string {
	return d.Format(DateFormat)
}
