package internal

import "fmt"

// EmptyField is printed in place of a field the provider did not return.
const EmptyField = "<none>"

// Event holds the fields reported for a calendar event. A nil field means the
// provider did not send it.
type Event struct {
	Summary     *string
	Start       *string
	End         *string
	Description *string
}

func (e Event) String() string {
	return fmt.Sprintf("%s: %s-%s, %s", field(e.Summary), field(e.Start), field(e.End), field(e.Description))
}

func field(v *string) string {
	if v == nil {
		return EmptyField
	}
	return *v
}
