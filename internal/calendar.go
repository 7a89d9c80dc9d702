package internal

// Calendar is one entry of the account's calendar list.
type Calendar struct {
	ID   string
	Name string
}

func (c Calendar) String() string {
	return c.ID
}
