package internal

import "path/filepath"

const stateDirName = ".invoicez"

// Paths resolves every local file used by the client from the working
// directory handed over by the command line.
type Paths struct {
	Dir string
}

func NewPaths(dir string) Paths {
	return Paths{Dir: dir}
}

func (p Paths) StateDir() string {
	return filepath.Join(p.Dir, stateDirName)
}

func (p Paths) Credentials() string {
	return filepath.Join(p.StateDir(), "gcalendar-credentials.json")
}

func (p Paths) SelectedCalendar() string {
	return filepath.Join(p.StateDir(), "gcalendar-selected-calendar")
}

func (p Paths) Database() string {
	return filepath.Join(p.StateDir(), "invoicez.db")
}

// Secrets is the OAuth client file downloaded from the Google Cloud console.
func (p Paths) Secrets() string {
	return filepath.Join(p.Dir, "gcalendar-secrets.json")
}

func (p Paths) Env() string {
	return filepath.Join(p.Dir, ".env")
}
