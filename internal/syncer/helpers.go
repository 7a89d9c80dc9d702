package syncer

import (
	"io"

	"github.com/guilherme-santos/invoicez/internal"
)

func logf(w io.Writer, cal *Calendar, format string, a ...any) {
	internal.Logf(w, "", cal, format, a...)
}
