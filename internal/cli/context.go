package cli

import (
	"io"
	"os"

	"github.com/adibhanna/startracker/internal/storage"
	"github.com/adibhanna/startracker/internal/tracker"
)

// Context is handed to every command's Run method.
type Context struct {
	Store   *storage.Storage
	Tracker *tracker.Tracker
	Out     io.Writer
}

func NewContext(store *storage.Storage, opts ...tracker.Option) *Context {
	return &Context{
		Store:   store,
		Tracker: tracker.New(store, opts...),
		Out:     os.Stdout,
	}
}

// resolveDate returns today when date is empty and validates it otherwise.
func (c *Context) resolveDate(date string) (string, error) {
	if date == "" {
		return c.Tracker.Today(), nil
	}
	if err := tracker.ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}
