package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Out     io.Writer
	In      io.Reader

	opened bool
}

func NewContext(store storage.Provider, opts ...tracker.Option) *Context {
	return &Context{
		Store:   store,
		Tracker: tracker.New(store, opts...),
		Out:     os.Stdout,
		In:      os.Stdin,
	}
}

// Open loads the store, creating it on first use, and then the habit list.
func (c *Context) Open() error {
	if c.opened {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		if !errors.Is(err, storage.ErrNotInitialized) {
			return err
		}
		logger.Info("Initializing storage on first use", "path", c.Store.GetConfigPath())
		if err := c.Store.Init(); err != nil {
			return err
		}
	}
	if m, ok := c.Store.(storage.Migrator); ok {
		if err := storage.CheckSchema(m); err != nil {
			return err
		}
	}
	if err := c.Tracker.Load(); err != nil {
		return err
	}
	c.opened = true
	return nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !canBackup(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// canBackup reports whether the store lives in a local file.
func canBackup(store storage.Provider) bool {
	switch store.(type) {
	case *storage.SQLiteStore, *storage.JSONStore:
		return true
	}
	return false
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
