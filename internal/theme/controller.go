package theme

import (
	"os"

	"github.com/muesli/termenv"
)

// Store persists an explicit theme preference. Absence of a stored value is
// meaningful: it means "follow the system preference".
type Store interface {
	ThemePreference() (Mode, bool)
	SaveThemePreference(Mode) error
}

// Controller owns the light/dark state. Initial state comes from the
// persisted preference when present, else from the system-reported scheme,
// defaulting to light. Once any toggle persists a preference, system changes
// are ignored for good.
type Controller struct {
	store  Store
	notify func(Mode)

	mode     Mode
	explicit bool
}

// NewController resolves the initial mode and sends the initial theme-sync
// notification. notify may be nil; the collaborator behind it may also not be
// present yet, which makes the call a no-op.
func NewController(store Store, systemDark bool, notify func(Mode)) *Controller {
	c := &Controller{store: store, notify: notify, mode: Light}

	if store != nil {
		if m, ok := store.ThemePreference(); ok {
			c.mode = m
			c.explicit = true
		}
	}
	if !c.explicit && systemDark {
		c.mode = Dark
	}

	c.send()
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Toggle flips the mode and persists it unconditionally. From here on the
// preference is explicit and system changes no longer apply.
func (c *Controller) Toggle() (Mode, error) {
	c.mode = c.mode.Flip()
	c.explicit = true
	c.send()

	if c.store == nil {
		return c.mode, nil
	}
	return c.mode, c.store.SaveThemePreference(c.mode)
}

// SystemChanged mirrors a system scheme change while no explicit preference
// exists. After any toggle it is ignored.
func (c *Controller) SystemChanged(dark bool) {
	if c.explicit {
		return
	}
	next := Light
	if dark {
		next = Dark
	}
	if next == c.mode {
		return
	}
	c.mode = next
	c.send()
}

func (c *Controller) send() {
	if c.notify != nil {
		c.notify(c.mode)
	}
}

// SystemDark reports whether the terminal background is dark. This is the
// terminal analog of the OS color-scheme preference.
func SystemDark() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}
