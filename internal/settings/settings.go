// Package settings persists UI preferences (navigation drawer, theme,
// payday day-of-month) to the local key-value store, with the derived
// days-until-payday view the dashboard shows.
package settings

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"tally/internal/storage"
)

// Storage keys. Values are serialized as JSON scalars.
const (
	KeyDrawer = "drawer"
	KeyTheme  = "theme"
	KeyPayday = "payday_dom"
)

// DefaultPaydayDOM is the day of month payday falls on unless configured.
const DefaultPaydayDOM = 25

// Settings is the persisted UI preference state.
type Settings struct {
	mu    sync.Mutex
	store storage.KeyValue

	drawerOpen bool
	dark       bool
	paydayDOM  int
}

func New(store storage.KeyValue) *Settings {
	return &Settings{
		store:      store,
		drawerOpen: true,
		paydayDOM:  DefaultPaydayDOM,
	}
}

// LoadFromStorage repopulates preferences from the key-value store. Absent
// or unparseable entries keep their current values.
func (s *Settings) LoadFromStorage() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok, err := s.store.Get(KeyDrawer); err != nil {
		return fmt.Errorf("load drawer: %w", err)
	} else if ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.drawerOpen = b
		}
	}
	if v, ok, err := s.store.Get(KeyTheme); err != nil {
		return fmt.Errorf("load theme: %w", err)
	} else if ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.dark = b
		}
	}
	if v, ok, err := s.store.Get(KeyPayday); err != nil {
		return fmt.Errorf("load payday: %w", err)
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 31 {
			s.paydayDOM = n
		}
	}
	return nil
}

// DrawerOpen reports whether the navigation drawer is open.
func (s *Settings) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// SetDrawerOpen stores the drawer state.
func (s *Settings) SetDrawerOpen(open bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = open
	return s.store.Set(KeyDrawer, strconv.FormatBool(open))
}

// ToggleDrawer flips the drawer state.
func (s *Settings) ToggleDrawer() error {
	return s.SetDrawerOpen(!s.DrawerOpen())
}

// Dark reports whether the dark theme is selected.
func (s *Settings) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// SetDark stores the theme selection.
func (s *Settings) SetDark(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dark = dark
	return s.store.Set(KeyTheme, strconv.FormatBool(dark))
}

// PaydayDOM returns the configured payday day of month.
func (s *Settings) PaydayDOM() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paydayDOM
}

// SetPaydayDOM stores the payday day of month, 1 to 31.
func (s *Settings) SetPaydayDOM(dom int) error {
	if dom < 1 || dom > 31 {
		return fmt.Errorf("payday day of month %d out of range", dom)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paydayDOM = dom
	return s.store.Set(KeyPayday, strconv.Itoa(dom))
}

// DaysUntilPayday returns how many days remain until the next payday,
// counting from now. Payday today is 0. A day of month past a short month's
// end rolls into the following month the way calendar arithmetic does.
func (s *Settings) DaysUntilPayday(now time.Time) int {
	dom := s.PaydayDOM()
	year, month, _ := now.Date()
	next := time.Date(year, month, dom, 0, 0, 0, 0, now.Location())
	if now.Day() > dom {
		next = time.Date(year, month+1, dom, 0, 0, 0, 0, now.Location())
	}
	diff := next.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
