// Package selector provides the pre-match autonomous routine selector.
//
// A Registry holds an ordered list of named routines and the index of the
// selected one. Selection queries are always safe: an empty registry reports
// the name "None" and hands out a routine that does nothing.
package selector

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/gwillem/vexauton/pkg/screen"
)

// NoneName is reported by SelectedName when nothing can be selected.
const NoneName = "None"

// Routine is one selectable autonomous behavior.
type Routine func()

func noop() {}

// Entry is a registered routine.
type Entry struct {
	Name    string
	Routine Routine
}

// Lifecycle controls how a registry is shown and torn down.
type Lifecycle struct {
	// AutoShow makes the first AddRoutine show the registry.
	AutoShow bool
	// ResetOnClose makes Close drop all entries instead of only hiding.
	ResetOnClose bool
	Layout       Layout
}

var (
	// Static is the lifecycle of the single selector owned by the robot
	// program for its whole run.
	Static = Lifecycle{AutoShow: true, ResetOnClose: true, Layout: StaticLayout}

	// Scoped is the lifecycle of a selector owned by one caller that shows
	// and hides it explicitly.
	Scoped = Lifecycle{Layout: ScopedLayout}
)

// Registry is an ordered set of routines with a selected index.
// A single mutex covers entries, index and visibility.
type Registry struct {
	lifecycle Lifecycle
	screen    screen.Screen
	log       zerolog.Logger

	mu       sync.Mutex
	entries  []Entry
	selected int
	visible  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// New creates an empty, hidden registry rendering to scr. scr may be nil.
func New(lc Lifecycle, scr screen.Screen, opts ...Option) *Registry {
	r := &Registry{
		lifecycle: lc,
		screen:    scr,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Show makes the registry visible and draws it. Calling Show on a visible
// registry does nothing.
func (r *Registry) Show() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showLocked()
}

func (r *Registry) showLocked() {
	if r.visible {
		return
	}
	r.visible = true
	r.log.Debug().Int("routines", len(r.entries)).Msg("selector shown")
	r.renderLocked()
}

// Hide stops rendering. Entries and selection are kept.
func (r *Registry) Hide() {
	r.mu.Lock()
	r.visible = false
	r.mu.Unlock()
}

// Close tears the registry down according to its lifecycle: Static
// registries are reset to empty, Scoped registries are hidden.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visible = false
	if !r.lifecycle.ResetOnClose {
		return
	}
	r.entries = nil
	r.selected = 0
	r.log.Debug().Msg("selector reset")
}

// Visible reports whether renders reach the screen.
func (r *Registry) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.visible
}

// AddRoutine appends a routine. Empty and duplicate names are accepted and
// the selected index is left unchanged. A nil routine is stored as a no-op.
func (r *Registry) AddRoutine(name string, routine Routine) {
	if routine == nil {
		routine = noop
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, Entry{Name: name, Routine: routine})
	r.log.Debug().Str("name", name).Int("index", len(r.entries)-1).Msg("routine added")

	if !r.visible && r.lifecycle.AutoShow {
		r.showLocked()
		return
	}
	r.renderLocked()
}

// Selected returns the selected routine, or a no-op when nothing is selected.
func (r *Registry) Selected() Routine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.validLocked() {
		return noop
	}
	return r.entries[r.selected].Routine
}

// SelectedName returns the selected routine's name, or NoneName.
func (r *Registry) SelectedName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.validLocked() {
		return NoneName
	}
	return r.entries[r.selected].Name
}

// Valid reports whether the selected index points at a routine.
func (r *Registry) Valid() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validLocked()
}

func (r *Registry) validLocked() bool {
	return r.selected >= 0 && r.selected < len(r.entries)
}

// SelectedIndex returns the selected index.
func (r *Registry) SelectedIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Len returns the number of registered routines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Names returns the routine names in selection order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}
