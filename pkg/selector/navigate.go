package selector

// Selection moves clamp to [0, Len()-1]; they never wrap. On an empty
// registry the index stays at 0.

// Next selects the following routine and returns the new index.
func (r *Registry) Next() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(r.selected + 1)
}

// Prev selects the preceding routine and returns the new index.
func (r *Registry) Prev() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(r.selected - 1)
}

// Select selects the routine at index i, clamped into range, and returns the
// resulting index.
func (r *Registry) Select(i int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveLocked(i)
}

func (r *Registry) moveLocked(i int) int {
	i = clamp(i, len(r.entries))
	if i == r.selected {
		return i
	}
	r.selected = i
	r.log.Debug().Int("index", i).Str("name", r.entries[i].Name).Msg("routine selected")
	r.renderLocked()
	return i
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
