package jterm

// MarkDirty signals that the tree must be measured, laid out and painted
// on the next tick.
func (a *App) MarkDirty() {
	if a == nil {
		panic("jterm: nil app in MarkDirty")
	}
	a.dirty.Store(true)
}

// IsDirty reports whether a render is pending.
func (a *App) IsDirty() bool {
	return a.dirty.Load()
}

// checkAndClearDirty returns true if dirty and clears the flag.
func (a *App) checkAndClearDirty() bool {
	return a.dirty.Swap(false)
}
