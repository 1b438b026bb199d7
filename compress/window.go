package compress

// WindowSize is the deflate history limit and therefore the largest distance
// an MSZIP back-reference may reach into earlier blocks.
const WindowSize = 1 << 15

// Window is the sliding history of uncompressed folder bytes carried from
// one MSZIP block to the next.
//
// A Window belongs to exactly one folder being encoded or decoded. It is
// not safe for concurrent use.
type Window struct {
	hist []byte
}

// NewWindow returns an empty window, the state at the start of a folder.
func NewWindow() *Window {
	return &Window{hist: make([]byte, 0, WindowSize)}
}

// Bytes returns the current history, at most WindowSize bytes, oldest first.
// The slice is only valid until the next Append or Reset.
func (w *Window) Bytes() []byte {
	return w.hist
}

// Len returns the number of history bytes held.
func (w *Window) Len() int {
	return len(w.hist)
}

// Append adds p to the history, discarding the oldest bytes beyond WindowSize.
func (w *Window) Append(p []byte) {
	if len(p) >= WindowSize {
		w.hist = append(w.hist[:0], p[len(p)-WindowSize:]...)
		return
	}

	if keep := WindowSize - len(p); len(w.hist) > keep {
		n := copy(w.hist, w.hist[len(w.hist)-keep:])
		w.hist = w.hist[:n]
	}
	w.hist = append(w.hist, p...)
}

// Reset empties the window for the start of a new folder.
func (w *Window) Reset() {
	w.hist = w.hist[:0]
}
