package sokoban

// HistoryLimit is the number of undo steps kept per level.
const HistoryLimit = 10

// snapshot is the engine state captured before a successful move.
type snapshot struct {
	player Position
	boxes  []Position
	moves  int
}

// history is a fixed-capacity ring of snapshots. Pushing onto a full ring
// evicts the oldest entry; Pop returns the newest.
type history struct {
	buf   []snapshot
	start int
	size  int
}

func newHistory(capacity int) *history {
	return &history{buf: make([]snapshot, capacity)}
}

func (h *history) Len() int {
	return h.size
}

func (h *history) Push(s snapshot) {
	if len(h.buf) == 0 {
		return
	}
	if h.size == len(h.buf) {
		h.buf[h.start] = s
		h.start = (h.start + 1) % len(h.buf)
		return
	}
	h.buf[(h.start+h.size)%len(h.buf)] = s
	h.size++
}

func (h *history) Pop() (snapshot, bool) {
	if h.size == 0 {
		return snapshot{}, false
	}
	i := (h.start + h.size - 1) % len(h.buf)
	s := h.buf[i]
	h.buf[i] = snapshot{}
	h.size--
	return s, true
}
