package weather

// SearchHistory keeps city queries in first-submitted order, without
// duplicates. It is not safe for concurrent use; ViewModel guards it.
type SearchHistory struct {
	entries []string
	seen    map[string]struct{}
}

func NewSearchHistory() *SearchHistory {
	return &SearchHistory{seen: make(map[string]struct{})}
}

// Add appends name unless the exact same string is already present.
// It reports whether the history changed.
func (h *SearchHistory) Add(name string) bool {
	if _, ok := h.seen[name]; ok {
		return false
	}
	h.seen[name] = struct{}{}
	h.entries = append(h.entries, name)
	return true
}

func (h *SearchHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *SearchHistory) Len() int {
	return len(h.entries)
}
