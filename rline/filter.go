package rline

// Filter narrows a slice of completion candidates against a fzf-style
// query as the user keeps typing in the rline prompt or a menu popup
// (spec §4.6). No UI opinions — a Menu points its visible rows at
// f.Items.
type Filter[T any] struct {
	Items []T // filtered+ranked subset, safe to point a Menu's visible rows at

	source    *[]T
	extract   func(*T) string
	lastQuery string
	query     FuzzyQuery
	indices   []int // indices[i] = index into *source for Items[i]
	matches   []scored
}

type scored struct {
	index int
	score int
}

// NewFilter creates a filter over a source slice. extract returns the
// searchable text for each candidate (e.g. a command name or filename).
func NewFilter[T any](source *[]T, extract func(*T) string) *Filter[T] {
	f := &Filter[T]{source: source, extract: extract}
	f.Reset()
	return f
}

// Update re-filters the source slice with a new query string. A no-op if
// the query hasn't changed since the last call.
func (f *Filter[T]) Update(query string) {
	if query == f.lastQuery {
		return
	}
	f.lastQuery = query
	f.query = ParseFuzzyQuery(query)

	if f.query.Empty() {
		f.Reset()
		return
	}

	src := *f.source
	matches := f.matches[:0]
	if cap(matches) < len(src) {
		matches = make([]scored, 0, len(src))
	}
	for i := range src {
		text := f.extract(&src[i])
		score, ok := f.query.Score(text)
		if ok {
			matches = append(matches, scored{index: i, score: score})
		}
	}

	for i := 1; i < len(matches); i++ {
		j := i
		for j > 0 && scoredLess(matches[j], matches[j-1]) {
			matches[j], matches[j-1] = matches[j-1], matches[j]
			j--
		}
	}
	f.matches = matches

	f.Items = f.Items[:0]
	f.indices = f.indices[:0]
	for _, m := range matches {
		f.Items = append(f.Items, src[m.index])
		f.indices = append(f.indices, m.index)
	}
}

// Reset clears the filter, restoring every source candidate in order.
func (f *Filter[T]) Reset() {
	f.lastQuery = ""
	f.query = FuzzyQuery{}

	src := *f.source
	if cap(f.Items) < len(src) {
		f.Items = make([]T, len(src))
		f.indices = make([]int, len(src))
	} else {
		f.Items = f.Items[:len(src)]
		f.indices = f.indices[:len(src)]
	}
	copy(f.Items, src)
	for i := range f.indices {
		f.indices[i] = i
	}
}

// Original maps a filtered index back to a pointer into the source slice.
func (f *Filter[T]) Original(filteredIndex int) *T {
	if filteredIndex < 0 || filteredIndex >= len(f.indices) {
		return nil
	}
	src := *f.source
	origIdx := f.indices[filteredIndex]
	if origIdx < 0 || origIdx >= len(src) {
		return nil
	}
	return &src[origIdx]
}

// Active reports whether a filter query is currently applied.
func (f *Filter[T]) Active() bool { return !f.query.Empty() }

// Query returns the current raw query string.
func (f *Filter[T]) Query() string { return f.lastQuery }

// Len returns the number of currently visible (filtered) candidates.
func (f *Filter[T]) Len() int { return len(f.Items) }

func scoredLess(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return a.index < b.index
}
