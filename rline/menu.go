package rline

// Menu is the full-width popup list used for tab-completion and the
// command-table's interactive pick lists (spec §4.6): PgUp/PgDn/arrow
// navigation over a Filter-narrowed candidate set, incremental pattern
// narrowing as the user keeps typing.
type Menu struct {
	all      []string
	filter   *Filter[string]
	selected int
	visRows  int // how many rows the popup renders at once
}

// NewMenu opens a menu over a fixed candidate list.
func NewMenu(candidates []string, visibleRows int) *Menu {
	m := &Menu{all: append([]string(nil), candidates...), visRows: visibleRows}
	m.filter = NewFilter(&m.all, func(s *string) string { return *s })
	return m
}

// Narrow re-filters the candidate list by the user's current input.
func (m *Menu) Narrow(query string) {
	m.filter.Update(query)
	if m.selected >= m.filter.Len() {
		m.selected = 0
	}
}

// Items returns the currently visible (narrowed) candidates.
func (m *Menu) Items() []string { return m.filter.Items }

// Selected returns the highlighted candidate, or "" if the list is empty.
func (m *Menu) Selected() string {
	items := m.filter.Items
	if m.selected < 0 || m.selected >= len(items) {
		return ""
	}
	return items[m.selected]
}

// SelectedIndex returns the highlighted row, for rendering.
func (m *Menu) SelectedIndex() int { return m.selected }

// Down moves the selection one row down, clamped at the last item.
func (m *Menu) Down() {
	if m.selected < m.filter.Len()-1 {
		m.selected++
	}
}

// Up moves the selection one row up, clamped at zero.
func (m *Menu) Up() {
	if m.selected > 0 {
		m.selected--
	}
}

// PageDown advances the selection by a full page.
func (m *Menu) PageDown() {
	m.selected += m.visRows
	if last := m.filter.Len() - 1; m.selected > last {
		m.selected = last
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// PageUp retreats the selection by a full page.
func (m *Menu) PageUp() {
	m.selected -= m.visRows
	if m.selected < 0 {
		m.selected = 0
	}
}

// VisibleWindow returns the [start, end) slice of Items() that should be
// rendered given the current selection, for a popup of m.visRows rows.
func (m *Menu) VisibleWindow() (start, end int) {
	n := m.filter.Len()
	if n <= m.visRows {
		return 0, n
	}
	start = m.selected - m.visRows/2
	if start < 0 {
		start = 0
	}
	end = start + m.visRows
	if end > n {
		end = n
		start = end - m.visRows
	}
	return start, end
}
