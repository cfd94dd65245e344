// Package listpanel renders the catalog as a scrollable list sorted by year
// and turns pointer and keyboard activity on it into bus intents. Which
// entries are highlighted is decided by the interaction machine and arrives
// through Active signals.
package listpanel

import (
	"log/slog"
	"sort"

	"github.com/npratt/refgraph/internal/bus"
	"github.com/npratt/refgraph/internal/catalog"
)

// EntryHeight is the number of lines one entry occupies.
const EntryHeight = 4

// Entry is one list row.
type Entry struct {
	ID     string
	Record catalog.Record
	Active bool
}

// Navigator opens a reference URL.
type Navigator interface {
	Navigate(url string)
}

// Panel is the list surface. It is driven from the same loop as the
// interaction machine.
type Panel struct {
	entries []Entry
	rows    map[string]int
	bus     *bus.Bus
	nav     Navigator
	logger  *slog.Logger

	hover  int
	offset int
	height int

	unsubscribe func()
}

// Option configures a Panel.
type Option func(*Panel)

// WithNavigator sets where clicked references are opened.
func WithNavigator(n Navigator) Option {
	return func(p *Panel) {
		p.nav = n
	}
}

// WithLogger sets the panel logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) {
		p.logger = l
	}
}

// New builds a panel over records, newest first with catalog order kept
// for equal years, and subscribes it to Active and Reveal on b.
func New(records []catalog.Record, b *bus.Bus, opts ...Option) *Panel {
	p := &Panel{
		entries: make([]Entry, len(records)),
		rows:    make(map[string]int, len(records)),
		bus:     b,
		logger:  slog.Default(),
		hover:   -1,
	}
	for i, r := range Sorted(records) {
		p.entries[i] = Entry{ID: r.ID, Record: r}
	}
	for i, e := range p.entries {
		p.rows[e.ID] = i
	}
	for _, opt := range opts {
		opt(p)
	}
	p.unsubscribe = b.Subscribe(p.handle, bus.KindActive, bus.KindReveal)
	return p
}

// Sorted returns a copy of records ordered newest first, keeping catalog
// order for equal years.
func Sorted(records []catalog.Record) []catalog.Record {
	out := make([]catalog.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out
}

// Close detaches the panel from the bus.
func (p *Panel) Close() {
	p.unsubscribe()
}

func (p *Panel) handle(sig bus.Signal) {
	switch sig.Kind {
	case bus.KindActive:
		for i := range p.entries {
			id := p.entries[i].ID
			p.entries[i].Active = id != "" && (id == sig.HoverID || id == sig.SelectedID)
		}
	case bus.KindReveal:
		p.Reveal(sig.ID)
	}
}

// Len returns the number of entries.
func (p *Panel) Len() int { return len(p.entries) }

// Entries returns a copy of the entries in display order.
func (p *Panel) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Row returns the display row of id.
func (p *Panel) Row(id string) (int, bool) {
	r, ok := p.rows[id]
	return r, ok
}

// Hovered returns the hovered or cursor row, or -1.
func (p *Panel) Hovered() int { return p.hover }

// Offset returns the first visible row.
func (p *Panel) Offset() int { return p.offset }

// RowAt maps a line inside the pane to a row.
func (p *Panel) RowAt(line int) (int, bool) {
	if line < 0 {
		return -1, false
	}
	row := p.offset + line/EntryHeight
	if row >= len(p.entries) {
		return -1, false
	}
	return row, true
}

// HoverRow moves the hover to row, emitting HoverClear for the entry left
// and HoverStart for the entry entered. A row out of range clears.
func (p *Panel) HoverRow(row int) {
	if row < 0 || row >= len(p.entries) {
		row = -1
	}
	if row == p.hover {
		return
	}
	if p.hover >= 0 {
		p.bus.Emit(bus.HoverClear())
	}
	p.hover = row
	if row >= 0 {
		p.bus.Emit(bus.HoverStart(p.entries[row].ID))
	}
}

// Leave clears the hover when the pointer leaves the pane.
func (p *Panel) Leave() {
	p.HoverRow(-1)
}

// ClickRow selects the entry at row and opens its URL.
func (p *Panel) ClickRow(row int) {
	if row < 0 || row >= len(p.entries) {
		return
	}
	e := p.entries[row]
	p.bus.Emit(bus.Select(e.ID))
	if p.nav != nil && e.Record.URL != "" {
		p.nav.Navigate(e.Record.URL)
	}
	p.logger.Debug("list select", "id", e.ID, "row", row)
}

// CursorDown moves the keyboard cursor down, hovering the new entry.
func (p *Panel) CursorDown() {
	if len(p.entries) == 0 {
		return
	}
	next := p.hover + 1
	if next >= len(p.entries) {
		next = len(p.entries) - 1
	}
	p.HoverRow(next)
	p.ensureVisible(next)
}

// CursorUp moves the keyboard cursor up, hovering the new entry.
func (p *Panel) CursorUp() {
	if len(p.entries) == 0 {
		return
	}
	next := p.hover - 1
	if p.hover < 0 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	p.HoverRow(next)
	p.ensureVisible(next)
}

// Activate clicks the entry under the cursor.
func (p *Panel) Activate() {
	p.ClickRow(p.hover)
}

// Reveal scrolls so the entry for id sits in the middle of the pane.
func (p *Panel) Reveal(id string) {
	row, ok := p.rows[id]
	if !ok {
		return
	}
	p.setOffset(row - p.visible()/2)
}

// Scroll moves the view by n entries.
func (p *Panel) Scroll(n int) {
	p.setOffset(p.offset + n)
}

// SetHeight sets the pane height in lines.
func (p *Panel) SetHeight(lines int) {
	p.height = lines
	p.setOffset(p.offset)
}

func (p *Panel) visible() int {
	v := p.height / EntryHeight
	if v < 1 {
		v = 1
	}
	return v
}

func (p *Panel) setOffset(o int) {
	maxOffset := len(p.entries) - p.visible()
	if o > maxOffset {
		o = maxOffset
	}
	if o < 0 {
		o = 0
	}
	p.offset = o
}

func (p *Panel) ensureVisible(row int) {
	switch {
	case row < p.offset:
		p.setOffset(row)
	case row >= p.offset+p.visible():
		p.setOffset(row - p.visible() + 1)
	}
}
