// Package bus carries the intents and state notifications exchanged by the
// list panel and the interaction machine. Dispatch is synchronous: Emit
// returns after every matching handler has run.
package bus

import (
	"log/slog"
	"sync"
)

// Kind identifies a signal.
type Kind string

const (
	// KindHoverStart: the list pointer entered an entry (list -> machine).
	KindHoverStart Kind = "hover.start"
	// KindHoverClear: the list pointer left its entry (list -> machine).
	KindHoverClear Kind = "hover.clear"
	// KindSelect: an entry was clicked (list -> machine).
	KindSelect Kind = "select"
	// KindActive: the focused and selected nodes changed (machine -> list).
	KindActive Kind = "active"
	// KindReveal: a canvas click selected a node (machine -> list).
	KindReveal Kind = "reveal"
)

// Signal is one message on the bus. ID is set for HoverStart, Select and
// Reveal; HoverID and SelectedID are set for Active and may be empty.
type Signal struct {
	Kind       Kind
	ID         string
	HoverID    string
	SelectedID string
}

// HoverStart returns a HoverStart signal for id.
func HoverStart(id string) Signal { return Signal{Kind: KindHoverStart, ID: id} }

// HoverClear returns a HoverClear signal.
func HoverClear() Signal { return Signal{Kind: KindHoverClear} }

// Select returns a Select signal for id.
func Select(id string) Signal { return Signal{Kind: KindSelect, ID: id} }

// Active returns an Active signal.
func Active(hoverID, selectedID string) Signal {
	return Signal{Kind: KindActive, HoverID: hoverID, SelectedID: selectedID}
}

// Reveal returns a Reveal signal for id.
func Reveal(id string) Signal { return Signal{Kind: KindReveal, ID: id} }

// Handler receives signals.
type Handler func(Signal)

type subscriber struct {
	id      int
	handler Handler
	kinds   map[Kind]bool
}

func (s subscriber) wants(k Kind) bool {
	return len(s.kinds) == 0 || s.kinds[k]
}

// Bus delivers signals to subscribers in subscription order.
type Bus struct {
	mu          sync.Mutex
	subscribers []subscriber
	nextID      int
	closed      bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers handler for the given kinds, or for every kind when
// none are given. The returned function removes the subscription and is
// safe to call more than once.
func (b *Bus) Subscribe(handler Handler, kinds ...Kind) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	s := subscriber{id: b.nextID, handler: handler}
	b.nextID++
	if len(kinds) > 0 {
		s.kinds = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	b.subscribers = append(b.subscribers, s)

	return func() { b.remove(s.id) }
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Emit delivers sig to every matching subscriber. Handlers may emit; the
// subscriber list is snapshotted before dispatch. Emit after Close is a
// no-op.
func (b *Bus) Emit(sig Signal) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	slog.Debug("bus signal", "kind", sig.Kind, "id", sig.ID,
		"hover", sig.HoverID, "selected", sig.SelectedID)

	for _, s := range subs {
		if s.wants(sig.Kind) {
			s.handler(sig)
		}
	}
}

// Close drops all subscribers. Close is safe to call multiple times.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subscribers = nil
}
