package bus

import (
	"reflect"
	"testing"
)

type recorder struct {
	got []Signal
}

func (r *recorder) handle(s Signal) { r.got = append(r.got, s) }

func TestEmit_AllKinds(t *testing.T) {
	b := New()
	var r recorder
	b.Subscribe(r.handle)

	sigs := []Signal{HoverStart("a"), HoverClear(), Select("b"), Active("a", "b"), Reveal("b")}
	for _, s := range sigs {
		b.Emit(s)
	}
	if !reflect.DeepEqual(r.got, sigs) {
		t.Errorf("received %v, want %v", r.got, sigs)
	}
}

func TestSubscribe_FiltersKinds(t *testing.T) {
	b := New()
	var toMachine, toList recorder
	b.Subscribe(toMachine.handle, KindHoverStart, KindHoverClear, KindSelect)
	b.Subscribe(toList.handle, KindActive, KindReveal)

	b.Emit(Select("a"))
	b.Emit(Active("", "a"))
	b.Emit(Reveal("a"))

	if len(toMachine.got) != 1 || toMachine.got[0].Kind != KindSelect {
		t.Errorf("machine received %v, want one select", toMachine.got)
	}
	if len(toList.got) != 2 {
		t.Errorf("list received %d signals, want 2", len(toList.got))
	}
}

func TestSubscribe_Order(t *testing.T) {
	b := New()
	var order []int
	b.Subscribe(func(Signal) { order = append(order, 1) })
	b.Subscribe(func(Signal) { order = append(order, 2) })
	b.Subscribe(func(Signal) { order = append(order, 3) })

	b.Emit(HoverClear())

	if !reflect.DeepEqual(order, []int{1, 2, 3}) {
		t.Errorf("dispatch order = %v, want [1 2 3]", order)
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	var r recorder
	unsub := b.Subscribe(r.handle)

	b.Emit(Select("a"))
	unsub()
	unsub()
	b.Emit(Select("b"))

	if len(r.got) != 1 {
		t.Errorf("received %d signals after unsubscribe, want 1", len(r.got))
	}
}

func TestEmit_FromHandler(t *testing.T) {
	b := New()
	var r recorder
	b.Subscribe(r.handle, KindActive)
	b.Subscribe(func(s Signal) {
		b.Emit(Active("", s.ID))
	}, KindSelect)

	b.Emit(Select("x"))

	want := []Signal{Active("", "x")}
	if !reflect.DeepEqual(r.got, want) {
		t.Errorf("received %v, want %v", r.got, want)
	}
}

func TestClose(t *testing.T) {
	b := New()
	var r recorder
	b.Subscribe(r.handle)

	b.Close()
	b.Close()
	b.Emit(Select("a"))
	b.Subscribe(r.handle)()
	b.Emit(Select("b"))

	if len(r.got) != 0 {
		t.Errorf("received %v after Close, want nothing", r.got)
	}
}
