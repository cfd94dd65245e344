package listpanel

import (
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/npratt/refgraph/internal/bus"
	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/testutil"
)

type navRecorder struct {
	urls []string
}

func (n *navRecorder) Navigate(url string) { n.urls = append(n.urls, url) }

func ids(p *Panel) []string {
	var out []string
	for _, e := range p.Entries() {
		out = append(out, e.ID)
	}
	return out
}

func record(b *bus.Bus) *[]bus.Signal {
	var got []bus.Signal
	b.Subscribe(func(s bus.Signal) { got = append(got, s) }, bus.KindHoverStart, bus.KindHoverClear, bus.KindSelect)
	return &got
}

func TestNew_SortsByYearDescending(t *testing.T) {
	p := New(testutil.ExampleRecords(), bus.New())
	if got := ids(p); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("order = %v, want [c b a]", got)
	}
}

func TestNew_StableForTies(t *testing.T) {
	records := []catalog.Record{
		{ID: "first", Year: 2010},
		{ID: "newest", Year: 2020},
		{ID: "second", Year: 2010},
		{ID: "third", Year: 2010},
	}
	p := New(records, bus.New())
	want := []string{"newest", "first", "second", "third"}
	if got := ids(p); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSorted_LeavesInputAlone(t *testing.T) {
	in := testutil.ExampleRecords()
	out := Sorted(in)
	if in[0].ID != "a" {
		t.Errorf("input reordered: first = %s", in[0].ID)
	}
	if out[0].ID != "c" || out[2].ID != "a" {
		t.Errorf("Sorted() = %s..%s, want c..a", out[0].ID, out[2].ID)
	}
}

func TestActive_DrivenByBus(t *testing.T) {
	b := bus.New()
	p := New(testutil.ExampleRecords(), b)

	b.Emit(bus.Active("a", "c"))
	for _, e := range p.Entries() {
		want := e.ID == "a" || e.ID == "c"
		if e.Active != want {
			t.Errorf("entry %s Active = %v, want %v", e.ID, e.Active, want)
		}
	}

	b.Emit(bus.Active("", ""))
	for _, e := range p.Entries() {
		if e.Active {
			t.Errorf("entry %s still active", e.ID)
		}
	}
}

func TestHoverRow_EmitsIntents(t *testing.T) {
	b := bus.New()
	got := record(b)
	p := New(testutil.ExampleRecords(), b)

	p.HoverRow(0)
	p.HoverRow(0)
	p.HoverRow(2)
	p.Leave()
	p.Leave()

	want := []bus.Signal{
		bus.HoverStart("c"),
		bus.HoverClear(),
		bus.HoverStart("a"),
		bus.HoverClear(),
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("signals = %v, want %v", *got, want)
	}
	// Hover alone does not mark an entry active
	for _, e := range p.Entries() {
		if e.Active {
			t.Errorf("entry %s active without an Active signal", e.ID)
		}
	}
}

func TestClickRow(t *testing.T) {
	b := bus.New()
	got := record(b)
	nav := &navRecorder{}
	p := New(testutil.ExampleRecords(), b, WithNavigator(nav))

	p.ClickRow(1)
	p.ClickRow(7)

	if len(*got) != 1 || (*got)[0] != bus.Select("b") {
		t.Errorf("signals = %v, want [Select(b)]", *got)
	}
	if !reflect.DeepEqual(nav.urls, []string{"https://example.org/b"}) {
		t.Errorf("navigations = %v", nav.urls)
	}
}

func TestCursor(t *testing.T) {
	b := bus.New()
	got := record(b)
	p := New(testutil.ChainRecords(10), b)
	p.SetHeight(2 * EntryHeight)

	p.CursorUp()
	if p.Hovered() != 0 {
		t.Errorf("Hovered() after first CursorUp = %d, want 0", p.Hovered())
	}
	for i := 0; i < 4; i++ {
		p.CursorDown()
	}
	if p.Hovered() != 4 {
		t.Errorf("Hovered() = %d, want 4", p.Hovered())
	}
	if p.Offset() != 3 {
		t.Errorf("Offset() = %d, want 3 to keep row 4 visible", p.Offset())
	}
	for i := 0; i < 20; i++ {
		p.CursorDown()
	}
	if p.Hovered() != 9 {
		t.Errorf("Hovered() = %d, want clamp at 9", p.Hovered())
	}

	p.Activate()
	last := (*got)[len(*got)-1]
	if last != bus.Select("n00") {
		t.Errorf("Activate emitted %v, want Select(n00)", last)
	}
}

func TestReveal_CentersEntry(t *testing.T) {
	b := bus.New()
	p := New(testutil.ChainRecords(20), b)
	p.SetHeight(5 * EntryHeight)

	// ChainRecords are in ascending years, so n05 sits at row 14
	b.Emit(bus.Reveal("n05"))
	if p.Offset() != 12 {
		t.Errorf("Offset() = %d, want 12", p.Offset())
	}

	p.Reveal("n19")
	if p.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0 for the first row", p.Offset())
	}
	p.Reveal("n00")
	if p.Offset() != 15 {
		t.Errorf("Offset() = %d, want clamp at 15", p.Offset())
	}
	p.Reveal("missing")
	if p.Offset() != 15 {
		t.Errorf("Reveal(missing) moved the offset to %d", p.Offset())
	}
}

func TestScrollAndRowAt(t *testing.T) {
	p := New(testutil.ChainRecords(6), bus.New())
	p.SetHeight(2 * EntryHeight)

	p.Scroll(-3)
	if p.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0", p.Offset())
	}
	p.Scroll(100)
	if p.Offset() != 4 {
		t.Errorf("Offset() = %d, want 4", p.Offset())
	}

	if row, ok := p.RowAt(EntryHeight + 1); !ok || row != 5 {
		t.Errorf("RowAt(5) = %d, %v, want 5", row, ok)
	}
	if _, ok := p.RowAt(2 * EntryHeight); ok {
		t.Error("RowAt past the last entry should miss")
	}
	if _, ok := p.RowAt(-1); ok {
		t.Error("RowAt(-1) should miss")
	}
}

func TestView(t *testing.T) {
	b := bus.New()
	p := New(testutil.ExampleRecords(), b)
	p.SetHeight(3 * EntryHeight)
	b.Emit(bus.Active("", "b"))

	out := p.View(30, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("View produced %d lines, want 10", len(lines))
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"2020", "EMBODIED THEORY", "Gamma", "Beta", "▌"} {
		if !strings.Contains(plain, want) {
			t.Errorf("View missing %q:\n%s", want, plain)
		}
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w > 30 {
			t.Errorf("line %d width %d exceeds 30", i, w)
		}
	}
	if strings.Contains(strings.Split(plain, "\n")[1], "▌") {
		t.Error("inactive entry has the active marker")
	}
}

func TestView_Empty(t *testing.T) {
	p := New(nil, bus.New())
	if out := ansi.Strip(p.View(20, 2)); !strings.Contains(out, "no references") {
		t.Errorf("View = %q, want empty notice", out)
	}
	if p.View(0, 5) != "" {
		t.Error("View with zero width should be empty")
	}
}
