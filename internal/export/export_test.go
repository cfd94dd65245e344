package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/npratt/refgraph/internal/catalog"
	"github.com/npratt/refgraph/internal/config"
	"github.com/npratt/refgraph/internal/graph"
	"github.com/npratt/refgraph/internal/render"
	"github.com/npratt/refgraph/internal/testutil"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Export.Width = 320
	cfg.Export.Height = 240
	cfg.Export.SettleTicks = 200
	return cfg
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", FormatPNG, false},
		{"dir/OUT.PNG", FormatPNG, false},
		{"graph.svg", FormatSVG, false},
		{"graph.jpg", "", true},
		{"graph", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFor(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSnapshot_WritesAllOutputs(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "nested", "graph.png")
	svgPath := filepath.Join(dir, "graph.svg")

	err := Snapshot(context.Background(), Options{
		Records: catalog.Default(),
		Config:  smallConfig(),
		Paths:   []string{pngPath, svgPath},
		Select:  "ross-2002-wearable-interfaces",
		Title:   "refs",
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("png size = %dx%d, want 320x240", b.Dx(), b.Dy())
	}

	content := testutil.ReadFile(t, svgPath)
	var doc struct {
		XMLName xml.Name
		Circles []struct{} `xml:"circle"`
		Lines   []struct{} `xml:"line"`
	}
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		t.Fatalf("svg is not valid XML: %v", err)
	}
	if doc.XMLName.Local != "svg" {
		t.Errorf("root element = %s, want svg", doc.XMLName.Local)
	}
	if len(doc.Circles) != 12 {
		t.Errorf("circles = %d, want 12", len(doc.Circles))
	}
	if len(doc.Lines) != len(graph.Build(catalog.Default()).Edges) {
		t.Errorf("lines = %d, want one per edge", len(doc.Lines))
	}
	if !strings.Contains(content, "Ross &#39;02") && !strings.Contains(content, "Ross '02") {
		t.Error("svg missing the selected node label")
	}
}

func TestSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		opts    Options
		wantErr error
	}{
		{"bad extension", Options{Paths: []string{filepath.Join(dir, "x.gif")}}, ErrUnsupportedFormat},
		{"unknown focus", Options{Paths: []string{filepath.Join(dir, "x.png")}, Focus: "nope"}, ErrUnknownID},
		{"unknown select", Options{Paths: []string{filepath.Join(dir, "x.svg")}, Select: "nope"}, ErrUnknownID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Records = testutil.ExampleRecords()
			tt.opts.Config = smallConfig()
			err := Snapshot(context.Background(), tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Snapshot() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := Snapshot(context.Background(), Options{}); err == nil {
		t.Error("Snapshot() with no paths should fail")
	}
}

func TestCompose_FitsCanvas(t *testing.T) {
	cfg := smallConfig()
	f, err := Compose(catalog.Default(), cfg, "", "")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	pad := float64(cfg.Export.Padding)
	for _, n := range f.Nodes {
		if n.Center.X < pad-1 || n.Center.X > f.Width-pad+1 || n.Center.Y < pad-1 || n.Center.Y > f.Height-pad+1 {
			t.Errorf("node %s at %+v outside the padded canvas", n.ID, n.Center)
		}
	}
	if f.Tooltip != nil {
		t.Error("export frame should have no tooltip")
	}
}

func TestCompose_Focus(t *testing.T) {
	f, err := Compose(testutil.ExampleRecords(), smallConfig(), "c", "")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if f.Edges[0].Tier != render.TierDimmed {
		t.Errorf("edge tier = %v, want dimmed with isolated focus", f.Edges[0].Tier)
	}
}

func TestWriteFrame_Deterministic(t *testing.T) {
	dir := t.TempDir()
	f, err := Compose(testutil.ExampleRecords(), smallConfig(), "", "a")
	if err != nil {
		t.Fatal(err)
	}
	p := render.DefaultPalette()
	a := filepath.Join(dir, "a.svg")
	b := filepath.Join(dir, "b.svg")
	if err := WriteFrame(a, f, p, ""); err != nil {
		t.Fatal(err)
	}
	if err := WriteFrame(b, f, p, ""); err != nil {
		t.Fatal(err)
	}
	if testutil.ReadFile(t, a) != testutil.ReadFile(t, b) {
		t.Error("same frame produced different SVG output")
	}
}

func TestWriteEdges_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdges(&buf, graph.Build(testutil.TriangleRecords()), EdgesText); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3:\n%s", len(lines), buf.String())
	}
	want := [][]string{{"SOURCE", "TARGET", "WEIGHT"}, {"a", "b", "2"}, {"a", "c", "1"}, {"b", "c", "2"}}
	for i, l := range lines {
		if got := strings.Fields(l); strings.Join(got, " ") != strings.Join(want[i], " ") {
			t.Errorf("line %d = %q, want %v", i, l, want[i])
		}
	}
}

func TestWriteEdges_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdges(&buf, graph.Build(testutil.ExampleRecords()), EdgesJSON); err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0]["source"] != "a" || got[0]["target"] != "b" || got[0]["weight"] != float64(1) {
		t.Errorf("edges = %v, want [{a b 1}]", got)
	}

	buf.Reset()
	if err := WriteEdges(&buf, graph.Build(nil), EdgesJSON); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("empty graph = %q, want []", buf.String())
	}

	if err := WriteEdges(&buf, graph.Build(nil), "csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("WriteEdges(csv) error = %v", err)
	}
}
