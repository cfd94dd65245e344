package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/npratt/refgraph/internal/graph"
)

// EdgeFormat is an edge list encoding.
type EdgeFormat string

const (
	EdgesText EdgeFormat = "text"
	EdgesJSON EdgeFormat = "json"
)

// WriteEdges writes the edges of g in catalog pair order.
func WriteEdges(w io.Writer, g *graph.Graph, format EdgeFormat) error {
	switch format {
	case EdgesJSON:
		edges := g.Edges
		if edges == nil {
			edges = []graph.Edge{}
		}
		data, err := json.MarshalIndent(edges, "", "  ")
		if err != nil {
			return fmt.Errorf("encode edges: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case EdgesText, "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SOURCE\tTARGET\tWEIGHT")
		for _, e := range g.Edges {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", e.SourceID, e.TargetID, e.Weight)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("%w %q (want text or json)", ErrUnsupportedFormat, format)
	}
}
