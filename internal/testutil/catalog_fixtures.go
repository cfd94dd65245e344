package testutil

import (
	"fmt"

	"github.com/npratt/refgraph/internal/catalog"
)

// ExampleRecords returns three records where a and b share one tag and c
// shares nothing: the resulting graph has the single edge (a, b, 1) and c
// is isolated.
func ExampleRecords() []catalog.Record {
	return []catalog.Record{
		{ID: "a", Year: 2001, Title: "Alpha", Authors: "Ada Lovelace", Category: catalog.CategoryHapticNav,
			URL: "https://example.org/a", Summary: "First.", Tags: []string{"x", "y"}},
		{ID: "b", Year: 2010, Title: "Beta", Authors: "Bob Builder", Category: catalog.CategoryUrbanAccess,
			URL: "https://example.org/b", Summary: "Second.", Tags: []string{"y", "z"}},
		{ID: "c", Year: 2020, Title: "Gamma", Authors: "Cy Twombly", Category: catalog.CategoryEmbodiedTheory,
			URL: "https://example.org/c", Summary: "Third.", Tags: []string{"w"}},
	}
}

// TriangleRecords returns three mutually connected records with edge
// weights a-b 2, a-c 1, b-c 2.
func TriangleRecords() []catalog.Record {
	return []catalog.Record{
		{ID: "a", Year: 2000, Authors: "A", Tags: []string{"t1", "t2"}},
		{ID: "b", Year: 2005, Authors: "B", Tags: []string{"t1", "t2", "t3"}},
		{ID: "c", Year: 2010, Authors: "C", Tags: []string{"t3", "t1"}},
	}
}

// ChainRecords returns n records linked in a chain: record i shares one tag
// with record i+1 and nothing else.
func ChainRecords(n int) []catalog.Record {
	out := make([]catalog.Record, n)
	for i := range out {
		out[i] = catalog.Record{
			ID:      fmt.Sprintf("n%02d", i),
			Year:    2000 + i,
			Authors: fmt.Sprintf("Author%d et al.", i),
			URL:     fmt.Sprintf("https://example.org/%d", i),
			Tags:    []string{fmt.Sprintf("link-%d", i), fmt.Sprintf("link-%d", i+1)},
		}
	}
	return out
}
