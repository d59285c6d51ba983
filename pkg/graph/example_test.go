package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/dfpa/pkg/graph"
)

func ExampleParse() {
	src := `c the 5-cycle
p edge 5 5
e 1 2
e 2 3
e 3 4
e 4 5
e 5 1
`
	g, err := graph.Parse(strings.NewReader(src), graph.Standard)
	if err != nil {
		panic(err)
	}
	fmt.Println("Vertices:", g.Len())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Neighbors of 0:", g.Neighbors(0))
	// Output:
	// Vertices: 5
	// Edges: 5
	// Neighbors of 0: [1 4]
}
