package report

import (
	"fmt"
	"sort"

	"scenelink/internal/scenegraph"
)

// InspectScene lists every node of the given type with its attributes. When
// onlyEnriched is set, nodes lacking the enrichment attribute are skipped.
func (r *Reporter) InspectScene(doc *scenegraph.Document, typeFilter, attributeName string, onlyEnriched bool) {
	fmt.Fprintf(r.out, "Inspecting scene: %s\n", doc.SourceURL())

	count := 0
	doc.Walk(func(node *scenegraph.Node) {
		if node.TypeName() != typeFilter {
			return
		}
		if onlyEnriched {
			if _, ok := node.Attribute(attributeName); !ok {
				return
			}
		}
		count++
		fmt.Fprintf(r.out, "Node: %s\n", node.Path())
		attrs := node.Attributes()
		if len(attrs) == 0 {
			fmt.Fprintln(r.out, "  attributes: none")
			return
		}
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(r.out, "  %s = %s\n", name, attrs[name])
		}
	})

	if count == 0 {
		fmt.Fprintf(r.out, "No %q nodes found.\n", typeFilter)
	}
}
