// Package dot renders a stored value graph in Graphviz DOT format.
//
// Each compound value becomes a record-shaped node
// whose fields are its array indexes or map names.
// Atomic children are drawn inside their parent's record
// rather than as nodes of their own,
// and each compound child gets a labeled edge from the parent's field.
package dot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	graph "github.com/davidk01/normalized-graph"
)

// DefaultMaxDepth is a reasonable depth limit for diagrams meant to be read.
const DefaultMaxDepth = 10

// MaxInline is the longest escaped atomic text shown in a record.
// Longer values are replaced by a short key.
const MaxInline = 80

// Write emits the graph reachable from root as a DOT digraph.
// Nodes more than maxDepth edges from root are not drawn,
// though the edges leading to them are.
// A negative maxDepth means no limit.
func Write(ctx context.Context, w io.Writer, g graph.Getter, root graph.Key, maxDepth int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph g {")

	err := graph.Walk(ctx, g, root, maxDepth, func(n graph.Node) error {
		fmt.Fprintf(bw, "  %q [shape=record,label=\"%s\"];\n", n.Key.String(), label(n))
		for _, f := range n.Fields {
			if f.Atomic != nil {
				continue
			}
			fmt.Fprintf(bw, "  %q:f%d -> %q [decorate=true,label=\"%s:%s:%s\"];\n",
				n.Key.String(), f.Index, f.Key.String(), n.Key.Short(), f.Key.Short(), Escape(f.Label))
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "walking graph")
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func label(n graph.Node) string {
	if graph.IsAtomic(n.Value) {
		text := Escape(graph.Text(n.Value))
		if len(text) > MaxInline {
			text = ""
		}
		return "{" + n.Key.Short() + "|" + text + "}"
	}

	parts := make([]string, 0, len(n.Fields))
	for _, f := range n.Fields {
		var name string
		if _, ok := n.Value.(graph.Map); ok {
			name = Escape(f.Label)
		} else {
			name = strconv.Itoa(f.Index)
		}
		part := fmt.Sprintf("<f%d> %s", f.Index, name)

		if f.Atomic != nil {
			text := Escape(graph.Text(f.Atomic))
			if len(text) > MaxInline {
				text = f.Key.Short()
			}
			if text != "" {
				part = "{" + part + "|" + text + "}"
			}
		}
		parts = append(parts, part)
	}
	return "{" + n.Key.Short() + "|{" + strings.Join(parts, "|") + "}}"
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	`;`, `\;`,
	`<`, `\<`,
	`>`, `\>`,
	` `, `\ `,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
)

// Escape makes s safe for use inside a quoted record label.
func Escape(s string) string {
	return escaper.Replace(s)
}
