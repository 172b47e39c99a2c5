package abstraction

import (
	"bufio"
	"fmt"
	"io"
)

// Dump writes the transition system in Graphviz DOT format. Goal states are
// drawn as double circles, the initial state is marked by an arrow from an
// invisible node and self-loops are listed per operator in a comment.
func (e *Explicit) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph transition_system {")
	fmt.Fprintln(bw, "    node [shape = none] start;")
	for _, g := range e.goals {
		fmt.Fprintf(bw, "    node [shape = doublecircle] %d;\n", g)
	}
	fmt.Fprintln(bw, "    node [shape = circle];")
	fmt.Fprintf(bw, "    start -> %d;\n", e.init)
	e.ForEachTransition(func(t Transition) {
		fmt.Fprintf(bw, "    %d -> %d [label = %q];\n", t.Src, t.Target, e.info.OperatorName(t.Op))
	})
	for op, loop := range e.hasLoop {
		if loop {
			fmt.Fprintf(bw, "    // self-loop: %s\n", e.info.OperatorName(op))
		}
	}
	fmt.Fprintln(bw, "}")

	return bw.Flush()
}
