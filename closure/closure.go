// Package closure implements a generic transitive-closure engine over a
// directed graph of indexed nodes, using a single Tarjan strongly-connected-
// components pass to collapse cycles before propagating set-valued
// attributes. It is the shared substrate for FIRST/FOLLOW (package grammar)
// and for the LALR(1) Read/Follow relations (package lalr): none of those
// callers open-code their own fixed-point loop, they all hand their
// successor function and combine operation to Compute.
package closure

// Compute replaces each values[x] with the combination (via extend) of
// values[y] for every y reachable from x along edges reported by
// successors, including x itself. It returns whether any cycle of two or
// more nodes was encountered anywhere in the graph.
//
// successors(x) must return the out-edges of x as indices in [0, len(values)).
// extend(dst, src) must be an idempotent, associative, commutative merge of
// src into dst (set union is the only merge this package is used with); it
// is never called with dst and src aliasing the same node.
//
// Compute runs a single depth-first Tarjan pass: nodes are grouped into
// strongly-connected components in reverse topological order, each
// component's representative accumulates the union of its members' own
// values plus the values of every component reachable from it (already
// final, by the reverse-topological completion order), and a final sweep
// copies each representative's value back out to the rest of its component.
func Compute[T any](values []T, successors func(x int) []int, extend func(dst, src *T)) bool {
	n := len(values)
	if n == 0 {
		return false
	}

	const unvisited = 0

	index := make([]int, n)   // discovery order, 1-based; 0 means unvisited
	lowlink := make([]int, n) // Tarjan low-link value
	onStack := make([]bool, n)
	rep := make([]int, n) // representative node of x's SCC, valid once onStack[x] becomes false
	stack := make([]int, 0, n)

	nextIndex := 1
	hasCycle := false

	var dfs func(x int)
	dfs = func(x int) {
		index[x] = nextIndex
		lowlink[x] = nextIndex
		nextIndex++
		stack = append(stack, x)
		onStack[x] = true

		for _, y := range successors(x) {
			switch {
			case index[y] == unvisited:
				dfs(y)
				if onStack[y] {
					if lowlink[y] < lowlink[x] {
						lowlink[x] = lowlink[y]
					}
				} else {
					// y's SCC completed during the recursion; its
					// representative now carries the final union.
					extend(&values[x], &values[rep[y]])
				}
			case onStack[y]:
				if index[y] < lowlink[x] {
					lowlink[x] = index[y]
				}
			default:
				// y's SCC is already fully resolved; its representative
				// carries the final union for everything reachable from y.
				if y != x {
					extend(&values[x], &values[rep[y]])
				}
			}
		}

		if lowlink[x] != index[x] {
			return
		}

		// x is the root of its component; unwind the stack down to x.
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			rep[w] = x
			if w == x {
				break
			}
			extend(&values[x], &values[w])
			hasCycle = true
		}
	}

	for x := 0; x < n; x++ {
		if index[x] == unvisited {
			dfs(x)
		}
	}

	for x := 0; x < n; x++ {
		if rep[x] != x {
			values[x] = values[rep[x]]
		}
	}

	return hasCycle
}
