// Package layout computes positioned node geometry and orthogonally routed
// edges for an interconnect topology.
//
// The engine is a pure function over its input: given the topology's nodes,
// connections and a [Config], [Compute] returns a complete [Layout] without
// touching shared state. Identical inputs (including list ordering) produce
// identical geometry, which callers rely on across redundant re-invocations.
//
// # Stages
//
// Compute runs four stages in order:
//
//  1. Hierarchy: the flat connection list is reduced to a forest of
//     parent→child trees. A node targeted by several connections is claimed
//     by the first parent encountered in declaration order; remaining edges
//     to it are still routed but never re-parent it.
//  2. Columns: leaves receive consecutive integer columns left to right, and
//     every ancestor derives its [minCol, maxCol] span from its descendants.
//  3. Positions: depth becomes y, column span becomes x and width. Routers
//     widen to cover their span (clamped); endpoints keep a fixed size.
//  4. Routing: every connection becomes a vertical–horizontal–vertical
//     Manhattan path between a source port on the source's bottom edge and a
//     target port on the target's top edge.
//
// [DistributePorts] is a fifth, host-invoked pass: it spreads the source
// ports of edges sharing a node across the node's width and recomputes the
// paths from the layout's current positions. The host calls it after the
// initial layout and again whenever it moves a node.
//
// The engine never fails. Connection endpoints that resolve to no known node
// or port are dropped, and an edge whose node disappeared is skipped during
// port distribution; surfacing such problems to the user is the semantic
// validator's job, not the layout engine's.
package layout
