package layout

// assignColumns gives every leaf a unique integer column and propagates
// [minCol, maxCol] spans upward. The counter is shared across all roots, so
// independent trees occupy one continuous column sequence, and children are
// visited in their attachment order — the declaration-order tie-break.
func assignColumns(roots []*treeNode) {
	next := 0
	for _, r := range roots {
		assignSpan(r, &next)
	}
}

func assignSpan(tn *treeNode, next *int) {
	if len(tn.children) == 0 {
		tn.col = *next
		tn.hasCol = true
		*next++
		tn.minCol, tn.maxCol = tn.col, tn.col
		tn.hasSpan = true
		return
	}

	for _, c := range tn.children {
		assignSpan(c, next)
	}

	first := true
	for _, c := range tn.children {
		if !c.hasSpan {
			continue
		}
		if first {
			tn.minCol, tn.maxCol = c.minCol, c.maxCol
			first = false
			continue
		}
		tn.minCol = min(tn.minCol, c.minCol)
		tn.maxCol = max(tn.maxCol, c.maxCol)
	}
	if first {
		// No child carried a valid span; fall back to a fresh leaf column.
		tn.col = *next
		tn.hasCol = true
		*next++
		tn.minCol, tn.maxCol = tn.col, tn.col
	}
	tn.hasSpan = true
}
