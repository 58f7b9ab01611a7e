// Package table combines a column axis and a row axis into a virtualized
// grid and answers viewport queries against it.
//
// The table never stores per-cell data. Every query resolves pixel bounds
// through the two axes, so its cost depends on the number of runs and the
// number of visible cells, not on the size of the grid.
//
//	t := table.New()
//	t.XAxis().AppendRun(1000, 100) // 1000 columns, 100px wide
//	t.YAxis().AppendRun(1000, 30)  // 1000 rows, 30px high
//	cells := t.CellsInVisualRect(geom.FromXY(0, 0, 800, 600))
//
// Like the axes it owns, a Table is not safe for concurrent use.
package table
