// Package linsolve implements a small sparse iterative linear solver:
// BiCGStab preconditioned with a Chow-Patel-style incomplete-LU sweep. No
// package in the retrieval pack provides a sparse iterative solver
// (github.com/ctessum/sparse is a container, not a solver, and
// gonum.org/v1/gonum/mat only factors dense matrices), so this is a
// hand-rolled implementation, using gonum.org/v1/gonum/floats for the
// vector arithmetic inside the iteration.
package linsolve

import (
	"sort"

	"github.com/ctessum/sparse"
)

// CSR is a row-compressed sparse matrix, the layout the assembly stages'
// row-ordered maps are converted to before the solve, per the design
// notes' "rows as an ordered mapping ... convert to CSR before the solve".
type CSR struct {
	N       int
	RowPtr  []int
	ColIdx  []int
	Vals    []float64
}

// FromSparse converts a *sparse.SparseArray of shape [n, n] built by
// row-at-a-time assembly into CSR form.
func FromSparse(A *sparse.SparseArray, n int) *CSR {
	type entry struct {
		row, col int
		val      float64
	}
	nz := A.Nonzero()
	entries := make([]entry, 0, len(nz))
	for _, idx1d := range nz {
		rc := A.IndexNd(idx1d)
		entries = append(entries, entry{row: rc[0], col: rc[1], val: A.Get1d(idx1d)})
	}

	byRow := make([][]entry, n)
	for _, e := range entries {
		byRow[e.row] = append(byRow[e.row], e)
	}

	c := &CSR{N: n, RowPtr: make([]int, n+1)}
	for r := 0; r < n; r++ {
		row := byRow[r]
		sort.Slice(row, func(i, j int) bool { return row[i].col < row[j].col })
		c.RowPtr[r+1] = c.RowPtr[r] + len(row)
		for _, e := range row {
			c.ColIdx = append(c.ColIdx, e.col)
			c.Vals = append(c.Vals, e.val)
		}
	}
	return c
}

// Mul computes y = A*x.
func (c *CSR) Mul(x []float64) []float64 {
	y := make([]float64, c.N)
	for r := 0; r < c.N; r++ {
		var sum float64
		for k := c.RowPtr[r]; k < c.RowPtr[r+1]; k++ {
			sum += c.Vals[k] * x[c.ColIdx[k]]
		}
		y[r] = sum
	}
	return y
}

// Diag returns the matrix diagonal, treating a structurally absent entry
// as zero.
func (c *CSR) Diag() []float64 {
	d := make([]float64, c.N)
	for r := 0; r < c.N; r++ {
		for k := c.RowPtr[r]; k < c.RowPtr[r+1]; k++ {
			if c.ColIdx[k] == r {
				d[r] = c.Vals[k]
			}
		}
	}
	return d
}
