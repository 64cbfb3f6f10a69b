package linsolve

import "math"

// ILU is a Chow-Patel-style incomplete-LU factorisation held in the same
// sparsity pattern as the source matrix: L (unit diagonal, implicit) below
// the diagonal and U (including the diagonal) on and above it. Chow-Patel
// factorisation refines both factors together with a small fixed number of
// Jacobi sweeps rather than a sequential elimination, which is what makes
// it parallel-friendly. NewILU runs sweeps*jacobiIters such fixed-point
// updates of the factors (3*2 with the solver defaults); Solve applies the
// factors with exact forward and back substitution, not with Jacobi
// iterations.
type ILU struct {
	n      int
	lRows  [][]colVal // strictly lower triangle, per row
	uRows  [][]colVal // diagonal and upper triangle, per row
}

type colVal struct {
	col int
	val float64
}

// NewILU builds a Chow-Patel incomplete-LU preconditioner for A, using the
// same nonzero pattern as A (ILU(0)) and the sweep/iteration counts given
// in the component design.
func NewILU(a *CSR, sweeps, jacobiIters int) *ILU {
	n := a.N
	m := &ILU{n: n, lRows: make([][]colVal, n), uRows: make([][]colVal, n)}

	// Seed L and U directly from A's pattern: strictly-lower entries seed
	// L (with an implicit unit diagonal), diagonal-and-above seed U.
	for r := 0; r < n; r++ {
		for k := a.RowPtr[r]; k < a.RowPtr[r+1]; k++ {
			c := a.ColIdx[k]
			v := a.Vals[k]
			if c < r {
				m.lRows[r] = append(m.lRows[r], colVal{c, v})
			} else {
				m.uRows[r] = append(m.uRows[r], colVal{c, v})
			}
		}
		if !hasCol(m.uRows[r], r) {
			m.uRows[r] = append(m.uRows[r], colVal{r, 1})
		}
	}

	// Build a dense lookup of A's values at (row, col) pairs in the
	// factors' pattern, since the fixed-point update needs A_ij directly.
	aAt := func(row, col int) float64 {
		for k := a.RowPtr[row]; k < a.RowPtr[row+1]; k++ {
			if a.ColIdx[k] == col {
				return a.Vals[k]
			}
		}
		return 0
	}

	getU := func(row, col int) float64 {
		for _, cv := range m.uRows[row] {
			if cv.col == col {
				return cv.val
			}
		}
		return 0
	}
	getL := func(row, col int) float64 {
		if row == col {
			return 1
		}
		for _, cv := range m.lRows[row] {
			if cv.col == col {
				return cv.val
			}
		}
		return 0
	}

	for sweep := 0; sweep < sweeps; sweep++ {
		for jac := 0; jac < jacobiIters; jac++ {
			newL := make([][]colVal, n)
			newU := make([][]colVal, n)
			for r := 0; r < n; r++ {
				for _, cv := range m.lRows[r] {
					c := cv.col
					sum := 0.0
					lim := c
					if r < lim {
						lim = r
					}
					for kk := 0; kk < lim; kk++ {
						sum += getL(r, kk) * getU(kk, c)
					}
					ujj := getU(c, c)
					var val float64
					if ujj != 0 {
						val = (aAt(r, c) - sum) / ujj
					}
					newL[r] = append(newL[r], colVal{c, val})
				}
				for _, cv := range m.uRows[r] {
					c := cv.col
					sum := 0.0
					lim := r
					if c < lim {
						lim = c
					}
					for kk := 0; kk < lim; kk++ {
						sum += getL(r, kk) * getU(kk, c)
					}
					newU[r] = append(newU[r], colVal{c, aAt(r, c) - sum})
				}
			}
			m.lRows, m.uRows = newL, newU
		}
	}
	return m
}

func hasCol(row []colVal, col int) bool {
	for _, cv := range row {
		if cv.col == col {
			return true
		}
	}
	return false
}

// Solve applies the preconditioner: solve L*y = r by forward substitution,
// then U*x = y by back substitution.
func (m *ILU) Solve(r []float64) []float64 {
	y := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		sum := r[i]
		for _, cv := range m.lRows[i] {
			sum -= cv.val * y[cv.col]
		}
		y[i] = sum
	}
	x := make([]float64, m.n)
	for i := m.n - 1; i >= 0; i-- {
		sum := y[i]
		diag := 1.0
		for _, cv := range m.uRows[i] {
			if cv.col == i {
				diag = cv.val
				continue
			}
			sum -= cv.val * x[cv.col]
		}
		if diag == 0 || math.IsNaN(diag) {
			diag = 1
		}
		x[i] = sum / diag
	}
	return x
}
