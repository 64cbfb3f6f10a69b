package pbsm3d

import (
	"runtime"
	"sync"
)

// matEntry is one (row, col, value) contribution to a sparse matrix,
// accumulated locally by a single face's forEachFace call and merged into
// the shared matrix afterward. sparse.SparseArray stores its elements in a
// map, which Go does not allow concurrent goroutines to write to even at
// disjoint keys, so assembly stages that build a SparseArray under
// forEachFace collect their AddVal calls into a matEntry slice per face and
// replay them single-threaded once every goroutine has finished.
type matEntry struct {
	row, col int
	val      float64
}

// forEachFace runs fn(i) for i in [0, n) across GOMAXPROCS goroutines,
// stride-partitioned, and blocks until every call returns. It is the
// parallel-over-faces primitive every pipeline stage uses; the concurrency
// & resource model requires no locking for a face's own output scalars and
// dense-array rows, since each face writes only its own slice index or
// DenseArray index, grounded on run.go's Calculations helper in the
// teacher. Stages that also populate a SparseArray use the matEntry
// buffering pattern above instead of writing through the shared map.
func forEachFace(n int, fn func(i int)) {
	nprocs := runtime.GOMAXPROCS(0)
	if nprocs > n {
		nprocs = n
	}
	if nprocs <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for i := pp; i < n; i += nprocs {
				fn(i)
			}
		}(pp)
	}
	wg.Wait()
}
