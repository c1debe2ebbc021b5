// parallel.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package parallel

import (
	"runtime"
	"sync"
)

// Workers resolves a requested worker count. Values below one mean
// "as many as GOMAXPROCS allows".
func Workers(n int) int {
	if n < 1 {
		return runtime.GOMAXPROCS(-1)
	}
	return n
}

// For calls fn(idx) for every idx in [0, n). The range is cut into
// contiguous chunks, one goroutine per chunk. fn must only write to
// output owned by idx, so no locking is done here.
func For(n, workers int, fn func(idx int)) {
	if n <= 0 {
		return
	}
	maxGoroutines := Workers(workers)
	if maxGoroutines > n {
		maxGoroutines = n
	}
	if maxGoroutines == 1 {
		for idx := 0; idx < n; idx++ {
			fn(idx)
		}
		return
	}

	listSize := n / maxGoroutines
	var wg sync.WaitGroup
	for j := 0; j < maxGoroutines; j++ {
		start := j * listSize
		stop := start + listSize
		if j == maxGoroutines-1 {
			stop = n
		}
		wg.Add(1)
		go func(start, stop int) {
			defer wg.Done()
			for idx := start; idx < stop; idx++ {
				fn(idx)
			}
		}(start, stop)
	}
	wg.Wait()
}
