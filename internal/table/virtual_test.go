package table

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeEmpty(t *testing.T) {
	v := NewVirtualizer()
	win := v.Compute(0, 0, 500)
	require.Empty(t, win.Rows)
	require.Zero(t, win.TotalSize)
}

func TestComputeWindowWithOverscan(t *testing.T) {
	v := NewVirtualizer()
	// 1000 rows at 65px; viewport shows ~10 rows starting around row 100
	win := v.Compute(1000, 100*DefaultEstimate, 10*DefaultEstimate)

	require.Equal(t, 1000*DefaultEstimate, win.TotalSize)

	first := win.Rows[0]
	last := win.Rows[len(win.Rows)-1]
	require.Equal(t, 100-DefaultOverscan, first.Index)
	// rows 100..109 fill the viewport exactly; row 110 starts at its edge
	require.Equal(t, 109+DefaultOverscan, last.Index)

	// offsets are plain prefix sums of the estimate
	require.Equal(t, first.Index*DefaultEstimate, first.Start)
	require.Equal(t, DefaultEstimate, first.Size)
}

func TestComputeClampsAtEdges(t *testing.T) {
	v := NewVirtualizer()
	win := v.Compute(20, 0, 5*DefaultEstimate)
	require.Equal(t, 0, win.Rows[0].Index)

	win = v.Compute(20, 100*DefaultEstimate, 5*DefaultEstimate)
	require.Equal(t, 19, win.Rows[len(win.Rows)-1].Index)
}

func TestMeasuredHeightsShiftOffsets(t *testing.T) {
	v := NewVirtualizer()
	v.Measure(0, 200) // row 0 expanded well past the estimate

	win := v.Compute(5, 0, 1000)
	require.Equal(t, 200, win.Rows[0].Size)
	require.Equal(t, 200, win.Rows[1].Start)
	require.Equal(t, 200+4*DefaultEstimate, win.TotalSize)
}

func TestMeasureIgnoresBadInput(t *testing.T) {
	v := NewVirtualizer()
	v.Measure(-1, 100)
	v.Measure(2, 0)
	v.Measure(2, -5)
	win := v.Compute(5, 0, 1000)
	require.Equal(t, 5*DefaultEstimate, win.TotalSize)
}

func TestResetMeasurements(t *testing.T) {
	v := NewVirtualizer()
	v.Measure(1, 300)
	v.ResetMeasurements()
	win := v.Compute(3, 0, 1000)
	require.Equal(t, 3*DefaultEstimate, win.TotalSize)
}

func TestNegativeScrollTreatedAsZero(t *testing.T) {
	v := NewVirtualizer()
	win := v.Compute(50, -100, 5*DefaultEstimate)
	require.Equal(t, 0, win.Rows[0].Index)
}

func TestComputeAllMaterializesEveryRow(t *testing.T) {
	v := NewVirtualizer()
	v.Measure(0, 2000) // one huge expanded row must not truncate the rest

	win := v.ComputeAll(15)
	require.Len(t, win.Rows, 15)
	require.Equal(t, 14, win.Rows[14].Index)
	require.Equal(t, 2000, win.Rows[1].Start)
	require.Equal(t, 2000+14*DefaultEstimate, win.TotalSize)
}

func TestComputeAllEmpty(t *testing.T) {
	v := NewVirtualizer()
	require.Empty(t, v.ComputeAll(0).Rows)
}

func TestConcurrentMeasureAndCompute(t *testing.T) {
	v := NewVirtualizer()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		g := g
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v.Measure(i, 50+g)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v.Compute(200, i*DefaultEstimate, 10*DefaultEstimate)
				v.ComputeAll(200)
			}
		}()
	}
	wg.Wait()

	win := v.ComputeAll(200)
	require.Len(t, win.Rows, 200)
}
