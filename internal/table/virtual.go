package table

import "sync"

// Defaults matching the dashboard's row geometry.
const (
	DefaultEstimate = 65
	DefaultOverscan = 10
)

// Row is one materialized row of the virtual window: its index in the
// filtered list, its pixel offset from the top and its (estimated or
// measured) height.
type Row struct {
	Index int `json:"index"`
	Start int `json:"start"`
	Size  int `json:"size"`
}

// Window is the subset of rows intersecting the viewport plus overscan,
// together with the total scrollable height.
type Window struct {
	Rows      []Row `json:"rows"`
	TotalSize int   `json:"totalSize"`
}

// Virtualizer computes visible windows over a row list using a fixed height
// estimate, corrected per row once a real measurement arrives. Corrections
// keep earlier offsets stable so the scroll position does not jump when
// expandable rows change height. Measurements arrive from a different
// request than the windows they feed, so the map is guarded.
type Virtualizer struct {
	Estimate int
	Overscan int

	mu       sync.RWMutex
	measured map[int]int
}

func NewVirtualizer() *Virtualizer {
	return &Virtualizer{
		Estimate: DefaultEstimate,
		Overscan: DefaultOverscan,
		measured: make(map[int]int),
	}
}

// Measure records the rendered height of one row. Non-positive heights are
// ignored rather than corrupting the offsets.
func (v *Virtualizer) Measure(index, height int) {
	if index < 0 || height <= 0 {
		return
	}
	v.mu.Lock()
	v.measured[index] = height
	v.mu.Unlock()
}

// ResetMeasurements drops all measured heights, e.g. when the underlying
// lead list is replaced.
func (v *Virtualizer) ResetMeasurements() {
	v.mu.Lock()
	v.measured = make(map[int]int)
	v.mu.Unlock()
}

// size must be called with v.mu held.
func (v *Virtualizer) size(index int) int {
	if h, ok := v.measured[index]; ok {
		return h
	}
	return v.Estimate
}

// Compute returns the rows whose extent intersects [scrollTop,
// scrollTop+viewport], widened by Overscan rows on each side.
func (v *Virtualizer) Compute(count, scrollTop, viewport int) Window {
	if count <= 0 {
		return Window{Rows: []Row{}}
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if viewport < 0 {
		viewport = 0
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	offsets := make([]int, count+1)
	for i := 0; i < count; i++ {
		offsets[i+1] = offsets[i] + v.size(i)
	}
	total := offsets[count]

	// overscrolled positions clamp to the tail instead of materializing all
	first, last := count-1, count-1
	for i := 0; i < count; i++ {
		if offsets[i+1] > scrollTop {
			first = i
			break
		}
	}
	for i := first; i < count; i++ {
		last = i
		if offsets[i+1] >= scrollTop+viewport {
			break
		}
	}

	first -= v.Overscan
	if first < 0 {
		first = 0
	}
	last += v.Overscan
	if last > count-1 {
		last = count - 1
	}

	rows := make([]Row, 0, last-first+1)
	for i := first; i <= last; i++ {
		rows = append(rows, Row{Index: i, Start: offsets[i], Size: v.size(i)})
	}
	return Window{Rows: rows, TotalSize: total}
}

// ComputeAll materializes every row. Callers that send no viewport get the
// whole list, whatever the measured heights add up to.
func (v *Virtualizer) ComputeAll(count int) Window {
	if count <= 0 {
		return Window{Rows: []Row{}}
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	rows := make([]Row, 0, count)
	off := 0
	for i := 0; i < count; i++ {
		sz := v.size(i)
		rows = append(rows, Row{Index: i, Start: off, Size: sz})
		off += sz
	}
	return Window{Rows: rows, TotalSize: off}
}
