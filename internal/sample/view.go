package sample

// View is the logical window of a Ring split into at most two contiguous
// spans. Concatenating First and Second yields the values oldest first.
// Second is empty unless the window wraps around the end of storage.
type View struct {
	First  []float64
	Second []float64
}

// Len returns the total number of values in the view.
func (v View) Len() int {
	return len(v.First) + len(v.Second)
}

// At returns the i-th value of the concatenated view.
func (v View) At(i int) float64 {
	if i < len(v.First) {
		return v.First[i]
	}
	return v.Second[i-len(v.First)]
}

// AppendTo appends the values oldest first to dst and returns the result.
func (v View) AppendTo(dst []float64) []float64 {
	dst = append(dst, v.First...)
	return append(dst, v.Second...)
}
