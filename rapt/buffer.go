package rapt

// Buffer is a real-valued sample sequence tagged with its sample rate.
// Buffers are treated as read-only by every component in this package.
type Buffer struct {
	Rate    int
	Samples []float64
}
