package metrics

import "github.com/san-kum/welcome/internal/scene"

// MeanSpread averages the vertical spread measured at each tick.
type MeanSpread struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpread() *MeanSpread {
	return &MeanSpread{name: "mean_spread"}
}

func (m *MeanSpread) Name() string { return m.name }

func (m *MeanSpread) Observe(sc *scene.Scene, f scene.Frame) {
	m.sum += f.Spread
	m.samples++
}

func (m *MeanSpread) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpread) Reset() {
	m.sum = 0
	m.samples = 0
}
