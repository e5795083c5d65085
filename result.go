package inbetween

import (
	"gonum.org/v1/gonum/stat"
)

// Result summarizes one Generate call.
type Result struct {
	Width, Height int

	// Frames lists the generated inbetweens in emission order.
	Frames []Frame

	// ForwardFlowMean and BackwardFlowMean are the mean displacement
	// magnitudes in pixels of the scaled A→B and B→A flow fields.
	ForwardFlowMean  float64
	BackwardFlowMean float64

	// ReliableFraction is the share of pixels whose forward and backward
	// flow agree within the occlusion threshold.
	ReliableFraction float64

	// ProtectedFraction is the share of pixels within the edge protection
	// radius, where cross-fading is reduced.
	ProtectedFraction float64
}

func (g *generator) result(frames []Frame) *Result {
	protected := make([]float64, len(g.edgeW.Pix))
	for i, w := range g.edgeW.Pix {
		if w < 1 {
			protected[i] = 1
		}
	}

	return &Result{
		Width:             g.a.Width,
		Height:            g.a.Height,
		Frames:            frames,
		ForwardFlowMean:   stat.Mean(g.ab.Magnitude().Pix, nil),
		BackwardFlowMean:  stat.Mean(g.ba.Magnitude().Pix, nil),
		ReliableFraction:  stat.Mean(g.reliableW.Pix, nil),
		ProtectedFraction: stat.Mean(protected, nil),
	}
}
