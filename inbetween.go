package inbetween

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-cel-inbetween/internal/composite"
	"github.com/tphakala/go-cel-inbetween/internal/flow"
	"github.com/tphakala/go-cel-inbetween/internal/lineart"
	"github.com/tphakala/go-cel-inbetween/internal/occlusion"
	"github.com/tphakala/go-cel-inbetween/internal/pipeline"
	"github.com/tphakala/go-cel-inbetween/internal/protect"
	"github.com/tphakala/go-cel-inbetween/internal/raster"
	"github.com/tphakala/go-cel-inbetween/internal/warp"
)

// FrameSink receives each generated frame. Frames arrive in timestep order,
// one call at a time, also when rendering in parallel. The raster is not
// retained by Generate. Returning an error aborts generation.
type FrameSink func(f Frame, r *Raster) error

// Generate synthesizes cfg.Frames inbetweens between keyframes a and b and
// passes each one to sink. A nil sink discards the frames, which is useful
// together with the returned Result.
//
// All parameters are validated and the keyframe shapes compared before any
// flow is computed.
func Generate(a, b *Raster, cfg Config, sink FrameSink) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkKeyframes(a, b); err != nil {
		return nil, err
	}

	frames, err := pipeline.Schedule(cfg.Frames, cfg.Naming)
	if err != nil {
		return nil, err
	}
	p, err := pipeline.New(cfg.Frames)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}
	logger = logger.WithFields(logrus.Fields{
		fieldWidth:  a.Width,
		fieldHeight: a.Height,
		fieldFrames: cfg.Frames,
	})
	logger.WithField(fieldState, p.State()).Debug("keyframes validated")

	g := &generator{a: a, b: b, cfg: cfg}

	if err := g.computeFlow(); err != nil {
		return nil, fmt.Errorf("flow: %w", err)
	}
	if err := advance(p, pipeline.StateFlowComputed, logger); err != nil {
		return nil, err
	}

	if err := g.computeMaps(); err != nil {
		return nil, fmt.Errorf("maps: %w", err)
	}
	if err := advance(p, pipeline.StateMapsComputed, logger); err != nil {
		return nil, err
	}

	if err := advance(p, pipeline.StatePerFrame, logger); err != nil {
		return nil, err
	}

	emit := func(f Frame, r *Raster) error {
		if _, err := p.EmitFrame(); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			fieldIndex: f.Index,
			fieldT:     f.T,
			fieldName:  f.Name,
		}).Info("frame generated")
		if sink == nil {
			return nil
		}
		if err := sink(f, r); err != nil {
			return fmt.Errorf("frame %s: %w", f.Name, err)
		}
		return nil
	}

	if cfg.EnableParallel && len(frames) > 1 {
		err = g.renderParallel(frames, workerCount(cfg.Workers, len(frames)), emit)
	} else {
		err = g.renderSequential(frames, emit)
	}
	if err != nil {
		return nil, err
	}

	if err := advance(p, pipeline.StateDone, logger); err != nil {
		return nil, err
	}
	logger.WithField(fieldEmitted, p.Emitted()).Debug("inbetweens generated")

	return g.result(frames), nil
}

// checkKeyframes asserts both keyframes are non-empty RGBA rasters of the
// same size.
func checkKeyframes(a, b *Raster) error {
	if a == nil || b == nil {
		return fmt.Errorf("%w: keyframes must not be nil", ErrInvalidParameter)
	}
	if err := raster.SameSize(a, b); err != nil {
		return err
	}
	for _, r := range []*Raster{a, b} {
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("%w: empty keyframe %dx%d", ErrInvalidParameter, r.Width, r.Height)
		}
		if len(r.Pix) != r.Width*r.Height*raster.Channels {
			return fmt.Errorf("%w: keyframe has %d samples, want %dx%dx%d",
				ErrUnsupportedFormat, len(r.Pix), r.Width, r.Height, raster.Channels)
		}
	}
	return nil
}

func advance(p *pipeline.Pipeline, next pipeline.State, logger logrus.FieldLogger) error {
	if err := p.Advance(next); err != nil {
		return err
	}
	logger.WithField(fieldState, next).Debug("pipeline state changed")
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func workerCount(requested, frames int) int {
	n := requested
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(1, min(n, frames))
}

// generator holds the keyframes and every value computed once per pair.
// After computeMaps returns nothing in it is written again, so frames can
// be rendered from several goroutines.
type generator struct {
	a, b *Raster
	cfg  Config

	ab, ba       *Field // scaled flow A→B and B→A
	edgeW        *Plane
	reliableW    *Plane
	lineA, lineB *Plane
}

func (g *generator) computeFlow() error {
	prev, next := raster.Luma8(g.a), raster.Luma8(g.b)
	params := flow.DefaultParams()

	if !g.cfg.EnableParallel {
		ab, err := flow.Estimate(prev, next, params)
		if err != nil {
			return fmt.Errorf("forward: %w", err)
		}
		ba, err := flow.Estimate(next, prev, params)
		if err != nil {
			return fmt.Errorf("backward: %w", err)
		}
		g.ab, g.ba = ab.Scale(g.cfg.FlowScale), ba.Scale(g.cfg.FlowScale)
		return nil
	}

	var (
		wg      sync.WaitGroup
		ab, ba  *Field
		errChan = make(chan error, 2)
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if ab, err = flow.Estimate(prev, next, params); err != nil {
			errChan <- fmt.Errorf("forward: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if ba, err = flow.Estimate(next, prev, params); err != nil {
			errChan <- fmt.Errorf("backward: %w", err)
		}
	}()
	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	g.ab, g.ba = ab.Scale(g.cfg.FlowScale), ba.Scale(g.cfg.FlowScale)
	return nil
}

func (g *generator) computeMaps() error {
	var err error
	if g.edgeW, err = protect.PairWeight(g.a, g.b, g.cfg.EdgeProtectRadius); err != nil {
		return fmt.Errorf("edge protection: %w", err)
	}
	if g.reliableW, err = occlusion.Reliability(g.ab, g.ba, g.cfg.OcclusionThreshold); err != nil {
		return fmt.Errorf("reliability: %w", err)
	}
	if g.lineA, err = lineart.Mask(g.a, g.cfg.LineKernel); err != nil {
		return fmt.Errorf("line mask A: %w", err)
	}
	if g.lineB, err = lineart.Mask(g.b, g.cfg.LineKernel); err != nil {
		return fmt.Errorf("line mask B: %w", err)
	}
	return nil
}

// render produces the inbetween at timestep f.T: both keyframes are warped
// toward it, composited, and the motion-compensated line mask is darkened
// back in.
func (g *generator) render(f Frame) (*Raster, error) {
	t := f.T
	towardA := g.ab.Scale(t)
	towardB := g.ba.Scale(1 - t)

	wa, err := warp.Warp(g.a, towardA)
	if err != nil {
		return nil, err
	}
	wb, err := warp.Warp(g.b, towardB)
	if err != nil {
		return nil, err
	}
	blended, err := composite.Compose(wa, wb, t, g.edgeW, g.reliableW)
	if err != nil {
		return nil, err
	}

	la, err := warp.WarpPlane(g.lineA, towardA)
	if err != nil {
		return nil, err
	}
	lb, err := warp.WarpPlane(g.lineB, towardB)
	if err != nil {
		return nil, err
	}
	lines, err := lineart.Blend(la, lb, t)
	if err != nil {
		return nil, err
	}

	return lineart.Reinject(blended, lines, g.cfg.LineStrength)
}

func (g *generator) renderSequential(frames []Frame, emit FrameSink) error {
	for _, f := range frames {
		r, err := g.render(f)
		if err != nil {
			return fmt.Errorf("frame %d: %w", f.Ordinal, err)
		}
		if err := emit(f, r); err != nil {
			return err
		}
	}
	return nil
}

// renderParallel renders frames on a bounded set of workers. Finished
// frames pass through an ordered buffer so emit sees them in sequence.
func (g *generator) renderParallel(frames []Frame, workers int, emit FrameSink) error {
	jobs := make(chan Frame, len(frames))
	for _, f := range frames {
		jobs <- f
	}
	close(jobs)

	buf := pipeline.NewOrderedBuffer(frames[0].Ordinal, func(ordinal int, r *Raster) error {
		return emit(frames[ordinal-frames[0].Ordinal], r)
	})

	var wg sync.WaitGroup
	errChan := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				r, err := g.render(f)
				if err != nil {
					errChan <- fmt.Errorf("frame %d: %w", f.Ordinal, err)
					return
				}
				if err := buf.Put(f.Ordinal, r); err != nil {
					errChan <- err
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}
	if n := buf.Pending(); n > 0 {
		return fmt.Errorf("%w: %d rendered frames never released", pipeline.ErrInvalidTransition, n)
	}
	return nil
}
