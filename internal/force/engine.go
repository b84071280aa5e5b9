package force

import (
	"fmt"
	"runtime"

	"github.com/san-kum/molsim/internal/linkedcell"
	"github.com/san-kum/molsim/internal/particle"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	TraversalCells    = "linked-cell"
	TraversalAllPairs = "all-pairs"
)

// Engine recomputes the forces on every particle of a container.
type Engine struct {
	law      Law
	walls    *Walls
	strategy Strategy
	workers  int
	log      logrus.FieldLogger

	buffers []buffer
	shared  atomics
}

type Option func(*Engine)

func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithWorkers sets the goroutine count of parallel strategies. Values
// below one select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		e.workers = n
	}
}

// WithWalls overrides the reflective wall force. By default a Lennard-Jones
// law doubles as its own wall force and other laws get none.
func WithWalls(w *Walls) Option {
	return func(e *Engine) { e.walls = w }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(law Law, opts ...Option) *Engine {
	e := &Engine{
		law:      law,
		strategy: Serial,
		workers:  runtime.NumCPU(),
		log:      logrus.StandardLogger(),
	}
	if lj, ok := law.(*LennardJones); ok {
		e.walls = &Walls{LJ: lj}
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log.WithFields(logrus.Fields{
		"law":      law.Name(),
		"strategy": e.strategy,
		"workers":  e.workers,
	}).Debug("force engine ready")
	return e
}

func (e *Engine) Law() Law           { return e.law }
func (e *Engine) Strategy() Strategy { return e.strategy }
func (e *Engine) Workers() int       { return e.workers }

// Traversal names the pair traversal Calculate uses for c.
func (e *Engine) Traversal(c particle.Container) string {
	if lc, ok := c.(*linkedcell.Container); ok && e.usesCells(lc) {
		return TraversalCells
	}
	return TraversalAllPairs
}

func (e *Engine) usesCells(lc *linkedcell.Container) bool {
	cutoff := e.law.Cutoff()
	return finite(cutoff) && cutoff <= lc.Cutoff()
}

// Calculate zeroes all forces, then accumulates every pair force and, on a
// linked-cell container, the reflective wall force.
func (e *Engine) Calculate(c particle.Container) error {
	particle.ResetForces(c)

	switch ct := c.(type) {
	case *linkedcell.Container:
		ct.UpdateCells()
		var err error
		if e.usesCells(ct) {
			err = e.cellForces(ct)
		} else {
			err = e.allPairForces(ct)
		}
		if err != nil {
			return err
		}
		if e.walls != nil {
			e.walls.Apply(ct)
		}
		return nil
	default:
		return e.allPairForces(c)
	}
}

// visitFunc feeds the pairs owned by work items [start, end) to acc.
type visitFunc func(start, end int, acc accumulator) error

func (e *Engine) allPairForces(c particle.Container) error {
	ps := c.Particles()
	n := len(ps)
	return e.accumulate(ps, n, guided, func(start, end int, acc accumulator) error {
		for i := start; i < end; i++ {
			for j := i + 1; j < n; j++ {
				if err := e.pair(ps, i, j, r3.Vec{}, acc); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (e *Engine) cellForces(lc *linkedcell.Container) error {
	ps := lc.Particles()
	return e.accumulate(ps, lc.NumCellsTotal(), static, func(start, end int, acc accumulator) error {
		return lc.IterateCellPairs(start, end, func(i, j int, shift r3.Vec) error {
			return e.pair(ps, i, j, shift, acc)
		})
	})
}

func (e *Engine) pair(ps []particle.Particle, i, j int, shift r3.Vec, acc accumulator) error {
	p, q := &ps[i], &ps[j]
	d := r3.Sub(r3.Add(q.X, shift), p.X)
	f, err := e.law.Force(p, q, d)
	if err != nil {
		return fmt.Errorf("particles %d and %d at [%g, %g, %g]: %w", i, j, p.X.X, p.X.Y, p.X.Z, err)
	}
	if f == (r3.Vec{}) {
		return nil
	}
	acc.add(i, f)
	acc.sub(j, f)
	return nil
}

func (e *Engine) accumulate(ps []particle.Particle, items int, sched schedule, visit visitFunc) error {
	if e.strategy == Serial || e.workers <= 1 {
		return visit(0, items, direct(ps))
	}

	switch e.strategy {
	case Buffered:
		return e.accumulateBuffered(ps, items, sched, visit)
	case Atomic:
		return e.accumulateAtomic(ps, items, sched, visit)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownStrategy, e.strategy)
	}
}

func (e *Engine) accumulateBuffered(ps []particle.Particle, items int, sched schedule, visit visitFunc) error {
	n := len(ps)
	e.ensureBuffers(n)

	err := parallelFor(items, e.workers, sched, func(worker, start, end int) error {
		return visit(start, end, e.buffers[worker])
	})
	if err != nil {
		return err
	}

	for _, buf := range e.buffers {
		for i := 0; i < n; i++ {
			ps[i].F = r3.Add(ps[i].F, buf[i])
		}
	}
	return nil
}

func (e *Engine) ensureBuffers(n int) {
	if len(e.buffers) != e.workers {
		e.buffers = make([]buffer, e.workers)
	}
	for w := range e.buffers {
		if len(e.buffers[w]) != n {
			e.buffers[w] = make(buffer, n)
			continue
		}
		clear(e.buffers[w])
	}
}

func (e *Engine) accumulateAtomic(ps []particle.Particle, items int, sched schedule, visit visitFunc) error {
	n := len(ps)
	if len(e.shared) != 3*n {
		e.shared = make(atomics, 3*n)
	} else {
		e.shared.reset()
	}

	err := parallelFor(items, e.workers, sched, func(_, start, end int) error {
		return visit(start, end, e.shared)
	})
	if err != nil {
		return err
	}

	for i := range ps {
		ps[i].F = r3.Add(ps[i].F, e.shared.load(i))
	}
	return nil
}

// PotentialEnergy sums the pair potentials over the same traversal as
// Calculate. Wall interactions are not included.
func (e *Engine) PotentialEnergy(c particle.Container) (float64, error) {
	ps := c.Particles()
	total := 0.0
	visit := func(i, j int, shift r3.Vec) error {
		p, q := &ps[i], &ps[j]
		d := r3.Sub(r3.Add(q.X, shift), p.X)
		if d == (r3.Vec{}) {
			return fmt.Errorf("particles %d and %d: %w", i, j, ErrZeroDistance)
		}
		total += e.law.Potential(p, q, d)
		return nil
	}

	if lc, ok := c.(*linkedcell.Container); ok && e.usesCells(lc) {
		lc.UpdateCells()
		if err := lc.IterateCellPairs(0, lc.NumCellsTotal(), visit); err != nil {
			return 0, err
		}
		return total, nil
	}

	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if err := visit(i, j, r3.Vec{}); err != nil {
				return 0, err
			}
		}
	}
	return total, nil
}
