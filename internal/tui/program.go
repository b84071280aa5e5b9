package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/molsim/internal/metrics"
	"github.com/san-kum/molsim/internal/simulation"
)

// Observer forwards snapshots to a running program.
type Observer struct {
	send     func(tea.Msg)
	recorder *metrics.Recorder
	dims     int
}

// NewObserver sends every snapshot through send. When rec is registered
// on the simulator before this observer, its latest sample is reused so the
// view shows potential energy too.
func NewObserver(send func(tea.Msg), rec *metrics.Recorder, dims int) *Observer {
	return &Observer{send: send, recorder: rec, dims: dims}
}

func (o *Observer) OnSnapshot(s simulation.Snapshot) error {
	sample, ok := metrics.Sample{}, false
	if o.recorder != nil {
		sample, ok = o.recorder.Last()
		ok = ok && sample.Iteration == s.Iteration
	}
	if !ok {
		sample = metrics.Sample{
			Iteration:   s.Iteration,
			Time:        s.Time,
			Particles:   len(s.Particles),
			Kinetic:     metrics.KineticEnergy(s.Particles),
			Temperature: metrics.Temperature(s.Particles, o.dims),
			Momentum:    metrics.Momentum(s.Particles),
		}
		sample.Total = sample.Kinetic
	}
	o.send(SnapshotMsg{Iteration: s.Iteration, Time: s.Time, Particles: s.Particles, Sample: sample})
	return nil
}

type Program struct {
	program *tea.Program
	cancel  context.CancelFunc
}

func NewProgram(m Model, opts ...tea.ProgramOption) *Program {
	return &Program{program: tea.NewProgram(m, opts...), cancel: m.cancel}
}

func (p *Program) Observer(rec *metrics.Recorder, dims int) *Observer {
	return NewObserver(p.program.Send, rec, dims)
}

// Run starts run in the background and drives the view until it returns
// or the user quits. It always waits for run to finish.
func (p *Program) Run(run func() (*simulation.Result, error)) (*simulation.Result, error) {
	type outcome struct {
		result *simulation.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := run()
		done <- outcome{res, err}
		p.program.Send(DoneMsg{Result: res, Err: err})
	}()

	if _, err := p.program.Run(); err != nil {
		if p.cancel != nil {
			p.cancel()
		}
		<-done
		return nil, err
	}
	out := <-done
	return out.result, out.err
}
