package force

import (
	"math"
	"testing"

	"github.com/san-kum/molsim/internal/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestGravityTwoBody(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{}, r3.Vec{}, 1, 0)
	c.Add(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{}, 1, 0)

	require.NoError(t, NewEngine(Gravity{}).Calculate(c))

	want := 1 / (3 * math.Sqrt(3))
	p, q := c.At(0), c.At(1)
	assert.InDelta(t, want, p.F.X, 1e-12)
	assert.InDelta(t, want, p.F.Y, 1e-12)
	assert.InDelta(t, want, p.F.Z, 1e-12)
	assert.InDelta(t, 1.0/3.0, r3.Norm(p.F), 1e-12)
	assert.Equal(t, r3.Scale(-1, p.F), q.F)
}

func TestGravityZeroMassPartner(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{}, r3.Vec{}, 1, 0)
	c.Add(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{}, 0, 0)

	require.NoError(t, NewEngine(Gravity{}).Calculate(c))
	assert.Equal(t, r3.Vec{}, c.At(0).F)
	assert.Equal(t, r3.Vec{}, c.At(1).F)
}

func TestLennardJonesReference(t *testing.T) {
	c := particle.NewDirect()
	c.Add(r3.Vec{}, r3.Vec{}, 1, 0)
	c.Add(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{}, 1, 0)

	lj := NewLennardJones(5, 1, math.Inf(1))
	require.NoError(t, NewEngine(lj).Calculate(c))

	k := -41145.0 / 13176688.0
	d := r3.Sub(c.At(0).X, c.At(1).X)
	want := r3.Scale(k, d)
	got := c.At(0).F
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
	assert.Equal(t, r3.Scale(-1, got), c.At(1).F)
}

func TestLennardJonesCutoff(t *testing.T) {
	lj := NewLennardJones(1, 1, 2.5)
	p := particle.New(r3.Vec{}, r3.Vec{}, 1, 0)
	q := particle.New(r3.Vec{X: 2.5}, r3.Vec{}, 1, 0)

	f, err := lj.Force(&p, &q, r3.Sub(q.X, p.X))
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, f)
	assert.Equal(t, 0.0, lj.Potential(&p, &q, r3.Sub(q.X, p.X)))

	q.X = r3.Vec{X: 2.4}
	f, err = lj.Force(&p, &q, r3.Sub(q.X, p.X))
	require.NoError(t, err)
	assert.NotEqual(t, r3.Vec{}, f)
}

func TestLennardJonesMinimum(t *testing.T) {
	lj := NewLennardJones(2, 1.5, 10)
	assert.InDelta(t, math.Pow(2, 1.0/6.0)*1.5, lj.RepulsionDistance, 1e-12)

	p := particle.New(r3.Vec{}, r3.Vec{}, 1, 0)
	q := particle.New(r3.Vec{Y: lj.RepulsionDistance}, r3.Vec{}, 1, 0)
	d := r3.Sub(q.X, p.X)

	f, err := lj.Force(&p, &q, d)
	require.NoError(t, err)
	assert.InDelta(t, 0, r3.Norm(f), 1e-12)
	assert.InDelta(t, -2, lj.Potential(&p, &q, d), 1e-12)

	assert.Equal(t, 0.8, lj.WithRepulsionDistance(0.8).RepulsionDistance)
}

func TestLennardJonesNoCutoff(t *testing.T) {
	lj := &LennardJones{Epsilon: 1, Sigma: 1}
	assert.True(t, math.IsInf(lj.Cutoff(), 1))
}

func TestLawAntisymmetry(t *testing.T) {
	laws := []Law{Gravity{}, NewLennardJones(5, 1, 3)}
	positions := [][2]r3.Vec{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 3}},
		{{X: -0.3, Y: 0.7, Z: 1.1}, {X: 0.4, Y: 0.1, Z: 0.2}},
		{{X: 5, Y: 5, Z: 5}, {X: 5.9, Y: 5, Z: 5.2}},
	}

	for _, law := range laws {
		t.Run(law.Name(), func(t *testing.T) {
			for _, pos := range positions {
				p := particle.New(pos[0], r3.Vec{}, 2, 0)
				q := particle.New(pos[1], r3.Vec{}, 3, 0)
				fpq, err := law.Force(&p, &q, r3.Sub(q.X, p.X))
				require.NoError(t, err)
				fqp, err := law.Force(&q, &p, r3.Sub(p.X, q.X))
				require.NoError(t, err)

				assert.InDelta(t, fpq.X, -fqp.X, 1e-12)
				assert.InDelta(t, fpq.Y, -fqp.Y, 1e-12)
				assert.InDelta(t, fpq.Z, -fqp.Z, 1e-12)
			}
		})
	}
}

func TestGravityIsAttractive(t *testing.T) {
	p := particle.New(r3.Vec{}, r3.Vec{}, 1, 0)
	q := particle.New(r3.Vec{X: 2}, r3.Vec{}, 4, 0)

	f, err := Gravity{}.Force(&p, &q, r3.Sub(q.X, p.X))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f.X, 1e-12)
	assert.InDelta(t, -2.0, Gravity{}.Potential(&p, &q, r3.Sub(q.X, p.X)), 1e-12)
}
