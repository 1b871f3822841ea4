// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"math"
	"math/rand"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/gosl/fun"
)

// maxRejectionAttempts caps Normal's truncated-rejection loop (spec.md §9:
// "an implementer may cap the reject loop ... and fail with
// DistributionUnsatisfiable; the source does not, and this is noted as an
// open question" — this implementation takes the cap).
const maxRejectionAttempts = 1000

// Distribution draws one scalar sample, grounded on
// original_source/distributions' getValues(1) call shape.
type Distribution interface {
	Sample() (float64, error)
}

// Uniform draws uniformly from [Lo, Hi).
type Uniform struct {
	Lo, Hi float64
}

func (d Uniform) Sample() (float64, error) {
	return d.Lo + rand.Float64()*(d.Hi-d.Lo), nil
}

// Normal draws from a normal distribution with the given mean and standard
// deviation, truncated to [Lo, Hi) by rejection (original_source's
// DistributionNormal::getValues).
type Normal struct {
	Mean, Stdev float64
	Lo, Hi      float64
}

func (d Normal) Sample() (float64, error) {
	for i := 0; i < maxRejectionAttempts; i++ {
		v := rand.NormFloat64()*d.Stdev + d.Mean
		if v >= d.Lo && v < d.Hi {
			return v, nil
		}
	}
	return 0, errs.New(errs.DistributionUnsatisfiable, "normal(%g,%g) could not satisfy bounds [%g,%g) in %d attempts", d.Mean, d.Stdev, d.Lo, d.Hi, maxRejectionAttempts)
}

// Fixed always returns Value.
type Fixed struct {
	Value float64
}

func (d Fixed) Sample() (float64, error) { return d.Value, nil }

// RateFunc adapts a gosl/fun.Func as an alternative inter-arrival source to
// a Distribution, following inp.FuncData/inp/func.go's fun.Prms pattern: a
// configured rate can be driven by a function of simulation time instead of
// a fixed/random draw.
type RateFunc struct {
	fn fun.Func
	t  float64
}

// NewRateFunc builds a RateFunc from a gosl/fun type tag and parameters
// (e.g. "cte", "rmp" — see gosl/fun.New), starting its internal clock at 0.
func NewRateFunc(typ string, prms fun.Prms) RateFunc {
	return RateFunc{fn: fun.New(typ, prms)}
}

// Sample evaluates the function at the emitter's current internal clock and
// advances it by the returned interval, so repeated calls trace out f(t)
// sampled at its own emission times.
func (r *RateFunc) Sample() (float64, error) {
	interval := r.fn.F(r.t, nil)
	r.t += interval
	return interval, nil
}

// Kinematics bundles the per-particle draws an Emitter makes on each spawn
// (spec.md §4.5): angle-in-XY, angle-rotation, speed, per-axis acceleration
// and jerk, decay level and rate. Velocity is reconstructed from angle/speed
// rather than drawn directly, mirroring ParticleEmitterSimple's spherical
// parameterisation.
type Kinematics struct {
	AngleXY       Distribution
	AngleRotation Distribution
	Speed         Distribution
	AccelX        Distribution
	AccelY        Distribution
	AccelZ        Distribution
	JerkX         Distribution
	JerkY         Distribution
	JerkZ         Distribution
	DecayLevel    Distribution
	DecayRate     Distribution
}

// Emitter generates particles at a fixed spatial Position at intervals
// drawn from Rate (spec.md §4.5). NextTime carries over any fractional
// emission time left unused from the previous Generate call, so no draws
// are ever skipped across step boundaries.
type Emitter struct {
	Position   geom.Point3
	CellGlobal int
	Rate       Distribution
	Kin        Kinematics

	NextTime float64 // carry-over fractional emission time
	nextID   int64
}

// Generate draws particles whose emission time falls within [0, dt),
// starting from the carried-over NextTime and drawing Rate once after each
// emitted particle; the draw that carries the time to or past dt is kept,
// less dt, as NextTime for the following call.
func (o *Emitter) Generate(dt float64) ([]*Particle, error) {
	var out []*Particle
	t := o.NextTime
	for {
		if t >= dt {
			o.NextTime = t - dt
			return out, nil
		}
		p, err := o.spawn(t, dt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)

		interval, err := o.Rate.Sample()
		if err != nil {
			return nil, err
		}
		t += interval
	}
}

func (o *Emitter) spawn(tEmit, dt float64) (*Particle, error) {
	angleXY, err := o.Kin.AngleXY.Sample()
	if err != nil {
		return nil, err
	}
	angleRot, err := o.Kin.AngleRotation.Sample()
	if err != nil {
		return nil, err
	}
	speed, err := o.Kin.Speed.Sample()
	if err != nil {
		return nil, err
	}
	ax, err := o.Kin.AccelX.Sample()
	if err != nil {
		return nil, err
	}
	ay, err := o.Kin.AccelY.Sample()
	if err != nil {
		return nil, err
	}
	az, err := o.Kin.AccelZ.Sample()
	if err != nil {
		return nil, err
	}
	jx, err := o.Kin.JerkX.Sample()
	if err != nil {
		return nil, err
	}
	jy, err := o.Kin.JerkY.Sample()
	if err != nil {
		return nil, err
	}
	jz, err := o.Kin.JerkZ.Sample()
	if err != nil {
		return nil, err
	}
	decayLevel, err := o.Kin.DecayLevel.Sample()
	if err != nil {
		return nil, err
	}
	decayRate, err := o.Kin.DecayRate.Sample()
	if err != nil {
		return nil, err
	}

	velocity := velocityFromAngles(angleXY, angleRot, speed)

	o.nextID++
	p := New(o.nextID, o.Position, velocity, 0, o.CellGlobal)
	p.Acceleration = geom.NewVector3(ax, ay, az)
	p.Jerk = geom.NewVector3(jx, jy, jz)
	p.DecayLevel = decayLevel
	p.DecayRate = decayRate
	// particles emitted late in the step traverse less of it.
	p.TravelDt = dt - tEmit
	return p, nil
}

// velocityFromAngles reconstructs a velocity vector from the emitter's
// spherical parameterisation (angle in the XY plane, a rotation out of that
// plane, and a speed magnitude), mirroring ParticleEmitterSimple's
// direction-then-magnitude construction.
func velocityFromAngles(angleXY, angleRotation, speed float64) geom.Vector3 {
	cosRot := math.Cos(angleRotation)
	return geom.NewVector3(
		speed*cosRot*math.Cos(angleXY),
		speed*cosRot*math.Sin(angleXY),
		speed*math.Sin(angleRotation),
	)
}
