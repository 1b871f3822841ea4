// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/particle"
)

// NewDistribution turns a decoded DistSpec into a live particle.Distribution,
// the bridge between the declarative job description and the draws Emitter
// actually performs.
func NewDistribution(d DistSpec) (particle.Distribution, error) {
	switch d.Kind {
	case "", "fixed":
		return particle.Fixed{Value: d.Value}, nil
	case "uniform":
		return particle.Uniform{Lo: d.Lo, Hi: d.Hi}, nil
	case "normal":
		return particle.Normal{Mean: d.Mean, Stdev: d.Stdev, Lo: d.Lo, Hi: d.Hi}, nil
	default:
		return nil, errs.New(errs.InvalidLabel, "config: unknown distribution kind %q", d.Kind)
	}
}

// NewKinematics builds a particle.Kinematics from its declarative
// description, converting each field in turn with NewDistribution and
// returning the first error met. That error names the bad distribution
// kind; it does not say which field held it.
func NewKinematics(k KinematicsSpec) (particle.Kinematics, error) {
	var out particle.Kinematics
	fields := []struct {
		spec DistSpec
		dst  *particle.Distribution
	}{
		{k.AngleXY, &out.AngleXY},
		{k.AngleRotation, &out.AngleRotation},
		{k.Speed, &out.Speed},
		{k.AccelX, &out.AccelX},
		{k.AccelY, &out.AccelY},
		{k.AccelZ, &out.AccelZ},
		{k.JerkX, &out.JerkX},
		{k.JerkY, &out.JerkY},
		{k.JerkZ, &out.JerkZ},
		{k.DecayLevel, &out.DecayLevel},
		{k.DecayRate, &out.DecayRate},
	}
	for _, f := range fields {
		d, err := NewDistribution(f.spec)
		if err != nil {
			return out, err
		}
		*f.dst = d
	}
	return out, nil
}

// NewEmitter builds a particle.Emitter from its declarative description.
func NewEmitter(s EmitterSpec) (*particle.Emitter, error) {
	rate, err := NewDistribution(DistSpec{
		Kind:  s.Rate,
		Value: s.Params.Value,
		Lo:    s.Params.Lo,
		Hi:    s.Params.Hi,
		Mean:  s.Params.Mean,
		Stdev: s.Params.Stdev,
	})
	if err != nil {
		return nil, err
	}
	kin, err := NewKinematics(s.Kinematics)
	if err != nil {
		return nil, err
	}
	return &particle.Emitter{
		Position:   geom.NewPoint3(s.X, s.Y, s.Z),
		CellGlobal: s.CellGlobal,
		Rate:       rate,
		Kin:        kin,
	}, nil
}

// NewEmitters builds every emitter a Source describes, in order.
func NewEmitters(src Source) ([]*particle.Emitter, error) {
	specs := src.Emitters()
	out := make([]*particle.Emitter, 0, len(specs))
	for _, s := range specs {
		e, err := NewEmitter(s)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
