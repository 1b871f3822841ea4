// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/io"
)

// JSONSource decodes a .tstep job description, the way inp.Data decodes a
// .sim file: struct tags for the wire shape, SetDefault for zero-value
// fallbacks, PostProcess for anything derived from the decoded fields.
type JSONSource struct {
	DtData       float64       `json:"dt"`
	NumStepsData int           `json:"nsteps"`
	DirOutData   string        `json:"dirout"`
	EmittersData []emitterData `json:"emitters"`
}

type emitterData struct {
	Pos        [3]float64 `json:"pos"`
	CellGlobal int        `json:"cell"`
	Rate       string     `json:"rate"`
	Params     RateParams `json:"rateprms"`
	Kinematics kinData    `json:"kinematics"`
}

type distData struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Mean  float64 `json:"mean"`
	Stdev float64 `json:"stdev"`
}

func (d distData) toSpec() DistSpec {
	return DistSpec{Kind: d.Kind, Value: d.Value, Lo: d.Lo, Hi: d.Hi, Mean: d.Mean, Stdev: d.Stdev}
}

type kinData struct {
	AngleXY       distData `json:"anglexy"`
	AngleRotation distData `json:"anglerot"`
	Speed         distData `json:"speed"`
	AccelX        distData `json:"accelx"`
	AccelY        distData `json:"accely"`
	AccelZ        distData `json:"accelz"`
	JerkX         distData `json:"jerkx"`
	JerkY         distData `json:"jerky"`
	JerkZ         distData `json:"jerkz"`
	DecayLevel    distData `json:"decaylevel"`
	DecayRate     distData `json:"decayrate"`
}

// SetDefault sets defaults the way inp.Data.SetDefault does: a run with no
// explicit step count runs exactly one step.
func (o *JSONSource) SetDefault() {
	o.NumStepsData = 1
}

// PostProcess fills in anything derived from the decoded fields, mirroring
// inp.Data.PostProcess's directory creation.
func (o *JSONSource) PostProcess() error {
	if o.DirOutData == "" {
		o.DirOutData = "/tmp/cuptrace"
	}
	return os.MkdirAll(o.DirOutData, 0777)
}

// ReadJSONSource reads and decodes a .tstep file at path, the same
// read-then-unmarshal-then-postprocess shape as inp.ReadSim.
func ReadJSONSource(path string) (*JSONSource, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var o JSONSource
	o.SetDefault()
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, err
	}
	if err := o.PostProcess(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (o *JSONSource) TimeStep() float64 { return o.DtData }
func (o *JSONSource) NumSteps() int     { return o.NumStepsData }
func (o *JSONSource) OutDir() string    { return o.DirOutData }

func (o *JSONSource) Emitters() []EmitterSpec {
	out := make([]EmitterSpec, len(o.EmittersData))
	for i, e := range o.EmittersData {
		out[i] = EmitterSpec{
			X: e.Pos[0], Y: e.Pos[1], Z: e.Pos[2],
			CellGlobal: e.CellGlobal,
			Rate:       e.Rate,
			Params:     e.Params,
			Kinematics: KinematicsSpec{
				AngleXY:       e.Kinematics.AngleXY.toSpec(),
				AngleRotation: e.Kinematics.AngleRotation.toSpec(),
				Speed:         e.Kinematics.Speed.toSpec(),
				AccelX:        e.Kinematics.AccelX.toSpec(),
				AccelY:        e.Kinematics.AccelY.toSpec(),
				AccelZ:        e.Kinematics.AccelZ.toSpec(),
				JerkX:         e.Kinematics.JerkX.toSpec(),
				JerkY:         e.Kinematics.JerkY.toSpec(),
				JerkZ:         e.Kinematics.JerkZ.toSpec(),
				DecayLevel:    e.Kinematics.DecayLevel.toSpec(),
				DecayRate:     e.Kinematics.DecayRate.toSpec(),
			},
		}
	}
	return out
}

var _ Source = (*JSONSource)(nil)
