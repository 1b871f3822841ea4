// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the opaque "ConfigSource" contract of spec.md
// §1/§6: a pull interface over a decoded job description, in the manner of
// inp.Data/inp/sim.go (struct tags, SetDefault, PostProcess) rather than a
// bag of flags threaded through every constructor.
package config

// Source is the contract main.go (and tests) pull a job description
// through. It deliberately exposes only what the rest of the module needs
// to start a run: the distributed mesh source is wired separately (via
// genmesh or another mesh.Source), since spec.md §1 excludes mesh/particle
// file IO from this core.
type Source interface {
	// TimeStep is the fixed global step size particle.System.Advance is
	// driven with.
	TimeStep() float64

	// NumSteps is the number of global steps to run.
	NumSteps() int

	// OutDir is the directory run artifacts (logs) are written under.
	OutDir() string

	// Emitters describes every particle.Emitter to construct before the
	// run starts.
	Emitters() []EmitterSpec
}

// EmitterSpec is the declarative description of one particle.Emitter,
// decoded from job configuration rather than built by hand.
type EmitterSpec struct {
	// Position is the emitter's fixed spatial location.
	X, Y, Z float64

	// CellGlobal is the global cell id the emitter's position resides in.
	// The caller is responsible for having located it (e.g. at mesh-build
	// time); config does not perform point location.
	CellGlobal int

	// Rate selects the inter-arrival distribution: "fixed", "uniform", or
	// "normal". Params is interpreted per Rate (see NewDistribution).
	Rate   string
	Params RateParams

	Kinematics KinematicsSpec
}

// RateParams bundles every field any of the supported rate distributions
// might need; unused fields are ignored for a given Rate.
type RateParams struct {
	Value       float64 `json:"value"` // "fixed"
	Lo          float64 `json:"lo"`    // "uniform"/"normal"
	Hi          float64 `json:"hi"`
	Mean        float64 `json:"mean"` // "normal"
	Stdev       float64 `json:"stdev"`
}

// DistSpec describes one scalar distribution draw by name and parameters,
// the same shape as RateParams but reused across every Kinematics field.
type DistSpec struct {
	Kind         string // "fixed", "uniform", "normal"
	Value        float64
	Lo, Hi       float64
	Mean, Stdev  float64
}

// KinematicsSpec mirrors particle.Kinematics field-for-field, as
// distribution descriptions rather than live Distribution values.
type KinematicsSpec struct {
	AngleXY       DistSpec
	AngleRotation DistSpec
	Speed         DistSpec
	AccelX        DistSpec
	AccelY        DistSpec
	AccelZ        DistSpec
	JerkX         DistSpec
	JerkY         DistSpec
	JerkZ         DistSpec
	DecayLevel    DistSpec
	DecayRate     DistSpec
}
