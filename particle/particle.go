// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package particle implements the Particle Transport Engine and Emitter of
// spec.md §4.4-4.5: advancing Lagrangian particles through a finalised
// mesh.Mesh across a global time step, including cell-to-cell hand-off,
// boundary reflection, and cross-process migration.
package particle

import (
	"math"

	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/mesh"
)

// Sentinel mirrors mesh.Sentinel: "no entry face" / "cell history empty".
const Sentinel = mesh.Sentinel

// Particle is the per-particle state of spec.md §3. Its geom.Vector3 fields
// hold their components in a slice, so a plain struct copy shares them;
// Copy makes an independent one. Mirroring the "custom datatype
// registration" design note of spec.md §9, every field except
// EntryFaceLocal and Rank has a fixed-width float64 encoding in
// transport.go's encodeParticle/decodeParticle; those two are rank-local
// and set again on arrival.
type Particle struct {
	ID int64

	Position    geom.Point3
	InFlightPos geom.Point3

	Velocity     geom.Vector3
	Acceleration geom.Vector3
	Jerk         geom.Vector3

	// CellGlobal is the global index of the cell the particle currently
	// resides in; LastCellGlobal/LastLastCellGlobal are the two prior
	// residences, used both to detect thrashing (spec.md §4.4.6) and, after
	// migration, to rediscover the local entry face (spec.md §4.4.4).
	CellGlobal          int
	LastCellGlobal      int
	LastLastCellGlobal  int

	// EntryFaceLocal is the local (rank-local) face id through which the
	// particle entered CellGlobal; Sentinel if the particle has no history
	// yet. Meaningless across a migration until rediscovered on arrival.
	EntryFaceLocal int

	// Rank is the particle's current owning rank. A cell-to-cell hand-off
	// that lands the particle in a ghost cell sets Rank to that ghost's
	// owner, which queues the particle for the next exchangeParticles call.
	Rank int

	// TravelDt is the remaining travel time within the current global step,
	// in [0, dt].
	TravelDt float64

	DecayLevel float64
	DecayRate  float64

	// Active is false once DecayLevel has dropped to or below zero; inactive
	// particles are skipped by System.Advance and removed at step end.
	Active bool
}

// New creates a particle at pos moving with velocity, with zero
// acceleration and jerk, owned by rank, with no cell
// history (the caller is expected to place it in a cell via a point
// location step before the first Advance). DecayLevel starts at +Inf so
// that a particle with no configured DecayRate (the Go zero value, 0)
// never satisfies the "DecayLevel <= 0" deactivation test in
// transport.go's updateStateAtomic: decay is opt-in, set explicitly by
// the emitter (or the caller) once a real DecayRate is known.
func New(id int64, pos geom.Point3, velocity geom.Vector3, rank, cellGlobal int) *Particle {
	return &Particle{
		ID:                 id,
		Position:           pos,
		InFlightPos:        pos,
		Velocity:           velocity,
		Acceleration:       geom.Zero3(),
		Jerk:               geom.Zero3(),
		CellGlobal:         cellGlobal,
		LastCellGlobal:     Sentinel,
		LastLastCellGlobal: Sentinel,
		EntryFaceLocal:     Sentinel,
		Rank:               rank,
		DecayLevel:         math.Inf(1),
		Active:             true,
	}
}

// Copy returns a deep copy, mirrored from the source's Particle::operator=:
// a struct copy whose Velocity, Acceleration and Jerk get their own
// component slices, so later changes to p do not show through the copy.
func (p *Particle) Copy() Particle {
	c := *p
	c.Velocity = geom.Vector3{C: append([]float64(nil), p.Velocity.C...)}
	c.Acceleration = geom.Vector3{C: append([]float64(nil), p.Acceleration.C...)}
	c.Jerk = geom.Vector3{C: append([]float64(nil), p.Jerk.C...)}
	return c
}
