// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/geom"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/cpmech/cuptrace/mesh"
)

// particleRecordWidth is the fixed-width float64 encoding of a Particle
// used to cross a process boundary during migration (spec.md §9, "custom
// datatype registration"): EntryFaceLocal and Rank are deliberately not
// transmitted, since they are rank-local concepts rediscovered on arrival.
const particleRecordWidth = 23

func encodeParticle(p *Particle) []float64 {
	buf := make([]float64, particleRecordWidth)
	buf[0] = float64(p.ID)
	buf[1] = float64(p.CellGlobal)
	buf[2] = float64(p.LastCellGlobal)
	buf[3] = float64(p.LastLastCellGlobal)
	buf[4] = p.TravelDt
	buf[5] = p.DecayLevel
	buf[6] = p.DecayRate
	if p.Active {
		buf[7] = 1
	}
	copy(buf[8:11], p.Position.X[:])
	copy(buf[11:14], p.InFlightPos.X[:])
	copy(buf[14:17], p.Velocity.C)
	copy(buf[17:20], p.Acceleration.C)
	copy(buf[20:23], p.Jerk.C)
	return buf
}

func decodeParticle(buf []float64) *Particle {
	p := &Particle{
		ID:                 int64(buf[0]),
		CellGlobal:         int(buf[1]),
		LastCellGlobal:     int(buf[2]),
		LastLastCellGlobal: int(buf[3]),
		TravelDt:           buf[4],
		DecayLevel:         buf[5],
		DecayRate:          buf[6],
		Active:             buf[7] != 0,
		EntryFaceLocal:     Sentinel,
	}
	p.Position = geom.NewPoint3(buf[8], buf[9], buf[10])
	p.InFlightPos = geom.NewPoint3(buf[11], buf[12], buf[13])
	p.Velocity = geom.NewVector3(buf[14], buf[15], buf[16])
	p.Acceleration = geom.NewVector3(buf[17], buf[18], buf[19])
	p.Jerk = geom.NewVector3(buf[20], buf[21], buf[22])
	return p
}

// System is the Particle Transport Engine of spec.md §4.4: it owns the
// active-particle list and the per-peer migration channel for one mesh.
type System struct {
	mesh  *mesh.Mesh
	comm  *netio.Comm
	parts []*Particle
}

// New binds a transport System to a finalised mesh, opening a fresh tagged
// communicator so migration traffic can never collide with the mesh's own
// ghost-metadata exchanges (spec.md §9's tag-discipline open question,
// resolved towards always-distinct tags).
func New(m *mesh.Mesh) *System {
	return &System{
		mesh: m,
		comm: netio.NewTagged(m.Graph().Comm()),
	}
}

// AddParticle enrolls p in the active list.
func (o *System) AddParticle(p *Particle) {
	o.parts = append(o.parts, p)
}

// Particles returns the current active list (owned by this rank or still
// mid-migration-bookkeeping); callers must not retain it across Advance.
func (o *System) Particles() []*Particle {
	return o.parts
}

// Stats is a diagnostic snapshot, supplemented from the source's
// ParticleSystemSimple which tracks similar running counts.
type Stats struct {
	Active    int
	Migrating int
}

// Stats reports how many particles are active and how many are currently
// earmarked for migration (Rank differs from this process).
func (o *System) Stats() Stats {
	var s Stats
	me := netio.Rank()
	for _, p := range o.parts {
		if !p.Active {
			continue
		}
		s.Active++
		if p.Rank != me {
			s.Migrating++
		}
	}
	return s
}

// Advance runs one global time step of length dt (spec.md §4.4.3): every
// active particle is given dt of travel time, then the rank repeatedly
// traverses local particles, hands off at cell/boundary faces, and
// exchanges migrating particles, until no rank anywhere has any particle
// left with travel time remaining.
func (o *System) Advance(dt float64) error {
	for _, p := range o.parts {
		if p.Active {
			p.TravelDt = dt
		}
	}

	for {
		me := netio.Rank()
		for _, p := range o.parts {
			if !p.Active || p.Rank != me || p.TravelDt <= 0 {
				continue
			}
			elapsed, exitFace, err := o.updatePositionAtomic(p)
			if err != nil {
				return err
			}
			updateVelocityAtomic(p, elapsed)
			updateStateAtomic(p, elapsed)
			if exitFace != Sentinel {
				if err := o.handleExit(p, exitFace); err != nil {
					return err
				}
			}
		}

		if err := o.exchangeParticles(); err != nil {
			return err
		}

		any, err := o.reduceAnyWorkRemaining()
		if err != nil {
			return err
		}
		if !any {
			break
		}
	}

	for _, p := range o.parts {
		p.Position = p.InFlightPos
	}
	o.compactInactive()
	return nil
}

func (o *System) reduceAnyWorkRemaining() (bool, error) {
	me := netio.Rank()
	mine := 0
	for _, p := range o.parts {
		if p.Active && p.Rank == me && p.TravelDt > 0 {
			mine = 1
			break
		}
	}
	orig := make([]int, netio.Size())
	orig[me] = mine
	dest := make([]int, netio.Size())
	o.comm.AllReduceMaxInt(dest, orig)
	for _, v := range dest {
		if v != 0 {
			return true, nil
		}
	}
	return false, nil
}

// updatePositionAtomic is spec.md §4.4.1: advance p through its current
// cell until either its travel time is exhausted or it reaches a face.
func (o *System) updatePositionAtomic(p *Particle) (elapsed float64, exitFaceLocal int, err error) {
	if p.TravelDt <= 0 {
		return 0, Sentinel, nil
	}

	local, ok := o.mesh.Graph().GlobalToLocal(p.CellGlobal)
	if !ok {
		return 0, Sentinel, errs.New(errs.LogicError, "particle %d: current cell %d not present locally", p.ID, p.CellGlobal)
	}
	faceIDs := o.mesh.FacesOfCell(local)

	type candidate struct {
		face   int
		t      float64
		onEdge bool
	}
	var candidates []candidate
	var cellVerts []geom.Point3

	for _, fi := range faceIDs {
		if fi == p.EntryFaceLocal {
			continue
		}
		face, ferr := o.mesh.Face(fi)
		if ferr != nil {
			return 0, Sentinel, ferr
		}
		verts, verr := o.mesh.FaceVerts(face)
		if verr != nil {
			return 0, Sentinel, verr
		}
		pts := make([]geom.Point3, len(verts))
		for i, v := range verts {
			pts[i] = v.Pos
			cellVerts = append(cellVerts, v.Pos)
		}
		// a boundary face's normal points out of the domain, so a particle
		// moving against it (as it does right after reflecting off it)
		// cannot leave the cell through that face.
		if face.BoundaryID != mesh.Sentinel && p.Velocity.Dot(face.Normal) < 0 {
			continue
		}

		bestT := 0.0
		found := false
		onEdge := false
		for _, tri := range geom.FanTriangulate(pts) {
			hit := tri.IntersectRay(p.InFlightPos, p.Velocity)
			if !hit.Hit || hit.T < 0 {
				continue
			}
			if !found || hit.T < bestT {
				bestT = hit.T
				onEdge = hit.OnEdge
				found = true
			}
		}
		if found {
			candidates = append(candidates, candidate{face: fi, t: bestT, onEdge: onEdge})
		}
	}

	if len(candidates) == 0 {
		return 0, Sentinel, errs.New(errs.NoIntersection, "particle %d: no face intersected in cell %d", p.ID, p.CellGlobal)
	}

	// strictly-positive, non-edge hits on more than one face is the
	// construction error of spec.md §4.4.1/§4.4.6; edge-only ties are
	// tolerated since any candidate leads to the same interior neighbour.
	nonEdge := 0
	for _, c := range candidates {
		if c.t > 0 && !c.onEdge {
			nonEdge++
		}
	}
	if nonEdge > 1 {
		return 0, Sentinel, errs.New(errs.FaceIntersectionAmbiguity, "particle %d: %d faces intersect with positive distance in cell %d", p.ID, nonEdge, p.CellGlobal)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.t < best.t {
			best = c
		}
	}

	dist := best.t * p.Velocity.Length()
	if diameter := geom.LongestEdge(cellVerts); dist > diameter {
		return 0, Sentinel, errs.New(errs.DistanceExceedsCellDiameter, "particle %d: intersection distance %g exceeds cell diameter %g", p.ID, dist, diameter)
	}

	if best.t > p.TravelDt {
		elapsed = p.TravelDt
		p.InFlightPos = p.InFlightPos.Add(p.Velocity.Scale(elapsed))
		p.Position = p.InFlightPos
		p.TravelDt = 0
		return elapsed, Sentinel, nil
	}

	elapsed = best.t
	p.InFlightPos = p.InFlightPos.Add(p.Velocity.Scale(elapsed))
	p.TravelDt -= elapsed
	return elapsed, best.face, nil
}

func updateVelocityAtomic(p *Particle, elapsed float64) {
	p.Velocity = p.Velocity.Add(p.Acceleration.Scale(elapsed))
	p.Acceleration = p.Acceleration.Add(p.Jerk.Scale(elapsed))
}

func updateStateAtomic(p *Particle, elapsed float64) {
	p.DecayLevel -= p.DecayRate * elapsed
	if p.DecayLevel <= 0 {
		p.Active = false
	}
}

// handleExit is spec.md §4.4.2: classify the face p just reached and either
// hand it to the adjacent cell (queuing a migration if that cell is a
// ghost) or reflect it off a boundary.
func (o *System) handleExit(p *Particle, faceLocal int) error {
	face, err := o.mesh.Face(faceLocal)
	if err != nil {
		return err
	}

	if face.BoundaryID == mesh.Sentinel {
		curLocal, ok := o.mesh.Graph().GlobalToLocal(p.CellGlobal)
		if !ok {
			return errs.New(errs.LogicError, "particle %d: current cell %d not present locally", p.ID, p.CellGlobal)
		}
		newLocal := face.Cell1
		if newLocal == curLocal {
			newLocal = face.Cell2
		}
		newCell, err := o.mesh.Cell(newLocal)
		if err != nil {
			return err
		}
		if newCell.Global == p.LastCellGlobal || newCell.Global == p.LastLastCellGlobal {
			return errs.New(errs.RevisitedRecentCell, "particle %d: re-entered cell %d visited in the last two steps", p.ID, newCell.Global)
		}

		p.LastLastCellGlobal = p.LastCellGlobal
		p.LastCellGlobal = p.CellGlobal
		p.CellGlobal = newCell.Global
		p.EntryFaceLocal = faceLocal

		if newCell.Ghost {
			owner, err := o.mesh.Graph().OwnerOf(newLocal)
			if err != nil {
				return err
			}
			p.Rank = owner
		}
		return nil
	}

	// boundary face: wall/symmetry/inlet/outlet are all treated as
	// reflective (spec.md §4.4.2, an open question preserved from source).
	p.Velocity = p.Velocity.Reflect(face.Normal)
	p.Acceleration = p.Acceleration.Reflect(face.Normal)
	p.Jerk = p.Jerk.Reflect(face.Normal)
	return nil
}

func (o *System) compactInactive() {
	kept := o.parts[:0]
	for _, p := range o.parts {
		if p.Active {
			kept = append(kept, p)
		}
	}
	o.parts = kept
}

// exchangeParticles is spec.md §4.4.4: a collective that ships every
// particle whose Rank no longer matches this process to its new owner, and
// receives whatever arrives from peers, rediscovering each arrival's local
// entry face.
func (o *System) exchangeParticles() error {
	me := netio.Rank()
	n := netio.Size()

	outbound := make(map[int][]*Particle)
	keep := o.parts[:0]
	for _, p := range o.parts {
		if p.Rank == me {
			keep = append(keep, p)
		} else {
			outbound[p.Rank] = append(outbound[p.Rank], p)
		}
	}

	if n == 1 {
		o.parts = keep
		return nil
	}

	// 1. exchange per-peer outbound counts
	sendCounts := make([]float64, 1)
	countRecv := make([][]float64, n)
	var countRecvReqs, countSendReqs []*netio.Request
	for r := 0; r < n; r++ {
		if r == me {
			continue
		}
		countRecv[r] = make([]float64, 1)
		countRecvReqs = append(countRecvReqs, o.comm.IRecv(r, countRecv[r]))
	}
	for r := 0; r < n; r++ {
		if r == me {
			continue
		}
		sendCounts[0] = float64(len(outbound[r]))
		buf := []float64{sendCounts[0]}
		countSendReqs = append(countSendReqs, o.comm.ISend(r, buf))
	}
	if err := netio.WaitAll(countSendReqs); err != nil {
		return errs.New(errs.MessagingFailure, "particle: send migration counts: %v", err)
	}
	if err := netio.WaitAll(countRecvReqs); err != nil {
		return errs.New(errs.MessagingFailure, "particle: recv migration counts: %v", err)
	}

	// 2. sized sends/receives of the particle payload
	recvBufs := make([][]float64, n)
	var dataRecvReqs, dataSendReqs []*netio.Request
	for r := 0; r < n; r++ {
		if r == me || countRecv[r] == nil {
			continue
		}
		cnt := int(countRecv[r][0])
		if cnt == 0 {
			continue
		}
		recvBufs[r] = make([]float64, cnt*particleRecordWidth)
		dataRecvReqs = append(dataRecvReqs, o.comm.IRecv(r, recvBufs[r]))
	}
	for r, ps := range outbound {
		if len(ps) == 0 {
			continue
		}
		buf := make([]float64, 0, len(ps)*particleRecordWidth)
		for _, p := range ps {
			buf = append(buf, encodeParticle(p)...)
		}
		dataSendReqs = append(dataSendReqs, o.comm.ISend(r, buf))
	}
	if err := netio.WaitAll(dataSendReqs); err != nil {
		return errs.New(errs.MessagingFailure, "particle: send migration payload: %v", err)
	}
	if err := netio.WaitAll(dataRecvReqs); err != nil {
		return errs.New(errs.MessagingFailure, "particle: recv migration payload: %v", err)
	}

	// 3. append arrivals, reset rank, rediscover entry face
	for r := 0; r < n; r++ {
		buf := recvBufs[r]
		if buf == nil {
			continue
		}
		for i := 0; i*particleRecordWidth < len(buf); i++ {
			rec := buf[i*particleRecordWidth : (i+1)*particleRecordWidth]
			p := decodeParticle(rec)
			p.Rank = me
			if err := o.rediscoverEntryFace(p); err != nil {
				return err
			}
			keep = append(keep, p)
		}
	}

	o.parts = keep
	return nil
}

// rediscoverEntryFace is spec.md §4.4.4 point 4: a migrated particle's
// entry face is the face shared between its current cell and its
// immediate-predecessor cell; ties are broken by nearest approach of the
// particle's in-flight position to the candidate face's centroid.
func (o *System) rediscoverEntryFace(p *Particle) error {
	curLocal, ok := o.mesh.Graph().GlobalToLocal(p.CellGlobal)
	if !ok {
		return errs.New(errs.EntryFaceRedetectionFailed, "particle %d: current cell %d not present locally", p.ID, p.CellGlobal)
	}
	predLocal, ok := o.mesh.Graph().GlobalToLocal(p.LastCellGlobal)
	if !ok {
		return errs.New(errs.EntryFaceRedetectionFailed, "particle %d: predecessor cell %d not present locally", p.ID, p.LastCellGlobal)
	}

	predFaces := o.mesh.FacesOfCell(predLocal)
	predSet := make(map[int]bool, len(predFaces))
	for _, f := range predFaces {
		predSet[f] = true
	}

	var candidates []int
	for _, f := range o.mesh.FacesOfCell(curLocal) {
		if predSet[f] {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return errs.New(errs.EntryFaceRedetectionFailed, "particle %d: no shared face between cell %d and %d", p.ID, p.CellGlobal, p.LastCellGlobal)
	}

	best := candidates[0]
	bestDist, err := o.faceDistance(p, best)
	if err != nil {
		return err
	}
	for _, f := range candidates[1:] {
		d, err := o.faceDistance(p, f)
		if err != nil {
			return err
		}
		if d < bestDist {
			bestDist = d
			best = f
		}
	}
	p.EntryFaceLocal = best
	return nil
}

func (o *System) faceDistance(p *Particle, faceLocal int) (float64, error) {
	face, err := o.mesh.Face(faceLocal)
	if err != nil {
		return 0, err
	}
	return p.InFlightPos.Dist(face.Centroid), nil
}
