// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the Unstructured Mesh of spec.md §4.2: cell,
// face, vertex, boundary, and region records, finalised into the dense
// local-index/CSR form the particle-transport engine traverses.
package mesh

import "github.com/cpmech/cuptrace/geom"

// Sentinel is the "unset" value for any local index field (face's fourth
// vertex, cell2/boundary cross-references, entry-face ids, ...).
const Sentinel = -1

// Cell holds the essential per-cell attributes of spec.md §3. Local and
// Global are populated at Finalize time from the underlying cell graph.
type Cell struct {
	Label    int
	Centroid geom.Point3
	Volume   float64

	Local  int // dense local index, assigned at Finalize
	Global int // dense global index, assigned at Finalize
	Ghost  bool

	// stored/global face & vertex counts, derived at Finalize (step 5/6)
	StoredFaceCount    int
	StoredVertexCount  int
	GlobalFaceCount    int
	GlobalVertexCount  int
}

// Face holds the attributes of spec.md §3. Up to four vertices; the fourth
// is Sentinel for a triangular face. Cell2 is Sentinel for a boundary face,
// in which case BoundaryID must be set (and vice versa).
type Face struct {
	Label    int
	Verts    [4]int // local vertex indices; Verts[3] == Sentinel for a tri
	NVerts   int
	Cell1    int // local cell index; always valid
	Cell2    int // local cell index; Sentinel iff BoundaryID != Sentinel
	BoundaryID int

	Lambda   float64
	Normal   geom.Vector3
	Centroid geom.Point3
	Rlencos  float64
	Area     float64
	XPAC     geom.Point3 // auxiliary centre point on the Cell1 side
	XNAC     geom.Point3 // auxiliary centre point on the Cell2 side
}

// Vertex holds a 3D position.
type Vertex struct {
	Label int
	Pos   geom.Point3
}

// Boundary mirrors a face's vertices and carries wall/flow state. FaceID is
// Sentinel until the owning face (added with isBoundary=true) back-links it;
// it must not be Sentinel after Finalize.
type Boundary struct {
	Label    int
	FaceID   int
	Verts    [4]int
	NVerts   int
	RegionID int

	WallDist float64
	YPlus    float64
	UPlus    float64
	Shear    geom.Vector3
	Q        float64
	H        float64
	T        float64
}

// Region holds the physical boundary-condition coefficients of spec.md §3.
type Region struct {
	Label int
	Type  string // e.g. "wall", "inlet", "outlet", "symmetry"
	Name  string

	YLog, ELog    float64
	Density       float64
	TurbKE        float64
	TurbDiss      float64
	SPLvl         float64
	Den, R, T     float64
	ForceTangent  geom.Vector3
	UVW           geom.Vector3
	Std, Flux, Adiab bool
}
