// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

// CellLabel, FaceLabel, VertexLabel and BoundaryLabel let callers print
// diagnostics using the original Source labels instead of the dense local
// indices Finalize assigns, supplementing spec.md §4.2 the way
// CupCfdAoSMesh.cpp's per-entity accessors do.
func (o *Mesh) CellLabel(local int) (int, error) {
	c, err := o.Cell(local)
	if err != nil {
		return 0, err
	}
	return c.Label, nil
}

func (o *Mesh) FaceLabel(local int) (int, error) {
	f, err := o.Face(local)
	if err != nil {
		return 0, err
	}
	return f.Label, nil
}

func (o *Mesh) VertexLabel(local int) (int, error) {
	v, err := o.Vertex(local)
	if err != nil {
		return 0, err
	}
	return v.Label, nil
}

func (o *Mesh) BoundaryLabel(local int) (int, error) {
	b, err := o.Boundary(local)
	if err != nil {
		return 0, err
	}
	return b.Label, nil
}

// RegionOf returns the Region a boundary belongs to, resolving
// Boundary.RegionID through Region, a convenience accessor supplementing
// spec.md's plain index-based Boundary/Region records.
func (o *Mesh) RegionOf(boundaryLocal int) (*Region, error) {
	b, err := o.Boundary(boundaryLocal)
	if err != nil {
		return nil, err
	}
	return o.Region(b.RegionID)
}
