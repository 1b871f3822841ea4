// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errs defines the enumerated error taxonomy every public operation
// in this module returns at its boundary, in place of gofem's panic-driven
// fem.Stop/fem.PanicOrNot style (see spec.md §7). Fatal categories are
// returned like any other kind; IsFatal tells the caller which ones they are.
package errs

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind enumerates the taxonomy from spec.md §7.
type Kind int

// Error kinds, grouped by the taxonomy in spec.md §7.
const (
	// Contract-violation
	AlreadyFinalised Kind = iota
	NotFinalised
	InvalidIndex
	SizeMismatch
	NoData

	// Topology
	DuplicateNode
	InvalidEdge
	UnmappedBoundaryFace
	DuplicateFaceEdge
	InvalidVertexCount
	InvalidLabel

	// Geometry
	NoIntersection
	ZeroArea
	LogicError
	FaceIntersectionAmbiguity
	DistanceExceedsCellDiameter

	// Particle
	RevisitedRecentCell
	EntryFaceRedetectionFailed
	NegativeIntersectionTime
	DistributionUnsatisfiable

	// Transport mechanism
	MessagingFailure
	DatatypeUnregistered
	PeerMismatch
)

var names = map[Kind]string{
	AlreadyFinalised:            "AlreadyFinalised",
	NotFinalised:                "NotFinalised",
	InvalidIndex:                "InvalidIndex",
	SizeMismatch:                "SizeMismatch",
	NoData:                      "NoData",
	DuplicateNode:               "DuplicateNode",
	InvalidEdge:                 "InvalidEdge",
	UnmappedBoundaryFace:        "UnmappedBoundaryFace",
	DuplicateFaceEdge:           "DuplicateFaceEdge",
	InvalidVertexCount:          "InvalidVertexCount",
	InvalidLabel:                "InvalidLabel",
	NoIntersection:              "NoIntersection",
	ZeroArea:                    "ZeroArea",
	LogicError:                  "LogicError",
	FaceIntersectionAmbiguity:   "FaceIntersectionAmbiguity",
	DistanceExceedsCellDiameter: "DistanceExceedsCellDiameter",
	RevisitedRecentCell:         "RevisitedRecentCell",
	EntryFaceRedetectionFailed:  "EntryFaceRedetectionFailed",
	NegativeIntersectionTime:    "NegativeIntersectionTime",
	DistributionUnsatisfiable:   "DistributionUnsatisfiable",
	MessagingFailure:            "MessagingFailure",
	DatatypeUnregistered:        "DatatypeUnregistered",
	PeerMismatch:                "PeerMismatch",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UnknownKind"
}

// E is the error type returned at every public boundary.
type E struct {
	Kind Kind
	msg  string
}

func (e *E) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// New builds an *E of the given kind, formatting msg/args with gosl/chk's
// formatter the way fem/errorhandler.go composes its panic messages.
func New(k Kind, msg string, args ...interface{}) *E {
	return &E{Kind: k, msg: chk.Err(msg, args...).Error()}
}

// Is reports whether err is an *E of kind k.
func Is(err error, k Kind) bool {
	e, ok := err.(*E)
	return ok && e.Kind == k
}

// IsFatal reports whether k is a fatal category (topology, transport
// mechanism, and the thrash/geometry particle conditions in spec.md
// §4.4.6), after which the owning object's subsequent calls are undefined.
// It only classifies; nothing in this package panics or halts.
func IsFatal(k Kind) bool {
	switch k {
	case DuplicateNode, InvalidEdge, UnmappedBoundaryFace, DuplicateFaceEdge,
		InvalidVertexCount, InvalidLabel,
		RevisitedRecentCell, EntryFaceRedetectionFailed, NegativeIntersectionTime,
		FaceIntersectionAmbiguity, DistanceExceedsCellDiameter,
		MessagingFailure, DatatypeUnregistered, PeerMismatch:
		return true
	default:
		return false
	}
}
