// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"testing"

	"github.com/cpmech/cuptrace/geom"
	"github.com/stretchr/testify/require"
)

// fixedKinematics builds a Kinematics whose every draw is deterministic,
// so an Emitter's output depends only on Rate and the carried-over clock.
func fixedKinematics() Kinematics {
	zero := Fixed{Value: 0}
	return Kinematics{
		AngleXY:       zero,
		AngleRotation: zero,
		Speed:         Fixed{Value: 1},
		AccelX:        zero,
		AccelY:        zero,
		AccelZ:        zero,
		JerkX:         zero,
		JerkY:         zero,
		JerkZ:         zero,
		DecayLevel:    Fixed{Value: 1},
		DecayRate:     zero,
	}
}

func Test_emitter01_fixed_rate_four_particles(tst *testing.T) {
	e := &Emitter{
		Position:   geom.NewPoint3(0, 0, 0),
		CellGlobal: 0,
		Rate:       Fixed{Value: 0.5},
		Kin:        fixedKinematics(),
	}
	born, err := e.Generate(2.0)
	require.NoError(tst, err)
	require.Len(tst, born, 4)

	wantTravel := []float64{2.0, 1.5, 1.0, 0.5}
	for i, p := range born {
		require.InDelta(tst, wantTravel[i], p.TravelDt, 1e-12)
	}
	require.InDelta(tst, 0.0, e.NextTime, 1e-12)
}

func Test_emitter02_carryover_no_particles(tst *testing.T) {
	e := &Emitter{
		Position:   geom.NewPoint3(0, 0, 0),
		CellGlobal: 0,
		Rate:       Fixed{Value: 0.5},
		Kin:        fixedKinematics(),
		NextTime:   0.5,
	}
	born, err := e.Generate(0.25)
	require.NoError(tst, err)
	require.Empty(tst, born)
	require.InDelta(tst, 0.25, e.NextTime, 1e-12)
}

func Test_emitter03_velocity_from_angles(tst *testing.T) {
	e := &Emitter{
		Position:   geom.NewPoint3(0, 0, 0),
		CellGlobal: 0,
		Rate:       Fixed{Value: 1.0},
		Kin:        fixedKinematics(),
	}
	born, err := e.Generate(0.5)
	require.NoError(tst, err)
	require.Len(tst, born, 1)
	v := born[0].Velocity
	require.InDelta(tst, 1.0, v.C[0], 1e-12)
	require.InDelta(tst, 0.0, v.C[1], 1e-12)
	require.InDelta(tst, 0.0, v.C[2], 1e-12)
}

func Test_emitter04_unsatisfiable_normal(tst *testing.T) {
	d := Normal{Mean: 100, Stdev: 0.001, Lo: 0, Hi: 1}
	_, err := d.Sample()
	require.Error(tst, err)
}
