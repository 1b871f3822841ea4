// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/cuptrace/errs"
	"github.com/cpmech/cuptrace/particle"
	"github.com/stretchr/testify/require"
)

func Test_config01_new_distribution_kinds(tst *testing.T) {
	d, err := NewDistribution(DistSpec{Kind: "fixed", Value: 3.0})
	require.NoError(tst, err)
	require.Equal(tst, particle.Fixed{Value: 3.0}, d)

	d, err = NewDistribution(DistSpec{Kind: "uniform", Lo: 1, Hi: 2})
	require.NoError(tst, err)
	require.Equal(tst, particle.Uniform{Lo: 1, Hi: 2}, d)

	d, err = NewDistribution(DistSpec{Kind: "normal", Mean: 1, Stdev: 0.1, Lo: 0, Hi: 2})
	require.NoError(tst, err)
	require.Equal(tst, particle.Normal{Mean: 1, Stdev: 0.1, Lo: 0, Hi: 2}, d)

	_, err = NewDistribution(DistSpec{Kind: "bogus"})
	require.Error(tst, err)
	require.True(tst, errs.Is(err, errs.InvalidLabel))
}

func Test_config02_new_emitter(tst *testing.T) {
	s := EmitterSpec{
		X: 1, Y: 2, Z: 3,
		CellGlobal: 5,
		Rate:       "fixed",
		Params:     RateParams{Value: 0.5},
	}
	e, err := NewEmitter(s)
	require.NoError(tst, err)
	require.Equal(tst, 5, e.CellGlobal)
	require.InDelta(tst, 1.0, e.Position.X[0], 1e-12)
	require.InDelta(tst, 2.0, e.Position.X[1], 1e-12)
	require.InDelta(tst, 3.0, e.Position.X[2], 1e-12)
	require.Equal(tst, particle.Fixed{Value: 0.5}, e.Rate)
}

func Test_config03_json_source_roundtrip(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "job.tstep")
	body := `{
		"dt": 0.25,
		"nsteps": 10,
		"emitters": [
			{
				"pos": [1.0, 2.0, 3.0],
				"cell": 5,
				"rate": "fixed",
				"rateprms": {"value": 0.5},
				"kinematics": {
					"speed": {"kind": "fixed", "value": 1.0}
				}
			}
		]
	}`
	require.NoError(tst, os.WriteFile(path, []byte(body), 0644))

	src, err := ReadJSONSource(path)
	require.NoError(tst, err)
	require.InDelta(tst, 0.25, src.TimeStep(), 1e-12)
	require.Equal(tst, 10, src.NumSteps())
	require.NotEmpty(tst, src.OutDir())

	emitters := src.Emitters()
	require.Len(tst, emitters, 1)
	require.Equal(tst, 5, emitters[0].CellGlobal)
	require.Equal(tst, "fixed", emitters[0].Kinematics.Speed.Kind)
	require.InDelta(tst, 1.0, emitters[0].Kinematics.Speed.Value, 1e-12)
}

func Test_config04_default_nsteps(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "job.tstep")
	require.NoError(tst, os.WriteFile(path, []byte(`{"dt": 0.1}`), 0644))

	src, err := ReadJSONSource(path)
	require.NoError(tst, err)
	require.Equal(tst, 1, src.NumSteps())
}
