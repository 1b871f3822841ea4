// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"log"

	"github.com/cpmech/cuptrace/config"
	"github.com/cpmech/cuptrace/genmesh"
	"github.com/cpmech/cuptrace/internal/netio"
	"github.com/cpmech/cuptrace/mesh"
	"github.com/cpmech/cuptrace/particle"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

func main() {

	// catch errors
	utl.Tsilent = false
	defer func() {
		if mpi.Rank() == 0 {
			if err := recover(); err != nil {
				utl.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// message
	if mpi.Rank() == 0 {
		utl.PfWhite("\ncuptrace -- distributed unstructured-mesh particle tracking\n\n")
		utl.Pf("Copyright 2012 Dorival Pedroso & Raul Durand. All rights reserved.\n")
		utl.Pf("Use of this source code is governed by a BSD-style\n")
		utl.Pf("license that can be found in the LICENSE file.\n\n")
	}

	// job filenamepath
	nx := flag.Int("nx", 4, "brick cells along x")
	ny := flag.Int("ny", 1, "brick cells along y")
	nz := flag.Int("nz", 1, "brick cells along z")
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		utl.Panic("Please, provide a .tstep job filename. Ex.: job.tstep")
	}

	// profiling?
	defer utl.DoProf(false)()

	// read job description
	src, err := config.ReadJSONSource(fnamepath)
	if err != nil {
		utl.Panic("cannot read job file %s: %v", fnamepath, err)
	}

	// start global log
	if err := netio.InitLogFile(src.OutDir(), "cuptrace"); err != nil {
		utl.Panic("cannot create log file: %v", err)
	}
	defer netio.FlushLog()

	// run
	if err := run(src, *nx, *ny, *nz); err != nil {
		utl.Panic("run failed: %v", err)
	}
}

// run drives one complete particle-transport job: generate the brick mesh,
// finalise this rank's partition, then advance every emitter's particles
// step by step, in the manner of spec.md §2's steady-state data flow.
func run(src config.Source, nx, ny, nz int) error {
	b := genmesh.NewBrick(nx, ny, nz, 1, 1, 1)
	comm := netio.New()
	m, err := mesh.BuildPartition(b, netio.Rank(), comm)
	if err != nil {
		return err
	}
	log.Print(m.DescribeCounts())

	sys := particle.New(m)

	emitters, err := config.NewEmitters(src)
	if err != nil {
		return err
	}

	dt := src.TimeStep()
	for step := 0; step < src.NumSteps(); step++ {
		for _, e := range emitters {
			born, err := e.Generate(dt)
			if err != nil {
				return err
			}
			for _, p := range born {
				sys.AddParticle(p)
			}
		}
		if err := sys.Advance(dt); err != nil {
			return err
		}
		stats := sys.Stats()
		log.Printf("step %d: active=%d migrating=%d", step, stats.Active, stats.Migrating)
	}
	return nil
}
