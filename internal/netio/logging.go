// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netio

import (
	"log"
	"os"

	"github.com/cpmech/gosl/io"
)

// logFile holds the handle to this rank's log file, mirrored from
// inp/logging.go's package-level logFile/InitLogFile/FlushLog trio.
var logFile *os.File

// InitLogFile opens one log file per rank at <dirout>/<key>_p<rank>.log and
// connects the standard logger to it, the same one-file-per-rank layout
// inp.InitLogFile uses.
func InitLogFile(dirout, key string) error {
	var rank int
	if IsOn() {
		rank = Rank()
	}
	f, err := os.Create(io.Sf("%s/%s_p%d.log", dirout, key, rank))
	if err != nil {
		return err
	}
	logFile = f
	log.SetOutput(logFile)
	return nil
}

// FlushLog closes the log file (mirrors inp.FlushLog's naming, fixing the
// teacher's own typo).
func FlushLog() {
	if logFile != nil {
		logFile.Close()
	}
}
