// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_errs01_new(tst *testing.T) {
	e := New(DuplicateNode, "cell %d already registered", 7)
	require.Error(tst, e)
	require.Contains(tst, e.Error(), "DuplicateNode")
	require.Contains(tst, e.Error(), "7")
}

func Test_errs02_is(tst *testing.T) {
	var err error = New(NotFinalised, "mesh not finalised")
	require.True(tst, Is(err, NotFinalised))
	require.False(tst, Is(err, AlreadyFinalised))
}

func Test_errs03_fatal(tst *testing.T) {
	require.True(tst, IsFatal(DuplicateNode))
	require.True(tst, IsFatal(RevisitedRecentCell))
	require.False(tst, IsFatal(NotFinalised))
	require.False(tst, IsFatal(InvalidIndex))
}

func Test_errs04_unknown_kind_string(tst *testing.T) {
	var k Kind = 9999
	require.Equal(tst, "UnknownKind", k.String())
}
