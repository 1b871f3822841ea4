// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exchange

// StartInt/StopInt adapt an integer-per-cell array onto the same Pattern
// used for float64 payloads. spec.md §4.3 specifies the payload as
// "one datum per cell" without pinning its type; mesh.Finalize's step 6
// (stored-vertex and stored-face ghost count exchange) needs an int
// payload, so this is an additive convenience, not a change of meaning.
func (o *Pattern) StartInt(data []int, n int) error {
	buf := make([]float64, len(data))
	for i, v := range data {
		buf[i] = float64(v)
	}
	if err := o.Start(buf, n); err != nil {
		return err
	}
	o.intScratch = buf
	return nil
}

// StopInt waits for the in-flight StartInt exchange and unpacks ghost
// values back into data.
func (o *Pattern) StopInt(data []int, n int) error {
	buf := o.intScratch
	o.intScratch = nil
	if err := o.Stop(buf, n); err != nil {
		return err
	}
	for i, v := range buf {
		if i >= len(data) {
			break
		}
		data[i] = int(v + 0.5)
	}
	return nil
}
