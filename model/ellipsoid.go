// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/cpmech/gosl/chk"

// Ellipsoids is the SoA store of ellipsoid/sphere contact shapes rigidly
// attached to their owning particle (spec.md §3 Ellipsoid/Sphere table).
// A shape is a sphere iff Radii[i][1] < 0.
type Ellipsoids struct {
	Owner   []int    // owning particle index
	Center  []Vec3   // current center c
	RefCtr  []Vec3   // reference center C (on body)
	Radii   [][3]float64
	Orient  []Mat3 // current orientation Q
	RefOri  []Mat3 // reference orientation Q0
	Color   []int
}

// IsSphere reports whether ellipsoid i is a sphere (r2 < 0).
func (o *Ellipsoids) IsSphere(i int) bool { return o.Radii[i][1] < 0 }

// Add appends an ellipsoid/sphere owned by particle `owner`, attached at
// reference center refC (in the owning particle's reference frame) with
// the given radii (r2<0 for a sphere) and reference orientation, returning
// its handle.
func (o *Ellipsoids) Add(owner int, refC Vec3, radii [3]float64, refOri Mat3, color int) (handle int, err error) {
	if radii[0] <= 0 {
		return -1, chk.Err("ellipsoid radius r1 must be > 0 (got %g)", radii[0])
	}
	o.Owner = append(o.Owner, owner)
	o.Center = append(o.Center, refC)
	o.RefCtr = append(o.RefCtr, refC)
	o.Radii = append(o.Radii, radii)
	o.Orient = append(o.Orient, refOri)
	o.RefOri = append(o.RefOri, refOri)
	o.Color = append(o.Color, color)
	return len(o.Owner) - 1, nil
}

// Reset truncates all slices to zero length.
func (o *Ellipsoids) Reset() {
	o.Owner = o.Owner[:0]
	o.Center = o.Center[:0]
	o.RefCtr = o.RefCtr[:0]
	o.Radii = o.Radii[:0]
	o.Orient = o.Orient[:0]
	o.RefOri = o.RefOri[:0]
	o.Color = o.Color[:0]
}

// Len returns the number of ellipsoids.
func (o *Ellipsoids) Len() int { return len(o.Owner) }
