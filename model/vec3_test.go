// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestVec3AlgebraBasics(tst *testing.T) {
	chk.PrintTitle("vec3 algebra basics")
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	chk.Scalar(tst, "a·b", 1e-15, a.Dot(b), 4-10+18)

	c := a.Cross(b)
	chk.Scalar(tst, "a·(a×b)", 1e-14, a.Dot(c), 0)
	chk.Scalar(tst, "b·(a×b)", 1e-14, b.Dot(c), 0)

	u := Vec3{3, 4, 0}.Unit()
	chk.Scalar(tst, "|unit|", 1e-15, u.Norm(), 1)

	zero := Vec3{}.Unit()
	chk.Scalar(tst, "unit(0) x", 1e-15, zero[0], 0)
	chk.Scalar(tst, "unit(0) y", 1e-15, zero[1], 0)
	chk.Scalar(tst, "unit(0) z", 1e-15, zero[2], 0)
}

func TestMat3MulAndTranspose(tst *testing.T) {
	chk.PrintTitle("mat3 mul/transpose")
	I := Identity3()
	v := Vec3{1, 2, 3}
	chk.Scalar(tst, "I·v x", 1e-15, I.MulVec(v)[0], v[0])
	chk.Scalar(tst, "I·v y", 1e-15, I.MulVec(v)[1], v[1])
	chk.Scalar(tst, "I·v z", 1e-15, I.MulVec(v)[2], v[2])

	R := Rodrigues(Vec3{0, 0, math.Pi / 2})
	Rt := R.T()
	RtR := Rt.Mul(R)
	dev := FrobeniusDeviationFromI(R)
	chk.Scalar(tst, "‖RᵀR-I‖", 1e-13, dev, 0)
	_ = RtR
}

func TestSkewMatchesCrossProduct(tst *testing.T) {
	chk.PrintTitle("skew matrix matches cross product")
	v := Vec3{1, -2, 3}
	w := Vec3{4, 5, -6}
	got := Skew(v).MulVec(w)
	want := v.Cross(w)
	chk.Scalar(tst, "skew x", 1e-14, got[0], want[0])
	chk.Scalar(tst, "skew y", 1e-14, got[1], want[1])
	chk.Scalar(tst, "skew z", 1e-14, got[2], want[2])
}

func TestRodriguesRotatesAboutAxisByAngle(tst *testing.T) {
	chk.PrintTitle("rodrigues rotation")
	R := Rodrigues(Vec3{0, 0, math.Pi / 2})
	v := Vec3{1, 0, 0}
	got := R.MulVec(v)
	chk.Scalar(tst, "rotated x", 1e-14, got[0], 0)
	chk.Scalar(tst, "rotated y", 1e-14, got[1], 1)
	chk.Scalar(tst, "rotated z", 1e-14, got[2], 0)

	chk.Scalar(tst, "det(R)", 1e-13, R.Det(), 1)
}

func TestRodriguesSmallAngleIsIdentity(tst *testing.T) {
	chk.PrintTitle("rodrigues zero rotation")
	R := Rodrigues(Vec3{})
	dev := FrobeniusDeviationFromI(R)
	chk.Scalar(tst, "‖R-I‖ at ω=0", 1e-15, dev, 0)
}
