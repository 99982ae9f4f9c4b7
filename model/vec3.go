// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "math"

// Vec3 is a spatial 3-vector. No third-party library in the retrieval pack
// (gosl/gm is a grid-binning and NURBS-geometry package, not a fixed-size
// vector algebra library) offers this primitive, so it is implemented here
// directly on [3]float64, matching the SoA-friendly style the teacher uses
// throughout its element scratchpads (e.g. fem/e_rod.go's grav/us/fi slices).
type Vec3 [3]float64

// Mat3 is a 3x3 matrix, row-major.
type Mat3 [3][3]float64

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Scale returns s*a.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

// Dot returns a·b.
func (a Vec3) Dot(b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm returns |a|.
func (a Vec3) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Unit returns a/|a|; the zero vector is returned unchanged if |a| is ~0.
func (a Vec3) Unit() Vec3 {
	n := a.Norm()
	if n < 1e-15 {
		return Vec3{}
	}
	return a.Scale(1 / n)
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// MulVec returns M·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Mul returns a·b.
func (a Mat3) Mul(b Mat3) (c Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			c[i][j] = s
		}
	}
	return
}

// T returns the transpose of a.
func (a Mat3) T() (b Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b[j][i] = a[i][j]
		}
	}
	return
}

// Skew returns the skew-symmetric cross-product matrix [v]× such that
// [v]×·w == v×w.
func Skew(v Vec3) Mat3 {
	return Mat3{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}

// Rodrigues returns the rotation matrix exp([w]×) via Rodrigues' formula,
// used by the exponential-map orientation update of spec.md §4.9.
func Rodrigues(w Vec3) Mat3 {
	θ := w.Norm()
	if θ < 1e-15 {
		return Identity3()
	}
	k := w.Scale(1 / θ)
	K := Skew(k)
	s, c := math.Sin(θ), math.Cos(θ)
	I := Identity3()
	KK := K.Mul(K)
	var R Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = I[i][j] + s*K[i][j] + (1-c)*KK[i][j]
		}
	}
	return R
}

// FrobeniusDeviationFromI returns ||RᵀR - I||_F, used by tests to check the
// RᵀR=I invariant of spec.md §8.
func FrobeniusDeviationFromI(R Mat3) float64 {
	M := R.T().Mul(R)
	I := Identity3()
	var sum float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d := M[i][j] - I[i][j]
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

// Det returns the determinant of a.
func (a Mat3) Det() float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}
