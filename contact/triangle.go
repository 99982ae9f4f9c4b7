// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "github.com/cpmech/godem/model"

// ClosestPointOnTriangle returns the point on triangle (v0,v1,v2) nearest
// to p, clamping into the triangle's edge/vertex Voronoi regions as
// spec.md §4.2 requires ("clamp into T (edge/vertex regions)").
func ClosestPointOnTriangle(p, v0, v1, v2 model.Vec3) model.Vec3 {
	ab := v1.Sub(v0)
	ac := v2.Sub(v0)
	ap := p.Sub(v0)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return v0 // vertex region v0
	}

	bp := p.Sub(v1)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return v1 // vertex region v1
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		t := d1 / (d1 - d3)
		return v0.Add(ab.Scale(t)) // edge v0-v1
	}

	cp := p.Sub(v2)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return v2 // vertex region v2
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		t := d2 / (d2 - d6)
		return v0.Add(ac.Scale(t)) // edge v0-v2
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		t := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return v1.Add(v2.Sub(v1).Scale(t)) // edge v1-v2
	}

	// interior: barycentric projection onto the plane of the triangle
	denom := 1 / (va + vb + vc)
	vv := vb * denom
	ww := vc * denom
	return v0.Add(ab.Scale(vv)).Add(ac.Scale(ww))
}

// TriangleNormal returns the (non-unit) normal of (v0,v1,v2) via the
// right-hand rule.
func TriangleNormal(v0, v1, v2 model.Vec3) model.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// ClosestSphereTriangle returns the contact point, unit outward normal
// (pointing from the triangle into the sphere) and gap between a sphere and
// a triangle (spec.md §4.2 "For each (triangle T, ellipsoid E)"). For a
// general ellipsoid, callers first approximate it locally by its radius
// along the triangle's normal direction (EffectiveRadius), which
// is exact for a sphere and a good local approximation otherwise for the
// shallow-penetration regime this engine targets.
func ClosestSphereTriangle(center model.Vec3, radius float64, v0, v1, v2 model.Vec3) (point, normal model.Vec3, gap float64) {
	point = ClosestPointOnTriangle(center, v0, v1, v2)
	d := center.Sub(point)
	dist := d.Norm()
	n := TriangleNormal(v0, v1, v2).Unit()
	if dist < 1e-300 {
		normal = n
	} else {
		normal = d.Scale(1 / dist)
		// keep the normal on the outward side of the face when the sphere
		// center has crossed the plane (deep penetration through a thin face)
		if normal.Dot(n) < 0 && d.Dot(n) < 0 {
			normal = n
		}
	}
	gap = dist - radius
	return
}
