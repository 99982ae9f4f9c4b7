// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contact

import "github.com/cpmech/godem/model"

// Kind distinguishes the two narrow-phase pairings of spec.md §4.2.
type Kind byte

const (
	EllipsoidEllipsoid Kind = iota
	TriangleEllipsoid
)

// Key identifies a contact for tangential-displacement persistence across
// steps (spec.md §4.2: "matched by (other-particle, local-feature) between
// consecutive steps"). A and B are the raw ellipsoid/triangle feature
// indices (not particle indices), which is the finer-grained identity the
// spec calls for.
type Key struct {
	Kind Kind
	A, B int
}

// Contact is a single detected contact. Per spec.md §4.2 the reference
// design keeps a master record on one particle and a mirrored slave record
// on the other; this implementation keeps one authoritative record per
// contact instead (Master/Slave particle indices both present) and applies
// the force law once with opposite sign to each side — equivalent under
// the single-writer-per-particle discipline of spec.md §5 as long as
// contacts are processed sharded by Master, which the force package does.
type Contact struct {
	Master, Slave  int // particle indices; Slave < 0 means the other side is static/moving obstacle geometry, not a particle
	Point          model.Vec3
	Normal         model.Vec3 // unit normal, pointing from slave into master
	Gap            float64
	Tangent        model.Vec3 // accumulated tangential sliding displacement
	EffRadius      float64    // characteristic contact length, for rolling/drilling resistance (spec.md §4.3)
	Color1, Color2 int
	Key            Key
}

// Detector runs the broad- and narrow-phase pipeline of spec.md §4.1/§4.2
// and keeps the tangential-displacement persistence map across steps.
type Detector struct {
	Tree    *Tree
	tangent map[Key]model.Vec3
	seen    map[Key]bool
}

// NewDetector returns a Detector with the given PT leaf capacity.
func NewDetector(lsize int) *Detector {
	return &Detector{Tree: NewTree(lsize), tangent: map[Key]model.Vec3{}, seen: map[Key]bool{}}
}

// Detect rebuilds the partitioning tree and runs ellipsoid-ellipsoid and
// triangle-ellipsoid narrow phase, returning every contact with g < 0
// (spec.md §4.2/§4.3: "contact if g < 0"). Tangential displacement is
// carried over from the previous call when a contact's Key persists, and
// reset to zero otherwise (spec.md §4.2 "On persistence break, tangential
// displacement is reset").
func (o *Detector) Detect(w *model.World) []Contact {
	o.Tree.Build(w)
	next := map[Key]bool{}
	var contacts []Contact

	for i := 0; i < w.Ellipsoids.Len(); i++ {
		ownerI := w.Ellipsoids.Owner[i]
		if w.Flags[ownerI].Has(model.Analytical) {
			continue
		}
		shapeI := shapeOf(w, i)
		box := EllipsoidAABB(shapeI.Center, shapeI.Radii)
		o.Tree.QueryAABB(box, func(j int) {
			if j <= i {
				return // each unordered pair visited once
			}
			ownerJ := w.Ellipsoids.Owner[j]
			if ownerJ == ownerI {
				return // no self-contact within one rigid body
			}
			shapeJ := shapeOf(w, j)
			pA, pB, n, gap, err := Closest(shapeI, shapeJ)
			if err != nil || gap >= 0 {
				return
			}
			key := Key{Kind: EllipsoidEllipsoid, A: i, B: j}
			next[key] = true
			point := pA.Add(pB).Scale(0.5)
			effA := EffectiveRadius(shapeI, n)
			effB := EffectiveRadius(shapeJ, n)
			contacts = append(contacts, Contact{
				Master: ownerI, Slave: ownerJ,
				Point: point, Normal: n, Gap: gap,
				Tangent:   o.tangent[key],
				EffRadius: 1 / (1/effA + 1/effB),
				Color1:    w.Ellipsoids.Color[i], Color2: w.Ellipsoids.Color[j],
				Key: key,
			})
		})
	}

	for t := 0; t < w.Triangles.Len(); t++ {
		v := w.Triangles.Verts[t]
		box := TriangleAABB(v)
		o.Tree.QueryAABB(box, func(e int) {
			owner := w.Ellipsoids.Owner[e]
			if !w.Triangles.IsObstacle(t) && w.Triangles.Owner[t] == owner {
				return // a particle's own skin triangle never contacts its own ellipsoid
			}
			if w.Flags[owner].Has(model.Analytical) {
				return
			}
			shape := shapeOf(w, e)
			radius := shape.Radii[0]
			if !shape.IsSphere() {
				// general-ellipsoid/triangle contact degrades to the sphere case locally (see ClosestSphereTriangle doc)
				radius = EffectiveRadius(shape, TriangleNormal(v[0], v[1], v[2]).Unit())
			}
			point, n, gap := ClosestSphereTriangle(shape.Center, radius, v[0], v[1], v[2])
			if gap >= 0 {
				return
			}
			key := Key{Kind: TriangleEllipsoid, A: t, B: e}
			next[key] = true
			master := owner
			slave := w.Triangles.Owner[t]
			contacts = append(contacts, Contact{
				Master: master, Slave: slave,
				Point: point, Normal: n, Gap: gap,
				Tangent:   o.tangent[key],
				EffRadius: radius,
				Color1:    w.Ellipsoids.Color[e], Color2: w.Triangles.Color[t],
				Key: key,
			})
		})
	}

	o.tangent = map[Key]model.Vec3{}
	for k := range next {
		// tangential displacement itself is updated by the force package;
		// entries are re-seeded from the contacts slice by UpdateTangent.
		_ = k
	}
	o.seen = next
	return contacts
}

// UpdateTangent stores the tangential displacement computed by the force
// package for the next step's persistence lookup.
func (o *Detector) UpdateTangent(key Key, u model.Vec3) {
	o.tangent[key] = u
}

func shapeOf(w *model.World, i int) EllipsoidShape {
	return EllipsoidShape{
		Center: w.Ellipsoids.Center[i],
		Orient: w.Ellipsoids.Orient[i],
		Radii:  w.Ellipsoids.Radii[i],
	}
}
