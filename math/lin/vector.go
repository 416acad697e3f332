// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Vector performs 3 element vector related math needed for 3D geometry.

package lin

import "math"

// V3 is a 3 element vector. This can also be used as a point.
type V3 struct {
	X float64 // increments as X moves to the right.
	Y float64 // increments as Y moves up from bottom left.
	Z float64 // increments as Z moves out of the screen (right handed view space).
}

// Eq (==) returns true if each element in the vector v has the same value
// as the corresponding element in vector a.
func (v *V3) Eq(a *V3) bool {
	return v.Z == a.Z && v.Y == a.Y && v.X == a.X
}

// Aeq (~=) almost-equals returns true if all the elements in vector v have
// essentially the same value as the corresponding elements in vector a.
// Used where a direct comparison is unlikely to return true due to floats.
func (v *V3) Aeq(a *V3) bool {
	return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z)
}

// AeqEps is V3.Aeq with a caller supplied per-component tolerance.
func (v *V3) AeqEps(a *V3, eps float64) bool {
	return AeqEps(v.X, a.X, eps) && AeqEps(v.Y, a.Y, eps) && AeqEps(v.Z, a.Z, eps)
}

// AeqZ (~=) almost equals zero returns true if the square length of the vector
// is close enough to zero that it makes no difference.
func (v *V3) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns the float64 values of the vector.
func (v *V3) GetS() (x, y, z float64) { return v.X, v.Y, v.Z }

// SetS (=) sets the vector elements to the given values.
// The updated vector v is returned.
func (v *V3) SetS(x, y, z float64) *V3 {
	v.X, v.Y, v.Z = x, y, z
	return v
}

// Set (=, copy, clone) sets the elements of vector v to have the same values
// as the elements of vector a. The updated vector v is returned.
func (v *V3) Set(a *V3) *V3 {
	v.X, v.Y, v.Z = a.X, a.Y, a.Z
	return v
}

// Min updates the vector v elements to be the minimum of the corresponding
// elements from either vectors a or b. The updated vector v is returned.
func (v *V3) Min(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Min(b.X, a.X), math.Min(b.Y, a.Y), math.Min(b.Z, a.Z)
	return v
}

// Max updates the vector v elements to be the maxiumum of the corresponding
// elements from either vectors a or b. The updated vector v is returned.
func (v *V3) Max(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Max(b.X, a.X), math.Max(b.Y, a.Y), math.Max(b.Z, a.Z)
	return v
}

// Abs updates vector v to have the absolute value of the elements of vector v.
// The updated vector v is returned.
func (v *V3) Abs() *V3 {
	v.X, v.Y, v.Z = math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	return v
}

// Neg (-) sets vector v to be the negative values of vector a.
// Vector v may be used as the input parameter.
// The updated vector v is returned.
func (v *V3) Neg(a *V3) *V3 {
	v.X, v.Y, v.Z = -a.X, -a.Y, -a.Z
	return v
}

// Add (+) adds vectors a and b storing the results of the addition in v.
// Vector v may be used as one or both of the parameters.
// For example (+=) is
//
//	v.Add(v, b)
//
// The updated vector v is returned.
func (v *V3) Add(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X+b.X, a.Y+b.Y, a.Z+b.Z
	return v
}

// Sub (-) subtracts vectors b from a storing the results of the subtraction in v.
// Vector v may be used as one or both of the parameters.
// For example (-=) is
//
//	v.Sub(v, b)
//
// The updated vector v is returned.
func (v *V3) Sub(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return v
}

// Scale (*=) updates the elements in vector v by multiplying the
// corresponding elements in vector a by the given scalar value.
// Vector v may be used as one or both of the vector parameters.
// The updated vector v is returned.
func (v *V3) Scale(a *V3, s float64) *V3 {
	v.X, v.Y, v.Z = a.X*s, a.Y*s, a.Z*s
	return v
}

// Div (/= inverse-scale) divides each element in v by the given scalar value.
// The updated vector v is returned. Vector v is not changed if scalar s is zero.
func (v *V3) Div(s float64) *V3 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y, v.Z = v.X*inv, v.Y*inv, v.Z*inv
	}
	return v
}

// Dot vector v with input vector a. Both vectors v and a are unchanged.
func (v *V3) Dot(a *V3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Len returns the length of vector v. Vector length is the square root of
// the dot product. The calling vector v is unchanged.
func (v *V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the length of vector v squared.
// The calling vector v is unchanged.
func (v *V3) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between vector end-points v and a
// Both vectors (points) v and a are unchanged.
func (v *V3) Dist(a *V3) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the distance squared between vector end-points v and a.
// Both vectors (points) v and a are unchanged.
func (v *V3) DistSqr(a *V3) float64 {
	dx, dy, dz := a.X-v.X, a.Y-v.Y, a.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

// Unit updates vector v such that its length is 1.
// Calling vector v is unchanged if its length is zero.
// The updated vector v is returned.
func (v *V3) Unit() *V3 {
	length := v.Len()
	if length != 0 {
		return v.Div(length)
	}
	return v
}

// Cross updates v to be the cross product of vectors a and b.
// A cross product vector is a vector that is perpendicular to both input
// vectors. This is only meaningful in 3 (or 7) dimensions.
// Input vectors a and b are unchanged. Vector v may be used as either
// input parameter. The updated vector v is returned.
func (v *V3) Cross(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X
	return v
}

// Lerp updates vector v to be a fraction of the distance (linear interpolation)
// between the input vectors a and b. The input ratio is not verified, but is expected
// to be between 0 and 1. Vector v may be used as one of the parameters.
func (v *V3) Lerp(a, b *V3, fraction float64) *V3 {
	v.X = (b.X-a.X)*fraction + a.X
	v.Y = (b.Y-a.Y)*fraction + a.Y
	v.Z = (b.Z-a.Z)*fraction + a.Z
	return v
}

// convenience functions for allocating vectors. Nothing else should allocate.
// ============================================================================

// NewV3 creates a new, all zero, 3D vector.
func NewV3() *V3 { return &V3{} }

// NewV3S creates a new 3D vector using the given scalars.
func NewV3S(x, y, z float64) *V3 { return &V3{x, y, z} }
