/*
 * cell.go, part of goCryst.
 *
 * Copyright 2025 rmeraaatacademicosdotutadotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goCryst is developed at Universidad de Tarapaca (UTA)
 *
 */

package symm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// UnitCell is the metric of a crystal lattice: the three cell edges in
// Angstrom and the three angles in degrees. A UnitCell is immutable once
// built and is only constructed through NewUnitCell, which guarantees that
// the metric tensor is positive definite.
type UnitCell struct {
	p    [6]float64
	g    *mat.SymDense
	orth *mat.Dense
	frac *mat.Dense
	vol  float64
}

const degToRad = math.Pi / 180

// NewUnitCell builds a unit cell from the parameters (a, b, c, alpha,
// beta, gamma). It returns an error for non-positive lengths, angles
// outside (0, 180), or a combination of angles that does not describe a
// physically possible lattice (non-positive-definite metric).
func NewUnitCell(p [6]float64) (*UnitCell, error) {
	for i := 0; i < 3; i++ {
		if !(p[i] > 0) {
			return nil, errorf("symm: unit cell length %c=%g must be positive", "abc"[i], p[i])
		}
		if !(p[i+3] > 0) || !(p[i+3] < 180) {
			return nil, errorf("symm: unit cell angle %g out of range (0,180)", p[i+3])
		}
	}
	a, b, c := p[0], p[1], p[2]
	ca, cb, cg := math.Cos(p[3]*degToRad), math.Cos(p[4]*degToRad), math.Cos(p[5]*degToRad)
	sg := math.Sin(p[5] * degToRad)
	g := mat.NewSymDense(3, []float64{
		a * a, a * b * cg, a * c * cb,
		a * b * cg, b * b, b * c * ca,
		a * c * cb, b * c * ca, c * c,
	})
	var chol mat.Cholesky
	if ok := chol.Factorize(g); !ok {
		return nil, errorf("symm: unit cell (%g, %g, %g, %g, %g, %g) has a non-positive-definite metric",
			p[0], p[1], p[2], p[3], p[4], p[5])
	}
	vsq := 1 - ca*ca - cb*cb - cg*cg + 2*ca*cb*cg
	vol := a * b * c * math.Sqrt(vsq)
	//standard PDB orthogonalization convention: a along x, b in the xy plane
	orth := mat.NewDense(3, 3, []float64{
		a, b * cg, c * cb,
		0, b * sg, c * (ca - cb*cg) / sg,
		0, 0, vol / (a * b * sg),
	})
	frac := mat.NewDense(3, 3, nil)
	if err := frac.Inverse(orth); err != nil {
		return nil, errorf("symm: unit cell (%g, %g, %g, %g, %g, %g): %v",
			p[0], p[1], p[2], p[3], p[4], p[5], err)
	}
	return &UnitCell{p: p, g: g, orth: orth, frac: frac, vol: vol}, nil
}

// Parameters returns (a, b, c, alpha, beta, gamma).
func (u *UnitCell) Parameters() [6]float64 { return u.p }

// Metric returns the real-space metric tensor G, with G[i][j] the dot
// product of cell vectors i and j. The returned matrix must not be
// modified.
func (u *UnitCell) Metric() *mat.SymDense { return u.g }

// Volume returns the cell volume.
func (u *UnitCell) Volume() float64 { return u.vol }

// Orthogonalize converts fractional to cartesian coordinates.
func (u *UnitCell) Orthogonalize(f [3]float64) [3]float64 {
	return matVec(u.orth, f)
}

// Fractionalize converts cartesian to fractional coordinates.
func (u *UnitCell) Fractionalize(x [3]float64) [3]float64 {
	return matVec(u.frac, x)
}

func matVec(m *mat.Dense, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m.At(i, 0)*v[0] + m.At(i, 1)*v[1] + m.At(i, 2)*v[2]
	}
	return out
}

// ReciprocalLengths returns the lengths a*, b*, c* of the reciprocal cell
// vectors. They are needed to convert ADPs between the CIF (u_cif) and the
// dimensionless (u_star) conventions.
func (u *UnitCell) ReciprocalLengths() [3]float64 {
	//rows of the fractionalization matrix are the reciprocal vectors
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = math.Sqrt(u.frac.At(i, 0)*u.frac.At(i, 0) +
			u.frac.At(i, 1)*u.frac.At(i, 1) +
			u.frac.At(i, 2)*u.frac.At(i, 2))
	}
	return out
}

// IsSimilar reports whether the two cells agree within relative tolerance
// rtol on the lengths and atol degrees on the angles.
func (u *UnitCell) IsSimilar(o *UnitCell, rtol, atol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(u.p[i]-o.p[i]) > rtol*math.Max(u.p[i], o.p[i]) {
			return false
		}
		if math.Abs(u.p[i+3]-o.p[i+3]) > atol {
			return false
		}
	}
	return true
}

func (u *UnitCell) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g, %g, %g)",
		u.p[0], u.p[1], u.p[2], u.p[3], u.p[4], u.p[5])
}
