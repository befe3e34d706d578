/*
 * system.go, part of goCryst.
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

// CrystalSystem is one of the seven crystal systems.
type CrystalSystem int

const (
	Triclinic CrystalSystem = iota
	Monoclinic
	Orthorhombic
	Tetragonal
	Trigonal
	Hexagonal
	Cubic
)

func (cs CrystalSystem) String() string {
	return [...]string{"triclinic", "monoclinic", "orthorhombic",
		"tetragonal", "trigonal", "hexagonal", "cubic"}[cs]
}

// CrystalSystem classifies the group by the rotation types present among
// its distinct rotation parts.
func (sg *SpaceGroup) CrystalSystem() CrystalSystem {
	n := sg.rotationTypeCounts()
	switch {
	case n[3] >= 8:
		return Cubic
	case n[6] > 0:
		return Hexagonal
	case n[3] > 0:
		return Trigonal
	case n[4] > 0:
		return Tetragonal
	case n[2] >= 3:
		return Orthorhombic
	case n[2] > 0:
		return Monoclinic
	}
	return Triclinic
}

// rotationTypeCounts counts the distinct rotation parts of each absolute
// rotation type (a mirror counts as a twofold, and so on).
func (sg *SpaceGroup) rotationTypeCounts() map[int]int {
	seen := make(map[[9]int]bool)
	counts := make(map[int]int)
	for _, op := range sg.ops {
		if seen[op.R] {
			continue
		}
		seen[op.R] = true
		t := op.RotationType()
		if t < 0 {
			t = -t
		}
		counts[t]++
	}
	return counts
}

// properRotation returns the proper rotation associated with the operator:
// the rotation part itself, or its negation for a rotoinversion.
func (m RTMx) properRotation() [9]int {
	r := m.R
	if m.Det() < 0 {
		for i := range r {
			r[i] = -r[i]
		}
	}
	return r
}

// axisDirection returns a lattice direction along the rotation axis of a
// proper rotation of the given type, as any nonzero column of
// sum_{k=0}^{type-1} R^k (which projects onto the axis). The zero vector
// is returned for the identity.
func axisDirection(r [9]int, rotType int) [3]int {
	acc := [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}
	pow := [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}
	for k := 1; k < rotType; k++ {
		var next [9]int
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				s := 0
				for l := 0; l < 3; l++ {
					s += pow[3*i+l] * r[3*l+j]
				}
				next[3*i+j] = s
			}
		}
		pow = next
		for i := range acc {
			acc[i] += pow[i]
		}
	}
	for j := 0; j < 3; j++ {
		col := [3]int{acc[j], acc[3+j], acc[6+j]}
		if col != [3]int{} {
			return reduceDirection(col)
		}
	}
	return [3]int{}
}

func reduceDirection(v [3]int) [3]int {
	g := 0
	abs := func(x int) int {
		if x < 0 {
			return -x
		}
		return x
	}
	gcd := func(a, b int) int {
		for b != 0 {
			a, b = b, a%b
		}
		return a
	}
	for _, x := range v {
		g = gcd(g, abs(x))
	}
	if g > 1 {
		for i := range v {
			v[i] /= g
		}
	}
	//fix overall sign so the first nonzero component is positive
	for _, x := range v {
		if x > 0 {
			break
		}
		if x < 0 {
			for i := range v {
				v[i] = -v[i]
			}
			break
		}
	}
	return v
}

// principalAxis returns the direction of the first rotation of the given
// absolute type found in the group, or false if there is none.
func (sg *SpaceGroup) principalAxis(rotType int) ([3]int, bool) {
	for _, op := range sg.ops {
		t := op.RotationType()
		if t == rotType || t == -rotType {
			return axisDirection(op.properRotation(), rotType), true
		}
	}
	return [3]int{}, false
}

//a cell constraint slot is either free (the parameter must be given),
//fixed to a value, or a copy of an earlier parameter.
type cellSlot struct {
	fixed  float64
	copyOf int
	free   bool
}

// cellConstraints returns the constraint pattern the group's crystal
// system imposes on the six cell parameters, in the order
// (a, b, c, alpha, beta, gamma).
func (sg *SpaceGroup) cellConstraints() ([6]cellSlot, error) {
	freeS := cellSlot{free: true}
	fix := func(v float64) cellSlot { return cellSlot{fixed: v, copyOf: -1} }
	cp := func(i int) cellSlot { return cellSlot{copyOf: i} }
	switch sys := sg.CrystalSystem(); sys {
	case Triclinic:
		return [6]cellSlot{freeS, freeS, freeS, freeS, freeS, freeS}, nil
	case Monoclinic:
		axis, _ := sg.principalAxis(2)
		switch axis {
		case [3]int{1, 0, 0}:
			return [6]cellSlot{freeS, freeS, freeS, freeS, fix(90), fix(90)}, nil
		case [3]int{0, 1, 0}:
			return [6]cellSlot{freeS, freeS, freeS, fix(90), freeS, fix(90)}, nil
		case [3]int{0, 0, 1}:
			return [6]cellSlot{freeS, freeS, freeS, fix(90), fix(90), freeS}, nil
		}
		return [6]cellSlot{}, errorf("symm: monoclinic group with a non-axial twofold, cannot constrain the cell")
	case Orthorhombic:
		return [6]cellSlot{freeS, freeS, freeS, fix(90), fix(90), fix(90)}, nil
	case Tetragonal:
		return [6]cellSlot{freeS, cp(0), freeS, fix(90), fix(90), fix(90)}, nil
	case Trigonal:
		axis, _ := sg.principalAxis(3)
		if axis == [3]int{1, 1, 1} {
			//rhombohedral axes
			return [6]cellSlot{freeS, cp(0), cp(0), freeS, cp(3), cp(3)}, nil
		}
		fallthrough
	case Hexagonal:
		return [6]cellSlot{freeS, cp(0), freeS, fix(90), fix(90), fix(120)}, nil
	case Cubic:
		return [6]cellSlot{freeS, cp(0), cp(0), fix(90), fix(90), fix(90)}, nil
	}
	return [6]cellSlot{}, errorf("symm: unclassifiable group")
}

// InferUnitCell completes a partially given set of cell parameters
// (a, b, c, alpha, beta, gamma; nil means not given) using the metric
// constraints of the group's crystal system: a cubic group forces b=c=a
// and 90-degree angles, and so on. Parameters the constraints leave free
// must be given; an error is returned otherwise. Given values for
// constrained slots are kept as given (a later compatibility check will
// catch contradictions).
func InferUnitCell(sg *SpaceGroup, given [6]*float64) (*UnitCell, error) {
	slots, err := sg.cellConstraints()
	if err != nil {
		return nil, err
	}
	var p [6]float64
	for i := 0; i < 6; i++ {
		switch {
		case given[i] != nil:
			p[i] = *given[i]
		case slots[i].free:
			return nil, errorf("symm: cell parameter %d is not constrained by the %s symmetry and was not given",
				i, sg.CrystalSystem())
		case slots[i].copyOf >= 0 && slots[i].copyOf != i:
			p[i] = p[slots[i].copyOf]
		default:
			p[i] = slots[i].fixed
		}
	}
	return NewUnitCell(p)
}
