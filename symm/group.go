/*
 * group.go, part of goCryst.
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
	"sort"

	"gonum.org/v1/gonum/mat"
)

//maxOrder is the order of the largest crystallographic space group in a
//conventional setting (Fm-3m and friends: 48 point operations times the
//4 centring vectors of an F lattice).
const maxOrder = 192

// SpaceGroup is a crystallographic space group: the closed set of symmetry
// operators generated from whatever operators were fed to Expand. The
// identity is always present. The symbol and number fields are only set
// when the group was built from one of the symbol tables.
type SpaceGroup struct {
	ops    []RTMx
	seen   map[RTMx]bool
	symbol string
	number int
}

// NewSpaceGroup returns the trivial group P1.
func NewSpaceGroup() *SpaceGroup {
	sg := &SpaceGroup{seen: make(map[RTMx]bool)}
	sg.add(Identity())
	return sg
}

func (sg *SpaceGroup) add(op RTMx) {
	if !sg.seen[op] {
		sg.seen[op] = true
		sg.ops = append(sg.ops, op)
	}
}

// Expand adds a generator to the group and closes it again under
// composition. It returns an error if the resulting set cannot be a
// crystallographic group (closure exceeds the maximum possible order, or
// the generator rotation is not crystallographic).
func (sg *SpaceGroup) Expand(gen RTMx) error {
	if gen.RotationType() == 0 {
		return errorf("symm: %s is not a crystallographic operator", gen)
	}
	sg.add(gen)
	//keep multiplying until no new operators appear
	for i := 0; i < len(sg.ops); i++ {
		for j := 0; j < len(sg.ops); j++ {
			sg.add(sg.ops[i].Mul(sg.ops[j]))
			if len(sg.ops) > maxOrder {
				return errorf("symm: operators do not close into a crystallographic group (order > %d)", maxOrder)
			}
		}
	}
	return nil
}

// Ops returns the operators of the group. The identity is first; the rest
// follow insertion order. The slice must not be modified.
func (sg *SpaceGroup) Ops() []RTMx { return sg.ops }

// Order returns the number of operators in the group, centring included.
func (sg *SpaceGroup) Order() int { return len(sg.ops) }

// Contains reports whether op is in the group.
func (sg *SpaceGroup) Contains(op RTMx) bool { return sg.seen[op.normalize()] }

// Equal reports whether the two groups hold exactly the same operator set.
func (sg *SpaceGroup) Equal(o *SpaceGroup) bool {
	if sg.Order() != o.Order() {
		return false
	}
	for _, op := range sg.ops {
		if !o.seen[op] {
			return false
		}
	}
	return true
}

// CentringVectors returns the pure lattice translations of the group other
// than the trivial one, in twelfths.
func (sg *SpaceGroup) CentringVectors() [][3]int {
	var out [][3]int
	for _, op := range sg.ops {
		if op.IsUnitRotation() && op.T != [3]int{} {
			out = append(out, op.T)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0]*144+out[i][1]*12+out[i][2] < out[j][0]*144+out[j][1]*12+out[j][2]
	})
	return out
}

// String returns the group's symbol when it came from a table, or a
// generic description otherwise.
func (sg *SpaceGroup) String() string {
	if sg.symbol != "" {
		return sg.symbol
	}
	return fmt.Sprintf("space group of order %d", sg.Order())
}

// Number returns the International Tables number of the group when known,
// otherwise 0.
func (sg *SpaceGroup) Number() int { return sg.number }

//compatibility tolerance: relative deviation allowed between the metric
//tensor and its image under a symmetry rotation.
const metricTol = 1e-4

// IsCompatibleUnitCell reports whether the cell metric is invariant under
// every rotation of the group, i.e. whether the cell actually has the
// symmetry the group demands (a cubic group needs a=b=c and 90-degree
// angles, and so on).
func (sg *SpaceGroup) IsCompatibleUnitCell(cell *UnitCell) bool {
	g := cell.Metric()
	scale := math.Max(g.At(0, 0), math.Max(g.At(1, 1), g.At(2, 2)))
	var rg, rtgr mat.Dense
	for _, op := range sg.ops {
		r := op.rotationDense()
		rg.Mul(g, r)
		rtgr.Mul(r.T(), &rg)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				if math.Abs(rtgr.At(i, j)-g.At(i, j)) > metricTol*scale {
					return false
				}
			}
		}
	}
	return true
}

func (m RTMx) rotationDense() *mat.Dense {
	d := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			d.Set(i, j, float64(m.R[3*i+j]))
		}
	}
	return d
}

//basis matrices for the primitive setting of each centring type: rows are
//the primitive basis vectors expressed in the centred basis.
var primitiveBasis = map[string][9]float64{
	"A": {1, 0, 0, 0, 0.5, 0.5, 0, -0.5, 0.5},
	"B": {0.5, 0, 0.5, 0, 1, 0, -0.5, 0, 0.5},
	"C": {0.5, -0.5, 0, 0.5, 0.5, 0, 0, 0, 1},
	"I": {-0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5, -0.5},
	"F": {0, 0.5, 0.5, 0.5, 0, 0.5, 0.5, 0.5, 0},
	"R": {2. / 3, 1. / 3, 1. / 3, -1. / 3, 1. / 3, 1. / 3, -1. / 3, -2. / 3, 1. / 3},
}

func centringType(vecs [][3]int) string {
	has := func(v [3]int) bool {
		for _, w := range vecs {
			if w == v {
				return true
			}
		}
		return false
	}
	switch {
	case has([3]int{6, 6, 6}) && len(vecs) == 1:
		return "I"
	case has([3]int{0, 6, 6}) && has([3]int{6, 0, 6}) && has([3]int{6, 6, 0}):
		return "F"
	case has([3]int{0, 6, 6}) && len(vecs) == 1:
		return "A"
	case has([3]int{6, 0, 6}) && len(vecs) == 1:
		return "B"
	case has([3]int{6, 6, 0}) && len(vecs) == 1:
		return "C"
	case has([3]int{8, 4, 4}) && has([3]int{4, 8, 8}):
		return "R"
	}
	return ""
}

// PrimitiveSetting returns the group re-expressed in a primitive basis.
// For a group that is already primitive it returns the receiver. The
// symbol and number of a table-built group do not carry over, since the
// primitive setting is a different setting.
func (sg *SpaceGroup) PrimitiveSetting() (*SpaceGroup, error) {
	vecs := sg.CentringVectors()
	if len(vecs) == 0 {
		return sg, nil
	}
	ctype := centringType(vecs)
	if ctype == "" {
		return nil, errorf("symm: unrecognized centring vectors %v", vecs)
	}
	basis := primitiveBasis[ctype]
	m := mat.NewDense(3, 3, basis[:])
	//fractional coordinates transform with Q = inverse transpose of the
	//basis matrix: x' = Q x, so R' = Q R Q^-1 and t' = Q t.
	var q, qinv mat.Dense
	if err := q.Inverse(m.T()); err != nil {
		return nil, errorf("symm: singular primitive basis for centring %s", ctype)
	}
	qinv.CloneFrom(m.T())
	prim := NewSpaceGroup()
	var tmp, rp mat.Dense
	for _, op := range sg.ops {
		tmp.Mul(op.rotationDense(), &qinv)
		rp.Mul(&q, &tmp)
		var out RTMx
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				v := rp.At(i, j)
				r := math.Round(v)
				if math.Abs(v-r) > 1e-6 {
					return nil, errorf("symm: operator %s has a non-integral rotation in the primitive setting", op)
				}
				out.R[3*i+j] = int(r)
			}
			t := q.At(i, 0)*float64(op.T[0]) + q.At(i, 1)*float64(op.T[1]) + q.At(i, 2)*float64(op.T[2])
			r := math.Round(t)
			if math.Abs(t-r) > 1e-6 {
				return nil, errorf("symm: operator %s has a translation outside 1/%d in the primitive setting", op, TrDen)
			}
			out.T[i] = int(r)
		}
		prim.add(out.normalize())
	}
	return prim, nil
}
