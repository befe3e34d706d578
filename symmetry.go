/*
 * symmetry.go, part of goCryst.
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

package cryst

import (
	"strconv"
	"strings"

	"github.com/rmera/gocryst/cif"
	"github.com/rmera/gocryst/symm"
)

// CrystalSymmetry pairs a space group with a unit cell. Either component
// may be nil when the source block did not define it and the builder ran
// in non-strict mode.
type CrystalSymmetry struct {
	SpaceGroup *symm.SpaceGroup
	UnitCell   *symm.UnitCell
}

// Join merges two symmetries. Non-nil components of other win over those
// of the receiver when force is true, and only fill nil gaps otherwise.
// The receiver is not modified.
func (cs *CrystalSymmetry) Join(other *CrystalSymmetry, force bool) *CrystalSymmetry {
	out := &CrystalSymmetry{}
	if cs != nil {
		out.SpaceGroup = cs.SpaceGroup
		out.UnitCell = cs.UnitCell
	}
	if other == nil {
		return out
	}
	if other.SpaceGroup != nil && (force || out.SpaceGroup == nil) {
		out.SpaceGroup = other.SpaceGroup
	}
	if other.UnitCell != nil && (force || out.UnitCell == nil) {
		out.UnitCell = other.UnitCell
	}
	return out
}

// BuildSymmetry extracts the crystal symmetry from a CIF block: the space
// group from explicit operators or, failing that, from the Hall symbol,
// the Hermann-Mauguin symbol or the International Tables number, and the
// unit cell from the six cell parameters, inferring symmetry-constrained
// ones when only some are given. In strict mode a block without symmetry
// instructions, or without any cell parameter, is an error; otherwise the
// corresponding component is left nil.
func BuildSymmetry(block *cif.Block, strict bool) (*CrystalSymmetry, error) {
	sg, err := buildSpaceGroup(block, strict)
	if err != nil {
		return nil, errDecorate(err, "BuildSymmetry")
	}
	cell, err := buildUnitCell(block, sg, strict)
	if err != nil {
		return nil, errDecorate(err, "BuildSymmetry")
	}
	if sg != nil && cell != nil && !sg.IsCompatibleUnitCell(cell) {
		//a centred group can still match the cell in its primitive setting
		prim, perr := sg.PrimitiveSetting()
		if perr != nil || !prim.IsCompatibleUnitCell(cell) {
			return nil, newError(ErrIncompatibleSymmetry,
				"Space group is incompatible with unit cell parameters: %s %s", sg, cell)
		}
		sg = prim
	}
	return &CrystalSymmetry{SpaceGroup: sg, UnitCell: cell}, nil
}

func buildSpaceGroup(block *cif.Block, strict bool) (*symm.SpaceGroup, error) {
	if ops := findItem(block, "_space_group_symop_operation_xyz"); ops != nil {
		return spaceGroupFromOps(block, ops)
	}
	if hall, ok := findScalar(block, "_space_group_name_Hall"); ok && !isPlaceholder(hall) {
		if sg, err := symm.FromHall(hall); err == nil {
			return sg, nil
		}
	}
	if hm, ok := findScalar(block, "_space_group_name_H-M_alt"); ok && !isPlaceholder(hm) {
		if sg, err := symm.FromHM(strings.Trim(hm, `'"`)); err == nil {
			return sg, nil
		}
	}
	if num, ok := findScalar(block, "_space_group_IT_number"); ok && !isPlaceholder(num) {
		if n, err := strconv.Atoi(strings.Trim(num, `'"`)); err == nil {
			if sg, err := symm.FromNumber(n); err == nil {
				return sg, nil
			}
		}
	}
	if strict {
		return nil, newError(ErrMissingSymmetry,
			"No symmetry instructions could be extracted from the cif block")
	}
	return nil, nil
}

func spaceGroupFromOps(block *cif.Block, ops *cif.Item) (*symm.SpaceGroup, error) {
	xyz := ops.Strings()
	if ids := findItem(block, "_space_group_symop_id"); ids != nil {
		if err := checkSymOpIDs(ids.Strings(), len(xyz)); err != nil {
			return nil, err
		}
	}
	sg := symm.NewSpaceGroup()
	for _, s := range xyz {
		op, err := symm.ParseRTMx(strings.Trim(s, `'"`))
		if err != nil {
			return nil, newError(ErrSymOpParse, "Error interpreting symmetry operator: %s", s)
		}
		if err := sg.Expand(op); err != nil {
			return nil, newError(ErrSymOpParse, "Error interpreting symmetry operator: %s", s)
		}
	}
	return sg, nil
}

//operator identifiers, when given, must be unique positive integers and
//as numerous as the operators themselves.
func checkSymOpIDs(ids []string, nops int) error {
	if len(ids) != nops {
		return newError(ErrSymOpID,
			"Error interpreting symmetry operator ids: %d ids for %d operators", len(ids), nops)
	}
	seen := make(map[int]bool, len(ids))
	for _, s := range ids {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || seen[n] {
			return newError(ErrSymOpID, "Error interpreting symmetry operator id: %s", s)
		}
		seen[n] = true
	}
	return nil
}

var cellTags = [6]string{
	"_cell_length_a", "_cell_length_b", "_cell_length_c",
	"_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma",
}

func buildUnitCell(block *cif.Block, sg *symm.SpaceGroup, strict bool) (*symm.UnitCell, error) {
	var raw [6]string
	var present [6]bool
	n := 0
	for i, tag := range cellTags {
		it := findItem(block, tag)
		if it == nil {
			continue
		}
		if it.IsColumn() {
			return nil, newError(ErrMalformedCellParameter,
				"Data item %s cannot be declared in a looped list", tag)
		}
		v := it.Scalar()
		if isPlaceholder(v) {
			if i < 3 {
				//unknown angles default to 90 degrees below, but a length
				//cannot be defaulted or inferred away once declared
				return nil, newError(ErrInvalidCell,
					"Invalid unit cell parameters are given: %s=%s", tag, v)
			}
			v = "90"
		}
		raw[i] = v
		present[i] = true
		n++
	}
	switch {
	case n == 0:
		if strict {
			return nil, newError(ErrMissingCell, "Unit cell parameters not found in the cif file")
		}
		return nil, nil
	case n == 6:
		var p [6]float64
		for i := 0; i < 6; i++ {
			f, err := floatFromString(raw[i])
			if err != nil {
				return nil, newError(ErrInvalidCell,
					"Invalid unit cell parameters are given: %s=%s", cellTags[i], raw[i])
			}
			p[i] = f
		}
		cell, err := symm.NewUnitCell(p)
		if err != nil {
			return nil, newError(ErrInvalidCell, "Invalid unit cell parameters are given: %v", err)
		}
		return cell, nil
	}
	//partial cell: symmetry constraints may pin down the missing values
	if sg == nil {
		return nil, newError(ErrIncompleteCell,
			"Not all unit cell parameters are given in the cif file")
	}
	var given [6]*float64
	for i := 0; i < 6; i++ {
		if !present[i] {
			continue
		}
		f, err := floatFromString(raw[i])
		if err != nil {
			return nil, newError(ErrInvalidCell,
				"Invalid unit cell parameters are given: %s=%s", cellTags[i], raw[i])
		}
		f2 := f
		given[i] = &f2
	}
	cell, err := symm.InferUnitCell(sg, given)
	if err != nil {
		return nil, newError(ErrIncompleteCell,
			"Not all unit cell parameters are given in the cif file: %v", err)
	}
	return cell, nil
}
