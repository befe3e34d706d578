/*
 * symmetry_test.go, part of goCryst.
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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gocryst/cif"
)

func parseBlock(t *testing.T, src string) *cif.Block {
	t.Helper()
	doc, err := cif.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, doc.First())
	return doc.First()
}

func errCode(t *testing.T, err error) Code {
	t.Helper()
	require.Error(t, err)
	code, ok := ErrorCode(err)
	require.True(t, ok, "error %v carries no code", err)
	return code
}

func TestBuildSymmetryFromOperators(t *testing.T) {
	b := parseBlock(t, `data_a
loop_
_space_group_symop_id
_space_group_symop_operation_xyz
1 x,y,z
2 -x,-y,-z
_cell_length_a 10
_cell_length_b 10
_cell_length_c 10
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`)
	cs, err := BuildSymmetry(b, true)
	require.NoError(t, err)
	require.NotNil(t, cs.SpaceGroup)
	assert.Equal(t, 2, cs.SpaceGroup.Order())
	require.NotNil(t, cs.UnitCell)
	assert.Equal(t, [6]float64{10, 10, 10, 90, 90, 90}, cs.UnitCell.Parameters())
}

func TestBuildSymmetryBadOperator(t *testing.T) {
	b := parseBlock(t, `data_a
_space_group_symop_operation_xyz 'x,y'
`)
	_, err := BuildSymmetry(b, true)
	assert.Equal(t, ErrSymOpParse, errCode(t, err))
	assert.Equal(t, KindParse, errCode(t, err).Kind())
}

func TestBuildSymmetryBadOperatorIDs(t *testing.T) {
	b := parseBlock(t, `data_a
loop_
_space_group_symop_id
_space_group_symop_operation_xyz
1 x,y,z
1 -x,-y,-z
`)
	_, err := BuildSymmetry(b, true)
	assert.Equal(t, ErrSymOpID, errCode(t, err))
}

func TestBuildSymmetrySymbolPriority(t *testing.T) {
	//the Hall symbol wins over H-M and number even when all are present
	b := parseBlock(t, `data_a
_space_group_name_Hall '-P 2ybc'
_symmetry_space_group_name_H-M 'P 1'
_space_group_IT_number 1
`)
	cs, err := BuildSymmetry(b, false)
	require.NoError(t, err)
	require.NotNil(t, cs.SpaceGroup)
	assert.Equal(t, 14, cs.SpaceGroup.Number())
	//an unparseable Hall symbol falls through to the H-M symbol
	b = parseBlock(t, `data_b
_space_group_name_Hall 'no such symbol'
_symmetry_space_group_name_H-M 'P 21 21 21'
`)
	cs, err = BuildSymmetry(b, false)
	require.NoError(t, err)
	require.NotNil(t, cs.SpaceGroup)
	assert.Equal(t, 19, cs.SpaceGroup.Number())
}

func TestBuildSymmetryStrictness(t *testing.T) {
	empty := parseBlock(t, "data_a\n_dummy 1\n")
	_, err := BuildSymmetry(empty, true)
	assert.Equal(t, ErrMissingSymmetry, errCode(t, err))

	cs, err := BuildSymmetry(empty, false)
	require.NoError(t, err)
	assert.Nil(t, cs.SpaceGroup)
	assert.Nil(t, cs.UnitCell)

	noCell := parseBlock(t, "data_a\n_space_group_IT_number 19\n")
	_, err = BuildSymmetry(noCell, true)
	code := errCode(t, err)
	assert.Equal(t, ErrMissingCell, code)
	assert.Equal(t, KindMissingData, code.Kind())
	assert.Contains(t, err.Error(), "Unit cell parameters not found")
}

func TestBuildSymmetryLoopedCellParameter(t *testing.T) {
	b := parseBlock(t, `data_a
_space_group_IT_number 19
loop_
_cell_length_a
5.1 5.2
_cell_length_b 6
_cell_length_c 7
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`)
	_, err := BuildSymmetry(b, true)
	assert.Equal(t, ErrMalformedCellParameter, errCode(t, err))
}

func TestBuildSymmetryUnknownAngles(t *testing.T) {
	//"?" angles default to 90 degrees; lengths cannot be defaulted
	b := parseBlock(t, `data_a
_space_group_IT_number 19
_cell_length_a 5
_cell_length_b 6
_cell_length_c 7
_cell_angle_alpha ?
_cell_angle_beta ?
_cell_angle_gamma ?
`)
	cs, err := BuildSymmetry(b, true)
	require.NoError(t, err)
	assert.Equal(t, [6]float64{5, 6, 7, 90, 90, 90}, cs.UnitCell.Parameters())
}

func TestBuildSymmetryUnknownLength(t *testing.T) {
	//a "?" length is an invalid cell, not a gap for symmetry constraints
	//to fill in: the cubic group here must not turn (5, ?, ?) into (5, 5, 5)
	b := parseBlock(t, `data_a
_space_group_IT_number 221
_cell_length_a 5
_cell_length_b ?
_cell_length_c ?
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`)
	_, err := BuildSymmetry(b, true)
	code := errCode(t, err)
	assert.Equal(t, ErrInvalidCell, code)
	assert.Contains(t, err.Error(), "_cell_length_b")
}

func TestBuildSymmetryCellInference(t *testing.T) {
	b := parseBlock(t, `data_a
_symmetry_space_group_name_H-M 'P 41'
_cell_length_a 43.5
_cell_length_c 79.2
`)
	cs, err := BuildSymmetry(b, true)
	require.NoError(t, err)
	assert.Equal(t, [6]float64{43.5, 43.5, 79.2, 90, 90, 90}, cs.UnitCell.Parameters())

	//without symmetry a partial cell cannot be completed
	b = parseBlock(t, `data_b
_cell_length_a 43.5
_cell_length_c 79.2
`)
	_, err = BuildSymmetry(b, false)
	code := errCode(t, err)
	assert.Equal(t, ErrIncompleteCell, code)
	assert.Equal(t, KindIncompleteData, code.Kind())
}

func TestBuildSymmetryInvalidCell(t *testing.T) {
	b := parseBlock(t, `data_a
_cell_length_a bogus
_cell_length_b 6
_cell_length_c 7
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`)
	_, err := BuildSymmetry(b, false)
	assert.Equal(t, ErrInvalidCell, errCode(t, err))
}

func TestBuildSymmetryESDStripped(t *testing.T) {
	b := parseBlock(t, `data_a
_cell_length_a 4.916(2)
_cell_length_b 4.916(2)
_cell_length_c 5.405(3)
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 120
`)
	cs, err := BuildSymmetry(b, false)
	require.NoError(t, err)
	assert.Equal(t, [6]float64{4.916, 4.916, 5.405, 90, 90, 120}, cs.UnitCell.Parameters())
}

func TestBuildSymmetryIncompatibleCell(t *testing.T) {
	b := parseBlock(t, `data_a
_space_group_IT_number 221
_cell_length_a 10
_cell_length_b 11
_cell_length_c 12
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`)
	_, err := BuildSymmetry(b, true)
	assert.Equal(t, ErrIncompatibleSymmetry, errCode(t, err))
}

func TestBuildSymmetryPrimitiveRetry(t *testing.T) {
	//rhombohedral cell parameters with an R symbol: the hexagonal-axes
	//group fails the metric check but its primitive setting passes
	b := parseBlock(t, `data_a
_symmetry_space_group_name_H-M 'R -3'
_cell_length_a 6
_cell_length_b 6
_cell_length_c 6
_cell_angle_alpha 95
_cell_angle_beta 95
_cell_angle_gamma 95
`)
	cs, err := BuildSymmetry(b, true)
	require.NoError(t, err)
	assert.Equal(t, 6, cs.SpaceGroup.Order())
	assert.Empty(t, cs.SpaceGroup.CentringVectors())
}

func TestJoinSymmetry(t *testing.T) {
	sgA, err := BuildSymmetry(parseBlock(t, "data_a\n_space_group_IT_number 19\n"), false)
	require.NoError(t, err)
	sgB, err := BuildSymmetry(parseBlock(t, `data_b
_space_group_IT_number 1
_cell_length_a 5
_cell_length_b 6
_cell_length_c 7
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`), false)
	require.NoError(t, err)
	forced := sgA.Join(sgB, true)
	assert.Equal(t, 1, forced.SpaceGroup.Number())
	require.NotNil(t, forced.UnitCell)
	gapFill := sgA.Join(sgB, false)
	assert.Equal(t, 19, gapFill.SpaceGroup.Number())
	require.NotNil(t, gapFill.UnitCell)
}
