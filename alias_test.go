/*
 * alias_test.go, part of goCryst.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindItemSynonyms(t *testing.T) {
	//the old small-molecule spelling resolves under the canonical tag
	b := parseBlock(t, `data_a
_symmetry_equiv_pos_as_xyz 'x,y,z'
_symmetry_space_group_name_H-M 'P 1'
_symmetry_Int_Tables_number 1
`)
	require.NotNil(t, findItem(b, "_space_group_symop_operation_xyz"))
	require.NotNil(t, findItem(b, "_space_group_name_H-M_alt"))
	require.NotNil(t, findItem(b, "_space_group_IT_number"))
	assert.Nil(t, findItem(b, "_space_group_name_Hall"))
	//mmCIF dotted spellings resolve too
	b = parseBlock(t, `data_b
_space_group_symop.operation_xyz 'x,y,z'
_cell.length_a 10
`)
	require.NotNil(t, findItem(b, "_space_group_symop_operation_xyz"))
	v, ok := findScalar(b, "_cell_length_a")
	require.True(t, ok)
	assert.Equal(t, "10", v)
}

func TestFindScalarRejectsColumns(t *testing.T) {
	b := parseBlock(t, `data_a
loop_
_space_group_name_Hall
'P 1' '-P 1'
`)
	_, ok := findScalar(b, "_space_group_name_Hall")
	assert.False(t, ok)
}

func TestGetWavelengths(t *testing.T) {
	b := parseBlock(t, `data_a
loop_
_diffrn_radiation_wavelength_id
_diffrn_radiation_wavelength
1 0.9795
2 1.5418
3 ?
`)
	wl, err := GetWavelengths(b)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 0.9795, 2: 1.5418}, wl)

	b = parseBlock(t, "data_b\n_diffrn_radiation_wavelength 0.71073\n")
	wl, err = GetWavelengths(b)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 0.71073}, wl)

	b = parseBlock(t, "data_c\n_dummy 1\n")
	wl, err = GetWavelengths(b)
	require.NoError(t, err)
	assert.Nil(t, wl)
}
