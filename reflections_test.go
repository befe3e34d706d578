/*
 * reflections_test.go, part of goCryst.
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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reflnHeader = `data_refl
_space_group_IT_number 1
_cell_length_a 10
_cell_length_b 10
_cell_length_c 10
_cell_angle_alpha 90
_cell_angle_beta 90
_cell_angle_gamma 90
`

func TestClassicDataSigmaPairing(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.F_meas_au
_refln.F_meas_sigma_au
1 0 0 12.5 0.5
0 2 0 8.25 0.25
0 0 3 4.75 0.125
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	require.Equal(t, 1, acc.Len())
	arr := acc.Get("_refln.F_meas_au")
	require.NotNil(t, arr)
	assert.Equal(t, 3, arr.Size())
	assert.Equal(t, []float64{12.5, 8.25, 4.75}, arr.FloatData)
	assert.Equal(t, []float64{0.5, 0.25, 0.125}, arr.Sigmas)
	assert.Equal(t, ObsAmplitude, arr.ObsType)
	assert.Equal(t, [3]int{1, 0, 0}, arr.Indices[0])
	assert.Equal(t, []string{"_refln.F_meas_au", "_refln.F_meas_sigma_au"}, arr.Labels)
	//raw copies are kept regardless of how columns were associated
	require.NotNil(t, acc.Raw("HKLs"))
	assert.Len(t, acc.Raw("HKLs").Indices, 3)
	require.NotNil(t, acc.Raw("F_meas_sigma_au"))
	assert.Equal(t, []float64{0.5, 0.25, 0.125}, acc.Raw("F_meas_sigma_au").Floats)
}

func TestClassicPlaceholderRowsExcluded(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.F_meas_au
1 0 0 12.5
0 2 0 ?
0 0 3 4.75
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	arr := acc.Get("_refln.F_meas_au")
	require.NotNil(t, arr)
	assert.Equal(t, 2, arr.Size())
	assert.Equal(t, [][3]int{{1, 0, 0}, {0, 0, 3}}, arr.Indices)
}

func TestClassicSizeMismatchIsNotFatal(t *testing.T) {
	//the sigma column loses a row to a placeholder, so it no longer
	//matches the data array; the pairing is skipped, nothing fails
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.F_meas_au
_refln.F_meas_sigma_au
1 0 0 12.5 0.5
0 2 0 8.25 ?
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	arr := acc.Get("_refln.F_meas_au")
	require.NotNil(t, arr)
	assert.Equal(t, 2, arr.Size())
	assert.Nil(t, arr.Sigmas)
}

func TestClassicAnomalousMerge(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.pdbx_F_plus
_refln.pdbx_F_minus
1 0 0 10.0 9.0
0 2 0 20.0 19.0
0 0 3 30.0 29.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	require.Equal(t, 1, acc.Len())
	arr := acc.Get(acc.Keys()[0])
	require.NotNil(t, arr)
	assert.True(t, arr.Anomalous)
	assert.Equal(t, 6, arr.Size())
	assert.Equal(t, ObsAmplitude, arr.ObsType)
	//the minus member contributes its reflections under negated indices
	assert.Equal(t, [3]int{1, 0, 0}, arr.Indices[0])
	assert.Equal(t, [3]int{-1, 0, 0}, arr.Indices[3])
	assert.Equal(t, 10.0, arr.FloatData[0])
	assert.Equal(t, 9.0, arr.FloatData[3])
}

func TestClassicWavelengthMultiplexing(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_diffrn_radiation_wavelength_id
_diffrn_radiation_wavelength
1 0.9795
2 1.5418
loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.wavelength_id
_refln.F_meas_au
1 0 0 1 12.5
0 2 0 1 8.25
0 0 3 2 4.75
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	a1 := acc.Get("_refln.F_meas_au_1")
	require.NotNil(t, a1)
	assert.Equal(t, 2, a1.Size())
	require.NotNil(t, a1.Wavelength)
	assert.InDelta(t, 0.9795, *a1.Wavelength, 1e-12)
	assert.Contains(t, a1.Labels, "wavelength_id=1")
	a2 := acc.Get("_refln.F_meas_au_2")
	require.NotNil(t, a2)
	assert.Equal(t, 1, a2.Size())
	require.NotNil(t, a2.Wavelength)
	assert.InDelta(t, 1.5418, *a2.Wavelength, 1e-12)
	//the id column itself becomes a plain unsplit integer array
	idArr := acc.Get("_refln.wavelength_id")
	require.NotNil(t, idArr)
	assert.Equal(t, []int{1, 1, 2}, idArr.IntData)
}

func TestClassicIntensityWavelength(t *testing.T) {
	//only amplitude arrays pick up the wavelength; intensities do not
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.wavelength_id
_refln.F_squared_meas
1 0 0 1 156.25
0 2 0 1 68.06
`)
	acc, err := BuildArrays(b, nil, map[int]float64{1: 1.5418}, StrategyClassic)
	require.NoError(t, err)
	arr := acc.Get("_refln.F_squared_meas_1")
	require.NotNil(t, arr)
	assert.Equal(t, ObsIntensity, arr.ObsType)
	assert.Nil(t, arr.Wavelength)
}

func TestClassicPhaseTransfer(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.FWT
_refln.PHWT
1 0 0 2.0 90.0
0 2 0 3.0 180.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	arr := acc.Get("_refln.FWT")
	require.NotNil(t, arr)
	require.True(t, arr.IsComplex())
	assert.InDelta(t, 0, real(arr.ComplexData[0]), 1e-12)
	assert.InDelta(t, 2, imag(arr.ComplexData[0]), 1e-12)
	assert.InDelta(t, -3, real(arr.ComplexData[1]), 1e-12)
	assert.Contains(t, arr.Labels, "_refln.PHWT")
}

func TestClassicHendricksonLattman(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.HL_A_iso
_refln.HL_B_iso
_refln.HL_C_iso
_refln.HL_D_iso
1 0 0 1.0 2.0 3.0 4.0
0 2 0 5.0 6.0 7.0 8.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	require.Equal(t, 1, acc.Len())
	arr := acc.Get("_refln.HL_A_iso")
	require.NotNil(t, arr)
	require.True(t, arr.IsHL())
	assert.Equal(t, [4]float64{1, 2, 3, 4}, arr.HLData[0])
	assert.Equal(t, [4]float64{5, 6, 7, 8}, arr.HLData[1])
	assert.Len(t, arr.Labels, 4)
}

func TestBuildArraysErrors(t *testing.T) {
	_, err := BuildArrays(parseBlock(t, reflnHeader+"_dummy 1\n"), nil, nil, StrategyClassic)
	code := errCode(t, err)
	assert.Equal(t, ErrNoReflectionData, code)
	assert.Equal(t, KindMissingData, code.Kind())

	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_l
_refln.F_meas_au
1 0 12.5
`)
	_, err = BuildArrays(b, nil, nil, StrategyClassic)
	assert.Equal(t, ErrMissingIndices, errCode(t, err))

	b = parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.F_meas_au
x 0 0 12.5
`)
	_, err = BuildArrays(b, nil, nil, StrategyClassic)
	assert.Equal(t, ErrInvalidIndex, errCode(t, err))
}

func TestBuildArraysBaseLabels(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.F_meas_au
1 0 0 12.5
`)
	info := &ArrayInfo{Labels: []string{"r1.cif"}}
	acc, err := BuildArrays(b, info, nil, StrategyClassic)
	require.NoError(t, err)
	arr := acc.Get("_refln.F_meas_au")
	require.NotNil(t, arr)
	assert.Equal(t, []string{"r1.cif", "_refln.F_meas_au"}, arr.Labels)
}

func TestPatternDataSigmaPairing(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln.index_h
_refln.index_k
_refln.index_l
_refln.FP
_refln.SIGFP
1 0 0 12.5 0.5
0 2 0 8.25 0.25
`)
	acc, err := BuildArrays(b, nil, nil, StrategyPattern)
	require.NoError(t, err)
	arr := acc.Get("_refln.FP,_refln.SIGFP")
	require.NotNil(t, arr)
	assert.Equal(t, []float64{12.5, 8.25}, arr.FloatData)
	assert.Equal(t, []float64{0.5, 0.25}, arr.Sigmas)
	assert.Equal(t, ObsAmplitude, arr.ObsType)
}

func TestPatternSigmaInfix(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln.index_h
_refln.index_k
_refln.index_l
_refln.F_meas_au
_refln.F_meas_sigma_au
1 0 0 12.5 0.5
`)
	acc, err := BuildArrays(b, nil, nil, StrategyPattern)
	require.NoError(t, err)
	arr := acc.Get("_refln.F_meas_au,_refln.F_meas_sigma_au")
	require.NotNil(t, arr)
	assert.Equal(t, []float64{0.5}, arr.Sigmas)
	assert.Equal(t, ObsAmplitude, arr.ObsType)
}

func TestPatternMapCoefficients(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln.index_h
_refln.index_k
_refln.index_l
_refln.FWT
_refln.PHWT
_refln.DELFWT
_refln.PHDELWT
1 0 0 2.0 90.0 1.0 0.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyPattern)
	require.NoError(t, err)
	arr := acc.Get("_refln.FWT,_refln.PHWT")
	require.NotNil(t, arr)
	require.True(t, arr.IsComplex())
	assert.InDelta(t, 2, imag(arr.ComplexData[0]), 1e-12)
	del := acc.Get("_refln.DELFWT,_refln.PHDELWT")
	require.NotNil(t, del)
	require.True(t, del.IsComplex())
	assert.InDelta(t, 1, real(del.ComplexData[0]), 1e-12)
}

func TestPatternHendricksonLattman(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln.index_h
_refln.index_k
_refln.index_l
_refln.HLA
_refln.HLB
_refln.HLC
_refln.HLD
1 0 0 1.0 2.0 3.0 4.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyPattern)
	require.NoError(t, err)
	arr := acc.Get("_refln.HLA,_refln.HLB,_refln.HLC,_refln.HLD")
	require.NotNil(t, arr)
	require.True(t, arr.IsHL())
	assert.Equal(t, [4]float64{1, 2, 3, 4}, arr.HLData[0])
}

func TestPatternQuestionMarkAsNaN(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln.index_h
_refln.index_k
_refln.index_l
_refln.FP
1 0 0 12.5
0 2 0 ?
`)
	acc, err := BuildArrays(b, nil, nil, StrategyPattern)
	require.NoError(t, err)
	arr := acc.Get("_refln.FP")
	require.NotNil(t, arr)
	require.Equal(t, 2, arr.Size(), "the ? row must be kept as NaN")
	assert.True(t, math.IsNaN(arr.FloatData[1]))
}

func TestPatternAnomalousMerge(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln.index_h
_refln.index_k
_refln.index_l
_refln.I(+)
_refln.I(-)
1 0 0 100.0 95.0
0 2 0 200.0 190.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyPattern)
	require.NoError(t, err)
	var merged *MillerArray
	for _, key := range acc.Keys() {
		if a := acc.Get(key); a.Anomalous {
			merged = a
		}
	}
	require.NotNil(t, merged, "no anomalous array in %v", acc.Keys())
	assert.Equal(t, 4, merged.Size())
	assert.Equal(t, ObsIntensity, merged.ObsType)
	assert.Equal(t, [3]int{-1, 0, 0}, merged.Indices[2])
}

func TestMergeIdempotent(t *testing.T) {
	b := parseBlock(t, reflnHeader+`loop_
_refln_index_h
_refln_index_k
_refln_index_l
_refln.pdbx_F_plus
_refln.pdbx_F_minus
1 0 0 10.0 9.0
`)
	acc, err := BuildArrays(b, nil, nil, StrategyClassic)
	require.NoError(t, err)
	before := acc.Len()
	mergeAnomalous(acc)
	assert.Equal(t, before, acc.Len(), "a second merge pass must change nothing")
}
