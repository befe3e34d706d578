/*
 * numeric_test.go, part of goCryst.
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

func TestFloatFromString(t *testing.T) {
	for _, c := range []struct {
		in   string
		want float64
	}{
		{"4.983", 4.983},
		{"4.983(2)", 4.983},
		{"'4.983(2)'", 4.983},
		{"-1.5e-3", -0.0015},
	} {
		got, err := floatFromString(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
	_, err := floatFromString("abc")
	code := errCode(t, err)
	assert.Equal(t, ErrInvalidValue, code)
	assert.Contains(t, err.Error(), "abc")
}

func TestFloatColumnElseNil(t *testing.T) {
	assert.Equal(t, []float64{1.5, 2.5}, floatColumnElseNil([]string{"1.5", "2.5"}))
	assert.Nil(t, floatColumnElseNil(nil))
	assert.Nil(t, floatColumnElseNil([]string{"1.5", "?"}))
	assert.Nil(t, floatColumnElseNil([]string{"1.5", "bad"}))
}

func TestIntColumnPlaceholders(t *testing.T) {
	vals, valid, err := intColumn([]string{"1", "?", "2"}, "_id")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2}, vals)
	assert.Equal(t, []bool{true, false, true}, valid)
	vals, valid, err = intColumn([]string{"?", "?"}, "_id")
	require.NoError(t, err)
	assert.Nil(t, vals)
	assert.Nil(t, valid)
	_, _, err = intColumn([]string{"1", "x"}, "_id")
	assert.Equal(t, ErrInvalidValue, errCode(t, err))
}

func TestStripOxidationState(t *testing.T) {
	for in, want := range map[string]string{
		"Ca2+": "Ca",
		"O2-":  "O",
		"Fe3+": "Fe",
		"C":    "C",
		"N0-":  "N",
		"H+":   "H+", //a bare sign with no digits is left alone
		"D-":   "D-",
	} {
		assert.Equal(t, want, stripOxidationState(in), in)
	}
}

func TestArrayCollectionOrder(t *testing.T) {
	acc := NewArrayCollection()
	a := &MillerArray{}
	b := &MillerArray{}
	require.True(t, acc.SetDefault("one", a))
	require.False(t, acc.SetDefault("one", b), "SetDefault must not overwrite")
	assert.Same(t, a, acc.Get("one"))
	acc.SetDefault("two", b)
	assert.Equal(t, []string{"one", "two"}, acc.Keys())
	acc.Delete("one")
	acc.SetDefault("one", a)
	assert.Equal(t, []string{"two", "one"}, acc.Keys(), "re-added keys go to the end")
	acc.Set("two", a)
	assert.Equal(t, []string{"two", "one"}, acc.Keys(), "Set keeps the position")
}
