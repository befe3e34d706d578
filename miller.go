/*
 * miller.go, part of goCryst.
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
	"math/cmplx"
)

// ObservationType says what physical quantity an array holds, when known.
type ObservationType int

const (
	ObsUnknown ObservationType = iota
	ObsAmplitude
	ObsIntensity
)

func (t ObservationType) String() string {
	return [...]string{"unknown", "amplitude", "intensity"}[t]
}

// MillerArray is a set of reflections: Miller indices plus exactly one
// data channel (floats, integers, complex structure factors,
// Hendrickson-Lattman coefficient quads, or uninterpreted strings), with
// optional sigmas. HL quads are ordered (A, B, C, D).
type MillerArray struct {
	Symmetry    *CrystalSymmetry
	Indices     [][3]int
	FloatData   []float64
	IntData     []int
	ComplexData []complex128
	HLData      [][4]float64
	StringData  []string
	Sigmas      []float64
	Anomalous   bool
	ObsType     ObservationType
	Wavelength  *float64
	Labels      []string
}

// Size returns the number of reflections in the array.
func (ma *MillerArray) Size() int { return len(ma.Indices) }

// IsReal reports whether the data channel is floating point.
func (ma *MillerArray) IsReal() bool { return ma.FloatData != nil }

// IsInteger reports whether the data channel is integer.
func (ma *MillerArray) IsInteger() bool { return ma.IntData != nil }

// IsComplex reports whether the data channel is complex.
func (ma *MillerArray) IsComplex() bool { return ma.ComplexData != nil }

// IsHL reports whether the data channel holds Hendrickson-Lattman quads.
func (ma *MillerArray) IsHL() bool { return ma.HLData != nil }

// IsString reports whether the data channel was left as strings.
func (ma *MillerArray) IsString() bool { return ma.StringData != nil }

// floatData coerces the data channel to floats: real data is returned as
// is and integer data is converted. Anything else is an error naming the
// array.
func (ma *MillerArray) floatData(key string) ([]float64, error) {
	switch {
	case ma.FloatData != nil:
		return ma.FloatData, nil
	case ma.IntData != nil:
		out := make([]float64, len(ma.IntData))
		for i, v := range ma.IntData {
			out[i] = float64(v)
		}
		return out, nil
	}
	return nil, newError(ErrInvalidValue, "Invalid data type for %s", key)
}

//promoteToFloat converts an integer channel to floats in place; amplitude
//and intensity arrays are always floating point.
func (ma *MillerArray) promoteToFloat() {
	if ma.IntData == nil {
		return
	}
	out := make([]float64, len(ma.IntData))
	for i, v := range ma.IntData {
		out[i] = float64(v)
	}
	ma.FloatData = out
	ma.IntData = nil
}

// PhaseTransfer combines the array's magnitudes with the given phases into
// a complex array: |F| exp(i phi). deg says whether the phases are in
// degrees rather than radians. The receiver must hold real or integer
// data of the same length as phases.
func (ma *MillerArray) PhaseTransfer(phases []float64, deg bool) (*MillerArray, error) {
	mags, err := ma.floatData("phase transfer")
	if err != nil {
		return nil, errDecorate(err, "PhaseTransfer")
	}
	if len(mags) != len(phases) {
		return nil, newError(ErrInvalidValue,
			"Phase transfer with %d phases for %d data", len(phases), len(mags))
	}
	data := make([]complex128, len(mags))
	for i := range mags {
		phi := phases[i]
		if deg {
			phi *= math.Pi / 180
		}
		data[i] = cmplx.Rect(mags[i], phi)
	}
	out := *ma
	out.FloatData, out.IntData, out.Sigmas = nil, nil, nil
	out.ComplexData = data
	return &out, nil
}

//concatAnomalous merges a Friedel pair of arrays into one anomalous array:
//the minus member contributes its reflections under negated indices. The
//two arrays must hold the same channel type.
func concatAnomalous(plus, minus *MillerArray) (*MillerArray, error) {
	out := &MillerArray{
		Symmetry:   plus.Symmetry,
		Anomalous:  true,
		ObsType:    plus.ObsType,
		Wavelength: plus.Wavelength,
		Labels:     unionLabels(plus.Labels, minus.Labels),
	}
	out.Indices = append(out.Indices, plus.Indices...)
	for _, h := range minus.Indices {
		out.Indices = append(out.Indices, [3]int{-h[0], -h[1], -h[2]})
	}
	switch {
	case plus.FloatData != nil && minus.FloatData != nil:
		out.FloatData = append(append([]float64{}, plus.FloatData...), minus.FloatData...)
	case plus.IntData != nil && minus.IntData != nil:
		out.IntData = append(append([]int{}, plus.IntData...), minus.IntData...)
	case plus.ComplexData != nil && minus.ComplexData != nil:
		out.ComplexData = append(append([]complex128{}, plus.ComplexData...), minus.ComplexData...)
	case plus.HLData != nil && minus.HLData != nil:
		out.HLData = append(append([][4]float64{}, plus.HLData...), minus.HLData...)
	case plus.StringData != nil && minus.StringData != nil:
		out.StringData = append(append([]string{}, plus.StringData...), minus.StringData...)
	default:
		return nil, newError(ErrInvalidValue,
			"Cannot merge anomalous arrays of different data types: %v %v", plus.Labels, minus.Labels)
	}
	if plus.Sigmas != nil && minus.Sigmas != nil {
		out.Sigmas = append(append([]float64{}, plus.Sigmas...), minus.Sigmas...)
	}
	return out, nil
}

func unionLabels(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// RawColumn is the type-coerced copy of one original reflection column,
// kept independently of how the column was associated into arrays. It
// holds floats when every value parsed, strings otherwise; the special
// "HKLs" entry holds the indices instead.
type RawColumn struct {
	Floats  []float64
	Strings []string
	Indices [][3]int
}

// ArrayCollection is an insertion-ordered set of labelled Miller arrays
// plus the raw copies of the source columns.
type ArrayCollection struct {
	keys    []string
	m       map[string]*MillerArray
	rawKeys []string
	raw     map[string]*RawColumn
}

// NewArrayCollection returns an empty collection.
func NewArrayCollection() *ArrayCollection {
	return &ArrayCollection{
		m:   make(map[string]*MillerArray),
		raw: make(map[string]*RawColumn),
	}
}

// SetDefault stores the array under key only if the key is not yet
// present, and reports whether it stored it.
func (ac *ArrayCollection) SetDefault(key string, arr *MillerArray) bool {
	if _, ok := ac.m[key]; ok {
		return false
	}
	ac.keys = append(ac.keys, key)
	ac.m[key] = arr
	return true
}

// Set stores the array under key, overwriting any previous value but
// keeping the key's original position in the iteration order.
func (ac *ArrayCollection) Set(key string, arr *MillerArray) {
	if _, ok := ac.m[key]; !ok {
		ac.keys = append(ac.keys, key)
	}
	ac.m[key] = arr
}

// Get returns the array stored under key, or nil.
func (ac *ArrayCollection) Get(key string) *MillerArray { return ac.m[key] }

// Delete removes a key. Re-adding it later appends it at the end.
func (ac *ArrayCollection) Delete(key string) {
	if _, ok := ac.m[key]; !ok {
		return
	}
	delete(ac.m, key)
	for i, k := range ac.keys {
		if k == key {
			ac.keys = append(ac.keys[:i], ac.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the array keys in insertion order.
func (ac *ArrayCollection) Keys() []string { return append([]string{}, ac.keys...) }

// Len returns the number of arrays in the collection.
func (ac *ArrayCollection) Len() int { return len(ac.keys) }

// SetRaw stores a raw column copy, overwriting a previous one of the same
// key.
func (ac *ArrayCollection) SetRaw(key string, col *RawColumn) {
	if _, ok := ac.raw[key]; !ok {
		ac.rawKeys = append(ac.rawKeys, key)
	}
	ac.raw[key] = col
}

// Raw returns the raw copy of a source column, or nil.
func (ac *ArrayCollection) Raw(key string) *RawColumn { return ac.raw[key] }

// RawKeys returns the raw-column keys in insertion order.
func (ac *ArrayCollection) RawKeys() []string { return append([]string{}, ac.rawKeys...) }
