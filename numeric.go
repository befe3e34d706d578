/*
 * numeric.go, part of goCryst.
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
)

// isPlaceholder reports whether a CIF value is one of the two "no data"
// markers, "?" (unknown) and "." (inapplicable).
func isPlaceholder(s string) bool { return s == "?" || s == "." }

// floatFromString parses a CIF numeric literal. Surrounding quotes are
// tolerated and a trailing standard uncertainty in parentheses, as in
// "4.983(2)", is discarded.
func floatFromString(s string) (float64, error) {
	t := strings.Trim(s, `'"`)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil {
		return 0, newError(ErrInvalidValue, "Invalid floating-point value: %s", s)
	}
	return v, nil
}

func allPlaceholders(col []string) bool {
	for _, v := range col {
		if !isPlaceholder(v) {
			return false
		}
	}
	return true
}

// floatColumnElseNil parses a whole column forgivingly: any failure,
// placeholders included, discards the column.
func floatColumnElseNil(col []string) []float64 {
	if col == nil {
		return nil
	}
	out := make([]float64, len(col))
	for i, v := range col {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		out[i] = f
	}
	return out
}

// esdFloatColumn parses a column of float-with-uncertainty literals, such
// as occupancies written "0.85(3)". Placeholder entries leave a nil slot.
// An unparseable non-placeholder entry discards the column.
func esdFloatColumn(col []string) []*float64 {
	if col == nil {
		return nil
	}
	out := make([]*float64, len(col))
	for i, v := range col {
		if isPlaceholder(v) {
			continue
		}
		f, err := floatFromString(v)
		if err != nil {
			return nil
		}
		f2 := f
		out[i] = &f2
	}
	return out
}

// intColumn parses a column of integers. A nil or all-placeholder column
// yields nil; per-row placeholders are allowed and reported through the
// valid mask, so callers can drop those rows from selections.
func intColumn(col []string, name string) (vals []int, valid []bool, err error) {
	if col == nil || allPlaceholders(col) {
		return nil, nil, nil
	}
	vals = make([]int, len(col))
	valid = make([]bool, len(col))
	for i, v := range col {
		if isPlaceholder(v) {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, nil, newError(ErrInvalidValue,
				"Invalid integer value for %s: %s", name, v)
		}
		vals[i] = n
		valid[i] = true
	}
	return vals, valid, nil
}

// stripOxidationState removes a trailing oxidation-state suffix, digits
// followed by a sign, from an atom type symbol: "Ca2+" becomes "Ca".
func stripOxidationState(sym string) string {
	s := sym
	if n := len(s); n > 1 && (s[n-1] == '+' || s[n-1] == '-') {
		i := n - 1
		for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
			i--
		}
		if i < n-1 {
			return s[:i]
		}
	}
	return s
}
