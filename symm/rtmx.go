/*
 * rtmx.go, part of goCryst.
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

/*Package symm implements the crystallographic symmetry primitives consumed
by the builders in the parent package: symmetry operators in "x,y,z"
notation, space groups generated by group closure, unit cells with their
metric tensors, and the crystal-system constraints that relate the two.
Arithmetic on operators is exact: rotations are small integer matrices and
translations are kept as integer twelfths of the cell edges, so group
closure and operator comparison never depend on floating-point tolerance.*/
package symm

import (
	"fmt"
	"strconv"
	"strings"
)

// Error is the error type for the symm package. It implements the
// goCryst-wide Error interface.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. An empty string just returns the current value.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errorf(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, a...)}
}

// TrDen is the denominator used for operator translations. All
// crystallographic translation components in conventional settings are
// multiples of 1/12.
const TrDen = 12

// RTMx is a rotation-translation symmetry operator acting on fractional
// coordinates: x' = R*x + T/TrDen. R is row-major. Operators are value
// types and compare with ==  after normalization.
type RTMx struct {
	R [9]int
	T [3]int
}

// Identity returns the identity operator.
func Identity() RTMx {
	return RTMx{R: [9]int{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// normalize reduces translations to the range [0, TrDen).
func (m RTMx) normalize() RTMx {
	for i := 0; i < 3; i++ {
		m.T[i] = ((m.T[i] % TrDen) + TrDen) % TrDen
	}
	return m
}

// Mul returns the composition m∘n, the operator applying n first.
func (m RTMx) Mul(n RTMx) RTMx {
	var out RTMx
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0
			for k := 0; k < 3; k++ {
				s += m.R[3*i+k] * n.R[3*k+j]
			}
			out.R[3*i+j] = s
		}
		t := m.T[i]
		for k := 0; k < 3; k++ {
			t += m.R[3*i+k] * n.T[k]
		}
		out.T[i] = t
	}
	return out.normalize()
}

// IsUnitRotation reports whether the rotation part is the identity.
func (m RTMx) IsUnitRotation() bool {
	return m.R == Identity().R
}

// Det returns the determinant of the rotation part.
func (m RTMx) Det() int {
	r := m.R
	return r[0]*(r[4]*r[8]-r[5]*r[7]) -
		r[1]*(r[3]*r[8]-r[5]*r[6]) +
		r[2]*(r[3]*r[7]-r[4]*r[6])
}

// Trace returns the trace of the rotation part.
func (m RTMx) Trace() int {
	return m.R[0] + m.R[4] + m.R[8]
}

// RotationType returns the crystallographic type of the rotation part:
// 1, 2, 3, 4 or 6 for proper rotations and the negated value for
// rotoinversions (-1 is the inversion, -2 a mirror). Zero means the matrix
// is not a crystallographic rotation.
func (m RTMx) RotationType() int {
	det := m.Det()
	tr := m.Trace()
	switch det {
	case 1:
		switch tr {
		case 3:
			return 1
		case -1:
			return 2
		case 0:
			return 3
		case 1:
			return 4
		case 2:
			return 6
		}
	case -1:
		switch tr {
		case -3:
			return -1
		case 1:
			return -2
		case 0:
			return -3
		case -1:
			return -4
		case -2:
			return -6
		}
	}
	return 0
}

var axisNames = [3]byte{'x', 'y', 'z'}

// ParseRTMx parses a symmetry operator in xyz notation, such as
// "x,y,z", "-X+1/2, Y, -Z" or "2/3+x,1/3+y,1/3+z". Decimal translations
// (e.g. "0.5-x") are accepted when they are exact multiples of 1/TrDen.
func ParseRTMx(s string) (RTMx, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RTMx{}, errorf("symm: %q: a symmetry operator needs 3 comma-separated components", s)
	}
	var m RTMx
	for i, part := range parts {
		row, tr, err := parseComponent(part)
		if err != nil {
			return RTMx{}, errorf("symm: %q: %v", s, err)
		}
		copy(m.R[3*i:3*i+3], row[:])
		m.T[i] = tr
	}
	if d := m.Det(); d != 1 && d != -1 {
		return RTMx{}, errorf("symm: %q: rotation part is singular", s)
	}
	return m.normalize(), nil
}

func parseComponent(s string) ([3]int, int, error) {
	var row [3]int
	tr := 0
	sign := 1
	sawTerm := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '+':
			sign = 1
			i++
		case c == '-':
			sign = -1
			i++
		case c == 'x' || c == 'X':
			row[0] += sign
			sign = 1
			sawTerm = true
			i++
		case c == 'y' || c == 'Y':
			row[1] += sign
			sign = 1
			sawTerm = true
			i++
		case c == 'z' || c == 'Z':
			row[2] += sign
			sign = 1
			sawTerm = true
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
				j++
			}
			num := s[i:j]
			den := ""
			if j < len(s) && s[j] == '/' {
				j++
				k := j
				for k < len(s) && s[k] >= '0' && s[k] <= '9' {
					k++
				}
				den = s[j:k]
				j = k
			}
			twelfths, err := asTwelfths(num, den)
			if err != nil {
				return row, 0, err
			}
			tr += sign * twelfths
			sign = 1
			sawTerm = true
			i = j
		default:
			return row, 0, errorf("unexpected character %q in component %q", string(c), s)
		}
	}
	if !sawTerm {
		return row, 0, errorf("empty component %q", s)
	}
	return row, tr, nil
}

func asTwelfths(num, den string) (int, error) {
	if den != "" {
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, errorf("bad fraction numerator %q", num)
		}
		d, err := strconv.Atoi(den)
		if err != nil || d == 0 {
			return 0, errorf("bad fraction denominator %q", den)
		}
		if (n*TrDen)%d != 0 {
			return 0, errorf("translation %s/%s is not a multiple of 1/%d", num, den, TrDen)
		}
		return n * TrDen / d, nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, errorf("bad number %q", num)
	}
	t := f * TrDen
	rounded := int(t + 0.5)
	if t-float64(rounded) > 1e-6 || float64(rounded)-t > 1e-6 {
		return 0, errorf("translation %s is not a multiple of 1/%d", num, TrDen)
	}
	return rounded, nil
}

// String formats the operator back into xyz notation.
func (m RTMx) String() string {
	var comps [3]string
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j := 0; j < 3; j++ {
			c := m.R[3*i+j]
			if c == 0 {
				continue
			}
			if c > 0 && b.Len() > 0 {
				b.WriteByte('+')
			}
			if c == -1 {
				b.WriteByte('-')
			} else if c != 1 {
				b.WriteString(strconv.Itoa(c))
			}
			b.WriteByte(axisNames[j])
		}
		if t := m.T[i]; t != 0 {
			n, d := t, TrDen
			for _, p := range []int{2, 2, 3} {
				if n%p == 0 && d%p == 0 {
					n /= p
					d /= p
				}
			}
			if b.Len() > 0 {
				b.WriteByte('+')
			}
			if d == 1 {
				b.WriteString(strconv.Itoa(n))
			} else {
				b.WriteString(strconv.Itoa(n) + "/" + strconv.Itoa(d))
			}
		}
		if b.Len() == 0 {
			b.WriteByte('0')
		}
		comps[i] = b.String()
	}
	return comps[0] + "," + comps[1] + "," + comps[2]
}
