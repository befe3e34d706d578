/*
 * wavelength.go, part of goCryst.
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
)

// GetWavelengths reads the radiation wavelength table of a block into a
// map from wavelength id to wavelength. A block that records a single
// scalar wavelength yields it under id 1. Placeholder entries are
// skipped; nil is returned when the block records no wavelength at all.
func GetWavelengths(block *cif.Block) (map[int]float64, error) {
	it := findItem(block, "_diffrn_radiation_wavelength")
	if it == nil {
		return nil, nil
	}
	if !it.IsColumn() {
		v := it.Scalar()
		if isPlaceholder(v) {
			return nil, nil
		}
		f, err := floatFromString(v)
		if err != nil {
			return nil, newError(ErrInvalidValue, "Invalid wavelength: %s", v)
		}
		return map[int]float64{1: f}, nil
	}
	wl := it.Column()
	var ids []string
	if idItem := findItem(block, "_diffrn_radiation_wavelength_id"); idItem != nil {
		ids = idItem.Strings()
	}
	out := make(map[int]float64, len(wl))
	for i, v := range wl {
		if isPlaceholder(v) {
			continue
		}
		f, err := floatFromString(v)
		if err != nil {
			return nil, newError(ErrInvalidValue, "Invalid wavelength: %s", v)
		}
		id := i + 1
		if ids != nil && i < len(ids) {
			n, err := strconv.Atoi(strings.TrimSpace(ids[i]))
			if err != nil {
				return nil, newError(ErrInvalidValue, "Invalid wavelength id: %s", ids[i])
			}
			id = n
		}
		out[id] = f
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
