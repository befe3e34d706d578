/*
 * structure.go, part of goCryst.
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

	"github.com/rmera/gocryst/cif"
)

// Scatterer is one atom site of a crystal structure. Site holds fractional
// coordinates. Exactly one of Uiso and UStar is set when the site carries
// displacement information: Uiso for an isotropic parameter, UStar for the
// six anisotropic components in the dimensionless u_star convention
// (ordered 11, 22, 33, 12, 13, 23). Occupancy is nil when not given.
type Scatterer struct {
	Label          string
	ScatteringType string
	Site           [3]float64
	Occupancy      *float64
	Uiso           *float64
	UStar          *[6]float64
}

// Structure is a crystal structure: a symmetry plus the scatterers of the
// asymmetric unit, with the experiment's wavelength when recorded.
type Structure struct {
	Symmetry   *CrystalSymmetry
	Wavelength *float64
	Scatterers []Scatterer
}

//eightPiSq converts isotropic B values to U: u = b/(8 pi^2).
var eightPiSq = 8 * math.Pi * math.Pi

// BuildStructure builds a crystal structure from a CIF block. Symmetry is
// required (strict mode). Coordinates are taken from the fractional
// columns, or from the Cartesian ones when all three fractional columns
// are absent; in the Cartesian case they are fractionalized through the
// cell. Anisotropic displacement parameters override isotropic ones for
// the sites that have them.
func BuildStructure(block *cif.Block) (*Structure, error) {
	sym, err := BuildSymmetry(block, true)
	if err != nil {
		return nil, errDecorate(err, "BuildStructure")
	}
	sites, err := atomSites(block, sym)
	if err != nil {
		return nil, errDecorate(err, "BuildStructure")
	}
	n := len(sites)
	labels := columnOrBlank(block, "_atom_site_label", n)
	types := findColumn(block, "_atom_site_type_symbol")
	uiso := isoColumn(block, "_atom_site_U_iso_or_equiv", "_atom_site_U_equiv_geom_mean")
	biso := isoColumn(block, "_atom_site_B_iso_or_equiv", "_atom_site_B_equiv_geom_mean")
	occ := esdFloatColumn(findColumn(block, "_atom_site_occupancy"))
	aniso, err := anisoADPs(block, sym)
	if err != nil {
		return nil, errDecorate(err, "BuildStructure")
	}
	rl := sym.UnitCell.ReciprocalLengths()
	scatterers := make([]Scatterer, 0, n)
	for i := 0; i < n; i++ {
		sc := Scatterer{Label: labels[i], Site: sites[i]}
		if types != nil && i < len(types) {
			sc.ScatteringType = stripOxidationState(types[i])
		}
		if occ != nil && i < len(occ) {
			sc.Occupancy = occ[i]
		}
		if adp, ok := aniso[sc.Label]; ok {
			u := adp.values
			if adp.isB {
				for j := range u {
					u[j] /= eightPiSq
				}
			}
			//convert u_cif to the dimensionless u_star convention
			ustar := [6]float64{
				u[0] * rl[0] * rl[0], u[1] * rl[1] * rl[1], u[2] * rl[2] * rl[2],
				u[3] * rl[0] * rl[1], u[4] * rl[0] * rl[2], u[5] * rl[1] * rl[2],
			}
			sc.UStar = &ustar
		} else if uiso != nil && i < len(uiso) {
			u := uiso[i]
			sc.Uiso = &u
		} else if biso != nil && i < len(biso) {
			u := biso[i] / eightPiSq
			sc.Uiso = &u
		}
		scatterers = append(scatterers, sc)
	}
	wl, err := scalarWavelength(block)
	if err != nil {
		return nil, errDecorate(err, "BuildStructure")
	}
	return &Structure{Symmetry: sym, Wavelength: wl, Scatterers: scatterers}, nil
}

func findColumn(block *cif.Block, tag string) []string {
	if it := findItem(block, tag); it != nil && it.IsColumn() {
		return it.Column()
	}
	return nil
}

func columnOrBlank(block *cif.Block, tag string, n int) []string {
	if col := findColumn(block, tag); col != nil && len(col) == n {
		return col
	}
	return make([]string, n)
}

func isoColumn(block *cif.Block, tag, fallback string) []float64 {
	col := findColumn(block, tag)
	if col == nil {
		col = findColumn(block, fallback)
	}
	return floatColumnElseNil(col)
}

//coordColumn parses one coordinate column. ok is false when the column is
//absent, entirely placeholders, or unusable (placeholder rows mixed with
//data, or unparseable values).
func coordColumn(col []string) (vals []float64, absent, ok bool) {
	if col == nil || allPlaceholders(col) {
		return nil, true, false
	}
	vals = make([]float64, len(col))
	for i, v := range col {
		f, err := floatFromString(v)
		if err != nil {
			return nil, false, false
		}
		vals[i] = f
	}
	return vals, false, true
}

func atomSites(block *cif.Block, sym *CrystalSymmetry) ([][3]float64, error) {
	var cols [3][]float64
	allAbsent, allOK := true, true
	for i, tag := range [3]string{"_atom_site_fract_x", "_atom_site_fract_y", "_atom_site_fract_z"} {
		v, absent, ok := coordColumn(findColumn(block, tag))
		cols[i] = v
		allAbsent = allAbsent && absent
		allOK = allOK && ok
	}
	if allOK && len(cols[0]) == len(cols[1]) && len(cols[1]) == len(cols[2]) {
		out := make([][3]float64, len(cols[0]))
		for i := range out {
			out[i] = [3]float64{cols[0][i], cols[1][i], cols[2][i]}
		}
		return out, nil
	}
	if !allAbsent {
		return nil, newError(ErrNoCoordinates, "No atomic coordinates could be found")
	}
	//all three fractional columns missing: fall back to Cartesian ones
	allOK = true
	for i, tag := range [3]string{"_atom_site_Cartn_x", "_atom_site_Cartn_y", "_atom_site_Cartn_z"} {
		v, _, ok := coordColumn(findColumn(block, tag))
		cols[i] = v
		allOK = allOK && ok
	}
	if !allOK || len(cols[0]) != len(cols[1]) || len(cols[1]) != len(cols[2]) {
		return nil, newError(ErrNoCoordinates, "No atomic coordinates could be found")
	}
	out := make([][3]float64, len(cols[0]))
	for i := range out {
		out[i] = sym.UnitCell.Fractionalize([3]float64{cols[0][i], cols[1][i], cols[2][i]})
	}
	return out, nil
}

type anisoADP struct {
	values [6]float64
	isB    bool
}

//anisoADPs reads the anisotropic displacement loop, if any, into a map
//keyed by site label. The six components must all be present in either
//the U or the B convention; a partial set is an error.
func anisoADPs(block *cif.Block, sym *CrystalSymmetry) (map[string]anisoADP, error) {
	labels := findColumn(block, "_atom_site_aniso_label")
	if labels == nil {
		return nil, nil
	}
	suffixes := [6]string{"11", "22", "33", "12", "13", "23"}
	read := func(letter string) ([6][]string, int) {
		var cols [6][]string
		n := 0
		for i, s := range suffixes {
			cols[i] = findColumn(block, "_atom_site_aniso_"+letter+"_"+s)
			if cols[i] != nil {
				n++
			}
		}
		return cols, n
	}
	cols, n := read("U")
	isB := false
	if n == 0 {
		cols, n = read("B")
		isB = true
	}
	if n == 0 {
		return nil, nil
	}
	if n < 6 {
		return nil, newError(ErrIncompleteADP, "Some ADP items are missing")
	}
	for i := range cols {
		if len(cols[i]) != len(labels) {
			return nil, newError(ErrIncompleteADP, "Some ADP items are missing")
		}
	}
	out := make(map[string]anisoADP, len(labels))
	for row, label := range labels {
		//rows with no values at all are simply skipped
		all := true
		for i := 0; i < 6; i++ {
			if !isPlaceholder(cols[i][row]) {
				all = false
				break
			}
		}
		if all {
			continue
		}
		var adp anisoADP
		adp.isB = isB
		for i := 0; i < 6; i++ {
			f, err := floatFromString(cols[i][row])
			if err != nil {
				return nil, newError(ErrInvalidValue,
					"Error interpreting ADPs: %s", cols[i][row])
			}
			adp.values[i] = f
		}
		out[label] = adp
	}
	return out, nil
}

//scalarWavelength reads the wavelength of the experiment. For a looped
//wavelength list only the first value is taken; "?" means not recorded.
func scalarWavelength(block *cif.Block) (*float64, error) {
	it := findItem(block, "_diffrn_radiation_wavelength")
	if it == nil {
		return nil, nil
	}
	vals := it.Strings()
	if len(vals) == 0 || isPlaceholder(vals[0]) {
		return nil, nil
	}
	f, err := floatFromString(vals[0])
	if err != nil {
		return nil, newError(ErrInvalidValue, "Invalid wavelength: %s", vals[0])
	}
	return &f, nil
}
