/*
 * alias.go, part of goCryst.
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

import "github.com/rmera/gocryst/cif"

//equivalents maps a canonical tag to the synonyms it may appear under in
//older CIF dialects and in mmCIF (the dotted category.item spellings).
//The canonical tag itself is always tried first.
var equivalents = map[string][]string{
	"_space_group_symop_operation_xyz": {
		"_symmetry_equiv_pos_as_xyz",
		"_space_group_symop.operation_xyz",
		"_symmetry_equiv.pos_as_xyz",
	},
	"_space_group_symop_id": {
		"_symmetry_equiv_pos_site_id",
		"_space_group_symop.id",
		"_symmetry_equiv.id",
	},
	"_space_group_name_Hall": {
		"_symmetry_space_group_name_Hall",
		"_space_group.name_Hall",
		"_symmetry.space_group_name_Hall",
	},
	"_space_group_name_H-M_alt": {
		"_symmetry_space_group_name_H-M",
		"_space_group.name_H-M_alt",
		"_symmetry.space_group_name_H-M",
	},
	"_space_group_IT_number": {
		"_symmetry_Int_Tables_number",
		"_space_group.IT_number",
		"_symmetry.Int_Tables_number",
	},
	"_cell_length_a":    {"_cell.length_a"},
	"_cell_length_b":    {"_cell.length_b"},
	"_cell_length_c":    {"_cell.length_c"},
	"_cell_angle_alpha": {"_cell.angle_alpha"},
	"_cell_angle_beta":  {"_cell.angle_beta"},
	"_cell_angle_gamma": {"_cell.angle_gamma"},
	"_cell_volume":      {"_cell.volume"},
	"_refln_index_h":    {"_refln.index_h"},
	"_refln_index_k":    {"_refln.index_k"},
	"_refln_index_l":    {"_refln.index_l"},
	"_diffrn_radiation_wavelength": {
		"_diffrn_radiation_wavelength.wavelength",
	},
	"_diffrn_radiation_wavelength_id": {
		"_diffrn_radiation_wavelength.id",
	},
	"_atom_site_label":            {"_atom_site.label"},
	"_atom_site_type_symbol":      {"_atom_site.type_symbol"},
	"_atom_site_fract_x":          {"_atom_site.fract_x"},
	"_atom_site_fract_y":          {"_atom_site.fract_y"},
	"_atom_site_fract_z":          {"_atom_site.fract_z"},
	"_atom_site_Cartn_x":          {"_atom_site.Cartn_x"},
	"_atom_site_Cartn_y":          {"_atom_site.Cartn_y"},
	"_atom_site_Cartn_z":          {"_atom_site.Cartn_z"},
	"_atom_site_occupancy":        {"_atom_site.occupancy"},
	"_atom_site_U_iso_or_equiv":   {"_atom_site.U_iso_or_equiv"},
	"_atom_site_B_iso_or_equiv":   {"_atom_site.B_iso_or_equiv"},
	"_atom_site_aniso_label":      {"_atom_site_anisotrop.id"},
	"_atom_site_aniso_U_11":       {"_atom_site_anisotrop.U[1][1]"},
	"_atom_site_aniso_U_22":       {"_atom_site_anisotrop.U[2][2]"},
	"_atom_site_aniso_U_33":       {"_atom_site_anisotrop.U[3][3]"},
	"_atom_site_aniso_U_12":       {"_atom_site_anisotrop.U[1][2]"},
	"_atom_site_aniso_U_13":       {"_atom_site_anisotrop.U[1][3]"},
	"_atom_site_aniso_U_23":       {"_atom_site_anisotrop.U[2][3]"},
	"_atom_site_aniso_B_11":       {"_atom_site_anisotrop.B[1][1]"},
	"_atom_site_aniso_B_22":       {"_atom_site_anisotrop.B[2][2]"},
	"_atom_site_aniso_B_33":       {"_atom_site_anisotrop.B[3][3]"},
	"_atom_site_aniso_B_12":       {"_atom_site_anisotrop.B[1][2]"},
	"_atom_site_aniso_B_13":       {"_atom_site_anisotrop.B[1][3]"},
	"_atom_site_aniso_B_23":       {"_atom_site_anisotrop.B[2][3]"},
}

// findItem looks a tag up in the block under its canonical spelling first
// and then under each registered synonym, returning the first hit or nil.
// Lookups inherit the case-insensitivity of cif.Block.Find.
func findItem(block *cif.Block, tag string) *cif.Item {
	if it := block.Find(tag); it != nil {
		return it
	}
	for _, syn := range equivalents[tag] {
		if it := block.Find(syn); it != nil {
			return it
		}
	}
	return nil
}

// findScalar returns the scalar value of a tag resolved through findItem.
// The second return is false when the tag is absent; a looped tag is
// reported as absent too, since a single value was asked for.
func findScalar(block *cif.Block, tag string) (string, bool) {
	it := findItem(block, tag)
	if it == nil || it.IsColumn() {
		return "", false
	}
	return it.Scalar(), true
}
