/*
 * doc.go, part of goCryst.
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

/*Package cryst builds crystallographic models out of CIF data blocks.



	**goCryst Capabilities**


    Reads CIF files (plain or gzipped) into a case-preserving text model
	(the cif subpackage).

    Resolves data tags through the historical synonym families, so old
	small-molecule CIFs and mmCIF files are read alike.

    Builds crystal symmetry: the space group from explicit xyz operators,
	a Hall symbol, a Hermann-Mauguin symbol or an International Tables
	number, and the unit cell from the cell parameters, inferring the
	symmetry-constrained ones when only some are given (the symm
	subpackage holds the space-group machinery).

    Builds crystal structures: scatterers with fractional sites (or
	fractionalized Cartesian ones), occupancies and isotropic or
	anisotropic displacement parameters.

    Builds Miller arrays from reflection loops, pairing data columns with
	their sigmas, amplitudes with phases, Hendrickson-Lattman coefficient
	quads, splitting loops by wavelength, crystal and scale-group ids, and
	merging Friedel pairs into anomalous arrays. Two association
	strategies are provided: the classic suffix conventions and a
	pattern-matching one.*/
package cryst
