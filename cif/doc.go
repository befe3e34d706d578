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

/*Package cif provides an in-memory model for parsed Crystallographic
Information Files (data blocks, save frames, loops and key/value items)
together with a reader for the CIF 1.1 text format. The model preserves the
case and declaration order of data tags while lookups are case-insensitive,
as the CIF specification requires. Values are kept as the strings found in
the file; interpreting them (numbers, placeholders, uncertainty suffixes) is
the job of the builders in the parent package.*/
package cif
