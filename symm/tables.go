/*
 * tables.go, part of goCryst.
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

package symm

import "strings"

//setting is one row of the space-group lookup table: the International
//Tables number, the Hall symbol, the accepted Hermann-Mauguin spellings
//(canonical first) and the generator operators. Identity is implied;
//centring translations and the inversion appear as ordinary generators.
type setting struct {
	number int
	hall   string
	hm     []string
	gens   []string
}

//The table covers the conventional settings of the space groups that
//account for the overwhelming majority of entries in both the small-
//molecule and the macromolecular databases. Symbols not listed fail
//construction, which callers handle by falling through to the next
//symmetry source.
var settings = []setting{
	{1, "P 1", []string{"P 1"}, nil},
	{2, "-P 1", []string{"P -1"}, []string{"-x,-y,-z"}},
	{3, "P 2y", []string{"P 2", "P 1 2 1"}, []string{"-x,y,-z"}},
	{4, "P 2yb", []string{"P 21", "P 1 21 1"}, []string{"-x,y+1/2,-z"}},
	{5, "C 2y", []string{"C 2", "C 1 2 1"}, []string{"-x,y,-z", "x+1/2,y+1/2,z"}},
	{6, "P -2y", []string{"P m", "P 1 m 1"}, []string{"x,-y,z"}},
	{7, "P -2yc", []string{"P c", "P 1 c 1"}, []string{"x,-y,z+1/2"}},
	{8, "C -2y", []string{"C m", "C 1 m 1"}, []string{"x,-y,z", "x+1/2,y+1/2,z"}},
	{9, "C -2yc", []string{"C c", "C 1 c 1"}, []string{"x,-y,z+1/2", "x+1/2,y+1/2,z"}},
	{10, "-P 2y", []string{"P 2/m", "P 1 2/m 1"}, []string{"-x,y,-z", "-x,-y,-z"}},
	{12, "-C 2y", []string{"C 2/m", "C 1 2/m 1"}, []string{"-x,y,-z", "-x,-y,-z", "x+1/2,y+1/2,z"}},
	{13, "-P 2yc", []string{"P 2/c", "P 1 2/c 1"}, []string{"-x,y,-z+1/2", "-x,-y,-z"}},
	{14, "-P 2ybc", []string{"P 21/c", "P 1 21/c 1"}, []string{"-x,y+1/2,-z+1/2", "-x,-y,-z"}},
	{15, "-C 2yc", []string{"C 2/c", "C 1 2/c 1"}, []string{"-x,y,-z+1/2", "-x,-y,-z", "x+1/2,y+1/2,z"}},
	{16, "P 2 2", []string{"P 2 2 2"}, []string{"-x,-y,z", "x,-y,-z"}},
	{18, "P 2 2ab", []string{"P 21 21 2"}, []string{"-x,-y,z", "x+1/2,-y+1/2,-z"}},
	{19, "P 2ac 2ab", []string{"P 21 21 21"}, []string{"-x+1/2,-y,z+1/2", "-x,y+1/2,-z+1/2"}},
	{20, "C 2c 2", []string{"C 2 2 21"}, []string{"-x,-y,z+1/2", "x,-y,-z", "x+1/2,y+1/2,z"}},
	{21, "C 2 2", []string{"C 2 2 2"}, []string{"-x,-y,z", "x,-y,-z", "x+1/2,y+1/2,z"}},
	{22, "F 2 2", []string{"F 2 2 2"}, []string{"-x,-y,z", "x,-y,-z", "x,y+1/2,z+1/2", "x+1/2,y,z+1/2"}},
	{23, "I 2 2", []string{"I 2 2 2"}, []string{"-x,-y,z", "x,-y,-z", "x+1/2,y+1/2,z+1/2"}},
	{25, "P 2 -2", []string{"P m m 2"}, []string{"-x,-y,z", "x,-y,z"}},
	{29, "P 2c -2ac", []string{"P c a 21"}, []string{"-x,-y,z+1/2", "x+1/2,-y,z"}},
	{33, "P 2c -2n", []string{"P n a 21"}, []string{"-x,-y,z+1/2", "x+1/2,-y+1/2,z"}},
	{47, "-P 2 2", []string{"P m m m"}, []string{"-x,-y,z", "x,-y,-z", "-x,-y,-z"}},
	{61, "-P 2ac 2ab", []string{"P b c a"}, []string{"-x+1/2,-y,z+1/2", "-x,y+1/2,-z+1/2", "-x,-y,-z"}},
	{62, "-P 2ac 2n", []string{"P n m a"}, []string{"-x+1/2,-y,z+1/2", "-x,y+1/2,-z", "-x,-y,-z"}},
	{75, "P 4", []string{"P 4"}, []string{"-y,x,z"}},
	{76, "P 4w", []string{"P 41"}, []string{"-y,x,z+1/4"}},
	{77, "P 4c", []string{"P 42"}, []string{"-y,x,z+1/2"}},
	{78, "P 4cw", []string{"P 43"}, []string{"-y,x,z+3/4"}},
	{79, "I 4", []string{"I 4"}, []string{"-y,x,z", "x+1/2,y+1/2,z+1/2"}},
	{81, "P -4", []string{"P -4"}, []string{"y,-x,-z"}},
	{82, "I -4", []string{"I -4"}, []string{"y,-x,-z", "x+1/2,y+1/2,z+1/2"}},
	{83, "-P 4", []string{"P 4/m"}, []string{"-y,x,z", "-x,-y,-z"}},
	{89, "P 4 2", []string{"P 4 2 2"}, []string{"-y,x,z", "x,-y,-z"}},
	{99, "P 4 -2", []string{"P 4 m m"}, []string{"-y,x,z", "x,-y,z"}},
	{123, "-P 4 2", []string{"P 4/m m m"}, []string{"-y,x,z", "x,-y,-z", "-x,-y,-z"}},
	{139, "-I 4 2", []string{"I 4/m m m"}, []string{"-y,x,z", "x,-y,-z", "-x,-y,-z", "x+1/2,y+1/2,z+1/2"}},
	{143, "P 3", []string{"P 3"}, []string{"-y,x-y,z"}},
	{144, "P 31", []string{"P 31"}, []string{"-y,x-y,z+1/3"}},
	{145, "P 32", []string{"P 32"}, []string{"-y,x-y,z+2/3"}},
	{146, "R 3", []string{"R 3", "R 3 :H", "H 3"}, []string{"-y,x-y,z", "x+2/3,y+1/3,z+1/3", "x+1/3,y+2/3,z+2/3"}},
	{147, "-P 3", []string{"P -3"}, []string{"-y,x-y,z", "-x,-y,-z"}},
	{148, "-R 3", []string{"R -3", "R -3 :H"}, []string{"-y,x-y,z", "-x,-y,-z", "x+2/3,y+1/3,z+1/3", "x+1/3,y+2/3,z+2/3"}},
	{149, "P 3 2", []string{"P 3 1 2"}, []string{"-y,x-y,z", "-y,-x,-z"}},
	{150, "P 3 2\"", []string{"P 3 2 1"}, []string{"-y,x-y,z", "y,x,-z"}},
	{155, "R 3 2\"", []string{"R 3 2", "R 3 2 :H", "H 3 2"}, []string{"-y,x-y,z", "y,x,-z", "x+2/3,y+1/3,z+1/3", "x+1/3,y+2/3,z+2/3"}},
	{164, "-P 3 2\"", []string{"P -3 m 1"}, []string{"-y,x-y,z", "y,x,-z", "-x,-y,-z"}},
	{166, "-R 3 2\"", []string{"R -3 m", "R -3 m :H"}, []string{"-y,x-y,z", "y,x,-z", "-x,-y,-z", "x+2/3,y+1/3,z+1/3", "x+1/3,y+2/3,z+2/3"}},
	{167, "-R 3 2\"c", []string{"R -3 c", "R -3 c :H"}, []string{"-y,x-y,z", "y,x,-z+1/2", "-x,-y,-z", "x+2/3,y+1/3,z+1/3", "x+1/3,y+2/3,z+2/3"}},
	{168, "P 6", []string{"P 6"}, []string{"x-y,x,z"}},
	{169, "P 61", []string{"P 61"}, []string{"x-y,x,z+1/6"}},
	{170, "P 65", []string{"P 65"}, []string{"x-y,x,z+5/6"}},
	{171, "P 62", []string{"P 62"}, []string{"x-y,x,z+1/3"}},
	{172, "P 64", []string{"P 64"}, []string{"x-y,x,z+2/3"}},
	{173, "P 6c", []string{"P 63"}, []string{"x-y,x,z+1/2"}},
	{175, "-P 6", []string{"P 6/m"}, []string{"x-y,x,z", "-x,-y,-z"}},
	{177, "P 6 2", []string{"P 6 2 2"}, []string{"x-y,x,z", "y,x,-z"}},
	{191, "-P 6 2", []string{"P 6/m m m"}, []string{"x-y,x,z", "y,x,-z", "-x,-y,-z"}},
	{195, "P 2 2 3", []string{"P 2 3"}, []string{"-x,-y,z", "x,-y,-z", "z,x,y"}},
	{196, "F 2 2 3", []string{"F 2 3"}, []string{"-x,-y,z", "x,-y,-z", "z,x,y", "x,y+1/2,z+1/2", "x+1/2,y,z+1/2"}},
	{197, "I 2 2 3", []string{"I 2 3"}, []string{"-x,-y,z", "x,-y,-z", "z,x,y", "x+1/2,y+1/2,z+1/2"}},
	{198, "P 2ac 2ab 3", []string{"P 21 3"}, []string{"-x+1/2,-y,z+1/2", "-x,y+1/2,-z+1/2", "z,x,y"}},
	{200, "-P 2 2 3", []string{"P m -3"}, []string{"-x,-y,z", "x,-y,-z", "z,x,y", "-x,-y,-z"}},
	{202, "-F 2 2 3", []string{"F m -3"}, []string{"-x,-y,z", "x,-y,-z", "z,x,y", "-x,-y,-z", "x,y+1/2,z+1/2", "x+1/2,y,z+1/2"}},
	{204, "-I 2 2 3", []string{"I m -3"}, []string{"-x,-y,z", "x,-y,-z", "z,x,y", "-x,-y,-z", "x+1/2,y+1/2,z+1/2"}},
	{207, "P 4 2 3", []string{"P 4 3 2"}, []string{"-y,x,z", "z,x,y"}},
	{209, "F 4 2 3", []string{"F 4 3 2"}, []string{"-y,x,z", "z,x,y", "x,y+1/2,z+1/2", "x+1/2,y,z+1/2"}},
	{211, "I 4 2 3", []string{"I 4 3 2"}, []string{"-y,x,z", "z,x,y", "x+1/2,y+1/2,z+1/2"}},
	{215, "P -4 2 3", []string{"P -4 3 m"}, []string{"y,-x,-z", "z,x,y"}},
	{216, "F -4 2 3", []string{"F -4 3 m"}, []string{"y,-x,-z", "z,x,y", "x,y+1/2,z+1/2", "x+1/2,y,z+1/2"}},
	{217, "I -4 2 3", []string{"I -4 3 m"}, []string{"y,-x,-z", "z,x,y", "x+1/2,y+1/2,z+1/2"}},
	{221, "-P 4 2 3", []string{"P m -3 m"}, []string{"-y,x,z", "z,x,y", "-x,-y,-z"}},
	{225, "-F 4 2 3", []string{"F m -3 m"}, []string{"-y,x,z", "z,x,y", "-x,-y,-z", "x,y+1/2,z+1/2", "x+1/2,y,z+1/2"}},
	{229, "-I 4 2 3", []string{"I m -3 m"}, []string{"-y,x,z", "z,x,y", "-x,-y,-z", "x+1/2,y+1/2,z+1/2"}},
}

//normalizeSymbol makes symbol comparison insensitive to spacing,
//underscores and case. Setting suffixes like ":H" survive normalization
//so they can be matched explicitly in the table.
func normalizeSymbol(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ToUpper(s)
}

func (st *setting) build() (*SpaceGroup, error) {
	sg := NewSpaceGroup()
	for _, g := range st.gens {
		op, err := ParseRTMx(g)
		if err != nil {
			return nil, err
		}
		if err := sg.Expand(op); err != nil {
			return nil, err
		}
	}
	sg.symbol = st.hm[0]
	sg.number = st.number
	return sg, nil
}

// FromHall builds a space group from a Hall symbol. Only the symbols of
// the settings table are recognized.
func FromHall(symbol string) (*SpaceGroup, error) {
	want := normalizeSymbol(symbol)
	for i := range settings {
		if normalizeSymbol(settings[i].hall) == want {
			return settings[i].build()
		}
	}
	return nil, errorf("symm: unknown Hall symbol %q", symbol)
}

// FromHM builds a space group from a Hermann-Mauguin symbol, accepting the
// usual spacing and underscore variants.
func FromHM(symbol string) (*SpaceGroup, error) {
	want := normalizeSymbol(symbol)
	for i := range settings {
		for _, hm := range settings[i].hm {
			if normalizeSymbol(hm) == want {
				return settings[i].build()
			}
		}
	}
	return nil, errorf("symm: unknown Hermann-Mauguin symbol %q", symbol)
}

// FromNumber builds a space group from its International Tables number, in
// the conventional setting of the table.
func FromNumber(number int) (*SpaceGroup, error) {
	for i := range settings {
		if settings[i].number == number {
			return settings[i].build()
		}
	}
	return nil, errorf("symm: no tabulated setting for space group number %d", number)
}
