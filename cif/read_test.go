/*
 * read_test.go, part of goCryst.
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

package cif

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const sampleCif = `#\#CIF_1.1
data_quartz
_cell_length_a 4.916
_cell_length_b 4.916
_chemical_name_mineral 'Quartz low'
_exptl_note
;first line
second line
;
loop_
_atom_site_label
_atom_site_fract_x
_atom_site_fract_y
Si1 0.4697 0.0    # trailing comment
O1  0.4135 0.2669
save_extras
_local_tag yes
save_
`

func TestReadBasics(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleCif))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != "1.1" {
		t.Errorf("version %q, want 1.1", doc.Version)
	}
	b := doc.Block("quartz")
	if b == nil {
		t.Fatal("block quartz not found")
	}
	if v := b.Find("_cell_length_a"); v == nil || v.Scalar() != "4.916" {
		t.Errorf("bad _cell_length_a: %v", v)
	}
	if v := b.Find("_chemical_name_mineral"); v == nil || v.Scalar() != "Quartz low" {
		t.Errorf("quoted value not unquoted: %v", v)
	}
	if v := b.Find("_exptl_note"); v == nil || v.Scalar() != "first line\nsecond line" {
		t.Errorf("bad text field: %q", v.Scalar())
	}
	if len(b.Frames()) != 1 || b.Frames()[0].Name != "extras" {
		t.Errorf("save frame not read: %v", b.Frames())
	}
}

func TestReadLoop(t *testing.T) {
	doc, err := Read(strings.NewReader(sampleCif))
	if err != nil {
		t.Fatal(err)
	}
	b := doc.First()
	it := b.Find("_ATOM_SITE_LABEL") //lookup is case-insensitive
	if it == nil || !it.IsColumn() {
		t.Fatal("loop column not reachable through Find")
	}
	if it.Tag() != "_atom_site_label" {
		t.Errorf("original tag case not preserved: %s", it.Tag())
	}
	col := it.Column()
	if len(col) != 2 || col[0] != "Si1" || col[1] != "O1" {
		t.Errorf("bad label column: %v", col)
	}
	lp := it.Loop()
	if lp.Len() != 2 || len(lp.Tags()) != 3 {
		t.Errorf("bad loop shape: %d rows, %d tags", lp.Len(), len(lp.Tags()))
	}
	if x := lp.Column("_atom_site_fract_x"); x[1] != "0.4135" {
		t.Errorf("bad fract_x column: %v", x)
	}
}

func TestReadRaggedLoop(t *testing.T) {
	bad := "data_x\nloop_\n_a\n_b\n1 2 3\n"
	if _, err := Read(strings.NewReader(bad)); err == nil {
		t.Error("ragged loop did not fail")
	}
}

func TestReadMissingValue(t *testing.T) {
	bad := "data_x\n_a\n_b 1\n"
	if _, err := Read(strings.NewReader(bad)); err == nil {
		t.Error("tag without value did not fail")
	}
}

func TestReadFileGzip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "sample.cif.gz")
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	w := gzip.NewWriter(f)
	if _, err := w.Write([]byte(sampleCif)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()
	doc, err := ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if doc.First() == nil || doc.First().Name != "quartz" {
		t.Errorf("gzipped file not read back: %v", doc.Blocks())
	}
}
