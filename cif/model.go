/*
 * model.go, part of goCryst.
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
	"fmt"
	"strings"
)

// Error is the error type for the cif package. It implements the
// goCryst-wide Error interface, with Decorate adding caller information
// as the error goes up the stack.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. An empty string just returns the current decorations.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func errorf(format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, a...)}
}

// Document is a parsed CIF file: an ordered set of named data blocks.
type Document struct {
	//Version is the CIF specification version announced by the file
	//(from a #\#CIF_x.y magic comment), if any.
	Version string
	blocks  []*Block
	byName  map[string]*Block
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{byName: make(map[string]*Block)}
}

// AddBlock appends a data block to the document. A block with a repeated
// name replaces the previous one in named lookup but both are kept in the
// ordered list, which is what CIF readers conventionally do.
func (d *Document) AddBlock(b *Block) {
	d.blocks = append(d.blocks, b)
	d.byName[strings.ToLower(b.Name)] = b
}

// Blocks returns the data blocks in file order.
func (d *Document) Blocks() []*Block { return d.blocks }

// Block returns the data block with the given name (case-insensitive) or
// nil if there is none.
func (d *Document) Block(name string) *Block {
	return d.byName[strings.ToLower(name)]
}

// First returns the first data block of the document, or nil if the
// document is empty. Most small-molecule CIFs have exactly one block.
func (d *Document) First() *Block {
	if len(d.blocks) == 0 {
		return nil
	}
	return d.blocks[0]
}

// Item is one data item in a block: either a scalar value or a column of
// values belonging to a loop. The zero Item is not valid; Items are
// obtained from Block.Find.
type Item struct {
	tag    string
	scalar string
	column []string
	loop   *Loop
}

// Tag returns the data tag of the item with its original case.
func (it *Item) Tag() string { return it.tag }

// IsColumn reports whether the item is a loop column rather than a scalar.
func (it *Item) IsColumn() bool { return it.loop != nil }

// Scalar returns the scalar value of the item. It is only meaningful when
// IsColumn is false.
func (it *Item) Scalar() string { return it.scalar }

// Column returns the loop column of the item, or nil for a scalar.
func (it *Item) Column() []string { return it.column }

// Loop returns the loop the item belongs to, or nil for a scalar.
func (it *Item) Loop() *Loop { return it.loop }

// Strings returns the values of the item as a slice: the column itself, or
// a one-element slice holding the scalar. Callers that accept a tag given
// either way (such as the symmetry-operator list) use this.
func (it *Item) Strings() []string {
	if it.loop != nil {
		return it.column
	}
	return []string{it.scalar}
}

// Block is a data block or save frame: an insertion-ordered mapping from
// data tags to scalar values or loop columns. Tag lookup is
// case-insensitive; the original case of each tag is preserved.
type Block struct {
	Name   string
	tags   []string
	items  map[string]*Item
	loops  []*Loop
	frames []*Block
}

// NewBlock returns an empty block with the given name.
func NewBlock(name string) *Block {
	return &Block{Name: name, items: make(map[string]*Item)}
}

// SetScalar adds a scalar data item to the block. A repeated tag overwrites
// the previous value without changing its position in the tag order.
func (b *Block) SetScalar(tag, value string) {
	key := strings.ToLower(tag)
	if _, ok := b.items[key]; !ok {
		b.tags = append(b.tags, tag)
	}
	b.items[key] = &Item{tag: tag, scalar: value}
}

// AddLoop adds a loop to the block and makes each of its columns reachable
// through Find under its own tag.
func (b *Block) AddLoop(lp *Loop) {
	b.loops = append(b.loops, lp)
	for _, tag := range lp.Tags() {
		key := strings.ToLower(tag)
		if _, ok := b.items[key]; !ok {
			b.tags = append(b.tags, tag)
		}
		b.items[key] = &Item{tag: tag, column: lp.Column(tag), loop: lp}
	}
}

// AddFrame adds a save frame to the block.
func (b *Block) AddFrame(f *Block) {
	b.frames = append(b.frames, f)
}

// Find returns the item stored under tag (case-insensitive), or nil if the
// block has no such tag. Absence is not an error.
func (b *Block) Find(tag string) *Item {
	return b.items[strings.ToLower(tag)]
}

// Tags returns all data tags of the block, scalars and loop columns alike,
// in declaration order and with original case.
func (b *Block) Tags() []string { return b.tags }

// Loops returns the loops of the block in declaration order.
func (b *Block) Loops() []*Loop { return b.loops }

// Frames returns the save frames of the block in declaration order.
func (b *Block) Frames() []*Block { return b.frames }

// Loop is a single table of data: an ordered set of tags, each naming one
// column, with all columns of equal length.
type Loop struct {
	tags []string
	cols map[string][]string
	n    int
}

// NewLoop builds a loop from parallel slices of tags and columns. It
// returns an error if the slices disagree in length, a tag is repeated, or
// the columns are not all of the same length.
func NewLoop(tags []string, cols [][]string) (*Loop, error) {
	if len(tags) != len(cols) {
		return nil, errorf("cif: loop has %d tags but %d columns", len(tags), len(cols))
	}
	if len(tags) == 0 {
		return nil, errorf("cif: loop with no tags")
	}
	lp := &Loop{cols: make(map[string][]string, len(tags)), n: len(cols[0])}
	for i, tag := range tags {
		key := strings.ToLower(tag)
		if _, ok := lp.cols[key]; ok {
			return nil, errorf("cif: repeated tag %s in loop", tag)
		}
		if len(cols[i]) != lp.n {
			return nil, errorf("cif: column %s has %d values, expected %d", tag, len(cols[i]), lp.n)
		}
		lp.tags = append(lp.tags, tag)
		lp.cols[key] = cols[i]
	}
	return lp, nil
}

// Tags returns the tags of the loop in declaration order, original case.
func (lp *Loop) Tags() []string { return lp.tags }

// Column returns the column stored under tag (case-insensitive), or nil.
func (lp *Loop) Column(tag string) []string {
	return lp.cols[strings.ToLower(tag)]
}

// Len returns the number of rows in the loop.
func (lp *Loop) Len() int { return lp.n }
