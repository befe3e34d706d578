/*
 * read.go, part of goCryst.
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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//The reader covers the part of CIF 1.1 that occurs in practice: data blocks,
//save frames, loops, comments, the three quoting styles and semicolon text
//fields. Maximum line lengths are not enforced.

type token struct {
	text string
	//quoted marks tokens that came from a quoted string or a semicolon
	//text field, so they are never mistaken for tags or keywords.
	quoted bool
	line   int
}

type tokenizer struct {
	scn    *bufio.Scanner
	line   int
	queue  []token
	atEOF  bool
	magic  string
}

func newTokenizer(r io.Reader) *tokenizer {
	scn := bufio.NewScanner(r)
	scn.Buffer(make([]byte, 0, 64*1024), 8*1024*1024) //mmCIF files have long lines
	return &tokenizer{scn: scn}
}

// next returns the next token and whether one was available.
func (tk *tokenizer) next() (token, bool, error) {
	for len(tk.queue) == 0 {
		if tk.atEOF {
			return token{}, false, nil
		}
		if err := tk.readLine(); err != nil {
			return token{}, false, err
		}
	}
	t := tk.queue[0]
	tk.queue = tk.queue[1:]
	return t, true, nil
}

func (tk *tokenizer) readLine() error {
	if !tk.scn.Scan() {
		tk.atEOF = true
		return tk.scn.Err()
	}
	tk.line++
	line := strings.TrimRight(tk.scn.Text(), "\r")
	if tk.line == 1 && strings.HasPrefix(line, "#\\#CIF_") {
		tk.magic = strings.TrimPrefix(strings.Fields(line)[0], "#\\#CIF_")
		return nil
	}
	if strings.HasPrefix(line, ";") {
		return tk.readTextField(line)
	}
	return tk.splitLine(line)
}

// readTextField accumulates a semicolon-delimited text field. The opening
// line's remainder is the first line of the value.
func (tk *tokenizer) readTextField(first string) error {
	var lines []string
	if rest := first[1:]; rest != "" {
		lines = append(lines, rest)
	}
	start := tk.line
	for tk.scn.Scan() {
		tk.line++
		line := strings.TrimRight(tk.scn.Text(), "\r")
		if strings.HasPrefix(line, ";") {
			tk.queue = append(tk.queue, token{text: strings.Join(lines, "\n"), quoted: true, line: start})
			return tk.splitLine(strings.TrimSpace(line[1:]))
		}
		lines = append(lines, line)
	}
	tk.atEOF = true
	if err := tk.scn.Err(); err != nil {
		return err
	}
	return errorf("cif: line %d: unterminated text field", start)
}

func (tk *tokenizer) splitLine(line string) error {
	i := 0
	n := len(line)
	for i < n {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			return nil
		case c == '\'' || c == '"':
			//the closing quote must be followed by whitespace or end the
			//line; a quote inside a token is part of the value.
			j := i + 1
			for {
				k := strings.IndexByte(line[j:], c)
				if k < 0 {
					return errorf("cif: line %d: unterminated quoted string", tk.line)
				}
				j += k
				if j+1 == n || line[j+1] == ' ' || line[j+1] == '\t' {
					break
				}
				j++
			}
			tk.queue = append(tk.queue, token{text: line[i+1 : j], quoted: true, line: tk.line})
			i = j + 1
		default:
			j := i
			for j < n && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			tk.queue = append(tk.queue, token{text: line[i:j], line: tk.line})
			i = j
		}
	}
	return nil
}

func isTag(t token) bool {
	return !t.quoted && strings.HasPrefix(t.text, "_")
}

func keyword(t token) string {
	if t.quoted {
		return ""
	}
	low := strings.ToLower(t.text)
	for _, kw := range []string{"data_", "save_", "loop_", "global_", "stop_"} {
		if strings.HasPrefix(low, kw) {
			return kw
		}
	}
	return ""
}

type parser struct {
	tk    *tokenizer
	doc   *Document
	block *Block
	frame *Block
	//one token of lookahead, for loop termination
	peeked *token
}

func (p *parser) next() (token, bool, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, true, nil
	}
	return p.tk.next()
}

func (p *parser) unread(t token) { p.peeked = &t }

// target is the block new items go into: the open save frame if there is
// one, the current data block otherwise.
func (p *parser) target() *Block {
	if p.frame != nil {
		return p.frame
	}
	return p.block
}

// Read parses a CIF document from r.
func Read(r io.Reader) (*Document, error) {
	p := &parser{tk: newTokenizer(r), doc: NewDocument()}
	for {
		t, ok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch keyword(t) {
		case "data_":
			p.frame = nil
			p.block = NewBlock(t.text[len("data_"):])
			p.doc.AddBlock(p.block)
		case "global_":
			p.frame = nil
			p.block = NewBlock(t.text)
			p.doc.AddBlock(p.block)
		case "save_":
			if name := t.text[len("save_"):]; name != "" {
				if p.block == nil {
					return nil, errorf("cif: line %d: save frame outside a data block", t.line)
				}
				if p.frame != nil {
					return nil, errorf("cif: line %d: nested save frame", t.line)
				}
				p.frame = NewBlock(name)
				p.block.AddFrame(p.frame)
			} else {
				if p.frame == nil {
					return nil, errorf("cif: line %d: save_ with no open frame", t.line)
				}
				p.frame = nil
			}
		case "loop_":
			if err := p.parseLoop(t); err != nil {
				return nil, err
			}
		case "stop_":
			//only meaningful in CIF's (unimplemented) nested loops
		default:
			if !isTag(t) {
				return nil, errorf("cif: line %d: expected data tag, found %q", t.line, t.text)
			}
			if p.target() == nil {
				return nil, errorf("cif: line %d: data item %s outside a data block", t.line, t.text)
			}
			v, ok, err := p.next()
			if err != nil {
				return nil, err
			}
			if !ok || (!v.quoted && (isTag(v) || keyword(v) != "")) {
				return nil, errorf("cif: line %d: data tag %s has no value", t.line, t.text)
			}
			p.target().SetScalar(t.text, v.text)
		}
	}
	p.doc.Version = p.tk.magic
	return p.doc, nil
}

func (p *parser) parseLoop(start token) error {
	if p.target() == nil {
		return errorf("cif: line %d: loop_ outside a data block", start.line)
	}
	var tags []string
	for {
		t, ok, err := p.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if !isTag(t) {
			p.unread(t)
			break
		}
		tags = append(tags, t.text)
	}
	if len(tags) == 0 {
		return errorf("cif: line %d: loop_ without data tags", start.line)
	}
	var values []string
	for {
		t, ok, err := p.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if !t.quoted && (isTag(t) || keyword(t) != "") {
			p.unread(t)
			break
		}
		values = append(values, t.text)
	}
	if len(values) == 0 || len(values)%len(tags) != 0 {
		return errorf("cif: line %d: loop with %d tags holds %d values, not a multiple",
			start.line, len(tags), len(values))
	}
	rows := len(values) / len(tags)
	cols := make([][]string, len(tags))
	for i := range cols {
		cols[i] = make([]string, rows)
	}
	for i, v := range values {
		cols[i%len(tags)][i/len(tags)] = v
	}
	lp, err := NewLoop(tags, cols)
	if err != nil {
		return err
	}
	p.target().AddLoop(lp)
	return nil
}

// ReadFile parses the named CIF file. Gzip-compressed files (as distributed
// by the PDB) are detected by their magic bytes and decompressed on the fly.
func ReadFile(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := bufio.NewReader(f)
	magic, err := buf.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buf)
		if err != nil {
			return nil, errorf("cif: %s: %v", name, err)
		}
		defer gz.Close()
		return Read(gz)
	}
	return Read(buf)
}
