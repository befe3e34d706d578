/*
 * reflections.go, part of goCryst.
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
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/gocryst/cif"
)

// Strategy selects how reflection columns are associated into arrays.
type Strategy int

const (
	//StrategyClassic associates columns through fixed suffix conventions
	//(_sigma, PHWT, HL_, phase_ and so on) while walking the columns of
	//each loop in sorted order.
	StrategyClassic Strategy = iota
	//StrategyPattern associates columns through pattern-matching families
	//(SIG pairs, map-coefficient pairs, Hendrickson-Lattman quads) applied
	//in priority order over the whole label set.
	StrategyPattern
)

// ArrayInfo carries provenance that the reflection builder attaches to
// every array it makes: base labels (normally the source file name) and
// symmetry known from outside the block, which overrides block symmetry.
type ArrayInfo struct {
	Labels   []string
	Symmetry *CrystalSymmetry
}

// BuildArrays reads every reflection loop of the block and associates its
// columns into Miller arrays under the given strategy. The wavelengths
// map (id to wavelength) may be nil, in which case it is read from the
// block itself. It is an error for the block to yield no array at all.
func BuildArrays(block *cif.Block, info *ArrayInfo, wavelengths map[int]float64, strategy Strategy) (*ArrayCollection, error) {
	sym, err := BuildSymmetry(block, false)
	if err != nil {
		return nil, errDecorate(err, "BuildArrays")
	}
	if info != nil {
		sym = sym.Join(info.Symmetry, true)
	}
	if wavelengths == nil {
		wavelengths, err = GetWavelengths(block)
		if err != nil {
			return nil, errDecorate(err, "BuildArrays")
		}
	}
	acc := NewArrayCollection()
	for _, lp := range block.Loops() {
		indices, ok, err := loopIndices(lp)
		if err != nil {
			return nil, errDecorate(err, "BuildArrays")
		}
		if !ok {
			continue
		}
		ctx, err := newReflnContext(lp, indices, sym, strategy == StrategyPattern)
		if err != nil {
			return nil, errDecorate(err, "BuildArrays")
		}
		switch strategy {
		case StrategyClassic:
			err = buildClassic(ctx, acc, info, wavelengths)
			if err == nil {
				recordRaw(ctx, acc, "")
			}
		case StrategyPattern:
			err = buildPattern(ctx, acc, info, wavelengths)
		}
		if err != nil {
			return nil, errDecorate(err, "BuildArrays")
		}
	}
	mergeAnomalous(acc)
	if acc.Len() == 0 {
		return nil, newError(ErrNoReflectionData, "No reflection data present in cif block")
	}
	return acc, nil
}

//loopIndices extracts the Miller indices of a reflection loop. ok is
//false when the loop has no index_h column, meaning it is not a
//reflection loop at all.
func loopIndices(lp *cif.Loop) ([][3]int, bool, error) {
	var hTag string
	for _, tag := range lp.Tags() {
		if strings.Contains(tag, "index_h") {
			hTag = tag
			break
		}
	}
	if hTag == "" {
		return nil, false, nil
	}
	var cols [3][]string
	for i, axis := range [3]string{"index_h", "index_k", "index_l"} {
		tag := strings.Replace(hTag, "index_h", axis, 1)
		cols[i] = lp.Column(tag)
		if cols[i] == nil {
			return nil, false, newError(ErrMissingIndices, "Miller index column %s not found", tag)
		}
	}
	out := make([][3]int, lp.Len())
	for i := 0; i < lp.Len(); i++ {
		for j := 0; j < 3; j++ {
			n, err := strconv.Atoi(cols[j][i])
			if err != nil {
				return nil, false, newError(ErrInvalidIndex, "Invalid Miller index: %s", cols[j][i])
			}
			out[i][j] = n
		}
	}
	return out, true, nil
}

//reflnContext is the per-loop state of the reflection builder: the
//indices, the id columns that multiplex the loop into sub-datasets, and
//the parsing mode.
type reflnContext struct {
	loop    *cif.Loop
	indices [][3]int
	sym     *CrystalSymmetry
	//ids to iterate over; a single nil element when no split applies
	wIDs, cIDs, sIDs []*int
	//per-row id values, set only when the column splits the loop
	wVals, cVals, sVals    []int
	wValid, cValid, sValid []bool
	//pattern strategy reads "?" as NaN instead of excluding the row
	nanQuestionMarks bool
}

func newReflnContext(lp *cif.Loop, indices [][3]int, sym *CrystalSymmetry, nanQM bool) (*reflnContext, error) {
	ctx := &reflnContext{
		loop: lp, indices: indices, sym: sym,
		wIDs: []*int{nil}, cIDs: []*int{nil}, sIDs: []*int{nil},
		nanQuestionMarks: nanQM,
	}
	for _, tag := range lp.Tags() {
		var kind int
		switch {
		case strings.HasSuffix(tag, "wavelength_id"):
			kind = 0
		case strings.HasSuffix(tag, "crystal_id"):
			kind = 1
		case strings.HasSuffix(tag, "scale_group_code"):
			kind = 2
		default:
			continue
		}
		vals, valid, err := intColumn(lp.Column(tag), tag)
		if err != nil {
			return nil, err
		}
		if vals == nil {
			continue
		}
		distinct := distinctIDs(vals, valid)
		switch kind {
		case 0:
			//a uniform wavelength id still names the wavelength of the
			//whole loop, so it is kept even when it does not split it
			ctx.wIDs = idPtrs(distinct)
			if len(distinct) > 1 {
				ctx.wVals, ctx.wValid = vals, valid
			}
		case 1:
			if len(distinct) > 1 {
				ctx.cIDs = idPtrs(distinct)
				ctx.cVals, ctx.cValid = vals, valid
			}
		case 2:
			if len(distinct) > 1 {
				ctx.sIDs = idPtrs(distinct)
				ctx.sVals, ctx.sValid = vals, valid
			}
		}
	}
	return ctx, nil
}

func distinctIDs(vals []int, valid []bool) []int {
	seen := make(map[int]bool)
	var out []int
	for i, v := range vals {
		if valid[i] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func idPtrs(ids []int) []*int {
	out := make([]*int, len(ids))
	for i := range ids {
		v := ids[i]
		out[i] = &v
	}
	return out
}

//selection returns the rows of a data column that belong to the
//(wavelength, crystal, scale group) combination: placeholder rows are
//excluded, as are rows whose id columns do not match or are themselves
//placeholders.
func (ctx *reflnContext) selection(col []string, w, c, s *int) []int {
	var rows []int
	for i, v := range col {
		if ctx.nanQuestionMarks && v == "?" {
			v = "nan"
		}
		if isPlaceholder(v) {
			continue
		}
		if w != nil && ctx.wVals != nil && !(ctx.wValid[i] && ctx.wVals[i] == *w) {
			continue
		}
		if c != nil && ctx.cVals != nil && !(ctx.cValid[i] && ctx.cVals[i] == *c) {
			continue
		}
		if s != nil && ctx.sVals != nil && !(ctx.sValid[i] && ctx.sVals[i] == *s) {
			continue
		}
		rows = append(rows, i)
	}
	return rows
}

//stringsAsMillerArray makes the best-typed array out of a raw column:
//integer if every selected value parses as one, floating point if every
//value parses as a float, and otherwise a string array of the whole
//column. nil is returned when the selection is empty.
func (ctx *reflnContext) stringsAsMillerArray(col []string, w, c, s *int) *MillerArray {
	if col == nil {
		return nil
	}
	rows := ctx.selection(col, w, c, s)
	if len(rows) == 0 {
		return nil
	}
	indices := make([][3]int, len(rows))
	vals := make([]string, len(rows))
	for i, r := range rows {
		indices[i] = ctx.indices[r]
		vals[i] = col[r]
		if ctx.nanQuestionMarks && vals[i] == "?" {
			vals[i] = "nan"
		}
	}
	arr := &MillerArray{Symmetry: ctx.sym, Indices: indices}
	ints := make([]int, len(vals))
	isInt := true
	for i, v := range vals {
		n, err := strconv.Atoi(v)
		if err != nil {
			isInt = false
			break
		}
		ints[i] = n
	}
	if isInt {
		arr.IntData = ints
		return arr
	}
	floats := make([]float64, len(vals))
	isFloat := true
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			isFloat = false
			break
		}
		floats[i] = f
	}
	if isFloat {
		arr.FloatData = floats
		return arr
	}
	//uninterpretable columns are kept whole, selection and all
	arr.Indices = append([][3]int{}, ctx.indices...)
	arr.StringData = append([]string{}, col...)
	return arr
}

func lookupWavelength(w *int, wavelengths map[int]float64) *float64 {
	if w == nil || wavelengths == nil {
		return nil
	}
	if v, ok := wavelengths[*w]; ok {
		v2 := v
		return &v2
	}
	return nil
}

//rstripSubstrings removes each of the given suffixes at most once, in
//order, from the end of s.
func rstripSubstrings(s string, subs []string) string {
	for _, sub := range subs {
		if sub != "" && strings.HasSuffix(s, sub) {
			s = s[:len(s)-len(sub)]
		}
	}
	return s
}

func isIntensityKey(stripped string) bool {
	return strings.HasSuffix(stripped, "F_squared") ||
		strings.HasSuffix(stripped, "intensity") ||
		strings.HasSuffix(stripped, ".I") ||
		strings.HasSuffix(stripped, "_I")
}

//buildClassic walks the loop columns in sorted order and associates them
//through the historical suffix conventions.
func buildClassic(ctx *reflnContext, acc *ArrayCollection, info *ArrayInfo, wavelengths map[int]float64) error {
	labels := append([]string{}, ctx.loop.Tags()...)
	sort.Strings(labels)
	for _, w := range ctx.wIDs {
		for _, c := range ctx.cIDs {
			for _, s := range ctx.sIDs {
				for _, label := range labels {
					if strings.Contains(label, "index_") {
						continue
					}
					w2, c2, s2 := w, c, s
					//the id columns themselves become plain arrays, never split
					if strings.HasSuffix(label, "wavelength_id") ||
						strings.HasSuffix(label, "crystal_id") ||
						strings.HasSuffix(label, "scale_group_code") {
						w2, c2, s2 = nil, nil, nil
					}
					keySuffix := ""
					lbls := []string{label}
					if w2 != nil {
						keySuffix += fmt.Sprintf("_%d", *w2)
						lbls = append([]string{fmt.Sprintf("wavelength_id=%d", *w2)}, lbls...)
					}
					if c2 != nil {
						keySuffix += fmt.Sprintf("_%d", *c2)
						lbls = append([]string{fmt.Sprintf("crystal_id=%d", *c2)}, lbls...)
					}
					if s2 != nil {
						keySuffix += fmt.Sprintf("_%d", *s2)
						lbls = append([]string{fmt.Sprintf("scale_group_code=%d", *s2)}, lbls...)
					}
					wavelength := lookupWavelength(w2, wavelengths)
					key := label + keySuffix
					if acc.Get(key) != nil {
						continue
					}
					arr := ctx.stringsAsMillerArray(ctx.loop.Column(label), w2, c2, s2)
					if arr == nil {
						continue
					}
					var hlLabels []string
					switch {
					case strings.Contains(key, "_sigma"):
						resolved := false
						for _, suf := range []string{"", "_meas", "_calc"} {
							cand := strings.ReplaceAll(label, "_sigma", suf)
							if ctx.loop.Column(cand) != nil {
								key = cand + keySuffix
								resolved = true
								break
							}
						}
						if !resolved {
							key = label + keySuffix
						}
						if existing := acc.Get(key); existing != nil && existing.Sigmas == nil {
							sig, err := arr.floatData(label)
							if err != nil {
								return err
							}
							if len(sig) != existing.Size() {
								log.Printf("Miller arrays %q and %q are of different sizes, skipping", key, label)
								continue
							}
							existing.Sigmas = sig
							existing.Labels = append(existing.Labels, label)
							if wavelength != nil {
								existing.Wavelength = wavelength
							}
							continue
						}
					case strings.Contains(key, "PHWT"):
						fwtLabel := strings.ReplaceAll(label, "PHWT", "FWT")
						if ctx.loop.Column(fwtLabel) == nil {
							continue
						}
						if existing := acc.Get(fwtLabel); existing != nil {
							phases, err := arr.floatData(label)
							if err != nil {
								return err
							}
							if len(phases) != existing.Size() {
								log.Printf("Miller arrays %q and %q are of different sizes, skipping", fwtLabel, label)
								continue
							}
							merged, err := existing.PhaseTransfer(phases, true)
							if err != nil {
								return err
							}
							merged.Labels = append(append([]string{}, existing.Labels...), label)
							acc.Set(fwtLabel, merged)
							continue
						}
					case strings.Contains(key, "HL_") && hlLetter(label) != 0:
						letter := hlLetter(label)
						key = strings.ReplaceAll(label, "HL_"+string(letter), "HL_A") + keySuffix
						if acc.Get(key) != nil {
							continue
						}
						quad, qlabels, err := ctx.hlQuad(label, letter, w2, c2, s2)
						if err != nil {
							return err
						}
						if quad != nil {
							arr = quad
							hlLabels = qlabels
						}
					case strings.Contains(key, ".B_") || strings.Contains(key, "_B_"):
						var labelA string
						if strings.Contains(key, ".B_") {
							key = strings.ReplaceAll(key, ".B_", ".A_")
							labelA = strings.ReplaceAll(label, ".B_", ".A_")
						} else {
							key = strings.ReplaceAll(key, "_B", "_A")
							labelA = strings.ReplaceAll(label, "_B", "_A")
						}
						if ctx.loop.Column(labelA) != nil {
							if existing := acc.Get(key); existing != nil {
								a, err := existing.floatData(key)
								if err != nil {
									return err
								}
								b, err := arr.floatData(label)
								if err != nil {
									return err
								}
								if len(a) != len(b) {
									log.Printf("Miller arrays %q and %q are of different sizes, skipping", key, label)
									continue
								}
								data := make([]complex128, len(a))
								for i := range a {
									data[i] = complex(a[i], b[i])
								}
								merged := &MillerArray{
									Symmetry:    existing.Symmetry,
									Indices:     existing.Indices,
									ComplexData: data,
									Labels:      append(append([]string{}, existing.Labels...), label),
								}
								acc.Set(key, merged)
								continue
							}
						}
					case strings.Contains(key, "phase_") && !strings.Contains(key, "_meas") &&
						ctx.sym != nil && ctx.sym.SpaceGroup != nil:
						alt1 := strings.ReplaceAll(label, "phase_", "F_")
						alt2 := alt1 + "_au"
						target := ""
						if ctx.loop.Column(alt1) != nil {
							target = alt1
						} else if ctx.loop.Column(alt2) != nil {
							target = alt2
						}
						if target != "" {
							key = target + keySuffix
							phases, err := arr.floatData(label)
							if err != nil {
								return err
							}
							if existing := acc.Get(key); existing != nil {
								if existing.Size() != len(phases) {
									log.Printf("Miller arrays %q and %q are of different sizes, skipping", key, label)
									continue
								}
								merged, err := existing.PhaseTransfer(phases, true)
								if err != nil {
									return err
								}
								merged.Labels = append(append([]string{}, existing.Labels...), label)
								acc.Set(key, merged)
								continue
							}
						}
					}
					if hlLabels != nil {
						lbls = append(lbls[:len(lbls)-1], hlLabels...)
					}
					if info != nil && info.Labels != nil {
						lbls = append(append([]string{}, info.Labels...), lbls...)
					}
					stripped := rstripSubstrings(key,
						[]string{keySuffix, "_au", "_meas", "_calc", "_plus", "_minus"})
					if isIntensityKey(stripped) && (arr.IsReal() || arr.IsInteger()) {
						arr.ObsType = ObsIntensity
					} else if strings.HasSuffix(stripped, "F") && (arr.IsReal() || arr.IsInteger()) {
						arr.ObsType = ObsAmplitude
					}
					//amplitudes are always floating point, even when the
					//column held plain integers
					if strings.HasSuffix(stripped, "F") && arr.IsInteger() {
						arr.promoteToFloat()
					}
					arr.Labels = lbls
					if arr.ObsType == ObsAmplitude && wavelength != nil {
						arr.Wavelength = wavelength
					}
					acc.SetDefault(key, arr)
				}
			}
		}
	}
	return nil
}

//hlLetter returns the coefficient letter following "HL_" in the label, or
//zero when there is none.
func hlLetter(label string) byte {
	i := strings.Index(label, "HL_")
	if i < 0 || i+3 >= len(label) {
		return 0
	}
	return label[i+3]
}

//hlQuad builds the Hendrickson-Lattman array for a label naming one of
//the four coefficient columns. nil is returned (without error) when the
//other three columns are not all present; the caller then treats the
//column as a standalone array.
func (ctx *reflnContext) hlQuad(label string, letter byte, w, c, s *int) (*MillerArray, []string, error) {
	hlLabels := make([]string, 4)
	var cols [4][]string
	for j, l := range []byte{'A', 'B', 'C', 'D'} {
		lab := strings.ReplaceAll(label, "HL_"+string(letter), "HL_"+string(l))
		col := ctx.loop.Column(lab)
		if col == nil {
			return nil, nil, nil
		}
		hlLabels[j] = lab
		cols[j] = col
	}
	rows := ctx.selection(cols[0], w, c, s)
	if len(rows) == 0 {
		return nil, nil, nil
	}
	indices := make([][3]int, len(rows))
	data := make([][4]float64, len(rows))
	for i, r := range rows {
		indices[i] = ctx.indices[r]
		for j := 0; j < 4; j++ {
			f, err := floatFromString(cols[j][r])
			if err != nil {
				return nil, nil, newError(ErrInvalidValue,
					"Invalid floating-point value for %s: %s", hlLabels[j], cols[j][r])
			}
			data[i][j] = f
		}
	}
	return &MillerArray{Symmetry: ctx.sym, Indices: indices, HLData: data}, hlLabels, nil
}

//mergeAnomalous replaces every Friedel pair of arrays with a single
//anomalous array holding the minus member under negated indices.
func mergeAnomalous(acc *ArrayCollection) {
	for _, key := range acc.Keys() {
		if acc.Get(key) == nil {
			continue
		}
		var plusKey, minusKey string
		switch {
		case strings.Contains(key, "_minus"):
			minusKey, plusKey = key, strings.ReplaceAll(key, "_minus", "_plus")
		case strings.Contains(key, "-"):
			minusKey, plusKey = key, strings.ReplaceAll(key, "-", "+")
		case strings.Contains(key, "_plus"):
			plusKey, minusKey = key, strings.ReplaceAll(key, "_plus", "_minus")
		case strings.Contains(key, "+"):
			plusKey, minusKey = key, strings.ReplaceAll(key, "+", "-")
		default:
			continue
		}
		if plusKey == minusKey {
			continue
		}
		plus, minus := acc.Get(plusKey), acc.Get(minusKey)
		if plus == nil || minus == nil {
			continue
		}
		merged, err := concatAnomalous(plus, minus)
		if err != nil {
			log.Printf("Cannot merge %q and %q: %v", plusKey, minusKey, err)
			continue
		}
		acc.Delete(plusKey)
		acc.Delete(minusKey)
		acc.SetDefault(key, merged)
	}
}

//recordRaw keeps a type-coerced copy of every column of the loop, with
//the category prefix stripped from the key, plus the indices themselves
//under "HKLs".
func recordRaw(ctx *reflnContext, acc *ArrayCollection, labelSuffix string) {
	acc.SetRaw("HKLs", &RawColumn{Indices: append([][3]int{}, ctx.indices...)})
	for _, tag := range ctx.loop.Tags() {
		col := ctx.loop.Column(tag)
		if ctx.nanQuestionMarks {
			sub := make([]string, len(col))
			for i, v := range col {
				if v == "?" {
					v = "nan"
				}
				sub[i] = v
			}
			col = sub
		}
		key := rawKey(tag) + labelSuffix
		if floats := floatColumnElseNil(col); floats != nil {
			acc.SetRaw(key, &RawColumn{Floats: floats})
		} else {
			acc.SetRaw(key, &RawColumn{Strings: append([]string{}, col...)})
		}
	}
}

func rawKey(tag string) string {
	if strings.HasPrefix(tag, "_refln.") {
		return tag[len("_refln."):]
	}
	if strings.HasPrefix(tag, "_refln_") {
		return tag[len("_refln_"):]
	}
	return tag
}
