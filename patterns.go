/*
 * patterns.go, part of goCryst.
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
	"regexp"
	"strings"
)

//label prefixes whose observation type is known. Checked in order, first
//match wins.
var observationTypes = []struct {
	prefix string
	obs    ObservationType
}{
	{"_refln.F_squared", ObsIntensity},
	{"_refln_F_squared", ObsIntensity},
	{"_refln.intensity", ObsIntensity},
	{"_refln.I(+)", ObsIntensity},
	{"_refln.I(-)", ObsIntensity},
	{"_refln.F_calc", ObsAmplitude},
	{"_refln.F_meas", ObsAmplitude},
	{"_refln.FP", ObsAmplitude},
	{"_refln.F-obs", ObsAmplitude},
	{"_refln.Fobs", ObsAmplitude},
	{"_refln.F-calc", ObsAmplitude},
	{"_refln.Fcalc", ObsAmplitude},
}

func guessObservationType(label string) ObservationType {
	for _, e := range observationTypes {
		if strings.HasPrefix(label, e.prefix) {
			return e.obs
		}
	}
	return ObsUnknown
}

type dataSigPair struct {
	data, sigma string
	obs         ObservationType
}

var (
	reDotSIG   = regexp.MustCompile(`^(\S*\.)SIG(\S*)$`)
	reUndSigma = regexp.MustCompile(`^(\S*)_sigma(\S*)$`)
	reMeas     = regexp.MustCompile(`^(\S*)_meas(\S*)$`)
	reCalc     = regexp.MustCompile(`^(\S*)_calc(\S*)$`)
	rePH       = regexp.MustCompile(`^(\S*PH)([^I]\S*)$`)
	rePHI      = regexp.MustCompile(`^(\S*PHI)(\S*)$`)
	rePHWT     = regexp.MustCompile(`^((\S*)PH)([^I]\S*WT)$`)
	rePhaseDot = regexp.MustCompile(`^(\S*\.)phase(_\S*)$`)
)

func removeLabel(labels []string, s string) []string {
	for i, l := range labels {
		if l == s {
			return append(labels[:i], labels[i+1:]...)
		}
	}
	return labels
}

func containsLabel(labels []string, s string) bool {
	for _, l := range labels {
		if l == s {
			return true
		}
	}
	return false
}

//fSigFLabels pairs data columns with their sigma columns. Three matching
//families apply in priority order: the mmCIF "SIG" convention
//(FP / SIGFP), the "_sigma" infix convention (F_meas_au / F_meas_sigma_au)
//and finally a cross of _meas and _calc stems against _sigma stems.
func fSigFLabels(labels []string) ([]dataSigPair, []string) {
	remaining := append([]string{}, labels...)
	var pairs []dataSigPair
	for _, s := range append([]string{}, remaining...) {
		m := reDotSIG.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		fi := m[1] + m[2]
		if fi != s && containsLabel(remaining, fi) && containsLabel(remaining, s) {
			pairs = append(pairs, dataSigPair{fi, s, guessObservationType(fi)})
			remaining = removeLabel(remaining, fi)
			remaining = removeLabel(remaining, s)
		}
	}
	for _, s := range append([]string{}, remaining...) {
		m := reUndSigma.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		fi := m[1] + m[2]
		if fi != s && containsLabel(remaining, fi) && containsLabel(remaining, s) {
			pairs = append(pairs, dataSigPair{fi, s, guessObservationType(fi)})
			remaining = removeLabel(remaining, fi)
			remaining = removeLabel(remaining, s)
		}
	}
	for _, d := range append([]string{}, remaining...) {
		m := reMeas.FindStringSubmatch(d)
		if m == nil {
			m = reCalc.FindStringSubmatch(d)
		}
		if m == nil {
			continue
		}
		for _, s := range append([]string{}, remaining...) {
			n := reUndSigma.FindStringSubmatch(s)
			if n == nil || s == d {
				continue
			}
			if m[1] == n[1] && m[2] == n[2] && containsLabel(remaining, d) {
				pairs = append(pairs, dataSigPair{d, s, guessObservationType(d)})
				remaining = removeLabel(remaining, d)
				remaining = removeLabel(remaining, s)
				break
			}
		}
	}
	return pairs, remaining
}

//mapCoefficientLabels pairs map-coefficient amplitude columns with their
//phase columns. Four families apply in priority order: PH with a
//non-I continuation (FWT / PHWT), PHI (FC / PHIC), PH..WT for the
//difference-map spellings (DELFWT / PHDELWT) and finally the small
//molecule ".phase_" convention against an F stem.
func mapCoefficientLabels(labels []string) ([][2]string, []string) {
	remaining := append([]string{}, labels...)
	var pairs [][2]string
	take := func(amp, phase string) {
		pairs = append(pairs, [2]string{amp, phase})
		remaining = removeLabel(remaining, amp)
		remaining = removeLabel(remaining, phase)
	}
	for _, p := range append([]string{}, remaining...) {
		if m := rePH.FindStringSubmatch(p); m != nil {
			amp := strings.ReplaceAll(m[1], "PH", "F") + m[2]
			if amp != p && containsLabel(remaining, amp) && containsLabel(remaining, p) {
				take(amp, p)
			}
		}
	}
	for _, p := range append([]string{}, remaining...) {
		if m := rePHI.FindStringSubmatch(p); m != nil {
			amp := strings.ReplaceAll(m[1], "PHI", "F") + m[2]
			if amp != p && containsLabel(remaining, amp) && containsLabel(remaining, p) {
				take(amp, p)
			}
		}
	}
	for _, p := range append([]string{}, remaining...) {
		if m := rePHWT.FindStringSubmatch(p); m != nil {
			amp := m[2] + strings.ReplaceAll(m[3], "WT", "FWT")
			if amp != p && containsLabel(remaining, amp) && containsLabel(remaining, p) {
				take(amp, p)
			}
		}
	}
	for _, p := range append([]string{}, remaining...) {
		m := rePhaseDot.FindStringSubmatch(p)
		if m == nil {
			continue
		}
		stem := m[1] + "F" + m[2]
		for _, amp := range append([]string{}, remaining...) {
			if amp != p && strings.Contains(amp, stem) {
				take(amp, p)
				break
			}
		}
	}
	return pairs, remaining
}

//hlQuadLabels groups Hendrickson-Lattman coefficient columns into
//complete (A, B, C, D) quads, keyed by whatever surrounds the letter
//("HLA" / "HLB" / ... as much as "HLanomA" / "HLanomB" / ...). Incomplete
//groups are left in the remaining set.
func hlQuadLabels(labels []string) ([][4]string, []string) {
	remaining := append([]string{}, labels...)
	type member struct {
		label  string
		letter byte
	}
	var order []string
	groups := make(map[string][]member)
	for _, s := range remaining {
		idx := strings.LastIndex(s, "HL")
		if idx < 0 {
			continue
		}
		rest := s[idx+2:]
		p := -1
		for i := len(rest) - 1; i >= 0; i-- {
			ch := rest[i]
			if (ch >= 'a' && ch <= 'd') || (ch >= 'A' && ch <= 'D') {
				p = i
				break
			}
		}
		if p < 0 {
			continue
		}
		letter := rest[p]
		if letter >= 'a' {
			letter -= 'a' - 'A'
		}
		gkey := s[:idx] + "\x00" + rest[:p] + "\x00" + rest[p+1:]
		if _, ok := groups[gkey]; !ok {
			order = append(order, gkey)
		}
		groups[gkey] = append(groups[gkey], member{s, letter})
	}
	var quads [][4]string
	for _, gkey := range order {
		ms := groups[gkey]
		if len(ms) != 4 {
			continue
		}
		var quad [4]string
		ok := true
		for _, mm := range ms {
			i := int(mm.letter - 'A')
			if i < 0 || i > 3 || quad[i] != "" {
				ok = false
				break
			}
			quad[i] = mm.label
		}
		if !ok {
			continue
		}
		quads = append(quads, quad)
		for _, mm := range ms {
			remaining = removeLabel(remaining, mm.label)
		}
	}
	return quads, remaining
}

//buildPattern associates the loop columns through the matching families,
//consuming labels as they pair up; whatever is left becomes a standalone
//array. Unlike the classic strategy it reads "?" values as NaN rather
//than dropping the rows.
func buildPattern(ctx *reflnContext, acc *ArrayCollection, info *ArrayInfo, wavelengths map[int]float64) error {
	for _, w := range ctx.wIDs {
		for _, c := range ctx.cIDs {
			for _, s := range ctx.sIDs {
				var deco []string
				if len(ctx.wIDs) > 1 && w != nil {
					deco = append(deco, fmt.Sprintf("wavelength_id=%d", *w))
				}
				if len(ctx.cIDs) > 1 && c != nil {
					deco = append(deco, fmt.Sprintf("crystal_id=%d", *c))
				}
				if len(ctx.sIDs) > 1 && s != nil {
					deco = append(deco, fmt.Sprintf("scale_group_code=%d", *s))
				}
				wavelength := lookupWavelength(w, wavelengths)
				store := func(arr *MillerArray, labels ...string) {
					lbls := append(append([]string{}, labels...), deco...)
					key := strings.Join(lbls, ",")
					if info != nil && info.Labels != nil {
						lbls = append(append([]string{}, info.Labels...), lbls...)
					}
					arr.Labels = lbls
					if arr.Wavelength == nil {
						arr.Wavelength = wavelength
					}
					acc.Set(key, arr)
				}
				pairs, remaining := fSigFLabels(ctx.loop.Tags())
				for _, p := range pairs {
					arr := ctx.stringsAsMillerArray(ctx.loop.Column(p.data), w, c, s)
					if arr == nil {
						continue
					}
					if sigArr := ctx.stringsAsMillerArray(ctx.loop.Column(p.sigma), w, c, s); sigArr != nil {
						sig, err := sigArr.floatData(p.sigma)
						if err != nil {
							return err
						}
						if len(sig) == arr.Size() {
							arr.Sigmas = sig
						} else {
							log.Printf("Miller arrays %q and %q are of different sizes, skipping", p.data, p.sigma)
						}
					}
					arr.ObsType = p.obs
					store(arr, p.data, p.sigma)
				}
				mapPairs, remaining2 := mapCoefficientLabels(remaining)
				for _, p := range mapPairs {
					amp := ctx.stringsAsMillerArray(ctx.loop.Column(p[0]), w, c, s)
					phases := ctx.stringsAsMillerArray(ctx.loop.Column(p[1]), w, c, s)
					if amp == nil || phases == nil {
						continue
					}
					phi, err := phases.floatData(p[1])
					if err != nil {
						return err
					}
					if amp.Size() != len(phi) {
						log.Printf("Miller arrays %q and %q are of different sizes, skipping", p[0], p[1])
						continue
					}
					merged, err := amp.PhaseTransfer(phi, true)
					if err != nil {
						return err
					}
					store(merged, p[0], p[1])
				}
				quads, remaining3 := hlQuadLabels(remaining2)
				for _, quad := range quads {
					arr, _, err := ctx.hlQuadFromLabels(quad, w, c, s)
					if err != nil {
						return err
					}
					if arr == nil {
						continue
					}
					store(arr, quad[:]...)
				}
				for _, label := range ctx.loop.Tags() {
					if strings.Contains(label, "index_") ||
						strings.HasSuffix(label, "wavelength_id") ||
						strings.HasSuffix(label, "crystal_id") ||
						strings.HasSuffix(label, "scale_group_code") {
						continue
					}
					if !containsLabel(remaining3, label) {
						continue
					}
					arr := ctx.stringsAsMillerArray(ctx.loop.Column(label), w, c, s)
					if arr == nil {
						continue
					}
					arr.ObsType = guessObservationType(label)
					store(arr, label)
				}
				rawSuffix := ""
				for _, d := range deco {
					rawSuffix += "," + d
				}
				recordRaw(ctx, acc, rawSuffix)
			}
		}
	}
	return nil
}

//hlQuadFromLabels builds the Hendrickson-Lattman array for a quad of
//labels already known to be ordered (A, B, C, D).
func (ctx *reflnContext) hlQuadFromLabels(quad [4]string, w, c, s *int) (*MillerArray, []string, error) {
	var cols [4][]string
	for i, lab := range quad {
		cols[i] = ctx.loop.Column(lab)
		if cols[i] == nil {
			return nil, nil, nil
		}
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
			v := cols[j][r]
			if ctx.nanQuestionMarks && v == "?" {
				v = "nan"
			}
			f, err := floatFromString(v)
			if err != nil {
				return nil, nil, newError(ErrInvalidValue,
					"Invalid floating-point value for %s: %s", quad[j], v)
			}
			data[i][j] = f
		}
	}
	return &MillerArray{Symmetry: ctx.sym, Indices: indices, HLData: data}, quad[:], nil
}
