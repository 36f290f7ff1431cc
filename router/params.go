// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import "fmt"

// Params holds the decoded path-parameter values for a single matched
// request, split by type into four parallel sequences, plus an
// appearance-order index so a handler can recover the original
// left-to-right sequence across types.
type Params struct {
	Ints    []int64
	Uints   []uint64
	Floats  []float64
	Strs    []string
	order   []Kind // appearance order, one entry per captured parameter
	idxByOr []int  // index into the matching typed slice, parallel to order
}

func (p *Params) reset() {
	p.Ints = p.Ints[:0]
	p.Uints = p.Uints[:0]
	p.Floats = p.Floats[:0]
	p.Strs = p.Strs[:0]
	p.order = p.order[:0]
	p.idxByOr = p.idxByOr[:0]
}

func (p *Params) appendInt(v int64) {
	p.idxByOr = append(p.idxByOr, len(p.Ints))
	p.Ints = append(p.Ints, v)
	p.order = append(p.order, KindInt)
}

func (p *Params) appendUint(v uint64) {
	p.idxByOr = append(p.idxByOr, len(p.Uints))
	p.Uints = append(p.Uints, v)
	p.order = append(p.order, KindUint)
}

func (p *Params) appendFloat(v float64) {
	p.idxByOr = append(p.idxByOr, len(p.Floats))
	p.Floats = append(p.Floats, v)
	p.order = append(p.order, KindFloat)
}

func (p *Params) appendStr(v string, isPath bool) {
	p.idxByOr = append(p.idxByOr, len(p.Strs))
	p.Strs = append(p.Strs, v)
	if isPath {
		p.order = append(p.order, KindPath)
	} else {
		p.order = append(p.order, KindStr)
	}
}

// Len reports the total number of captured parameters, across all kinds,
// in pattern order.
func (p *Params) Len() int { return len(p.order) }

// At returns the i-th captured parameter, in pattern order, boxed as any.
func (p *Params) At(i int) any {
	switch p.order[i] {
	case KindInt:
		return p.Ints[p.idxByOr[i]]
	case KindUint:
		return p.Uints[p.idxByOr[i]]
	case KindFloat:
		return p.Floats[p.idxByOr[i]]
	case KindStr, KindPath:
		return p.Strs[p.idxByOr[i]]
	default:
		return nil
	}
}

// Tag recomputes the runtime parameter tag implied by the decoded
// sequence. Used by tests asserting a pattern's tag round-trips
// through a match.
func (p *Params) Tag() Tag {
	var tag uint64
	for _, k := range p.order {
		tag = tag*maxBaseUnit + k.digit()
	}
	return Tag(tag)
}

func (p *Params) String() string {
	return fmt.Sprintf("Params{ints=%v uints=%v floats=%v strs=%v}", p.Ints, p.Uints, p.Floats, p.Strs)
}
