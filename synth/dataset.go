// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// dataset.go — the output bundle of one generation call.

package synth

import (
	"github.com/katalvlaran/spotsynth/aggregate"
	"github.com/katalvlaran/spotsynth/matrix"
	"github.com/katalvlaran/spotsynth/spot"
)

// Dataset is owned by the caller; nothing in it is shared with the catalog.
type Dataset struct {
	Counts       *aggregate.CountMatrix // genes × spots
	Composition  Composition            // cells per spot and cell type
	Relative     Composition            // Composition rows divided by their totals
	GoldStandard GoldStandard           // frequency table the spots were drawn from
	Properties   Properties
	Spots        []spot.Spot // in column order of Counts
}

// Composition is a spots × cell-types table with name and region columns.
type Composition struct {
	CellTypes []string
	Names     []string
	Regions   []string
	Values    *matrix.Dense
}

// GoldStandard is the region × cell-type relative frequency table. The mock
// region is not part of it.
type GoldStandard struct {
	Regions   []string
	CellTypes []string
	Freq      *matrix.Dense
}

// Properties is an insertion-ordered string map.
type Properties struct {
	keys []string
	vals map[string]string
}

// Set stores v under k, keeping k's original position when it already exists.
func (p *Properties) Set(k, v string) {
	if p.vals == nil {
		p.vals = make(map[string]string)
	}
	if _, ok := p.vals[k]; !ok {
		p.keys = append(p.keys, k)
	}
	p.vals[k] = v
}

// Get returns the value stored under k.
func (p Properties) Get(k string) (string, bool) {
	v, ok := p.vals[k]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p Properties) Keys() []string { return append([]string(nil), p.keys...) }

// Len returns the number of keys.
func (p Properties) Len() int { return len(p.keys) }
