// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import "slices"

// Entry is one named candidate issuer certificate.
type Entry struct {
	Name string
	PEM  []byte
}

// Pool is an ordered set of candidate issuers with unique names.
//
// The zero value is an empty pool. Pool is a value type: [Pool.Without]
// and [Pool.Add] never modify storage shared with other copies.
type Pool struct {
	entries []Entry
}

// NewPool creates a pool from entries in order. A repeated name replaces
// the earlier entry at its original position.
func NewPool(entries ...Entry) Pool {
	var p Pool
	for _, e := range entries {
		p.Add(e.Name, e.PEM)
	}
	return p
}

// Add appends a candidate, or replaces the candidate with the same name in place.
func (p *Pool) Add(name string, pem []byte) {
	entries := slices.Clone(p.entries)
	if i := p.index(name); i >= 0 {
		entries[i].PEM = pem
	} else {
		entries = append(entries, Entry{Name: name, PEM: pem})
	}
	p.entries = entries
}

// Without returns a copy of the pool without the named candidate.
func (p Pool) Without(name string) Pool {
	i := p.index(name)
	if i < 0 {
		return Pool{entries: slices.Clone(p.entries)}
	}
	return Pool{entries: slices.Delete(slices.Clone(p.entries), i, i+1)}
}

// Get returns the PEM of the named candidate.
func (p Pool) Get(name string) ([]byte, bool) {
	if i := p.index(name); i >= 0 {
		return p.entries[i].PEM, true
	}
	return nil, false
}

// Len returns the number of candidates.
func (p Pool) Len() int { return len(p.entries) }

// Entries returns the candidates in caller order.
func (p Pool) Entries() []Entry { return slices.Clone(p.entries) }

func (p Pool) index(name string) int {
	return slices.IndexFunc(p.entries, func(e Entry) bool { return e.Name == name })
}
