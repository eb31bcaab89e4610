package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sequitur/internal/sl"
)

func TestFindCounterexample(t *testing.T) {
	a, b := sl.Prop('A'), sl.Prop('B')

	tests := []struct {
		name    string
		dnf     sl.Formula
		letters []byte
		want    sl.Valuation
		found   bool
	}{
		{
			name:    "single satisfiable disjunct",
			dnf:     sl.And(sl.Not(a), b),
			letters: []byte{'A', 'B'},
			want:    sl.Valuation{'A': false, 'B': true},
			found:   true,
		},
		{
			name:    "contradictory disjunct skipped",
			dnf:     sl.Or(sl.And(a, sl.Not(a)), b),
			letters: []byte{'A', 'B'},
			want:    sl.Valuation{'A': false, 'B': true},
			found:   true,
		},
		{
			name:    "all disjuncts contradictory",
			dnf:     sl.Or(sl.And(a, sl.Not(a)), sl.And(b, sl.Not(b))),
			letters: []byte{'A', 'B'},
			found:   false,
		},
		{
			name:    "bare literal",
			dnf:     sl.Not(a),
			letters: []byte{'A'},
			want:    sl.Valuation{'A': false},
			found:   true,
		},
		{
			name:    "letters absent from disjunct default to false",
			dnf:     sl.Or(sl.And(a, sl.Not(a)), sl.Not(b)),
			letters: []byte{'A', 'B'},
			want:    sl.Valuation{'A': false, 'B': false},
			found:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindCounterexample(tt.dnf, tt.letters)
			require.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestDisjunctFlattening(t *testing.T) {
	a, b, c := sl.Prop('A'), sl.Prop('B'), sl.Prop('C')

	flat := disjuncts(sl.Or(sl.Or(a, b), c))
	require.Len(t, flat, 3)
	assert.Equal(t, a, flat[0])
	assert.Equal(t, b, flat[1])
	assert.Equal(t, c, flat[2])

	lits := conjuncts(sl.And(a, sl.And(sl.Not(b), c)))
	require.Len(t, lits, 3)
	assert.Equal(t, a, lits[0])
	assert.Equal(t, sl.Not(b), lits[1])
}
