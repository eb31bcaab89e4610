package sl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		formula Formula
		want    string
	}{
		{"atom", Prop('A'), "A"},
		{"negation", Not(Prop('A')), "~A"},
		{"double negation", Not(Not(Prop('A'))), "~~A"},
		{"conjunction", And(Prop('A'), Prop('B')), "(A & B)"},
		{"disjunction", Or(Prop('A'), Not(Prop('B'))), "(A v ~B)"},
		{"conditional", Implies(Prop('A'), Prop('B')), "(A -> B)"},
		{"biconditional", Iff(Prop('A'), Prop('B')), "(A <-> B)"},
		{"nested", Implies(And(Prop('A'), Prop('B')), Prop('A')), "((A & B) -> A)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.formula.String())
		})
	}
}

func TestEval(t *testing.T) {
	v := Valuation{'A': true, 'B': false}

	tests := []struct {
		name    string
		formula Formula
		want    bool
	}{
		{"true atom", Prop('A'), true},
		{"false atom", Prop('B'), false},
		{"absent letter defaults to false", Prop('Z'), false},
		{"negation", Not(Prop('B')), true},
		{"conjunction", And(Prop('A'), Prop('B')), false},
		{"disjunction", Or(Prop('A'), Prop('B')), true},
		{"conditional true antecedent", Implies(Prop('A'), Prop('B')), false},
		{"conditional false antecedent", Implies(Prop('B'), Prop('A')), true},
		{"biconditional", Iff(Prop('A'), Prop('B')), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.formula.Eval(v))
		})
	}
}

func TestStructuralEquality(t *testing.T) {
	// Formulas are comparable values; identical structure compares equal.
	assert.Equal(t, And(Prop('A'), Not(Prop('B'))), And(Prop('A'), Not(Prop('B'))))
	assert.True(t, Implies(Prop('A'), Prop('A')) == Implies(Prop('A'), Prop('A')))
	assert.False(t, And(Prop('A'), Prop('B')) == And(Prop('B'), Prop('A')))
}

func TestLetters(t *testing.T) {
	f := Implies(And(Prop('C'), Prop('A')), Or(Prop('B'), Prop('A')))
	assert.Equal(t, []byte{'A', 'B', 'C'}, Letters(f))

	assert.Equal(t, []byte{'Q'}, Letters(Not(Not(Prop('Q')))))
}

func TestValuations(t *testing.T) {
	letters := []byte{'A', 'B'}
	all := Valuations(letters)
	require.Len(t, all, 4)

	// Bit i of the counter drives letter i.
	assert.Equal(t, Valuation{'A': false, 'B': false}, all[0])
	assert.Equal(t, Valuation{'A': true, 'B': false}, all[1])
	assert.Equal(t, Valuation{'A': false, 'B': true}, all[2])
	assert.Equal(t, Valuation{'A': true, 'B': true}, all[3])

	// No letters: the single empty valuation.
	require.Len(t, Valuations(nil), 1)
}

func TestIsLiteral(t *testing.T) {
	assert.True(t, IsLiteral(Prop('A')))
	assert.True(t, IsLiteral(Not(Prop('A'))))
	assert.False(t, IsLiteral(Not(Not(Prop('A')))))
	assert.False(t, IsLiteral(And(Prop('A'), Prop('B'))))
	assert.False(t, IsLiteral(Not(And(Prop('A'), Prop('B')))))
}
