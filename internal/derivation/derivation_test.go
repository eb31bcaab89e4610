package derivation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sequitur/internal/sl"
)

func TestAppend_AssignsDenseIndices(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.LastIndex())

	assert.Equal(t, 1, d.Append(sl.Prop('A'), RuleAssume, nil))
	assert.Equal(t, 2, d.Append(sl.Not(sl.Prop('A')), RuleAndElim, []int{1}))
	assert.Equal(t, 2, d.LastIndex())

	rows := d.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, []int{1}, rows[1].Citations)
}

func TestAppend_AssumeOpensScope(t *testing.T) {
	d := New()

	d.Append(sl.Prop('A'), RuleAssume, nil)
	require.Len(t, d.OpenScopes(), 1)
	assert.Equal(t, 1, d.OpenScopes()[0].AssumptionRow)

	// The assumption row counts its own scope.
	assert.Equal(t, 1, d.Rows()[0].OpenScopes)

	// Non-assumption rows do not open scopes.
	d.Append(sl.Prop('B'), RuleAndElim, []int{1})
	assert.Len(t, d.OpenScopes(), 1)
	assert.Equal(t, 1, d.Rows()[1].OpenScopes)
}

func TestScopeIDs_MonotonicAndUnique(t *testing.T) {
	d := New()

	assert.Equal(t, NoScope, d.CurrentScopeID())

	d.Append(sl.Prop('A'), RuleAssume, nil)
	first := d.CurrentScopeID()
	assert.Equal(t, 1, first)

	d.Append(sl.Prop('B'), RuleAssume, nil)
	second := d.CurrentScopeID()
	assert.Equal(t, 2, second)

	// Discharge and reopen: the ID is never reused.
	_, err := d.PopScope()
	require.NoError(t, err)
	assert.Equal(t, first, d.CurrentScopeID())

	d.Append(sl.Prop('C'), RuleAssume, nil)
	assert.Equal(t, 3, d.CurrentScopeID())
}

func TestPopScope_LIFO(t *testing.T) {
	d := New()
	d.Append(sl.Prop('A'), RuleAssume, nil)
	d.Append(sl.Prop('B'), RuleAssume, nil)

	scope, err := d.PopScope()
	require.NoError(t, err)
	assert.Equal(t, 2, scope.AssumptionRow)

	scope, err = d.PopScope()
	require.NoError(t, err)
	assert.Equal(t, 1, scope.AssumptionRow)

	_, err = d.PopScope()
	assert.Error(t, err)
}

func TestAddIon(t *testing.T) {
	d := New()

	// No open scope: recording must fail.
	err := d.AddIon(Ion{Row: 1, Positive: true, Letter: 'A'})
	assert.Error(t, err)

	d.Append(sl.Prop('A'), RuleAssume, nil)
	d.Append(sl.Prop('B'), RuleAssume, nil)

	// Ions land in the innermost scope, in recording order.
	require.NoError(t, d.AddIon(Ion{Row: 2, Positive: true, Letter: 'B'}))
	require.NoError(t, d.AddIon(Ion{Row: 3, Positive: false, Letter: 'B'}))

	scopes := d.OpenScopes()
	require.Len(t, scopes, 2)
	assert.Empty(t, scopes[0].Ions)
	require.Len(t, scopes[1].Ions, 2)
	assert.Equal(t, Ion{Row: 2, Positive: true, Letter: 'B'}, scopes[1].Ions[0])
}

func TestExchange_CitesLastRow(t *testing.T) {
	d := New()
	d.Append(sl.Not(sl.Not(sl.Prop('A'))), RuleAssume, nil)

	index := d.Exchange(sl.Prop('A'), RuleDoubleNeg)
	assert.Equal(t, 2, index)
	assert.Equal(t, []int{1}, d.Rows()[1].Citations)
}

func TestFormula(t *testing.T) {
	d := New()
	d.Append(sl.Prop('A'), RuleAssume, nil)

	f, err := d.Formula(1)
	require.NoError(t, err)
	assert.Equal(t, sl.Prop('A'), f)

	_, err = d.Formula(0)
	assert.Error(t, err)
	_, err = d.Formula(2)
	assert.Error(t, err)
}

func TestString_RendersScopeBars(t *testing.T) {
	d := New()
	d.Append(sl.Not(sl.Prop('A')), RuleAssume, nil)
	d.Append(sl.Prop('B'), RuleAssume, nil)
	d.Exchange(sl.Prop('A'), RuleAnyContra)
	_, err := d.PopScope()
	require.NoError(t, err)
	d.Append(sl.Implies(sl.Prop('B'), sl.Prop('A')), RuleArrowIntro, []int{2, 3})

	want := "1. | ~A    Assume\n" +
		"2. | | B    Assume\n" +
		"3. | | A    Any Contra. 2\n" +
		"4. | (B -> A)    -> intro. 2, 3\n"
	assert.Equal(t, want, d.String())
}
