package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sequitur/internal/check"
	"github.com/roach88/sequitur/internal/derivation"
	"github.com/roach88/sequitur/internal/sl"
	"github.com/roach88/sequitur/internal/testutil"
)

// Every tautology in the corpus must come back with a derivation that
// the independent checker accepts and that concludes with the formula
// itself, all scopes discharged.
func TestDecide_Tautologies(t *testing.T) {
	for _, text := range testutil.Tautologies {
		t.Run(text, func(t *testing.T) {
			f := testutil.MustParse(t, text)

			verdict, err := Decide(f)
			require.NoError(t, err)

			taut, ok := verdict.(Tautology)
			require.True(t, ok, "got %s", verdict)
			require.NotNil(t, taut.Proof)

			require.NoError(t, check.Target(taut.Proof, f))
			assert.Empty(t, taut.Proof.OpenScopes())
		})
	}
}

// Every refutable formula must come back with a valuation that
// actually falsifies it and that covers every sentence letter.
func TestDecide_Refutables(t *testing.T) {
	for _, text := range testutil.Refutables {
		t.Run(text, func(t *testing.T) {
			f := testutil.MustParse(t, text)

			verdict, err := Decide(f)
			require.NoError(t, err)

			ref, ok := verdict.(Refutable)
			require.True(t, ok, "got %s", verdict)

			assert.False(t, f.Eval(ref.Valuation), "valuation %v does not falsify", ref.Valuation)
			for _, letter := range sl.Letters(f) {
				_, present := ref.Valuation[letter]
				assert.True(t, present, "letter %c missing from valuation", letter)
			}
		})
	}
}

func TestDecide_ProofShape(t *testing.T) {
	f := testutil.MustParse(t, "A -> A")

	verdict, err := Decide(f)
	require.NoError(t, err)

	taut, ok := verdict.(Tautology)
	require.True(t, ok)

	want := "1. | ~(A -> A)    Assume\n" +
		"2. | ~(~A v A)    -> exch. 1\n" +
		"3. | (~~A & ~A)    De Morgan's 2\n" +
		"4. | (A & ~A)    ~~ elim. 3\n" +
		"5. | A    & elim 4\n" +
		"6. | ~A    & elim 4\n" +
		"7. | (A & ~A)    & intro. 5, 6\n" +
		"8. (~(A -> A) -> (A & ~A))    -> intro. 1, 7\n" +
		"9. (A -> A)    ~ elim. 8\n"
	assert.Equal(t, want, taut.Proof.String())
}

// A disjunctive normal form with several unsatisfiable disjuncts forces
// proof by cases; the right branch converges on the left branch's
// conclusion through the contradiction rule.
func TestDecide_DisjunctionElimination(t *testing.T) {
	f := testutil.MustParse(t, "~((A & ~A) v (B & ~B))")

	verdict, err := Decide(f)
	require.NoError(t, err)

	taut, ok := verdict.(Tautology)
	require.True(t, ok)
	require.NoError(t, check.Target(taut.Proof, f))

	rules := make(map[string]int)
	for _, row := range taut.Proof.Rows() {
		rules[row.Rule]++
	}
	assert.Equal(t, 1, rules[derivation.RuleOrElim])
	assert.Equal(t, 1, rules[derivation.RuleAnyContra])
	assert.Equal(t, 3, rules[derivation.RuleAssume])
}

// Nested disjunctions must still produce a checkable proof: the forced
// conclusion has to reach every branch.
func TestDecide_NestedDisjunctions(t *testing.T) {
	inputs := []string{
		"~((A & ~A) v ((B & ~B) v (A & ~A)))",
		"~(((A & ~A) v (B & ~B)) v (C & ~C))",
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			f := testutil.MustParse(t, text)

			verdict, err := Decide(f)
			require.NoError(t, err)

			taut, ok := verdict.(Tautology)
			require.True(t, ok, "got %s", verdict)
			require.NoError(t, check.Target(taut.Proof, f))
		})
	}
}

// A refuted conditional gets a valuation satisfying its antecedent and
// falsifying its consequent.
func TestDecide_CounterexampleShape(t *testing.T) {
	f := testutil.MustParse(t, "(A v B) -> C")

	verdict, err := Decide(f)
	require.NoError(t, err)

	ref, ok := verdict.(Refutable)
	require.True(t, ok)

	assert.False(t, ref.Valuation['C'])
	assert.True(t, ref.Valuation['A'] || ref.Valuation['B'])
}

func TestDecide_StepBudget(t *testing.T) {
	f := testutil.MustParse(t, "A -> A")

	_, err := Decide(f, WithMaxSteps(1))
	require.Error(t, err)
	assert.True(t, derivation.IsStepsExceededError(err))
}

func TestVerdictStrings(t *testing.T) {
	assert.Equal(t, "tautology", Tautology{}.String())

	r := Refutable{Valuation: sl.Valuation{'B': true, 'A': false}}
	assert.Equal(t, "refutable: A=false B=true", r.String())
}
