package ot_test

import (
	"errors"
	"testing"

	"github.com/limaJavier/ottypology/pkg/gen"
	"github.com/limaJavier/ottypology/pkg/ot"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T) *gen.Generator {
	generator, err := gen.NewGenerator("CCCVV", 3)
	require.Nil(t, err)
	return generator
}

func input(root, residue string) ot.Input {
	return ot.Input{Root: ot.MustParseSequence(root), Residue: ot.MustParseSequence(residue)}
}

func newTableau(t *testing.T, stem ot.Input, ranking ...string) *ot.Tableau {
	tableau, err := ot.NewTableau(stem, ot.MustConstraintSet(ranking...), newGenerator(t).Candidates(stem))
	require.Nil(t, err)
	return tableau
}

func TestTableau(t *testing.T) {
	scenarios := []struct {
		name     string
		input    ot.Input
		ranking  []string
		winners  []string
		typology ot.Typology
	}{
		{
			name:     "Suffixing residue",
			input:    input("C1 C2 V3", "V4 C5"),
			ranking:  []string{"contiguity", "align_left_root", "align_right_residue", "align_left_residue", "align_right_root", "c_adj_v"},
			winners:  []string{"C1 C2 V3 V4 C5"},
			typology: ot.ConcatSuffix,
		},
		{
			name:     "Prefixing residue",
			input:    input("C1 C2 V3", "V4 C5"),
			ranking:  []string{"contiguity", "align_left_residue", "align_right_root", "align_left_root", "align_right_residue", "c_adj_v"},
			winners:  []string{"V4 C5 C1 C2 V3"},
			typology: ot.ConcatPrefix,
		},
		{
			name:     "Infixing residue",
			input:    input("C1 C2 V3", "V4 C5"),
			ranking:  []string{"c_adj_v", "align_left_root", "align_right_root", "align_left_residue", "contiguity", "align_right_residue"},
			winners:  []string{"C1 V4 C5 C2 V3"},
			typology: ot.Infix,
		},
		{
			name:     "Arabic-like interleaving",
			input:    input("C1 C2 C3", "V4 V5"),
			ranking:  []string{"c_adj_v", "align_left_root", "align_right_root", "align_left_residue", "align_right_residue", "contiguity"},
			winners:  []string{"C1 V4 C2 V5 C3"},
			typology: ot.NonconcatCV,
		},
		{
			name:     "Unattested interleaving",
			input:    input("C1 C2 V3", "V4 C5"),
			ranking:  []string{"c_adj_v", "align_left_root", "align_right_residue", "align_left_residue", "align_right_root", "contiguity"},
			winners:  []string{"C1 V4 C2 V3 C5"},
			typology: ot.Unattested,
		},
		{
			name:     "Tied winners",
			input:    input("V1 C2 V3", "C4 C5"),
			ranking:  []string{"align_left_root", "align_right_residue", "align_right_root", "c_adj_v", "contiguity"},
			winners:  []string{"V1 C2 C4 V3 C5", "V1 C4 C2 V3 C5"},
			typology: ot.Unattested,
		},
		{
			name:     "Unattested interleaving with anchors",
			input:    input("C1 C2 V3", "V4 C5"),
			ranking:  []string{"anchor_right_residue", "anchor_left_root", "anchor_right_root", "anchor_left_residue", "c_adj_v", "contiguity"},
			winners:  []string{"C1 V4 C2 V3 C5"},
			typology: ot.Unattested,
		},
		{
			name:     "Tied winners with anchors",
			input:    input("V1 C2 V3", "C4 C5"),
			ranking:  []string{"c_adj_v", "anchor_left_root", "contiguity", "anchor_left_residue", "anchor_right_root", "anchor_right_residue"},
			winners:  []string{"V1 C2 C4 V3 C5", "V1 C4 C2 V3 C5"},
			typology: ot.Unattested,
		},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			g := NewWithT(t)

			//** Act
			tableau := newTableau(t, scenario.input, scenario.ranking...)

			//** Assert
			expected := make([]ot.Sequence, 0, len(scenario.winners))
			for _, winner := range scenario.winners {
				expected = append(expected, ot.MustParseSequence(winner))
			}
			g.Expect(tableau.Winners()).To(ConsistOf(expected))
			g.Expect(tableau.Typology()).To(Equal(scenario.typology))
		})
	}
}

func TestTableauMarks(t *testing.T) {
	tableau := newTableau(t, input("C1 C2 V3", "V4 C5"),
		"contiguity", "align_left_root", "align_right_residue", "align_left_residue", "align_right_root", "c_adj_v")

	winner := ot.MustParseSequence("C1 C2 V3 V4 C5")
	assert.Equal(t, []int{0, 0, 0, 3, 2, 1}, tableau.Violations(winner))
	_, eliminated := tableau.EliminatedAt(winner)
	assert.False(t, eliminated)
	assert.True(t, tableau.IsWinner(winner))

	// Knocked out by contiguity
	loser := ot.MustParseSequence("C1 V4 C2 C5 V3")
	marks := tableau.Marks(loser)
	assert.Equal(t, "*!**", marks[0].String())
	assert.Equal(t, "*", marks[2].String())
	index, eliminated := tableau.EliminatedAt(loser)
	assert.True(t, eliminated)
	assert.Equal(t, 0, index)

	// Survives contiguity and is knocked out by align_left_root, then keeps accruing plain marks
	prefixed := ot.MustParseSequence("V4 C5 C1 C2 V3")
	marks = tableau.Marks(prefixed)
	assert.Equal(t, ot.Mark{Violations: 2, Fatal: 1}, marks[1])
	assert.Equal(t, "*!*", marks[1].String())
	assert.Equal(t, "***", marks[2].String())
	assert.Equal(t, "", marks[3].String())
	index, _ = tableau.EliminatedAt(prefixed)
	assert.Equal(t, 1, index)

	rendered := tableau.String()
	assert.Contains(t, rendered, "/C1C2V3,V4C5/")
	assert.Contains(t, rendered, "> C1C2V3V4C5")
	assert.Contains(t, rendered, "  V4C5C1C2V3")
}

func TestTableauDeterministic(t *testing.T) {
	generator := newGenerator(t)
	ranking := ot.MustConstraintSet("c_adj_v", "align_left_root", "align_right_root", "align_left_residue", "contiguity", "align_right_residue")

	for _, stem := range generator.Inputs() {
		first, err := ot.NewTableau(stem, ranking, generator.Candidates(stem))
		require.Nil(t, err)
		second, err := ot.NewTableau(stem, ranking, generator.Candidates(stem))
		require.Nil(t, err)

		assert.Equal(t, first.Winners(), second.Winners())
		assert.Equal(t, first.Typology(), second.Typology())
		assert.Equal(t, first.String(), second.String())
	}
}

func TestTableauEliminationMonotonicity(t *testing.T) {
	generator := newGenerator(t)
	rankings := [][]string{
		ot.GradientConstraints,
		ot.CategoricalConstraints,
		{"align_right_root", "c_adj_v", "align_left_residue", "contiguity", "align_right_residue", "align_left_root"},
	}

	for _, names := range rankings {
		ranking := ot.MustConstraintSet(names...)
		for _, stem := range generator.Inputs() {
			tableau, err := ot.NewTableau(stem, ranking, generator.Candidates(stem))
			require.Nil(t, err)

			viable := tableau.Candidates()
			for k := range ranking.Len() {
				minimum := -1
				for _, candidate := range viable {
					if violations := tableau.Violations(candidate)[k]; minimum < 0 || violations < minimum {
						minimum = violations
					}
				}

				survivors := make([]ot.Sequence, 0, len(viable))
				for _, candidate := range viable {
					index, eliminated := tableau.EliminatedAt(candidate)
					if tableau.Violations(candidate)[k] > minimum {
						assert.True(t, eliminated)
						assert.Equal(t, k, index)
						assert.Equal(t, minimum+1, tableau.Marks(candidate)[k].Fatal)
					} else {
						assert.True(t, !eliminated || index > k)
						survivors = append(survivors, candidate)
					}
				}

				// Candidates knocked out earlier never carry a fatal mark again
				for _, candidate := range tableau.Candidates() {
					if index, eliminated := tableau.EliminatedAt(candidate); eliminated && index < k {
						assert.Equal(t, 0, tableau.Marks(candidate)[k].Fatal)
					}
				}
				viable = survivors
			}

			assert.Equal(t, viable, tableau.Winners())
			assert.NotEmpty(t, tableau.Winners())
		}
	}
}

func TestTableauInconsistentTypology(t *testing.T) {
	stem := input("C1 C2 V3", "V4 C5")

	// Every candidate starting with C1 ties, among them a suffixing and an infixing one
	tableau, err := ot.NewTableau(stem, ot.MustConstraintSet("anchor_left_root"), newGenerator(t).Candidates(stem))

	assert.Nil(t, tableau)
	var inconsistent *ot.InconsistentTypologyError
	require.True(t, errors.As(err, &inconsistent))
	assert.Len(t, inconsistent.Winners, 6)
	assert.Contains(t, inconsistent.Labels, ot.ConcatSuffix)
	assert.Contains(t, inconsistent.Labels, ot.Infix)
}

func TestTableauInvalidCandidates(t *testing.T) {
	stem := input("C1 C2 V3", "V4 C5")
	ranking := ot.MustConstraintSet(ot.GradientConstraints...)

	_, err := ot.NewTableau(stem, ranking, nil)
	assert.True(t, errors.Is(err, ot.ErrNoCandidates))

	_, err = ot.NewTableau(stem, ranking, []ot.Sequence{ot.MustParseSequence("C1 C2 V3 C5 V4")})
	assert.True(t, errors.Is(err, ot.ErrInvalidCandidate))

	_, err = ot.NewTableau(stem, ranking, []ot.Sequence{ot.MustParseSequence("C1 C2 V3 V4")})
	assert.True(t, errors.Is(err, ot.ErrInvalidCandidate))

	duplicate := ot.MustParseSequence("C1 C2 V3 V4 C5")
	_, err = ot.NewTableau(stem, ranking, []ot.Sequence{duplicate, duplicate})
	assert.True(t, errors.Is(err, ot.ErrDuplicateCandidate))

	_, err = ot.NewTableau(stem, ot.MustConstraintSet(), []ot.Sequence{duplicate})
	assert.True(t, errors.Is(err, ot.ErrEmptyRanking))
}

func TestClassify(t *testing.T) {
	stem := input("C1 C2 C3", "V4 V5")

	assert.Equal(t, ot.ConcatSuffix, ot.Classify(ot.MustParseSequence("C1 C2 C3 V4 V5"), stem))
	assert.Equal(t, ot.ConcatPrefix, ot.Classify(ot.MustParseSequence("V4 V5 C1 C2 C3"), stem))
	assert.Equal(t, ot.Infix, ot.Classify(ot.MustParseSequence("C1 V4 V5 C2 C3"), stem))
	assert.Equal(t, ot.NonconcatCV, ot.Classify(ot.MustParseSequence("C1 V4 C2 V5 C3"), stem))

	// Only the residue's first two segments decide, the root's make-up is irrelevant
	mixed := input("C1 V2 C3", "V4 V5")
	assert.Equal(t, ot.NonconcatCV, ot.Classify(ot.MustParseSequence("C1 V4 V2 V5 C3"), mixed))

	vocalic := input("V1 V2", "C3 C4")
	assert.Equal(t, ot.Unattested, ot.Classify(ot.MustParseSequence("V1 C3 V2 C4"), vocalic))

	assert.True(t, ot.Unattested.IsNonconcatenative())
	assert.True(t, ot.NonconcatCV.IsNonconcatenative())
	assert.False(t, ot.Infix.IsNonconcatenative())
}

func TestClassifyResidueOpening(t *testing.T) {
	scenarios := []struct {
		name       string
		segments   string
		rootLength int
		input      ot.Input
		winner     string
		typology   ot.Typology
	}{
		{"Three segment residue opening with two vowels", "CCCVV", 2, input("C1 C2", "V3 V4 C5"), "C1 V3 C2 V4 C5", ot.NonconcatCV},
		{"Three segment residue opening with a vowel and a consonant", "CCVVV", 2, input("C1 V2", "V3 C4 V5"), "C1 V3 V2 C4 V5", ot.Unattested},
		{"Consonantal residue", "CCCVV", 2, input("V1 V2", "C3 C4 C5"), "V1 C3 V2 C4 C5", ot.Unattested},
		{"Vocalic residue with a mixed root", "CCVVV", 3, input("C1 C2 V3", "V4 V5"), "C1 V4 C2 V5 V3", ot.NonconcatCV},
		{"Three segment residue kept together", "CCCVV", 2, input("C1 C2", "V3 V4 C5"), "C1 V3 V4 C5 C2", ot.Infix},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			g := NewWithT(t)
			generator, err := gen.NewGenerator(scenario.segments, scenario.rootLength)
			require.Nil(t, err)
			winner := ot.MustParseSequence(scenario.winner)

			g.Expect(generator.Inputs()).To(ContainElement(scenario.input))
			g.Expect(generator.Candidates(scenario.input)).To(ContainElement(winner))
			g.Expect(ot.Classify(winner, scenario.input)).To(Equal(scenario.typology))
		})
	}
}
