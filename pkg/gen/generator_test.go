package gen

import (
	"errors"
	"slices"
	"testing"

	"github.com/limaJavier/ottypology/pkg/ot"

	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenerator(t *testing.T) *Generator {
	generator, err := NewGenerator("CCCVV", 3)
	require.Nil(t, err)
	return generator
}

func input(root, residue string) ot.Input {
	return ot.Input{Root: ot.MustParseSequence(root), Residue: ot.MustParseSequence(residue)}
}

func TestNewGenerator(t *testing.T) {
	generator, err := NewGenerator("cccvv", 3)
	assert.Nil(t, err)
	assert.Equal(t, "CCCVV", generator.Segments())
	assert.Equal(t, 2, generator.ResidueLength())

	for _, rootLength := range []int{0, 5, 6, -1} {
		_, err := NewGenerator("CCCVV", rootLength)
		assert.True(t, errors.Is(err, ErrInvalidRootLength), rootLength)
	}

	_, err = NewGenerator("CCXVV", 3)
	assert.True(t, errors.Is(err, ErrInvalidSegment))
}

func TestInputs(t *testing.T) {
	g := NewWithT(t)
	generator := newGenerator(t)

	inputs := generator.Inputs()

	g.Expect(inputs).To(HaveLen(10))
	g.Expect(inputs).To(ContainElement(input("C1 V2 C3", "C4 V5")))
	g.Expect(inputs).To(ContainElement(input("C1 C2 C3", "V4 V5")))
	g.Expect(inputs).To(ContainElement(input("C1 C2 V3", "V4 C5")))
	g.Expect(inputs[0]).To(Equal(input("C1 C2 C3", "V4 V5")))
	g.Expect(inputs[9]).To(Equal(input("V1 V2 C3", "C4 C5")))

	// Distinct splits
	g.Expect(lo.Uniq(lo.Map(inputs, func(stem ot.Input, _ int) string { return stem.Stem().Key() }))).To(HaveLen(10))
	for _, stem := range inputs {
		g.Expect(stem.Root).To(HaveLen(3))
		g.Expect(stem.Residue).To(HaveLen(2))
	}
}

func TestInputCount(t *testing.T) {
	scenarios := []struct {
		segments   string
		rootLength int
		expected   int
	}{
		{"CCCVV", 3, 10},
		{"CV", 1, 2},
		{"CCCC", 2, 1},
		{"CCVV", 2, 6},
		{"CCCVVV", 3, 20},
		{"CVCVCVV", 4, 35},
	}

	for _, scenario := range scenarios {
		generator, err := NewGenerator(scenario.segments, scenario.rootLength)
		require.Nil(t, err)

		assert.Equal(t, scenario.expected, generator.InputCount(), scenario.segments)
		assert.Len(t, generator.Inputs(), scenario.expected, scenario.segments)
	}
}

func TestCandidates(t *testing.T) {
	generator := newGenerator(t)

	for _, stem := range generator.Inputs() {
		candidates := generator.Candidates(stem)

		assert.Len(t, candidates, 10)
		assert.Equal(t, generator.CandidateCount(), len(candidates))
		assert.Len(t, lo.Uniq(lo.Map(candidates, func(candidate ot.Sequence, _ int) string { return candidate.Key() })), 10)

		for _, candidate := range candidates {
			// Same multiset of segments as root and residue, each morpheme keeping its internal order
			assert.Nil(t, stem.Admits(candidate))
			assert.ElementsMatch(t, stem.Stem(), candidate)
			assert.True(t, candidate.IsSubsequence(stem.Root))
			assert.True(t, candidate.IsSubsequence(stem.Residue))
		}
	}
}

func TestCandidatePresenceAndAbsence(t *testing.T) {
	g := NewWithT(t)
	generator := newGenerator(t)

	candidates := generator.Candidates(input("C1 V2 C3", "C4 V5"))

	g.Expect(candidates).To(ContainElement(ot.MustParseSequence("C1 V2 C3 C4 V5")))
	g.Expect(candidates).To(ContainElement(ot.MustParseSequence("C1 C4 V2 C3 V5")))
	g.Expect(candidates).NotTo(ContainElement(ot.MustParseSequence("C1 V2 C3 V5 C4")))
	g.Expect(candidates).NotTo(ContainElement(ot.MustParseSequence("V2 C1 C4 C3 V5")))

	// Templates are enumerated in lexicographic order
	g.Expect(candidates[0]).To(Equal(ot.MustParseSequence("C1 V2 C3 C4 V5")))
	g.Expect(candidates[9]).To(Equal(ot.MustParseSequence("C4 V5 C1 V2 C3")))
}

func TestCandidatesWrongLengthPanics(t *testing.T) {
	generator := newGenerator(t)

	assert.Panics(t, func() { generator.Candidates(input("C1 V2", "C3 C4 V5")) })
	assert.Panics(t, func() { generator.Candidates(input("C1 V2 C3", "C4")) })
}

func TestConcatenationKeepsContiguity(t *testing.T) {
	generator := newGenerator(t)

	for _, stem := range generator.Inputs() {
		assert.Equal(t, 0, ot.Contiguity(stem.Root.Concat(stem.Residue), stem), stem.String())
	}
}

func TestPermutations(t *testing.T) {
	assert.Equal(t, [][]int{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}, Permutations([]int{0, 0, 1}))
	assert.Len(t, Permutations([]string{"a", "b", "c", "d"}), 24)
	assert.Equal(t, [][]byte{{}}, Permutations([]byte{}))

	// "b" cannot be placed before "a"
	constrained := Permutations([]string{"a", "b", "c"}, func(permutation []string) bool {
		return !slices.Contains(permutation, "b") || slices.Index(permutation, "a") >= 0 && slices.Index(permutation, "a") < slices.Index(permutation, "b")
	})
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"a", "c", "b"}, {"c", "a", "b"}}, constrained)
}
