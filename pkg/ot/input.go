package ot

import (
	"errors"
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

var ErrInvalidCandidate = errors.New("ot: candidate is not an order-preserving interleaving of root and residue")

// Input is a stem split into its two morphemes
type Input struct {
	Root    Sequence
	Residue Sequence
}

// Stem returns the root followed by the residue
func (input Input) Stem() Sequence {
	return input.Root.Concat(input.Residue)
}

func (input Input) String() string {
	return fmt.Sprintf("(%v, %v)", input.Root, input.Residue)
}

// Correspondence maps every candidate position to the position of its correspondent in the stem (root followed by residue).
// ok is false when no one-to-one correspondence between input and output segments exists, that is, when the candidate
// deletes, inserts or changes a segment.
func (input Input) Correspondence(candidate Sequence) (correspondence []int, ok bool) {
	stem := input.Stem()
	if len(stem) != len(candidate) {
		return nil, false
	}

	// Correspondence is only possible between identical segments
	neighbors := func(outputAny any, inputAny any) (bool, error) {
		return outputAny.(Segment) == inputAny.(Segment), nil
	}

	outputsAny, inputsAny := lo.Map(candidate, func(segment Segment, _ int) any { return segment }), lo.Map(stem, func(segment Segment, _ int) any { return segment })

	graph, err := bipartitegraph.NewBipartiteGraph(outputsAny, inputsAny, neighbors)
	if err != nil {
		return nil, false
	}

	matching := graph.LargestMatching()

	// MAX and DEP are undominated, so every segment must have exactly one correspondent
	if len(matching) < len(candidate) {
		return nil, false
	}

	correspondence = make([]int, len(candidate))
	for _, edge := range matching {
		outputIndex, inputIndex := edge.Node1, edge.Node2-len(candidate)
		correspondence[outputIndex] = inputIndex
	}
	return correspondence, true
}

// Admits checks that candidate is a valid output for the input: its segments correspond one-to-one with root and residue
// and each morpheme keeps its internal order
func (input Input) Admits(candidate Sequence) error {
	if _, ok := input.Correspondence(candidate); !ok {
		return fmt.Errorf("%w: %v does not contain exactly the segments of %v", ErrInvalidCandidate, candidate, input)
	}
	if !candidate.IsSubsequence(input.Root) {
		return fmt.Errorf("%w: %v reorders root %v", ErrInvalidCandidate, candidate, input.Root)
	}
	if !candidate.IsSubsequence(input.Residue) {
		return fmt.Errorf("%w: %v reorders residue %v", ErrInvalidCandidate, candidate, input.Residue)
	}
	return nil
}
