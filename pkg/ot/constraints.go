package ot

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrUnknownConstraint   = errors.New("ot: unknown constraint")
	ErrDuplicateConstraint = errors.New("ot: constraint ranked more than once")
)

type ConstraintKind int

const (
	ContiguityKind ConstraintKind = iota
	CAdjVKind
	AlignLeftRootKind
	AlignLeftResidueKind
	AlignRightRootKind
	AlignRightResidueKind
	AnchorLeftRootKind
	AnchorLeftResidueKind
	AnchorRightRootKind
	AnchorRightResidueKind
)

var constraintNames = map[ConstraintKind]string{
	ContiguityKind:         "contiguity",
	CAdjVKind:              "c_adj_v",
	AlignLeftRootKind:      "align_left_root",
	AlignLeftResidueKind:   "align_left_residue",
	AlignRightRootKind:     "align_right_root",
	AlignRightResidueKind:  "align_right_residue",
	AnchorLeftRootKind:     "anchor_left_root",
	AnchorLeftResidueKind:  "anchor_left_residue",
	AnchorRightRootKind:    "anchor_right_root",
	AnchorRightResidueKind: "anchor_right_residue",
}

var constraintKinds = lo.Invert(constraintNames)

// Contiguity, C//V and gradient ALIGN
var GradientConstraints = []string{
	"contiguity", "c_adj_v",
	"align_left_root", "align_left_residue",
	"align_right_root", "align_right_residue",
}

// Contiguity, C//V and categorical ALIGN (ANCHOR)
var CategoricalConstraints = []string{
	"contiguity", "c_adj_v",
	"anchor_left_root", "anchor_left_residue",
	"anchor_right_root", "anchor_right_residue",
}

func (kind ConstraintKind) String() string {
	if name, ok := constraintNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("ConstraintKind(%d)", int(kind))
}

// LookupConstraint resolves a constraint name into its kind
func LookupConstraint(name string) (ConstraintKind, error) {
	kind, ok := constraintKinds[name]
	if !ok {
		return 0, fmt.Errorf("%w: \"%v\"", ErrUnknownConstraint, name)
	}
	return kind, nil
}

// ScoreFunc returns the number of violations a candidate incurs for the given input
type ScoreFunc func(candidate Sequence, input Input) int

type Constraint struct {
	Name     string
	Kind     ConstraintKind
	Evaluate ScoreFunc
}

// ConstraintSet is a strict dominance ranking of constraints, most dominant first
type ConstraintSet struct {
	constraints []Constraint
}

func NewConstraintSet(names ...string) (*ConstraintSet, error) {
	dispatch := map[ConstraintKind]ScoreFunc{
		ContiguityKind:         Contiguity,
		CAdjVKind:              CAdjV,
		AlignLeftRootKind:      AlignLeftRoot,
		AlignLeftResidueKind:   AlignLeftResidue,
		AlignRightRootKind:     AlignRightRoot,
		AlignRightResidueKind:  AlignRightResidue,
		AnchorLeftRootKind:     AnchorLeftRoot,
		AnchorLeftResidueKind:  AnchorLeftResidue,
		AnchorRightRootKind:    AnchorRightRoot,
		AnchorRightResidueKind: AnchorRightResidue,
	}

	constraints := make([]Constraint, 0, len(names))
	seen := make(map[ConstraintKind]bool)
	for _, name := range names {
		kind, err := LookupConstraint(name)
		if err != nil {
			return nil, err
		}
		if seen[kind] {
			return nil, fmt.Errorf("%w: \"%v\"", ErrDuplicateConstraint, name)
		}
		seen[kind] = true

		constraints = append(constraints, Constraint{
			Name:     name,
			Kind:     kind,
			Evaluate: dispatch[kind],
		})
	}

	return &ConstraintSet{constraints: constraints}, nil
}

// MustConstraintSet is like NewConstraintSet but panics on failure
func MustConstraintSet(names ...string) *ConstraintSet {
	constraintSet, err := NewConstraintSet(names...)
	if err != nil {
		log.Panicf("cannot build constraint set: %v", err)
	}
	return constraintSet
}

func (constraintSet *ConstraintSet) Len() int {
	return len(constraintSet.constraints)
}

// All iterates the constraints in dominance order
func (constraintSet *ConstraintSet) All() iter.Seq2[int, Constraint] {
	return func(yield func(int, Constraint) bool) {
		for i, constraint := range constraintSet.constraints {
			if !yield(i, constraint) {
				return
			}
		}
	}
}

func (constraintSet *ConstraintSet) At(i int) Constraint {
	return constraintSet.constraints[i]
}

func (constraintSet *ConstraintSet) Names() []string {
	return lo.Map(constraintSet.constraints, func(constraint Constraint, _ int) string { return constraint.Name })
}

func (constraintSet *ConstraintSet) String() string {
	return strings.Join(constraintSet.Names(), " >> ")
}

// Contiguity assigns a violation for every pair of segments adjacent in the input (within root or within residue) that is
// not adjacent in the candidate
func Contiguity(candidate Sequence, input Input) int {
	inputPairs := lo.Uniq(append(input.Root.Pairs(), input.Residue.Pairs()...))
	return len(lo.Without(inputPairs, candidate.Pairs()...))
}

// CAdjV (C//V) assigns a violation for every consonant not adjacent to a vowel
func CAdjV(candidate Sequence, _ Input) int {
	violations := 0
	last := len(candidate) - 1
	for i, segment := range candidate {
		if !segment.IsConsonant() {
			continue
		}

		switch {
		case last == 0:
			// A lone consonant has no neighbors to be adjacent to
		case i == 0:
			if candidate[1].IsConsonant() {
				violations++
			}
		case i == last:
			if candidate[i-1].IsConsonant() {
				violations++
			}
		default:
			if candidate[i-1].IsConsonant() && candidate[i+1].IsConsonant() {
				violations++
			}
		}
	}
	return violations
}

// ALIGN(Root, L, Stem, L): segments between the left edge of the stem and the left edge of the root
func AlignLeftRoot(candidate Sequence, input Input) int {
	return leftDistance(candidate, input.Root, "root")
}

// ALIGN(Residue, L, Stem, L)
func AlignLeftResidue(candidate Sequence, input Input) int {
	return leftDistance(candidate, input.Residue, "residue")
}

// ALIGN(Root, R, Stem, R)
func AlignRightRoot(candidate Sequence, input Input) int {
	return rightDistance(candidate, input.Root, "root")
}

// ALIGN(Residue, R, Stem, R)
func AlignRightResidue(candidate Sequence, input Input) int {
	return rightDistance(candidate, input.Residue, "residue")
}

// Categorical ALIGN(Root, L, Stem, L)
func AnchorLeftRoot(candidate Sequence, input Input) int {
	return lo.Ternary(leftDistance(candidate, input.Root, "root") == 0, 0, 1)
}

// Categorical ALIGN(Residue, L, Stem, L)
func AnchorLeftResidue(candidate Sequence, input Input) int {
	return lo.Ternary(leftDistance(candidate, input.Residue, "residue") == 0, 0, 1)
}

// Categorical ALIGN(Root, R, Stem, R)
func AnchorRightRoot(candidate Sequence, input Input) int {
	return lo.Ternary(rightDistance(candidate, input.Root, "root") == 0, 0, 1)
}

// Categorical ALIGN(Residue, R, Stem, R)
func AnchorRightResidue(candidate Sequence, input Input) int {
	return lo.Ternary(rightDistance(candidate, input.Residue, "residue") == 0, 0, 1)
}

// Since LINEARITY is undominated, the morpheme's edge in the candidate is the position of its own edge segment
func leftDistance(candidate, morpheme Sequence, morphemeName string) int {
	if len(morpheme) == 0 {
		log.Panicf("%v must have at least one segment", morphemeName)
	}
	index := candidate.IndexOf(morpheme[0])
	if index < 0 {
		log.Panicf("left edge %v of %v %v is missing from candidate %v", morpheme[0], morphemeName, morpheme, candidate)
	}
	return index
}

func rightDistance(candidate, morpheme Sequence, morphemeName string) int {
	if len(morpheme) == 0 {
		log.Panicf("%v must have at least one segment", morphemeName)
	}
	index := candidate.LastIndexOf(morpheme[len(morpheme)-1])
	if index < 0 {
		log.Panicf("right edge %v of %v %v is missing from candidate %v", morpheme[len(morpheme)-1], morphemeName, morpheme, candidate)
	}
	return index
}
