package ot

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Typology is the morphological pattern a winning candidate exhibits
type Typology string

const (
	ConcatSuffix Typology = "concat_suffix"
	ConcatPrefix Typology = "concat_prefix"
	Infix        Typology = "infix"
	NonconcatCV  Typology = "nonconcat_cv"
	Unattested   Typology = "unattested"
)

// Typologies lists every label in report order
var Typologies = []Typology{ConcatSuffix, ConcatPrefix, Infix, NonconcatCV, Unattested}

// IsNonconcatenative reports whether the label is one of the two non-concatenative outcomes
func (typology Typology) IsNonconcatenative() bool {
	return typology == NonconcatCV || typology == Unattested
}

// Classify determines the typology of a single winner.
//
// A winner that is neither a concatenation nor an infixation counts as Arabic-like templatic morphology when the residue
// opens with two vowels.
func Classify(winner Sequence, input Input) Typology {
	switch {
	case winner.Equal(input.Root.Concat(input.Residue)):
		return ConcatSuffix
	case winner.Equal(input.Residue.Concat(input.Root)):
		return ConcatPrefix
	case winner.ContainsRun(input.Residue):
		return Infix
	case len(input.Residue) >= 2 && input.Residue[0].IsVowel() && input.Residue[1].IsVowel():
		return NonconcatCV
	default:
		return Unattested
	}
}

// InconsistentTypologyError is returned when tied winners do not share the same typology
type InconsistentTypologyError struct {
	Input   Input
	Winners []Sequence
	Labels  []Typology
}

func (err *InconsistentTypologyError) Error() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "winners of %v classify differently: ", err.Input)
	pairs := lo.Zip2(err.Winners, err.Labels)
	builder.WriteString(strings.Join(lo.Map(pairs, func(pair lo.Tuple2[Sequence, Typology], _ int) string {
		return fmt.Sprintf("%v -> %v", pair.A, pair.B)
	}), ", "))
	return builder.String()
}
