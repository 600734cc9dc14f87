package typology

import (
	"log"

	"github.com/limaJavier/ottypology/pkg/ot"
	"github.com/samber/lo"
)

// Tally counts how many inputs produced each typology under one ranking
type Tally struct {
	Ranking     string
	Suffix      int
	Prefix      int
	Infix       int
	NonconcatCV int
	Unattested  int
}

func NewTally(ranking string, typologies []ot.Typology) Tally {
	counts := lo.CountValues(typologies)
	return Tally{
		Ranking:     ranking,
		Suffix:      counts[ot.ConcatSuffix],
		Prefix:      counts[ot.ConcatPrefix],
		Infix:       counts[ot.Infix],
		NonconcatCV: counts[ot.NonconcatCV],
		Unattested:  counts[ot.Unattested],
	}
}

func (tally Tally) Count(typology ot.Typology) int {
	switch typology {
	case ot.ConcatSuffix:
		return tally.Suffix
	case ot.ConcatPrefix:
		return tally.Prefix
	case ot.Infix:
		return tally.Infix
	case ot.NonconcatCV:
		return tally.NonconcatCV
	case ot.Unattested:
		return tally.Unattested
	}
	return 0
}

func (tally Tally) Total() int {
	return tally.Suffix + tally.Prefix + tally.Infix + tally.NonconcatCV + tally.Unattested
}

// Nonconcat counts both attested (C/V) and unattested non-concatenative outcomes
func (tally Tally) Nonconcat() int {
	return tally.NonconcatCV + tally.Unattested
}

// Summary aggregates tallies over a set of rankings. Majority means strictly more than half of the inputs.
type Summary struct {
	Inputs  int
	Tallies []Tally

	AtLeastOneNonconcat  int
	MajorityNonconcat    int
	AtLeastOneUnattested int
	MajorityUnattested   int
}

// Summarize derives the meta statistics of the tallies. The result does not depend on the tallies' order.
func Summarize(inputs int, tallies []Tally) Summary {
	majority := func(count int) bool { return 2*count > inputs }

	return Summary{
		Inputs:               inputs,
		Tallies:              tallies,
		AtLeastOneNonconcat:  lo.CountBy(tallies, func(tally Tally) bool { return tally.Nonconcat() >= 1 }),
		MajorityNonconcat:    lo.CountBy(tallies, func(tally Tally) bool { return majority(tally.Nonconcat()) }),
		AtLeastOneUnattested: lo.CountBy(tallies, func(tally Tally) bool { return tally.Unattested >= 1 }),
		MajorityUnattested:   lo.CountBy(tallies, func(tally Tally) bool { return majority(tally.Unattested) }),
	}
}

// Merge combines two summaries computed over disjoint sets of rankings for the same inputs, summaries over a different
// number of inputs cannot be merged
func (summary Summary) Merge(other Summary) Summary {
	if summary.Inputs != other.Inputs {
		log.Panicf("cannot merge summaries over %d and %d inputs", summary.Inputs, other.Inputs)
	}
	return Summarize(summary.Inputs, append(append([]Tally{}, summary.Tallies...), other.Tallies...))
}

func (summary Summary) Rankings() int {
	return len(summary.Tallies)
}

// Share of rankings with at least one non-concatenative output
func (summary Summary) AtLeastOneNonconcatRatio() float64 {
	return ratio(summary.AtLeastOneNonconcat, summary.Rankings())
}

// Share of rankings with mostly non-concatenative outputs
func (summary Summary) MajorityNonconcatRatio() float64 {
	return ratio(summary.MajorityNonconcat, summary.Rankings())
}

// Share of non-concatenative rankings with at least one unattested output
func (summary Summary) AtLeastOneUnattestedRatio() float64 {
	return ratio(summary.AtLeastOneUnattested, summary.AtLeastOneNonconcat)
}

// Share of majority non-concatenative rankings with mostly unattested outputs
func (summary Summary) MajorityUnattestedRatio() float64 {
	return ratio(summary.MajorityUnattested, summary.MajorityNonconcat)
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
