package ot

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
)

var (
	ErrNoCandidates       = errors.New("ot: tableau needs at least one candidate")
	ErrDuplicateCandidate = errors.New("ot: candidate appears more than once")
	ErrEmptyRanking       = errors.New("ot: tableau needs at least one ranked constraint")
)

// Mark is the violation cell of a candidate under one constraint. Fatal is the 1-based position of the fatal violation,
// or 0 when the cell did not eliminate the candidate.
type Mark struct {
	Violations int
	Fatal      int
}

func (mark Mark) String() string {
	if mark.Fatal == 0 {
		return strings.Repeat("*", mark.Violations)
	}
	return strings.Repeat("*", mark.Fatal) + "!" + strings.Repeat("*", mark.Violations-mark.Fatal)
}

// Tableau evaluates one input under one ranking. It is computed eagerly on construction and read-only afterwards.
type Tableau struct {
	input        Input
	ranking      *ConstraintSet
	candidates   []Sequence
	violations   map[string][]int
	marks        map[string][]Mark
	eliminatedAt map[string]int
	winners      []Sequence
	typology     Typology
}

func NewTableau(input Input, ranking *ConstraintSet, candidates []Sequence) (*Tableau, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	} else if ranking == nil || ranking.Len() == 0 {
		return nil, ErrEmptyRanking
	}

	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if err := input.Admits(candidate); err != nil {
			return nil, err
		}
		key := candidate.Key()
		if seen[key] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateCandidate, candidate)
		}
		seen[key] = true
	}

	tableau := &Tableau{
		input:        input,
		ranking:      ranking,
		candidates:   slices.Clone(candidates),
		violations:   make(map[string][]int, len(candidates)),
		marks:        make(map[string][]Mark, len(candidates)),
		eliminatedAt: make(map[string]int),
	}
	tableau.execute()

	typology, err := tableau.classify()
	if err != nil {
		return nil, err
	}
	tableau.typology = typology

	return tableau, nil
}

// Identify the winning candidate(s) and populate the violations table
func (tableau *Tableau) execute() {
	viable := make(map[string]bool, len(tableau.candidates))
	for _, candidate := range tableau.candidates {
		viable[candidate.Key()] = true
	}

	for k, constraint := range tableau.ranking.All() {
		counts := lo.Map(tableau.candidates, func(candidate Sequence, _ int) int {
			return constraint.Evaluate(candidate, tableau.input)
		})

		// The minimum is taken over viable candidates only, at least one is always viable
		minViolations := -1
		for i, candidate := range tableau.candidates {
			if viable[candidate.Key()] && (minViolations < 0 || counts[i] < minViolations) {
				minViolations = counts[i]
			}
		}

		for i, candidate := range tableau.candidates {
			key := candidate.Key()
			mark := Mark{Violations: counts[i]}

			if counts[i] > minViolations && viable[key] {
				// This candidate just got knocked out
				delete(viable, key)
				tableau.eliminatedAt[key] = k
				mark.Fatal = minViolations + 1
			}

			tableau.violations[key] = append(tableau.violations[key], counts[i])
			tableau.marks[key] = append(tableau.marks[key], mark)
		}
	}

	// Whatever is left is the set of winners
	tableau.winners = lo.Filter(tableau.candidates, func(candidate Sequence, _ int) bool {
		return viable[candidate.Key()]
	})
}

func (tableau *Tableau) classify() (Typology, error) {
	labels := lo.Map(tableau.winners, func(winner Sequence, _ int) Typology {
		return Classify(winner, tableau.input)
	})

	if len(lo.Uniq(labels)) != 1 {
		return "", &InconsistentTypologyError{
			Input:   tableau.input,
			Winners: slices.Clone(tableau.winners),
			Labels:  labels,
		}
	}
	return labels[0], nil
}

func (tableau *Tableau) Input() Input {
	return tableau.input
}

func (tableau *Tableau) Ranking() *ConstraintSet {
	return tableau.ranking
}

func (tableau *Tableau) Candidates() []Sequence {
	return slices.Clone(tableau.candidates)
}

// Winners returns the optimal candidates in candidate order. More than one winner is a genuine tie.
func (tableau *Tableau) Winners() []Sequence {
	return slices.Clone(tableau.winners)
}

func (tableau *Tableau) IsWinner(candidate Sequence) bool {
	return lo.ContainsBy(tableau.winners, func(winner Sequence) bool { return winner.Equal(candidate) })
}

func (tableau *Tableau) Typology() Typology {
	return tableau.typology
}

// Violations returns the violation counts of candidate, one per ranked constraint
func (tableau *Tableau) Violations(candidate Sequence) []int {
	return slices.Clone(tableau.violations[candidate.Key()])
}

// Marks returns the display marks of candidate, one per ranked constraint
func (tableau *Tableau) Marks(candidate Sequence) []Mark {
	return slices.Clone(tableau.marks[candidate.Key()])
}

// EliminatedAt returns the index of the ranked constraint that knocked candidate out; ok is false for winners
func (tableau *Tableau) EliminatedAt(candidate Sequence) (index int, ok bool) {
	index, ok = tableau.eliminatedAt[candidate.Key()]
	return index, ok
}

func (tableau *Tableau) String() string {
	var builder strings.Builder
	writer := tabwriter.NewWriter(&builder, 0, 4, 2, ' ', 0)

	header := append([]string{fmt.Sprintf("/%v,%v/", tableau.input.Root.Form(), tableau.input.Residue.Form())}, tableau.ranking.Names()...)
	fmt.Fprintln(writer, strings.Join(header, "\t")+"\t")

	for _, candidate := range tableau.candidates {
		prefix := lo.Ternary(tableau.IsWinner(candidate), "> ", "  ")
		row := append([]string{prefix + candidate.Form()}, lo.Map(tableau.marks[candidate.Key()], func(mark Mark, _ int) string { return mark.String() })...)
		fmt.Fprintln(writer, strings.Join(row, "\t")+"\t")
	}

	writer.Flush()
	return builder.String()
}
