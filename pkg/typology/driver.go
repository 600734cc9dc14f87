package typology

import (
	"errors"
	"fmt"
	"sync"

	"github.com/limaJavier/ottypology/pkg/gen"
	"github.com/limaJavier/ottypology/pkg/ot"
	"github.com/samber/lo"
)

var ErrTallyMismatch = errors.New("typology: typology counts do not add up to the number of inputs")

// Outcome is the result of evaluating one input under one ranking
type Outcome struct {
	Input    ot.Input
	Winners  []ot.Sequence
	Typology ot.Typology
	Tableau  *ot.Tableau
}

type RankingResult struct {
	Ranking  string
	Outcomes []Outcome
}

// Driver runs every ranking against every input of a generator.
// Each (ranking, input) pair is evaluated independently, rankings are spread among workers and results are always
// delivered in ranking order.
type Driver struct {
	generator *gen.Generator
	workers   int
}

func NewDriver(generator *gen.Generator, workers int) *Driver {
	return &Driver{
		generator: generator,
		workers:   max(workers, 1),
	}
}

// Evaluate runs every input of the generator under a single ranking
func (driver *Driver) Evaluate(ranking []string) (RankingResult, error) {
	return driver.evaluate(ranking, driver.stems())
}

// Full evaluates every ranking and hands each result to emit, in ranking order
func (driver *Driver) Full(rankings [][]string, emit func(RankingResult) error) error {
	stems := driver.stems()
	window := driver.workers * 4

	for start := 0; start < len(rankings); start += window {
		chunk := rankings[start:min(start+window, len(rankings))]
		results, err := parallelMap(driver.workers, chunk, func(ranking []string) (RankingResult, error) {
			return driver.evaluate(ranking, stems)
		})
		if err != nil {
			return err
		}

		for _, result := range results {
			if err := emit(result); err != nil {
				return err
			}
		}
	}
	return nil
}

// Count tallies the typology of every input per ranking and summarizes the tallies over all rankings
func (driver *Driver) Count(rankings [][]string) (Summary, error) {
	stems := driver.stems()
	totalInputs := driver.generator.InputCount()

	tallies, err := parallelMap(driver.workers, rankings, func(ranking []string) (Tally, error) {
		result, err := driver.evaluate(ranking, stems)
		if err != nil {
			return Tally{}, err
		}

		tally := NewTally(result.Ranking, lo.Map(result.Outcomes, func(outcome Outcome, _ int) ot.Typology { return outcome.Typology }))
		if tally.Total() != totalInputs {
			return Tally{}, fmt.Errorf("%w: %v counts %d, expected %d", ErrTallyMismatch, result.Ranking, tally.Total(), totalInputs)
		}
		return tally, nil
	})
	if err != nil {
		return Summary{}, err
	}

	return Summarize(totalInputs, tallies), nil
}

// An input together with its candidate set, shared read-only among workers
type stem struct {
	input      ot.Input
	candidates []ot.Sequence
}

func (driver *Driver) stems() []stem {
	return lo.Map(driver.generator.Inputs(), func(input ot.Input, _ int) stem {
		return stem{input: input, candidates: driver.generator.Candidates(input)}
	})
}

func (driver *Driver) evaluate(ranking []string, stems []stem) (RankingResult, error) {
	constraintSet, err := ot.NewConstraintSet(ranking...)
	if err != nil {
		return RankingResult{}, err
	}

	result := RankingResult{
		Ranking:  constraintSet.String(),
		Outcomes: make([]Outcome, 0, len(stems)),
	}
	for _, entry := range stems {
		tableau, err := ot.NewTableau(entry.input, constraintSet, entry.candidates)
		if err != nil {
			return RankingResult{}, fmt.Errorf("ranking %v: %w", constraintSet, err)
		}

		result.Outcomes = append(result.Outcomes, Outcome{
			Input:    entry.input,
			Winners:  tableau.Winners(),
			Typology: tableau.Typology(),
			Tableau:  tableau,
		})
	}
	return result, nil
}

// Evaluate rankings on up to workers goroutines. Every result lands in its ranking's slot so the output does not depend on
// scheduling; the error of the earliest failing ranking is returned.
func parallelMap[R any](workers int, rankings [][]string, evaluate func(ranking []string) (R, error)) ([]R, error) {
	results := make([]R, len(rankings))
	errs := make([]error, len(rankings))

	jobs := make(chan int)
	var waitGroup sync.WaitGroup
	for range min(workers, len(rankings)) {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			for i := range jobs {
				results[i], errs[i] = evaluate(rankings[i])
			}
		}()
	}

	for i := range rankings {
		jobs <- i
	}
	close(jobs)
	waitGroup.Wait()

	if err, ok := lo.Find(errs, func(err error) bool { return err != nil }); ok {
		return nil, err
	}
	return results, nil
}
