package typology

import (
	"errors"
	"fmt"
	"slices"

	"github.com/limaJavier/ottypology/pkg/gen"
	"github.com/limaJavier/ottypology/pkg/ot"
	"github.com/samber/lo"
)

var ErrUnknownFamily = errors.New("typology: unknown ranking family")

// Filter decides whether a (possibly partial) ranking may be kept. It sees the constraints ranked so far, most dominant first.
type Filter func(ranking []string) bool

// Outranks keeps only the rankings where dominant is ranked above dominated
func Outranks(dominant, dominated string) Filter {
	return func(ranking []string) bool {
		dominatedIndex := slices.Index(ranking, dominated)
		if dominatedIndex < 0 {
			return true
		}
		dominantIndex := slices.Index(ranking, dominant)
		return dominantIndex >= 0 && dominantIndex < dominatedIndex
	}
}

// Rankings returns every ordering of the constraints that passes the filters
func Rankings(constraints []string, filters ...Filter) [][]string {
	return gen.Permutations(constraints, lo.Map(filters, func(filter Filter, _ int) func([]string) bool { return filter })...)
}

// Every ranking of CONTIGUITY, C//V and gradient ALIGN
func DefaultRankings() [][]string {
	return Rankings(ot.GradientConstraints)
}

// Every ranking of CONTIGUITY, C//V and categorical ALIGN
func CategoricalRankings() [][]string {
	return Rankings(ot.CategoricalConstraints)
}

// Rankings where ALIGN-L-Res >> ALIGN-L-Rt, ALIGN-R-Res is inactive
func PrefixRankings() [][]string {
	return Rankings(
		[]string{"contiguity", "c_adj_v", "align_left_residue", "align_left_root", "align_right_root"},
		Outranks("align_left_residue", "align_left_root"),
	)
}

// Rankings where ALIGN-R-Res >> ALIGN-R-Rt, ALIGN-L-Res is inactive
func SuffixRankings() [][]string {
	return Rankings(
		[]string{"contiguity", "c_adj_v", "align_right_residue", "align_right_root", "align_left_root"},
		Outranks("align_right_residue", "align_right_root"),
	)
}

var families = map[string]func() [][]string{
	"default":     DefaultRankings,
	"categorical": CategoricalRankings,
	"prefix":      PrefixRankings,
	"suffix":      SuffixRankings,
}

// Families returns the names of the predefined ranking families
func Families() []string {
	names := lo.Keys(families)
	slices.Sort(names)
	return names
}

func Family(name string) ([][]string, error) {
	family, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("%w: \"%v\" (expected one of %v)", ErrUnknownFamily, name, Families())
	}
	return family(), nil
}
