package gen

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/limaJavier/ottypology/pkg/ot"
	"github.com/samber/lo"
)

var (
	ErrInvalidRootLength = errors.New("gen: root length must be positive and smaller than the number of segments")
	ErrInvalidSegment    = errors.New("gen: segments must be C or V")
)

const (
	rootMarker    = 0
	residueMarker = 1
)

// Generator builds inputs and output candidates.
// MAX and DEP are assumed undominated (no deletions nor insertions are generated) and so is LINEARITY (no re-ordering of
// segments within a root or a residue, although they may be interleaved non-concatenatively).
type Generator struct {
	segments      string
	rootLength    int
	residueLength int
}

func NewGenerator(segments string, rootLength int) (*Generator, error) {
	segments = strings.ToUpper(segments)
	if invalid, ok := lo.Find([]rune(segments), func(letter rune) bool {
		return letter != rune(ot.Consonant) && letter != rune(ot.Vowel)
	}); ok {
		return nil, fmt.Errorf("%w: \"%c\" in \"%v\"", ErrInvalidSegment, invalid, segments)
	}

	// Residue should be at least one segment long
	if rootLength <= 0 || rootLength >= len(segments) {
		return nil, fmt.Errorf("%w: root length %d with segments \"%v\"", ErrInvalidRootLength, rootLength, segments)
	}

	return &Generator{
		segments:      segments,
		rootLength:    rootLength,
		residueLength: len(segments) - rootLength,
	}, nil
}

func (generator *Generator) Segments() string {
	return generator.segments
}

func (generator *Generator) RootLength() int {
	return generator.rootLength
}

func (generator *Generator) ResidueLength() int {
	return generator.residueLength
}

// Inputs generates every root and residue split of the distinct permutations of the segments.
// Segments are numbered by the position they occupy in the stem.
func (generator *Generator) Inputs() []ot.Input {
	letters := []byte(generator.segments)
	slices.Sort(letters)

	stems := Permutations(letters)
	return lo.Map(stems, func(stem []byte, _ int) ot.Input {
		numbered := lo.Map(stem, func(letter byte, i int) ot.Segment {
			return ot.Segment{Type: ot.SegmentType(letter), Index: i + 1}
		})
		return ot.Input{
			Root:    ot.Sequence(numbered[:generator.rootLength:generator.rootLength]),
			Residue: ot.Sequence(numbered[generator.rootLength:]),
		}
	})
}

// InputCount is the number of inputs Inputs generates: the multinomial coefficient of the segments' multiset
func (generator *Generator) InputCount() int {
	counts := lo.CountValues([]byte(generator.segments))
	count, placed := 1, 0
	for _, letter := range []byte{byte(ot.Consonant), byte(ot.Vowel)} {
		for i := 1; i <= counts[letter]; i++ {
			placed++
			// Exact at every step: the running product is C(placed, i) times the previous multinomial
			count = count * placed / i
		}
	}
	return count
}

// Candidates generates every order-preserving interleaving of the input's root and residue
func (generator *Generator) Candidates(input ot.Input) []ot.Sequence {
	if len(input.Root) != generator.rootLength {
		log.Panicf("root %v must have %d segments", input.Root, generator.rootLength)
	} else if len(input.Residue) != generator.residueLength {
		log.Panicf("residue %v must have %d segments", input.Residue, generator.residueLength)
	}

	markers := slices.Concat(
		slices.Repeat([]int{rootMarker}, generator.rootLength),
		slices.Repeat([]int{residueMarker}, generator.residueLength),
	)

	templates := Permutations(markers)
	return lo.Map(templates, func(template []int, _ int) ot.Sequence {
		return interleave(input.Root, input.Residue, template)
	})
}

// CandidateCount is the number of candidates Candidates generates per input: C(rootLength+residueLength, rootLength)
func (generator *Generator) CandidateCount() int {
	count := 1
	for i := 1; i <= generator.residueLength; i++ {
		count = count * (generator.rootLength + i) / i
	}
	return count
}

// Interleave two sequences given a template, a 0 pulls the next root segment and a 1 pulls the next residue segment
func interleave(root, residue ot.Sequence, template []int) ot.Sequence {
	sources := [2]ot.Sequence{root, residue}
	next := [2]int{}

	candidate := make(ot.Sequence, 0, len(template))
	for _, marker := range template {
		candidate = append(candidate, sources[marker][next[marker]])
		next[marker]++
	}
	return candidate
}
