package ot

import (
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type SegmentType byte

const (
	Consonant SegmentType = 'C'
	Vowel     SegmentType = 'V'
)

// Segment is a typed segment identified by its position in the stem it was generated from (e.g. C1, V4)
type Segment struct {
	Type  SegmentType
	Index int
}

func (segment Segment) IsConsonant() bool {
	return segment.Type == Consonant
}

func (segment Segment) IsVowel() bool {
	return segment.Type == Vowel
}

func (segment Segment) String() string {
	return string(segment.Type) + strconv.Itoa(segment.Index)
}

func ParseSegment(str string) (Segment, error) {
	if len(str) < 2 {
		return Segment{}, fmt.Errorf("invalid segment \"%v\": expected a type letter followed by an index", str)
	}

	segmentType := SegmentType(str[0])
	if segmentType != Consonant && segmentType != Vowel {
		return Segment{}, fmt.Errorf("invalid segment \"%v\": type must be C or V", str)
	}

	index, err := strconv.Atoi(str[1:])
	if err != nil {
		return Segment{}, fmt.Errorf("invalid segment \"%v\": %w", str, err)
	}
	return Segment{Type: segmentType, Index: index}, nil
}

// Sequence is an ordered list of segments. Roots, residues and candidates are all sequences
type Sequence []Segment

func ParseSequence(segments ...string) (Sequence, error) {
	sequence := make(Sequence, 0, len(segments))
	for _, str := range segments {
		segment, err := ParseSegment(str)
		if err != nil {
			return nil, err
		}
		sequence = append(sequence, segment)
	}
	return sequence, nil
}

// MustParseSequence parses a whitespace separated list of segments such as "C1 V2 C3" and panics on failure
func MustParseSequence(str string) Sequence {
	sequence, err := ParseSequence(strings.Fields(str)...)
	if err != nil {
		log.Panicf("cannot parse sequence: %v", err)
	}
	return sequence
}

// Key returns a structural key of the sequence, two sequences share a key if and only if they are equal
func (sequence Sequence) Key() string {
	return strings.Join(lo.Map(sequence, func(segment Segment, _ int) string { return segment.String() }), " ")
}

func (sequence Sequence) String() string {
	return "(" + strings.Join(lo.Map(sequence, func(segment Segment, _ int) string { return segment.String() }), ", ") + ")"
}

// Form returns the segments glued together, as they'd be written in a tableau (e.g. C1V2C3)
func (sequence Sequence) Form() string {
	return strings.Join(lo.Map(sequence, func(segment Segment, _ int) string { return segment.String() }), "")
}

func (sequence Sequence) Equal(other Sequence) bool {
	return slices.Equal(sequence, other)
}

func (sequence Sequence) Concat(other Sequence) Sequence {
	return slices.Concat(sequence, other)
}

func (sequence Sequence) IndexOf(segment Segment) int {
	return slices.Index(sequence, segment)
}

// LastIndexOf returns the 0-based position of segment counting from the right edge, or -1 if absent
func (sequence Sequence) LastIndexOf(segment Segment) int {
	for i := len(sequence) - 1; i >= 0; i-- {
		if sequence[i] == segment {
			return len(sequence) - 1 - i
		}
	}
	return -1
}

// ContainsRun checks whether run occurs as one contiguous block inside the sequence
func (sequence Sequence) ContainsRun(run Sequence) bool {
	if len(run) == 0 {
		return true
	}
	for i := 0; i+len(run) <= len(sequence); i++ {
		if slices.Equal(sequence[i:i+len(run)], run) {
			return true
		}
	}
	return false
}

// IsSubsequence checks whether every segment of sub appears in the sequence in the same relative order
func (sequence Sequence) IsSubsequence(sub Sequence) bool {
	j := 0
	for i := 0; i < len(sequence) && j < len(sub); i++ {
		if sequence[i] == sub[j] {
			j++
		}
	}
	return j == len(sub)
}

// Homogeneous reports whether every segment has the given type
func (sequence Sequence) Homogeneous(segmentType SegmentType) bool {
	return len(sequence) > 0 && lo.EveryBy(sequence, func(segment Segment) bool { return segment.Type == segmentType })
}

// Pairs returns the adjacent-segment pairs of the sequence in order
func (sequence Sequence) Pairs() [][2]Segment {
	if len(sequence) < 2 {
		return nil
	}
	pairs := make([][2]Segment, 0, len(sequence)-1)
	for i := range len(sequence) - 1 {
		pairs = append(pairs, [2]Segment{sequence[i], sequence[i+1]})
	}
	return pairs
}
