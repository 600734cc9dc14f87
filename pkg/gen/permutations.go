package gen

// Permutations builds every distinct permutation of the items multiset that holds the constraints.
// Distinct values are placed in order of first appearance, so a sorted multiset yields permutations in lexicographic order.
// Constraints are evaluated on every partial permutation (the prefix built so far), therefore they must hold on prefixes
// of valid permutations and must not assume the permutation is complete.
//
// Example:
//
//	rankings := gen.Permutations([]string{"a", "b", "c"}, func(permutation []string) bool {
//		// "b" cannot be placed before "a" has been placed
//		return !slices.Contains(permutation, "b") || slices.Index(permutation, "a") < slices.Index(permutation, "b")
//	})
func Permutations[T comparable](items []T, constraints ...func(permutation []T) bool) [][]T {
	values := make([]T, 0, len(items))
	counts := make(map[T]int, len(items))
	for _, item := range items {
		if _, ok := counts[item]; !ok {
			values = append(values, item)
		}
		counts[item]++
	}

	permutations := make([][]T, 0)
	constrainedPermutations(constraints, values, counts, make([]T, 0, len(items)), len(items), &permutations)
	return permutations
}

func constrainedPermutations[T comparable](
	constraints []func(permutation []T) bool,
	values []T,
	remaining map[T]int,
	permutation []T,
	length int,
	permutations *[][]T) {

	if len(permutation) == length {
		permutationCopy := make([]T, len(permutation))
		copy(permutationCopy, permutation)
		*permutations = append(*permutations, permutationCopy)
		return
	}

	for _, value := range values {
		if remaining[value] == 0 {
			continue
		}

		permutation = append(permutation, value)
		constraintViolated := false
		for _, constraint := range constraints {
			if !constraint(permutation) {
				constraintViolated = true
				break
			}
		}

		if !constraintViolated {
			remaining[value]--
			constrainedPermutations(constraints, values, remaining, permutation, length, permutations)
			remaining[value]++
		}

		permutation = permutation[:len(permutation)-1]
	}
}
