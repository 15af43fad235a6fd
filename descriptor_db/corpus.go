package descriptor_db

import "sort"

// Corpus counts every descriptor emitted while scanning one reference database
type Corpus map[string]uint64

// Add folds a descriptor list into the corpus (counting, not deduplicating)
func (c Corpus) Add(descriptors []string) {
	for _, d := range descriptors {
		c[d]++
	}
}

// Merge sums other's counts into c
func (c Corpus) Merge(other Corpus) {
	for d, n := range other {
		c[d] += n
	}
}

// Total is the number of descriptor occurrences, duplicates included
func (c Corpus) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += n
	}
	return total
}

// Keys returns the distinct descriptors in sorted order
func (c Corpus) Keys() []string {
	keys := make([]string, 0, len(c))
	for d := range c {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	return keys
}
