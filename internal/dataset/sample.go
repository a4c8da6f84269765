package dataset

import "math/rand"

// Sample draws up to k records without replacement using an explicitly
// seeded source, so a fixed seed always yields the same subset.
func Sample(records []Record, k int, seed int64) []Record {
	return SampleRand(records, k, rand.New(rand.NewSource(seed)))
}

// SampleRand draws up to k records without replacement from rng. The input
// slice is never mutated.
func SampleRand(records []Record, k int, rng *rand.Rand) []Record {
	if k <= 0 || len(records) == 0 || rng == nil {
		return nil
	}
	if k > len(records) {
		k = len(records)
	}

	idx := rng.Perm(len(records))
	out := make([]Record, 0, k)
	for _, i := range idx[:k] {
		out = append(out, records[i])
	}
	return out
}
