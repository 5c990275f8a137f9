package bucket

// Policy holds the tunable parts of the selection.
type Policy struct {
	// FrontSliceWidth returns how many of the remaining sorted candidates a pick is drawn from.
	FrontSliceWidth func(remaining int) int
	// PickCount returns how many tasks are taken from bucket bucketIdx in one round.
	PickCount func(bucketIdx, numBuckets, weight int) int
}

// DefaultPolicy draws from the older half of the candidates and takes B-i tasks from bucket i.
func DefaultPolicy() Policy {
	return Policy{
		FrontSliceWidth: HalfFrontSlice,
		PickCount:       DefaultPickCount,
	}
}

// NewPolicy builds a policy from the repeat settings. A frontSlice of 0 selects HalfFrontSlice.
func NewPolicy(frontSlice int, useWeights bool) Policy {
	policy := DefaultPolicy()
	if frontSlice > 0 {
		policy.FrontSliceWidth = FixedFrontSlice(frontSlice)
	}
	if useWeights {
		policy.PickCount = WeightedPickCount
	}
	return policy
}

// HalfFrontSlice returns the rounded up half of the remaining candidates.
func HalfFrontSlice(remaining int) int {
	return (remaining + 1) / 2
}

// FixedFrontSlice returns a width of n, narrowed to the remaining candidates.
func FixedFrontSlice(n int) func(remaining int) int {
	return func(remaining int) int {
		return min(n, remaining)
	}
}

// DefaultPickCount favours earlier buckets: bucket i of B contributes B-i picks.
func DefaultPickCount(bucketIdx, numBuckets, _ int) int {
	return numBuckets - bucketIdx
}

// WeightedPickCount uses the weight configured for the bucket as its pick count.
func WeightedPickCount(_, _, weight int) int {
	return weight
}

func (p Policy) frontSliceWidth(remaining int) int {
	width := remaining
	if p.FrontSliceWidth != nil {
		width = p.FrontSliceWidth(remaining)
	}
	return max(1, min(width, remaining))
}

func (p Policy) pickCount(bucketIdx, numBuckets, weight int) int {
	if p.PickCount == nil {
		return DefaultPickCount(bucketIdx, numBuckets, weight)
	}
	return p.PickCount(bucketIdx, numBuckets, weight)
}
