package vapor

// BucketPartition rearranges items in place so that items with the same key
// form contiguous blocks, ordered by key.
//
// Keys must be in [0, numBuckets). The result has numBuckets+1 entries, and
// block b is items[offsets[b]:offsets[b+1]].
//
// The relative order of items within a block is not preserved, but it is a
// deterministic function of the input order.
func BucketPartition[T any](items []T, numBuckets int, key func(T) int) (offsets []int) {
	offsets = make([]int, numBuckets+1)
	for _, x := range items {
		offsets[key(x)+1]++
	}
	for b := 0; b < numBuckets; b++ {
		offsets[b+1] += offsets[b]
	}

	// Fill each block in turn. Everything before a block is already final,
	// so misplaced items are only searched for after it.
	for b := 0; b < numBuckets-1; b++ {
		left, end := offsets[b], offsets[b+1]
		right := end
		for left < end {
			if key(items[left]) == b {
				left++
				continue
			}
			for key(items[right]) != b {
				right++
			}
			items[left], items[right] = items[right], items[left]
			left++
			right++
		}
	}
	return offsets
}
