package align

// Match computes a partial correspondence from lyrics token indexes to
// transcript token indexes over the two normalized sequences.
//
// The strategy is recursive longest-common-run matching: find the single
// longest run of identical tokens common to both sequences (ties broken by
// earliest occurrence in each), record its index pairs, then recurse on the
// unmatched prefix pair and suffix pair. The result is order-preserving and
// injective: for mapped pairs (i1,j1) and (i2,j2), i1 < i2 implies j1 < j2.
// It is a greedy heuristic, not a guaranteed longest common subsequence,
// which is acceptable at lyrics scale and resolves repeated words
// structurally rather than by timestamp.
func Match(lyricsTokens, transcriptTokens []string) map[int]int {
	mapping := make(map[int]int)
	if len(lyricsTokens) == 0 || len(transcriptTokens) == 0 {
		return mapping
	}

	// Index transcript positions by token so the run search is linear in
	// occurrences rather than scanning the whole window per token.
	positions := make(map[string][]int, len(transcriptTokens))
	for j, token := range transcriptTokens {
		positions[token] = append(positions[token], j)
	}

	matchRange(lyricsTokens, positions, 0, len(lyricsTokens), 0, len(transcriptTokens), mapping)
	return mapping
}

// matchRange matches the window lyrics[alo:ahi] against transcript[blo:bhi]
// and records run pairs into mapping.
func matchRange(lyrics []string, positions map[string][]int, alo, ahi, blo, bhi int, mapping map[int]int) {
	bestA, bestB, bestSize := longestRun(lyrics, positions, alo, ahi, blo, bhi)
	if bestSize == 0 {
		return
	}

	for k := 0; k < bestSize; k++ {
		mapping[bestA+k] = bestB + k
	}

	matchRange(lyrics, positions, alo, bestA, blo, bestB, mapping)
	matchRange(lyrics, positions, bestA+bestSize, ahi, bestB+bestSize, bhi, mapping)
}

// longestRun finds the longest contiguous run of identical tokens common to
// lyrics[alo:ahi] and transcript[blo:bhi]. When several runs share the
// maximal length, the one starting earliest in the lyrics (and then
// earliest in the transcript) wins.
func longestRun(lyrics []string, positions map[string][]int, alo, ahi, blo, bhi int) (bestA, bestB, bestSize int) {
	// runEnding[j] is the length of the common run ending at the previous
	// lyrics index and transcript index j.
	runEnding := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range positions[lyrics[i]] {
			if j < blo || j >= bhi {
				continue
			}
			k := runEnding[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA, bestB, bestSize = i-k+1, j-k+1, k
			}
		}
		runEnding = next
	}
	return bestA, bestB, bestSize
}
