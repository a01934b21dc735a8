package engine

// similarityRatio measures how alike two strings are on a [0, 1] scale.
// It sums the lengths of the longest common blocks found by repeatedly
// splitting around the longest match, then returns 2*M/T where M is the
// matched total and T the combined length. Two empty strings are identical.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	b2j := make(map[rune][]int, len(rb))
	for j, r := range rb {
		b2j[r] = append(b2j[r], j)
	}

	matched := 0
	type segment struct {
		alo, ahi, blo, bhi int
	}
	stack := []segment{{0, len(ra), 0, len(rb)}}
	for len(stack) > 0 {
		seg := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i, j, size := longestMatch(ra, b2j, seg.alo, seg.ahi, seg.blo, seg.bhi)
		if size == 0 {
			continue
		}
		matched += size
		stack = append(stack,
			segment{seg.alo, i, seg.blo, j},
			segment{i + size, seg.ahi, j + size, seg.bhi},
		)
	}

	return 2.0 * float64(matched) / float64(total)
}

// longestMatch finds the longest matching block of a[alo:ahi] within the
// column range [blo, bhi) of the second string, using the inverted index b2j.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		newj2len := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
