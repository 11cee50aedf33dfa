package memory

// similarityRatio returns a score in [0, 1] for how alike two strings
// are: 2*LCS / (len(a)+len(b)) over their runes. Two near-identical
// facts ("I live in Munich." vs "I live in Munich") score well above
// 0.9; unrelated sentences land far below the 0.8 dedup threshold.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength computes the longest-common-subsequence length with a
// two-row DP table.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
