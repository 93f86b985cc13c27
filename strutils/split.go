// Package strutils splits strings on separators found by a sliding window
// of runes.
package strutils

// SplitOnPred slides a window of up to bufLen runes over s and splits s at
// the first window for which pred reports true. The int returned by pred
// selects the position within the window to split at. If pred never matches,
// s is returned whole.
func SplitOnPred(s string, bufLen uint, pred func([]rune) (bool, int)) (string, string) {
	if bufLen == 0 {
		return s, ""
	}
	var n uint
	rbuf := make([]rune, bufLen)
	ibuf := make([]int, bufLen)
	for i, r := range s {
		if n < bufLen {
			rbuf[n] = r
			ibuf[n] = i
			n++
		} else {
			copy(rbuf, rbuf[1:])
			copy(ibuf, ibuf[1:])
			rbuf[bufLen-1] = r
			ibuf[bufLen-1] = i
		}
		if ok, k := pred(rbuf[:n]); ok {
			splitAt := ibuf[k]
			return s[:splitAt], s[splitAt:]
		}
	}
	return s, ""
}

// SplitOnSeps splits s before the first occurrence of any of seps. The
// separator stays at the start of the second half.
func SplitOnSeps(s string, bufLen uint, seps ...string) (string, string) {
	return SplitOnPred(s, bufLen, func(buf []rune) (bool, int) {
		for _, sep := range seps {
			if hasRunePrefix(buf, sep) {
				return true, 0
			}
		}
		return false, 0
	})
}

func hasRunePrefix(buf []rune, prefix string) bool {
	var j int
	for _, r := range prefix {
		if j == len(buf) || buf[j] != r {
			return false
		}
		j++
	}
	return j > 0
}
