package glove

import "iter"

// contextWindow is the focal token at one sequence position together with
// its bounded left and right context. Both sides are sub-slices of the
// original sequence in left-to-right order: the last element of Left and
// the first element of Right are adjacent to the focal token.
type contextWindow struct {
	Left  []string
	Focal string
	Right []string
}

// contextWindows yields one window per position of seq, bounded by left and
// right tokens per side. Windows shrink silently at sequence boundaries; no
// padding token is ever inserted.
func contextWindows(seq []string, left, right int) iter.Seq[contextWindow] {
	return func(yield func(contextWindow) bool) {
		for i, tok := range seq {
			lo := i - left
			if lo < 0 {
				lo = 0
			}
			hi := i + right + 1
			if hi > len(seq) {
				hi = len(seq)
			}
			w := contextWindow{
				Left:  seq[lo:i],
				Focal: tok,
				Right: seq[i+1 : hi],
			}
			if !yield(w) {
				return
			}
		}
	}
}
