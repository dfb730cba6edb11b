package engine

// DefaultChainLength is the sequence length Generate uses when none is given.
const DefaultChainLength = 5

// Chain is a first-order Markov chain over string states.
// Transition lists keep duplicates, so frequent transitions are drawn more often.
type Chain struct {
	starts      []string
	transitions map[string][]string
}

// NewChain returns an untrained chain.
func NewChain() *Chain {
	return &Chain{transitions: make(map[string][]string)}
}

// Train records the first state and every transition of each sequence.
// Empty sequences are skipped. Training is cumulative.
func (c *Chain) Train(sequences [][]string) {
	for _, seq := range sequences {
		if len(seq) == 0 {
			continue
		}
		c.starts = append(c.starts, seq[0])
		for i := 0; i < len(seq)-1; i++ {
			c.transitions[seq[i]] = append(c.transitions[seq[i]], seq[i+1])
		}
	}
}

// Trained reports whether the chain has seen at least one sequence.
func (c *Chain) Trained() bool {
	return len(c.starts) > 0
}

// Generate walks the chain from a random start state for at most maxLength
// states, stopping early at a state with no transitions. An untrained chain
// yields nil.
func (c *Chain) Generate(r Rand, maxLength int) []string {
	if !c.Trained() {
		return nil
	}
	if maxLength <= 0 {
		maxLength = DefaultChainLength
	}
	r = orFresh(r)

	cur := c.starts[r.IntN(len(c.starts))]
	out := []string{cur}
	for len(out) < maxLength {
		next := c.transitions[cur]
		if len(next) == 0 {
			break
		}
		cur = next[r.IntN(len(next))]
		out = append(out, cur)
	}
	return out
}
