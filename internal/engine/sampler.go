package engine

import (
	"math"
	"sort"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

// DefaultAlpha is the rank-weight exponent used when none is given.
const DefaultAlpha = domain.DefaultAlpha

// WeightedOption is one entry of a sampling distribution.
type WeightedOption struct {
	Option domain.Option

	// Rank is the 0-based position after sorting by rarity.
	Rank int

	// Weight is the unnormalised weight, 1/(Rank+1)^alpha.
	Weight float64

	// Probability is Weight divided by the total weight.
	Probability float64
}

// rarityScore treats a missing or zero rarity as 1.
func rarityScore(o domain.Option) float64 {
	if r := o.RarityOr(1); r != 0 {
		return r
	}
	return 1
}

// Weights returns the distribution Sample draws from.
//
// Without any rarity in the list every option has weight 1 and keeps its
// input position. With rarity present, options are stable-sorted by rarity
// descending, so a larger rarity is a more common option, and the option
// at rank i is weighted 1/(i+1)^alpha.
func Weights(options []domain.Option, alpha float64) []WeightedOption {
	n := len(options)
	if n == 0 {
		return nil
	}
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	out := make([]WeightedOption, n)
	for i, o := range options {
		out[i] = WeightedOption{Option: o, Rank: i, Weight: 1}
	}

	if domain.AnyRarity(options) {
		sort.SliceStable(out, func(i, j int) bool {
			return rarityScore(out[i].Option) > rarityScore(out[j].Option)
		})
		for i := range out {
			out[i].Rank = i
			out[i].Weight = 1 / math.Pow(float64(i+1), alpha)
		}
	}

	var total float64
	for _, w := range out {
		total += w.Weight
	}
	for i := range out {
		out[i].Probability = out[i].Weight / total
	}
	return out
}

// Sample picks one option.
//
// An empty list returns the empty Option rather than failing. Without
// rarity the pick is uniform; otherwise it is a single roulette draw over
// Weights. A nil r uses a fresh generator.
func Sample(r Rand, options []domain.Option, alpha float64) domain.Option {
	if len(options) == 0 {
		return domain.Option{}
	}
	r = orFresh(r)

	if !domain.AnyRarity(options) {
		return options[r.IntN(len(options))]
	}

	weighted := Weights(options, alpha)
	var total float64
	for _, w := range weighted {
		total += w.Weight
	}

	x := r.Float64() * total
	for _, w := range weighted {
		x -= w.Weight
		if x < 0 {
			return w.Option
		}
	}
	return weighted[len(weighted)-1].Option
}
