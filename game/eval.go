package game

import "strconv"

// Reward is the value of the best non-tool item held, or 0 when there is none.
// A score never goes below zero, even if every item is worth less.
func Reward(inv Inventory) int {
	best := 0
	for _, item := range inv {
		if v, ok := ValueOf(item); ok && v > best {
			best = v
		}
	}
	return best
}

// Floor wraps a reward function so that it never reports a negative score.
func Floor(reward RewardFunc) RewardFunc {
	if reward == nil {
		return Reward
	}
	return func(inv Inventory) int {
		return max(reward(inv), 0)
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
