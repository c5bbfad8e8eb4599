// Package dice rolls a single kind of die a number of times.
package dice

import (
	"fmt"

	"github.com/okian/marquee/internal/domain/model"
	"github.com/okian/marquee/internal/domain/random"
)

// Roll rolls a die with the given number of sides rolls times.
// Results keep generation order and Total is their sum.
// A non-positive rolls count yields an empty roll with a zero total.
func Roll(rng random.Source, sides, rolls int) (model.DieRoll, error) {
	return RollWithLimit(rng, sides, rolls, 0)
}

// RollWithLimit is Roll with an upper bound on rolls. max <= 0 disables it.
func RollWithLimit(rng random.Source, sides, rolls, max int) (model.DieRoll, error) {
	if sides <= 0 {
		return model.DieRoll{}, fmt.Errorf("roll d%d: %w", sides, ErrInvalidSides)
	}
	if max > 0 && rolls > max {
		return model.DieRoll{}, fmt.Errorf("roll %d dice (max %d): %w", rolls, max, ErrTooManyRolls)
	}
	if rolls < 0 {
		rolls = 0
	}

	results := make([]int, rolls)
	total := 0
	for i := range results {
		results[i] = rollDie(rng, sides)
		total += results[i]
	}

	return model.DieRoll{
		Total: total,
		Sides: sides,
		Rolls: results,
	}, nil
}

// rollDie rolls a single die with the provided number of sides.
func rollDie(rng random.Source, sides int) int {
	return rng.Intn(sides) + 1
}
