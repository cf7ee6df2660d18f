package assessment

import (
	"math/rand/v2"

	"github.com/spacesedan/echomind/internal/models"
)

var quotes = map[models.Label][]string{
	models.LabelPositive: {
		"Keep shining, you're doing great!",
		"Every day is a fresh start. Keep going!",
		"Happiness looks good on you!",
	},
	models.LabelNegative: {
		"You seem down. Try talking to someone, or take a break 💛",
		"This too shall pass. Stay strong!",
		"Remember, self-care is not selfish.",
	},
	models.LabelNeutral: {
		"You got this, dear 🌸",
		"Don't worry, eventually everything will make sense ✨",
	},
}

var fallbackQuotes = []string{"Keep going, don't stop!"}

// QuotePool returns the messages that may be shown for label.
func QuotePool(label models.Label) []string {
	if pool, ok := quotes[label]; ok {
		return pool
	}
	return fallbackQuotes
}

// PickQuote draws one message for label from rng.
func PickQuote(rng *rand.Rand, label models.Label) string {
	pool := QuotePool(label)
	return pool[rng.IntN(len(pool))]
}
