package quiz

import "strings"

// Outcome of evaluating one answer.
type Outcome struct {
	Correct bool
	Score   int
}

// Check compares the user's reply against the expected answer label. The
// comparison is a lowercase exact match, no trimming and no fuzzy
// matching. A correct answer bumps the score by one, anything else leaves
// it unchanged.
func Check(userAnswer, expected string, score int) Outcome {
	correct := strings.ToLower(userAnswer) == strings.ToLower(expected)
	if correct {
		score++
	}
	return Outcome{Correct: correct, Score: score}
}
