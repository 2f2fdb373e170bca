package game

import (
	game_constants "Stop/constants/game"
	"sort"
	"strings"
)

// ScoreRound computes the per-participant per-category scores for one
// round. An answer scores 0 if empty or not starting with the round's
// letter, 10 if it is unique among the eligible participants for that
// category, and 5 if at least one other participant gave the same
// normalized answer.
//
// The function is pure and deterministic: participant ids are sorted
// and categories walked in the room's declared order, so the result
// never depends on submission arrival order or map iteration order.
func ScoreRound(categories []string, letter string, answers map[string]map[string]string,
	eligible []string) (scores map[string]map[string]int, totals map[string]int) {

	ids := append([]string(nil), eligible...)
	sort.Strings(ids)

	letterNorm := strings.ToLower(strings.TrimSpace(letter))

	scores = make(map[string]map[string]int, len(ids))
	totals = make(map[string]int, len(ids))
	for _, id := range ids {
		scores[id] = make(map[string]int, len(categories))
		totals[id] = 0
	}

	for _, category := range categories {
		normalized := make(map[string]string, len(ids))
		counts := make(map[string]int, len(ids))

		for _, id := range ids {
			text := strings.ToLower(strings.TrimSpace(answers[id][category]))
			if text == "" || !strings.HasPrefix(text, letterNorm) {
				continue
			}
			normalized[id] = text
			counts[text]++
		}

		for _, id := range ids {
			text, valid := normalized[id]
			if !valid {
				scores[id][category] = 0
				continue
			}
			points := game_constants.UniqueAnswerScore
			if counts[text] > 1 {
				points = game_constants.DuplicateAnswerScore
			}
			scores[id][category] = points
			totals[id] += points
		}
	}

	return scores, totals
}
