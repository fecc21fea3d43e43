// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initFuzzy = sync.OnceFunc(func() { algo.Init("default") })

// ClosestName returns the candidate that best matches input, or "" when
// nothing is plausible. Candidates containing input as an fzf-style
// subsequence are ranked by fzf's score; when none do, the candidate
// within Levenshtein distance 3 is used instead, which catches typos
// the subsequence match cannot (transpositions, substitutions).
func ClosestName(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}
	initFuzzy()

	pattern := []rune(input)
	slab := util.MakeSlab(100*1024, 2048)

	best := ""
	bestScore := 0
	for _, candidate := range candidates {
		if candidate == input {
			return candidate
		}
		chars := util.ToChars([]byte(candidate))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if result.Start < 0 {
			continue
		}
		if score := int(result.Score); best == "" || score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if best != "" {
		return best
	}
	return closestByEditDistance(input, candidates)
}
