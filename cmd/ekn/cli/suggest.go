// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// maxSuggestionDistance is the largest edit distance still offered as
// a "did you mean" suggestion. Three covers a transposition plus a
// dropped or doubled character.
const maxSuggestionDistance = 3

// closestByEditDistance returns the candidate nearest to input, or ""
// when none is within maxSuggestionDistance. Ties go to the earlier
// candidate.
func closestByEditDistance(input string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, candidate := range candidates {
		if distance := levenshtein(input, candidate); distance < bestDistance {
			best, bestDistance = candidate, distance
		}
	}
	return best
}

// suggestCommand returns the primary name of the subcommand closest to
// unknown. Aliases are matched too.
func suggestCommand(unknown string, commands []*Command) string {
	var names []string
	primary := make(map[string]string)
	for _, command := range commands {
		for _, name := range append([]string{command.Name}, command.Aliases...) {
			if _, seen := primary[name]; !seen {
				names = append(names, name)
				primary[name] = command.Name
			}
		}
	}
	return primary[closestByEditDistance(unknown, names)]
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the closest defined flag as "--name", or "" when there is
// nothing close. Arguments after "--" are not flags.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if flagSet.Lookup(name) != nil || (len(name) == 1 && flagSet.ShorthandLookup(name) != nil) {
			continue
		}

		var defined []string
		flagSet.VisitAll(func(flag *pflag.Flag) { defined = append(defined, flag.Name) })
		if closest := closestByEditDistance(name, defined); closest != "" {
			return "--" + closest
		}
		return ""
	}
	return ""
}

// levenshtein returns the number of single-character insertions,
// deletions and substitutions that turn a into b. It keeps two rows of
// the distance matrix, sized by the shorter string.
func levenshtein(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}
	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			substitution := previous[i-1]
			if a[i-1] != b[j-1] {
				substitution++
			}
			current[i] = min(previous[i]+1, current[i-1]+1, substitution)
		}
		previous, current = current, previous
	}
	return previous[len(a)]
}
