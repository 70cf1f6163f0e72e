package services

import "strings"

// normalizeSkills trims entries and drops empties and duplicates. Casing
// is preserved; matching is case-insensitive where it matters.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}

// skillMatchRatio is the share of required skills present in available,
// compared case-insensitively. An empty requirement matches fully; an
// empty skill set matches nothing.
func skillMatchRatio(required, available []string) float64 {
	if len(required) == 0 {
		return 1
	}
	if len(available) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(available))
	for _, skill := range available {
		have[strings.ToLower(strings.TrimSpace(skill))] = struct{}{}
	}

	matched := 0
	for _, skill := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(skill))]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}
