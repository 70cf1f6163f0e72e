package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, []string{}},
		{"trims whitespace", []string{"  react ", "golang"}, []string{"react", "golang"}},
		{"drops empties", []string{"react", "", "   "}, []string{"react"}},
		{"dedupes case-insensitively", []string{"React", "react", "REACT", "vue"}, []string{"React", "vue"}},
		{"keeps first casing", []string{"GoLang", "golang"}, []string{"GoLang"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeSkills(tt.input))
		})
	}
}

func TestSkillMatchRatio(t *testing.T) {
	tests := []struct {
		name      string
		required  []string
		available []string
		want      float64
	}{
		{"empty requirement matches fully", nil, []string{"react"}, 1},
		{"empty skill set matches nothing", []string{"react"}, nil, 0},
		{"both empty", nil, nil, 1},
		{"full overlap", []string{"react", "node"}, []string{"react", "node", "sql"}, 1},
		{"half overlap", []string{"react", "node"}, []string{"react"}, 0.5},
		{"no overlap", []string{"react"}, []string{"python"}, 0},
		{"case insensitive", []string{"React", "NODE"}, []string{"react", "node"}, 1},
		{"whitespace tolerant", []string{" react "}, []string{"react"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, skillMatchRatio(tt.required, tt.available), 1e-9)
		})
	}
}
