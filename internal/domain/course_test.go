package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseValidate(t *testing.T) {
	valid := Course{
		Name:           "Linear Algebra",
		KnowledgeLevel: LevelBeginner,
		StudyPace:      PaceModerate,
		Goal:           GoalAcademic,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Course)
	}{
		{"empty name", func(c *Course) { c.Name = "  " }},
		{"bad level", func(c *Course) { c.KnowledgeLevel = "expert" }},
		{"bad pace", func(c *Course) { c.StudyPace = "frantic" }},
		{"bad goal", func(c *Course) { c.Goal = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestParseGenerationStage(t *testing.T) {
	tests := []struct {
		in   string
		want GenerationStage
		ok   bool
	}{
		{"preparing", StagePreparing, true},
		{"preparation", StagePreparing, true},
		{"researching", StageResearching, true},
		{"analyzing", StageAnalyzing, true},
		{"completed", StageCompleted, true},
		{"failed", StageFailed, true},
		{"", "", false},
		{"bogus", "", false},
	}
	for _, tc := range tests {
		got, ok := ParseGenerationStage(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestGenerationStageTerminal(t *testing.T) {
	assert.True(t, StageCompleted.Terminal())
	assert.True(t, StageFailed.Terminal())
	assert.False(t, StagePreparing.Terminal())
	assert.False(t, StageResearching.Terminal())
	assert.False(t, StageAnalyzing.Terminal())
}
