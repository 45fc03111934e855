package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/types"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		resume  types.SkillSet
		job     types.SkillSet
		matched []string
		missing []string
	}{
		{
			name:    "partial overlap",
			resume:  types.NewSkillSet("python", "java", "sql", "git"),
			job:     types.NewSkillSet("python", "java", "docker"),
			matched: []string{"java", "python"},
			missing: []string{"docker"},
		},
		{
			name:    "no overlap",
			resume:  types.NewSkillSet("python", "pandas"),
			job:     types.NewSkillSet("kubernetes", "docker", "aws"),
			matched: []string{},
			missing: []string{"aws", "docker", "kubernetes"},
		},
		{
			name:    "full coverage",
			resume:  types.NewSkillSet("Python", "Docker", "git"),
			job:     types.NewSkillSet("docker", "PYTHON"),
			matched: []string{"docker", "python"},
			missing: []string{},
		},
		{
			name:    "empty job",
			resume:  types.NewSkillSet("python"),
			job:     types.NewSkillSet(),
			matched: []string{},
			missing: []string{},
		},
		{
			name:    "empty resume",
			resume:  types.NewSkillSet(),
			job:     types.NewSkillSet("machine learning", "sql"),
			matched: []string{},
			missing: []string{"machine learning", "sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Analyze(tt.resume, tt.job)
			assert.Equal(t, tt.matched, report.Matched)
			assert.Equal(t, tt.missing, report.Missing)

			// matched and missing partition the job skills.
			union := types.NewSkillSet(append(append([]string{}, report.Matched...), report.Missing...)...)
			assert.Equal(t, tt.job, union)
			assert.Equal(t, 0, types.NewSkillSet(report.Matched...).Intersect(types.NewSkillSet(report.Missing...)).Len())
		})
	}
}

func TestAnalyze_DoesNotMutateInputs(t *testing.T) {
	resume := types.NewSkillSet("python")
	job := types.NewSkillSet("python", "docker")

	Analyze(resume, job)

	assert.Equal(t, types.NewSkillSet("python"), resume)
	assert.Equal(t, types.NewSkillSet("python", "docker"), job)
}

func TestCoverage(t *testing.T) {
	assert.Equal(t, 0.0, Coverage(types.GapReport{}))
	assert.Equal(t, 1.0, Coverage(types.GapReport{Matched: []string{"go"}}))
	assert.InDelta(t, 2.0/3.0, Coverage(types.GapReport{Matched: []string{"java", "python"}, Missing: []string{"docker"}}), 1e-12)
}
