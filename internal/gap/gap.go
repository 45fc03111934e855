// Package gap reconciles the skills a resume shows against the skills a job asks for.
package gap

import (
	"github.com/jonathan/resume-matcher/internal/types"
)

// Analyze returns the job skills found in the resume (Matched) and those not
// found (Missing). Both lists are sorted, disjoint, and together equal the job skills.
func Analyze(resume, job types.SkillSet) types.GapReport {
	return types.GapReport{
		Matched: job.Intersect(resume).Sorted(),
		Missing: job.Difference(resume).Sorted(),
	}
}

// Coverage is the fraction of job skills the resume covers; 0 when the job lists none.
func Coverage(report types.GapReport) float64 {
	total := len(report.Matched) + len(report.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(report.Matched)) / float64(total)
}
