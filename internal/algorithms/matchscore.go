package algorithms

import (
	"fmt"
	"math"
	"strings"
	"time"

	"chainwork_backend/internal/models"
)

// MatchReport is the result of scoring a candidate against a job (0-100).
type MatchReport struct {
	Score          int      `json:"score"`
	Category       string   `json:"category"`
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Recommendation string   `json:"recommendation"`
}

// fallbackStartDate is assumed for experience entries with no start date.
var fallbackStartDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// experienceBands maps a job's experience level to the [min,max] range of
// total years it targets.
var experienceBands = map[models.ExperienceLevel][2]float64{
	models.ExperienceLevelEntry:  {0, 2},
	models.ExperienceLevelMid:    {2, 5},
	models.ExperienceLevelSenior: {5, 10},
	models.ExperienceLevelLead:   {8, 20},
}

// CalculateMatchScore computes the deterministic compatibility score between
// a candidate and a job. Weights: skills 40, experience 30, location 15,
// education 15. This is the fallback used when the AI scoring path fails, so
// the weighting and thresholds are a stable contract.
func CalculateMatchScore(candidate *models.User, job *models.Job) *MatchReport {
	score := 0.0

	candidateSkills := candidate.GetSkills()
	jobSkills := job.GetSkills()

	matched := matchSkills(candidateSkills, jobSkills)
	jobSkillCount := len(jobSkills)
	if jobSkillCount < 1 {
		jobSkillCount = 1
	}
	score += float64(len(matched)) / float64(jobSkillCount) * 40

	totalYears := TotalExperienceYears(candidate.Experiences, time.Now())
	score += experienceScore(totalYears, job.ExperienceLevel)

	if job.WorkMode == models.WorkModeRemote || containsFold(job.Location, candidate.Location) {
		score += 15
	} else {
		score += 5
	}

	if len(candidate.Educations) > 0 {
		score += 15
	} else {
		score += 5
	}

	total := int(math.Round(score))

	return &MatchReport{
		Score:          total,
		Category:       ScoreCategory(total),
		Strengths:      buildStrengths(matched, totalYears),
		Gaps:           buildGaps(candidateSkills, jobSkills, matched),
		Recommendation: buildRecommendation(total),
	}
}

// ScoreCategory maps a total score to its match band. Boundaries are
// inclusive: 90 is already a Gold Match, 70 a Strong Match, 50 a Good Match.
func ScoreCategory(score int) string {
	switch {
	case score >= 90:
		return "Gold Match"
	case score >= 70:
		return "Strong Match"
	case score >= 50:
		return "Good Match"
	default:
		return "Partial Match"
	}
}

// TotalExperienceYears sums the duration of each experience entry in
// floating-point years. Open-ended (current) entries run until now; entries
// without a start date fall back to 2020-01-01.
func TotalExperienceYears(entries []models.UserExperience, now time.Time) float64 {
	const hoursPerYear = 24 * 365.25

	total := 0.0
	for _, e := range entries {
		start := fallbackStartDate
		if e.StartDate != nil {
			start = *e.StartDate
		}
		end := now
		if e.EndDate != nil && !e.Current {
			end = *e.EndDate
		}
		if end.Before(start) {
			continue
		}
		total += end.Sub(start).Hours() / hoursPerYear
	}
	return total
}

// matchSkills returns the candidate skills that match a job skill,
// case-insensitively, using substring containment in either direction
// ("Python" matches "python", "React" matches "React.js").
func matchSkills(candidateSkills, jobSkills []string) []string {
	var matched []string
	for _, cs := range candidateSkills {
		for _, js := range jobSkills {
			if containsFold(cs, js) || containsFold(js, cs) {
				matched = append(matched, cs)
				break
			}
		}
	}
	return matched
}

func experienceScore(totalYears float64, level models.ExperienceLevel) float64 {
	band, ok := experienceBands[level]
	if !ok {
		band = experienceBands[models.ExperienceLevelMid]
	}
	min, max := band[0], band[1]

	switch {
	case totalYears >= min && totalYears <= max+2:
		return 30
	case totalYears >= min:
		// Overqualified beyond the tolerated band.
		return 20
	default:
		return 0
	}
}

func containsFold(haystack, needle string) bool {
	if needle == "" || haystack == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func buildStrengths(matched []string, totalYears float64) []string {
	strengths := []string{}
	if len(matched) > 0 {
		strengths = append(strengths, "Matching skills: "+strings.Join(matched, ", "))
	}
	if totalYears > 0 {
		strengths = append(strengths, fmt.Sprintf("%.1f years of professional experience", totalYears))
	}
	return strengths
}

func buildGaps(candidateSkills, jobSkills, matched []string) []string {
	matchedSet := make(map[string]bool, len(matched))
	for _, m := range matched {
		matchedSet[strings.ToLower(m)] = true
	}

	gaps := []string{}
	for _, js := range jobSkills {
		covered := false
		for _, cs := range candidateSkills {
			if matchedSet[strings.ToLower(cs)] && (containsFold(cs, js) || containsFold(js, cs)) {
				covered = true
				break
			}
		}
		if !covered {
			gaps = append(gaps, "Missing skill: "+js)
		}
	}
	return gaps
}

func buildRecommendation(score int) string {
	switch {
	case score >= 70:
		return "Strong candidate for this role, apply with a tailored cover letter"
	case score >= 50:
		return "Reasonable fit, highlight transferable skills when applying"
	default:
		return "Consider building up the missing skills before applying"
	}
}
