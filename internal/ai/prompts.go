package ai

import (
	"fmt"
	"strings"
)

// Prompt builders for the task-specific completions. Each asks for a strict
// output shape; parsing stays defensive anyway (see parse.go).

func ExtractSkillsPrompt(text string) string {
	return fmt.Sprintf(`Extract the professional skills mentioned in the following text.
Respond with a JSON array of skill name strings only, no explanation.

Text:
%s`, text)
}

func ParseResumePrompt(text string) string {
	return fmt.Sprintf(`Parse the following resume into structured data.
Respond with a single JSON object with the keys:
"name", "email", "headline", "skills" (array of strings),
"experience" (array of {"title","company","startDate","endDate","current"}),
"education" (array of {"school","degree","field","startYear","endYear"}).
Use null for unknown fields. No explanation outside the JSON.

Resume:
%s`, text)
}

func GenerateBioPrompt(name, headline string, skills []string) string {
	return fmt.Sprintf(`Write a short professional bio (2-3 sentences, first person) for a job platform profile.

Name: %s
Headline: %s
Skills: %s

Respond with the bio text only.`, name, headline, strings.Join(skills, ", "))
}

func GenerateCoverLetterPrompt(candidateName, headline string, skills []string, jobTitle, company, description string) string {
	return fmt.Sprintf(`Write a concise cover letter (under 250 words) for the following application.

Candidate: %s
Headline: %s
Skills: %s

Job title: %s
Company: %s
Job description:
%s

Respond with the cover letter text only.`,
		candidateName, headline, strings.Join(skills, ", "), jobTitle, company, description)
}

func EnhanceJobDescriptionPrompt(title, description string) string {
	return fmt.Sprintf(`Improve the following job description: fix grammar, structure it with
short paragraphs, and keep all factual details. Do not invent requirements.

Job title: %s
Description:
%s

Respond with the improved description text only.`, title, description)
}

func MatchScorePrompt(candidateJSON, jobJSON string) string {
	return fmt.Sprintf(`Assess how well the candidate fits the job. Respond with a single JSON
object and nothing else:
{"score": <0-100 integer>, "category": <string>, "strengths": [<strings>],
"gaps": [<strings>], "recommendation": <string>}

Candidate:
%s

Job:
%s`, candidateJSON, jobJSON)
}
