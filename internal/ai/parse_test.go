package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject_SurroundedByProse(t *testing.T) {
	raw := `Sure! Here is the assessment you asked for:

{"score": 85, "category": "Strong Match"}

Let me know if you need anything else.`

	var out struct {
		Score    int    `json:"score"`
		Category string `json:"category"`
	}
	require.NoError(t, ExtractJSONObject(raw, &out))
	assert.Equal(t, 85, out.Score)
	assert.Equal(t, "Strong Match", out.Category)
}

func TestExtractJSONObject_NestedBracesAndStrings(t *testing.T) {
	raw := `{"outer": {"note": "braces } inside { strings", "n": 1}, "ok": true}`

	var out map[string]interface{}
	require.NoError(t, ExtractJSONObject(raw, &out))
	assert.Equal(t, true, out["ok"])
}

func TestExtractJSONObject_CodeFence(t *testing.T) {
	raw := "```json\n{\"score\": 42}\n```"

	var out struct {
		Score int `json:"score"`
	}
	require.NoError(t, ExtractJSONObject(raw, &out))
	assert.Equal(t, 42, out.Score)
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	var out map[string]interface{}
	err := ExtractJSONObject("no structured data here", &out)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_Unterminated(t *testing.T) {
	var out map[string]interface{}
	err := ExtractJSONObject(`{"score": 10`, &out)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractStringList_JSONArray(t *testing.T) {
	raw := `Here are the skills: ["Go", "PostgreSQL", "Docker"]`
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, ExtractStringList(raw))
}

func TestExtractStringList_MalformedFallsBackToSplitting(t *testing.T) {
	// No JSON array present: the comma/newline fallback must still produce
	// a non-empty list and never fail.
	raw := "Python, JavaScript\nKubernetes"
	list := ExtractStringList(raw)
	assert.Equal(t, []string{"Python", "JavaScript", "Kubernetes"}, list)
	assert.NotEmpty(t, list)
}

func TestSplitList_TrimsDecorations(t *testing.T) {
	raw := "- Go\n- Rust\n- TypeScript"
	assert.Equal(t, []string{"Go", "Rust", "TypeScript"}, SplitList(raw))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "A generated bio.", CleanText("```\nA generated bio.\n```"))
	assert.Equal(t, "plain", CleanText("  plain  "))
}
