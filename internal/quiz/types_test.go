package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAcceptsTypesAlias(t *testing.T) {
	var r Request
	require.NoError(t, json.Unmarshal([]byte(`{"content_id":"c1","types":["mcq"],"difficulty":"hard","seed":7}`), &r))
	assert.Equal(t, "c1", r.ContentID)
	assert.Equal(t, []string{"mcq"}, r.Types)
	assert.Equal(t, "hard", r.Difficulty)
	require.NotNil(t, r.Seed)
	assert.Equal(t, uint64(7), *r.Seed)

	require.NoError(t, json.Unmarshal([]byte(`{"content_id":"c1","question_types":["fill_blank"],"types":["mcq"]}`), &r))
	assert.Equal(t, []string{"fill_blank"}, r.Types, "question_types wins")
}

func TestAnswerAcceptsAnswerAlias(t *testing.T) {
	var answers []Answer
	require.NoError(t, json.Unmarshal([]byte(`[
		{"question_id":"q1","answer":"mitochondria","time_spent_seconds":2},
		{"question_id":"q2","user_answer":"cell","answer":"ignored"}
	]`), &answers))

	require.Len(t, answers, 2)
	assert.Equal(t, Answer{QuestionID: "q1", Answer: "mitochondria", TimeSpentSeconds: 2}, answers[0])
	assert.Equal(t, "cell", answers[1].Answer)

	assert.Error(t, json.Unmarshal([]byte(`{"question_id":7}`), &Answer{}))
}
