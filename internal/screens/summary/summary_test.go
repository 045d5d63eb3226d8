package summary

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
)

func testResult() *quiz.Result {
	return &quiz.Result{
		AttemptID:        "a1",
		Total:            4,
		Correct:          3,
		ScorePercent:     75,
		TimeTakenSeconds: 95,
		NextDifficulty:   "hard",
		Streak:           2,
		NextMilestone:    3,
		Results: []quiz.QuestionResult{
			{QuestionID: "q1", Text: "The ____ stores genetic information.", UserAnswer: "ribosome", CorrectAnswer: "nucleus"},
			{QuestionID: "q2", IsCorrect: true},
			{QuestionID: "q3", IsCorrect: true},
			{QuestionID: "q4", IsCorrect: true},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), "Cells", nil)
	assert.Equal(t, "Results", s.Title())
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult(), "Cells", nil)
	view := s.View(100, 30)
	assert.Contains(t, view, "Cells complete!")
	assert.Contains(t, view, "75%")
	assert.Contains(t, view, "Correct: 3/4")
	assert.Contains(t, view, "Time: 1:35")
	assert.Contains(t, view, "HARD")
	assert.Contains(t, view, "2 day streak")
	assert.Contains(t, view, "nucleus")
	assert.Contains(t, view, "ribosome")
}

func TestSummaryScreen_PerfectScore(t *testing.T) {
	res := testResult()
	res.Results[0].IsCorrect = true
	res.Correct = 4
	s := New(res, "", nil)
	assert.Contains(t, s.View(100, 30), "Perfect score!")
}

func TestSummaryScreen_InitPublishesStatus(t *testing.T) {
	s := New(testResult(), "", nil)
	cmd := s.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, screen.StatusMsg{Streak: 2, Level: "hard"}, cmd())
}

func TestSummaryScreen_Navigation(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape} {
		s := New(testResult(), "", nil)
		_, cmd := s.Update(tea.KeyPressMsg{Code: code})
		require.NotNil(t, cmd)
		assert.Equal(t, router.PopToRootMsg{}, cmd())
	}
}

func TestSummaryScreen_Insight(t *testing.T) {
	calls := 0
	s := New(testResult(), "", func(context.Context) (string, error) {
		calls++
		return "Re-read the section on the nucleus.", nil
	})
	assert.Len(t, s.KeyHints(), 3)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	require.NotNil(t, cmd)
	assert.Contains(t, s.View(100, 30), "Thinking")

	_, cmd2 := s.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	assert.Nil(t, cmd2, "no second request while loading")

	s.Update(cmd())
	assert.Equal(t, 1, calls)
	assert.Contains(t, s.View(100, 30), "Re-read the section")
	assert.Len(t, s.KeyHints(), 2)
}

func TestSummaryScreen_InsightError(t *testing.T) {
	s := New(testResult(), "", func(context.Context) (string, error) {
		return "", errors.New("provider down")
	})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Contains(t, s.View(100, 30), "provider down")
}

func TestSummaryScreen_NoInsightWhenPerfect(t *testing.T) {
	res := testResult()
	res.Correct = 4
	s := New(res, "", func(context.Context) (string, error) { return "x", nil })
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'i', Text: "i"})
	assert.Nil(t, cmd)
	assert.Len(t, s.KeyHints(), 2)
}
