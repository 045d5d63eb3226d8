package play

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screens/summary"
)

// fakeService grades against a fixed answer key.
type fakeService struct {
	key       map[string]string
	submitted []quiz.Answer
	checkErr  error
}

func (f *fakeService) Check(_ context.Context, _, _, questionID, answer string) (*quiz.QuestionResult, error) {
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	want := f.key[questionID]
	return &quiz.QuestionResult{
		QuestionID:    questionID,
		UserAnswer:    answer,
		CorrectAnswer: want,
		IsCorrect:     quiz.IsCorrect(answer, want),
		Explanation:   "Because the text says so.",
	}, nil
}

func (f *fakeService) Submit(_ context.Context, _, attemptID string, answers []quiz.Answer) (*quiz.Result, error) {
	f.submitted = answers
	res := &quiz.Result{AttemptID: attemptID, Total: len(f.key), NextDifficulty: "hard", Streak: 1, NextMilestone: 3}
	for _, a := range answers {
		if quiz.IsCorrect(a.Answer, f.key[a.QuestionID]) {
			res.Correct++
		}
	}
	return res, nil
}

func (f *fakeService) Insight(context.Context, string, string) (string, error) {
	return "", nil
}

func testQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		AttemptID:  "a1",
		Difficulty: "medium",
		Questions: []quiz.Question{
			{ID: "q1", Type: "mcq", Text: "Which organelle stores DNA?", Options: []string{"Ribosome", "Nucleus", "Vacuole", "Membrane"}, Difficulty: "medium"},
			{ID: "q2", Type: "true_false", Text: "Plants perform photosynthesis.", Difficulty: "easy"},
			{ID: "q3", Type: "fill_blank", Text: "The ____ releases energy.", Difficulty: "hard"},
		},
	}
}

func testKey() map[string]string {
	return map[string]string{"q1": "Nucleus", "q2": "True", "q3": "mitochondria"}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// started returns a screen with testQuiz loaded and a controllable clock.
func started(t *testing.T, svc *fakeService) (*QuizScreen, *time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := New(svc, "u1", "Cells", func(context.Context) (*quiz.Quiz, error) { return testQuiz(), nil })
	s.now = func() time.Time { return now }
	s.Update(quizReadyMsg{Quiz: testQuiz()})
	require.Equal(t, phaseQuestion, s.phase)
	return s, &now
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *QuizScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	s.Update(msg)
	return msg
}

func TestQuizScreen_Loading(t *testing.T) {
	s := New(&fakeService{}, "u1", "", func(context.Context) (*quiz.Quiz, error) { return testQuiz(), nil })
	assert.Equal(t, "Quiz", s.Title())
	assert.Contains(t, s.View(100, 30), "Generating your quiz")
	assert.False(t, s.HandlesBack(), "Esc leaves while loading")
	assert.NotNil(t, s.Init())
}

func TestQuizScreen_StartErrors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{quiz.ErrNoQuestions, "Could not build any questions"},
		{quiz.ErrEmptyMistakeBank, "No mistakes to review"},
		{quiz.ErrLLMUnavailable, "LLM provider"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		s := New(&fakeService{}, "u1", "", nil)
		s.Update(quizReadyMsg{Err: tt.err})
		assert.Contains(t, s.View(100, 30), tt.want)

		_, cmd := s.Update(keyPress('x'))
		require.NotNil(t, cmd)
		assert.Equal(t, router.PopScreenMsg{}, cmd())
	}
}

func TestQuizScreen_EmptyQuizIsAnError(t *testing.T) {
	s := New(&fakeService{}, "u1", "", nil)
	s.Update(quizReadyMsg{Quiz: &quiz.Quiz{AttemptID: "a1"}})
	assert.Contains(t, s.View(100, 30), "Could not build any questions")
}

func TestQuizScreen_MultipleChoiceFeedback(t *testing.T) {
	svc := &fakeService{key: testKey()}
	s, now := started(t, svc)

	view := s.View(100, 30)
	assert.Contains(t, view, "Which organelle stores DNA?")
	assert.Contains(t, view, "B)  Nucleus")
	assert.Contains(t, view, "Multiple choice")
	assert.True(t, s.mcActive)

	*now = now.Add(7 * time.Second)
	_, cmd := s.Update(keyPress('2'))
	assert.Equal(t, phaseChecking, s.phase)
	run(t, s, cmd)

	assert.Equal(t, phaseFeedback, s.phase)
	assert.Equal(t, 1, s.correct)
	view = s.View(100, 30)
	assert.Contains(t, view, "Correct!")
	assert.Contains(t, view, "Because the text says so.")
	require.Len(t, s.answers, 1)
	assert.Equal(t, quiz.Answer{QuestionID: "q1", Answer: "Nucleus", TimeSpentSeconds: 7}, s.answers[0])
}

func TestQuizScreen_TrueFalseDefaultsOptions(t *testing.T) {
	s, _ := started(t, &fakeService{key: testKey()})
	s.Update(keyPress('1'))
	s.phase = phaseFeedback
	s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, 1, s.index)
	assert.True(t, s.mcActive)
	assert.Equal(t, []string{"True", "False"}, s.mc.Options)
	assert.Contains(t, s.View(100, 30), "True or false")
}

func TestQuizScreen_WrongAnswerShowsCorrection(t *testing.T) {
	s, _ := started(t, &fakeService{key: testKey()})
	_, cmd := s.Update(keyPress('a'))
	run(t, s, cmd)

	view := s.View(100, 30)
	assert.Contains(t, view, "Not quite")
	assert.Contains(t, view, "Correct answer: Nucleus")
	assert.Zero(t, s.correct)
}

func TestQuizScreen_FullRunSubmitsAndShowsSummary(t *testing.T) {
	svc := &fakeService{key: testKey()}
	s, _ := started(t, svc)

	// q1: mcq
	_, cmd := s.Update(keyPress('b'))
	run(t, s, cmd)
	s.Update(specialKey(tea.KeyEnter))

	// q2: true/false
	_, cmd = s.Update(keyPress('1'))
	run(t, s, cmd)
	s.Update(specialKey(tea.KeyEnter))

	// q3: fill in the blank
	require.False(t, s.mcActive)
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "blank answers are ignored")
	s.input.Model.SetValue("Mitochondria")
	_, cmd = s.Update(specialKey(tea.KeyEnter))
	run(t, s, cmd)
	assert.Equal(t, 3, s.correct)
	assert.Contains(t, s.View(100, 30), "see your results")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, phaseSubmitting, s.phase)
	msg := cmd()
	require.IsType(t, submittedMsg{}, msg)
	require.Len(t, svc.submitted, 3)

	_, cmd = s.Update(msg)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &summary.SummaryScreen{}, replace.Screen)
}

func TestQuizScreen_QuitConfirm(t *testing.T) {
	svc := &fakeService{key: testKey()}
	s, _ := started(t, svc)
	assert.True(t, s.HandlesBack())

	s.Update(specialKey(tea.KeyEscape))
	assert.True(t, s.quitConfirm)
	assert.Contains(t, s.View(100, 30), "Leave this quiz?")
	assert.Len(t, s.KeyHints(), 3)

	s.Update(keyPress('n'))
	assert.False(t, s.quitConfirm)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('d'))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	assert.Nil(t, svc.submitted)
}

func TestQuizScreen_QuitAndSubmit(t *testing.T) {
	svc := &fakeService{key: testKey()}
	s, _ := started(t, svc)

	_, cmd := s.Update(keyPress('b'))
	run(t, s, cmd)

	s.Update(specialKey(tea.KeyEscape))
	_, cmd = s.Update(keyPress('s'))
	require.NotNil(t, cmd)
	cmd()
	require.Len(t, svc.submitted, 1)
	assert.Equal(t, "q1", svc.submitted[0].QuestionID)
}

func TestQuizScreen_CheckError(t *testing.T) {
	s, _ := started(t, &fakeService{key: testKey(), checkErr: errors.New("db locked")})
	_, cmd := s.Update(keyPress('b'))
	run(t, s, cmd)

	assert.Equal(t, phaseFeedback, s.phase)
	assert.Contains(t, s.View(100, 30), "Could not check this answer: db locked")
}

func TestQuizScreen_TimerTick(t *testing.T) {
	s, now := started(t, &fakeService{key: testKey()})
	*now = now.Add(65 * time.Second)
	_, cmd := s.Update(timerTickMsg(*now))
	assert.NotNil(t, cmd)
	assert.Equal(t, 65*time.Second, s.elapsed)
	assert.Contains(t, s.View(100, 30), "1:05")

	s.errMsg = "gone"
	_, cmd = s.Update(timerTickMsg(*now))
	assert.Nil(t, cmd, "ticking stops on error")
}
