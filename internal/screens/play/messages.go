package play

import (
	"time"

	"github.com/abhisek/adaptiq/internal/quiz"
)

// quizReadyMsg carries the generated attempt.
type quizReadyMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// checkedMsg carries the grading of the current question.
type checkedMsg struct {
	Result *quiz.QuestionResult
	Err    error
}

// submittedMsg carries the graded attempt.
type submittedMsg struct {
	Result *quiz.Result
	Err    error
}

// timerTickMsg is sent every second to update the clock.
type timerTickMsg time.Time
