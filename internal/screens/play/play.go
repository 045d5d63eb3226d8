// Package play is the quiz screen: it serves one question at a time,
// grades each answer as it is given and submits the attempt at the end.
package play

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/questiongen"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/router"
	"github.com/abhisek/adaptiq/internal/screen"
	"github.com/abhisek/adaptiq/internal/screens/summary"
	"github.com/abhisek/adaptiq/internal/ui/components"
	"github.com/abhisek/adaptiq/internal/ui/layout"
)

// Service grades answers and attempts.
type Service interface {
	Check(ctx context.Context, userID, attemptID, questionID, answer string) (*quiz.QuestionResult, error)
	Submit(ctx context.Context, userID, attemptID string, answers []quiz.Answer) (*quiz.Result, error)
	Insight(ctx context.Context, userID, attemptID string) (string, error)
}

// StartFunc creates the attempt to play.
type StartFunc func(ctx context.Context) (*quiz.Quiz, error)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseChecking
	phaseFeedback
	phaseSubmitting
)

const answerCharLimit = 200

// QuizScreen implements screen.Screen for an attempt in progress.
type QuizScreen struct {
	svc    Service
	userID string
	start  StartFunc
	title  string
	now    func() time.Time

	quiz    *quiz.Quiz
	index   int
	answers []quiz.Answer
	correct int
	phase   phase

	mc       components.MultiChoice
	mcActive bool
	input    components.TextInput

	startedAt         time.Time
	questionStartedAt time.Time
	elapsed           time.Duration

	feedback    *quiz.QuestionResult
	feedbackErr string
	quitConfirm bool
	errMsg      string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.BackHandler     = (*QuizScreen)(nil)
)

// New creates a quiz screen. title labels the header and the summary.
func New(svc Service, userID, title string, start StartFunc) *QuizScreen {
	return &QuizScreen{
		svc:    svc,
		userID: userID,
		start:  start,
		title:  title,
		now:    time.Now,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	start := s.start
	return tea.Batch(
		func() tea.Msg {
			q, err := start(context.Background())
			return quizReadyMsg{Quiz: q, Err: err}
		},
		tickCmd(),
	)
}

func (s *QuizScreen) Title() string {
	if s.title == "" {
		return "Quiz"
	}
	return s.title
}

// HandlesBack keeps Esc from popping the screen mid-attempt.
func (s *QuizScreen) HandlesBack() bool {
	return s.errMsg == "" && s.phase != phaseLoading
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "S", Description: "Submit now"},
			{Key: "D", Description: "Discard"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	case s.phase == phaseQuestion && s.mcActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Pick"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit"},
		}
	case s.phase == phaseQuestion:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return nil
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleReady(msg)

	case checkedMsg:
		return s.handleChecked(msg)

	case submittedMsg:
		return s.handleSubmitted(msg)

	case timerTickMsg:
		if s.errMsg != "" {
			return s, nil
		}
		if s.quiz != nil && s.phase != phaseSubmitting {
			s.elapsed = s.now().Sub(s.startedAt)
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && !s.mcActive && !s.quitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = startError(msg.Err)
		return s, nil
	}
	if msg.Quiz == nil || len(msg.Quiz.Questions) == 0 {
		s.errMsg = startError(quiz.ErrNoQuestions)
		return s, nil
	}
	s.quiz = msg.Quiz
	s.answers = make([]quiz.Answer, 0, len(msg.Quiz.Questions))
	s.startedAt = s.now()
	return s, s.showQuestion(0)
}

func startError(err error) string {
	switch {
	case errors.Is(err, questiongen.ErrNoQuestions):
		return "Could not build any questions from this content. Try a longer text."
	case errors.Is(err, quiz.ErrEmptyMistakeBank):
		return "No mistakes to review. Nice work!"
	case errors.Is(err, quiz.ErrLLMUnavailable):
		return "AI questions need an LLM provider. Configure one or use rule-based questions."
	}
	return err.Error()
}

// showQuestion resets the answer widgets for question i.
func (s *QuizScreen) showQuestion(i int) tea.Cmd {
	s.index = i
	s.phase = phaseQuestion
	s.feedback = nil
	s.feedbackErr = ""
	s.questionStartedAt = s.now()

	q := s.quiz.Questions[i]
	if opts := choices(q); len(opts) > 0 {
		s.mcActive = true
		s.mc = components.NewMultiChoice(opts)
		return nil
	}
	s.mcActive = false
	s.input = components.NewTextInput("Type your answer...", answerCharLimit, 50)
	return s.input.Init()
}

// choices returns the options to pick from, or nil for free-text questions.
func choices(q quiz.Question) []string {
	switch questiongen.Type(q.Type) {
	case questiongen.TypeMCQ:
		return q.Options
	case questiongen.TypeTrueFalse:
		if len(q.Options) == 0 {
			return []string{"True", "False"}
		}
		return q.Options
	}
	return nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "s", "S":
			s.quitConfirm = false
			return s, s.submit()
		case "d", "D":
			s.quitConfirm = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseQuestion:
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		if s.mcActive {
			s.mc, _ = s.mc.Update(msg)
			if s.mc.Submitted {
				return s, s.answer(s.mc.Chosen())
			}
			return s, nil
		}
		if key == "enter" {
			if s.input.Blank() {
				return s, nil
			}
			return s, s.answer(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback:
		switch key {
		case "esc":
			s.quitConfirm = true
			return s, nil
		case "enter", "space", " ":
			return s, s.next()
		}
	}
	return s, nil
}

// answer records the reply to the current question and grades it.
func (s *QuizScreen) answer(reply string) tea.Cmd {
	q := s.quiz.Questions[s.index]
	s.answers = append(s.answers, quiz.Answer{
		QuestionID:       q.ID,
		Answer:           reply,
		TimeSpentSeconds: s.now().Sub(s.questionStartedAt).Seconds(),
	})
	s.phase = phaseChecking

	svc, userID, attemptID := s.svc, s.userID, s.quiz.AttemptID
	return func() tea.Msg {
		res, err := svc.Check(context.Background(), userID, attemptID, q.ID, reply)
		return checkedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleChecked(msg checkedMsg) (screen.Screen, tea.Cmd) {
	if s.phase != phaseChecking {
		return s, nil
	}
	s.phase = phaseFeedback
	if msg.Err != nil {
		s.feedbackErr = msg.Err.Error()
		return s, nil
	}
	s.feedback = msg.Result
	if msg.Result.IsCorrect {
		s.correct++
	}
	if s.mcActive {
		s.mc.Reveal(msg.Result.CorrectAnswer)
	} else {
		s.input.Submit(msg.Result.IsCorrect)
	}
	return s, nil
}

// next moves to the following question or submits after the last one.
func (s *QuizScreen) next() tea.Cmd {
	if s.index+1 < len(s.quiz.Questions) {
		return s.showQuestion(s.index + 1)
	}
	return s.submit()
}

func (s *QuizScreen) submit() tea.Cmd {
	s.phase = phaseSubmitting
	svc, userID, attemptID := s.svc, s.userID, s.quiz.AttemptID
	answers := append([]quiz.Answer(nil), s.answers...)
	return func() tea.Msg {
		res, err := svc.Submit(context.Background(), userID, attemptID, answers)
		return submittedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	svc, userID, attemptID := s.svc, s.userID, s.quiz.AttemptID
	insight := func(ctx context.Context) (string, error) {
		return svc.Insight(ctx, userID, attemptID)
	}
	next := summary.New(msg.Result, s.Title(), insight)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
