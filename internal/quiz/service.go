// Package quiz runs the learner-facing quiz workflow: generating attempts
// from stored content, grading submissions and feeding results back into
// the mistake bank, topic mastery, streaks and the difficulty recommender.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/llmgen"
	"github.com/abhisek/adaptiq/internal/questiongen"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/study"
)

var (
	// ErrForbidden is returned when a user touches another user's data.
	ErrForbidden = errors.New("forbidden")

	// ErrNoText is returned when the content has no usable text.
	ErrNoText = errors.New("content has no text")

	// ErrNoQuestions is returned when generation produced nothing.
	ErrNoQuestions = questiongen.ErrNoQuestions

	// ErrInvalidRequest is returned for malformed requests or answers.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrAlreadySubmitted is returned when an attempt is submitted twice.
	ErrAlreadySubmitted = errors.New("attempt already submitted")

	// ErrLLMUnavailable is returned for llm-sourced requests without a provider.
	ErrLLMUnavailable = errors.New("llm question source is not configured")

	// ErrEmptyMistakeBank is returned when there is nothing to review.
	ErrEmptyMistakeBank = errors.New("no mistakes to review")
)

// Repos groups the persistence the service needs.
type Repos struct {
	Users     store.UserRepo
	Contents  store.ContentRepo
	Questions store.QuestionRepo
	Attempts  store.AttemptRepo
	Mistakes  store.MistakeRepo
	Mastery   store.MasteryRepo
}

// ReposFrom returns the repositories backed by s.
func ReposFrom(s *store.Store) Repos {
	return Repos{
		Users:     s.Users(),
		Contents:  s.Contents(),
		Questions: s.Questions(),
		Attempts:  s.Attempts(),
		Mistakes:  s.Mistakes(),
		Mastery:   s.Mastery(),
	}
}

// Service implements quiz generation and grading. It is safe for
// concurrent use.
type Service struct {
	repos Repos
	rules *questiongen.Generator
	llm   llmgen.Generator
	study *study.Service
	cfg   Config
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLLMGenerator enables the "llm" question source.
func WithLLMGenerator(g llmgen.Generator) Option {
	return func(s *Service) { s.llm = g }
}

// WithStudy enables study material and insights.
func WithStudy(st *study.Service) Option {
	return func(s *Service) { s.study = st }
}

// WithConfig replaces the default limits.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a quiz service over repos and the rule-based generator.
func NewService(repos Repos, rules *questiongen.Generator, opts ...Option) *Service {
	s := &Service{
		repos: repos,
		rules: rules,
		cfg:   DefaultConfig(),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LLMEnabled reports whether the llm question source is available.
func (s *Service) LLMEnabled() bool {
	return s.llm != nil
}

// Generate builds a new attempt from the content's chunks.
func (s *Service) Generate(ctx context.Context, userID string, req Request) (*Quiz, error) {
	content, err := s.repos.Contents.Get(ctx, req.ContentID)
	if err != nil {
		return nil, err
	}

	n := req.NumQuestions
	if n <= 0 {
		n = s.cfg.DefaultQuestions
	}
	if n > s.cfg.MaxQuestions {
		n = s.cfg.MaxQuestions
	}

	types, err := parseTypes(req.Types)
	if err != nil {
		return nil, err
	}

	level, label, err := s.resolveDifficulty(ctx, userID, req.Difficulty)
	if err != nil {
		return nil, err
	}

	text, err := s.contentText(ctx, content)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = SourceRule
	}

	var generated []questiongen.Question
	switch source {
	case SourceRule:
		opts := questiongen.Options{Types: types, Difficulty: level, MaxQuestions: n}
		if req.Seed != nil {
			opts.Rand = questiongen.NewRand(*req.Seed)
		}
		generated, err = s.rules.GenerateContext(ctx, text, opts)
		if err != nil {
			return nil, err
		}
	case SourceLLM:
		if s.llm == nil {
			return nil, ErrLLMUnavailable
		}
		generated, err = s.llm.Generate(ctx, llmgen.Input{
			Text:       text,
			Count:      n,
			Difficulty: level,
			Types:      types,
		})
		if err != nil {
			return nil, fmt.Errorf("llm generation: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidRequest, source)
	}
	if len(generated) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]store.Question, len(generated))
	for i, q := range generated {
		questions[i] = toStoreQuestion(q, content.ID, content.Title, source)
	}

	attempt := &store.Attempt{
		UserID:     userID,
		ContentID:  content.ID,
		Kind:       store.AttemptQuiz,
		Difficulty: label,
		StartedAt:  s.now(),
	}
	if err := s.repos.Attempts.Create(ctx, attempt, questions); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	slog.Debug("quiz generated", "attempt", attempt.ID, "content", content.ID,
		"source", source, "difficulty", label, "questions", len(questions))

	return newQuiz(attempt, questions), nil
}

func newQuiz(a *store.Attempt, questions []store.Question) *Quiz {
	out := &Quiz{
		AttemptID:  a.ID,
		ContentID:  a.ContentID,
		Kind:       a.Kind,
		Difficulty: a.Difficulty,
		Questions:  make([]Question, len(questions)),
	}
	for i, q := range questions {
		out.Questions[i] = publicQuestion(q)
	}
	return out
}

// resolveDifficulty returns the filter level and the label stored on the
// attempt. Mixed yields an empty level.
func (s *Service) resolveDifficulty(ctx context.Context, userID, mode string) (questiongen.Difficulty, string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	switch mode {
	case "", DifficultyAuto:
		rec, err := s.analyze(ctx, userID)
		if err != nil {
			return "", "", err
		}
		return rec.Difficulty, string(rec.Difficulty), nil
	case DifficultyMixed:
		return "", DifficultyMixed, nil
	}
	d := questiongen.Difficulty(mode)
	if !d.Valid() {
		return "", "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, mode)
	}
	return d, mode, nil
}

func parseTypes(names []string) ([]questiongen.Type, error) {
	var out []questiongen.Type
	for _, name := range names {
		t, ok := questiongen.ParseType(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown question type %q", ErrInvalidRequest, name)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) contentText(ctx context.Context, c *store.Content) (string, error) {
	chunks, err := s.repos.Contents.Chunks(ctx, c.ID)
	if err != nil {
		return "", fmt.Errorf("load chunks: %w", err)
	}
	parts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		parts = append(parts, ch.Text)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		text = strings.TrimSpace(c.RawText)
	}
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

// analyze runs the recommender over the user's recent completed attempts.
func (s *Service) analyze(ctx context.Context, userID string) (adaptive.Recommendation, error) {
	user, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		return adaptive.Recommendation{}, err
	}
	recent, err := s.repos.Attempts.RecentCompleted(ctx, userID, s.cfg.RecentWindow)
	if err != nil {
		return adaptive.Recommendation{}, fmt.Errorf("recent attempts: %w", err)
	}
	return adaptive.Analyze(toAdaptive(recent), questiongen.Difficulty(user.PreferredDifficulty)), nil
}

func toAdaptive(attempts []store.Attempt) []adaptive.Attempt {
	out := make([]adaptive.Attempt, 0, len(attempts))
	for _, a := range attempts {
		// Mixed and review attempts keep their label; the recommender
		// treats any non-level as medium.
		out = append(out, adaptive.Attempt{
			ScorePercent: a.ScorePercent,
			Difficulty:   questiongen.Difficulty(a.Difficulty),
		})
	}
	return out
}

// Submit grades an attempt and updates the learner's progress.
func (s *Service) Submit(ctx context.Context, userID, attemptID string, answers []Answer) (*Result, error) {
	attempt, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed() {
		return nil, ErrAlreadySubmitted
	}

	questions, err := s.repos.Attempts.Questions(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string]Answer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}
	for id := range byQuestion {
		if !containsQuestion(questions, id) {
			return nil, fmt.Errorf("%w: question %s is not part of this attempt", ErrInvalidRequest, id)
		}
	}

	now := s.now()
	completion := store.Completion{CompletedAt: now}
	results := make([]QuestionResult, 0, len(questions))
	for _, q := range questions {
		ans := byQuestion[q.ID]
		correct := IsCorrect(ans.Answer, q.CorrectAnswer)
		if correct {
			completion.CorrectCount++
		}
		completion.TimeTakenSeconds += ans.TimeSpentSeconds
		completion.Responses = append(completion.Responses, store.Response{
			QuestionID:       q.ID,
			UserAnswer:       ans.Answer,
			IsCorrect:        correct,
			TimeSpentSeconds: ans.TimeSpentSeconds,
		})
		results = append(results, resultFor(q, ans.Answer, correct))
	}
	if completion.TimeTakenSeconds == 0 {
		completion.TimeTakenSeconds = now.Sub(attempt.StartedAt).Seconds()
	}
	if len(questions) > 0 {
		completion.ScorePercent = float64(completion.CorrectCount) / float64(len(questions)) * 100
	}

	if err := s.repos.Attempts.Complete(ctx, attemptID, completion); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	if err := s.recordProgress(ctx, userID, attempt, questions, results); err != nil {
		return nil, err
	}

	user, streak, next, err := s.updateLearner(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	slog.Debug("quiz submitted", "attempt", attemptID, "user", user.ID,
		"score", completion.ScorePercent, "next", next)

	return &Result{
		AttemptID:        attemptID,
		Total:            len(questions),
		Correct:          completion.CorrectCount,
		ScorePercent:     completion.ScorePercent,
		TimeTakenSeconds: completion.TimeTakenSeconds,
		Results:          results,
		NextDifficulty:   next,
		Streak:           streak,
		NextMilestone:    NextMilestone(streak),
	}, nil
}

// Check grades a single answer of an open attempt without recording it.
// Interactive players use it to give feedback before the final Submit.
func (s *Service) Check(ctx context.Context, userID, attemptID, questionID, answer string) (*QuestionResult, error) {
	attempt, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed() {
		return nil, ErrAlreadySubmitted
	}
	questions, err := s.repos.Attempts.Questions(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		if q.ID == questionID {
			r := resultFor(q, answer, IsCorrect(answer, q.CorrectAnswer))
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: question %s is not part of this attempt", ErrInvalidRequest, questionID)
}

// IsCorrect compares answers ignoring case and surrounding whitespace.
func IsCorrect(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}

func containsQuestion(qs []store.Question, id string) bool {
	for _, q := range qs {
		if q.ID == id {
			return true
		}
	}
	return false
}

func resultFor(q store.Question, answer string, correct bool) QuestionResult {
	return QuestionResult{
		QuestionID:    q.ID,
		Text:          q.Text,
		Type:          q.Type,
		UserAnswer:    answer,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     correct,
		Explanation:   q.Explanation,
	}
}

// recordProgress updates the mistake bank and topic mastery.
func (s *Service) recordProgress(ctx context.Context, userID string, a *store.Attempt, qs []store.Question, results []QuestionResult) error {
	type tally struct{ correct, total int }
	topics := map[string]*tally{}
	var order []string

	for i, q := range qs {
		r := results[i]
		topic := q.Topic
		if topic == "" {
			topic = study.DefaultTopic
		}
		t, ok := topics[topic]
		if !ok {
			t = &tally{}
			topics[topic] = t
			order = append(order, topic)
		}
		t.total++

		if r.IsCorrect {
			t.correct++
			if a.Kind == store.AttemptReview {
				if err := s.repos.Mistakes.Remove(ctx, userID, q.ID); err != nil {
					return fmt.Errorf("clear mistake: %w", err)
				}
			}
			continue
		}
		if err := s.repos.Mistakes.Add(ctx, &store.Mistake{
			UserID:     userID,
			QuestionID: q.ID,
			UserAnswer: r.UserAnswer,
			Topic:      topic,
		}); err != nil {
			return fmt.Errorf("record mistake: %w", err)
		}
	}

	for _, topic := range order {
		t := topics[topic]
		if err := s.repos.Mastery.Record(ctx, userID, topic, t.correct, t.total); err != nil {
			return fmt.Errorf("record mastery: %w", err)
		}
	}
	return nil
}

// updateLearner advances the streak and stores the next recommended level.
func (s *Service) updateLearner(ctx context.Context, userID string, now time.Time) (*store.User, int, string, error) {
	rec, err := s.analyze(ctx, userID)
	if err != nil {
		return nil, 0, "", err
	}
	user, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		return nil, 0, "", err
	}
	user.Streak = NextStreak(user.Streak, user.LastQuizDate, now)
	user.LastQuizDate = now.Format(dateLayout)
	user.PreferredDifficulty = string(rec.Difficulty)
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, 0, "", fmt.Errorf("update user: %w", err)
	}
	return user, user.Streak, user.PreferredDifficulty, nil
}

func (s *Service) ownedAttempt(ctx context.Context, userID, attemptID string) (*store.Attempt, error) {
	a, err := s.repos.Attempts.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}
