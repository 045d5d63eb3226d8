package quiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/study"
)

// History returns the user's attempts, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]AttemptSummary, error) {
	attempts, err := s.repos.Attempts.History(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}
	out := make([]AttemptSummary, len(attempts))
	for i, a := range attempts {
		out[i] = summarize(a)
	}
	return out, nil
}

// Attempt returns one of the user's attempts. Answers are included only
// once it has been submitted.
func (s *Service) Attempt(ctx context.Context, userID, attemptID string) (*AttemptDetail, error) {
	a, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	questions, err := s.repos.Attempts.Questions(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	detail := &AttemptDetail{AttemptSummary: summarize(*a)}
	if !a.Completed() {
		for _, q := range questions {
			detail.Questions = append(detail.Questions, publicQuestion(q))
		}
		return detail, nil
	}

	responses, err := s.repos.Attempts.Responses(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	byQuestion := make(map[string]store.Response, len(responses))
	for _, r := range responses {
		byQuestion[r.QuestionID] = r
	}
	for _, q := range questions {
		r := byQuestion[q.ID]
		detail.Results = append(detail.Results, resultFor(q, r.UserAnswer, r.IsCorrect))
	}
	return detail, nil
}

// Recommend returns the next difficulty for the user.
func (s *Service) Recommend(ctx context.Context, userID string) (*Recommendation, error) {
	rec, err := s.analyze(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.repos.Attempts.RecentCompleted(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("count attempts: %w", err)
	}
	return &Recommendation{
		Difficulty:    string(rec.Difficulty),
		RecentAverage: adaptive.Round1(rec.Average),
		TotalQuizzes:  len(all),
		Trend:         string(rec.Trend),
	}, nil
}

// Progress returns the recommendation together with the live streak and the
// size of the mistake bank.
func (s *Service) Progress(ctx context.Context, userID string) (*Progress, error) {
	rec, err := s.Recommend(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	bank, err := s.repos.Mistakes.List(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("count mistakes: %w", err)
	}
	streak := CurrentStreak(user.Streak, user.LastQuizDate, s.now())
	return &Progress{
		Recommendation: *rec,
		Streak:         streak,
		NextMilestone:  NextMilestone(streak),
		Mistakes:       len(bank),
		FunFact:        s.study.FunFact(ctx),
	}, nil
}

// RemoveMistake drops one question from the user's mistake bank. Removing
// a question that is not banked is not an error.
func (s *Service) RemoveMistake(ctx context.Context, userID, questionID string) error {
	if strings.TrimSpace(questionID) == "" {
		return fmt.Errorf("%w: question id is required", ErrInvalidRequest)
	}
	return s.repos.Mistakes.Remove(ctx, userID, questionID)
}

// Mistakes lists the user's mistake bank, newest first.
func (s *Service) Mistakes(ctx context.Context, userID string, limit int) ([]Mistake, error) {
	entries, err := s.repos.Mistakes.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Mistake, 0, len(entries))
	for _, m := range entries {
		out = append(out, Mistake{
			QuestionID:    m.QuestionID,
			Text:          m.Question.Text,
			Type:          m.Question.Type,
			UserAnswer:    m.UserAnswer,
			CorrectAnswer: m.Question.CorrectAnswer,
			Explanation:   m.Question.Explanation,
			Topic:         m.Topic,
			AddedAt:       m.AddedAt,
		})
	}
	return out, nil
}

// ReviewMistakes starts a review attempt over up to limit banked questions.
// Questions answered correctly in a review leave the bank.
func (s *Service) ReviewMistakes(ctx context.Context, userID string, limit int) (*Quiz, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultQuestions
	}
	if limit > s.cfg.MaxQuestions {
		limit = s.cfg.MaxQuestions
	}
	entries, err := s.repos.Mistakes.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	var questions []store.Question
	for _, m := range entries {
		if m.Question.ID == "" {
			continue
		}
		questions = append(questions, m.Question)
	}
	if len(questions) == 0 {
		return nil, ErrEmptyMistakeBank
	}

	attempt := &store.Attempt{
		UserID:     userID,
		Kind:       store.AttemptReview,
		Difficulty: DifficultyMixed,
		StartedAt:  s.now(),
	}
	if err := s.repos.Attempts.Create(ctx, attempt, questions); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}
	return newQuiz(attempt, questions), nil
}

// Insight returns feedback on the questions missed in a submitted attempt.
func (s *Service) Insight(ctx context.Context, userID, attemptID string) (string, error) {
	a, err := s.ownedAttempt(ctx, userID, attemptID)
	if err != nil {
		return "", err
	}
	if !a.Completed() {
		return "", fmt.Errorf("%w: attempt has not been submitted", ErrInvalidRequest)
	}
	questions, err := s.repos.Attempts.Questions(ctx, attemptID)
	if err != nil {
		return "", err
	}
	responses, err := s.repos.Attempts.Responses(ctx, attemptID)
	if err != nil {
		return "", err
	}
	wrong := map[string]bool{}
	for _, r := range responses {
		if !r.IsCorrect {
			wrong[r.QuestionID] = true
		}
	}

	topic := study.DefaultTopic
	var missed []string
	for _, q := range questions {
		if q.Topic != "" && topic == study.DefaultTopic {
			topic = q.Topic
		}
		if wrong[q.ID] {
			missed = append(missed, q.Text)
		}
	}
	return s.study.Insight(ctx, topic, missed), nil
}
