package quiz

import (
	"encoding/json"
	"time"

	"github.com/abhisek/adaptiq/internal/questiongen"
	"github.com/abhisek/adaptiq/internal/store"
)

// Difficulty modes accepted by Request beyond the three levels.
const (
	DifficultyAuto  = "auto"
	DifficultyMixed = "mixed"
)

// Question sources.
const (
	SourceRule = "rule"
	SourceLLM  = "llm"
)

// Request describes a quiz to generate.
type Request struct {
	ContentID    string   `json:"content_id" validate:"required"`
	NumQuestions int      `json:"num_questions" validate:"gte=0"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=auto mixed easy medium hard"`
	Types        []string `json:"question_types" validate:"dive,oneof=mcq fill_blank true_false short_answer"`
	Source       string   `json:"source" validate:"omitempty,oneof=rule llm"`

	// Seed makes rule-based generation reproducible when set.
	Seed *uint64 `json:"seed,omitempty"`
}

// UnmarshalJSON also accepts "types" for question_types.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	var wire struct {
		plain
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = Request(wire.plain)
	if r.Types == nil {
		r.Types = wire.Types
	}
	return nil
}

// Question is a question as served to the learner, without its answer.
type Question struct {
	ID         string   `json:"id"`
	Type       string   `json:"question_type"`
	Text       string   `json:"question_text"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
}

// Quiz is a generated, unsubmitted attempt.
type Quiz struct {
	AttemptID  string     `json:"attempt_id"`
	ContentID  string     `json:"content_id,omitempty"`
	Kind       string     `json:"kind"`
	Difficulty string     `json:"difficulty"`
	Questions  []Question `json:"questions"`
}

// Answer is the learner's reply to one question.
type Answer struct {
	QuestionID       string  `json:"question_id" validate:"required"`
	Answer           string  `json:"user_answer"`
	TimeSpentSeconds float64 `json:"time_spent_seconds" validate:"gte=0"`
}

// UnmarshalJSON also accepts "answer" for user_answer.
func (a *Answer) UnmarshalJSON(data []byte) error {
	type plain Answer
	var wire struct {
		plain
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*a = Answer(wire.plain)
	if a.Answer == "" && wire.Answer != nil {
		a.Answer = *wire.Answer
	}
	return nil
}

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	Text          string `json:"question_text"`
	Type          string `json:"question_type"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// Result is the graded outcome of a submitted attempt.
type Result struct {
	AttemptID        string           `json:"attempt_id"`
	Total            int              `json:"total_questions"`
	Correct          int              `json:"correct_count"`
	ScorePercent     float64          `json:"score_percent"`
	TimeTakenSeconds float64          `json:"time_taken_seconds"`
	Results          []QuestionResult `json:"results"`
	NextDifficulty   string           `json:"next_difficulty"`
	Streak           int              `json:"streak"`
	NextMilestone    int              `json:"next_streak_milestone"`
}

// Recommendation summarizes where a learner should go next.
type Recommendation struct {
	Difficulty    string  `json:"recommended_difficulty"`
	RecentAverage float64 `json:"recent_average"`
	TotalQuizzes  int     `json:"total_quizzes"`
	Trend         string  `json:"trend"`
}

// Progress is the learner dashboard shown by the terminal player.
type Progress struct {
	Recommendation
	Streak        int    `json:"streak"`
	NextMilestone int    `json:"next_streak_milestone"`
	Mistakes      int    `json:"mistakes"`
	FunFact       string `json:"fun_fact"`
}

// AttemptSummary is one row of a learner's history.
type AttemptSummary struct {
	ID               string     `json:"id"`
	ContentID        string     `json:"content_id,omitempty"`
	Kind             string     `json:"kind"`
	Difficulty       string     `json:"difficulty"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectCount     int        `json:"correct_count"`
	ScorePercent     float64    `json:"score_percent"`
	TimeTakenSeconds float64    `json:"time_taken_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// AttemptDetail is an attempt with its questions and, once submitted, the
// graded responses.
type AttemptDetail struct {
	AttemptSummary
	Questions []Question       `json:"questions,omitempty"`
	Results   []QuestionResult `json:"results,omitempty"`
}

// Mistake is one entry of the mistake bank.
type Mistake struct {
	QuestionID    string    `json:"question_id"`
	Text          string    `json:"question_text"`
	Type          string    `json:"question_type"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	Explanation   string    `json:"explanation"`
	Topic         string    `json:"topic"`
	AddedAt       time.Time `json:"added_at"`
}

func publicQuestion(q store.Question) Question {
	opts := q.Options
	if opts == nil {
		opts = []string{}
	}
	return Question{
		ID:         q.ID,
		Type:       q.Type,
		Text:       q.Text,
		Options:    opts,
		Difficulty: q.Difficulty,
	}
}

func summarize(a store.Attempt) AttemptSummary {
	return AttemptSummary{
		ID:               a.ID,
		ContentID:        a.ContentID,
		Kind:             a.Kind,
		Difficulty:       a.Difficulty,
		TotalQuestions:   a.TotalQuestions,
		CorrectCount:     a.CorrectCount,
		ScorePercent:     a.ScorePercent,
		TimeTakenSeconds: a.TimeTakenSeconds,
		StartedAt:        a.StartedAt,
		CompletedAt:      a.CompletedAt,
	}
}

func toStoreQuestion(q questiongen.Question, contentID, topic, source string) store.Question {
	return store.Question{
		ContentID:     contentID,
		Text:          q.Text,
		Type:          string(q.Type),
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Difficulty:    string(q.Difficulty),
		Explanation:   q.Explanation,
		Topic:         topic,
		Source:        source,
	}
}
