package store

import (
	"context"
	"time"
)

// User is a registered account.
type User struct {
	ID                  string
	Email               string
	Name                string
	PasswordHash        string
	PreferredDifficulty string
	Subjects            []string
	IsAdmin             bool
	Streak              int
	LastQuizDate        string // YYYY-MM-DD, empty if never quizzed
	CreatedAt           time.Time
}

// Content is an uploaded or imported piece of study material.
type Content struct {
	ID         string
	UserID     string
	Title      string
	SourceType string
	SourceRef  string
	RawText    string
	CreatedAt  time.Time
	ChunkCount int
}

// Chunk is a contiguous group of sentences from a Content.
type Chunk struct {
	ID        string
	ContentID string
	Index     int
	Text      string
}

// Question is a persisted quiz question.
type Question struct {
	ID            string
	ContentID     string
	Text          string
	Type          string
	Options       []string
	CorrectAnswer string
	Difficulty    string
	Explanation   string
	Topic         string
	Source        string
	IsFlagged     bool
	CreatedAt     time.Time
}

// Attempt kinds.
const (
	AttemptQuiz   = "quiz"
	AttemptReview = "review"
)

// Attempt is a single quiz sitting.
type Attempt struct {
	ID               string
	UserID           string
	ContentID        string
	Kind             string
	Difficulty       string
	TotalQuestions   int
	CorrectCount     int
	ScorePercent     float64
	TimeTakenSeconds float64
	StartedAt        time.Time
	CompletedAt      *time.Time
}

// Completed reports whether the attempt has been submitted.
func (a *Attempt) Completed() bool {
	return a.CompletedAt != nil
}

// Response is the user's answer to one question of an attempt.
type Response struct {
	ID               string
	AttemptID        string
	QuestionID       string
	UserAnswer       string
	IsCorrect        bool
	TimeSpentSeconds float64
}

// Completion carries the graded outcome of an attempt.
type Completion struct {
	CorrectCount     int
	ScorePercent     float64
	TimeTakenSeconds float64
	CompletedAt      time.Time
	Responses        []Response
}

// Feedback is a user's rating of a question.
type Feedback struct {
	ID         string
	UserID     string
	QuestionID string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Mistake is a wrongly answered question kept for later review.
type Mistake struct {
	ID         string
	UserID     string
	QuestionID string
	UserAnswer string
	Topic      string
	AddedAt    time.Time
	Question   Question
}

// TopicMastery tracks per-topic answer counts for a user.
type TopicMastery struct {
	UserID       string
	Topic        string
	CorrectCount int
	TotalCount   int
	UpdatedAt    time.Time
}

// Percent returns the share of correct answers, 0 when nothing was answered.
func (m TopicMastery) Percent() float64 {
	if m.TotalCount == 0 {
		return 0
	}
	return float64(m.CorrectCount) / float64(m.TotalCount) * 100
}

// Stats is the admin dashboard summary.
type Stats struct {
	Users     int
	Contents  int
	Questions int
	Attempts  int
	Flagged   int
	Feedback  int
}

// QuestionFilter narrows admin question listings.
type QuestionFilter struct {
	FlaggedOnly bool
	Limit       int
}

// UserRepo manages accounts.
type UserRepo interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	SetAdmin(ctx context.Context, id string, admin bool) error
}

// ContentRepo manages study material and its chunks.
type ContentRepo interface {
	Create(ctx context.Context, c *Content, chunks []string) error
	Get(ctx context.Context, id string) (*Content, error)
	ListByUser(ctx context.Context, userID string) ([]Content, error)
	Chunks(ctx context.Context, contentID string) ([]Chunk, error)
	Delete(ctx context.Context, id string) error
}

// QuestionRepo manages persisted questions.
type QuestionRepo interface {
	Get(ctx context.Context, id string) (*Question, error)
	GetMany(ctx context.Context, ids []string) (map[string]Question, error)
	List(ctx context.Context, f QuestionFilter) ([]Question, error)
	SetFlagged(ctx context.Context, id string, flagged bool) error
	Delete(ctx context.Context, id string) error
}

// AttemptRepo manages quiz attempts and their responses.
type AttemptRepo interface {
	// Create stores a new attempt along with its questions. Questions with
	// an empty ID are inserted; the rest are linked as they are.
	Create(ctx context.Context, a *Attempt, questions []Question) error
	Get(ctx context.Context, id string) (*Attempt, error)
	Questions(ctx context.Context, attemptID string) ([]Question, error)
	Responses(ctx context.Context, attemptID string) ([]Response, error)
	// Complete records responses and grading. It fails with ErrConflict if
	// the attempt was already completed.
	Complete(ctx context.Context, attemptID string, c Completion) error
	// RecentCompleted returns the newest completed attempts first.
	RecentCompleted(ctx context.Context, userID string, limit int) ([]Attempt, error)
	// History returns attempts newest first, completed or not.
	History(ctx context.Context, userID string, limit int) ([]Attempt, error)
}

// FeedbackRepo stores question ratings.
type FeedbackRepo interface {
	Create(ctx context.Context, f *Feedback) error
	ListByQuestion(ctx context.Context, questionID string) ([]Feedback, error)
	// List returns the newest feedback first.
	List(ctx context.Context, limit int) ([]Feedback, error)
}

// MistakeRepo manages the per-user mistake bank.
type MistakeRepo interface {
	// Add records a mistake. Re-adding the same question is a no-op.
	Add(ctx context.Context, m *Mistake) error
	List(ctx context.Context, userID string, limit int) ([]Mistake, error)
	Remove(ctx context.Context, userID, questionID string) error
}

// MasteryRepo tracks topic mastery counters.
type MasteryRepo interface {
	Record(ctx context.Context, userID, topic string, correct, total int) error
	List(ctx context.Context, userID string) ([]TopicMastery, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact match when set
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM call.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage per purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates token usage per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and inspects LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	// GetLLMEvent returns nil when no event has the given id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
