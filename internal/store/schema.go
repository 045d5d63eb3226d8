package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tableUsers        = "users"
	tableContents     = "contents"
	tableChunks       = "content_chunks"
	tableQuestions    = "questions"
	tableAttempts     = "quiz_attempts"
	tableAttemptItems = "attempt_questions"
	tableResponses    = "quiz_responses"
	tableFeedback     = "feedback"
	tableMistakes     = "mistakes"
	tableMastery      = "topic_mastery"
	tableLLMRequests  = "llm_requests"
)

func col(name string, t field.Type) *schema.Column {
	return &schema.Column{Name: name, Type: t}
}

func nullable(c *schema.Column) *schema.Column {
	c.Nullable = true
	return c
}

func unique(c *schema.Column) *schema.Column {
	c.Unique = true
	return c
}

func withDefault(c *schema.Column, v any) *schema.Column {
	c.Default = v
	return c
}

func fk(symbol string, c *schema.Column, ref *schema.Table, action schema.ReferenceOption) *schema.ForeignKey {
	return &schema.ForeignKey{
		Symbol:     symbol,
		Columns:    []*schema.Column{c},
		RefTable:   ref,
		RefColumns: []*schema.Column{ref.PrimaryKey[0]},
		OnDelete:   action,
	}
}

var (
	usersColumns = []*schema.Column{
		col("id", field.TypeString),
		unique(col("email", field.TypeString)),
		col("name", field.TypeString),
		col("password_hash", field.TypeString),
		withDefault(col("preferred_difficulty", field.TypeString), "medium"),
		withDefault(col("subjects", field.TypeString), "[]"),
		withDefault(col("is_admin", field.TypeBool), false),
		withDefault(col("streak", field.TypeInt), 0),
		nullable(col("last_quiz_date", field.TypeString)),
		col("created_at", field.TypeTime),
	}
	usersTable = &schema.Table{
		Name:       tableUsers,
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	contentsColumns = []*schema.Column{
		col("id", field.TypeString),
		col("user_id", field.TypeString),
		col("title", field.TypeString),
		col("source_type", field.TypeString),
		withDefault(col("source_ref", field.TypeString), ""),
		col("raw_text", field.TypeString),
		col("created_at", field.TypeTime),
	}
	contentsTable = &schema.Table{
		Name:       tableContents,
		Columns:    contentsColumns,
		PrimaryKey: []*schema.Column{contentsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "content_user_id", Columns: []*schema.Column{contentsColumns[1]}},
		},
	}

	chunksColumns = []*schema.Column{
		col("id", field.TypeString),
		col("content_id", field.TypeString),
		col("chunk_index", field.TypeInt),
		col("chunk_text", field.TypeString),
	}
	chunksTable = &schema.Table{
		Name:       tableChunks,
		Columns:    chunksColumns,
		PrimaryKey: []*schema.Column{chunksColumns[0]},
		Indexes: []*schema.Index{
			{Name: "chunk_content_index", Unique: true, Columns: []*schema.Column{chunksColumns[1], chunksColumns[2]}},
		},
	}

	questionsColumns = []*schema.Column{
		col("id", field.TypeString),
		nullable(col("content_id", field.TypeString)),
		col("question_text", field.TypeString),
		col("question_type", field.TypeString),
		withDefault(col("options", field.TypeString), "[]"),
		col("correct_answer", field.TypeString),
		col("difficulty", field.TypeString),
		withDefault(col("explanation", field.TypeString), ""),
		withDefault(col("topic", field.TypeString), ""),
		withDefault(col("source", field.TypeString), "rule"),
		withDefault(col("is_flagged", field.TypeBool), false),
		col("created_at", field.TypeTime),
	}
	questionsTable = &schema.Table{
		Name:       tableQuestions,
		Columns:    questionsColumns,
		PrimaryKey: []*schema.Column{questionsColumns[0]},
	}

	attemptsColumns = []*schema.Column{
		col("id", field.TypeString),
		col("user_id", field.TypeString),
		nullable(col("content_id", field.TypeString)),
		withDefault(col("kind", field.TypeString), "quiz"),
		col("difficulty", field.TypeString),
		col("total_questions", field.TypeInt),
		withDefault(col("correct_count", field.TypeInt), 0),
		withDefault(col("score_percent", field.TypeFloat64), 0),
		withDefault(col("time_taken_seconds", field.TypeFloat64), 0),
		col("started_at", field.TypeTime),
		nullable(col("completed_at", field.TypeTime)),
	}
	attemptsTable = &schema.Table{
		Name:       tableAttempts,
		Columns:    attemptsColumns,
		PrimaryKey: []*schema.Column{attemptsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attempt_user_started", Columns: []*schema.Column{attemptsColumns[1], attemptsColumns[9]}},
		},
	}

	attemptItemsColumns = []*schema.Column{
		col("attempt_id", field.TypeString),
		col("question_id", field.TypeString),
		col("position", field.TypeInt),
	}
	attemptItemsTable = &schema.Table{
		Name:       tableAttemptItems,
		Columns:    attemptItemsColumns,
		PrimaryKey: []*schema.Column{attemptItemsColumns[0], attemptItemsColumns[1]},
	}

	responsesColumns = []*schema.Column{
		col("id", field.TypeString),
		col("attempt_id", field.TypeString),
		col("question_id", field.TypeString),
		col("user_answer", field.TypeString),
		col("is_correct", field.TypeBool),
		withDefault(col("time_spent_seconds", field.TypeFloat64), 0),
	}
	responsesTable = &schema.Table{
		Name:       tableResponses,
		Columns:    responsesColumns,
		PrimaryKey: []*schema.Column{responsesColumns[0]},
	}

	feedbackColumns = []*schema.Column{
		col("id", field.TypeString),
		col("user_id", field.TypeString),
		col("question_id", field.TypeString),
		col("rating", field.TypeInt),
		withDefault(col("comment", field.TypeString), ""),
		col("created_at", field.TypeTime),
	}
	feedbackTable = &schema.Table{
		Name:       tableFeedback,
		Columns:    feedbackColumns,
		PrimaryKey: []*schema.Column{feedbackColumns[0]},
	}

	mistakesColumns = []*schema.Column{
		col("id", field.TypeString),
		col("user_id", field.TypeString),
		col("question_id", field.TypeString),
		withDefault(col("user_answer", field.TypeString), ""),
		withDefault(col("topic", field.TypeString), ""),
		col("added_at", field.TypeTime),
	}
	mistakesTable = &schema.Table{
		Name:       tableMistakes,
		Columns:    mistakesColumns,
		PrimaryKey: []*schema.Column{mistakesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "mistake_user_question", Unique: true, Columns: []*schema.Column{mistakesColumns[1], mistakesColumns[2]}},
		},
	}

	masteryColumns = []*schema.Column{
		col("id", field.TypeString),
		col("user_id", field.TypeString),
		col("topic", field.TypeString),
		withDefault(col("correct_count", field.TypeInt), 0),
		withDefault(col("total_count", field.TypeInt), 0),
		col("updated_at", field.TypeTime),
	}
	masteryTable = &schema.Table{
		Name:       tableMastery,
		Columns:    masteryColumns,
		PrimaryKey: []*schema.Column{masteryColumns[0]},
		Indexes: []*schema.Index{
			{Name: "mastery_user_topic", Unique: true, Columns: []*schema.Column{masteryColumns[1], masteryColumns[2]}},
		},
	}

	llmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		col("timestamp", field.TypeTime),
		col("provider", field.TypeString),
		col("model", field.TypeString),
		col("purpose", field.TypeString),
		col("input_tokens", field.TypeInt),
		col("output_tokens", field.TypeInt),
		col("latency_ms", field.TypeInt64),
		col("success", field.TypeBool),
		withDefault(col("error_message", field.TypeString), ""),
		withDefault(col("request_body", field.TypeString), ""),
		withDefault(col("response_body", field.TypeString), ""),
	}
	llmRequestsTable = &schema.Table{
		Name:       tableLLMRequests,
		Columns:    llmRequestsColumns,
		PrimaryKey: []*schema.Column{llmRequestsColumns[0]},
	}

	// Tables lists every table in creation order.
	Tables = []*schema.Table{
		usersTable,
		contentsTable,
		chunksTable,
		questionsTable,
		attemptsTable,
		attemptItemsTable,
		responsesTable,
		feedbackTable,
		mistakesTable,
		masteryTable,
		llmRequestsTable,
	}
)

func init() {
	contentsTable.ForeignKeys = []*schema.ForeignKey{
		fk("contents_users_contents", contentsColumns[1], usersTable, schema.Cascade),
	}
	chunksTable.ForeignKeys = []*schema.ForeignKey{
		fk("content_chunks_contents_chunks", chunksColumns[1], contentsTable, schema.Cascade),
	}
	questionsTable.ForeignKeys = []*schema.ForeignKey{
		fk("questions_contents_questions", questionsColumns[1], contentsTable, schema.Cascade),
	}
	attemptsTable.ForeignKeys = []*schema.ForeignKey{
		fk("quiz_attempts_users_attempts", attemptsColumns[1], usersTable, schema.Cascade),
		fk("quiz_attempts_contents_attempts", attemptsColumns[2], contentsTable, schema.SetNull),
	}
	attemptItemsTable.ForeignKeys = []*schema.ForeignKey{
		fk("attempt_questions_attempt", attemptItemsColumns[0], attemptsTable, schema.Cascade),
		fk("attempt_questions_question", attemptItemsColumns[1], questionsTable, schema.Cascade),
	}
	responsesTable.ForeignKeys = []*schema.ForeignKey{
		fk("quiz_responses_attempt", responsesColumns[1], attemptsTable, schema.Cascade),
		fk("quiz_responses_question", responsesColumns[2], questionsTable, schema.Cascade),
	}
	feedbackTable.ForeignKeys = []*schema.ForeignKey{
		fk("feedback_users_feedback", feedbackColumns[1], usersTable, schema.Cascade),
		fk("feedback_questions_feedback", feedbackColumns[2], questionsTable, schema.Cascade),
	}
	mistakesTable.ForeignKeys = []*schema.ForeignKey{
		fk("mistakes_users_mistakes", mistakesColumns[1], usersTable, schema.Cascade),
		fk("mistakes_questions_mistakes", mistakesColumns[2], questionsTable, schema.Cascade),
	}
	masteryTable.ForeignKeys = []*schema.ForeignKey{
		fk("topic_mastery_users_mastery", masteryColumns[1], usersTable, schema.Cascade),
	}
}

// migrate creates missing tables, columns and indexes.
func (s *Store) migrate(ctx context.Context) error {
	drv := entsql.OpenDB(s.dialect, s.db)
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
