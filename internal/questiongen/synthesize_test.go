package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/adaptiq/internal/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cellSentence = "The mitochondria is the powerhouse of the cell."

func TestMCQ(t *testing.T) {
	s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(42))
	pool := []string{"mitochondria", "powerhouse", "cell", "heart", "blood"}

	q, ok := s.MCQ(cellSentence, pool)
	require.True(t, ok)

	assert.Equal(t, TypeMCQ, q.Type)
	assert.Equal(t, "mitochondria", q.CorrectAnswer)
	assert.Equal(t, "Fill in the blank: The ______ is the powerhouse of the cell.", q.Text)
	assert.Equal(t, Easy, q.Difficulty)
	assert.Equal(t, "The correct answer is 'mitochondria' as stated in the source material.", q.Explanation)
	assert.ElementsMatch(t, []string{"mitochondria", "powerhouse", "cell", "heart"}, q.Options)
}

func TestMCQ_PadsOptionsFromGenericPool(t *testing.T) {
	s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(1))

	q, ok := s.MCQ(cellSentence, []string{"mitochondria"})
	require.True(t, ok)
	require.Len(t, q.Options, 4)

	count := 0
	for _, o := range q.Options {
		if o == q.CorrectAnswer {
			count++
		} else {
			assert.Contains(t, genericDistractors, o)
		}
	}
	assert.Equal(t, 1, count)
}

func TestMCQ_DeclinesWithoutKeyword(t *testing.T) {
	s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(1))
	_, ok := s.MCQ("It is it.", []string{"cell"})
	assert.False(t, ok)
}

func TestMCQ_DeclinesWhenAnswerNotVerbatim(t *testing.T) {
	a := newLexicon()
	sentence := "The Cell is tiny but very important."
	a.override[sentence] = []nlp.Token{{Text: "cell", Tag: "NN"}}
	s := NewSynthesizer(a, DefaultConfig(), NewRand(1))

	_, ok := s.MCQ(sentence, []string{"cell", "heart"})
	assert.False(t, ok)
	_, ok = s.FillBlank(sentence)
	assert.False(t, ok)
}

func TestFillBlank(t *testing.T) {
	s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(1))

	q, ok := s.FillBlank(cellSentence)
	require.True(t, ok)
	assert.Equal(t, TypeFillBlank, q.Type)
	assert.Equal(t, "Complete the sentence: The ______ is the powerhouse of the cell.", q.Text)
	assert.Equal(t, "mitochondria", q.CorrectAnswer)
	assert.Equal(t, "The missing word is 'mitochondria'.", q.Explanation)
	assert.NotNil(t, q.Options)
	assert.Empty(t, q.Options)
}

func TestFillBlank_OnlyFirstOccurrence(t *testing.T) {
	s := NewSynthesizer(newLexicon("water"), DefaultConfig(), NewRand(1))

	q, ok := s.FillBlank("water boils and water freezes eventually")
	require.True(t, ok)
	assert.Equal(t, "Complete the sentence: ______ boils and water freezes eventually", q.Text)
}

func TestShortAnswer(t *testing.T) {
	s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(1))

	q, ok := s.ShortAnswer(cellSentence)
	require.True(t, ok)
	assert.Equal(t, TypeShortAnswer, q.Type)
	assert.Equal(t, "Based on the following statement, what is the key concept?\n\""+cellSentence+"\"", q.Text)
	assert.Equal(t, "mitochondria", q.CorrectAnswer)
	assert.Equal(t, "The key concept mentioned is 'mitochondria'.", q.Explanation)
	assert.Empty(t, q.Options)

	_, ok = s.ShortAnswer("It is it.")
	assert.False(t, ok)
}

func TestTrueFalse_BothOutcomes(t *testing.T) {
	pool := []string{"mitochondria", "powerhouse", "cell", "heart"}
	var sawTrue, sawFalse bool

	for seed := range uint64(64) {
		s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(seed))
		q, ok := s.TrueFalse(cellSentence, pool)
		require.True(t, ok)
		assert.Equal(t, []string{"True", "False"}, q.Options)

		switch q.CorrectAnswer {
		case "True":
			sawTrue = true
			assert.Equal(t, "True or False: "+cellSentence, q.Text)
			assert.Equal(t, "The statement is true as per the source material.", q.Explanation)
		case "False":
			sawFalse = true
			assert.NotEqual(t, "True or False: "+cellSentence, q.Text)
			assert.NotContains(t, q.Text, "mitochondria")
			assert.True(t, strings.HasPrefix(q.Explanation, "The statement is false. The original text says 'mitochondria' not '"), q.Explanation)
		default:
			t.Fatalf("unexpected answer %q", q.CorrectAnswer)
		}
	}
	assert.True(t, sawTrue, "expected at least one true statement")
	assert.True(t, sawFalse, "expected at least one falsified statement")
}

func TestTrueFalse_SingleKeywordPoolStaysTrue(t *testing.T) {
	for seed := range uint64(32) {
		s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(seed))
		q, ok := s.TrueFalse(cellSentence, []string{"mitochondria"})
		require.True(t, ok)
		assert.Equal(t, "True", q.CorrectAnswer)
	}
}

func TestTrueFalse_NoAlternativeStaysTrue(t *testing.T) {
	for seed := range uint64(32) {
		s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(seed))
		q, ok := s.TrueFalse(cellSentence, []string{"mitochondria", "MITOCHONDRIA"})
		require.True(t, ok)
		assert.Equal(t, "True", q.CorrectAnswer)
	}
}

func TestSynthesize_UnknownType(t *testing.T) {
	s := NewSynthesizer(bioLexicon(), DefaultConfig(), NewRand(1))
	_, ok := s.Synthesize(Type("essay"), cellSentence, nil)
	assert.False(t, ok)
}
