package questiongen

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/adaptiq/internal/nlp"
)

// ErrNoQuestions reports that the text did not support any question. It is
// an expected outcome for short or keyword-free content, not a fault.
var ErrNoQuestions = errors.New("could not generate questions from this content")

// Options selects what Generate produces.
type Options struct {
	// Types lists the question types to produce for each sentence, in order.
	// Empty means AllTypes.
	Types []Type

	// Difficulty keeps only questions of this level. Empty keeps all.
	// A value outside easy, medium and hard matches nothing.
	Difficulty Difficulty

	// MaxQuestions caps the output length.
	MaxQuestions int

	// Rand overrides the generator's shared random source for this call.
	Rand *rand.Rand
}

// DefaultOptions returns options for every type, no filter, and the
// configured default cap.
func (g *Generator) DefaultOptions() Options {
	return Options{MaxQuestions: g.cfg.DefaultMaxQuestions}
}

// Generator produces questions from plain text. It is safe for concurrent
// use; calls share only the seed source, each drawing a private random
// stream from it.
type Generator struct {
	analyzer nlp.Analyzer
	cfg      Config

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfig replaces the default heuristics.
func WithConfig(cfg Config) Option {
	return func(g *Generator) { g.cfg = cfg }
}

// WithSeed makes the shared random source deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = NewRand(seed) }
}

// New creates a Generator over an initialized analyzer.
func New(a nlp.Analyzer, opts ...Option) *Generator {
	g := &Generator{
		analyzer: a,
		cfg:      DefaultConfig(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		g.rng = NewRand(uint64(time.Now().UnixNano()))
	}
	return g
}

// NewRand returns a PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Config returns the generator heuristics.
func (g *Generator) Config() Config {
	return g.cfg
}

// Generate builds up to opts.MaxQuestions questions from text. Sentences
// are visited in random order; each eligible sentence is offered to every
// requested type in turn. The result is empty when nothing qualifies.
func (g *Generator) Generate(text string, opts Options) []Question {
	qs, _ := g.GenerateContext(context.Background(), text, opts)
	return qs
}

// GenerateContext is Generate that stops between sentences once ctx is
// done, returning ctx's error and nothing else.
func (g *Generator) GenerateContext(ctx context.Context, text string, opts Options) ([]Question, error) {
	if opts.MaxQuestions <= 0 {
		return nil, nil
	}

	sentences := g.analyzer.Sentences(text)
	if len(sentences) == 0 {
		return nil, nil
	}

	rng := opts.Rand
	if rng == nil {
		rng = g.stream()
	}

	types := opts.Types
	if len(types) == 0 {
		types = AllTypes
	}

	synth := NewSynthesizer(g.analyzer, g.cfg, rng)
	order := make([]string, len(sentences))
	perSentence := make([][]string, len(sentences))
	for i, s := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		order[i] = strings.TrimSpace(s)
		perSentence[i] = synth.keywords(order[i])
	}
	pool := MergeKeywords(perSentence...)

	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	var out []Question
	for _, sentence := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(strings.Fields(sentence)) < g.cfg.MinSentenceWords {
			continue
		}
		for _, t := range types {
			q, ok := synth.Synthesize(t, sentence, pool)
			if !ok {
				continue
			}
			if opts.Difficulty != "" && q.Difficulty != opts.Difficulty {
				continue
			}
			out = append(out, q)
			if len(out) >= opts.MaxQuestions {
				return out, nil
			}
		}
	}
	return out, nil
}

// stream seeds a private random source from the shared one.
func (g *Generator) stream() *rand.Rand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return NewRand(g.rng.Uint64())
}
