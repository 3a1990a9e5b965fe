package twin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/generation"
	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/retrieval"
)

// Service runs the full ask pipeline: expand the question, retrieve memories,
// fit them into the context budget, and synthesize an answer.
type Service struct {
	retriever     *retrieval.Retriever
	expander      *Expander
	budgeter      *Budgeter
	answerer      *Answerer
	profile       config.RetrievalProfile
	noMemoryReply string
	logger        *zap.Logger
}

// NewService wires the pipeline from its parts. logger may be nil.
func NewService(retriever *retrieval.Retriever, gen generation.Generator, cfg config.TwinConfig, profile config.RetrievalProfile, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		retriever:     retriever,
		expander:      NewExpander(gen, cfg.ExpansionMaxTokens, cfg.ExpansionTemperature, logger),
		budgeter:      NewBudgeter(cfg.ContextBudget),
		answerer:      NewAnswerer(gen, cfg.Persona, cfg.AnswerMaxTokens, cfg.AnswerTemperature, logger),
		profile:       profile,
		noMemoryReply: cfg.NoMemoryReply,
		logger:        logger,
	}
}

// Ask answers a question against the journal. A blank question, a question
// with no relevant memories, or a context budget too small for any retrieved
// memory yields the canned no-memory reply without calling generation for
// synthesis.
func (s *Service) Ask(ctx context.Context, question string) (*models.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return &models.Answer{Text: s.noMemoryReply}, nil
	}

	enriched := s.expander.Expand(ctx, question)
	results, err := s.retriever.Search(ctx, enriched, s.profile)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		s.logger.Debug("no memories above threshold", zap.String("question", question))
		return &models.Answer{Text: s.noMemoryReply}, nil
	}

	memories, used := s.budgeter.Build(results)
	if used == 0 {
		s.logger.Debug("no memories fit the context budget", zap.String("question", question))
		return &models.Answer{Text: s.noMemoryReply}, nil
	}
	// Retrieval is answered against the original question; the enriched
	// query only steers which memories come back.
	text, err := s.answerer.Answer(ctx, question, memories)
	if err != nil {
		return nil, err
	}

	return &models.Answer{
		Text:        text,
		MemoryCount: used,
		Sources:     results[:used],
	}, nil
}
