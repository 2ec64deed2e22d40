package advice

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/bechobazaar/geminiai/internal/config"
	"github.com/bechobazaar/geminiai/internal/listing"
	"github.com/bechobazaar/geminiai/internal/llm"
	"github.com/bechobazaar/geminiai/internal/search"
)

// Archiver stores raw provider replies for offline replay. Optional.
type Archiver interface {
	Store(ctx context.Context, key string, body []byte) error
}

// Service runs the full pipeline:
// normalize -> gather evidence -> compose -> generate -> reconcile -> emit.
type Service struct {
	cfg        config.Config
	normalizer *listing.Normalizer
	gatherer   *search.Gatherer
	client     llm.Client
	reconciler *Reconciler
	history    Repository // nil disables persistence
	archive    Archiver   // nil disables the raw-reply archive
}

func NewService(
	cfg config.Config,
	gatherer *search.Gatherer,
	client llm.Client,
	history Repository,
	archive Archiver,
) *Service {
	return &Service{
		cfg:        cfg,
		normalizer: listing.NewNormalizer(cfg.RequiredFields),
		gatherer:   gatherer,
		client:     client,
		reconciler: NewReconciler(cfg.MaxSources, cfg.SuggestWeight),
		history:    history,
		archive:    archive,
	}
}

// ProduceAdvice turns a raw listing payload into a reconciled Response.
// Evidence gathering degrades silently; everything downstream of it
// surfaces typed errors (ValidationError, UpstreamError, ParseError).
func (s *Service) ProduceAdvice(ctx context.Context, raw map[string]any, planTier string) (Response, error) {
	desc, err := s.normalizer.Normalize(raw)
	if err != nil {
		return Response{}, err
	}

	var evidence []search.EvidenceItem
	if s.gatherer != nil {
		evidence = s.gatherer.Gather(ctx, search.Queries(desc))
	}

	system, user := llm.Compose(desc, evidence)
	model := llm.ModelForTier(s.cfg.ModelTiers, planTier)

	req := llm.Request{
		Model: model,
		Input: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxOutputTokens: 2048,
		Temperature:     0.2,
	}
	// Without gathered evidence let the provider search on its own,
	// if the model supports the tool; the client strips it otherwise.
	if len(evidence) == 0 {
		req.Tools = []llm.Tool{{Type: "web_search"}}
	}

	rawReply, err := s.client.Generate(ctx, req)
	if err != nil {
		return Response{}, err
	}

	requestID := uuid.New().String()

	if s.archive != nil {
		key := "replies/" + requestID + ".json"
		if err := s.archive.Store(ctx, key, rawReply); err != nil {
			log.Printf("ARCHIVE_FAILED key=%s err=%v", key, err)
		}
	}

	text, err := llm.ExtractText(rawReply)
	if err != nil {
		return Response{}, &ParseError{Reason: err.Error()}
	}

	result, err := s.reconciler.Reconcile(text, evidence)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		OK:        true,
		Provider:  s.client.Provider(),
		Model:     model,
		RequestID: requestID,
		Searched:  len(evidence) > 0,
		Result:    result,
	}

	s.record(ctx, desc, planTier, resp)
	return resp, nil
}

// Recent returns stored advice records, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, limit)
}

// record persists the run best-effort. A failed insert never fails the
// request.
func (s *Service) record(ctx context.Context, desc listing.ListingDescription, planTier string, resp Response) {
	if s.history == nil {
		return
	}

	err := s.history.Save(ctx, &Record{
		ID:         resp.RequestID,
		Category:   desc.Category,
		Brand:      desc.Brand,
		Model:      desc.Model,
		City:       desc.City,
		PlanTier:   planTier,
		ModelUsed:  resp.Model,
		Low:        resp.Result.MarketPriceLow,
		High:       resp.Result.MarketPriceHigh,
		Suggested:  resp.Result.SuggestedPrice,
		Confidence: resp.Result.Confidence,
		Searched:   resp.Searched,
	})
	if err != nil {
		log.Printf("HISTORY_SAVE_FAILED id=%s err=%v", resp.RequestID, err)
	}
}

// IsParseError reports whether err is a reply-coercion failure.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
