package reader

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrMissingURL is returned before any retrieval when the request has no URL.
var ErrMissingURL = errors.New("url is required")

// Service sequences retrieval strategies per URL class, consults the result
// cache, and applies objective filtering to the final text.
type Service struct {
	direct   Strategy
	social   Strategy
	reader   Strategy
	headless Strategy
	cache    ContentCache
	logger   *zap.Logger
}

// NewService wires the orchestrator. Any strategy may be nil, in which case it
// is skipped; cache may be nil to disable caching entirely.
func NewService(direct, social, readerAPI, headless Strategy, cache ContentCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		direct:   direct,
		social:   social,
		reader:   readerAPI,
		headless: headless,
		cache:    cache,
		logger:   logger,
	}
}

// ReadPage retrieves readable Markdown for the requested URL, trying
// strategies strictly in cost order and stopping at the first that yields
// content. It fails with an *ExhaustedError once every applicable strategy
// has come back absent.
func (s *Service) ReadPage(ctx context.Context, req Request) (Result, error) {
	if req.URL == "" {
		return Result{}, ErrMissingURL
	}

	if !req.ForceRefetch && s.cache != nil {
		if content, ok := s.cache.Get(req.URL); ok {
			cacheHits.Inc()
			s.logger.Debug("cache hit", zap.String("url", req.URL))
			return s.finish(req, content, StrategyCache, true), nil
		}
	}

	class := ClassifyURL(req.URL)
	for _, strategy := range s.chainFor(class) {
		strategyAttempts.WithLabelValues(string(strategy.Name())).Inc()
		content, err := strategy.Attempt(ctx, req.URL)
		if err != nil {
			// Transient by definition: note it and move down the chain.
			s.logger.Debug("strategy returned absent",
				zap.String("url", req.URL),
				zap.String("strategy", string(strategy.Name())),
				zap.Error(err),
			)
			continue
		}
		strategySuccesses.WithLabelValues(string(strategy.Name())).Inc()
		s.logger.Info("content retrieved",
			zap.String("url", req.URL),
			zap.String("strategy", string(strategy.Name())),
			zap.Int("bytes", len(content)),
		)
		if s.cache != nil {
			s.cache.Put(req.URL, content)
		}
		return s.finish(req, content, strategy.Name(), false), nil
	}

	readsExhausted.Inc()
	return Result{}, &ExhaustedError{URL: req.URL}
}

// chainFor builds the ordered strategy list for a URL class. Cheapest first;
// the platform API outranks generic rendering because it is both cheaper and
// higher fidelity for posts; the browser is strictly last.
func (s *Service) chainFor(class Class) []Strategy {
	chain := make([]Strategy, 0, 4)
	if s.direct != nil {
		chain = append(chain, s.direct)
	}
	if class == ClassSocialPost && s.social != nil {
		chain = append(chain, s.social)
	}
	if s.reader != nil {
		chain = append(chain, s.reader)
	}
	if s.headless != nil {
		chain = append(chain, s.headless)
	}
	return chain
}

func (s *Service) finish(req Request, content string, name StrategyName, cached bool) Result {
	if req.Objective != "" {
		content = FilterByObjective(content, req.Objective)
	}
	return Result{
		URL:      req.URL,
		Content:  content,
		Strategy: name,
		Cached:   cached,
	}
}
