package guide

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/careerpilot/backend/internal/app/service/content"
	"github.com/careerpilot/backend/internal/app/service/normalize"
	"github.com/careerpilot/backend/internal/app/service/render"
	"github.com/careerpilot/backend/pkg/config"
	"github.com/careerpilot/backend/pkg/logctx"
	"github.com/careerpilot/backend/pkg/types"
)

var (
	// ErrUnauthorized is raised before any generation work begins when the
	// caller has no authenticated identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrGenerationTimeout is distinct from a generation failure so the
	// caller can tell "took too long, try again" from a generic error.
	ErrGenerationTimeout = errors.New("generation timed out")
)

const defaultGenerationTimeout = 60 * time.Second

// Service orchestrates the guide pipeline: prompt construction, parallel
// generation, normalization and rendering. Every invocation performs fresh
// generation; there is no idempotency by design.
type Service struct {
	gen      content.Generator
	renderer *render.Renderer
	log      *zap.SugaredLogger
	timeout  time.Duration
}

func NewService(cfg *config.Config, gen content.Generator, renderer *render.Renderer, log *zap.SugaredLogger) *Service {
	timeout := defaultGenerationTimeout
	if cfg != nil && cfg.Gemini.TimeoutSeconds > 0 {
		timeout = cfg.Gemini.Timeout()
	}
	return &Service{gen: gen, renderer: renderer, log: log, timeout: timeout}
}

type section struct {
	name   string
	prompt string
	shape  normalize.ShapeSpec
}

// BuildGuide turns questionnaire answers into the final artifact. The two
// guide sections are generated concurrently; each call is bounded by the
// configured timeout. When one call times out, the sibling's result is
// simply discarded via errgroup context cancellation.
func (s *Service) BuildGuide(ctx context.Context, userID string, answers types.QuestionnaireAnswers) (*render.Artifact, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	asJSON := s.renderer.Mode() == render.FormatPDF
	sections := []section{
		{
			name:   "career_paths",
			prompt: careerPathsPrompt(answers, asJSON),
			shape:  pickShape(normalize.ShapeCareerPathsHTML, normalize.ShapeCareerPathsJSON, asJSON),
		},
		{
			name:   "learning_roadmap",
			prompt: roadmapPrompt(answers, asJSON),
			shape:  pickShape(normalize.ShapeRoadmapHTML, normalize.ShapeRoadmapJSON, asJSON),
		},
	}

	results := make([]*normalize.Result, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range sections {
		g.Go(func() error {
			res, err := s.generateSection(gctx, sec)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifact, err := s.renderer.Render(results)
	if err != nil {
		return nil, err
	}
	logctx.FromCtx(ctx, s.log).Infow("guide built",
		"user_id", userID, "format", artifact.Format)
	return artifact, nil
}

func (s *Service) generateSection(ctx context.Context, sec section) (*normalize.Result, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.Generate(cctx, sec.prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s section: %w", sec.name, ErrGenerationTimeout)
		}
		return nil, fmt.Errorf("%s section: %w: %v", sec.name, content.ErrGenerationFailed, err)
	}

	res, err := normalize.Normalize(raw, sec.shape)
	if err != nil {
		return nil, fmt.Errorf("%s section: %w", sec.name, err)
	}
	if res.Wrapped {
		logctx.FromCtx(ctx, s.log).Warnw("section wrapped in fallback container", "section", sec.name)
	}
	return res, nil
}

func pickShape(html, json normalize.ShapeSpec, asJSON bool) normalize.ShapeSpec {
	if asJSON {
		return json
	}
	return html
}
