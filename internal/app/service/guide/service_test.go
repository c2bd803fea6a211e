package guide

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/app/service/content"
	"github.com/careerpilot/backend/internal/app/service/render"
	"github.com/careerpilot/backend/pkg/config"
	"github.com/careerpilot/backend/pkg/types"
)

func testAnswers() types.QuestionnaireAnswers {
	return types.QuestionnaireAnswers{
		WorkPreference:    "remote",
		TaskPreference:    "building things",
		LearningStyle:     "hands-on",
		SocialInteraction: "small teams",
		JobMotivation:     "growth",
		RiskPreference:    "moderate",
		PressureHandling:  "calm",
		WorkEnvironment:   "startup",
		PersonalInterests: "programming",
	}
}

// stubGenerator answers by inspecting the prompt, mirroring how the two
// section prompts are distinguishable by their instructions.
type stubGenerator struct {
	careerPaths string
	roadmap     string
	delay       time.Duration
	err         error
	calls       atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls.Add(1)
	cur := g.inFlight.Add(1)
	defer g.inFlight.Add(-1)
	for {
		max := g.maxInFlight.Load()
		if cur <= max || g.maxInFlight.CompareAndSwap(max, cur) {
			break
		}
	}

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.err != nil {
		return "", g.err
	}
	if strings.Contains(prompt, "learning roadmap") {
		return g.roadmap, nil
	}
	return g.careerPaths, nil
}

func validJSONSections() (string, string) {
	paths, _ := json.Marshal(map[string]any{
		"career_paths": []map[string]any{{
			"title":       "Software Engineer",
			"description": "Builds software.",
		}},
	})
	roadmap, _ := json.Marshal(map[string]any{
		"learning_roadmap": map[string]any{
			"short_term": []string{"Learn Go"},
		},
	})
	return string(paths), string(roadmap)
}

func newTestService(gen content.Generator, mode string, timeoutSeconds int) *Service {
	cfg := &config.Config{
		Gemini: config.GeminiConfig{TimeoutSeconds: timeoutSeconds},
		Render: config.RenderConfig{Mode: mode},
	}
	r := render.New(cfg, zap.NewNop().Sugar(), render.WithCompression(false))
	return NewService(cfg, gen, r, zap.NewNop().Sugar())
}

func TestBuildGuide_RequiresUser(t *testing.T) {
	gen := &stubGenerator{}
	svc := newTestService(gen, "pdf", 5)

	_, err := svc.BuildGuide(context.Background(), "", testAnswers())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Zero(t, gen.calls.Load(), "no generation work before auth check")
}

func TestBuildGuide_PDFEndToEnd(t *testing.T) {
	paths, roadmap := validJSONSections()
	gen := &stubGenerator{careerPaths: paths, roadmap: roadmap}
	svc := newTestService(gen, "pdf", 5)

	artifact, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	require.NoError(t, err)
	require.Equal(t, render.FormatPDF, artifact.Format)
	require.True(t, strings.HasPrefix(string(artifact.PDF), "%PDF"))
	require.Contains(t, string(artifact.PDF), "Software Engineer")
	require.Equal(t, int32(2), gen.calls.Load())
}

func TestBuildGuide_HTMLEndToEnd(t *testing.T) {
	gen := &stubGenerator{
		careerPaths: `<div class="career-paths-container">paths</div>`,
		roadmap:     `<div class="learning-roadmap">roadmap</div>`,
	}
	svc := newTestService(gen, "html", 5)

	artifact, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	require.NoError(t, err)
	require.Equal(t, render.FormatHTML, artifact.Format)
	require.Contains(t, artifact.HTML, "career-paths-container")
	require.Contains(t, artifact.HTML, "learning-roadmap")
}

// fixedPayloadGenerator returns one fixed, fully valid document for every
// prompt, exercising the whole pipeline with a known expected output.
type fixedPayloadGenerator struct{ payload string }

func (g *fixedPayloadGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.payload, nil
}

func TestBuildGuide_FixedPayloadRendersExpectedText(t *testing.T) {
	gen := &fixedPayloadGenerator{payload: `{"career_paths":[{"title":"Software Engineer","description":"...","required_skills":["X"],"free_courses":[],"internship_opportunities":[]}],"learning_roadmap":{"short_term":["A"],"medium_term":[],"long_term":[]}}`}
	svc := newTestService(gen, "pdf", 5)

	answers := testAnswers()
	answers.WorkPreference = "Independently with clear goals"
	answers.TaskPreference = "Creative problem-solving"

	artifact, err := svc.BuildGuide(context.Background(), "user-1", answers)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(artifact.PDF), "%PDF"))
	require.Contains(t, string(artifact.PDF), "Software Engineer")
	require.Contains(t, string(artifact.PDF), "- A")
}

func TestBuildGuide_SectionsRunConcurrently(t *testing.T) {
	paths, roadmap := validJSONSections()
	gen := &stubGenerator{careerPaths: paths, roadmap: roadmap, delay: 150 * time.Millisecond}
	svc := newTestService(gen, "pdf", 5)

	start := time.Now()
	_, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Equal(t, int32(2), gen.maxInFlight.Load(), "both sections in flight at once")
	require.Less(t, elapsed, 280*time.Millisecond, "wall time close to one call, not two")
}

func TestBuildGuide_TimeoutSurfacesAsTimeout(t *testing.T) {
	paths, roadmap := validJSONSections()
	gen := &stubGenerator{careerPaths: paths, roadmap: roadmap, delay: 500 * time.Millisecond}
	svc := newTestService(gen, "pdf", 5)
	svc.timeout = 50 * time.Millisecond

	_, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	require.ErrorIs(t, err, ErrGenerationTimeout)
	require.NotErrorIs(t, err, content.ErrGenerationFailed)
}

func TestBuildGuide_GenerationFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := newTestService(gen, "pdf", 5)

	_, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	require.ErrorIs(t, err, content.ErrGenerationFailed)
	require.NotErrorIs(t, err, ErrGenerationTimeout)
}

func TestBuildGuide_MalformedJSONFailsHard(t *testing.T) {
	gen := &stubGenerator{careerPaths: "not json at all", roadmap: "also not json"}
	svc := newTestService(gen, "pdf", 5)

	_, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	require.Error(t, err)
}

func TestBuildGuide_HTMLFallbackWrapStillSucceeds(t *testing.T) {
	gen := &stubGenerator{
		careerPaths: "<p>unmarked paths content</p>",
		roadmap:     "<p>unmarked roadmap content</p>",
	}
	svc := newTestService(gen, "html", 5)

	artifact, err := svc.BuildGuide(context.Background(), "user-1", testAnswers())
	require.NoError(t, err)
	require.Contains(t, artifact.HTML, "fallback-content")
	require.Contains(t, artifact.HTML, "unmarked paths content")
}
