package render

import (
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/careerpilot/backend/internal/app/service/normalize"
	"github.com/careerpilot/backend/pkg/config"
	"github.com/careerpilot/backend/pkg/types"
)

// ErrRenderFailed indicates the normalized input is missing fields the
// selected template requires.
var ErrRenderFailed = errors.New("render failed")

type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// Artifact is the final rendered guide: a complete HTML document or a PDF
// byte buffer. It lives for one request/response cycle and is never
// persisted server-side.
type Artifact struct {
	Format Format `json:"format"`
	HTML   string `json:"html,omitempty"`
	// PDF is base64-encoded when serialized to JSON.
	PDF []byte `json:"pdf,omitempty"`
}

type Renderer struct {
	mode     Format
	compress bool
	log      *zap.SugaredLogger
}

type Option func(*Renderer)

// WithCompression toggles PDF stream compression. Tests disable it so the
// content stream stays inspectable.
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

func New(cfg *config.Config, log *zap.SugaredLogger, opts ...Option) *Renderer {
	mode := FormatPDF
	if cfg != nil && Format(cfg.Render.Mode) == FormatHTML {
		mode = FormatHTML
	}
	r := &Renderer{mode: mode, compress: true, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode reports the configured artifact format. The guide pipeline uses it
// to pick the matching shape contract for generation.
func (r *Renderer) Mode() Format { return r.mode }

// Render composes the normalized sections into the final artifact.
func (r *Renderer) Render(sections []*normalize.Result) (*Artifact, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("no sections to render: %w", ErrRenderFailed)
	}

	switch r.mode {
	case FormatHTML:
		html, err := renderHTML(sections)
		if err != nil {
			return nil, err
		}
		return &Artifact{Format: FormatHTML, HTML: html}, nil
	default:
		merged := &types.GuideDocument{}
		for _, sec := range sections {
			if sec == nil || sec.Doc == nil {
				return nil, fmt.Errorf("section lacks structured document: %w", ErrRenderFailed)
			}
			merged.Merge(sec.Doc)
		}
		pdf, err := renderPDF(merged, r.compress)
		if err != nil {
			return nil, err
		}
		return &Artifact{Format: FormatPDF, PDF: pdf}, nil
	}
}

func newRenderer(cfg *config.Config, log *zap.SugaredLogger) *Renderer {
	return New(cfg, log)
}

var Module = fx.Options(
	fx.Provide(newRenderer),
)
