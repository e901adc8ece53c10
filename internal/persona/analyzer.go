package persona

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"car-persona-ai-bot/internal/gemini"
)

// Generator is the single outbound capability the pipeline needs.
// *gemini.Client satisfies it.
type Generator interface {
	GenerateText(ctx context.Context, req gemini.Request) (string, error)
}

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage int
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Stage, e.Name, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

type Options struct {
	Generator Generator
	Logger    *slog.Logger
}

// Analyzer runs the two-stage pipeline: identify the car, then synthesize an
// owner persona from the top candidate. It holds no per-request state and is
// safe for concurrent use.
type Analyzer struct {
	gen    Generator
	logger *slog.Logger
}

func NewAnalyzer(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Analyzer{
		gen:    opts.Generator,
		logger: logger,
	}
}

// Analyze runs both stages against the given image(s). A reply of isCar=false
// (or no candidates at all) short-circuits to Analysis{IsCar:false} without a
// second call; that is a successful outcome, not an error. Any stage failure
// fails the whole request: no partial result is returned.
func (a *Analyzer) Analyze(ctx context.Context, images []gemini.ImageInput) (Analysis, error) {
	if len(images) == 0 {
		return Analysis{}, errors.New("no image provided")
	}

	raw, err := a.gen.GenerateText(ctx, BuildIdentificationRequest(images))
	if err != nil {
		return Analysis{}, &StageError{Stage: 1, Name: "identification", Err: err}
	}

	ident, err := DecodeIdentification(raw)
	if err != nil {
		return Analysis{}, &StageError{Stage: 1, Name: "identification", Err: err}
	}

	if !ident.IsCar || len(ident.Candidates) == 0 {
		a.logger.Info("no car identified")
		return Analysis{IsCar: false}, nil
	}

	top := ident.Candidates[0]
	a.logger.Info("car identified",
		"model", top.Model,
		"confidence", top.Confidence,
		"candidates", len(ident.Candidates),
	)

	p, err := a.Persona(ctx, top.Model)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		IsCar:      true,
		Candidates: ident.Candidates,
		Verdict:    &p.Verdict,
		Lifestyle:  &p.Lifestyle,
		Vibe:       &p.Vibe,
		MemeIndex:  &p.MemeIndex,
	}, nil
}

// Persona runs the synthesis stage alone for an already known model name.
func (a *Analyzer) Persona(ctx context.Context, carModel string) (Persona, error) {
	if strings.TrimSpace(carModel) == "" {
		return Persona{}, errors.New("car model is empty")
	}

	raw, err := a.gen.GenerateText(ctx, BuildPersonaRequest(carModel))
	if err != nil {
		return Persona{}, &StageError{Stage: 2, Name: "persona", Err: err}
	}

	p, err := DecodePersona(raw)
	if err != nil {
		return Persona{}, &StageError{Stage: 2, Name: "persona", Err: err}
	}
	return p, nil
}
