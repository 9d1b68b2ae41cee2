package generator

import (
	"context"
	"fmt"

	"DocPipeline/internal/detector"
	"DocPipeline/internal/domain"
)

func (g *Generator) chart(ctx context.Context, text string) ([]byte, error) {
	if g.charts == nil {
		return nil, errNoRenderer
	}
	spec, err := detector.ParseChartSpec(text)
	if err != nil {
		return nil, err
	}
	png, err := g.charts.Render(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("render %q chart: %w", spec.Type(), err)
	}
	return png, nil
}

func (g *Generator) image(ctx context.Context, text string) ([]byte, error) {
	if g.images == nil {
		return nil, errNoImageGen
	}
	prompt, ok := detector.ExtractPrompt(text)
	if !ok {
		return nil, domain.ErrNoPrompt
	}
	png, err := g.images.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	return png, nil
}
