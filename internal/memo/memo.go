// Package memo narrates weighted evaluations as short investment memo
// paragraphs using Claude.
package memo

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/pkg/anthropic"
)

const systemPrompt = `You are an analyst at a biotech-focused investment firm.
Given a company's weighted pillar scores, write one concise paragraph (4-6
sentences) summarizing the investment picture: overall score, strongest and
weakest pillars, and any validation caveats. Plain prose, no headers or lists.`

// Generator produces memo paragraphs from scored evaluations. A rate limiter
// paces API calls when generating memos for a whole batch.
type Generator struct {
	client  anthropic.Client
	model   string
	limiter *rate.Limiter
}

// NewGenerator creates a Generator. rps caps memo requests per second;
// rps <= 0 disables pacing.
func NewGenerator(client anthropic.Client, modelID string, rps float64) *Generator {
	g := &Generator{client: client, model: modelID}
	if rps > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return g
}

// Generate writes a memo paragraph for one evaluated company.
func (g *Generator) Generate(ctx context.Context, company model.Company, scores model.PillarScores, weighted model.WeightedScores, validation model.ValidationResult) (string, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "memo: rate limit wait")
		}
	}

	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: 512,
		System:    systemPrompt,
		Prompt:    buildPrompt(company, scores, weighted, validation),
	})
	if err != nil {
		return "", eris.Wrapf(err, "memo: generate for %s", company.Name)
	}

	zap.L().Debug("memo: generated",
		zap.String("company", company.Name),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	return strings.TrimSpace(resp.Text), nil
}

func buildPrompt(company model.Company, scores model.PillarScores, weighted model.WeightedScores, validation model.ValidationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Company: %s", company.Name)
	if company.Ticker != "" {
		fmt.Fprintf(&b, " (%s)", company.Ticker)
	}
	fmt.Fprintf(&b, "\nComposite score: %.2f / 5\n\nPillars (raw score, weighted contribution, confidence):\n", weighted.Total)

	for _, p := range model.Pillars() {
		s := scores.Score(p)
		fmt.Fprintf(&b, "- %s: %.2f, %.3f, %.2f\n", p, s.RawScore, weighted.Contribution(p), s.Confidence)
	}

	if warnings := scores.AllWarnings(); len(warnings) > 0 {
		fmt.Fprintf(&b, "\nScoring warnings:\n")
		for _, w := range warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	for _, issue := range validation.Warnings {
		fmt.Fprintf(&b, "\nWeight config warning: %s", issue.String())
	}

	return b.String()
}
