// Package cardgen drafts new card templates with an LLM and vets them
// with the static analyzer before they are allowed anywhere near a pool.
package cardgen

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/duelforge/duelforge/internal/analysis"
	"github.com/duelforge/duelforge/internal/game/ir"
)

const systemPrompt = `You design cards for a two-player card game.
Reply with exactly one YAML document describing one card, no prose and no
code fences. The schema:

name: string
cost: {generic: int, colors: [string]}
type: UNIT | SPELL | ARTIFACT | ENCHANTMENT
stats: {atk: int, hp: int}   # units only
keywords: [HEXPROOF, LIFELINK, DEATHTOUCH, INDESTRUCTIBLE, HASTE, VIGILANCE, DEFENDER]
tags: [string]
textIR:
  cast: effect
  triggers: [{when: event, condition: predicate, effect: effect}]

Effects use kind tags such as DEAL_DAMAGE, DRAW, CREATE_TOKEN, BUFF_STATS,
DESTROY, SEQUENCE, CONDITIONAL, FOR_EACH, REPEAT. Keep designs small.`

// chatCompleter is the slice of the OpenAI client the generator uses.
// Tests substitute a canned implementation.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Generator drafts cards through a chat model and refuses any draft the
// analyzer finds errors in.
type Generator struct {
	client   chatCompleter
	model    string
	analyzer *analysis.Analyzer
	logger   *zap.Logger
}

// New creates a generator backed by the OpenAI API.
func New(apiKey, model string, analyzer *analysis.Analyzer, logger *zap.Logger) *Generator {
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		client:   openai.NewClient(apiKey),
		model:    model,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Generate drafts one card from a design brief. The draft must parse as a
// card template and pass the analyzer with no errors.
func (g *Generator) Generate(ctx context.Context, brief string) (*ir.Card, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: brief},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("card generation call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("card generation returned no choices")
	}

	card, err := parseCard(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	report := g.analyzer.Analyze([]*ir.Card{card})
	if !report.OK() {
		for _, f := range report.Errors() {
			g.logger.Warn("generated card rejected",
				zap.String("card", card.Name),
				zap.String("code", f.Code),
				zap.String("detail", f.Message),
			)
		}
		return nil, fmt.Errorf("generated card %q failed analysis: %s", card.Name, report.Errors()[0].Message)
	}
	g.logger.Info("card generated", zap.String("card", card.Name))
	return card, nil
}

// parseCard unmarshals a model reply, tolerating the code fences models
// add despite instructions.
func parseCard(reply string) (*ir.Card, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```yaml")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var card ir.Card
	if err := yaml.Unmarshal([]byte(reply), &card); err != nil {
		return nil, fmt.Errorf("parse generated card: %w", err)
	}
	if card.Name == "" {
		return nil, fmt.Errorf("generated card has no name")
	}
	return &card, nil
}
