package cardgen

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/duelforge/duelforge/internal/analysis"
	"github.com/duelforge/duelforge/internal/game/ir"
)

type cannedClient struct {
	reply string
	err   error
}

func (c *cannedClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.reply}},
		},
	}, nil
}

func testGenerator(t *testing.T, client chatCompleter) *Generator {
	return &Generator{
		client:   client,
		model:    "test-model",
		analyzer: analysis.New(ir.DefaultCaps(), zaptest.NewLogger(t)),
		logger:   zaptest.NewLogger(t),
	}
}

func TestGenerateParsesAndAccepts(t *testing.T) {
	g := testGenerator(t, &cannedClient{reply: "```yaml\nname: Ash Hound\ntype: UNIT\ncost: {generic: 2}\nstats: {atk: 2, hp: 1}\nkeywords: [HASTE]\n```"})

	card, err := g.Generate(context.Background(), "a cheap aggressive unit")
	require.NoError(t, err)
	assert.Equal(t, "Ash Hound", card.Name)
	assert.Equal(t, ir.TypeUnit, card.Type)
	assert.True(t, card.Keywords.Has(ir.KeywordHaste))
}

func TestGenerateRejectsInvalidDraft(t *testing.T) {
	// A unit without stats fails the analyzer.
	g := testGenerator(t, &cannedClient{reply: "name: Ghost\ntype: UNIT\n"})

	_, err := g.Generate(context.Background(), "anything")
	assert.Error(t, err)
}

func TestGeneratePropagatesAPIError(t *testing.T) {
	g := testGenerator(t, &cannedClient{err: errors.New("rate limited")})

	_, err := g.Generate(context.Background(), "anything")
	assert.Error(t, err)
}

func TestGenerateRejectsUnparseableReply(t *testing.T) {
	g := testGenerator(t, &cannedClient{reply: "sorry, I cannot do that"})

	_, err := g.Generate(context.Background(), "anything")
	assert.Error(t, err)
}
