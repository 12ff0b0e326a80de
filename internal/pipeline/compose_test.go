package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sells-group/comercial-bot/internal/account"
)

var juanMatch = account.Match{
	Executive:     "Juan",
	TradeName:     "Natura",
	LegalName:     "Natura SA",
	DetectedBrand: "Natura",
}

func TestCompose_UsesGeneratedReply(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, mock.Anything).
		Return(textResponse("Esa cuenta la lleva Juan, de Natura SA."), nil).Once()

	p := New(ai, testAICfg, &mockResolver{})
	got := p.Compose(ctx, "¿quién atiende Natura?", juanMatch)
	assert.Equal(t, "Esa cuenta la lleva Juan, de Natura SA.", got)
}

func TestCompose_FallbackNamesExecutiveAndAccount(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, mock.Anything).
		Return(nil, errors.New("api down")).Once()

	p := New(ai, testAICfg, &mockResolver{})
	got := p.Compose(ctx, "¿quién atiende Natura?", juanMatch)

	assert.Equal(t, "Juan es quien aparece asignado a la cuenta 'Natura' (Natura SA).", got)
	assert.Contains(t, got, "Juan")
	assert.Contains(t, got, "Natura SA")
}

func TestCompose_EmptyGenerationFallsBack(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, mock.Anything).
		Return(textResponse(""), nil).Once()

	p := New(ai, testAICfg, &mockResolver{})
	got := p.Compose(ctx, "¿quién atiende Natura?", juanMatch)
	assert.Contains(t, got, "Juan es quien aparece asignado")
}

func TestSmallTalk_FallbackOnFailure(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, mock.Anything).
		Return(nil, errors.New("api down")).Once()

	p := New(ai, testAICfg, &mockResolver{})
	assert.Equal(t, replyNoUnderstanding, p.smallTalk(ctx, "hola"))
}
