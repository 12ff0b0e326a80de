package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/comercial-bot/internal/account"
	"github.com/sells-group/comercial-bot/internal/config"
	"github.com/sells-group/comercial-bot/pkg/anthropic"
)

var testAICfg = config.AnthropicConfig{
	Model:       "claude-haiku-4-5-20251001",
	VisionModel: "claude-sonnet-4-5-20250929",
}

func reqWithSystem(system string) any {
	return mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.System == system
	})
}

func pngBase64(t *testing.T) string {
	t.Helper()
	sig := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	return base64.StdEncoding.EncodeToString(append(sig, make([]byte, 64)...))
}

func TestAsk_FullMatch(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(textResponse("Natura"), nil).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(composeSystemPrompt)).
		Return(textResponse("¡Hola! La cuenta Natura la lleva Juan."), nil).Once()

	res := &mockResolver{}
	res.On("Resolve", ctx, "Natura").Return(account.Match{
		Executive:     "Juan",
		TradeName:     "Natura",
		LegalName:     "Natura SA",
		DetectedBrand: "Natura",
	}, true).Once()

	p := New(ai, testAICfg, res)
	a := p.Ask(ctx, "¿Quién atiende Natura?")

	require.True(t, a.Matched)
	assert.Equal(t, "Natura", a.DetectedBrand)
	assert.Equal(t, "Juan", a.Executive)
	assert.Equal(t, "Natura SA", a.LegalName)
	assert.Equal(t, "¡Hola! La cuenta Natura la lleva Juan.", a.Reply)
	ai.AssertExpectations(t)
	res.AssertExpectations(t)
}

func TestAsk_NoBrand_SmallTalk(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(textResponse("NINGUNA"), nil).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(smallTalkSystemPrompt)).
		Return(textResponse("¡Buen día! ¿Por qué marca querés consultar?"), nil).Once()

	res := &mockResolver{}

	p := New(ai, testAICfg, res)
	a := p.Ask(ctx, "hola")

	assert.False(t, a.Matched)
	assert.Equal(t, "¡Buen día! ¿Por qué marca querés consultar?", a.Reply)
	res.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestAsk_ExtractorFailure_DegradesToSmallTalk(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(nil, errors.New("api unavailable")).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(smallTalkSystemPrompt)).
		Return(nil, errors.New("api unavailable")).Once()

	p := New(ai, testAICfg, &mockResolver{})
	a := p.Ask(ctx, "¿Quién atiende Natura?")

	assert.False(t, a.Matched)
	assert.Equal(t, replyNoUnderstanding, a.Reply)
}

func TestAsk_BrandWithoutAccount(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(textResponse("Desconocida"), nil).Once()

	res := &mockResolver{}
	res.On("Resolve", ctx, "Desconocida").Return(account.Match{}, false).Once()

	p := New(ai, testAICfg, res)
	a := p.Ask(ctx, "¿Quién lleva Desconocida?")

	assert.False(t, a.Matched)
	assert.Equal(t, "No se encontró un comercial para la marca 'Desconocida'", a.Reply)
}

func TestAskImage_FullMatch(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(describeSystemPrompt)).
		Return(textResponse("Caja con logo Natura y etiqueta de envío."), nil).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(textResponse("Natura"), nil).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(composeSystemPrompt)).
		Return(textResponse("Esa caja es de Natura, la atiende Juan."), nil).Once()

	res := &mockResolver{}
	res.On("Resolve", ctx, "Natura").Return(account.Match{
		Executive:     "Juan",
		TradeName:     "Natura",
		LegalName:     "Natura SA",
		DetectedBrand: "Natura",
	}, true).Once()

	p := New(ai, testAICfg, res)
	a := p.AskImage(ctx, "¿de quién es este paquete?", pngBase64(t))

	require.True(t, a.Matched)
	assert.Equal(t, "Caja con logo Natura y etiqueta de envío.", a.ImageDescription)
	assert.Equal(t, "Juan", a.Executive)
	ai.AssertExpectations(t)
}

func TestAskImage_NoBrandInDescription(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(describeSystemPrompt)).
		Return(textResponse("Una caja marrón sin marcas visibles."), nil).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(textResponse("NINGUNA"), nil).Once()

	p := New(ai, testAICfg, &mockResolver{})
	a := p.AskImage(ctx, "", pngBase64(t))

	assert.False(t, a.Matched)
	assert.Equal(t, replyImageNoBrand, a.Reply)
	assert.Equal(t, "Una caja marrón sin marcas visibles.", a.ImageDescription)
}

func TestAskImage_NoAccountMatch_MessageNamesBrand(t *testing.T) {
	ctx := context.Background()
	ai := &mockAnthropicClient{}
	ai.On("CreateMessage", ctx, reqWithSystem(describeSystemPrompt)).
		Return(textResponse("Etiqueta con el texto ACME."), nil).Once()
	ai.On("CreateMessage", ctx, reqWithSystem(extractSystemPrompt)).
		Return(textResponse("ACME"), nil).Once()

	res := &mockResolver{}
	res.On("Resolve", ctx, "ACME").Return(account.Match{}, false).Once()

	p := New(ai, testAICfg, res)
	a := p.AskImage(ctx, "", pngBase64(t))

	assert.False(t, a.Matched)
	assert.Equal(t, "No se encontró un comercial para la marca detectada: 'ACME'", a.Reply)
	assert.Equal(t, "Etiqueta con el texto ACME.", a.ImageDescription)
}
