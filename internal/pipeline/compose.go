package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/comercial-bot/internal/account"
	"github.com/sells-group/comercial-bot/pkg/anthropic"
)

// Compose turns a resolved match into a short, warm reply via the model
// collaborator. When the call fails it falls back to a fixed templated
// sentence, so composition never fails outright.
func (p *Pipeline) Compose(ctx context.Context, question string, m account.Match) string {
	temp := 0.7
	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.aiCfg.Model,
		MaxTokens:   256,
		System:      composeSystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(composeUserPrompt, question, m.Executive, m.TradeName, m.LegalName)},
		},
	})
	if err != nil {
		zap.L().Error("compose: response generation failed", zap.Error(err))
		return fmt.Sprintf("%s es quien aparece asignado a la cuenta '%s' (%s).", m.Executive, m.TradeName, m.LegalName)
	}
	resp.Usage.LogCost(p.aiCfg.Model, "compose")

	if text := resp.Text(); text != "" {
		return text
	}
	return fmt.Sprintf("%s es quien aparece asignado a la cuenta '%s' (%s).", m.Executive, m.TradeName, m.LegalName)
}

// smallTalk produces a cordial reply for questions that mention no brand.
func (p *Pipeline) smallTalk(ctx context.Context, question string) string {
	temp := 0.6
	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.aiCfg.Model,
		MaxTokens:   256,
		System:      smallTalkSystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		zap.L().Error("compose: small-talk generation failed", zap.Error(err))
		return replyNoUnderstanding
	}
	resp.Usage.LogCost(p.aiCfg.Model, "smalltalk")

	if text := resp.Text(); text != "" {
		return text
	}
	return replyNoUnderstanding
}
