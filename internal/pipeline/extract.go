package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/comercial-bot/pkg/anthropic"
)

// ExtractBrand pulls the brand name out of free text via the model
// collaborator. Returns "" when no brand is mentioned or when the call
// fails; extraction failure is never fatal to the request.
func (p *Pipeline) ExtractBrand(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	temp := 0.3
	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.aiCfg.Model,
		MaxTokens:   64,
		System:      extractSystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(extractUserPrompt, text)},
		},
	})
	if err != nil {
		zap.L().Error("extract: brand extraction call failed", zap.Error(err))
		return ""
	}
	resp.Usage.LogCost(p.aiCfg.Model, "extract")

	brand := resp.Text()
	if brand == "" || strings.EqualFold(brand, noBrandSentinel) {
		zap.L().Info("extract: no brand detected", zap.String("question", text))
		return ""
	}

	zap.L().Info("extract: brand detected",
		zap.String("question", text),
		zap.String("brand", brand),
	)
	return brand
}
