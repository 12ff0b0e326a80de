package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/comercial-bot/internal/account"
	"github.com/sells-group/comercial-bot/pkg/anthropic"
)

// --- Anthropic mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 100, OutputTokens: 20},
	}
}

// --- Resolver mock ---

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, rawBrand string) (account.Match, bool) {
	args := m.Called(ctx, rawBrand)
	return args.Get(0).(account.Match), args.Bool(1)
}
