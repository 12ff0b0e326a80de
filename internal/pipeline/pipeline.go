// Package pipeline wires the brand extraction, account resolution, and
// response composition collaborators into the per-request ask flow.
//
// Every collaborator failure degrades to a fixed textual outcome; nothing in
// the ask path returns an error to the HTTP layer.
package pipeline

import (
	"context"
	"fmt"

	"github.com/sells-group/comercial-bot/internal/account"
	"github.com/sells-group/comercial-bot/internal/config"
	"github.com/sells-group/comercial-bot/pkg/anthropic"
)

// Fixed degraded-path replies. These are contractual fallbacks, not
// placeholder copy.
const (
	replyNoUnderstanding = "No entendí tu mensaje, ¿podés reformularlo?"
	replyImageNoBrand    = "No se detectó ninguna marca en la imagen enviada."
	replyImageUnreadable = "No se pudo interpretar la imagen."
)

// Resolver maps a raw brand string to the best matching account.
type Resolver interface {
	Resolve(ctx context.Context, rawBrand string) (account.Match, bool)
}

// Pipeline executes one lookup per request. It holds no per-request state;
// the model client and the resolver's store pool are safe for concurrent use.
type Pipeline struct {
	ai       anthropic.Client
	aiCfg    config.AnthropicConfig
	accounts Resolver
}

// New creates a pipeline over the given collaborators.
func New(ai anthropic.Client, aiCfg config.AnthropicConfig, accounts Resolver) *Pipeline {
	return &Pipeline{ai: ai, aiCfg: aiCfg, accounts: accounts}
}

// Answer is the outcome of one ask. When Matched is false only Reply (and,
// for image asks, ImageDescription) carry information.
type Answer struct {
	DetectedBrand    string
	TradeName        string
	LegalName        string
	Executive        string
	ImageDescription string
	Reply            string
	Matched          bool
}

// Ask answers a free-text question about who manages a brand's account.
func (p *Pipeline) Ask(ctx context.Context, question string) Answer {
	brand := p.ExtractBrand(ctx, question)
	if brand == "" {
		return Answer{Reply: p.smallTalk(ctx, question)}
	}

	m, ok := p.accounts.Resolve(ctx, brand)
	if !ok {
		return Answer{Reply: fmt.Sprintf("No se encontró un comercial para la marca '%s'", brand)}
	}

	return p.matchedAnswer(ctx, question, m)
}

// AskImage answers from a package or shipping-label photo: the image is
// first described as text, then the description feeds the same
// extract-and-resolve flow. Every branch carries the description.
func (p *Pipeline) AskImage(ctx context.Context, comment, imageBase64 string) Answer {
	desc := p.DescribeImage(ctx, imageBase64)

	brand := p.ExtractBrand(ctx, desc)
	if brand == "" {
		return Answer{Reply: replyImageNoBrand, ImageDescription: desc}
	}

	m, ok := p.accounts.Resolve(ctx, brand)
	if !ok {
		return Answer{
			Reply:            fmt.Sprintf("No se encontró un comercial para la marca detectada: '%s'", brand),
			ImageDescription: desc,
		}
	}

	a := p.matchedAnswer(ctx, comment, m)
	a.ImageDescription = desc
	return a
}

func (p *Pipeline) matchedAnswer(ctx context.Context, question string, m account.Match) Answer {
	return Answer{
		DetectedBrand: m.DetectedBrand,
		TradeName:     m.TradeName,
		LegalName:     m.LegalName,
		Executive:     m.Executive,
		Reply:         p.Compose(ctx, question, m),
		Matched:       true,
	}
}
