package pipeline

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/comercial-bot/pkg/anthropic"
)

// DescribeImage converts a base64-encoded photo into a textual description
// of visible brands, labels, and printed text. A bad payload or a failed
// model call returns the fixed unreadable-image text so the rest of the
// pipeline proceeds normally.
func (p *Pipeline) DescribeImage(ctx context.Context, imageBase64 string) string {
	payload := stripDataURL(imageBase64)
	mediaType, ok := sniffImageMediaType(payload)
	if !ok {
		zap.L().Warn("describe: image payload is not a decodable image")
		return replyImageUnreadable
	}

	temp := 0.3
	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       p.aiCfg.VisionModel,
		MaxTokens:   800,
		System:      describeSystemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{
				Role:    "user",
				Content: describeUserPrompt,
				Image:   &anthropic.Image{MediaType: mediaType, Base64: payload},
			},
		},
	})
	if err != nil {
		zap.L().Error("describe: vision call failed", zap.Error(err))
		return replyImageUnreadable
	}
	resp.Usage.LogCost(p.aiCfg.VisionModel, "describe")

	desc := resp.Text()
	if desc == "" {
		return replyImageUnreadable
	}
	zap.L().Info("describe: image described", zap.Int("description_len", len(desc)))
	return desc
}

// stripDataURL tolerates data-URL payloads by removing the prefix; the API
// wants the bare base64 body.
func stripDataURL(imageBase64 string) string {
	if idx := strings.Index(imageBase64, ";base64,"); idx >= 0 {
		return imageBase64[idx+len(";base64,"):]
	}
	return imageBase64
}

// sniffImageMediaType decodes the payload's first bytes and detects the
// image format. The API requires an explicit media type per image block.
func sniffImageMediaType(imageBase64 string) (string, bool) {
	if imageBase64 == "" {
		return "", false
	}

	head := stripDataURL(imageBase64)
	if len(head) > 512 {
		head = head[:512]
	}
	data, err := base64.StdEncoding.DecodeString(head[:len(head)-len(head)%4])
	if err != nil || len(data) == 0 {
		return "", false
	}

	mediaType := http.DetectContentType(data)
	switch mediaType {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return mediaType, true
	default:
		return "", false
	}
}
