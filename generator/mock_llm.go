package generator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	switch {
	case strings.Contains(prompt.User, reviewMarkerLine):
		sb.WriteString("Overall the article is clear and well structured.\n\n")
		sb.WriteString("Final decision: approve.")
	case strings.Contains(prompt.User, imagePromptMarkerLine):
		sb.WriteString("A wide editorial illustration, soft daylight, muted palette: ")
		sb.WriteString(firstLine(prompt.User))
	default:
		sb.WriteString("# Generated sample title\n\n")
		sb.WriteString("An automatically generated summary of the main points.\n\n")
		sb.WriteString("## Body\n\n")
		sb.WriteString("Content generated from the request:\n\n")
		sb.WriteString("```\n")
		sb.WriteString(prompt.User)
		sb.WriteString("\n```\n")
	}
	return sb.String(), nil
}

// MockImages returns a small solid PNG so the full pipeline can run offline.
type MockImages struct{}

func (MockImages) Generate(_ context.Context, _ string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	fill := color.RGBA{R: 0x3a, G: 0x6e, B: 0xa5, A: 0xff}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NoImages is used when the configured provider has no image endpoint. Every run
// completes without an illustration.
type NoImages struct{}

func (NoImages) Generate(context.Context, string) ([]byte, error) { return nil, nil }

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
