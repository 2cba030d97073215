package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIImages implements ImageClient with the images endpoint, asking for base64 payloads
// so the caller owns storage.
type OpenAIImages struct {
	Model string
	Size  string
	Opts  []option.RequestOption
}

func NewOpenAIImagesFromConfig(cfg *ImageSettings) (*OpenAIImages, error) {
	if cfg == nil {
		return nil, errors.New("image config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("image model is required")
	}
	return &OpenAIImages{Model: cfg.Model, Size: cfg.Size, Opts: requestOptions(cfg.APIKey, cfg.BaseURL)}, nil
}

func (o *OpenAIImages) Generate(ctx context.Context, prompt string) ([]byte, error) {
	client := openai.NewClient(o.Opts...)

	params := openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(o.Model),
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	}
	if o.Size != "" {
		params.Size = openai.ImageGenerateParamsSize(o.Size)
	}
	resp, err := client.Images.Generate(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}
