package agent

import (
	"context"
	"errors"
	"fmt"

	"agent_newsroom/generator"
)

// ImageSaver persists generated images.
type ImageSaver interface {
	SaveImage(data []byte) (string, error)
}

// Artist generates the article illustration.
type Artist struct {
	base
	images generator.ImageClient
	saver  ImageSaver
}

func NewArtist(images generator.ImageClient, saver ImageSaver) (*Artist, error) {
	if images == nil {
		return nil, errors.New("image client is required")
	}
	if saver == nil {
		return nil, errors.New("image saver is required")
	}
	return newArtist(images, saver), nil
}

func newArtist(images generator.ImageClient, saver ImageSaver) *Artist {
	return &Artist{
		base: newBase(KindIllustrate, "Artist", generator.ArtistInstruction,
			"image", "picture", "draw", "illustration", "illustrate", "visualize"),
		images: images,
		saver:  saver,
	}
}

// HandleRequest returns the stored image path, or "" when no image was produced.
func (a *Artist) HandleRequest(ctx context.Context, prompt string) (string, error) {
	img, err := a.Illustrate(ctx, prompt)
	return img.Path, err
}

func (a *Artist) GetResponse(ctx context.Context) (string, error) {
	img, err := a.illustratePending(ctx)
	if err != nil {
		return "", err
	}
	return describeImage(img), nil
}

func (a *Artist) Illustrate(ctx context.Context, prompt string) (generator.Image, error) {
	a.AddUserMessage(prompt)
	return a.illustratePending(ctx)
}

func (a *Artist) illustratePending(ctx context.Context) (generator.Image, error) {
	var img generator.Image
	_, err := a.respond(ctx, func(ctx context.Context, prompt string) (string, error) {
		var err error
		if img, err = a.generate(ctx, prompt); err != nil {
			return "", err
		}
		return describeImage(img), nil
	})
	if err != nil {
		return generator.Image{}, err
	}
	return img, nil
}

func (a *Artist) generate(ctx context.Context, prompt string) (generator.Image, error) {
	data, err := a.images.Generate(ctx, prompt)
	if err != nil {
		return generator.Image{}, fmt.Errorf("generate image: %w", err)
	}
	if len(data) == 0 {
		return generator.Image{}, nil
	}
	path, err := a.saver.SaveImage(data)
	if err != nil {
		return generator.Image{}, fmt.Errorf("save image: %w", err)
	}
	return generator.Image{Path: path, Produced: true}, nil
}

func (a *Artist) Clone() Capability { return newArtist(a.images, a.saver) }

func describeImage(img generator.Image) string {
	if !img.Produced {
		return "no image produced"
	}
	return "image saved: " + img.Path
}
