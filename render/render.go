// Package render turns a page bundle into a standalone HTML document.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"agent_newsroom/audit"
	"agent_newsroom/generator"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown converts GitHub-flavoured Markdown to HTML. Raw HTML in the source is dropped.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

type stageRow struct {
	Label string
	Done  bool
}

type pageData struct {
	Title     string
	ImagePath string
	Content   template.HTML
	Review    template.HTML
	Stages    []stageRow
	Logs      audit.Log
}

// Page renders the article page.
func Page(b generator.PageBundle) ([]byte, error) {
	content, err := Markdown(b.Content)
	if err != nil {
		return nil, fmt.Errorf("render article: %w", err)
	}
	review, err := Markdown(b.Review)
	if err != nil {
		return nil, fmt.Errorf("render review: %w", err)
	}
	data := pageData{
		Title:     b.Title,
		ImagePath: b.ImagePath,
		Content:   content,
		Review:    review,
		Stages:    stageRows(b.Stages),
		Logs:      b.Logs,
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

func stageRows(s generator.Stages) []stageRow {
	return []stageRow{
		{"Topic defined", s.TopicDefined},
		{"Article created", s.ArticleCreated},
		{"Article reviewed", s.ArticleReviewed},
		{"Image prompt created", s.ImagePromptCreated},
		{"Image generated", s.ImageGenerated},
		{"Page created", s.PageCreated},
	}
}
