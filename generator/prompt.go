package generator

import (
	"fmt"
	"strings"
)

// Prompt 表示发送给 LLM 的消息集合。
type Prompt struct {
	System  string
	User    string
	History []Message
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptFromHistory splits a conversation into the leading system instruction, the
// trailing user turn and everything in between.
func PromptFromHistory(history []Message) Prompt {
	var p Prompt
	msgs := history
	if len(msgs) > 0 && msgs[0].Role == RoleSystem {
		p.System = msgs[0].Content
		msgs = msgs[1:]
	}
	if n := len(msgs); n > 0 && msgs[n-1].Role == RoleUser {
		p.User = msgs[n-1].Content
		msgs = msgs[:n-1]
	}
	if len(msgs) > 0 {
		p.History = append([]Message(nil), msgs...)
	}
	return p
}

// System instructions, one per capability.
const (
	WriterInstruction = `You are a professional writer who produces engaging, informative articles.
Your writing is clear and concise, well structured, journalistic in tone and factually grounded.
For every article: write a compelling title as a level-one Markdown heading, an engaging
introduction, a body with relevant detail and a meaningful conclusion. Output Markdown only.`

	CensorInstruction = `You are an editor responsible for the quality control of articles.
Check articles against journalistic standards, ethics, factual accuracy and readability.
When you find problems, describe them precisely, propose concrete improvements and state the
required changes. An article may be published only after your approval.`

	ArtistInstruction = `You are an illustrator who creates accurate, visually appealing images that
reflect the given topic, have high artistic quality and complement a journalistic text.`

	LayoutInstruction = `You are a layout designer who produces readable, responsive HTML pages for
articles, including their illustration, the editorial review and the processing status.`

	AssistantInstruction = `You are a general-purpose assistant. Help with any request and answer in detail.`

	CoordinatorInstruction = `You are an editor-in-chief coordinating a writer, an editor, an
illustrator and a layout designer to turn a topic into a published, illustrated article.`
)

const (
	reviewMarkerLine      = "Review the following article thoroughly."
	imagePromptMarkerLine = "Write an image generation prompt"
)

// BuildArticleRequest 生成首稿提示词。
func BuildArticleRequest(topic string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Write a detailed article on the topic: %q.\n", topic))
	sb.WriteString("The article must be:\n")
	sb.WriteString("1. Informative and well structured\n")
	sb.WriteString("2. Written in a professional voice\n")
	sb.WriteString("3. Rich in interesting facts and examples\n")
	sb.WriteString("4. Engaging to read\n")
	return sb.String()
}

// BuildReviewRequest asks the editor for a verdict. marker is the word the editor uses
// when the article has to be revised.
func BuildReviewRequest(article, marker string) string {
	var sb strings.Builder
	sb.WriteString(reviewMarkerLine)
	sb.WriteString("\n\nArticle:\n")
	sb.WriteString(article)
	sb.WriteString("\n\nCheck:\n")
	sb.WriteString("1. Compliance with journalistic standards\n")
	sb.WriteString("2. Ethics of the content\n")
	sb.WriteString("3. Factual accuracy\n")
	sb.WriteString("4. Quality of writing\n")
	sb.WriteString("5. Relevance to the topic\n\n")
	sb.WriteString("Provide an overall assessment, concrete remarks and recommendations.\n")
	sb.WriteString(fmt.Sprintf("Finish with a final decision: approve, reject or %s.\n", marker))
	return sb.String()
}

// BuildRevisionRequest 生成修订提示词。
func BuildRevisionRequest(article, review string) string {
	var sb strings.Builder
	sb.WriteString("Improve the following article according to the editor's remarks.\n\n")
	sb.WriteString("Article:\n")
	sb.WriteString(article)
	sb.WriteString("\n\nEditor's remarks:\n")
	sb.WriteString(review)
	sb.WriteString("\n\nMake the necessary improvements while keeping the main idea and structure.\n")
	return sb.String()
}

// BuildImagePromptRequest asks for a prompt for the illustration. It is derived from the
// topic alone.
func BuildImagePromptRequest(topic string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s for the topic: %q.\n", imagePromptMarkerLine, topic))
	sb.WriteString("Describe a vivid, concrete image that best illustrates the topic. ")
	sb.WriteString("Focus on the key visual elements, style, mood and composition. ")
	sb.WriteString("Keep it detailed but concise and output only the prompt.\n")
	return sb.String()
}
