package generator

import "agent_newsroom/audit"

// Draft is a model-produced article in Markdown.
type Draft struct {
	Title    string `json:"title"`
	Digest   string `json:"digest"`
	Markdown string `json:"markdown"`
}

// Image is the outcome of the illustration stage. Produced is false when the model
// returned no image; Path is empty in that case.
type Image struct {
	Path     string `json:"path"`
	Produced bool   `json:"produced"`
}

// Stages is the progress snapshot of one run. Flags only ever go from false to true.
type Stages struct {
	TopicDefined       bool `json:"topicDefined"`
	ArticleCreated     bool `json:"articleCreated"`
	ImagePromptCreated bool `json:"imagePromptCreated"`
	ImageGenerated     bool `json:"imageGenerated"`
	ArticleReviewed    bool `json:"articleReviewed"`
	PageCreated        bool `json:"pageCreated"`
}

// PageBundle is everything the renderer needs to lay out one article page.
type PageBundle struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImagePath string    `json:"imagePath"`
	Review    string    `json:"censorReview"`
	Stages    Stages    `json:"completedStages"`
	Logs      audit.Log `json:"logs"`
}
