package pipeline

import (
	"agent_newsroom/audit"
	"agent_newsroom/generator"
)

// Status is the terminal outcome of a run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Result is the terminal artifact of one run. On failure only the identity, progress,
// error message and audit logs are set.
type Result struct {
	RunID         string             `json:"runId"`
	Topic         string             `json:"topic"`
	Status        Status             `json:"status"`
	State         State              `json:"state"`
	Error         string             `json:"error,omitempty"`
	Title         string             `json:"title,omitempty"`
	Article       string             `json:"article"`
	Review        string             `json:"censorReview"`
	Decision      generator.Decision `json:"decision,omitempty"`
	Revised       bool               `json:"revised"`
	ImagePath     string             `json:"imagePath"`
	ImageProduced bool               `json:"imageProduced"`
	PagePath      string             `json:"htmlPath"`
	Stages        generator.Stages   `json:"completedStages"`
	Logs          audit.Log          `json:"logs"`
}

func (r Result) Failed() bool { return r.Status == StatusFailed }
