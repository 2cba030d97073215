package pipeline

import (
	"context"
	"fmt"

	"agent_newsroom/agent"
	"agent_newsroom/audit"
	"agent_newsroom/generator"
)

// run carries the state of a single pipeline execution.
type run struct {
	id     string
	topic  string
	reg    *agent.Registry
	trail  *audit.Trail
	state  State
	stages generator.Stages

	draft   generator.Draft
	article string
	verdict generator.Verdict
	revised bool
	image   generator.Image
	page    string
}

func (r *run) execute(ctx context.Context) Result {
	r.trail.Emit(audit.EventStart, map[string]string{"topic": r.topic})
	r.trail.RecordAction(CoordinatorName, "Run started", "Topic: "+r.topic)
	r.mark(func(s *generator.Stages) { s.TopicDefined = true })

	steps := []func(context.Context) error{
		r.writeArticle,
		r.reviewArticle,
		r.reviseArticle,
		r.illustrate,
		r.renderPage,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return r.fail(err)
		}
	}
	if err := r.transition(StateCompleted, "Run completed", "All stages finished"); err != nil {
		return r.fail(err)
	}
	res := r.result()
	r.trail.Emit(audit.EventComplete, res)
	return res
}

func (r *run) writeArticle(ctx context.Context) error {
	writer, err := agent.Resolve[agent.Drafter](r.reg, agent.KindDraft)
	if err != nil {
		return err
	}
	if err := r.transition(StateDraftRequested, "Drafting article", "Topic: "+r.topic); err != nil {
		return err
	}
	r.trail.RecordInteraction(CoordinatorName, writer.Name(), "Article request")
	d, err := writer.Draft(ctx, generator.BuildArticleRequest(r.topic))
	if err != nil {
		return fmt.Errorf("draft article: %w", err)
	}
	r.trail.RecordInteraction(writer.Name(), CoordinatorName, "Article drafted")
	r.draft = d
	r.article = d.Markdown
	r.mark(func(s *generator.Stages) { s.ArticleCreated = true })
	return nil
}

func (r *run) reviewArticle(ctx context.Context) error {
	censor, err := agent.Resolve[agent.Reviewer](r.reg, agent.KindReview)
	if err != nil {
		return err
	}
	if err := r.transition(StateReviewed, "Reviewing article", "Quality check"); err != nil {
		return err
	}
	r.trail.RecordInteraction(CoordinatorName, censor.Name(), "Review request")
	v, err := censor.Review(ctx, r.article)
	if err != nil {
		return fmt.Errorf("review article: %w", err)
	}
	r.trail.RecordInteraction(censor.Name(), CoordinatorName, v.Detail)
	r.verdict = v
	r.mark(func(s *generator.Stages) { s.ArticleReviewed = true })
	return nil
}

// reviseArticle applies at most one revision pass. The revised text is final; it is
// not reviewed again.
func (r *run) reviseArticle(ctx context.Context) error {
	if !r.verdict.NeedsRevision() {
		return nil
	}
	writer, err := agent.Resolve[agent.Drafter](r.reg, agent.KindDraft)
	if err != nil {
		return err
	}
	if err := r.transition(StateRevisionRequested, "Revision requested", "Addressing the editor's remarks"); err != nil {
		return err
	}
	r.trail.RecordInteraction(CoordinatorName, writer.Name(), "Revision request")
	d, err := writer.Draft(ctx, generator.BuildRevisionRequest(r.article, r.verdict.Detail))
	if err != nil {
		return fmt.Errorf("revise article: %w", err)
	}
	r.trail.RecordInteraction(writer.Name(), CoordinatorName, "Revised article")
	r.draft = d
	r.article = d.Markdown
	r.revised = true
	return r.transition(StateRevised, "Article revised", "Revision accepted as final")
}

func (r *run) illustrate(ctx context.Context) error {
	writer, err := agent.Resolve[agent.Drafter](r.reg, agent.KindDraft)
	if err != nil {
		return err
	}
	if err := r.transition(StateImagePromptRequested, "Creating image prompt", "Topic: "+r.topic); err != nil {
		return err
	}
	r.trail.RecordInteraction(CoordinatorName, writer.Name(), "Image prompt request")
	prompt, err := writer.HandleRequest(ctx, generator.BuildImagePromptRequest(r.topic))
	if err != nil {
		return fmt.Errorf("create image prompt: %w", err)
	}
	r.trail.RecordInteraction(writer.Name(), CoordinatorName, prompt)
	r.mark(func(s *generator.Stages) { s.ImagePromptCreated = true })

	artist, err := agent.Resolve[agent.Illustrator](r.reg, agent.KindIllustrate)
	if err != nil {
		return err
	}
	if err := r.transition(StateIllustrated, "Generating image", "Prompt ready"); err != nil {
		return err
	}
	r.trail.RecordInteraction(CoordinatorName, artist.Name(), "Image request")
	img, err := artist.Illustrate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("illustrate: %w", err)
	}
	if img.Produced {
		r.trail.RecordInteraction(artist.Name(), CoordinatorName, "Image created: "+img.Path)
	} else {
		r.trail.RecordInteraction(artist.Name(), CoordinatorName, "No image produced")
	}
	r.image = img
	r.mark(func(s *generator.Stages) { s.ImageGenerated = true })
	return nil
}

func (r *run) renderPage(ctx context.Context) error {
	layout, err := agent.Resolve[agent.Renderer](r.reg, agent.KindRender)
	if err != nil {
		return err
	}
	if err := r.transition(StateRendered, "Rendering page", "Article, image and review ready"); err != nil {
		return err
	}
	bundle := generator.PageBundle{
		Title:     r.title(),
		Content:   r.article,
		ImagePath: r.image.Path,
		Review:    r.verdict.Detail,
		Stages:    r.stages,
		Logs:      r.trail.Snapshot(),
	}
	r.trail.RecordInteraction(CoordinatorName, layout.Name(), "Page request")
	page, err := layout.Render(ctx, bundle)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	r.trail.RecordInteraction(layout.Name(), CoordinatorName, "Page created: "+page)
	r.page = page
	r.mark(func(s *generator.Stages) { s.PageCreated = true })
	return nil
}

// transition moves to next and records the step.
func (r *run) transition(next State, action, details string) error {
	if err := ValidateTransition(r.state, next); err != nil {
		return err
	}
	r.state = next
	r.trail.RecordAction(CoordinatorName, action, details)
	return nil
}

// mark sets progress flags. Flags are never cleared.
func (r *run) mark(set func(*generator.Stages)) {
	set(&r.stages)
	r.trail.Emit(audit.EventProgress, r.stages)
}

func (r *run) fail(cause error) Result {
	if !r.state.Terminal() {
		r.state = StateFailed
	}
	r.trail.RecordAction(CoordinatorName, "Error", "Error: "+cause.Error())
	res := Result{
		RunID:  r.id,
		Topic:  r.topic,
		Status: StatusFailed,
		State:  r.state,
		Error:  "article generation failed: " + cause.Error(),
		Stages: r.stages,
		Logs:   r.trail.Snapshot(),
	}
	r.trail.Emit(audit.EventError, map[string]string{"error": res.Error})
	return res
}

func (r *run) title() string {
	if r.draft.Title != "" {
		return r.draft.Title
	}
	return r.topic
}

func (r *run) result() Result {
	return Result{
		RunID:         r.id,
		Topic:         r.topic,
		Status:        StatusCompleted,
		State:         r.state,
		Title:         r.title(),
		Article:       r.article,
		Review:        r.verdict.Detail,
		Decision:      r.verdict.Decision,
		Revised:       r.revised,
		ImagePath:     r.image.Path,
		ImageProduced: r.image.Produced,
		PagePath:      r.page,
		Stages:        r.stages,
		Logs:          r.trail.Snapshot(),
	}
}
