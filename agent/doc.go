// Package agent defines the capability contract shared by every pipeline worker, the
// conversation history each worker keeps as its working memory, and the registry the
// orchestrator resolves workers from.
//
// Capabilities come in closed variants, one per stage: Drafter, Reviewer, Illustrator and
// Renderer. The orchestrator resolves each variant with Resolve, so a missing or mistyped
// capability is reported as a registry error before the stage starts.
package agent
