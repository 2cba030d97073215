package agent

import "fmt"

// Kind identifies a capability in the registry.
type Kind string

const (
	KindDraft       Kind = "draft"
	KindIllustrate  Kind = "illustrate"
	KindReview      Kind = "review"
	KindRender      Kind = "render"
	KindOrchestrate Kind = "orchestrate"
	KindGeneral     Kind = "general"
)

var allKinds = []Kind{KindDraft, KindIllustrate, KindReview, KindRender, KindOrchestrate, KindGeneral}

func ParseKind(s string) (Kind, error) {
	for _, k := range allKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown capability kind %q", s)
}

func (k Kind) Valid() bool {
	_, err := ParseKind(string(k))
	return err == nil
}
