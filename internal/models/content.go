package models

// ContentKind discriminates the two public content namespaces that share the
// single top-level slug route.
type ContentKind string

const (
	ContentKindEpisode ContentKind = "episode"
	ContentKindArticle ContentKind = "article"
)

// ContentRef is the typed result of resolving a slug. Exactly one of Episode
// or Article is set, matching Kind. Episodes win over articles when a slug
// exists in both collections.
type ContentRef struct {
	Kind    ContentKind `json:"kind"`
	Episode *Episode    `json:"episode,omitempty"`
	Article *Article    `json:"article,omitempty"`
}
