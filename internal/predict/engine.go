// Package predict computes inline completions for a tag draft.
//
// The engine is stateless per call: a Prediction is a pure function of the
// current draft and the suggestion pool, recomputed on every keystroke.
package predict

import (
	"sort"
	"strings"

	"github.com/oakwood-commons/pilltag/internal/tagtext"
)

// Source supplies the suggestions the engine matches against.
type Source interface {
	Suggestions() []string
}

// Prediction is the completion offered for a draft.
type Prediction struct {
	// Active is true whenever some suggestion matched, even if Ghost is empty.
	Active bool
	// Match is the chosen suggestion with its stored casing.
	Match string
	// Ghost is the part of Match rendered after the draft.
	Ghost string
}

// None is the empty prediction.
var None = Prediction{}

// Engine wraps a Source and applies the prefix filter and tie-break ordering.
type Engine struct {
	source Source
}

// NewEngine creates an engine over source.
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// Candidates returns every suggestion whose lower-cased form starts with the
// lower-cased trimmed draft, in ascending code-point order of the stored text.
// An empty draft or pool yields nil.
func (e *Engine) Candidates(draft string) []string {
	if e == nil || e.source == nil {
		return nil
	}
	prefix := strings.ToLower(strings.TrimSpace(draft))
	all := e.source.Suggestions()
	if prefix == "" || len(all) == 0 {
		return nil
	}
	var out []string
	for _, s := range all {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			out = append(out, s)
		}
	}
	// Stored casing decides ties: "Apricot" sorts before "apple".
	sort.Strings(out)
	return out
}

// Predict picks the first candidate and cuts the ghost text at the draft's
// character length. Casing differences between draft and match are left alone;
// Accept merges the literal draft with the ghost verbatim.
func (e *Engine) Predict(draft string) Prediction {
	matches := e.Candidates(draft)
	if len(matches) == 0 {
		return None
	}
	best := matches[0]
	return Prediction{
		Active: true,
		Match:  best,
		Ghost:  tagtext.SuffixFrom(best, tagtext.RuneLen(draft)),
	}
}

// Accept merges a draft with the prediction's ghost text.
func Accept(draft string, p Prediction) string {
	if !p.Active {
		return draft
	}
	return draft + p.Ghost
}
