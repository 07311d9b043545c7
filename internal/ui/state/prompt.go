// Package state holds UI state that is independent of Bubble Tea.
package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// PromptMode selects what submitting the patch prompt does.
type PromptMode int

const (
	PromptLoad PromptMode = iota
	PromptSave
)

func (m PromptMode) String() string {
	if m == PromptSave {
		return "save"
	}
	return "load"
}

// Prompt tracks the patch name prompt: the stored names, the query and the
// names matching it.
type Prompt struct {
	Mode    PromptMode
	Names   []string
	Query   string
	Matches []string
	Cursor  int
}

// NewPrompt creates a prompt over the stored patch names.
func NewPrompt(mode PromptMode, names []string) *Prompt {
	p := &Prompt{Mode: mode, Names: append([]string(nil), names...)}
	p.SetQuery("")
	return p
}

// SetQuery updates the query, the matches and moves the cursor to the best
// match.
func (p *Prompt) SetQuery(query string) {
	p.Query = query
	p.Matches = FilterNames(p.Names, query)
	p.Cursor = BestMatchIndex(p.Matches, query)
}

// MoveCursor moves the match cursor by delta, clamped to the matches.
func (p *Prompt) MoveCursor(delta int) bool {
	if len(p.Matches) == 0 {
		p.Cursor = -1
		return false
	}
	old := p.Cursor
	next := p.Cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(p.Matches) {
		next = len(p.Matches) - 1
	}
	p.Cursor = next
	return p.Cursor != old
}

// Selected returns the highlighted match, or "" when nothing matches.
func (p *Prompt) Selected() string {
	if p.Cursor < 0 || p.Cursor >= len(p.Matches) {
		return ""
	}
	return p.Matches[p.Cursor]
}

// Result is the name a submit acts on: the typed query, or the highlighted
// match when nothing was typed.
func (p *Prompt) Result() string {
	if name := strings.TrimSpace(p.Query); name != "" {
		return name
	}
	return p.Selected()
}

// FilterNames returns the names matching query, fuzzy first and falling back
// to substring matches.
func FilterNames(names []string, query string) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return append([]string(nil), names...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]string, 0, len(matches))
		for idx, name := range names {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, name)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// BestMatchIndex returns the index of the best name for query, or -1 when
// names is empty.
func BestMatchIndex(names []string, query string) int {
	if len(names) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return i
		}
	}
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return i
		}
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
