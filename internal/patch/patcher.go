// Package patch rewrites the data-bearing fragments of a hand-authored
// HTML document in place. Fragments are identified by stable IDs, either
// as marker-comment blocks (<!-- lb:ID --> … <!-- /lb:ID -->) or as
// elements carrying id="ID". Everything outside a located fragment is
// preserved byte for byte, and applying the same rules to the patcher's
// own output is a no-op.
package patch

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Kind selects how a rule locates its fragment.
type Kind int

const (
	// KindBlock fragments sit between <!-- lb:ID --> and <!-- /lb:ID -->
	// marker comments.
	KindBlock Kind = iota
	// KindElement fragments are the interior of the element whose id
	// attribute equals the rule ID.
	KindElement
)

// Rule is one idempotent anchored rewrite. Rules are applied in slice
// order; a later rule targeting the same region supersedes an earlier
// one.
type Rule struct {
	ID     string
	Kind   Kind
	Render func() string

	// InsertAfter, when set, marks where the fragment should first
	// appear if the document does not contain it yet. The inserted
	// block carries its own anchors, so the next run locates it instead
	// of inserting again.
	InsertAfter *regexp.Regexp
}

// Result summarizes one Apply pass.
type Result struct {
	Applied  []string
	Inserted []string
	Skipped  []string
}

// Apply runs the rule sequence over the document and returns the
// rewritten text. Rules whose anchors are absent are skipped; no rule
// failure aborts the pass.
func Apply(document string, rules []Rule, logger *slog.Logger) (string, Result) {
	var res Result
	for _, rule := range rules {
		if start, end, ok := rule.locate(document); ok {
			document = document[:start] + rule.Render() + document[end:]
			res.Applied = append(res.Applied, rule.ID)
			continue
		}

		if rule.InsertAfter != nil {
			if anchor := rule.InsertAfter.FindStringIndex(document); anchor != nil {
				block := "\n" + rule.wrap(rule.Render())
				document = document[:anchor[1]] + block + document[anchor[1]:]
				res.Inserted = append(res.Inserted, rule.ID)
				continue
			}
		}

		logger.Debug("patch rule skipped, anchor not found", "rule", rule.ID)
		res.Skipped = append(res.Skipped, rule.ID)
	}
	return document, res
}

// locate returns the interior span [start, end) of the rule's fragment,
// or ok = false when the document does not contain the anchor.
func (r Rule) locate(document string) (start, end int, ok bool) {
	if r.Kind == KindElement {
		return locateElement(document, r.ID)
	}
	opening, closing := openMarker(r.ID), closeMarker(r.ID)
	i := strings.Index(document, opening)
	if i < 0 {
		return 0, 0, false
	}
	start = i + len(opening)
	j := strings.Index(document[start:], closing)
	if j < 0 {
		return 0, 0, false
	}
	return start, start + j, true
}

// locateElement finds the element carrying id="ID" and returns its
// interior span. The closing tag is found by walking same-name tags with
// a depth counter, so placeholders holding nested markup replace cleanly.
func locateElement(document, id string) (int, int, bool) {
	openRe := regexp.MustCompile(
		`<([a-zA-Z][\w-]*)\b[^>]*\bid="` + regexp.QuoteMeta(id) + `"[^>]*>`)
	m := openRe.FindStringSubmatchIndex(document)
	if m == nil {
		return 0, 0, false
	}
	tag := document[m[2]:m[3]]
	start := m[1]

	tagRe := regexp.MustCompile(`(?s)<(/?)` + regexp.QuoteMeta(tag) + `\b[^>]*>`)
	depth := 1
	for _, t := range tagRe.FindAllStringSubmatchIndex(document[start:], -1) {
		token := document[start+t[0] : start+t[1]]
		if t[3] > t[2] {
			depth--
			if depth == 0 {
				return start, start + t[0], true
			}
			continue
		}
		if !strings.HasSuffix(token, "/>") {
			depth++
		}
	}
	return 0, 0, false
}

// wrap produces the full fragment, anchors included, for first-time
// insertion.
func (r Rule) wrap(content string) string {
	if r.Kind == KindElement {
		return fmt.Sprintf(`<div id=%q>%s</div>`, r.ID, content)
	}
	return openMarker(r.ID) + content + closeMarker(r.ID)
}

func openMarker(id string) string  { return "<!-- lb:" + id + " -->" }
func closeMarker(id string) string { return "<!-- /lb:" + id + " -->" }
