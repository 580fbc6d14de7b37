// Package render turns transcript messages into terminal-safe display rows.
package render

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags is the inline markup a reply may carry. Everything else is
// stripped, attributes included.
var AllowedTags = []string{
	"b", "strong", "i", "em", "code", "pre", "br", "p",
	"ul", "ol", "li", "blockquote", "del", "s",
}

// markupToMarkdown maps the sanitized tags onto their markdown equivalents.
// Longer patterns come first so the replacer prefers them.
var markupToMarkdown = strings.NewReplacer(
	"<pre><code>", "\n```\n",
	"</code></pre>", "\n```\n",
	"<pre>", "\n```\n",
	"</pre>", "\n```\n",
	"<br/>", "\n",
	"<br>", "\n",
	"<p>", "",
	"</p>", "\n\n",
	"<ul>", "\n",
	"</ul>", "\n",
	"<ol>", "\n",
	"</ol>", "\n",
	"<li>", "- ",
	"</li>", "\n",
	"<blockquote>", "\n> ",
	"</blockquote>", "\n",
	"<strong>", "**",
	"</strong>", "**",
	"<b>", "**",
	"</b>", "**",
	"<em>", "_",
	"</em>", "_",
	"<i>", "_",
	"</i>", "_",
	"<code>", "`",
	"</code>", "`",
	"<del>", "~~",
	"</del>", "~~",
	"<s>", "~~",
	"</s>", "~~",
)

// Sanitizer is the trust boundary for remote content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer with the AllowedTags policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.SkipElementsContent("script", "style")

	return &Sanitizer{policy: p}
}

// Sanitize returns content as markdown with disallowed markup removed and
// terminal control sequences stripped.
func (s *Sanitizer) Sanitize(content string) string {
	if !strings.ContainsAny(content, "<>&") {
		return StripControls(content)
	}

	out := s.policy.Sanitize(content)
	out = markupToMarkdown.Replace(out)
	out = html.UnescapeString(out)

	return StripControls(out)
}

// StripControls removes ANSI escape sequences and control characters other
// than newline and tab.
func StripControls(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = ansi.Strip(s)

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
