// Package render turns raw post text into markup that is safe to
// interpolate into a page.
package render

import (
	"html"
	"html/template"
	"regexp"
)

var linkPattern = regexp.MustCompile(`https?://\S+`)

// Render HTML-escapes the whole input first, then wraps every bare URL
// in an anchor that opens in a new tab. Apply it to stored raw text
// only: rendering already-rendered markup wraps its URLs a second time.
func Render(raw string) template.HTML {
	escaped := html.EscapeString(raw)
	linked := linkPattern.ReplaceAllString(escaped,
		`<a href="$0" target="_blank" rel="noopener noreferrer">$0</a>`)
	return template.HTML(linked)
}
