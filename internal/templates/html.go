package templates

import (
	"regexp"
	"strings"
)

var (
	boldPattern    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	bulletPattern  = regexp.MustCompile(`(?m)^[*-] (.*)$`)
	listRunPattern = regexp.MustCompile(`(<li>.*?</li>(?:\s*<li>.*?</li>)*)`)
	linkPattern    = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// ToHTML converts the small markup subset templates may use into HTML:
// **bold**, "* " / "- " bullet lines (consecutive items share one <ul>),
// [text](url) links, and newlines to <br>. Bold and list conversion must
// run before the line-break pass, which blindly replaces every newline.
func ToHTML(content string) string {
	content = boldPattern.ReplaceAllString(content, "<b>${1}</b>")
	content = bulletPattern.ReplaceAllString(content, "<li>${1}</li>")
	content = listRunPattern.ReplaceAllString(content, "<ul>${1}</ul>")
	content = linkPattern.ReplaceAllString(content, `<a href="${2}">${1}</a>`)
	content = strings.ReplaceAll(content, "\n", "<br>")
	return content
}
