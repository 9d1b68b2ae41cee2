package generator

import (
	"regexp"
	"strings"
)

var (
	codeFences  = regexp.MustCompile("(?s)```.*?```")
	promptTags  = regexp.MustCompile(`(?is)\[PROMPT:.*?\]`)
	// Filler phrases only count when they open the line.
	fillerLines = regexp.MustCompile(`(?im)^[ \t*_>]*(?:para gerar|copie o texto|aqui está|segue o conteúdo|here is|here's|copy the text|to generate).*$`)
	extraBlank  = regexp.MustCompile(`\n{3,}`)
)

// CleanText strips fences, prompt tags and instructional filler lines from a reply.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = codeFences.ReplaceAllString(text, "")
	text = promptTags.ReplaceAllString(text, "")
	text = fillerLines.ReplaceAllString(text, "")
	text = extraBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
