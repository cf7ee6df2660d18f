package sentiment

import (
	"html"
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	linkPattern    = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern = regexp.MustCompile(`(^|\s)@\w+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText parses markdown and keeps the literal text of the
// document, so markup disappears while the words survive. A "<" in user text
// is escaped before parsing and never opens an HTML span.
func ConvertMarkdownToText(input string) string {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.NoIntraEmphasis))
	root := md.Parse([]byte(strings.ReplaceAll(input, "<", `\<`)))

	var sb strings.Builder
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.HTMLSpan:
			if entering {
				sb.Write(node.Literal)
			}
		case blackfriday.CodeBlock:
			if entering {
				sb.Write(node.Literal)
				sb.WriteByte(' ')
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			if entering {
				sb.WriteByte(' ')
			}
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item, blackfriday.TableCell:
			if !entering {
				sb.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})

	return strings.Join(strings.Fields(html.UnescapeString(sb.String())), " ")
}

// Normalize cleans raw user text before it is classified: links and markdown
// are stripped, user handles become "@user" and whitespace is collapsed.
// It accepts any string.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = ConvertMarkdownToText(RemoveLinks(text))
	text = mentionPattern.ReplaceAllString(text, "$1@user")
	return strings.Join(strings.Fields(RemoveLinks(text)), " ")
}
