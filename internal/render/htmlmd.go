package render

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// mdEscaper backslash-escapes characters markdown would otherwise treat as
// syntax, so reply text shows literally.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"<", `\<`,
	"~", `\~`,
)

// HTMLToMarkdown converts an HTML fragment into markdown. It is meant for
// output of Sanitize; unknown elements contribute only their text.
func HTMLToMarkdown(fragment string) string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return fragment
	}

	c := &converter{}
	for _, n := range nodes {
		c.node(n)
	}

	out := blankRuns.ReplaceAllString(c.buf.String(), "\n\n")
	return strings.TrimSpace(out)
}

type listState struct {
	ordered bool
	index   int
}

type converter struct {
	buf    strings.Builder
	lists  []listState
	inPre  bool
	inCode bool
}

func (c *converter) children(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.node(child)
	}
}

// inner renders n's children into a separate buffer.
func (c *converter) inner(n *html.Node) string {
	sub := &converter{lists: c.lists, inPre: c.inPre, inCode: c.inCode}
	sub.children(n)
	return sub.buf.String()
}

func (c *converter) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		// entities like &#27; decode here, after Sanitize has run
		text := StripControl(n.Data)
		if !c.inPre && !c.inCode {
			text = mdEscaper.Replace(text)
		}
		c.buf.WriteString(text)
		return
	case html.ElementNode:
	default:
		c.children(n)
		return
	}

	switch n.DataAtom {
	case atom.Br:
		c.buf.WriteString("  \n")

	case atom.B, atom.Strong:
		c.wrap(n, "**")

	case atom.I, atom.Em:
		c.wrap(n, "_")

	case atom.S, atom.Del:
		c.wrap(n, "~~")

	case atom.Code:
		if c.inPre {
			c.children(n)
			return
		}
		prev := c.inCode
		c.inCode = true
		c.wrap(n, "`")
		c.inCode = prev

	case atom.Pre:
		sub := &converter{inPre: true}
		sub.children(n)
		c.buf.WriteString("\n\n```\n")
		c.buf.WriteString(strings.Trim(sub.buf.String(), "\n"))
		c.buf.WriteString("\n```\n\n")

	case atom.P, atom.Div:
		c.buf.WriteString("\n\n")
		c.children(n)
		c.buf.WriteString("\n\n")

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		c.buf.WriteString("\n\n")
		c.buf.WriteString(strings.Repeat("#", level))
		c.buf.WriteString(" ")
		c.buf.WriteString(strings.TrimSpace(c.inner(n)))
		c.buf.WriteString("\n\n")

	case atom.Ul, atom.Ol:
		c.lists = append(c.lists, listState{ordered: n.DataAtom == atom.Ol})
		c.children(n)
		c.lists = c.lists[:len(c.lists)-1]
		c.buf.WriteString("\n\n")

	case atom.Li:
		c.listItem(n)

	case atom.A:
		text := strings.TrimSpace(c.inner(n))
		href := attr(n, "href")
		switch {
		case href == "":
			c.buf.WriteString(text)
		case text == "":
			c.buf.WriteString(href)
		default:
			c.buf.WriteString("[" + text + "](" + href + ")")
		}

	case atom.Blockquote:
		quoted := strings.TrimSpace(c.inner(n))
		c.buf.WriteString("\n\n")
		for _, line := range strings.Split(quoted, "\n") {
			c.buf.WriteString("> " + line + "\n")
		}
		c.buf.WriteString("\n")

	case atom.Hr:
		c.buf.WriteString("\n\n---\n\n")

	default:
		c.children(n)
	}
}

func (c *converter) listItem(n *html.Node) {
	marker := "- "
	depth := len(c.lists)
	if depth > 0 {
		top := &c.lists[depth-1]
		top.index++
		if top.ordered {
			marker = strconv.Itoa(top.index) + ". "
		}
	}

	indent := ""
	if depth > 1 {
		indent = strings.Repeat("  ", depth-1)
	}

	c.buf.WriteString("\n" + indent + marker)
	c.buf.WriteString(strings.TrimSpace(c.inner(n)))
}

// wrap surrounds n's content with marker, keeping edge whitespace outside
// the markers so emphasis still parses.
func (c *converter) wrap(n *html.Node, marker string) {
	content := c.inner(n)
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		c.buf.WriteString(content)
		return
	}

	start := strings.Index(content, trimmed)
	c.buf.WriteString(content[:start])
	c.buf.WriteString(marker + trimmed + marker)
	c.buf.WriteString(content[start+len(trimmed):])
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return StripControl(a.Val)
		}
	}
	return ""
}
