package chunker

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownChunker packs paragraphs like TextChunker and labels every chunk
// with the heading it falls under.
type MarkdownChunker struct {
	text *TextChunker
	md   goldmark.Markdown
}

// NewMarkdownChunker creates a markdown chunker.
func NewMarkdownChunker(config Config) *MarkdownChunker {
	return &MarkdownChunker{
		text: NewTextChunker(config),
		md:   goldmark.New(),
	}
}

func (m *MarkdownChunker) Name() string {
	return "markdown"
}

func (m *MarkdownChunker) Chunk(content, source string) ([]Chunk, error) {
	chunks, err := m.text.Chunk(content, source)
	if err != nil {
		return nil, err
	}

	current := ""
	for i := range chunks {
		headings, leading := m.headings(chunks[i].Text)
		if leading {
			current = headings[0]
		}
		chunks[i].Section = current
		chunks[i].Metadata["method"] = "markdown"
		if len(headings) > 0 {
			current = headings[len(headings)-1]
		}
	}

	return chunks, nil
}

// headings returns the heading texts of a chunk in document order and whether
// the chunk opens with a heading.
func (m *MarkdownChunker) headings(chunkText string) ([]string, bool) {
	source := []byte(chunkText)
	doc := m.md.Parser().Parse(text.NewReader(source))

	var found []string
	leading := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		title := strings.TrimSpace(extractText(heading, source))
		if title == "" {
			continue
		}
		if n == doc.FirstChild() {
			leading = true
		}
		found = append(found, title)
	}

	return found, leading
}

// extractText returns the literal text of a node's inline children.
func extractText(node ast.Node, source []byte) string {
	var buf strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(source))
		case *ast.String:
			buf.Write(c.Value)
		default:
			buf.WriteString(extractText(child, source))
		}
	}
	return buf.String()
}
