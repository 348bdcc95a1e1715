package extract

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FlattenMarkdown reduces a markdown document to its plain text so markdown
// sources can be imported without sending formatting noise to the model.
func FlattenMarkdown(src []byte) (string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			// Separate blocks so sentences from adjacent paragraphs,
			// headings, and list items do not run together.
			if n.Type() == ast.TypeBlock && buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.CodeBlock:
			writeLines(&buf, src, t)
		case *ast.FencedCodeBlock:
			writeLines(&buf, src, t)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeLines(buf *bytes.Buffer, src []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
}
