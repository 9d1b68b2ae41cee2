package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"
)

const (
	pdfMargin   = 50
	pdfBodySize = 11
	pdfLineH    = 15
	pdfIndent   = 14
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// pdfWriter flows markdown blocks onto an A4 document.
type pdfWriter struct {
	doc *gofpdf.Fpdf
	tr  func(string) string
	src []byte
}

func pdfFromText(text, base string) ([]byte, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, errEmptyOutput
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetTitle(titleFromName(base), true)
	doc.AddPage()

	w := &pdfWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor(""), src: []byte(cleaned)}
	w.banner(titleFromName(base))

	root := markdown.Parser().Parse(gtext.NewReader(w.src))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, 0)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) banner(title string) {
	w.doc.SetFont("Helvetica", "B", 16)
	w.doc.CellFormat(0, 24, w.tr(title), "", 1, "C", false, 0, "")
	w.doc.Ln(12)
}

func (w *pdfWriter) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		size := 16 - float64(node.Level)
		if size < pdfBodySize+1 {
			size = pdfBodySize + 1
		}
		w.doc.Ln(4)
		w.doc.SetFont("Helvetica", "B", size)
		w.paragraph(inlineText(node, w.src), depth, size+4)
		w.doc.Ln(2)
	case *ast.Paragraph, *ast.TextBlock:
		w.doc.SetFont("Helvetica", "", pdfBodySize)
		w.paragraph(inlineText(node, w.src), depth, pdfLineH)
		w.doc.Ln(6)
	case *ast.List:
		w.list(node, depth)
		w.doc.Ln(4)
	case *ast.Blockquote:
		w.doc.SetFont("Helvetica", "I", pdfBodySize)
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c, depth+1)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.doc.SetFont("Courier", "", pdfBodySize-1)
		w.paragraph(blockLines(node, w.src), depth, pdfLineH-2)
		w.doc.Ln(6)
	case *ast.ThematicBreak:
		left, _, right, _ := w.doc.GetMargins()
		pageW, _ := w.doc.GetPageSize()
		y := w.doc.GetY() + 4
		w.doc.Line(left, y, pageW-right, y)
		w.doc.Ln(12)
	case *east.Table:
		w.table(node)
		w.doc.Ln(6)
	default:
		if t := strings.TrimSpace(inlineText(node, w.src)); t != "" {
			w.doc.SetFont("Helvetica", "", pdfBodySize)
			w.paragraph(t, depth, pdfLineH)
		}
	}
}

func (w *pdfWriter) list(list *ast.List, depth int) {
	index := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = strconv.Itoa(index) + ". "
			index++
		}
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				w.list(sub, depth+1)
				continue
			}
			text := inlineText(c, w.src)
			if first {
				text = marker + text
				first = false
			}
			w.doc.SetFont("Helvetica", "", pdfBodySize)
			w.paragraph(text, depth+1, pdfLineH)
		}
	}
}

func (w *pdfWriter) table(t *east.Table) {
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, strings.TrimSpace(inlineText(c, w.src)))
		}
		style := ""
		if _, ok := row.(*east.TableHeader); ok {
			style = "B"
		}
		w.doc.SetFont("Helvetica", style, pdfBodySize-1)
		w.paragraph(strings.Join(cells, "  |  "), 0, pdfLineH-1)
	}
}

func (w *pdfWriter) paragraph(text string, depth int, lineH float64) {
	if strings.TrimSpace(text) == "" {
		return
	}
	left, _, right, _ := w.doc.GetMargins()
	pageW, _ := w.doc.GetPageSize()
	indent := float64(depth) * pdfIndent
	w.doc.SetX(left + indent)
	w.doc.MultiCell(pageW-left-right-indent, lineH, w.tr(text), "", "L", false)
}

// inlineText concatenates the text under n, keeping hard breaks.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				b.Write(t.Segment.Value(src))
				switch {
				case t.HardLineBreak():
					b.WriteString("\n")
				case t.SoftLineBreak():
					b.WriteString(" ")
				}
			case *ast.String:
				b.Write(t.Value)
			case *ast.AutoLink:
				b.Write(t.Label(src))
			case *ast.RawHTML:
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}

// titleFromName turns "sales-report" into "Sales Report".
func titleFromName(base string) string {
	words := strings.FieldsFunc(base, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	if len(words) == 0 {
		return "Document"
	}
	return strings.Join(words, " ")
}
