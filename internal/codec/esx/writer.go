package esx

import "strings"

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
	indent    = "  "
)

type attr struct {
	name  string
	value string
}

// xmlWriter emits indented elements. Attribute values and text are
// escaped; empty text produces a self-closing element so every field
// keeps its place in the structure.
type xmlWriter struct {
	b     strings.Builder
	depth int
}

func (w *xmlWriter) header() {
	w.b.WriteString(xmlHeader)
}

func (w *xmlWriter) startTag(name string, attrs []attr) {
	w.b.WriteString(strings.Repeat(indent, w.depth))
	w.b.WriteByte('<')
	w.b.WriteString(name)
	for _, a := range attrs {
		w.b.WriteByte(' ')
		w.b.WriteString(a.name)
		w.b.WriteString(`="`)
		w.b.WriteString(escapeAttr(a.value))
		w.b.WriteByte('"')
	}
}

// open writes a start tag and descends one level.
func (w *xmlWriter) open(name string, attrs ...attr) {
	w.startTag(name, attrs)
	w.b.WriteString(">\n")
	w.depth++
}

// close ascends one level and writes the end tag.
func (w *xmlWriter) close(name string) {
	w.depth--
	w.b.WriteString(strings.Repeat(indent, w.depth))
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">\n")
}

// leaf writes a text-only element.
func (w *xmlWriter) leaf(name, value string) {
	w.startTag(name, nil)
	if value == "" {
		w.b.WriteString("/>\n")
		return
	}
	w.b.WriteByte('>')
	w.b.WriteString(escape(value))
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteString(">\n")
}

func (w *xmlWriter) bytes() []byte {
	return []byte(w.b.String())
}
