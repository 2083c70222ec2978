// Provides loading of SVG documents.
// SVG files are parsed into a flat list of shapes with their
// attributes and inline style merged, which can then be consumed
// by painting drivers.
// See for example svgpng/svgdraw .
package svgicon

import (
	"encoding/xml"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Kind identifies a supported shape element.
type Kind uint8

const (
	Circle Kind = iota
	Ellipse
	Rect
	Line
	Polyline
	Path
)

// tag names of the supported shape elements
var kindTags = [...]string{
	Circle:   "circle",
	Ellipse:  "ellipse",
	Rect:     "rect",
	Line:     "line",
	Polyline: "polyline",
	Path:     "path",
}

func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "<unknown Kind>"
}

// KindFromTag returns the Kind of the element named `tag`,
// or false if the element is not a supported shape.
func KindFromTag(tag string) (Kind, bool) {
	tag = strings.ToLower(tag)
	for k, t := range kindTags {
		if t == tag {
			return Kind(k), true
		}
	}
	return 0, false
}

// ShapeNode is a shape element, with its inline style
// entries merged over its plain attributes.
type ShapeNode struct {
	Kind  Kind
	Attrs map[string]string
}

// Attr returns the value of the attribute `name`.
func (n ShapeNode) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Has returns true if the attribute `name` is present.
func (n ShapeNode) Has(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// Document holds data from a parsed SVG file.
// It is fixed once loaded.
type Document struct {
	Width, Height int // in pixels
	Units         UnitMode
	Shapes        []ShapeNode
}

// Converter returns the unit converter bound to the
// document unit mode.
func (d *Document) Converter() Converter {
	return Converter{Mode: d.Units}
}

// docCursor is used while parsing SVG files
type docCursor struct {
	doc       *Document
	errorMode ErrorMode
	seenRoot  bool
	stack     []string // names of the open elements
}

// parent returns the name of the innermost open element
func (c *docCursor) parent() string {
	if len(c.stack) == 0 {
		return ""
	}
	return c.stack[len(c.stack)-1]
}

func (c *docCursor) readStartElement(se xml.StartElement) error {
	name := strings.ToLower(se.Name.Local)
	if !c.seenRoot {
		c.seenRoot = true
		if name != "svg" {
			return errors.Errorf("unexpected root element %s", se.Name.Local)
		}
		return c.readDimensions(se.Attr)
	}
	if c.parent() != "g" || name == "g" {
		return nil
	}
	kind, ok := KindFromTag(name)
	if !ok {
		if c.errorMode == WarnErrorMode {
			log.Println("Cannot process svg element " + se.Name.Local)
		}
		return nil
	}
	c.doc.Shapes = append(c.doc.Shapes, ShapeNode{Kind: kind, Attrs: MergeStyle(se.Attr)})
	return nil
}

// readDimensions sets the document size and unit mode,
// from the root element.
func (c *docCursor) readDimensions(attrs []xml.Attr) error {
	var width, height string
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "width":
			width = strings.TrimSpace(attr.Value)
		case "height":
			height = strings.TrimSpace(attr.Value)
		}
	}
	if width == "" || height == "" {
		return errors.Wrap(ErrUnsupportedDimensions, "missing width or height")
	}
	mode, err := dimensionMode(width)
	if err != nil {
		return err
	}
	conv := Converter{Mode: mode}
	w, err := conv.dimension(width)
	if err != nil {
		return err
	}
	h, err := conv.dimension(height)
	if err != nil {
		return err
	}
	c.doc.Width, c.doc.Height, c.doc.Units = w, h, mode
	return nil
}

// ReadDocumentStream reads the Document from the given io.Reader.
// This only supports a sub-set of SVG: the shapes are
// the direct children of the <g> elements.
// errMode determines if unsupported elements are ignored or logged;
// they are never an error.
func ReadDocumentStream(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := new(Document)
	cursor := &docCursor{doc: doc, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !cursor.seenRoot {
					return nil, errors.New("invalid svg xml document")
				}
				break
			}
			return nil, errors.Wrap(err, "reading svg document")
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			if err = cursor.readStartElement(se); err != nil {
				return nil, err
			}
			cursor.stack = append(cursor.stack, strings.ToLower(se.Name.Local))
		case xml.EndElement:
			cursor.stack = cursor.stack[:len(cursor.stack)-1]
		}
	}
	return doc, nil
}

// ReadDocument reads the Document from the named file.
// See ReadDocumentStream for the supported subset.
func ReadDocument(svgFile string, errMode ErrorMode) (*Document, error) {
	fin, errf := os.Open(svgFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadDocumentStream(fin, errMode)
}
