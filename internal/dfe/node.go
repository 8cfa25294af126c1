package dfe

import (
	"encoding/xml"
	"io"
	"strings"
)

// Node is one element of a parsed fiscal document. The tree is built once
// per document and read-only afterward.
type Node struct {
	Space    string
	Local    string
	Attrs    []xml.Attr
	Children []*Node
	text     strings.Builder
}

// Parse builds a Node tree from an XML string. It returns an error for
// anything the token decoder rejects, including truncated or non-XML input.
func Parse(raw string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Space: t.Name.Space, Local: t.Name.Local}
			n.Attrs = append(n.Attrs, t.Attr...)
			if len(stack) == 0 {
				if root != nil {
					return nil, io.ErrUnexpectedEOF
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// Text returns the element's own character data, trimmed.
func (n *Node) Text() string {
	return strings.TrimSpace(n.text.String())
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// matches reports whether the node has the given local name in the given
// namespace. Documents issued without a namespace declaration still match,
// which mirrors how lenient production parsers treat legacy files.
func (n *Node) matches(space, local string) bool {
	if n.Local != local {
		return false
	}
	return n.Space == space || n.Space == ""
}

// Find locates the first element matching the path. The first path segment
// is searched at any depth below n; the remaining segments must be direct
// descendants, searched depth-first in document order.
func (n *Node) Find(space string, path ...string) *Node {
	if len(path) == 0 {
		return nil
	}
	var match *Node
	n.walk(func(d *Node) bool {
		if !d.matches(space, path[0]) {
			return true
		}
		if m := d.childPath(space, path[1:]); m != nil {
			match = m
			return false
		}
		return true
	})
	return match
}

// FindText returns the trimmed text of the element at path, if the element
// exists and has non-empty text.
func (n *Node) FindText(space string, path ...string) (string, bool) {
	el := n.Find(space, path...)
	if el == nil {
		return "", false
	}
	if v := el.Text(); v != "" {
		return v, true
	}
	return "", false
}

// childPath resolves the remaining path segments against direct children.
func (n *Node) childPath(space string, path []string) *Node {
	if len(path) == 0 {
		return n
	}
	for _, c := range n.Children {
		if !c.matches(space, path[0]) {
			continue
		}
		if m := c.childPath(space, path[1:]); m != nil {
			return m
		}
	}
	return nil
}

// walk visits every descendant of n in document order until fn returns false.
func (n *Node) walk(fn func(*Node) bool) bool {
	for _, c := range n.Children {
		if !fn(c) {
			return false
		}
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
