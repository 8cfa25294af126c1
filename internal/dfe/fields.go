package dfe

// Field lookup combinators. Extractors are written as field tables on top
// of these two policies: a required field that is absent fails the whole
// extraction with a MISSING_FIELD error; an absent optional field becomes
// an empty value and extraction continues.

// requireText returns the text at path or a MissingField failure naming the
// field and the document kind.
func requireText(n *Node, space string, kind Kind, field string, path ...string) (string, error) {
	if v, ok := n.FindText(space, path...); ok {
		return v, nil
	}
	return "", missingField(kind, field)
}

// optionalText returns the text at path, or "" when the element is absent
// or empty.
func optionalText(n *Node, space string, path ...string) string {
	v, _ := n.FindText(space, path...)
	return v
}

// firstText returns the text of the first path that resolves, trying each
// candidate in order.
func firstText(n *Node, space string, paths ...[]string) (string, bool) {
	for _, p := range paths {
		if v, ok := n.FindText(space, p...); ok {
			return v, true
		}
	}
	return "", false
}

// requireNode returns the element at path or a MissingField failure.
func requireNode(n *Node, space string, kind Kind, field string, path ...string) (*Node, error) {
	if el := n.Find(space, path...); el != nil {
		return el, nil
	}
	return nil, missingField(kind, field)
}
