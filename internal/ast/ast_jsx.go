package ast

// JSXElementData backs a complete `<Tag>...</Tag>` element and a fragment
// `<>...</>`; OpeningElement is arena.None for a fragment (Tag lives on the
// opening/closing pair instead).
type JSXElementData struct {
	OpeningElement NodeIndex // KindJSXOpeningElement or KindJSXSelfClosingElement
	Children       ListIndex
	ClosingElement NodeIndex // KindJSXClosingElement, or arena.None for self-closing/fragment
}

func (t *Tree) AddJSXElement(kind Kind, pos, end uint32, d JSXElementData) NodeIndex {
	idx := t.jsxElement.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetJSXElement(i NodeIndex) (JSXElementData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindJSXElement, KindJSXFragment:
		return t.jsxElement.Get(n.Data), true
	default:
		return JSXElementData{}, false
	}
}

// JSXOpeningElementData backs `<Tag attrs>` and the self-closing `<Tag attrs/>`,
// and doubles as the closing tag's data (Attributes empty, SelfClosing unused).
type JSXOpeningElementData struct {
	TagName      NodeIndex // identifier or property-access entity name
	TypeArgs     ListIndex
	Attributes   ListIndex // list of KindJSXAttribute / KindJSXSpreadAttribute
	SelfClosing  bool
}

func (t *Tree) AddJSXOpeningElement(kind Kind, pos, end uint32, d JSXOpeningElementData) NodeIndex {
	idx := t.jsxOpening.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetJSXOpeningElement(i NodeIndex) (JSXOpeningElementData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindJSXOpeningElement, KindJSXSelfClosingElement, KindJSXClosingElement:
		return t.jsxOpening.Get(n.Data), true
	default:
		return JSXOpeningElementData{}, false
	}
}

// JSXAttributeData backs `name={expr}` / `name="literal"` / bare `name`
// attributes, and `{...expr}` spread attributes (Name left arena.None).
type JSXAttributeData struct {
	Name        NodeIndex
	Initializer NodeIndex // arena.None for a bare boolean-shorthand attribute
	SpreadExpr  NodeIndex // set instead of Name/Initializer for KindJSXSpreadAttribute
}

func (t *Tree) AddJSXAttribute(kind Kind, pos, end uint32, d JSXAttributeData) NodeIndex {
	idx := t.jsxAttr.Add(d)
	return t.addNode(kind, pos, end, idx)
}

func (t *Tree) GetJSXAttribute(i NodeIndex) (JSXAttributeData, bool) {
	n := t.Node(i)
	switch n.Kind {
	case KindJSXAttribute, KindJSXSpreadAttribute:
		return t.jsxAttr.Get(n.Data), true
	default:
		return JSXAttributeData{}, false
	}
}

// AddJSXExpression backs `{expr}` used as a JSX child or attribute value;
// Expr is arena.None for a bare `{}` (an empty-expression JSX comment slot).
func (t *Tree) AddJSXExpression(pos, end uint32, expr NodeIndex) NodeIndex {
	d := t.spread.Add(UnaryLikeData{Expr: expr})
	return t.addNode(KindJSXExpression, pos, end, d)
}

func (t *Tree) GetJSXExpression(i NodeIndex) (UnaryLikeData, bool) {
	n := t.Node(i)
	if n.Kind != KindJSXExpression {
		return UnaryLikeData{}, false
	}
	return t.spread.Get(n.Data), true
}

// AddJSXText backs raw text runs between JSX elements; it carries its text
// the same way string literals do.
func (t *Tree) AddJSXText(pos, end uint32, text LiteralData) NodeIndex {
	d := t.literals.Add(text)
	return t.addNode(KindJSXText, pos, end, d)
}

func (t *Tree) GetJSXText(i NodeIndex) (LiteralData, bool) {
	n := t.Node(i)
	if n.Kind != KindJSXText {
		return LiteralData{}, false
	}
	return t.literals.Get(n.Data), true
}
