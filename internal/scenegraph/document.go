package scenegraph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is a single scene node. Child order is stable and preserved across
// load/export cycles.
type Node struct {
	name     string
	typeName string
	attrs    map[string]string
	children []*Node
	parent   *Node
}

// Name returns the node's own name, the last segment of its path.
func (n *Node) Name() string { return n.name }

// TypeName returns the node's declared type, such as "Xform".
func (n *Node) TypeName() string { return n.typeName }

// Path returns the node's slash-delimited path from the document root.
func (n *Node) Path() string {
	if n.parent == nil {
		return "/" + n.name
	}
	return n.parent.Path() + "/" + n.name
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attribute returns the named attribute value and whether it exists.
func (n *Node) Attribute(name string) (string, bool) {
	value, ok := n.attrs[name]
	return value, ok
}

// SetAttribute creates the named string attribute or overwrites its value.
func (n *Node) SetAttribute(name, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Attributes returns a copy of the node's attribute map.
func (n *Node) Attributes() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Document is a loaded scene graph.
type Document struct {
	roots     []*Node
	sourceURL string
}

// SourceURL returns the location the document was loaded from, if any.
func (d *Document) SourceURL() string { return d.sourceURL }

// Walk visits every node depth-first in document order.
func (d *Document) Walk(fn func(*Node)) {
	for _, root := range d.roots {
		walk(root, fn)
	}
}

func walk(node *Node, fn func(*Node)) {
	fn(node)
	for _, child := range node.children {
		walk(child, fn)
	}
}

// NodeAt returns the node at the given slash-delimited path, or nil when no
// such node exists.
func (d *Document) NodeAt(path string) *Node {
	segments := splitPath(path)
	if len(segments) == 0 {
		return nil
	}
	current := findChild(d.roots, segments[0])
	for _, segment := range segments[1:] {
		if current == nil {
			return nil
		}
		current = findChild(current.children, segment)
	}
	return current
}

func findChild(nodes []*Node, name string) *Node {
	for _, node := range nodes {
		if node.name == name {
			return node
		}
	}
	return nil
}

func splitPath(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

type nodeJSON struct {
	Name       string            `json:"name"`
	Type       string            `json:"type,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []nodeJSON        `json:"children,omitempty"`
}

type documentJSON struct {
	Nodes []nodeJSON `json:"nodes"`
}

// Parse decodes a scene document from its JSON representation.
func Parse(data []byte) (*Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode scene document: %w", err)
	}
	doc := &Document{}
	for i := range raw.Nodes {
		node, err := buildNode(raw.Nodes[i], nil)
		if err != nil {
			return nil, err
		}
		doc.roots = append(doc.roots, node)
	}
	return doc, nil
}

func buildNode(raw nodeJSON, parent *Node) (*Node, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid node name %q", raw.Name)
	}
	node := &Node{name: name, typeName: raw.Type, parent: parent}
	if len(raw.Attributes) > 0 {
		node.attrs = make(map[string]string, len(raw.Attributes))
		for k, v := range raw.Attributes {
			node.attrs[k] = v
		}
	}
	for i := range raw.Children {
		child, err := buildNode(raw.Children[i], node)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
	}
	return node, nil
}

// Marshal encodes the document to its JSON representation. Attribute maps
// marshal with sorted keys, so repeated exports of the same document are
// byte-identical.
func (d *Document) Marshal() ([]byte, error) {
	raw := documentJSON{Nodes: make([]nodeJSON, 0, len(d.roots))}
	for _, root := range d.roots {
		raw.Nodes = append(raw.Nodes, dumpNode(root))
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scene document: %w", err)
	}
	return append(data, '\n'), nil
}

func dumpNode(node *Node) nodeJSON {
	raw := nodeJSON{Name: node.name, Type: node.typeName}
	if len(node.attrs) > 0 {
		raw.Attributes = node.Attributes()
	}
	for _, child := range node.children {
		raw.Children = append(raw.Children, dumpNode(child))
	}
	return raw
}
