package models

// JSONValue is a generic type to represent any decoded document value.
// This can be a string, number, boolean, null, object, or array.
type JSONValue = any

// JSONObject represents a document object, which is a map of strings to JSONValues.
type JSONObject map[string]JSONValue

// JSONArray represents a document array, which is a slice of JSONValues.
type JSONArray []JSONValue

// NodeType tags a canonical layout node.
type NodeType string

const (
	NodeContainer      NodeType = "Container"
	NodeContainerStack NodeType = "ContainerStack"
	NodeTabs           NodeType = "Tabs"
	NodeSideMenuRoot   NodeType = "SideMenuRoot"
	NodeSideMenuLeft   NodeType = "SideMenuLeft"
	NodeSideMenuCenter NodeType = "SideMenuCenter"
	NodeSideMenuRight  NodeType = "SideMenuRight"
)

// NodeTypes lists every canonical node type in declaration order.
var NodeTypes = []NodeType{
	NodeContainer,
	NodeContainerStack,
	NodeTabs,
	NodeSideMenuRoot,
	NodeSideMenuLeft,
	NodeSideMenuCenter,
	NodeSideMenuRight,
}

// CanonicalNode is one node of a normalized layout tree.
// Data and Children are never nil so encoders emit {} and [] for empty values.
type CanonicalNode struct {
	Type     NodeType         `json:"type" yaml:"type"`
	ID       string           `json:"id" yaml:"id"`
	Data     map[string]any   `json:"data" yaml:"data"`
	Children []*CanonicalNode `json:"children" yaml:"children"`
}

// NewCanonicalNode returns a node with empty data and no children.
func NewCanonicalNode(nodeType NodeType, id string) *CanonicalNode {
	return &CanonicalNode{
		Type:     nodeType,
		ID:       id,
		Data:     map[string]any{},
		Children: []*CanonicalNode{},
	}
}

// Walk visits n and its descendants depth-first, parents before children.
// depth is 0 for n itself. Returning false from fn skips the node's subtree.
func (n *CanonicalNode) Walk(fn func(node *CanonicalNode, depth int) bool) {
	n.walk(fn, 0)
}

func (n *CanonicalNode) walk(fn func(node *CanonicalNode, depth int) bool, depth int) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// AnalysisResult summarises a canonical layout tree.
type AnalysisResult struct {
	TotalNodes int
	MaxDepth   int
	Counts     map[NodeType]int
	// Screens holds the "name" of every Container in depth-first order.
	// Containers without a string name are skipped.
	Screens []string
}
