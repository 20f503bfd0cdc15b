package formatter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/mcncl/navlayout/internal/models"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTree = "tree"
)

var (
	styleType = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	styleID   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleName = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleEnum = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginRight(1)
)

// Formatter renders canonical layout trees
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders root in the named format. The result ends with a newline.
func (f *Formatter) Format(root *models.CanonicalNode, format string) (string, error) {
	if root == nil {
		return "", fmt.Errorf("nothing to format")
	}
	switch format {
	case FormatJSON, "":
		return f.formatJSON(root)
	case FormatYAML:
		return f.formatYAML(root)
	case FormatTree:
		return f.formatTree(root), nil
	default:
		return "", fmt.Errorf("unknown output format '%s'", format)
	}
}

func (f *Formatter) formatJSON(root *models.CanonicalNode) (string, error) {
	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(out) + "\n", nil
}

// yamlNode mirrors CanonicalNode with numbers decoded from JSON turned
// back into YAML numbers.
type yamlNode struct {
	Type     models.NodeType `yaml:"type"`
	ID       string          `yaml:"id"`
	Data     map[string]any  `yaml:"data"`
	Children []yamlNode      `yaml:"children"`
}

func toYAMLNode(n *models.CanonicalNode) yamlNode {
	out := yamlNode{
		Type:     n.Type,
		ID:       n.ID,
		Data:     plainMap(n.Data),
		Children: make([]yamlNode, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, toYAMLNode(child))
	}
	return out
}

func plainMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if fl, err := val.Float64(); err == nil {
			return fl
		}
		return val.String()
	case map[string]any:
		return plainMap(val)
	case models.JSONObject:
		return plainMap(val)
	case []any:
		return plainSlice(val)
	case models.JSONArray:
		return plainSlice(val)
	default:
		return v
	}
}

func plainSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = plainValue(v)
	}
	return out
}

func (f *Formatter) formatYAML(root *models.CanonicalNode) (string, error) {
	out, err := yaml.Marshal(toYAMLNode(root))
	if err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	return string(out), nil
}

func (f *Formatter) formatTree(root *models.CanonicalNode) string {
	t := tree.Root(label(root)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleEnum)
	for _, child := range root.Children {
		t.Child(subtree(child))
	}
	return strings.TrimRight(t.String(), "\n") + "\n"
}

// subtree returns a plain label for leaves so they render without a
// nested root line.
func subtree(n *models.CanonicalNode) any {
	if len(n.Children) == 0 {
		return label(n)
	}
	t := tree.Root(label(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleEnum)
	for _, child := range n.Children {
		t.Child(subtree(child))
	}
	return t
}

// label is "Type id" plus, for containers, the screen name or the sorted
// config keys.
func label(n *models.CanonicalNode) string {
	parts := []string{styleType.Render(string(n.Type)), styleID.Render(n.ID)}
	if n.Type == models.NodeContainer {
		if name, ok := n.Data["name"].(string); ok {
			parts = append(parts, styleName.Render(name))
		} else if len(n.Data) > 0 {
			keys := make([]string, 0, len(n.Data))
			for k := range n.Data {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			parts = append(parts, styleID.Render("{"+strings.Join(keys, ", ")+"}"))
		}
	}
	return strings.Join(parts, " ")
}
