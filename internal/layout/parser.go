// Package layout normalizes shorthand screen layouts into canonical trees.
//
// A shorthand document names one structural key per node:
//
//	{"container": {...}}                         a screen
//	{"tabs": [node, node, ...]}                  a tab group
//	{"sideMenu": {"left": node, "center": node, "right": node}}
//
// The parser expands each shorthand into typed canonical nodes so a
// navigation runtime can walk every layout with one recursive algorithm.
// A bare screen always gets a ContainerStack around it. Side-menu children
// are always ordered left, center, right.
//
// New shapes are added as one Shorthand variant, one case in the decoder
// and one builder here.
package layout

import (
	"fmt"

	"github.com/mcncl/navlayout/internal/clone"
	"github.com/mcncl/navlayout/internal/config"
	"github.com/mcncl/navlayout/internal/errors"
	"github.com/mcncl/navlayout/internal/models"
)

// IdentifierProvider hands out node ids. Generate is called once per
// canonical node with the node's type as prefix, and must return a string
// unique for the provider's lifetime.
type IdentifierProvider interface {
	Generate(prefix string) string
}

// LayoutTreeParser turns shorthand layouts into canonical trees.
// It holds no state between calls other than what its provider keeps.
type LayoutTreeParser struct {
	ids    IdentifierProvider
	config *config.Config
}

// NewLayoutTreeParser creates a parser with the default configuration.
func NewLayoutTreeParser(ids IdentifierProvider) *LayoutTreeParser {
	return NewLayoutTreeParserWithConfig(ids, config.NewConfig())
}

// NewLayoutTreeParserWithConfig creates a parser with custom configuration.
// It panics if ids is nil: there is no built-in provider.
func NewLayoutTreeParserWithConfig(ids IdentifierProvider, cfg *config.Config) *LayoutTreeParser {
	if ids == nil {
		panic("layout: nil IdentifierProvider")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &LayoutTreeParser{ids: ids, config: cfg}
}

// ParseFromSimpleJSON decodes a shorthand document and parses it.
func (p *LayoutTreeParser) ParseFromSimpleJSON(root map[string]any) (*models.CanonicalNode, error) {
	node, err := p.Decode(root)
	if err != nil {
		return nil, err
	}
	return p.Parse(node)
}

// Decode classifies a shorthand document using the parser's key settings.
func (p *LayoutTreeParser) Decode(root map[string]any) (Shorthand, error) {
	return decoder{normalizeKeys: p.config.Input.NormalizeKeys}.decode(root, "root")
}

// Parse builds the canonical tree for node.
func (p *LayoutTreeParser) Parse(node Shorthand) (*models.CanonicalNode, error) {
	return p.parse(node, "root")
}

func (p *LayoutTreeParser) parse(node Shorthand, path string) (*models.CanonicalNode, error) {
	switch n := node.(type) {
	case ContainerShorthand:
		return p.containerStack(n), nil
	case *ContainerShorthand:
		if n != nil {
			return p.containerStack(*n), nil
		}
	case TabsShorthand:
		return p.tabs(n, path+"."+KeyTabs)
	case *TabsShorthand:
		if n != nil {
			return p.tabs(*n, path+"."+KeyTabs)
		}
	case SideMenuShorthand:
		return p.sideMenu(n, path+"."+KeySideMenu)
	case *SideMenuShorthand:
		if n != nil {
			return p.sideMenu(*n, path+"."+KeySideMenu)
		}
	}
	return nil, errors.NewLayoutError(path, fmt.Errorf("%w, got %T", errors.ErrInvalidShorthand, node))
}

func (p *LayoutTreeParser) newNode(nodeType models.NodeType) *models.CanonicalNode {
	return models.NewCanonicalNode(nodeType, p.ids.Generate(string(nodeType)))
}

// container is the only builder that puts data on a node.
func (p *LayoutTreeParser) container(c ContainerShorthand) *models.CanonicalNode {
	node := p.newNode(models.NodeContainer)
	node.Data = clone.Map(c.Config)
	return node
}

func (p *LayoutTreeParser) containerStack(c ContainerShorthand) *models.CanonicalNode {
	stack := p.newNode(models.NodeContainerStack)
	stack.Children = append(stack.Children, p.container(c))
	return stack
}

func (p *LayoutTreeParser) tabs(t TabsShorthand, path string) (*models.CanonicalNode, error) {
	node := p.newNode(models.NodeTabs)
	for i, tab := range t.Tabs {
		child, err := p.parse(tab, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func (p *LayoutTreeParser) sideMenu(m SideMenuShorthand, path string) (*models.CanonicalNode, error) {
	if m.Center == nil {
		return nil, errors.NewLayoutError(path, errors.ErrMissingCenter)
	}

	root := p.newNode(models.NodeSideMenuRoot)
	sides := []struct {
		nodeType models.NodeType
		key      string
		content  Shorthand
		drawer   bool
	}{
		{models.NodeSideMenuLeft, KeyLeft, m.Left, true},
		{models.NodeSideMenuCenter, KeyCenter, m.Center, false},
		{models.NodeSideMenuRight, KeyRight, m.Right, true},
	}
	for _, side := range sides {
		if side.content == nil {
			continue
		}
		wrapper := p.newNode(side.nodeType)
		child, err := p.sideContent(side.content, side.drawer, path+"."+side.key)
		if err != nil {
			return nil, err
		}
		wrapper.Children = append(wrapper.Children, child)
		root.Children = append(root.Children, wrapper)
	}
	return root, nil
}

// sideContent parses one side of a menu. Drawers holding a single screen
// skip the ContainerStack when bare side containers are enabled.
func (p *LayoutTreeParser) sideContent(content Shorthand, drawer bool, path string) (*models.CanonicalNode, error) {
	if drawer && p.config.SideMenu.BareSideContainers {
		switch c := content.(type) {
		case ContainerShorthand:
			return p.container(c), nil
		case *ContainerShorthand:
			if c != nil {
				return p.container(*c), nil
			}
		}
	}
	return p.parse(content, path)
}
