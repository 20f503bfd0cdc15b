package analyzer

import (
	"fmt"
	"strings"

	"github.com/mcncl/navlayout/internal/errors"
	"github.com/mcncl/navlayout/internal/models"
)

// Analyzer inspects canonical layout trees

type Analyzer struct {
	// strict additionally requires ids to start with their node type
	strict bool
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{strict: true}
}

// NewLenientAnalyzer creates an Analyzer that accepts ids of any shape.
func NewLenientAnalyzer() *Analyzer {
	return &Analyzer{strict: false}
}

// Analyze counts nodes per type, measures depth and collects screen names.
func (a *Analyzer) Analyze(root *models.CanonicalNode) models.AnalysisResult {
	result := models.AnalysisResult{
		Counts:  make(map[models.NodeType]int),
		Screens: make([]string, 0),
	}
	root.Walk(func(n *models.CanonicalNode, depth int) bool {
		result.TotalNodes++
		result.Counts[n.Type]++
		if depth+1 > result.MaxDepth {
			result.MaxDepth = depth + 1
		}
		if n.Type == models.NodeContainer {
			if name, ok := n.Data["name"].(string); ok {
				result.Screens = append(result.Screens, name)
			}
		}
		return true
	})
	return result
}

// Validate checks the invariants a navigation runtime relies on and
// returns the first violation found, walking parents before children.
func (a *Analyzer) Validate(root *models.CanonicalNode) error {
	if root == nil {
		return errors.NewValidationError("empty tree", errors.ErrArity)
	}
	seen := make(map[string]struct{})
	var err error
	root.Walk(func(n *models.CanonicalNode, _ int) bool {
		if err != nil {
			return false
		}
		err = a.validateNode(n, seen)
		return err == nil
	})
	return err
}

func (a *Analyzer) validateNode(n *models.CanonicalNode, seen map[string]struct{}) error {
	label := fmt.Sprintf("%s %q", n.Type, n.ID)

	if _, dup := seen[n.ID]; dup {
		return errors.NewValidationError(label, errors.ErrDuplicateID)
	}
	seen[n.ID] = struct{}{}

	if a.strict && !strings.HasPrefix(n.ID, string(n.Type)) {
		return errors.NewValidationError(label, errors.ErrIDPrefix)
	}

	switch n.Type {
	case models.NodeContainer:
		if len(n.Children) != 0 {
			return errors.NewValidationError(label, fmt.Errorf("%w: container has %d", errors.ErrArity, len(n.Children)))
		}
		return nil
	case models.NodeContainerStack, models.NodeSideMenuLeft, models.NodeSideMenuCenter, models.NodeSideMenuRight:
		if len(n.Children) != 1 {
			return errors.NewValidationError(label, fmt.Errorf("%w: want 1, have %d", errors.ErrArity, len(n.Children)))
		}
	case models.NodeTabs:
	case models.NodeSideMenuRoot:
		if err := validateSides(n.Children); err != nil {
			return errors.NewValidationError(label, err)
		}
	default:
		return errors.NewValidationError(label, errors.ErrUnknownType)
	}

	if len(n.Data) != 0 {
		return errors.NewValidationError(label, errors.ErrUnexpectedData)
	}
	return nil
}

// validateSides requires exactly one center, at most one of each drawer,
// and the order left, center, right.
func validateSides(children []*models.CanonicalNode) error {
	rank := map[models.NodeType]int{
		models.NodeSideMenuLeft:   0,
		models.NodeSideMenuCenter: 1,
		models.NodeSideMenuRight:  2,
	}
	centers := 0
	last := -1
	for _, child := range children {
		r, ok := rank[child.Type]
		if !ok {
			return fmt.Errorf("%w: %s under SideMenuRoot", errors.ErrChildOrder, child.Type)
		}
		if r <= last {
			return fmt.Errorf("%w: %s after %d sides", errors.ErrChildOrder, child.Type, last+1)
		}
		last = r
		if child.Type == models.NodeSideMenuCenter {
			centers++
		}
	}
	if centers != 1 {
		return fmt.Errorf("%w: side menu needs one center, has %d", errors.ErrArity, centers)
	}
	return nil
}
