package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/navlayout/internal/errors"
	"github.com/mcncl/navlayout/internal/models"
)

// Structural keys recognised in a shorthand layout document.
const (
	KeyContainer = "container"
	KeySideMenu  = "sideMenu"
	KeyTabs      = "tabs"

	KeyLeft   = "left"
	KeyCenter = "center"
	KeyRight  = "right"
)

// Shorthand is one author-facing layout node. The set of variants is closed:
// ContainerShorthand, SideMenuShorthand and TabsShorthand.
type Shorthand interface {
	shorthand()
}

// ContainerShorthand is a single screen. Config is copied into the
// canonical Container node untouched.
type ContainerShorthand struct {
	Config map[string]any
}

// SideMenuShorthand wraps a center layout with optional drawers.
// Left and Right may be nil; Center may not.
type SideMenuShorthand struct {
	Left   Shorthand
	Center Shorthand
	Right  Shorthand
}

// TabsShorthand is an ordered tab group.
type TabsShorthand struct {
	Tabs []Shorthand
}

func (ContainerShorthand) shorthand() {}
func (SideMenuShorthand) shorthand()  {}
func (TabsShorthand) shorthand()      {}

// Container, SideMenu and Tabs build shorthand nodes in code.
func Container(config map[string]any) ContainerShorthand {
	return ContainerShorthand{Config: config}
}

func SideMenu(left, center, right Shorthand) SideMenuShorthand {
	return SideMenuShorthand{Left: left, Center: center, Right: right}
}

func Tabs(tabs ...Shorthand) TabsShorthand {
	return TabsShorthand{Tabs: tabs}
}

// Decode classifies a generic document node by its structural key and
// decodes nested shorthand nodes. Keys must match exactly.
func Decode(raw map[string]any) (Shorthand, error) {
	return decoder{}.decode(raw, "root")
}

type decoder struct {
	normalizeKeys bool
}

// key maps a document key to its structural spelling. With normalizeKeys
// set, "side_menu" and "SideMenu" both become "sideMenu".
func (d decoder) key(k string) string {
	if d.normalizeKeys {
		return strcase.ToLowerCamel(k)
	}
	return k
}

func (d decoder) decode(v any, path string) (Shorthand, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, errors.NewLayoutError(path, fmt.Errorf("%w, got %s", errors.ErrInvalidShorthand, describe(v)))
	}

	var found, unknown []string
	values := make(map[string]any, len(obj))
	for k, val := range obj {
		switch key := d.key(k); key {
		case KeyContainer, KeySideMenu, KeyTabs:
			found = append(found, key)
			values[key] = val
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(found)
	sort.Strings(unknown)

	switch {
	case len(found) > 1:
		return nil, errors.NewLayoutError(path, fmt.Errorf("%w: %s", errors.ErrMultipleStructuralKeys, strings.Join(found, ", ")))
	case len(unknown) > 0:
		return nil, errors.NewLayoutError(path, fmt.Errorf("%w %q", errors.ErrUnknownKey, unknown[0]))
	case len(found) == 0:
		return nil, errors.NewLayoutError(path, errors.ErrNoStructuralKey)
	}

	key := found[0]
	childPath := path + "." + key
	switch key {
	case KeyContainer:
		return d.decodeContainer(values[key], childPath)
	case KeySideMenu:
		return d.decodeSideMenu(values[key], childPath)
	default:
		return d.decodeTabs(values[key], childPath)
	}
}

// decodeContainer accepts a mapping or null; null is an empty configuration.
func (d decoder) decodeContainer(v any, path string) (Shorthand, error) {
	if v == nil {
		return ContainerShorthand{Config: map[string]any{}}, nil
	}
	obj, ok := asObject(v)
	if !ok {
		return nil, errors.NewLayoutError(path, fmt.Errorf("%w, got %s", errors.ErrInvalidContainer, describe(v)))
	}
	return ContainerShorthand{Config: obj}, nil
}

func (d decoder) decodeSideMenu(v any, path string) (Shorthand, error) {
	obj, ok := asObject(v)
	if !ok {
		return nil, errors.NewLayoutError(path, fmt.Errorf("%w, got %s", errors.ErrInvalidSideMenu, describe(v)))
	}

	sides := make(map[string]any, 3)
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch key := d.key(k); key {
		case KeyLeft, KeyCenter, KeyRight:
			if _, dup := sides[key]; dup {
				return nil, errors.NewLayoutError(path, fmt.Errorf("%w: %s given twice", errors.ErrMultipleStructuralKeys, key))
			}
			sides[key] = obj[k]
		default:
			return nil, errors.NewLayoutError(path, fmt.Errorf("%w %q", errors.ErrUnknownKey, k))
		}
	}

	if sides[KeyCenter] == nil {
		return nil, errors.NewLayoutError(path, errors.ErrMissingCenter)
	}

	var menu SideMenuShorthand
	var err error
	if left := sides[KeyLeft]; left != nil {
		if menu.Left, err = d.decode(left, path+"."+KeyLeft); err != nil {
			return nil, err
		}
	}
	if menu.Center, err = d.decode(sides[KeyCenter], path+"."+KeyCenter); err != nil {
		return nil, err
	}
	if right := sides[KeyRight]; right != nil {
		if menu.Right, err = d.decode(right, path+"."+KeyRight); err != nil {
			return nil, err
		}
	}
	return menu, nil
}

func (d decoder) decodeTabs(v any, path string) (Shorthand, error) {
	list, ok := asList(v)
	if !ok {
		return nil, errors.NewLayoutError(path, fmt.Errorf("%w, got %s", errors.ErrTabsNotSequence, describe(v)))
	}
	tabs := make([]Shorthand, 0, len(list))
	for i, entry := range list {
		tab, err := d.decode(entry, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, tab)
	}
	return TabsShorthand{Tabs: tabs}, nil
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, obj != nil
	case models.JSONObject:
		return map[string]any(obj), obj != nil
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch list := v.(type) {
	case []any:
		return list, list != nil
	case models.JSONArray:
		return []any(list), list != nil
	default:
		return nil, false
	}
}

// describe names the kind of a decoded document value for error messages.
func describe(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case map[string]any:
		if val == nil {
			return "null"
		}
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	case models.JSONObject:
		return "object"
	case []any, models.JSONArray:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}
