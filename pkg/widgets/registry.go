package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Built-in widget identifiers. They double as the partial keys a theme can
// override.
const (
	WidgetFormname = "forms.formname"
	WidgetButton   = "forms.button"
	WidgetChoice   = "forms.choice"
	WidgetDropdown = "forms.dropdown"
	WidgetTextarea = "forms.textarea"
	WidgetInput    = "forms.input"
)

// Matcher decides whether a widget should render the supplied block.
type Matcher func(block model.Block) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects the widget for each block. Higher priority wins; ties
// fall back to registration order. An empty registry never resolves.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher under name. Callers can shadow a built-in by
// registering the same block kind with a higher priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for block.
func (r *Registry) Resolve(block model.Block) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(block) {
			return entry.name, true
		}
	}
	return "", false
}

func typeIs(types ...model.BlockType) Matcher {
	return func(block model.Block) bool {
		for _, t := range types {
			if block.Type == t {
				return true
			}
		}
		return false
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetFormname, 90, typeIs(model.BlockTypeFormname))
	r.Register(WidgetButton, 80, typeIs(model.BlockTypeButton))
	r.Register(WidgetChoice, 70, typeIs(model.BlockTypeRadio, model.BlockTypeCheckbox))
	r.Register(WidgetDropdown, 60, typeIs(model.BlockTypeDropdown))
	r.Register(WidgetTextarea, 50, typeIs(model.BlockTypeTextarea))
	// unknown types degrade to a plain input
	r.Register(WidgetInput, 0, func(model.Block) bool { return true })
}
