package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Handler executes one function call with its raw JSON params.
type Handler func(ctx context.Context, params json.RawMessage) (any, error)

// Function is a callable the planner may choose. Params maps each
// parameter name to a short type hint shown in the planning prompt.
type Function struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params"`
	Handler     Handler           `json:"-"`
}

// Registry holds functions in registration order.
type Registry struct {
	fns   map[string]Function
	order []string
}

func NewRegistry() *Registry {
	return &Registry{fns: map[string]Function{}}
}

// Register adds fn, replacing any function with the same name in place.
func (r *Registry) Register(fn Function) {
	if _, ok := r.fns[fn.Name]; !ok {
		r.order = append(r.order, fn.Name)
	}
	r.fns[fn.Name] = fn
}

func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.fns[name]
	return fn, ok
}

// List returns the functions in registration order.
func (r *Registry) List() []Function {
	out := make([]Function, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fns[name])
	}
	return out
}

func (r *Registry) Call(ctx context.Context, name string, params json.RawMessage) (any, error) {
	fn, ok := r.fns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return fn.Handler(ctx, params)
}

// describe renders one line per function for prompts.
func (r *Registry) describe() string {
	var b []byte
	for _, fn := range r.List() {
		b = fmt.Appendf(b, "%s: %s", fn.Name, fn.Description)
		if len(fn.Params) > 0 {
			names := make([]string, 0, len(fn.Params))
			for k := range fn.Params {
				names = append(names, k)
			}
			sort.Strings(names)
			b = append(b, " {"...)
			for i, k := range names {
				if i > 0 {
					b = append(b, ", "...)
				}
				b = fmt.Appendf(b, "%s: %s", k, fn.Params[k])
			}
			b = append(b, '}')
		}
		b = append(b, '\n')
	}
	return string(b)
}
