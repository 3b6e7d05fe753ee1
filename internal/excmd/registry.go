package excmd

import "fmt"

// HandlerFunc executes one resolved Command against whatever editor
// state ctx carries; the Registry is agnostic about ctx's concrete
// type, it only dispatches by name.
type HandlerFunc func(ctx interface{}, cmd Command) error

// Registry is the Ex-Command Pipeline's command table: a flat
// map[string]HandlerFunc, per spec.md §9's guidance to prefer table
// dispatch over a virtual-method hierarchy of command objects.
type Registry struct {
	handlers map[string]HandlerFunc
	builtin  map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]HandlerFunc),
		builtin:  make(map[string]bool),
	}
}

// RegisterBuiltin installs a handler that cannot be shadowed by a
// later plugin Register call for the same name.
func (r *Registry) RegisterBuiltin(name string, fn HandlerFunc) {
	r.handlers[name] = fn
	r.builtin[name] = true
}

// ErrBuiltinCollision is returned by Register when name already names
// a built-in command; built-ins always win (spec.md §4.F's plugin
// registration rule).
type ErrBuiltinCollision struct{ Name string }

func (e *ErrBuiltinCollision) Error() string {
	return fmt.Sprintf("%q is a built-in command and cannot be overridden", e.Name)
}

// Register installs a plugin-provided handler. Returns
// ErrBuiltinCollision if a built-in already owns name.
func (r *Registry) Register(name string, fn HandlerFunc) error {
	if r.builtin[name] {
		return &ErrBuiltinCollision{Name: name}
	}
	r.handlers[name] = fn
	return nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Execute dispatches cmd to its registered handler.
func (r *Registry) Execute(ctx interface{}, cmd Command) error {
	fn, ok := r.handlers[cmd.Name]
	if !ok {
		return &ErrUnknownCommand{Name: cmd.Name}
	}
	return fn(ctx, cmd)
}

// Names returns every registered command name, for completion.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	return out
}
