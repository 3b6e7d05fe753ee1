package excmd

// Pipeline glues parsing and dispatch into the single entry point
// spec.md §4.F describes: Parse, then Resolve (left to the handler,
// since resolution needs live editor state this package doesn't own),
// then Dispatch.
type Pipeline struct {
	Parser   *Parser
	Registry *Registry
}

func NewPipeline() *Pipeline {
	return &Pipeline{Parser: NewParser(), Registry: NewRegistry()}
}

// Execute parses line and dispatches it through the registry.
func (p *Pipeline) Execute(ctx interface{}, line string) error {
	cmd, err := p.Parser.Parse(line)
	if err != nil {
		return err
	}
	return p.Registry.Execute(ctx, cmd)
}

// Parse exposes the parse step alone, without dispatching. The
// composite built-ins do not call it: `:global` re-enters through
// Editor.ExecuteLine and `:normal` through Editor.DispatchKey.
func (p *Pipeline) Parse(line string) (Command, error) {
	return p.Parser.Parse(line)
}
