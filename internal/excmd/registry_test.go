package excmd

import "testing"

func TestRegistryExecuteUnknownCommand(t *testing.T) {
	reg := NewRegistry()
	err := reg.Execute(nil, Command{Name: "bogus"})
	if _, ok := err.(*ErrUnknownCommand); !ok {
		t.Fatalf("Execute(unknown) = %v, want *ErrUnknownCommand", err)
	}
}

func TestRegistryBuiltinCannotBeOverridden(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterBuiltin("write", func(ctx interface{}, cmd Command) error { return nil })

	err := reg.Register("write", func(ctx interface{}, cmd Command) error { return nil })
	if _, ok := err.(*ErrBuiltinCollision); !ok {
		t.Fatalf("Register over builtin = %v, want *ErrBuiltinCollision", err)
	}
}

func TestRegistryPluginRegistersNewCommand(t *testing.T) {
	reg := NewRegistry()
	called := false
	err := reg.Register("myplugin", func(ctx interface{}, cmd Command) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Execute(nil, Command{Name: "myplugin"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !called {
		t.Fatalf("plugin handler was not invoked")
	}
}

func TestPipelineExecute(t *testing.T) {
	p := NewPipeline()
	var gotName string
	p.Registry.RegisterBuiltin("write", func(ctx interface{}, cmd Command) error {
		gotName = cmd.Name
		return nil
	})
	if err := p.Execute(nil, "w"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gotName != "write" {
		t.Fatalf("gotName = %q, want 'write' (alias resolved)", gotName)
	}
}
