package main

import "testing"

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	if !names["generate-new-project-cargo-lock"] {
		t.Fatalf("generate subcommand missing: %v", names)
	}
	if !names["synchronize-generated-files"] {
		t.Fatalf("synchronize subcommand missing: %v", names)
	}

	generate, _, err := root.Find([]string{"generate-new-project-cargo-lock"})
	if err != nil {
		t.Fatalf("find generate subcommand: %v", err)
	}
	if generate.Flags().Lookup("force-path") == nil {
		t.Fatalf("force-path flag missing")
	}
}
