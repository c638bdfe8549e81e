package icons

import "testing"

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "known icon", in: "wrench", want: "wrench"},
		{name: "fallback name resolves to itself", in: "folder-open", want: "folder-open"},
		{name: "unknown icon falls back", in: "does-not-exist", want: FallbackIcon.Name},
		{name: "empty name falls back", in: "", want: FallbackIcon.Name},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := registry.Resolve(tt.in); got.Name != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got.Name, tt.want)
			}
		})
	}
}
