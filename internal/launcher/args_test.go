package launcher

import (
	"slices"
	"testing"
)

func TestChildArgs(t *testing.T) {
	tests := []struct {
		name      string
		forwarded []string
		want      []string
	}{
		{name: "none", forwarded: nil, want: []string{"--no-preview"}},
		{name: "empty", forwarded: []string{}, want: []string{"--no-preview"}},
		{name: "language", forwarded: []string{"--lang", "en"}, want: []string{"--no-preview", "--lang", "en"}},
		{name: "positional", forwarded: []string{"clip one.mp4", "fr"}, want: []string{"--no-preview", "clip one.mp4", "fr"}},
		{name: "flag repeated by caller", forwarded: []string{"--no-preview"}, want: []string{"--no-preview", "--no-preview"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChildArgs(tt.forwarded)
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ChildArgs(%q) = %q, want %q", tt.forwarded, got, tt.want)
			}
		})
	}
}

func TestChildArgsDoesNotAliasInput(t *testing.T) {
	forwarded := make([]string, 2, 8)
	forwarded[0], forwarded[1] = "a", "b"
	got := ChildArgs(forwarded)
	got[1] = "changed"
	if forwarded[0] != "a" {
		t.Fatalf("forwarded slice was modified: %q", forwarded)
	}
}

func TestCommandString(t *testing.T) {
	cmd := Command{Program: "python", Args: []string{"/opt/my app/subtitle_maker.py", "--no-preview", ""}}
	want := `python "/opt/my app/subtitle_maker.py" --no-preview ""`
	if got := cmd.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}
