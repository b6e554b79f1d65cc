package launcher

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsolePauserConsumesOneByte(t *testing.T) {
	in := strings.NewReader("xy")
	var out bytes.Buffer
	if err := (ConsolePauser{In: in, Out: &out}).Pause(); err != nil {
		t.Fatalf("Pause returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), PausePrompt) {
		t.Fatalf("expected prompt, got %q", out.String())
	}
	if in.Len() != 1 {
		t.Fatalf("expected exactly one byte consumed, %d left", in.Len())
	}
}

func TestConsolePauserTreatsEOFAsKeyPress(t *testing.T) {
	var out bytes.Buffer
	if err := (ConsolePauser{In: strings.NewReader(""), Out: &out}).Pause(); err != nil {
		t.Fatalf("expected EOF to end the pause, got %v", err)
	}
}
