package services_test

import (
	"errors"
	"os/exec"
	"strings"
	"testing"

	"cuesplit/internal/services"
)

func TestCommandErrorClassifiesMissingBinary(t *testing.T) {
	err := exec.Command("clearly-not-present-binary").Run()
	if err == nil {
		t.Fatal("expected missing binary to fail")
	}
	wrapped := services.CommandError("split", "clearly-not-present-binary", "", err)
	if !errors.Is(wrapped, services.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", wrapped)
	}
}

func TestCommandErrorClassifiesExitStatus(t *testing.T) {
	err := exec.Command("/bin/sh", "-c", "exit 3").Run()
	if err == nil {
		t.Fatal("expected non-zero exit")
	}
	wrapped := services.CommandError("split", "shnsplit", "progress\nbad header\n\n", err)
	if !errors.Is(wrapped, services.ErrProcessFailed) {
		t.Fatalf("expected ErrProcessFailed, got %v", wrapped)
	}
	for _, fragment := range []string{"split", "shnsplit", `"bad header"`} {
		if !strings.Contains(wrapped.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, wrapped.Error())
		}
	}
}

func TestLastLine(t *testing.T) {
	if got := services.LastLine("\n  \n"); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if got := services.LastLine("one\ntwo\n"); got != `"two"` {
		t.Fatalf("unexpected summary %q", got)
	}
}
