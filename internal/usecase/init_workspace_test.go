package usecase

import (
	"errors"
	"testing"

	"github.com/allenai/mathfish/internal/domain"
)

func TestInitWorkspace_DelegatesToInitializer(t *testing.T) {
	fi := &fakeInitializer{}
	if err := NewInitWorkspace(fi).Execute("/tmp/ws", true); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if fi.root != "/tmp/ws" || !fi.force {
		t.Fatalf("unexpected call root=%q force=%v", fi.root, fi.force)
	}
}

func TestInitWorkspace_EmptyRoot(t *testing.T) {
	fi := &fakeInitializer{}
	err := NewInitWorkspace(fi).Execute("  ", false)
	if !domain.IsKind(err, domain.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
	if fi.root != "" {
		t.Fatalf("initializer should not run for an empty root")
	}
}

func TestInitWorkspace_PropagatesError(t *testing.T) {
	initErr := errors.New("read-only fs")
	err := NewInitWorkspace(&fakeInitializer{err: initErr}).Execute("ws", false)
	if !errors.Is(err, initErr) {
		t.Fatalf("expected initErr, got %v", err)
	}
}
