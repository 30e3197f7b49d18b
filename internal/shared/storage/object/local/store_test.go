package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenDeleteRoundtrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	storedName, size, err := store.Save(ctx, "my report.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("pdf bytes")) {
		t.Fatalf("expected size %d, got %d", len("pdf bytes"), size)
	}
	if !strings.HasSuffix(storedName, "_my_report.pdf") {
		t.Fatalf("stored name should keep sanitized original: %q", storedName)
	}

	rc, err := store.Open(ctx, storedName)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Fatalf("roundtrip mismatch: %q", data)
	}

	if err := store.Delete(ctx, storedName); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Open(ctx, storedName); err == nil {
		t.Fatal("expected open to fail after delete")
	}
}

func TestDeleteMissingIsTolerated(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Delete(context.Background(), "never-existed.txt"); err != nil {
		t.Fatalf("missing artifact must not error: %v", err)
	}
}

func TestSaveGeneratesUniqueStoredNames(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	first, _, err := store.Save(ctx, "dup.txt", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, _, err := store.Save(ctx, "dup.txt", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Fatalf("stored names must be unique, both %q", first)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside.txt"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
	if err := store.Delete(context.Background(), "/etc/passwd"); err == nil {
		t.Fatal("expected absolute path to be rejected")
	}
}
