package vsqlc_test

import (
	"context"
	"testing"

	"github.com/vsqlc/vsqlc"
)

func TestCompile(t *testing.T) {
	f, err := vsqlc.Compile("city = 'London'")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if len(f.Must) != 1 {
		t.Fatalf("Must = %v, want exactly one condition", f.Must)
	}
	mv, ok := f.Must[0].(*vsqlc.FieldMatchValue)
	if !ok {
		t.Fatalf("Must[0] = %T, want *FieldMatchValue", f.Must[0])
	}
	if mv.Key != "city" {
		t.Errorf("Key = %q, want %q", mv.Key, "city")
	}
}

func TestCompileContext_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := vsqlc.CompileContext(ctx, "city = 'London'"); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
