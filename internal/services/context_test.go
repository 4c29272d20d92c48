package services_test

import (
	"context"
	"testing"

	"cuesplit/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStage(ctx, "split")
	ctx = services.WithImage(ctx, "album.flac")

	if rid, ok := services.RunIDFromContext(ctx); !ok || rid != "run-123" {
		t.Fatalf("unexpected run id: %v %v", rid, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "split" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if image, ok := services.ImageFromContext(ctx); !ok || image != "album.flac" {
		t.Fatalf("unexpected image: %v %v", image, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
