package handlers

import (
	"context"
	"errors"
	"testing"
)

func TestSaveThenReleaseAssetsOrder(t *testing.T) {
	saved := false
	var released []string

	err := saveThenReleaseAssets(context.Background(),
		func(context.Context) error {
			saved = true
			return nil
		},
		[]string{"catalog/a", "", "catalog/b"},
		func(_ context.Context, publicID string) error {
			if !saved {
				t.Error("asset released before the document was saved")
			}
			released = append(released, publicID)
			return nil
		})
	if err != nil {
		t.Fatalf("saveThenReleaseAssets: %v", err)
	}
	if len(released) != 2 || released[0] != "catalog/a" || released[1] != "catalog/b" {
		t.Errorf("released = %v, want [catalog/a catalog/b]", released)
	}
}

func TestSaveThenReleaseAssetsKeepsOldOnFailedSave(t *testing.T) {
	saveErr := errors.New("write failed")
	destroyed := 0

	err := saveThenReleaseAssets(context.Background(),
		func(context.Context) error { return saveErr },
		[]string{"catalog/a"},
		func(context.Context, string) error {
			destroyed++
			return nil
		})
	if !errors.Is(err, saveErr) {
		t.Errorf("err = %v, want %v", err, saveErr)
	}
	if destroyed != 0 {
		t.Errorf("destroyed %d assets after a failed save, want 0", destroyed)
	}
}

func TestSaveThenReleaseAssetsSwallowsDestroyFailure(t *testing.T) {
	err := saveThenReleaseAssets(context.Background(),
		func(context.Context) error { return nil },
		[]string{"catalog/a"},
		func(context.Context, string) error { return errors.New("remote down") })
	if err != nil {
		t.Errorf("destroy failure surfaced to the caller: %v", err)
	}
}

func TestReleaseUploadedFiles(t *testing.T) {
	files := make(uploadedFileSet)
	files.add("addOnFiles", "0", uploadedFile{URL: "u1", PublicID: "customization-options/a"})
	files.add("backgroundFiles", "bg-1", uploadedFile{URL: "u2", PublicID: "customization-options/b"})
	files.add("shapeOptionFiles", "2", uploadedFile{URL: "u3"})

	released := map[string]bool{}
	releaseUploadedFiles(context.Background(), files, func(_ context.Context, publicID string) error {
		released[publicID] = true
		return errors.New("remote down")
	})

	if len(released) != 2 || !released["customization-options/a"] || !released["customization-options/b"] {
		t.Errorf("released = %v, want both staged assets and no empty ids", released)
	}
}
