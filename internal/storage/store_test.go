package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Animation: "rose",
		Output:    "rose_curves.avi",
		Codec:     "mjpeg",
		FPS:       30,
		Width:     800,
		Height:    800,
		Frames:    2,
		Written:   2,
		Params:    map[string]float64{"d": 5},
	}
	frames := []FrameRecord{{Frame: 0, Time: 0, Hue: 0}, {Frame: 1, Time: 10, Hue: 0.5}}

	runID, err := st.Save(meta, frames)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Animation != "rose" {
		t.Errorf("expected animation 'rose', got '%s'", loaded.Animation)
	}
	if loaded.Params["d"] != 5 {
		t.Errorf("expected d 5, got %f", loaded.Params["d"])
	}
	if loaded.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	got, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(got))
	}
	if got[1].Time != 10 || got[1].Hue != 0.5 {
		t.Errorf("unexpected frame %+v", got[1])
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	now := time.Now()
	for i, anim := range []string{"rose", "contours"} {
		meta := RunMetadata{ID: anim, Animation: anim, Timestamp: now.Add(time.Duration(i) * time.Second)}
		if _, err := st.Save(meta, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Animation != "contours" {
		t.Errorf("expected newest first, got %s", runs[0].Animation)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestStoreSaveReportsWriteFailure(t *testing.T) {
	st := New(t.TempDir())
	meta := RunMetadata{ID: "rose_1", Animation: "rose"}
	if err := os.MkdirAll(filepath.Join(st.Dir(), meta.ID, framesFile), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save(meta, []FrameRecord{{Frame: 0}}); err == nil {
		t.Fatal("expected an error when the frame log cannot be written")
	}
	if _, err := st.Load(meta.ID); err != nil {
		t.Errorf("metadata should be complete: %v", err)
	}
}
