package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/inamate/whiteboard/internal/document"
)

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	data, err := document.MarshalFixture(document.NewSampleBoard("board_roadmap"))
	if err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "board_roadmap.yaml")
	if err := os.WriteFile(in, data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		in    string
		scale float64
	}{
		{"fixture fitted", in, 0},
		{"fixture zoomed", in, 2},
		{"sample board", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			if err := run(tt.in, out, 200, 120, tt.scale, true, 0); err != nil {
				t.Fatal(err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
				t.Errorf("size = %v", b)
			}
		})
	}
}

func TestRunMissingFixture(t *testing.T) {
	if err := run(filepath.Join(t.TempDir(), "nope.yaml"), filepath.Join(t.TempDir(), "x.png"), 10, 10, 0, false, 0); err == nil {
		t.Error("expected error for missing fixture")
	}
}
