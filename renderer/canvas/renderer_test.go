package canvasrenderer

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/ByLCY/rosterboard/layout"
	"github.com/ByLCY/rosterboard/renderer"
)

var body = layout.FontSpec{Weight: layout.WeightNormal}

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	r := NewRenderer(".")
	lines, err := r.LayoutLines("hello world again", 40, body, 16, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestGreedyWrapHonorsNewlines(t *testing.T) {
	r := NewRenderer(".")
	lines, err := r.LayoutLines("foo\n\nbar", 400, body, 16, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

// TestLineHeightsInvariant 验证：首行 GapBefore == 0，其余行 GapBefore ≈ max(lineHeight - textHeight, 0)。
func TestLineHeightsInvariant(t *testing.T) {
	r := NewRenderer(".")
	lineHeight := 16 * 1.6
	lines, err := r.LayoutLines("longlonglong longlonglong longlonglong longlonglong", 120, body, 16, lineHeight)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines for invariant test, got %d", len(lines))
	}
	textHeight := lines[0].Height
	if textHeight <= 0 {
		t.Fatalf("invalid text height: %g", textHeight)
	}
	if lines[0].GapBefore != 0 {
		t.Fatalf("first line GapBefore must be 0, got %g", lines[0].GapBefore)
	}
	wantLeading := math.Max(lineHeight-textHeight, 0)
	for i := 1; i < len(lines); i++ {
		if diff := math.Abs(lines[i].GapBefore - wantLeading); diff > 1e-6 {
			t.Fatalf("line %d GapBefore mismatch: got=%g want=%g", i, lines[i].GapBefore, wantLeading)
		}
	}
}

// TestGreedyWrapWidthLimit 验证每行宽度不超过限制（px）。
func TestGreedyWrapWidthLimit(t *testing.T) {
	r := NewRenderer(".")
	limit := 90.0
	lines, err := r.LayoutLines("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", limit, body, 16, 20)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected the long word to be split, got %d lines", len(lines))
	}
	for i, ln := range lines {
		if ln.Width-limit > 1e-6 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, ln.Width, limit)
		}
	}
}

// 当第一行宽度与容器宽度恰好相等且后面紧跟一个显式换行时，不应产生额外的空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	r := NewRenderer(".")
	measured, err := r.LayoutLines("SAMPLE-A", 1e6, body, 16, 20)
	if err != nil || len(measured) != 1 {
		t.Fatalf("measure failed: %v %d", err, len(measured))
	}
	lines, err := r.LayoutLines("SAMPLE-A\nSAMPLE-B", measured[0].Width, body, 16, 20)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) != 2 || lines[0].Content != "SAMPLE-A" || lines[1].Content != "SAMPLE-B" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func testSurface() *layout.Surface {
	s := &layout.Surface{
		Name:     "T",
		Width:    200,
		Height:   100,
		Rendered: layout.Rect{Width: 200, Height: 100},
		FontSize: 12,
	}
	b := &layout.Block{ID: "b", Left: 20, Top: 20, Width: 120, MinHeight: 40}
	b.AddNode(&layout.Node{Role: layout.RoleTitle, Content: "Menu"})
	s.AddBlock(b)
	return s
}

func TestRenderProducesTransparentPNG(t *testing.T) {
	r := NewRenderer(".")
	s := testSurface()
	s.Blocks[0].HandlesHidden = true

	img, err := r.Render(context.Background(), s, renderer.Options{Scale: 1, Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	p, ok := img.(*renderer.PNG)
	if !ok {
		t.Fatalf("expected *renderer.PNG, got %T", img)
	}
	decoded, err := png.Decode(bytes.NewReader(p.Data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("unexpected output size %v", b)
	}
	if _, _, _, a := decoded.At(1, 1).RGBA(); a != 0 {
		t.Fatalf("corner should stay transparent without a background, alpha=%d", a)
	}

	mediaType, data, err := renderer.DecodeDataURL(img.DataURL())
	if err != nil || mediaType != "image/png" || !bytes.Equal(data, p.Data) {
		t.Fatalf("data URL round trip failed: %v %s", err, mediaType)
	}
}

func TestRenderScalesOutput(t *testing.T) {
	r := NewRenderer(".")
	img, err := r.Render(context.Background(), testSurface(), renderer.Options{Scale: 2, Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if p := img.(*renderer.PNG); p.Width != 400 || p.Height != 200 {
		t.Fatalf("expected 400x200 at scale 2, got %dx%d", p.Width, p.Height)
	}
}

func TestRenderRefusesTaintedImages(t *testing.T) {
	r := NewRenderer(t.TempDir())
	s := testSurface()
	s.BackgroundImage = "paper.png"
	_, err := r.Render(context.Background(), s, renderer.Options{Width: 200, Height: 100})
	if !errors.Is(err, renderer.ErrTainted) {
		t.Fatalf("expected ErrTainted, got %v", err)
	}

	s.BackgroundImage = "https://example.invalid/paper.png"
	_, err = r.Render(context.Background(), s, renderer.Options{Width: 200, Height: 100, AllowTaint: true})
	if !errors.Is(err, renderer.ErrTainted) {
		t.Fatalf("expected ErrTainted for cross-origin image, got %v", err)
	}
}

func TestRenderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRenderer(".").Render(ctx, testSurface(), renderer.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRenderRejectsEmptySurface(t *testing.T) {
	if _, err := NewRenderer(".").Render(context.Background(), nil, renderer.Options{}); !errors.Is(err, renderer.ErrEmptySurface) {
		t.Fatalf("expected ErrEmptySurface, got %v", err)
	}
}
