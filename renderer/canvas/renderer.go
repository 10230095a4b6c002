package canvasrenderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/rosterboard/fonts"
	"github.com/ByLCY/rosterboard/layout"
	"github.com/ByLCY/rosterboard/renderer"
)

const (
	outlineWidth = 2.0
	chromeAlpha  = 0.35
)

var accent = canvas.Hex("#0F62FE")

// Renderer rasterizes surfaces via github.com/tdewolff/canvas.
type Renderer struct {
	baseDir string
	client  *http.Client
	logger  *log.Logger

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	BaseDir string       // 解析相对图片路径的目录
	Client  *http.Client // 跨域图片使用的 HTTP 客户端，默认 http.DefaultClient
	Logger  *log.Logger  // 仅在 renderer.Options.Logging 为真时输出
}

// NewRenderer creates a canvas-based renderer rooted at baseDir for resolving assets.
func NewRenderer(baseDir string) *Renderer { return NewRendererWithOptions(Options{BaseDir: baseDir}) }

// NewRendererWithOptions creates a renderer from opts.
func NewRendererWithOptions(opts Options) *Renderer {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Renderer{
		baseDir:  opts.BaseDir,
		client:   client,
		logger:   opts.Logger,
		families: map[string]*canvas.FontFamily{},
	}
}

// Render captures the surface into a PNG of opts.Width×opts.Height logical px.
func (r *Renderer) Render(ctx context.Context, s *layout.Surface, opts renderer.Options) (renderer.Image, error) {
	if s == nil {
		return nil, renderer.ErrEmptySurface
	}
	width, height := float64(opts.Width), float64(opts.Height)
	if width <= 0 {
		width = s.Width
	}
	if height <= 0 {
		height = s.Height
	}
	if width <= 0 || height <= 0 {
		return nil, renderer.ErrEmptySurface
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	if opts.Logging && r.logger != nil {
		r.logger.Debug("rendering surface", "name", s.Name, "width", width, "height", height, "scale", scale, "blocks", len(s.Blocks))
	}

	c := canvas.New(width, height)
	cctx := canvas.NewContext(c)
	cctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与表面保持左上角为原点

	if opts.Background != nil {
		fillPath(cctx, 0, 0, canvas.Rectangle(width, height), colorFromLayout(*opts.Background))
	}
	if err := r.drawSurface(ctx, cctx, s, opts); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := rasterizer.Draw(c, canvas.DPMM(scale), canvas.DefaultColorSpace)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	b := img.Bounds()
	return &renderer.PNG{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

func (r *Renderer) drawSurface(ctx context.Context, cctx *canvas.Context, s *layout.Surface, opts renderer.Options) error {
	deco := s.Decoration
	outline := canvas.Rectangle(s.Width, s.Height)
	if deco.Radius > 0 {
		outline = canvas.RoundedRectangle(s.Width, s.Height, deco.Radius)
	}
	if s.Background != nil {
		fillPath(cctx, 0, 0, outline, colorFromLayout(*s.Background))
	}
	if s.BackgroundImage != "" {
		img, err := r.loadImage(ctx, s.BackgroundImage, opts)
		if err != nil {
			return err
		}
		if dx := img.Bounds().Dx(); dx > 0 && s.Width > 0 {
			cctx.DrawImage(0, 0, img, canvas.DPMM(float64(dx)/s.Width))
		}
	}
	if deco.Shadow > 0 {
		// 阴影在捕获区域内表现为沿轮廓的一圈暗边。
		w := math.Min(deco.Shadow/4, math.Min(s.Width, s.Height)/2)
		strokePath(cctx, 0, 0, outline, canvas.RGBA(0, 0, 0, 0.15), w)
	}

	for _, b := range s.Blocks {
		if err := r.drawBlock(cctx, b); err != nil {
			return fmt.Errorf("绘制 block %s 失败: %w", b.ID, err)
		}
	}
	return nil
}

func (r *Renderer) drawBlock(cctx *canvas.Context, b *layout.Block) error {
	bounds := b.Bounds()
	if b.Dragging {
		fillPath(cctx, bounds.X, bounds.Y, canvas.Rectangle(bounds.Width, bounds.Height), withAlpha(accent, 0.08))
	}
	if b.Selected {
		strokePath(cctx, bounds.X, bounds.Y, canvas.Rectangle(bounds.Width, bounds.Height), accent, outlineWidth)
	}
	if !b.HandlesHidden {
		h := b.DragHandleRect()
		fillPath(cctx, h.X, h.Y, canvas.Rectangle(h.Width, h.Height), withAlpha(accent, chromeAlpha))
		rh := b.ResizeHandleRect()
		fillPath(cctx, rh.X, rh.Y, canvas.Rectangle(rh.Width, rh.Height), accent)
	}

	content := b.ContentRect()
	cursorY := content.Y
	for _, n := range b.Nodes {
		size := n.EffectiveFontSize()
		font := layout.FontSpec{Weight: n.EffectiveFontWeight()}
		face, err := r.fontFace(font, size, n.EffectiveColor())
		if err != nil {
			return err
		}
		lines, err := r.LayoutLines(n.Content, content.Width, font, size, size*layout.LineHeightFactor)
		if err != nil {
			return err
		}

		var textAlign canvas.TextAlign
		var anchorX float64
		switch b.Align {
		case "center":
			textAlign = canvas.Center
			anchorX = content.X + content.Width/2
		case "right", "end":
			textAlign = canvas.Right
			anchorX = content.Right()
		default:
			textAlign = canvas.Left
			anchorX = content.X
		}

		ascent := face.Metrics().Ascent
		for _, line := range lines {
			cursorY += line.GapBefore
			cctx.DrawText(anchorX, cursorY+ascent, canvas.NewTextLine(face, line.Content, textAlign))
			cursorY += line.Height
		}
	}
	return nil
}

// LayoutLines 实现 layout.Typesetter 接口，使用贪心换行算法。
// width/fontSize/lineHeight 均为逻辑像素；字体面以 pt 创建，在边界处换算。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontSpec, fontSize, lineHeight float64) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, fontSize, layout.Color{A: 255})
	if err != nil {
		return nil, err
	}
	lines := greedyWrapTokens(content, width, face)
	textHeight := face.Metrics().LineHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Height: textHeight}}
	}
	for i := range lines {
		lines[i].Height = textHeight
		if i > 0 {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

func (r *Renderer) loadImage(ctx context.Context, src string, opts renderer.Options) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		if !opts.CrossOrigin {
			return nil, fmt.Errorf("跨域图片 %s: %w", src, renderer.ErrTainted)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("请求图片 %s 失败: %w", src, err)
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("请求图片 %s 失败: %w", src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("请求图片 %s 失败: %s", src, resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
		}
		return img, nil
	}

	if !opts.AllowTaint {
		return nil, fmt.Errorf("本地图片 %s: %w", src, renderer.ErrTainted)
	}
	path := strings.TrimPrefix(src, "file://")
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return nil, fmt.Errorf("未指定资源目录时不允许直接使用相对路径：%s", src)
		}
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	return img, nil
}

// fontFace 以逻辑像素字号创建字体面：画布单位即像素，而字体面按 pt 计。
func (r *Renderer) fontFace(font layout.FontSpec, sizePx float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePx*layout.MmToPt, colorFromLayout(col), canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontSpec) (*canvas.FontFamily, error) {
	bucket := fonts.Bucket(font.Weight)
	key := fmt.Sprintf("%d|%t", bucket, font.Italic)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[key]; ok {
		return family, nil
	}
	family := canvas.NewFontFamily("rosterboard-" + key)
	if err := family.LoadFont(fonts.Load(bucket, font.Italic), 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载内置字体 %s 失败: %w", key, err)
	}
	r.families[key] = family
	return family, nil
}

func fillPath(cctx *canvas.Context, x, y float64, p *canvas.Path, fill color.Color) {
	cctx.SetFillColor(fill)
	cctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	cctx.DrawPath(x, y, p)
}

func strokePath(cctx *canvas.Context, x, y float64, p *canvas.Path, stroke color.Color, width float64) {
	cctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	cctx.SetStrokeColor(stroke)
	cctx.SetStrokeWidth(width)
	cctx.DrawPath(x, y, p)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
}

func withAlpha(c color.RGBA, a float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, a)
}

// greedyWrapTokens 优先在空白处分割，超过限制时在词内拆分；显式换行始终保留。
func greedyWrapTokens(content string, width float64, face *canvas.FontFace) []layout.TextLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []layout.TextLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(force bool) {
		if builder.Len() == 0 {
			if force {
				lines = append(lines, layout.TextLine{})
			}
			return
		}
		lines = append(lines, layout.TextLine{Content: builder.String(), Width: currentWidth})
		builder.Reset()
		currentWidth = 0
	}
	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += face.TextWidth(token)
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		tokenWidth := face.TextWidth(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit {
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}
		for _, chunk := range splitTokenByWidth(token, limit, face) {
			if currentWidth > 0 && currentWidth+face.TextWidth(chunk) > limit {
				emit(false)
			}
			appendToken(chunk)
		}
	}
	emit(true)
	return lines
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, face *canvas.FontFace) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var current []rune
	for _, r := range token {
		current = append(current, r)
		if len(current) > 1 && face.TextWidth(string(current)) > limit {
			parts = append(parts, string(current[:len(current)-1]))
			current = current[len(current)-1:]
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
