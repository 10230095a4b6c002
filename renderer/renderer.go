package renderer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/rosterboard/layout"
)

var (
	// ErrEmptySurface is returned when there is nothing to capture.
	ErrEmptySurface = errors.New("renderer: empty surface")
	// ErrTainted is returned when an image source is refused by the cross-origin/taint options.
	ErrTainted = errors.New("renderer: image source not allowed")
)

// Options mirrors the capture flags of a DOM-to-canvas rasterizer.
type Options struct {
	Scale       float64       // output px per logical px
	CrossOrigin bool          // 允许加载 http(s) 图片
	AllowTaint  bool          // 允许加载本地文件图片
	Background  *layout.Color // nil 表示透明
	Width       int           // 输出画布逻辑宽度
	Height      int           // 输出画布逻辑高度
	Logging     bool
}

// Image is a captured raster exposing a data-URL accessor.
type Image interface {
	DataURL() string
}

// Renderer 将表面捕获为图像。
type Renderer interface {
	Render(ctx context.Context, s *layout.Surface, opts Options) (Image, error)
}

// PNG is an encoded PNG image.
type PNG struct {
	Data   []byte
	Width  int
	Height int
}

// DataURL returns the image as a base64 data URL.
func (p *PNG) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// DecodeDataURL splits a base64 data URL into its media type and payload.
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data URL has no payload")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return mediaType, []byte(payload), nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL: %w", err)
	}
	return mediaType, data, nil
}
