package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 该文件定义编辑器共享的表面/文本块树，供构建、交互、渲染与调试 JSON 共用。
// 所有坐标均为逻辑像素（surface 左上角为原点），Rendered/Viewport 为屏幕像素。

// Style defaults and fixed block geometry.
const (
	DefaultFontSize   = 16.0
	LineHeightFactor  = 1.25
	BlockPadding      = 8.0
	DragHandleHeight  = 10.0
	ResizeHandleSize  = 14.0
	DefaultBlockWidth = 240.0

	WeightNormal = 400
	WeightBold   = 700
	WeightHeavy  = 900
)

// Role identifies a styled text run inside a block.
type Role string

const (
	RoleTitle          Role = "title"
	RoleDescription    Role = "description"
	RoleSectionHeading Role = "section-heading"
	RolePriceHighlight Role = "price-highlight"
	RoleText           Role = "text"
)

// CascadeRoles are the roles that follow a block's font-size changes.
var CascadeRoles = []Role{RoleTitle, RoleDescription, RoleSectionHeading, RolePriceHighlight}

// Cascades reports whether r is one of CascadeRoles.
func (r Role) Cascades() bool {
	for _, c := range CascadeRoles {
		if r == c {
			return true
		}
	}
	return false
}

// ParseRole maps a surface-file command name to a Role.
func ParseRole(name string) (Role, bool) {
	switch r := Role(strings.ToLower(name)); r {
	case RoleTitle, RoleDescription, RoleSectionHeading, RolePriceHighlight, RoleText:
		return r, true
	default:
		return "", false
	}
}

// Color 采用 0-255 的 RGBA 数值。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseColor(hex string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Color{}, fmt.Errorf("无法解析颜色 %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("无法解析颜色 %q", hex)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r; the right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: math.Max(r.Width-2*d, 0), Height: math.Max(r.Height-2*d, 0)}
}

// Decoration is container styling that is not part of exported images.
type Decoration struct {
	Shadow float64 `json:"shadow"` // blur radius in px, 0 means none
	Radius float64 `json:"radius"` // corner radius in px
}

// Surface is the bounded region blocks live on.
type Surface struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Rendered 为当前在视口中的实际位置与大小（受缩放影响）。
	Rendered Rect `json:"rendered"`
	Viewport Size `json:"viewport"`

	FontSize        float64    `json:"fontSize"`
	FontWeight      int        `json:"fontWeight"`
	Color           Color      `json:"color"`
	Background      *Color     `json:"background,omitempty"`
	BackgroundImage string     `json:"backgroundImage,omitempty"`
	Decoration      Decoration `json:"decoration"`

	Blocks []*Block `json:"blocks"`

	Typesetter Typesetter `json:"-"`
}

// AddBlock attaches b to the surface.
func (s *Surface) AddBlock(b *Block) {
	b.surface = s
	s.Blocks = append(s.Blocks, b)
}

// Block returns the block with the given id.
func (s *Surface) Block(id string) (*Block, bool) {
	for _, b := range s.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// EditableBlocks returns a snapshot of the blocks that are currently editable.
func (s *Surface) EditableBlocks() []*Block {
	var out []*Block
	for _, b := range s.Blocks {
		if b.Editable {
			out = append(out, b)
		}
	}
	return out
}

// Scale returns logical px per rendered px on each axis. A zero rendered extent
// yields 1 on that axis.
func (s *Surface) Scale() (sx, sy float64) {
	return axisScale(s.Width, s.Rendered.Width), axisScale(s.Height, s.Rendered.Height)
}

func axisScale(logical, rendered float64) float64 {
	if rendered == 0 || logical == 0 {
		return 1
	}
	return logical / rendered
}

// ToViewport maps a logical rectangle to its on-screen rectangle.
func (s *Surface) ToViewport(r Rect) Rect {
	sx, sy := s.Scale()
	return Rect{
		X:      s.Rendered.X + r.X/sx,
		Y:      s.Rendered.Y + r.Y/sy,
		Width:  r.Width / sx,
		Height: r.Height / sy,
	}
}

// ToLogical maps a viewport point into surface coordinates.
func (s *Surface) ToLogical(x, y float64) (float64, float64) {
	sx, sy := s.Scale()
	return (x - s.Rendered.X) * sx, (y - s.Rendered.Y) * sy
}

// Block is a positioned, sized and styled text region.
type Block struct {
	ID        string  `json:"id"`
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
	Width     float64 `json:"width"`
	MinHeight float64 `json:"minHeight"`

	FontSize   float64 `json:"fontSize,omitempty"`   // 0 继承 surface
	FontWeight int     `json:"fontWeight,omitempty"` // 0 继承 surface
	Color      *Color  `json:"color,omitempty"`
	Align      string  `json:"align,omitempty"`

	Editable   bool `json:"editable"`
	Spellcheck bool `json:"spellcheck"`

	// 交互标记与把手可见性，只影响编辑态外观。
	Selected      bool `json:"selected"`
	Dragging      bool `json:"dragging"`
	HandlesHidden bool `json:"handlesHidden"`

	Nodes []*Node `json:"nodes"`

	surface *Surface
}

// AddNode appends a text run to the block.
func (b *Block) AddNode(n *Node) {
	n.block = b
	b.Nodes = append(b.Nodes, n)
}

// Surface returns the surface the block is attached to, if any.
func (b *Block) Surface() *Surface { return b.surface }

// EffectiveFontSize resolves the block's font size through the surface default.
func (b *Block) EffectiveFontSize() float64 {
	if b.FontSize > 0 {
		return b.FontSize
	}
	if b.surface != nil && b.surface.FontSize > 0 {
		return b.surface.FontSize
	}
	return DefaultFontSize
}

// EffectiveFontWeight resolves the block's weight through the surface default.
func (b *Block) EffectiveFontWeight() int {
	if b.FontWeight > 0 {
		return b.FontWeight
	}
	if b.surface != nil && b.surface.FontWeight > 0 {
		return b.surface.FontWeight
	}
	return WeightNormal
}

// EffectiveColor resolves the block's text color.
func (b *Block) EffectiveColor() Color {
	if b.Color != nil {
		return *b.Color
	}
	if b.surface != nil && b.surface.Color.A > 0 {
		return b.surface.Color
	}
	return Color{R: 30, G: 30, B: 30, A: 255}
}

// Height is the rendered block height: min-height is a floor, content may grow past it.
func (b *Block) Height() float64 {
	return math.Max(b.MinHeight, b.ContentHeight())
}

// Bounds returns the block rectangle in surface coordinates.
func (b *Block) Bounds() Rect {
	return Rect{X: b.Left, Y: b.Top, Width: b.Width, Height: b.Height()}
}

// ContentRect is the padded area text is laid out in.
func (b *Block) ContentRect() Rect { return b.Bounds().Inset(BlockPadding) }

// DragHandleRect is the strip along the block's top edge.
func (b *Block) DragHandleRect() Rect {
	return Rect{X: b.Left, Y: b.Top, Width: b.Width, Height: DragHandleHeight}
}

// ResizeHandleRect is the square at the block's bottom-right corner.
func (b *Block) ResizeHandleRect() Rect {
	r := b.Bounds()
	return Rect{X: r.Right() - ResizeHandleSize, Y: r.Bottom() - ResizeHandleSize, Width: ResizeHandleSize, Height: ResizeHandleSize}
}

// ContentHeight measures the text runs at the current width, including padding.
func (b *Block) ContentHeight() float64 {
	total := 2 * BlockPadding
	width := math.Max(b.Width-2*BlockPadding, 0)
	for _, n := range b.Nodes {
		total += n.Height(width)
	}
	return total
}

// Node is a text run inside a block, optionally tagged with a role.
type Node struct {
	Role       Role    `json:"role"`
	Content    string  `json:"content"`
	FontSize   float64 `json:"fontSize,omitempty"`   // 0 继承 block
	FontWeight int     `json:"fontWeight,omitempty"` // 0 继承 block
	Color      *Color  `json:"color,omitempty"`

	block *Block
}

// EffectiveFontSize resolves the node's font size through its block.
func (n *Node) EffectiveFontSize() float64 {
	if n.FontSize > 0 {
		return n.FontSize
	}
	if n.block != nil {
		return n.block.EffectiveFontSize()
	}
	return DefaultFontSize
}

// EffectiveFontWeight resolves the node's weight through its block.
func (n *Node) EffectiveFontWeight() int {
	if n.FontWeight > 0 {
		return n.FontWeight
	}
	if n.block != nil {
		return n.block.EffectiveFontWeight()
	}
	return WeightNormal
}

// EffectiveColor resolves the node's color through its block.
func (n *Node) EffectiveColor() Color {
	if n.Color != nil {
		return *n.Color
	}
	if n.block != nil {
		return n.block.EffectiveColor()
	}
	return Color{R: 30, G: 30, B: 30, A: 255}
}

// Lines lays the node out at width with the surface's typesetter. Without a
// typesetter every explicit line counts as one line.
func (n *Node) Lines(width float64) []TextLine {
	size := n.EffectiveFontSize()
	lineHeight := size * LineHeightFactor
	if n.block != nil && n.block.surface != nil && n.block.surface.Typesetter != nil {
		font := FontSpec{Weight: n.EffectiveFontWeight()}
		if lines, err := n.block.surface.Typesetter.LayoutLines(n.Content, width, font, size, lineHeight); err == nil {
			return lines
		}
	}
	parts := strings.Split(n.Content, "\n")
	lines := make([]TextLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, TextLine{Content: p, Height: lineHeight})
	}
	return lines
}

// Height is the total height of the node's lines at width.
func (n *Node) Height(width float64) float64 {
	total := 0.0
	for _, ln := range n.Lines(width) {
		total += ln.GapBefore + ln.Height
	}
	return total
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}
