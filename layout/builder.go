package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ByLCY/rosterboard/binding"
	"github.com/ByLCY/rosterboard/dsl"
)

var (
	blockAttrKeys = map[string]bool{"left": true, "top": true, "width": true, "min-height": true, "height": true}
	nodeAttrKeys  = map[string]bool{"size": true, "weight": true, "color": true}
)

// Build 根据 surface 文件的 AST 生成表面与文本块树。
func Build(doc *dsl.Document, opts BuildOptions) (*Surface, error) {
	if doc == nil || doc.Body == nil {
		return nil, fmt.Errorf("文档为空")
	}
	size, err := ParseSize(doc.Size)
	if err != nil {
		return nil, fmt.Errorf("surface %s: %w", doc.Name, err)
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	s := &Surface{
		Name:       doc.Name,
		Width:      size.Width,
		Height:     size.Height,
		Rendered:   Rect{Width: size.Width, Height: size.Height},
		FontSize:   DefaultFontSize,
		FontWeight: WeightNormal,
		Color:      Color{R: 30, G: 30, B: 30, A: 255},
		Typesetter: opts.Typesetter,
	}

	viewportSet := false
	for _, stmt := range doc.Body.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := applySurfaceProp(s, stmt.Assignment); err != nil {
				return nil, err
			}
		case stmt.Command != nil:
			cmd := stmt.Command
			switch cmd.Name {
			case "viewport":
				if len(cmd.Args) != 1 {
					return nil, fmt.Errorf("%s: viewport 需要一个 WxH 参数", cmd.Pos)
				}
				vp, err := ParseSize(cmd.Args[0].Text())
				if err != nil {
					return nil, fmt.Errorf("%s: viewport: %w", cmd.Pos, err)
				}
				s.Viewport = vp
				viewportSet = true
			case "rendered":
				r, err := ParseRendered(cmd.Args)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", cmd.Pos, err)
				}
				s.Rendered = r
			case "block":
				b, err := buildBlock(cmd, opts.Data, newID)
				if err != nil {
					return nil, err
				}
				s.AddBlock(b)
			default:
				// 其余命令暂未实现，忽略即可
				continue
			}
		}
	}
	if !viewportSet {
		s.Viewport = Size{Width: s.Rendered.Right(), Height: s.Rendered.Bottom()}
	}
	return s, nil
}

// ParseRendered reads "x y WxH" or "WxH" into a viewport rectangle.
func ParseRendered(args []*dsl.Arg) (Rect, error) {
	var x, y float64
	switch len(args) {
	case 1:
	case 3:
		var err error
		if x, err = ParsePX(args[0].Text()); err != nil {
			return Rect{}, fmt.Errorf("rendered: %w", err)
		}
		if y, err = ParsePX(args[1].Text()); err != nil {
			return Rect{}, fmt.Errorf("rendered: %w", err)
		}
	default:
		return Rect{}, fmt.Errorf("rendered 需要 [x y] WxH 参数")
	}
	size, err := ParseSize(args[len(args)-1].Text())
	if err != nil {
		return Rect{}, fmt.Errorf("rendered: %w", err)
	}
	return Rect{X: x, Y: y, Width: size.Width, Height: size.Height}, nil
}

func applySurfaceProp(s *Surface, a *dsl.Assignment) error {
	val := a.Value.Text()
	var err error
	switch a.Key {
	case "font-size":
		s.FontSize, err = ParsePX(val)
	case "font-weight":
		s.FontWeight, err = ParseWeight(val)
	case "color":
		s.Color, err = ParseColor(val)
	case "background":
		if strings.EqualFold(val, "none") {
			s.Background = nil
			return nil
		}
		var c Color
		if c, err = ParseColor(val); err == nil {
			s.Background = &c
		}
	case "background-image":
		s.BackgroundImage = val
	case "shadow":
		s.Decoration.Shadow, err = ParsePX(val)
	case "radius":
		s.Decoration.Radius, err = ParsePX(val)
	default:
		return fmt.Errorf("%s: 未知的 surface 属性 %s", a.Value.Pos, a.Key)
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", a.Value.Pos, a.Key, err)
	}
	return nil
}

func buildBlock(cmd *dsl.Command, data any, newID func() string) (*Block, error) {
	name, attrs, err := parseArgs(cmd.Args, blockAttrKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: block: %w", cmd.Pos, err)
	}
	if name == "" {
		name = newID()
	}
	b := &Block{ID: name, Width: DefaultBlockWidth, Editable: true}

	for _, f := range []struct {
		key string
		dst *float64
	}{{"left", &b.Left}, {"top", &b.Top}, {"width", &b.Width}, {"height", &b.MinHeight}, {"min-height", &b.MinHeight}} {
		v, ok := attrs[f.key]
		if !ok {
			continue
		}
		if *f.dst, err = ParsePX(v); err != nil {
			return nil, fmt.Errorf("%s: block %s: %s: %w", cmd.Pos, name, f.key, err)
		}
	}

	if cmd.Block == nil {
		return b, nil
	}
	for _, stmt := range cmd.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := applyBlockProp(b, stmt.Assignment); err != nil {
				return nil, fmt.Errorf("block %s: %w", name, err)
			}
		case stmt.Text != nil:
			b.AddNode(&Node{Role: RoleText, Content: binding.Interpolate(string(stmt.Text.Value), data)})
		case stmt.Command != nil:
			n, err := buildNode(stmt.Command, data)
			if err != nil {
				return nil, fmt.Errorf("block %s: %w", name, err)
			}
			b.AddNode(n)
		}
	}
	return b, nil
}

func applyBlockProp(b *Block, a *dsl.Assignment) error {
	val := a.Value.Text()
	var err error
	switch a.Key {
	case "font-size":
		b.FontSize, err = ParsePX(val)
	case "font-weight":
		b.FontWeight, err = ParseWeight(val)
	case "color":
		var c Color
		if c, err = ParseColor(val); err == nil {
			b.Color = &c
		}
	case "align":
		b.Align = strings.ToLower(val)
	case "editable":
		b.Editable, err = strconv.ParseBool(val)
	default:
		return fmt.Errorf("%s: 未知的 block 属性 %s", a.Value.Pos, a.Key)
	}
	if err != nil {
		return fmt.Errorf("%s: %s: %w", a.Value.Pos, a.Key, err)
	}
	return nil
}

func buildNode(cmd *dsl.Command, data any) (*Node, error) {
	role, ok := ParseRole(cmd.Name)
	if !ok {
		return nil, fmt.Errorf("%s: 未知的文本角色 %s", cmd.Pos, cmd.Name)
	}
	_, attrs, err := parseArgs(cmd.Args, nodeAttrKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", cmd.Pos, role, err)
	}
	n := &Node{Role: role}
	if v, ok := attrs["size"]; ok {
		if n.FontSize, err = ParsePX(v); err != nil {
			return nil, fmt.Errorf("%s: %s: size: %w", cmd.Pos, role, err)
		}
	}
	if v, ok := attrs["weight"]; ok {
		if n.FontWeight, err = ParseWeight(v); err != nil {
			return nil, fmt.Errorf("%s: %s: weight: %w", cmd.Pos, role, err)
		}
	}
	if v, ok := attrs["color"]; ok {
		c, err := ParseColor(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: color: %w", cmd.Pos, role, err)
		}
		n.Color = &c
	}
	if cmd.Block != nil {
		var parts []string
		for _, stmt := range cmd.Block.Statements {
			if stmt.Text != nil {
				parts = append(parts, string(stmt.Text.Value))
			}
		}
		n.Content = binding.Interpolate(strings.Join(parts, "\n"), data)
	}
	return n, nil
}

// parseArgs 解析 "[name] key value key value ..." 形式的参数。
// 第一个参数若不是已知属性名则视为名称。
func parseArgs(args []*dsl.Arg, keys map[string]bool) (string, map[string]string, error) {
	attrs := map[string]string{}
	name := ""
	i := 0
	if len(args) > 0 {
		first := args[0]
		if first.Kind() == "string" || (first.Kind() == "ident" && !keys[first.Text()]) {
			name = first.Text()
			i = 1
		}
	}
	for ; i < len(args); i += 2 {
		key := args[i].Text()
		if !keys[key] {
			return "", nil, fmt.Errorf("未知属性 %s", key)
		}
		if i+1 >= len(args) {
			return "", nil, fmt.Errorf("属性 %s 缺少取值", key)
		}
		attrs[key] = args[i+1].Text()
	}
	return name, attrs, nil
}
