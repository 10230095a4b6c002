package editor

import (
	"context"
	"fmt"

	"github.com/ByLCY/rosterboard/dsl"
	"github.com/ByLCY/rosterboard/layout"
)

// Play runs a session script against the app. Layout settles after every
// pointer event and toolbar press, the way a browser paints between events.
func (a *App) Play(ctx context.Context, script *dsl.Script) error {
	if script == nil || script.Body == nil {
		return fmt.Errorf("session 为空")
	}
	for _, stmt := range script.Body.Statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd := stmt.Command
		if cmd == nil {
			return fmt.Errorf("session 只支持命令语句")
		}
		if err := a.step(ctx, cmd); err != nil {
			return fmt.Errorf("%s: %s: %w", cmd.Pos, cmd.Name, err)
		}
	}
	return nil
}

func (a *App) step(ctx context.Context, cmd *dsl.Command) error {
	switch cmd.Name {
	case "down", "move":
		p, err := parsePoint(cmd.Args)
		if err != nil {
			return err
		}
		kind := PointerDown
		if cmd.Name == "move" {
			kind = PointerMove
		}
		a.Dispatch(PointerEvent{Kind: kind, X: p.X, Y: p.Y})
	case "up":
		a.Dispatch(PointerEvent{Kind: PointerUp})
	case "press":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("需要一个按钮名称")
		}
		btn, ok := ParseButton(cmd.Args[0].Text())
		if !ok {
			return fmt.Errorf("未知按钮 %q", cmd.Args[0].Text())
		}
		a.Press(btn)
	case "rendered":
		r, err := layout.ParseRendered(cmd.Args)
		if err != nil {
			return err
		}
		a.SetRendered(r)
	case "viewport":
		if len(cmd.Args) != 1 {
			return fmt.Errorf("需要一个 WxH 参数")
		}
		size, err := layout.ParseSize(cmd.Args[0].Text())
		if err != nil {
			return err
		}
		a.SetViewport(size)
	case "settle":
	case "export":
		return a.Export(ctx)
	default:
		return fmt.Errorf("未知命令")
	}
	a.Settle()
	return nil
}

func parsePoint(args []*dsl.Arg) (Point, error) {
	if len(args) != 2 {
		return Point{}, fmt.Errorf("需要 x y 两个参数")
	}
	x, err := layout.ParsePX(args[0].Text())
	if err != nil {
		return Point{}, err
	}
	y, err := layout.ParsePX(args[1].Text())
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}
