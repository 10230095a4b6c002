// Package editor is the interaction engine: selection, drag, resize, the
// floating toolbar, style commands and the clean export. One App owns all of
// it for a single surface.
package editor

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/layout"
	"github.com/ByLCY/rosterboard/renderer"
)

// Deps are the collaborators an App talks to.
type Deps struct {
	Renderer   renderer.Renderer
	Notifier   Notifier
	Downloader Downloader
	Logger     *log.Logger
}

// App is the editor context for one surface. The components hold references
// to each other through it; there is no package-level state.
type App struct {
	mu      sync.Mutex
	cfg     config.Config
	surface *layout.Surface
	logger  *log.Logger

	mode      *Interaction
	settler   *Settler
	Selection *SelectionModel
	Drag      *DragController
	Resize    *ResizeController
	Style     *StyleController
	Toolbar   *Toolbar
	Router    *Router
	Exporter  *ExportCoordinator
}

// New wires an App around s.
func New(s *layout.Surface, cfg config.Config, deps Deps) (*App, error) {
	if s == nil {
		return nil, errors.New("editor: surface is nil")
	}
	if deps.Renderer == nil {
		return nil, errors.New("editor: renderer is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	downloader := deps.Downloader
	if downloader == nil {
		downloader = nopDownloader{}
	}

	a := &App{cfg: cfg, surface: s, logger: logger}
	a.mode = &Interaction{}
	a.settler = &Settler{}
	a.Toolbar = NewToolbar(cfg.Toolbar)
	mapper := CoordinateMapper{surface: s}
	a.Selection = &SelectionModel{toolbar: a.Toolbar, settler: a.settler}
	a.Drag = &DragController{
		mode:      a.mode,
		mapper:    mapper,
		surface:   s,
		selection: a.Selection,
		toolbar:   a.Toolbar,
		settler:   a.settler,
	}
	a.Resize = &ResizeController{
		cfg:       cfg.Interaction,
		mode:      a.mode,
		mapper:    mapper,
		selection: a.Selection,
		toolbar:   a.Toolbar,
		settler:   a.settler,
	}
	a.Style = &StyleController{cfg: cfg.Style, toolbar: a.Toolbar, settler: a.settler}
	a.Exporter = &ExportCoordinator{
		lock:       &a.mu,
		cfg:        cfg.Export,
		surface:    s,
		selection:  a.Selection,
		toolbar:    a.Toolbar,
		drag:       a.Drag,
		resize:     a.Resize,
		settler:    a.settler,
		renderer:   deps.Renderer,
		notifier:   notifier,
		downloader: downloader,
		logger:     logger,
	}
	a.Router = &Router{
		surface:   s,
		mode:      a.mode,
		toolbar:   a.Toolbar,
		selection: a.Selection,
		drag:      a.Drag,
		resize:    a.Resize,
		press:     a.press,
		busy:      a.Exporter.Busy,
	}
	a.settler.Subscribe(a.followSelection)

	for _, b := range s.EditableBlocks() {
		b.Spellcheck = false
	}
	return a, nil
}

// Surface returns the edited surface.
func (a *App) Surface() *layout.Surface { return a.surface }

// Mode returns the current interaction mode.
func (a *App) Mode() ModeKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode.Kind()
}

// Dispatch routes a pointer event.
func (a *App) Dispatch(ev PointerEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	handled := a.Router.Dispatch(ev)
	a.logger.Debug("pointer", "kind", ev.Kind, "x", ev.X, "y", ev.Y, "handled", handled, "mode", a.mode.Kind())
	return handled
}

// Press runs a toolbar command as if its button were clicked.
func (a *App) Press(btn Button) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Exporter.Busy() {
		return false
	}
	a.press(btn)
	return true
}

func (a *App) press(btn Button) {
	b := a.Selection.Current()
	switch btn {
	case ButtonMinus:
		a.Style.ChangeFontSize(b, -a.cfg.Style.FontStep)
	case ButtonPlus:
		a.Style.ChangeFontSize(b, a.cfg.Style.FontStep)
	case ButtonBold:
		a.Style.ToggleBold(b)
	case ButtonClose:
		a.Selection.Deselect()
	}
}

// Settle tells the editor the surface has been laid out again and runs any
// deferred work. It reports whether anything was pending.
func (a *App) Settle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settler.Settle()
}

// SetRendered updates the surface's on-screen rectangle.
func (a *App) SetRendered(r layout.Rect) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.surface.Rendered = r
	a.settler.Schedule()
}

// SetViewport updates the viewport size.
func (a *App) SetViewport(s layout.Size) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.surface.Viewport = s
	a.settler.Schedule()
}

// Export runs the clean export.
func (a *App) Export(ctx context.Context) error {
	return a.Exporter.Export(ctx)
}

// followSelection 在布局稳定后让工具栏跟随选中的 block；拖拽或缩放期间保持隐藏。
func (a *App) followSelection() {
	b := a.Selection.Current()
	if b == nil || a.mode.Kind() != Idle {
		return
	}
	a.Toolbar.Reposition(a.surface, b)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

type nopDownloader struct{}

func (nopDownloader) Download(string, string) error { return nil }
