package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/rosterboard/config"
	"github.com/ByLCY/rosterboard/layout"
	"github.com/ByLCY/rosterboard/renderer"
)

// ErrExportBusy is returned when an export is already running.
var ErrExportBusy = errors.New("editor: export already in progress")

// Notifier surfaces a blocking message to the user.
type Notifier interface {
	Notify(message string)
}

// Downloader hands a produced image to the user under filename.
type Downloader interface {
	Download(filename, dataURL string) error
}

// ExportCoordinator captures a clean copy of the surface. Editor chrome and
// editability are stripped before the capture and restored afterwards whether
// or not rendering succeeds.
type ExportCoordinator struct {
	lock       sync.Locker
	cfg        config.Export
	surface    *layout.Surface
	selection  *SelectionModel
	toolbar    *Toolbar
	drag       *DragController
	resize     *ResizeController
	settler    *Settler
	renderer   renderer.Renderer
	notifier   Notifier
	downloader Downloader
	logger     *log.Logger

	busy bool
}

// cleanState remembers what strip changed.
type cleanState struct {
	editables  []*layout.Block
	handles    map[*layout.Block]bool
	decoration layout.Decoration
}

// Busy reports whether an export is in flight. Callers hold the lock.
func (e *ExportCoordinator) Busy() bool { return e.busy }

// Export renders the surface and downloads it. The lock is released while
// the capture is pending; pointer-downs arriving in that window are refused.
func (e *ExportCoordinator) Export(ctx context.Context) error {
	e.lock.Lock()
	if e.busy {
		e.lock.Unlock()
		return ErrExportBusy
	}
	e.busy = true
	e.drag.End()
	e.resize.End()
	state := e.strip()
	e.settler.Settle()
	e.lock.Unlock()

	e.logger.Debug("capturing surface", "name", e.surface.Name, "editables", len(state.editables))
	img, err := e.capture(ctx)

	e.lock.Lock()
	e.restore(state)
	e.busy = false
	e.lock.Unlock()

	if err == nil {
		err = e.downloader.Download(e.cfg.Filename, img.DataURL())
	}
	if err != nil {
		e.notifier.Notify("Download failed: " + err.Error())
		e.logger.Error("export failed", "err", err)
		return fmt.Errorf("export %s: %w", e.cfg.Filename, err)
	}
	e.logger.Info("exported surface", "file", e.cfg.Filename)
	return nil
}

func (e *ExportCoordinator) strip() cleanState {
	e.selection.Deselect()
	e.toolbar.Hide()

	state := cleanState{handles: make(map[*layout.Block]bool, len(e.surface.Blocks))}
	for _, b := range e.surface.Blocks {
		state.handles[b] = b.HandlesHidden
		b.HandlesHidden = true
		b.Selected = false
		b.Dragging = false
	}
	// 必须先取快照再去掉 editable，否则查询结果会随之变化。
	state.editables = e.surface.EditableBlocks()
	for _, b := range state.editables {
		b.Editable = false
	}
	state.decoration = e.surface.Decoration
	e.surface.Decoration = layout.Decoration{}
	e.settler.Schedule()
	return state
}

func (e *ExportCoordinator) restore(state cleanState) {
	e.surface.Decoration = state.decoration
	for b, hidden := range state.handles {
		b.HandlesHidden = hidden
	}
	for _, b := range state.editables {
		b.Editable = true
		b.Spellcheck = false
	}
	e.settler.Schedule()
}

// capture waits for the stripped surface to be painted, then renders it.
// A renderer panic becomes an error so restore always runs.
func (e *ExportCoordinator) capture(ctx context.Context) (img renderer.Image, err error) {
	if d := e.cfg.SettleDelay.Duration; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, fmt.Errorf("renderer panic: %v", p)
		}
	}()
	img, err = e.renderer.Render(ctx, e.surface, renderer.Options{
		Scale:       e.cfg.Scale,
		CrossOrigin: e.cfg.CrossOrigin,
		AllowTaint:  e.cfg.AllowTaint,
		Background:  nil,
		Width:       e.cfg.Width,
		Height:      e.cfg.Height,
		Logging:     e.cfg.Logging,
	})
	if err == nil && img == nil {
		err = errors.New("renderer returned no image")
	}
	return img, err
}
