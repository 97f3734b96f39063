package app

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/fretmark/internal/config"
	"github.com/dshills/fretmark/internal/engine"
	"github.com/dshills/fretmark/internal/engine/document"
	"github.com/dshills/fretmark/internal/engine/tool"
	"github.com/dshills/fretmark/internal/export"
	"github.com/dshills/fretmark/internal/input/keymap"
	"github.com/dshills/fretmark/internal/renderer/statusline"
)

const (
	// zoomStep is the scale factor of one zoom key press.
	zoomStep = 1.2

	// panStep is the distance of one pan key press, in screen units.
	panStep = 4.0

	// exportTimeLayout stamps export file names.
	exportTimeLayout = "20060102-150405"
)

// dispatch runs a keymap action.
func (app *Application) dispatch(action string) error {
	e := app.engine

	switch action {
	case keymap.ActionModeSelect:
		e.SetMode(tool.ModeSelect)
	case keymap.ActionModeCreate:
		e.SetMode(tool.ModeCreate)

	case keymap.ActionUndo:
		return e.Undo()
	case keymap.ActionRedo:
		return e.Redo()

	case keymap.ActionSelectAll:
		e.SelectAll()
	case keymap.ActionClearSelection:
		e.ClearSelection()
	case keymap.ActionDeleteSelection:
		e.DeleteSelection()

	case keymap.ActionZoomIn:
		app.zoomCenter(zoomStep)
	case keymap.ActionZoomOut:
		app.zoomCenter(1 / zoomStep)
	case keymap.ActionPanLeft:
		e.Pan(panStep, 0)
	case keymap.ActionPanRight:
		e.Pan(-panStep, 0)
	case keymap.ActionPanUp:
		e.Pan(0, panStep)
	case keymap.ActionPanDown:
		e.Pan(0, -panStep)
	case keymap.ActionFitView:
		e.FitView(fitInsets)

	case keymap.ActionCycleLabelKind:
		return app.cycleLabelKind()
	case keymap.ActionToggleShape:
		return app.toggleShape()
	case keymap.ActionToggleOutline:
		return app.toggleOutline()

	case keymap.ActionExportSVG:
		return app.exportFile(export.FormatSVG)
	case keymap.ActionExportPNG:
		return app.exportFile(export.FormatPNG)
	case keymap.ActionCopySVG:
		return app.copySVG()

	case keymap.ActionQuit:
		return ErrQuit

	default:
		n, ok := keymap.ColorIndex(action)
		if !ok || n > len(export.Palette) {
			return fmt.Errorf("%w: %s", ErrUnknownAction, action)
		}
		return e.SetColor(export.Palette[n-1].Hex)
	}
	return nil
}

// zoomCenter zooms around the center of the drawing surface.
func (app *Application) zoomCenter(factor float64) {
	c := app.engine.Viewport().ClientRect()
	app.engine.ZoomAt((c.Min.X+c.Max.X)/2, (c.Min.Y+c.Max.Y)/2, factor)
}

// selectedStyles returns the styles of the selected markers.
func selectedStyles(f engine.Frame) []document.Style {
	var styles []document.Style
	for _, m := range f.Markers {
		if m.Selected {
			styles = append(styles, m.Style)
		}
	}
	return styles
}

// cycleLabelKind switches the selection to note-name labels, or back to
// manual labels when every selected marker already shows its note.
func (app *Application) cycleLabelKind() error {
	styles := selectedStyles(app.engine.Frame())
	if len(styles) == 0 {
		return engine.ErrEmptySelection
	}
	next := document.LabelManual
	for _, s := range styles {
		if s.LabelKind != document.LabelNoteName {
			next = document.LabelNoteName
			break
		}
	}
	return app.engine.SetLabelKind(next)
}

// toggleShape makes the selection square unless it is square already.
func (app *Application) toggleShape() error {
	styles := selectedStyles(app.engine.Frame())
	if len(styles) == 0 {
		return engine.ErrEmptySelection
	}
	next := document.ShapeCircle
	for _, s := range styles {
		if s.Shape != document.ShapeSquare {
			next = document.ShapeSquare
			break
		}
	}
	return app.engine.SetShape(next)
}

// toggleOutline outlines the selection unless it is outlined already.
func (app *Application) toggleOutline() error {
	styles := selectedStyles(app.engine.Frame())
	if len(styles) == 0 {
		return engine.ErrEmptySelection
	}
	next := false
	for _, s := range styles {
		if !s.Outline {
			next = true
			break
		}
	}
	return app.engine.SetOutline(next)
}

// exportFile writes the diagram to a time-stamped file in the export
// directory.
func (app *Application) exportFile(format export.Format) error {
	cfg := app.Config()
	name := fmt.Sprintf("fretmark-%s.%s", app.now().Format(exportTimeLayout), format)
	path := filepath.Join(cfg.Export.Dir, name)

	err := export.Save(app.engine.Frame(), export.Options{
		Path:   path,
		Format: format,
		Scale:  cfg.Export.Scale,
	})
	if err != nil {
		app.log.Error().Err(err).Str("path", path).Msg("export failed")
		return NewOperationError("export", path, err)
	}

	app.metrics.RecordExport()
	app.log.Info().Str("path", path).Str("format", string(format)).Msg("exported")
	app.notify("exported "+path, statusline.MessageInfo)
	return nil
}

func (app *Application) copySVG() error {
	if err := export.CopySVG(app.engine.Frame()); err != nil {
		app.log.Error().Err(err).Msg("clipboard copy failed")
		return NewOperationError("copy", "svg", err)
	}
	app.metrics.RecordExport()
	app.notify("copied SVG to clipboard", statusline.MessageInfo)
	return nil
}

// Export renders the board described by cfg to path without starting the
// terminal UI. The format is inferred from the file extension.
func Export(cfg *config.Config, path string) error {
	board, err := cfg.BoardConfig()
	if err != nil {
		return err
	}
	e := engine.New(engine.WithBoard(board))
	if err := export.Save(e.Frame(), export.Options{Path: path, Scale: cfg.Export.Scale}); err != nil {
		return NewOperationError("export", path, err)
	}
	return nil
}
