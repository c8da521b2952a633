// Package gui implements the interactive first-run wizard that writes the
// database and HTTP settings into config.json.
package gui

import (
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const escHint = "[red]ESC - exit[-:-:-:-] [yellow] Enter - continue"

type Gui struct {
	app       *tview.Application
	config    *models.Config
	cancelled bool
}

func New(config *models.Config) *Gui {
	g := &Gui{
		app:    tview.NewApplication(),
		config: &models.Config{},
	}

	if config != nil {
		g.config = config
	}

	g.app.EnableMouse(true)

	g.Init()

	return g
}

func (g *Gui) Init() {
	pages := tview.NewPages()
	pages.AddPage("setup", g.introPage(pages), true, true)
	pages.AddPage("database-type", g.databaseSelection(pages), true, false)

	pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			g.cancelled = true
			g.app.Stop()
		}
		return event
	})

	g.app.SetRoot(pages, true)
}

// Start blocks until the wizard is saved or cancelled.
func (g *Gui) Start() error {
	if err := g.app.Run(); err != nil {
		return err
	}

	if g.cancelled {
		return ErrCancelled
	}
	return nil
}

func (g *Gui) Stop() {
	g.app.Stop()
}
