package gui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (g *Gui) introPage(p *tview.Pages) tview.Primitive {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	textView.SetText(`Welcome to the Pokedex API!

No database is configured yet (DATABASE_URL is unset and there is no config.json), so this wizard will walk you through creating one.

[::b]It is recommended that you maximize this terminal window to avoid text being cut-off[-:-:-:-]

If you would like to exit the wizard early, please press the [red]esc key[-:-:-:-], otherwise please press [yellow]enter[-:-:-:-] to continue
`)

	textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEnter {
			p.SwitchToPage("database-type")
		}
		return event
	})

	frame := tview.NewFrame(textView)
	frame.AddText(escHint, false, tview.AlignLeft, tcell.ColorYellow)
	frame.SetBorder(true).SetTitle("Pokedex API")
	return frame
}

// redactedConnection masks the password of a connection string for display.
func redactedConnection(dbType string, connectionString string) string {
	if dbType == "sqlite" {
		return connectionString
	}

	values := connectionFields(dbType, connectionString)
	if values[2] == "" {
		return "Failed to parse database connection string"
	}
	return fmt.Sprintf("User: %s, Password: %s\nHost: %s, Port: %s\nDB Name: %s",
		values[0], strings.Repeat("*", len(values[1])), values[2], values[3], values[4])
}

func (g *Gui) confirmationPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()

	form.AddTextView("Database Settings", fmt.Sprintf("Type: %s\n%s",
		g.config.Database.DBType,
		redactedConnection(g.config.Database.DBType, g.config.Database.ConnectionString),
	), 0, 0, true, true)
	form.AddTextView("HTTP Settings", fmt.Sprintf("Listening Address: %s\nListening Port: %d",
		g.config.HTTP.ListeningAddr, g.config.HTTP.Port), 0, 0, true, true)
	form.AddTextView("Seed Starter Pokédex", fmt.Sprintf("%t", g.config.Misc.SeedStarters), 0, 0, true, true)

	form.AddButton("Save", func() {
		g.Stop()
	})
	form.AddButton("Edit", func() {
		p.SwitchToPage("database-type")
	})

	frame := tview.NewFrame(form)
	frame.AddText("Please review the details below, press Save to write config.json or Edit to start over (your answers are kept)", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - submit [orange] (Shift+)Tab - switch buttons", false, tview.AlignLeft, tcell.ColorYellow)
	frame.SetBorder(true)
	frame.SetTitle("Pokedex API - Settings Review")

	return frame
}
