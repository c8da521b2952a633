package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (g *Gui) databaseSelection(p *tview.Pages) tview.Primitive {
	list := tview.NewList()

	choose := func(database string) func() {
		return func() {
			p.AddPage("db-config", g.databaseConfigPage(p, database), true, false)
			p.SwitchToPage("db-config")
		}
	}

	list.AddItem("Postgres", "Requires a running Postgres instance, recommended for anything shared with others", '1', choose("postgres"))
	list.AddItem("MySql", "Requires a running MySql instance", '2', choose("mysql"))
	list.AddItem("sqlite", "Creates a database file on disk, [::b]the easiest option if you have no experience with databases", '3', choose("sqlite"))

	frame := tview.NewFrame(list)
	frame.SetBorder(true)
	frame.SetTitle("Pokedex API - Choosing Database")
	frame.AddText("Please select which database the Pokedex API should store its data in", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText(escHint, false, tview.AlignLeft, tcell.ColorYellow)
	return frame
}

func (g *Gui) seedSelection(p *tview.Pages) tview.Primitive {
	list := tview.NewList()

	choose := func(seed bool) func() {
		return func() {
			g.config.Misc.SeedStarters = seed
			p.AddPage("http-config", g.httpConfigPage(p), true, false)
			p.SwitchToPage("http-config")
		}
	}

	list.AddItem("Yes", "Adds the starter Pokédex entries (Bulbasaur through Charizard) when the database is empty", '1', choose(true))
	list.AddItem("No", "You will start with an empty Pokédex", '2', choose(false))

	frame := tview.NewFrame(list)
	frame.SetBorder(true)
	frame.SetTitle("Pokedex API - Starter Data")
	frame.AddText("Would you like the database to be seeded with the starter Pokédex?", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText(escHint, false, tview.AlignLeft, tcell.ColorYellow)
	return frame
}
