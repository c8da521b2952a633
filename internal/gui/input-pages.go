package gui

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/FlagBrew/pokedex-api/internal/database"
	"github.com/FlagBrew/pokedex-api/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/rivo/tview"
)

const formHint = "[red]ESC - exit[-:-:-:-] [yellow] Enter - next input/submit [orange] (Shift+)Tab - switch inputs"

var blackListedChars = []rune{
	'\'', '$', '%', '@', '#', '!', ';', ':', '/', '*', '?', '|', '>', '<', '&', '\\',
}

func portInput(textToCheck string, lastChar rune) bool {
	if !unicode.IsDigit(lastChar) {
		return false
	}

	num, _ := strconv.Atoi(textToCheck)
	return num > 0 && num <= 65535
}

// connectionFields splits an existing connection string back into the form
// values: user, password, host, port, database name.
func connectionFields(dbType, connectionString string) []string {
	values := make([]string, 5)
	if connectionString == "" {
		return values
	}

	switch dbType {
	case "postgres":
		conf, err := pgx.ParseConfig(connectionString)
		if err == nil {
			values[0] = conf.User
			values[1] = conf.Password
			values[2] = conf.Host
			values[3] = strconv.FormatUint(uint64(conf.Port), 10)
			values[4] = conf.Database
		}
	case "mysql":
		conf, err := mysql.ParseDSN(database.MySQLDSN(connectionString))
		if err == nil {
			values[0] = conf.User
			values[1] = conf.Passwd
			if host, port, err := net.SplitHostPort(conf.Addr); err == nil {
				values[2] = host
				values[3] = port
			}
			values[4] = conf.DBName
		}
	}
	return values
}

// buildConnectionString is the inverse of connectionFields.
func buildConnectionString(dbType string, values []string) string {
	if dbType == "sqlite" {
		return database.SQLiteDSN(values[0])
	}

	addr := net.JoinHostPort(values[2], values[3])
	if dbType == "postgres" {
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(values[0], values[1]),
			Host:   addr,
			Path:   "/" + values[4],
		}
		return u.String()
	}

	conf := mysql.NewConfig()
	conf.User = values[0]
	conf.Passwd = values[1]
	conf.Net = "tcp"
	conf.Addr = addr
	conf.DBName = values[4]
	return conf.FormatDSN()
}

func (g *Gui) databaseConfigPage(p *tview.Pages, dbType string) tview.Primitive {
	form := tview.NewForm()
	frame := tview.NewFrame(form)

	var values, fieldNames []string
	existing := g.config.Database.ConnectionString
	if g.config.Database.DBType != dbType {
		existing = ""
	}

	switch dbType {
	case "sqlite":
		fieldNames = []string{"File Name"}
		values = []string{"pokedex.db"}
		if strings.HasPrefix(existing, "file:") {
			values[0] = strings.SplitN(strings.TrimPrefix(existing, "file:"), "?", 2)[0]
		}
		form.AddInputField(fieldNames[0], values[0], 20, func(textToCheck string, lastChar rune) bool {
			return !slices.Contains(blackListedChars, lastChar)
		}, func(text string) {
			values[0] = text
		})
	default:
		fieldNames = []string{"Username", "Password", "Host", "Port", "Database"}
		values = connectionFields(dbType, existing)

		form.AddInputField(fieldNames[0], values[0], 20, nil, func(text string) { values[0] = text })
		form.AddPasswordField(fieldNames[1], values[1], 20, '*', func(text string) { values[1] = text })
		form.AddInputField(fieldNames[2], values[2], 20, nil, func(text string) { values[2] = text })
		form.AddInputField(fieldNames[3], values[3], 20, portInput, func(text string) { values[3] = text })
		form.AddInputField(fieldNames[4], values[4], 20, nil, func(text string) { values[4] = text })
	}

	redraw := func(errors []string) {
		frame.Clear()
		frame.AddText("Please fill out the form below with your database details", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHint, false, tview.AlignLeft, tcell.ColorYellow)
		if len(errors) > 0 {
			frame.AddText("Errors: ", true, tview.AlignLeft, tcell.ColorYellow)
			for _, v := range errors {
				frame.AddText(v, true, tview.AlignLeft, tcell.ColorRed)
			}
		}
	}
	redraw(nil)

	form.AddButton("Submit", func() {
		errors := []string{}
		for i, fieldName := range fieldNames {
			if values[i] == "" {
				errors = append(errors, fmt.Sprintf("%s: is required", fieldName))
			}
		}

		if len(errors) > 0 {
			redraw(errors)
			return
		}

		cfg := models.DatabaseConfig{
			DBType:           dbType,
			ConnectionString: buildConnectionString(dbType, values),
		}

		// Make sure we can actually connect before moving on.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		drv, err := database.New(ctx, &cfg)
		if err != nil {
			redraw([]string{"Connection error: " + err.Error()})
			return
		}
		drv.Close()

		g.config.Database = cfg
		p.AddPage("seed-choice", g.seedSelection(p), true, false)
		p.SwitchToPage("seed-choice")
	})

	frame.SetBorder(true)
	frame.SetTitle(fmt.Sprintf("Pokedex API - Configuring Database: %s", dbType))
	return frame
}

func (g *Gui) httpConfigPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()
	frame := tview.NewFrame(form)

	chosenAddr := "0.0.0.0"
	chosenPort := "3000"

	if g.config.HTTP.ListeningAddr != "" {
		chosenAddr = g.config.HTTP.ListeningAddr
	}

	if g.config.HTTP.Port != 0 {
		chosenPort = strconv.Itoa(g.config.HTTP.Port)
	}

	redraw := func(errors ...string) {
		frame.Clear()
		frame.AddText("Please choose where the API should listen", true, tview.AlignLeft, tcell.ColorYellow)
		frame.AddText(formHint, false, tview.AlignLeft, tcell.ColorYellow)
		for _, v := range errors {
			frame.AddText(v, true, tview.AlignLeft, tcell.ColorRed)
		}
	}
	redraw()

	availableAddresses := []string{"0.0.0.0", "127.0.0.1"}
	if addrs, err := net.InterfaceAddrs(); err == nil {
		for _, address := range addrs {
			ip := strings.Split(address.String(), "/")[0]
			if strings.HasPrefix(ip, "fe80") || slices.Contains(availableAddresses, ip) {
				continue
			}
			availableAddresses = append(availableAddresses, ip)
		}
	}

	index := slices.Index(availableAddresses, chosenAddr)
	if index == -1 {
		index = 0
	}

	form.AddDropDown("Listening Address", availableAddresses, index, func(option string, optionIndex int) {
		chosenAddr = option
	})
	form.AddInputField("Port", chosenPort, 20, portInput, func(text string) {
		chosenPort = text
	})

	form.AddButton("Submit", func() {
		port, err := strconv.Atoi(chosenPort)
		if err != nil || port < 1 || port > 65535 {
			redraw("Port: Please enter a valid port number")
			return
		}

		l, err := net.Listen("tcp", net.JoinHostPort(chosenAddr, chosenPort))
		if err != nil {
			redraw(err.Error())
			return
		}
		l.Close()

		g.config.HTTP.ListeningAddr = chosenAddr
		g.config.HTTP.Port = port

		p.AddPage("confirm", g.confirmationPage(p), true, false)
		p.SwitchToPage("confirm")
	})

	frame.SetBorder(true)
	frame.SetTitle("Pokedex API - Configuring HTTP")
	return frame
}
