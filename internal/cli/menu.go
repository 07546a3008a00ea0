package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/moddeps/pkg/errors"
	"github.com/matzehuels/moddeps/pkg/modgraph"
)

// menuItem is one entry of the interactive menu.
type menuItem struct {
	key   string
	label string
}

const (
	actionLeaves  = "1"
	actionMod     = "2"
	actionTable   = "3"
	actionMissing = "4"
	actionCheck   = "5"
	actionQuit    = "q"
)

var menuItems = []menuItem{
	{actionLeaves, "List mods that no other mod depends on"},
	{actionMod, "Show the dependency tree and dependents of a mod"},
	{actionTable, "Show all mods and their dependencies"},
	{actionMissing, "List dependencies that are not installed"},
	{actionCheck, "Check version requirements"},
	{actionQuit, "Quit"},
}

// runMenu reads menu choices line by line from in until the user quits or
// in is exhausted.
func runMenu(ctx context.Context, g *modgraph.Graph, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		printMenu(out)
		fmt.Fprint(out, StyleHighlight.Render(iconInfo)+" Select an option: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		choice := strings.ToLower(strings.TrimSpace(sc.Text()))
		fmt.Fprintln(out)
		switch choice {
		case "":
			continue
		case actionQuit, "quit", "exit":
			return nil
		case actionMod:
			fmt.Fprint(out, StyleHighlight.Render(iconInfo)+" Enter mod id: ")
			if !sc.Scan() {
				fmt.Fprintln(out)
				return sc.Err()
			}
			fmt.Fprintln(out)
			if err := writeModReport(out, g, sc.Text()); err != nil {
				printWarning(out, "%s", errors.UserMessage(err))
			}
		default:
			if !runAction(out, g, choice) {
				printWarning(out, "Unknown option %q", choice)
			}
		}
		fmt.Fprintln(out)
	}
}

// runAction prints the report for a menu key that needs no further input.
func runAction(w io.Writer, g *modgraph.Graph, key string) bool {
	switch key {
	case actionLeaves:
		writeLeaves(w, g)
	case actionTable:
		writeTable(w, g)
	case actionMissing:
		writeMissing(w, g)
	case actionCheck:
		writeCheck(w, g, false)
	default:
		return false
	}
	return true
}

func printMenu(w io.Writer) {
	printTitle(w, "What would you like to do?")
	for _, it := range menuItems {
		fmt.Fprintf(w, "  %s %s\n", StyleHighlight.Render("["+it.key+"]"), it.label)
	}
}
