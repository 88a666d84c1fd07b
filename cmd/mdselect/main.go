package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zeta-Naidi/mdselect/loaders"
	tviewAdapter "github.com/Zeta-Naidi/mdselect/mdselect/tview"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func main() {
	// parse arguments
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file-path-or-url>\n", os.Args[0])
		os.Exit(1)
	}

	arg := os.Args[1]

	// load initial content
	loader := &loaders.FileHTTP{SearchRoots: []string{"."}}
	content, err := loader.Load(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading content: %v\n", err)
		os.Exit(1)
	}

	// create tview application
	app := tview.NewApplication()

	// create selection viewer
	viewer := tviewAdapter.NewViewer()

	// create status bar
	statusBar := tview.NewTextView()
	statusBar.SetDynamicColors(true)
	statusBar.SetTextAlign(tview.AlignLeft)

	title := displayTitle(arg)
	viewer.SetStateChangedHandler(func(v *tviewAdapter.Viewer) {
		updateStatusBar(statusBar, title, v)
	})

	// load initial content
	if err := viewer.SetMarkdown(content); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing content: %v\n", err)
		os.Exit(1)
	}

	// create flex layout with status bar
	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(viewer, 0, 1, true).
		AddItem(statusBar, 1, 0, false)

	// set up quit handler
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	// run application
	if err := app.SetRoot(flex, true).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running application: %v\n", err)
		os.Exit(1)
	}
}

// displayTitle picks a short name for the status bar.
func displayTitle(arg string) string {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return arg
	}
	name := filepath.Base(arg)
	if name == "" || name == "." {
		return "mdselect"
	}
	return name
}

// updateStatusBar refreshes the status bar with current viewer state.
func updateStatusBar(statusBar *tview.TextView, title string, v *tviewAdapter.Viewer) {
	session := v.Session()
	cursor := session.Cursor()

	keyColor := "gray"
	status := fmt.Sprintf(" [yellow]%s[-] | %d:%d", title, cursor.Line+1, cursor.Character+1)
	if depth := session.Depth(); depth >= 0 {
		status += fmt.Sprintf(" | depth %d", depth)
	}
	status += fmt.Sprintf(" | Move:[%s]h/j/k/l[-] Expand:[%s]Enter/v[-] Shrink:[%s]Backspace/V[-] Quit:[%s]q[-]",
		keyColor, keyColor, keyColor, keyColor)

	statusBar.SetText(status)
}
