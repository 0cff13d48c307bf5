package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/marszhhx/recare-tally/pkg/board"
	"github.com/marszhhx/recare-tally/pkg/history"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Board prints the ordered tally rows with their counts; custom tallies
// carry a faint marker so it is obvious which ones can be removed.
func (pp *PrettyPrint) Board(items []board.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	n := color.New(color.Bold, color.FgHiGreen)
	c := color.New(color.Faint, color.Italic)

	width := 0
	for _, item := range items {
		if len(item.Name) > width {
			width = len(item.Name)
		}
	}

	for _, item := range items {
		_, _ = t.Printf("%s%s  ", item.Name, strings.Repeat(" ", width-len(item.Name)))
		_, _ = n.Printf("%3d", item.Count)
		if !item.Builtin {
			_, _ = c.Print("  custom")
		}
		_, _ = t.Println("")
	}
	_, _ = t.Println("")
}

// History prints archived days newest first, one table row per day with a
// column per known tally type.
func (pp *PrettyPrint) History(days []history.Day, types []string) {
	if len(days) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no history\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	header := make([]interface{}, 0, len(types)+2)
	header = append(header, bold("Day"), bold("Date"))
	for _, name := range types {
		header = append(header, bold(name))
	}
	tbl.AddRow(header...)

	for _, day := range days {
		row := make([]interface{}, 0, len(types)+2)
		row = append(row, day.Weekday, day.LongDate)
		for _, name := range types {
			row = append(row, day.Tallies.Count(name))
		}
		tbl.AddRow(row...)
	}

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func bold(in string) string {
	return color.New(color.Bold).Sprint(in)
}
