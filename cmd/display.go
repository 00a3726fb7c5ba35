package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/tirage/internal/card"
	"github.com/arcanaland/tirage/internal/draw"
)

// terminalWidth returns the width of stdout, or 80 when unknown
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			// First word on the line, always add it
			currentLine = word
		} else if len([]rune(currentLine))+1+len([]rune(word)) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// displayCard prints every field of a card
func displayCard(w io.Writer, c *card.Card, deckName string) {
	width := terminalWidth() - 4
	if width > 100 {
		width = 100
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+colorize.HiYellowString("%s", c.Numero))
	fmt.Fprintln(w, "  "+colorize.New(colorize.Bold, colorize.FgHiWhite).Sprint(c.Nom))
	fmt.Fprintln(w, "  "+colorize.CyanString("Jeu: ")+colorize.HiWhiteString("%s", deckName))
	fmt.Fprintln(w, "  "+colorize.CyanString("ID:  ")+colorize.HiWhiteString("%s", c.ID))

	for _, f := range c.Fields() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+fieldLabel(f))
		for _, line := range wrapText(f.Value, width) {
			fmt.Fprintln(w, "  "+line)
		}
	}

	fmt.Fprintln(w)
}

// fieldLabel colors positive and negative readings apart from the rest
func fieldLabel(f card.Field) string {
	label := strings.ToUpper(f.Label)
	switch f.Key {
	case "interpretation_positive":
		return colorize.GreenString("✨ %s", label)
	case "interpretation_negative":
		return colorize.RedString("⚠️  %s", label)
	case "mot_cle_principal":
		return colorize.YellowString("%s", label)
	default:
		return colorize.MagentaString("%s", label)
	}
}

// printCardLine prints a one-line summary of a card
func printCardLine(w io.Writer, c *card.Card) {
	fmt.Fprintf(w, "  %s %s %s\n",
		colorize.HiYellowString("%6s", c.Numero),
		colorize.HiWhiteString("%-32s", c.Nom),
		colorize.HiBlackString("[%s]", c.ID))
}

// displayResult prints the cards of a draw in order
func displayResult(w io.Writer, r *draw.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+colorize.New(colorize.Bold).Sprintf("%s · %s", r.Mode.Label(), r.DeckName))
	fmt.Fprintln(w)

	for i, c := range r.Cards() {
		fmt.Fprintf(w, "  %s %s %s\n",
			colorize.CyanString("%2d.", i+1),
			colorize.HiYellowString("%s", c.Numero),
			colorize.HiWhiteString("%s", c.Nom))
		if c.MotClePrincipal != "" {
			fmt.Fprintln(w, "      "+colorize.YellowString("%s", c.MotClePrincipal))
		}
	}

	fmt.Fprintln(w)
}
