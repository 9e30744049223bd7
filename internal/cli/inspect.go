package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/pkg/alg"
	"github.com/SeamusWaldron/twisty/pkg/puzzles"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <definition>",
	Short: "Show the orbits, layout and moves of a puzzle",
	Long: `Validate a puzzle definition and print its orbit layout, its primitive
and derived moves, and the order of every primitive move.

The definition is a .json/.yaml/.yml file, a built-in puzzle or a library name.
Built-in puzzles: ` + strings.Join(puzzles.Names(), ", "),
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Puzzle " + p.Name()))
	fmt.Println()

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(12).Bold(true).Foreground(lipgloss.Color("39")).Render("ORBIT"),
		headerCellStyle.Width(8).Render("PIECES"),
		headerCellStyle.Width(8).Render("ORIENT"),
		headerCellStyle.Width(8).Render("OFFSET"),
		headerCellStyle.Width(8).Render("CODES"),
	)}
	for _, orbit := range p.Orbits() {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(12).Render(orbit.Name),
			cellStyle.Width(8).Render(fmt.Sprint(orbit.NumPieces)),
			cellStyle.Width(8).Render(fmt.Sprint(orbit.NumOrientations)),
			cellStyle.Width(8).Render(fmt.Sprint(orbit.PiecesOffset)),
			cellStyle.Width(8).Render(fmt.Sprint(orbit.Packer.NumCodes())),
		))
	}
	fmt.Println(lipgloss.JoinVertical(lipgloss.Left, rows...))
	fmt.Printf("\n%s %d bytes per pattern or transformation\n\n", labelStyle.Render("Layout:"), p.NumBytes())

	primitive, derived := p.MoveKeys()

	fmt.Println(labelStyle.Render("Moves:"))
	for _, m := range primitive {
		t, err := p.TransformationFromMove(m)
		if err != nil {
			return err
		}
		fmt.Printf("  %s  %s\n", moveStyle.Render(fmt.Sprintf("%-6s", m)), statusStyle.Render(fmt.Sprintf("order %d", t.Order())))
	}

	if len(derived) > 0 {
		fmt.Println()
		fmt.Println(labelStyle.Render("Derived moves:"))
		for _, m := range derived {
			t, err := p.TransformationFromMove(m)
			if err != nil {
				return err
			}
			fmt.Printf("  %s  = %s  %s\n",
				moveStyle.Render(fmt.Sprintf("%-6s", m)),
				p.Definition().DerivedMoves[m],
				statusStyle.Render(fmt.Sprintf("order %d", t.Order())))
		}
	}

	return nil
}

// renderPattern renders each orbit of a pattern as rows of pieces and
// orientations. Pieces whose modulus is not the orbit default show it as
// orientation/modulus.
func renderPattern(pt *twisty.Pattern) string {
	var b strings.Builder
	for _, orbit := range pt.Puzzle().Orbits() {
		pieces := []string{lipgloss.NewStyle().Width(10).Render("")}
		orientations := []string{lipgloss.NewStyle().Width(10).Render("")}
		for i := 0; i < orbit.NumPieces; i++ {
			pieces = append(pieces, cellStyle.Render(fmt.Sprint(pt.Piece(orbit, i))))
			v := pt.OrientationWithMod(orbit, i)
			text := fmt.Sprint(v.Orientation)
			if v.OrientationMod != 0 {
				text = fmt.Sprintf("%d/%d", v.Orientation, v.OrientationMod)
			}
			orientations = append(orientations, cellStyle.Render(text))
		}
		b.WriteString(labelStyle.Render(orbit.Name))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pieces...))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, orientations...)))
		b.WriteString("\n")
	}
	return b.String()
}

// expandAlg flattens an alg into the moves a person would perform.
func expandAlg(a alg.Alg) []alg.Move {
	var moves []alg.Move
	var walk func(alg.Alg)
	walk = func(a alg.Alg) {
		for _, node := range a.Nodes {
			switch n := node.(type) {
			case alg.Move:
				moves = append(moves, n)
			case alg.Grouping:
				inner := n.Alg
				count := n.Amount
				if count < 0 {
					inner, count = inner.Invert(), -count
				}
				for i := 0; i < count; i++ {
					walk(inner)
				}
			case alg.Commutator:
				walk(n.A)
				walk(n.B)
				walk(n.A.Invert())
				walk(n.B.Invert())
			case alg.Conjugate:
				walk(n.A)
				walk(n.B)
				walk(n.A.Invert())
			}
		}
	}
	walk(a)
	return moves
}
