package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/pkg/alg"
)

var replayCmd = &cobra.Command{
	Use:   "replay <definition> <alg>",
	Short: "Step through an alg move by move",
	Long: `Replay an alg on the puzzle's default pattern one move at a time.
Groupings, commutators and conjugates are expanded into the moves they stand for.

Usage:
  twisty replay 3x3x3 "R U R' U'"
  twisty replay 3x3x3 @sune --speed 2.0
  twisty replay 3x3x3 tperm.json --play`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

var (
	replaySpeed float64
	replayPlay  bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Moves per second when playing")
	replayCmd.Flags().BoolVar(&replayPlay, "play", false, "Start playing instead of waiting for input")
}

func runReplay(cmd *cobra.Command, args []string) error {
	p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}
	a, err := loadAlg(p.Name(), args[1])
	if err != nil {
		return err
	}

	model, err := newReplayModel(p, expandAlg(a), replaySpeed, replayPlay)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

// Replay model
type replayModel struct {
	puzzle     *twisty.Puzzle
	start      *twisty.Pattern
	moves      []alg.Move
	transforms []*twisty.Transformation
	buf        *twisty.PatternBuffer
	index      int
	speed      float64
	playing    bool
	quitting   bool
}

func newReplayModel(p *twisty.Puzzle, moves []alg.Move, speed float64, play bool) (*replayModel, error) {
	transforms := make([]*twisty.Transformation, len(moves))
	for i, m := range moves {
		t, err := p.TransformationFromMove(m)
		if err != nil {
			return nil, err
		}
		transforms[i] = t
	}
	if speed <= 0 {
		speed = 1
	}
	start := p.DefaultPattern()
	return &replayModel{
		puzzle:     p,
		start:      start,
		moves:      moves,
		transforms: transforms,
		buf:        twisty.NewPatternBuffer(start),
		speed:      speed,
		playing:    play,
	}, nil
}

type replayTickMsg time.Time

func (m *replayModel) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

func (m *replayModel) tick() tea.Cmd {
	delay := time.Duration(float64(time.Second) / m.speed)
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return replayTickMsg(t)
	})
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "right":
			m.forward()

		case "b", "left":
			m.back()

		case "p":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}

		case "r":
			m.reset()

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case replayTickMsg:
		if m.playing {
			if !m.forward() {
				m.playing = false
				return m, nil
			}
			return m, m.tick()
		}
	}

	return m, nil
}

// forward applies the next move and reports whether there was one.
func (m *replayModel) forward() bool {
	if m.index >= len(m.moves) {
		return false
	}
	m.buf.ApplyTransformation(m.transforms[m.index])
	m.index++
	return true
}

func (m *replayModel) back() {
	if m.index > 0 {
		m.buf.ApplyTransformation(m.transforms[m.index-1].Invert())
		m.index--
	}
}

func (m *replayModel) reset() {
	m.buf.Reset(m.start)
	m.index = 0
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Replay " + m.puzzle.Name()))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Move %d/%d", m.index, len(m.moves))
	if m.playing {
		progress += " [PLAYING]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2g moves/s)\n\n", m.speed))

	if len(m.moves) > 0 {
		var done, rest []string
		for i, mv := range m.moves {
			if i < m.index {
				done = append(done, mv.Notation())
			} else {
				rest = append(rest, mv.Notation())
			}
		}
		b.WriteString(moveStyle.Render(strings.Join(done, " ")))
		if len(done) > 0 && len(rest) > 0 {
			b.WriteString(" ")
		}
		b.WriteString(statusStyle.Render(strings.Join(rest, " ")))
		b.WriteString("\n\n")
	}

	b.WriteString(renderPattern(m.buf.Current()))
	b.WriteString("\n")
	if m.buf.Current().Equal(m.start) {
		b.WriteString(labelStyle.Render("Default pattern"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("SPACE/n=next  b=back  p=play/pause  r=reset  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}
