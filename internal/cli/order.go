package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/twisty"
)

var orderCmd = &cobra.Command{
	Use:   "order <definition> <alg>...",
	Short: "Compute the order of one or more algs",
	Long: `Compute, for every alg, the smallest number of repetitions that returns
the puzzle to where it started. Algs are evaluated concurrently.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOrder,
}

var orderWorkers int

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.Flags().IntVarP(&orderWorkers, "workers", "w", 4, "Maximum number of algs evaluated at once")
}

type orderResult struct {
	arg   string
	order int
	// patternOrder counts repetitions until the default pattern returns,
	// which can be lower when pieces carry an orientation modulus.
	patternOrder int
}

func runOrder(cmd *cobra.Command, args []string) error {
	p, err := loadPuzzle(args[0])
	if err != nil {
		return err
	}

	results, err := computeOrders(cmd.Context(), p, args[1:])
	if err != nil {
		return err
	}

	for _, r := range results {
		line := fmt.Sprintf("%s  order %d", moveStyle.Render(r.arg), r.order)
		if r.patternOrder != r.order {
			line += statusStyle.Render(fmt.Sprintf("  (pattern order %d)", r.patternOrder))
		}
		fmt.Println(line)
	}
	return nil
}

// computeOrders evaluates every alg on its own goroutine, bounded by the
// workers flag, and returns the results in argument order.
func computeOrders(ctx context.Context, p *twisty.Puzzle, algArgs []string) ([]orderResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]orderResult, len(algArgs))

	g, ctx := errgroup.WithContext(ctx)
	if orderWorkers > 0 {
		g.SetLimit(orderWorkers)
	}
	for i, arg := range algArgs {
		i, arg := i, arg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := loadAlg(p.Name(), arg)
			if err != nil {
				return err
			}
			t, err := p.TransformationFromAlg(a)
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			order := t.Order()
			po, err := patternOrder(ctx, p.DefaultPattern(), t, order)
			if err != nil {
				return err
			}
			results[i] = orderResult{arg: arg, order: order, patternOrder: po}
			logger.Debug("order computed", slog.String("alg", arg), slog.Int("order", results[i].order))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// patternOrder applies t to start until start returns, at most limit times.
func patternOrder(ctx context.Context, start *twisty.Pattern, t *twisty.Transformation, limit int) (int, error) {
	buf := twisty.NewPatternBuffer(start)
	for k := 1; k <= limit; k++ {
		if k%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		buf.ApplyTransformation(t)
		if buf.Current().Equal(start) {
			return k, nil
		}
	}
	return limit, nil
}
