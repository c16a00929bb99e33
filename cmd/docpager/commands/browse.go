package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/n-r-w/docpager"
	"github.com/n-r-w/docpager/mirror"
	"github.com/n-r-w/docpager/mutation"
	"github.com/n-r-w/docpager/pager"
	"github.com/n-r-w/docpager/pgstore"
	"github.com/spf13/cobra"
)

const browseHelp = `commands:
  f             first page
  n             next page
  p             previous page
  r             reload count and first page
  /text         filter the current page, "/" clears
  c name [seller]  create a document
  u id name     rename a document
  d id          delete a document
  q             quit`

func newBrowseCommand() *cobra.Command {
	var sellers string

	cmd := &cobra.Command{
		Use:   "browse",
		Args:  cobra.NoArgs,
		Short: "Page through the collection interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			s, stop, err := cfg.openStore(ctx)
			if err != nil {
				return err
			}
			defer stop()

			labels := mirror.NewLabels()
			g := mirror.NewGroup(ctx)
			if sellers != "" {
				src := s.Listen(pgstore.Reference{Table: sellers})
				defer src.Close()
				mirror.Go(g, labels.Mirror, src, mirror.WithName(sellers), mirror.WithLogger(cfg.logger()))
			}

			b, err := newBrowser(s, labels, cmd.OutOrStdout(), cfg.PageSize, cfg.logger())
			if err != nil {
				return err
			}

			err = b.run(ctx, cmd.InOrStdin())
			cancel()

			return errors.Join(err, g.Wait())
		},
	}

	cmd.Flags().StringVar(&sellers, "sellers", "", "seller table used to resolve sellerName")

	return cmd
}

type browser struct {
	engine *pager.Engine
	coord  *mutation.Coordinator
	out    io.Writer
	query  string
}

func newBrowser(store docpager.IStore, labels mutation.ILabeler, out io.Writer, pageSize int,
	logger docpager.ILogger,
) (*browser, error) {
	e, err := pager.New(store, pager.WithPageSize(pageSize), pager.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	c, err := mutation.New(e, store,
		mutation.WithLogger(logger),
		mutation.WithLabel("sellerId", "sellerName", labels, mutation.DefaultSellerFallback))
	if err != nil {
		return nil, err
	}

	return &browser{engine: e, coord: c, out: out}, nil
}

// run executes commands read from in until "q", EOF or ctx cancellation.
func (b *browser) run(ctx context.Context, in io.Reader) error {
	if err := b.engine.Reload(ctx); err != nil {
		fmt.Fprintf(b.out, "error: %v\n", err)
	}
	b.print()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		quit, err := b.exec(ctx, strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintf(b.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}

	return scanner.Err()
}

func (b *browser) exec(ctx context.Context, line string) (quit bool, err error) {
	if line == "" {
		return false, nil
	}

	if strings.HasPrefix(line, "/") {
		b.query = strings.TrimPrefix(line, "/")
		b.print()
		return false, nil
	}

	args := strings.Fields(line)
	var out pager.Outcome

	switch args[0] {
	case "q":
		return true, nil
	case "?", "h":
		fmt.Fprintln(b.out, browseHelp)
		return false, nil
	case "f":
		out, err = b.engine.LoadFirst(ctx)
	case "n":
		out, err = b.engine.LoadNext(ctx)
	case "p":
		out, err = b.engine.LoadPrevious(ctx)
	case "r":
		err = b.engine.Reload(ctx)
		out = pager.OutcomeMoved
	case "c":
		if len(args) < 2 {
			return false, errors.New("usage: c name [seller]")
		}
		fields := docpager.Fields{"name": args[1]}
		if len(args) > 2 {
			fields["sellerId"] = args[2]
		}
		var rec docpager.Record
		if rec, err = b.coord.Create(ctx, fields); err == nil {
			fmt.Fprintf(b.out, "created %s\n", rec.ID)
		}
		out = pager.OutcomeMoved
	case "u":
		if len(args) < 3 {
			return false, errors.New("usage: u id name")
		}
		err = b.coord.Update(ctx, args[1], docpager.Fields{"name": strings.Join(args[2:], " ")})
		out = pager.OutcomeMoved
	case "d":
		if len(args) != 2 {
			return false, errors.New("usage: d id")
		}
		err = b.coord.Delete(ctx, args[1])
		out = pager.OutcomeMoved
	default:
		return false, fmt.Errorf("unknown command %q, type ? for help", args[0])
	}

	if err != nil {
		return false, err
	}

	switch out {
	case pager.OutcomeMoved, pager.OutcomeExhausted:
		b.print()
	case pager.OutcomeLastPage:
		fmt.Fprintln(b.out, "already on the last page")
	case pager.OutcomeFirstPage:
		fmt.Fprintln(b.out, "already on the first page")
	case pager.OutcomeBusy:
		fmt.Fprintln(b.out, "busy, try again")
	case pager.OutcomeFailed:
	}

	return false, nil
}

func (b *browser) print() {
	st := b.engine.State()

	items := st.Items
	if b.query != "" {
		items = b.engine.Filter(b.query)
	}

	fmt.Fprintf(b.out, "page %d/%d, %d documents\n", st.PageIndex, st.TotalPages, st.TotalCount)

	w := tabwriter.NewWriter(b.out, 0, 0, 2, ' ', 0)
	for _, r := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.String("name"), r.String("sellerName"))
	}
	_ = w.Flush()

	if st.HasNext {
		fmt.Fprintln(b.out, "more: n")
	}
}
