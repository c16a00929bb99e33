package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/n-r-w/docpager/mirror"
	"github.com/n-r-w/docpager/pgstore"
	"github.com/spf13/cobra"
)

func newLabelsCommand() *cobra.Command {
	var ref pgstore.Reference

	cmd := &cobra.Command{
		Use:   "labels TABLE",
		Args:  cobra.ExactArgs(1),
		Short: "Print a reference table every time it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ref.Table = args[0]
			src := s.Listen(ref)
			defer src.Close()

			labels := mirror.NewLabels()
			labels.Subscribe(func(snap mirror.Snapshot[mirror.Label]) {
				out := cmd.OutOrStdout()
				if snap.Err != nil {
					fmt.Fprintf(out, "v%d error: %v\n", snap.Version, snap.Err)
					return
				}

				fmt.Fprintf(out, "v%d, %d labels\n", snap.Version, len(snap.Items))
				for _, l := range snap.Items {
					fmt.Fprintf(out, "  %s\t%s\n", l.ID, l.Name)
				}
			})

			return mirror.Watch(ctx, labels.Mirror, src, mirror.WithName(ref.Table), mirror.WithLogger(cfg.logger()))
		},
	}

	cmd.Flags().StringVar(&ref.IDColumn, "id-column", "id", "identifier column")
	cmd.Flags().StringVar(&ref.LabelColumn, "label-column", "name", "label column or expression")

	return cmd
}
