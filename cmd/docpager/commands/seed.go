package commands

import (
	"context"
	"fmt"

	"github.com/n-r-w/docpager"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var (
		count  int
		prefix string
		seller string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Args:  cobra.NoArgs,
		Short: "Insert sample documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			s, stop, err := cfg.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			n, err := seed(cmd.Context(), s, count, prefix, seller)
			fmt.Fprintf(cmd.OutOrStdout(), "created %d documents\n", n)
			return err
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 12, "number of documents")
	cmd.Flags().StringVar(&prefix, "prefix", "Product", "name prefix")
	cmd.Flags().StringVar(&seller, "seller", "", "sellerId of the documents")

	return cmd
}

type batchCreator interface {
	CreateMany(ctx context.Context, fields []docpager.Fields) ([]docpager.Record, error)
}

func seed(ctx context.Context, store docpager.IStore, count int, prefix, seller string) (int, error) {
	docs := make([]docpager.Fields, 0, count)
	for i := range count {
		fields := docpager.Fields{"name": fmt.Sprintf("%s %d", prefix, i+1)}
		if seller != "" {
			fields["sellerId"] = seller
		}
		docs = append(docs, fields)
	}

	if b, ok := store.(batchCreator); ok {
		if _, err := b.CreateMany(ctx, docs); err != nil {
			return 0, fmt.Errorf("create documents: %w", err)
		}
		return count, nil
	}

	for i, fields := range docs {
		if _, err := store.Create(ctx, fields); err != nil {
			return i, fmt.Errorf("create document %d: %w", i+1, err)
		}
	}

	return count, nil
}
