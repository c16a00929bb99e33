// Package commands implements the docpager command line tool.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "docpager",
		Short:         "Seed and browse a PostgreSQL document collection",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	f := rootCmd.PersistentFlags()
	f.String(keyDSN, "", "PostgreSQL connection string (env DOCPAGER_DSN)")
	f.String(keyTable, defaultTable, "document table")
	f.Int(keyPageSize, defaultPageSize, "records per page")
	f.Bool(keyLogQueries, false, "log every SQL query")
	f.Bool(keyDebug, false, "enable debug logging")

	rootCmd.AddCommand(
		newMigrateCommand(),
		newSeedCommand(),
		newBrowseCommand(),
		newLabelsCommand(),
	)

	return rootCmd
}
