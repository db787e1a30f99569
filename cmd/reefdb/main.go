// Command reefdb is the CLI host that drives reefdb's host entry points:
// open a store, address a collection, insert and query documents, and dump
// the whole key space for inspection. It does not call CollectionGetName.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reefdb/reefdb"
	"github.com/reefdb/reefdb/internal/config"
	"github.com/reefdb/reefdb/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	logCfg := logging.NewConfig()

	root := &cobra.Command{
		Use:           "reefdb",
		Short:         "An embedded document store",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a reefdb.yaml config file")

	// Load("") never touches the filesystem and never errors; it only
	// supplies the defaults RegisterFlags seeds its flags with.
	defaultCfg, _ := config.Load("")
	logCfg.RegisterFlags(root.PersistentFlags(), defaultCfg.LogLevel, defaultCfg.LogFormat)
	if err := logCfg.RegisterCompletions(root); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	open := func() (*reefdb.Database, *slog.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		handler, err := logCfg.NewHandler(os.Stderr)
		if err != nil {
			return nil, nil, err
		}
		logger := slog.New(handler)

		db, err := reefdb.DatabaseNew(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return db, logger, nil
	}

	root.AddCommand(newInsertCmd(open))
	root.AddCommand(newQueryCmd(open))
	root.AddCommand(newDebugCmd(open))
	return root
}

func newInsertCmd(open func() (*reefdb.Database, *slog.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <collection> <id> <json>",
		Short: "Insert a document under an explicit id",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			db, logger, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			collection, id, json := args[0], args[1], args[2]
			c := reefdb.DatabaseCollection(db, collection)
			defer c.Close()

			if err := reefdb.CollectionInsert(c, id, json); err != nil {
				return err
			}
			logger.Info("inserted document", "collection", collection, "id", id)
			return nil
		},
	}
}

func newQueryCmd(open func() (*reefdb.Database, *slog.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "query <collection> <json-query>",
		Short: "Print every document matching a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			collection, queryJSON := args[0], args[1]
			c := reefdb.DatabaseCollection(db, collection)
			defer c.Close()

			cur, err := reefdb.CollectionQuery(c, queryJSON)
			if err != nil {
				return err
			}
			defer cur.Close()

			out := cmd.OutOrStdout()
			for cur.Next() {
				json, err := cur.JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(json))
			}
			return cur.Err()
		},
	}
}

func newDebugCmd(open func() (*reefdb.Database, *slog.Logger, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print every key and document currently in the store",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			db, _, err := open()
			if err != nil {
				return err
			}
			defer db.Close()

			return reefdb.DatabaseDebug(db)
		},
	}
}
