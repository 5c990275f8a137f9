package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/remem/internal/bucket"
	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/cli"
)

func newStatsCommand() *cobra.Command {
	var (
		folderIDs []int64
		buckets   string
	)
	command := &cobra.Command{
		Use:   "stats",
		Short: "Show the bucket statistics of the tasks in folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			desc, err := bucketsByName(cfg.Repeat, buckets)
			if err != nil {
				return err
			}
			db, historyRepository, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			cards := card.NewDBRepository(db)
			scheduler := bucket.NewScheduler(historyRepository, cards, bucket.NewPolicy(cfg.Repeat.FrontSlice, cfg.Repeat.UseWeights), nil)
			return cli.RunStats(cmd.Context(), cmd.OutOrStdout(), cards, scheduler, folderIDs, desc)
		},
	}
	command.Flags().Int64SliceVar(&folderIDs, "folder", nil, "Folder id, including its subfolders")
	command.Flags().StringVar(&buckets, "buckets", "", "Name of the configured bucket description")
	_ = command.MarkFlagRequired("folder")
	return command
}

func newBucketsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "List the configured bucket descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return cli.PrintBuckets(cmd.OutOrStdout(), cfg.Repeat)
		},
	}
}
