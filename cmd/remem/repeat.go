package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/cli"
	"github.com/at-ishikawa/remem/internal/repeat"
)

// TaskTypeFlag collects task type codes given by repeated --task-type flags.
type TaskTypeFlag []card.TaskTypeCode

// Set implements pflag.Value.
func (f *TaskTypeFlag) Set(v string) error {
	for _, code := range card.TaskTypeCodes {
		if string(code) == v {
			*f = append(*f, code)
			return nil
		}
	}
	valid := make([]string, 0, len(card.TaskTypeCodes))
	for _, code := range card.TaskTypeCodes {
		valid = append(valid, string(code))
	}
	return fmt.Errorf("invalid value %q, valid values are %s", v, strings.Join(valid, ", "))
}

// String implements pflag.Value.
func (f *TaskTypeFlag) String() string {
	if f == nil {
		return ""
	}
	codes := make([]string, 0, len(*f))
	for _, code := range *f {
		codes = append(codes, string(code))
	}
	return strings.Join(codes, ",")
}

// Type implements pflag.Value.
func (f *TaskTypeFlag) Type() string {
	return "TaskTypeFlag"
}

var (
	_ pflag.Value = (*TaskTypeFlag)(nil)
)

func newRepeatCommand() *cobra.Command {
	var (
		folderIDs []int64
		taskTypes TaskTypeFlag
		buckets   string
	)
	command := &cobra.Command{
		Use:   "repeat",
		Short: "Repeat tasks of the selected folders with a bucket strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, historyRepository, err := openStores(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			repeatCLI := cli.NewRepeatCLI(repeat.NewTerminalConsole(), card.NewDBRepository(db), historyRepository, cfg.Repeat)
			return repeatCLI.Run(cmd.Context(), cli.RepeatOptions{
				FolderIDs: folderIDs,
				TaskTypes: taskTypes,
				Buckets:   buckets,
			})
		},
	}
	flags := command.Flags()
	flags.Int64SliceVar(&folderIDs, "folder", nil, "Folder id to repeat, including its subfolders. Asked when omitted")
	flags.Var(&taskTypes, "task-type", "Task type to repeat: translate_12, translate_21 or fill_gaps. Asked when omitted")
	flags.StringVar(&buckets, "buckets", "", "Name of the configured bucket description. Asked when omitted")
	return command
}
