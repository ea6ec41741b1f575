package cli

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/LJTian/NoticeHub/internal/app"
	"github.com/LJTian/NoticeHub/internal/collector"
	"github.com/LJTian/NoticeHub/internal/config"
	"github.com/spf13/cobra"
)

var (
	fetchGroup    string
	fetchSub      string
	fetchDeadline time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a group or sub-group and print its notices as JSON",
	RunE:  fetchAction,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchGroup, "group", "", "group name")
	fetchCmd.Flags().StringVar(&fetchSub, "sub", "", "sub-group name")
	fetchCmd.Flags().DurationVar(&fetchDeadline, "deadline", 0, "group deadline (default GROUP_DEADLINE)")
	rootCmd.AddCommand(fetchCmd)
}

func fetchAction(cmd *cobra.Command, _ []string) error {
	if fetchGroup == "" && fetchSub == "" {
		return errors.New("one of --group or --sub is required")
	}

	a, err := app.Build(config.Load())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	res, err := a.Catalog.Resolve(fetchGroup, fetchSub)
	if err != nil {
		return err
	}

	deadline := a.Deadline
	if fetchDeadline > 0 {
		deadline = fetchDeadline
	}

	ctx := cmd.Context()
	items := []collector.Notice{}
	switch {
	case res.Single != nil:
		items = a.Fetcher.FetchOne(ctx, *res.Single)
	case len(res.Group) > 0:
		items = a.Aggregator.FetchGroup(ctx, res.Group, deadline)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string][]collector.Notice{"items": items})
}
