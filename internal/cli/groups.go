package cli

import (
	"fmt"
	"strings"

	"github.com/LJTian/NoticeHub/internal/config"
	"github.com/LJTian/NoticeHub/internal/sources"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List configured groups and sub-groups",
	RunE:  groupsAction,
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}

func loadCatalog(cfg *config.Config) (*sources.Catalog, error) {
	if cfg.SourcesFile == "" {
		return sources.Default(), nil
	}
	return sources.LoadFile(cfg.SourcesFile)
}

func groupsAction(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog(config.Load())
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, g := range catalog.Groups() {
		if len(g.Subs) == 0 {
			fmt.Fprintln(out, g.Name)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", g.Name, strings.Join(g.Subs, ", "))
	}
	return nil
}
