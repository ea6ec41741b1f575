// Package cli 命令行采集工具：列出分组、抓取并打印公告
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version 构建时通过 ldflags 注入
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "noticehub-collect",
	Short: "Collect university notice boards from the command line",
	Long:  "noticehub-collect resolves configured notice board groups, fetches them concurrently and prints the merged records as JSON.",
	// 出错时只打印错误，不打印 usage
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "noticehub-collect %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
