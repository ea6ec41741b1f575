package main

import (
	"os"

	"github.com/LJTian/NoticeHub/internal/cli"
)

// 命令行入口：手动查看分组或抓取某个分组的公告
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
