// Command muserec 是音乐相似推荐的命令行入口。
//
//	muserec artist "Radiohead" -n 5
//	muserec song "Reckoner" --json
//	muserec clusters --kind artist
//	muserec import --redis localhost:6379
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
