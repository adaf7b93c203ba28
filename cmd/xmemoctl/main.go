// xmemoctl 是内容寻址缓存目录的命令行工具。
//
// 用法:
//
//	xmemoctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-r, --root       存储根目录（覆盖配置文件中的 disk.root）
//	-c, --config     配置文件路径（.yaml/.yml/.json）
//	-l, --log-level  日志级别（覆盖配置文件中的 log.level）
//
// 命令:
//
//	put <file>...    并发写入文件内容，输出摘要
//	get <digest>     按摘要读取内容
//	rm <digest>...   删除内容（幂等）
//	ls               列出存储中的内容
//	memo <file>...   经记忆化缓存读取文件，按 memo 配置淘汰并删除内容
//	config           输出生效的配置
//
// 退出码:
//
//	0: 成功
//	1: 执行失败或内容不存在
//	2: 参数错误
//
// 示例:
//
//	xmemoctl -r ./caches put a.txt b.txt
//	xmemoctl -r ./caches get 2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824
//	xmemoctl -c xmemo.yaml ls
//	xmemoctl -c xmemo.yaml memo --metrics a.txt b.txt a.txt
//	xmemoctl -c xmemo.yaml config --format json
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// createApp 创建 CLI 应用。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xmemoctl",
		Usage:     "内容寻址缓存目录管理工具",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "存储根目录",
				Value:   defaultRoot,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "日志级别 (debug/info/warn/error)",
			},
		},
		Commands: createCommands(),
		// 由 run 统一映射退出码，禁止 urfave/cli 直接调用 os.Exit
		ExitErrHandler: func(_ context.Context, cmd *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(cmd.Root().ErrWriter, err)
			}
		},
	}
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
