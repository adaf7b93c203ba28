package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/util/xfile"
)

// putConcurrency put 命令的最大并发写入数。
const putConcurrency = 4

// exitError 表示需要非零退出码但已完成输出的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，对应退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createPutCommand(),
		createGetCommand(),
		createRmCommand(),
		createLsCommand(),
		createMemoCommand(),
		createConfigCommand(),
	}
}

// withEnv 打开运行环境执行 fn，结束后关闭。
func withEnv(cmd *cli.Command, fn func(e *env) error) (err error) {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(e)
}

func createPutCommand() *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "写入文件内容并输出摘要",
		ArgsUsage: "<file>...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return &usageError{msg: "put 需要至少一个文件"}
			}
			return withEnv(cmd, func(e *env) error {
				return cmdPut(ctx, e, cmd, files)
			})
		},
	}
}

// cmdPut 并发写入文件，按参数顺序输出 "<digest>  <file>"。
func cmdPut(ctx context.Context, e *env, cmd *cli.Command, files []string) error {
	digests := make([]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(putConcurrency)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			digest, err := e.store.Put(data)
			if err != nil {
				return err
			}
			e.logger.Debug(gctx, "file stored", xlog.Digest(digest), xlog.Key(file))
			digests[i] = digest
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.Root().Writer
	for i, file := range files {
		fmt.Fprintf(w, "%s  %s\n", digests[i], file)
	}
	return nil
}

func createGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "按摘要读取内容",
		ArgsUsage: "<digest>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "写入文件而不是标准输出",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return &usageError{msg: "get 需要一个摘要参数"}
			}
			return withEnv(cmd, func(e *env) error {
				return cmdGet(e, cmd, cmd.Args().First(), cmd.String("output"))
			})
		},
	}
}

func cmdGet(e *env, cmd *cli.Command, digest, output string) error {
	data, ok, err := e.store.Get(digest)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(cmd.Root().ErrWriter, "未找到: %s\n", digest)
		return &exitError{code: 1}
	}
	if output != "" {
		if err := xfile.EnsureDir(output); err != nil {
			return err
		}
		return xfile.WriteFileAtomic(output, data, xfile.DefaultFilePerm)
	}
	_, err = cmd.Root().Writer.Write(data)
	return err
}

func createRmCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "删除内容（不存在时忽略）",
		ArgsUsage: "<digest>...",
		Action: func(_ context.Context, cmd *cli.Command) error {
			digests := cmd.Args().Slice()
			if len(digests) == 0 {
				return &usageError{msg: "rm 需要至少一个摘要参数"}
			}
			return withEnv(cmd, func(e *env) error {
				for _, d := range digests {
					if err := e.store.Delete(d); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func createLsCommand() *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "列出存储中的内容",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return withEnv(cmd, func(e *env) error {
				return cmdLs(e, cmd)
			})
		},
	}
}

// cmdLs 输出每个内容的摘要、大小与修改时间，最后输出汇总。
func cmdLs(e *env, cmd *cli.Command) error {
	entries, err := e.store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	var total uint64
	for _, entry := range entries {
		size := uint64(max(entry.Size, 0))
		total += size
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Digest, humanize.IBytes(size), humanize.Time(entry.ModTime))
	}
	fmt.Fprintf(w, "%s entries\t%s\t\n", humanize.Comma(int64(len(entries))), humanize.IBytes(total))
	return w.Flush()
}

func createConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "输出生效的配置",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "输出格式 (yaml/json)",
				Value: "yaml",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cmdConfig(cmd, cfg, cmd.String("format"))
		},
	}
}

func cmdConfig(cmd *cli.Command, cfg appConfig, format string) error {
	m := map[string]any{
		"memo": map[string]any{
			"max_size": cfg.Memo.MaxSize,
			"ttl":      cfg.Memo.TTL.String(),
		},
		"disk": map[string]any{
			"root":       cfg.Disk.Root,
			"fanout":     cfg.Disk.Fanout,
			"compress":   cfg.Disk.Compress,
			"read_cache": cfg.Disk.ReadCache,
		},
		"log": map[string]any{
			"level":  cfg.Log.Level,
			"format": cfg.Log.Format,
			"file":   cfg.Log.File,
		},
	}

	var (
		out []byte
		err error
	)
	switch format {
	case "yaml":
		out, err = yaml.Parser().Marshal(m)
	case "json":
		out, err = json.Parser().Marshal(m)
	default:
		return &usageError{msg: fmt.Sprintf("未知格式 %q", format)}
	}
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(out)
	return err
}
