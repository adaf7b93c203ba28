package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xmemo/pkg/observability/xmetrics"
	"github.com/omeyang/xmemo/pkg/storage/xmemo"
)

const memoInstrumentationName = "github.com/omeyang/xmemo/cmd/xmemoctl"

func createMemoCommand() *cli.Command {
	return &cli.Command{
		Name:      "memo",
		Usage:     "经记忆化缓存依次读取文件，按 memo 配置淘汰并删除内容",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "输出文件读取次数与耗时",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "结束时清空缓存并删除其内容",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return &usageError{msg: "memo 需要至少一个文件"}
			}
			return withEnv(cmd, func(e *env) error {
				return cmdMemo(ctx, e, cmd, files)
			})
		},
	}
}

// cmdMemo 以文件路径为参数经 DiskCache 读取文件，
// 每个文件输出 "<hit|miss>  <size>  <file>"，最后输出统计。
// 索引只在本次执行内有效，存储中的内容在执行结束后保留。
func cmdMemo(ctx context.Context, e *env, cmd *cli.Command, files []string) (err error) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		if serr := mp.Shutdown(context.WithoutCancel(ctx)); serr != nil && err == nil {
			err = serr
		}
	}()

	obs, err := xmetrics.NewOTelObserver(
		xmetrics.WithInstrumentationName(memoInstrumentationName),
		xmetrics.WithMeterProvider(mp),
	)
	if err != nil {
		return err
	}
	d, err := xmemo.NewDisk(e.cfg.Memo, e.store,
		xmemo.WithLogger(e.logger),
		xmemo.WithObserver(obs),
	)
	if err != nil {
		return err
	}

	var computed bool
	load := d.Caching(func(args ...any) (any, error) {
		computed = true
		return os.ReadFile(args[0].(string))
	})

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		computed = false
		data, err := load(file)
		if err != nil {
			return err
		}
		status := "hit"
		if computed {
			status = "miss"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", status, humanize.IBytes(uint64(len(data))), file)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := d.Engine().Stats()
	fmt.Fprintf(cmd.Root().Writer, "hits %d, misses %d, evictions %d, expirations %d, hit ratio %.0f%%\n",
		st.Hits, st.Misses, st.Evictions, st.Expirations, st.HitRatio()*100)

	if cmd.Bool("metrics") {
		if err := printMemoMetrics(ctx, reader, cmd.Root().Writer); err != nil {
			return err
		}
	}
	if cmd.Bool("clear") {
		return d.Engine().Clear()
	}
	return nil
}

// printMemoMetrics 输出 compute 操作的次数与总耗时。
func printMemoMetrics(ctx context.Context, reader sdkmetric.Reader, w io.Writer) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return err
	}

	var (
		total   int64
		seconds float64
	)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if m.Name != xmetrics.MetricOperationTotal {
					continue
				}
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
			case metricdata.Histogram[float64]:
				if m.Name != xmetrics.MetricOperationDuration {
					continue
				}
				for _, dp := range data.DataPoints {
					seconds += dp.Sum
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "computes %d, compute time %.3fs\n", total, seconds)
	return err
}
