package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xmemo/pkg/config/xconf"
	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/storage/xcas"
	"github.com/omeyang/xmemo/pkg/storage/xmemo"
)

const defaultRoot = "./caches"

// appConfig 是配置文件的结构。
type appConfig struct {
	Memo xmemo.Config `koanf:"memo"`
	Disk diskConfig   `koanf:"disk"`
	Log  logConfig    `koanf:"log"`
}

type diskConfig struct {
	Root      string `koanf:"root"`
	Fanout    bool   `koanf:"fanout"`
	Compress  bool   `koanf:"compress"`
	ReadCache int    `koanf:"read_cache"`
}

type logConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Memo: xmemo.DefaultConfig(),
		Disk: diskConfig{Root: defaultRoot},
		Log:  logConfig{Level: "info", Format: "text"},
	}
}

// loadConfig 读取配置文件并叠加命令行覆盖项。
// 未出现在配置文件中的字段保持默认值。
func loadConfig(cmd *cli.Command) (appConfig, error) {
	cfg := defaultAppConfig()

	if path := cmd.String("config"); path != "" {
		c, err := xconf.New(path)
		if err != nil {
			return cfg, err
		}
		if err := c.Unmarshal("", &cfg); err != nil {
			return cfg, err
		}
	}

	if cmd.IsSet("root") || cfg.Disk.Root == "" {
		cfg.Disk.Root = cmd.String("root")
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Memo.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// env 是命令执行所需的运行环境。
type env struct {
	cfg     appConfig
	logger  xlog.LoggerWithLevel
	store   *xcas.Store
	cleanup func() error
}

// openEnv 加载配置、构建日志并打开存储。
func openEnv(cmd *cli.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	b := xlog.New().
		SetOutput(cmd.Root().ErrWriter).
		SetLevelString(cfg.Log.Level).
		SetFormat(cfg.Log.Format)
	if cfg.Log.File != "" {
		b.SetRotation(cfg.Log.File)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	store, err := xcas.New(cfg.Disk.Root,
		xcas.WithFanout(cfg.Disk.Fanout),
		xcas.WithCompression(cfg.Disk.Compress),
		xcas.WithReadCache(cfg.Disk.ReadCache),
		xcas.WithLogger(logger),
	)
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, store: store, cleanup: cleanup}, nil
}

// Close 关闭存储与日志文件。
func (e *env) Close() error {
	storeErr := e.store.Close()
	logErr := e.cleanup()
	if storeErr != nil {
		return storeErr
	}
	return logErr
}
