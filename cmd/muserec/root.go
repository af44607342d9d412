package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rushteam/muserec/config"
	"github.com/rushteam/muserec/engine"
	"github.com/rushteam/muserec/loader"
	"github.com/rushteam/muserec/pkg/logging"
	"github.com/rushteam/muserec/store"
)

var defaultDataFiles = []string{"data/artists.csv", "data/songs.csv"}

// rootOptions 是所有子命令共享的参数。
type rootOptions struct {
	configPath string
	dataFiles  []string
	redis      store.RedisConfig
	prefix     string
	logLevel   string
	noML       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "muserec",
		Short:         "Music similarity recommender",
		Long:          `muserec recommends similar artists and songs from a local catalog, favouring less popular entries.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Engine config file (YAML)")
	flags.StringSliceVarP(&opts.dataFiles, "data", "d", defaultDataFiles, "Catalog files (.csv or .json), later files override earlier ones")
	flags.StringVar(&opts.redis.Addr, "redis", "", "Redis address; when set the catalog is read from Redis instead of files")
	flags.IntVar(&opts.redis.DB, "redis-db", 0, "Redis database")
	flags.StringVar(&opts.prefix, "prefix", loader.DefaultKeyPrefix, "Key prefix of the catalog snapshot in Redis")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.BoolVar(&opts.noML, "no-ml", false, "Disable cluster boosting")

	cmd.AddCommand(
		newArtistCmd(opts),
		newSongCmd(opts),
		newClustersCmd(opts),
		newImportCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

// app 是一次命令执行所需的全部依赖。
type app struct {
	cfg     config.EngineConfig
	log     zerolog.Logger
	catalog *loader.Catalog
	engine  *engine.Engine
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.EngineConfig, zerolog.Logger, error) {
	cfg := config.DefaultEngineConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadEngineConfig(o.configPath); err != nil {
			return cfg, logging.Nop(), fmt.Errorf("load config: %w", err)
		}
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.noML {
		cfg.Engine.MLEnabled = false
	}
	logCfg := cfg.Log
	logCfg.Output = cmd.ErrOrStderr()
	return cfg, logging.New(logCfg), nil
}

// loadCatalog 优先从 Redis 快照读取，否则并发读取数据文件。
func (o *rootOptions) loadCatalog(ctx context.Context) (*loader.Catalog, error) {
	if o.redis.Addr != "" {
		rs, err := store.NewRedisStore(o.redis)
		if err != nil {
			return nil, err
		}
		defer rs.Close()
		return loader.NewRepository(rs, o.prefix).Load(ctx)
	}
	return loader.LoadFiles(ctx, o.dataFiles...)
}

// setup 加载配置与目录，创建引擎并训练聚类模型。
func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	cfg, log, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	catalog, err := o.loadCatalog(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		log.Warn().Err(err).Msg("catalog has invalid records")
	}
	if ids := loader.UnknownGenres(catalog.Artists); len(ids) > 0 {
		log.Warn().Strs("artists", ids).Msg("unknown genres encode as 0")
	}
	log.Info().
		Int("artists", len(catalog.Artists)).
		Int("songs", len(catalog.Songs)).
		Msg("catalog loaded")

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		return nil, err
	}
	eng.TrainMLModels(catalog.Artists, catalog.Songs)

	return &app{cfg: cfg, log: log, catalog: catalog, engine: eng}, nil
}
