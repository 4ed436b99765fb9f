package app

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/doro/internal/config"
	"github.com/ayoisaiah/doro/internal/pathutil"
	"github.com/ayoisaiah/doro/internal/ui"
	"github.com/ayoisaiah/doro/ledger"
	"github.com/ayoisaiah/doro/repo"
	"github.com/ayoisaiah/doro/stats"
	"github.com/ayoisaiah/doro/store"
)

// env is everything a command needs to read and write records.
type env struct {
	cfg    *config.Config
	db     store.DB
	repos  *repo.Repos
	stats  *stats.Aggregator
	ledger *ledger.Ledger
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	ui.SetDarkTheme(cfg.Display.DarkTheme)

	return cfg, nil
}

// openStore opens the database selected by storage.driver.
func openStore(driver string) (store.DB, error) {
	switch driver {
	case config.DriverSQLite:
		return store.NewSQLite(pathutil.SQLiteFilePath())
	case config.DriverMemory:
		return store.NewMemory(), nil
	case config.DriverBolt, "":
		return store.NewClient(pathutil.DBFilePath())
	}

	return nil, errUnknownDriver.Fmt(driver)
}

func newEnv(ctx *cli.Context) (*env, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	db, err := openStore(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}

	r := repo.New(db)
	agg := stats.New(r)

	return &env{
		cfg:   cfg,
		db:    db,
		repos: r,
		stats: agg,
		ledger: ledger.New(
			r,
			agg,
			ledger.WithRecordBreaks(cfg.Settings.RecordBreaks),
		),
	}, nil
}

func (e *env) Close() error {
	if e == nil || e.db == nil {
		return nil
	}

	return e.db.Close()
}

// withEnv runs fn with a freshly opened env and closes it afterwards.
func withEnv(ctx *cli.Context, fn func(e *env) error) (err error) {
	e, err := newEnv(ctx)
	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, e.Close())
	}()

	return fn(e)
}
