package main

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/peer-network/peer-token/service/app"
	"github.com/peer-network/peer-token/service/common"
	"github.com/peer-network/peer-token/service/config"
	"github.com/peer-network/peer-token/service/http"
	"github.com/peer-network/peer-token/service/transfers"
	"gorm.io/gorm"
)

func cleanTestDatabase(cfg *config.Config, db *gorm.DB) {
	// Only run this if database DSN contains "test"
	if strings.Contains(strings.ToLower(cfg.DatabaseDSN), "test") {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&app.Distribution{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&app.MintGateRecord{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&app.Account{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&transfers.StorableTransfer{})
	}
}

func getTestCfg(t testing.TB) *config.Config {
	cfg, err := config.ParseConfig(&config.ConfigOptions{EnvFilePath: ".env.test"})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(strings.ToLower(cfg.DatabaseDSN), "test") {
		cfg.DatabaseDSN = filepath.Join(t.TempDir(), "test.db")
		cfg.DatabaseType = "sqlite"
	}

	return cfg
}

func getTestApp(t testing.TB, cfg *config.Config, clock clockwork.Clock, poll bool) *app.App {
	db, err := common.NewGormDB(cfg)
	if err != nil {
		t.Fatal(err)
	}

	cleanTestDatabase(cfg, db)

	// Migrate app database
	if err := app.Migrate(db); err != nil {
		t.Fatal(err)
	}

	app, err := app.New(cfg, nil, app.NewGormStore(db), clock, poll)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		app.Close()
		cleanTestDatabase(cfg, db)
		common.CloseGormDB(db)
	})

	return app
}

func getTestServer(t testing.TB, cfg *config.Config, clock clockwork.Clock, poll bool) *http.Server {
	return http.NewServer(cfg, nil, getTestApp(t, cfg, clock, poll))
}

func AssertEqual(t testing.TB, a interface{}, b interface{}) {
	t.Helper()
	if a == b {
		return
	}
	t.Errorf("Received %v (type %v), expected %v (type %v)", a, reflect.TypeOf(a), b, reflect.TypeOf(b))
}
