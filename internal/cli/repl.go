package cli

import (
	"os"

	charmlog "github.com/charmbracelet/log"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/exec"
	"github.com/arjunc/tinysql/pkg/shell"
	"github.com/arjunc/tinysql/pkg/snapshot"
)

// runRepl starts the interactive shell: loading an existing snapshot if one
// exists at the configured path, otherwise starting with an empty database
// named "tinysql".
func runRepl() error {
	cfg := loadConfig()

	db := openOrCreate(cfg.DBPath)
	engine := exec.New(db)
	sh := shell.New(engine, cfg.DBPath, os.Stdout)

	charmlog.Info("tinysql ready", "db", cfg.DBPath)
	sh.Run(os.Stdin, true)
	return nil
}

func openOrCreate(path string) *catalog.Database {
	if snapshot.Exists(path) {
		db, err := snapshot.Load(path)
		if err != nil {
			charmlog.Warn("could not load snapshot, starting fresh", "path", path, "err", err)
			return catalog.New("tinysql")
		}
		charmlog.Info("loaded snapshot", "path", path)
		return db
	}
	charmlog.Info("no snapshot found, starting empty", "path", path)
	return catalog.New("tinysql")
}
