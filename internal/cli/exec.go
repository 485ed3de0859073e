package cli

import (
	"fmt"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arjunc/tinysql/pkg/exec"
	"github.com/arjunc/tinysql/pkg/snapshot"
	"github.com/arjunc/tinysql/pkg/sqlparse"
)

var execCmd = &cobra.Command{
	Use:   "exec <sql statement>",
	Short: "Run a single SQL statement against the snapshot and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	stmt := strings.Join(args, " ")

	db := openOrCreate(cfg.DBPath)
	engine := exec.New(db)

	parsed, err := sqlparse.Parse(stmt)
	if err != nil {
		return err
	}
	result, err := engine.Execute(parsed)
	if err != nil {
		return err
	}

	if result.Rows != nil {
		for _, row := range result.Rows {
			fmt.Println(row)
		}
		fmt.Printf("%d rows\n", len(result.Rows))
	} else {
		fmt.Printf("%d rows affected\n", result.RowsAffected)
	}

	if err := snapshot.Save(engine.DB, cfg.DBPath); err != nil {
		charmlog.Warn("snapshot save failed", "err", err)
	}
	return nil
}
