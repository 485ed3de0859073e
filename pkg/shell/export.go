package shell

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/arjunc/tinysql/pkg/sqlerr"
)

// export implements the EXPORT supplement: "EXPORT <table> <path>" writes a
// table verbatim to an .xlsx spreadsheet, header row first, setting each
// cell individually via excelize's SetCellValue.
func (sh *Shell) export(args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		fmt.Fprintf(sh.Out, "Error: %s\n", sqlerr.Syntax("EXPORT <table> <path>"))
		return
	}
	table, path := fields[0], fields[1]

	t, ok := sh.Engine.DB.Table(table)
	if !ok {
		fmt.Fprintf(sh.Out, "Error: %s\n", sqlerr.NoTable(table))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, c := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, c.Name)
	}
	for rowNum, row := range t.Select(nil) {
		for colNum, c := range t.Columns {
			cell, _ := excelize.CoordinatesToCellName(colNum+1, rowNum+2)
			f.SetCellValue(sheet, cell, row.Get(c.Name).String())
		}
	}

	if err := f.SaveAs(path); err != nil {
		fmt.Fprintf(sh.Out, "Error: %s\n", sqlerr.IO(err))
		return
	}
	fmt.Fprintf(sh.Out, "Exported %d rows from %s to %s\n", t.RowCount(), table, path)
}
