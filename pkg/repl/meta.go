package repl

import (
	"strings"

	"github.com/dustin/go-humanize"

	"fensql/pkg/row"
	"fensql/pkg/storage/page"
)

type metaResult int

const (
	metaSuccess metaResult = iota
	metaExit
	metaUnrecognized
)

type metaCommand struct {
	name string
	help string
	run  func(r *REPL) metaResult
}

var metaCommands []metaCommand

func init() {
	metaCommands = []metaCommand{
		{name: ".exit", help: "Close the table and leave", run: func(*REPL) metaResult { return metaExit }},
		{name: ".help", help: "Show this help", run: (*REPL).printHelp},
		{name: ".constants", help: "Show the row and page layout", run: (*REPL).printConstants},
		{name: ".pages", help: "List allocated pages with checksums", run: (*REPL).printPages},
		{name: ".stats", help: "Show table fill level and session counters", run: (*REPL).printStats},
	}
}

func (r *REPL) runMeta(line string) metaResult {
	name := strings.TrimSpace(line)
	for _, cmd := range metaCommands {
		if cmd.name == name {
			return cmd.run(r)
		}
	}

	r.println(r.styles.err("Unrecognized command '" + line + "'"))
	return metaUnrecognized
}

func (r *REPL) printHelp() metaResult {
	r.println(r.styles.heading("Statements:"))
	r.println("  insert <id> <username> <email>")
	r.println("  select")
	r.println(r.styles.heading("Meta-commands:"))
	for _, cmd := range metaCommands {
		r.printf("  %-11s %s\n", cmd.name, cmd.help)
	}
	return metaSuccess
}

func (r *REPL) printConstants() metaResult {
	layout := r.db.Layout()
	r.println(r.styles.heading("Constants:"))
	r.printf("ROW_SIZE: %d\n", row.RowSize)
	r.printf("PAGE_SIZE: %d\n", page.PageSize)
	r.printf("ROWS_PER_PAGE: %d\n", layout.RowsPerPage)
	r.printf("MAX_PAGES: %d\n", layout.MaxPages)
	r.printf("TABLE_MAX_ROWS: %d\n", layout.MaxRows)
	return metaSuccess
}

func (r *REPL) printPages() metaResult {
	info := r.db.GetStatistics()
	report := r.db.PageReport()

	r.println(r.styles.heading("Pages:"))
	r.printf("%d of %d allocated\n", info.AllocatedPages, info.MaxPages)
	for _, p := range report {
		r.printf("  %d: %d rows  blake3 %s\n", p.Number, p.Rows, p.Checksum.Short())
	}
	return metaSuccess
}

func (r *REPL) printStats() metaResult {
	info := r.db.GetStatistics()

	r.println(r.styles.heading("Table " + info.Name))
	r.printf("Session: %s\n", info.SessionID)
	r.printf("Rows: %s of %s\n", humanize.Comma(int64(info.RowCount)), humanize.Comma(int64(info.Capacity)))
	r.printf("Pages: %d of %d (%s of %s)\n",
		info.AllocatedPages, info.MaxPages,
		humanize.Bytes(info.AllocatedBytes), humanize.Bytes(info.CapacityBytes))
	r.printf("Queries: %s executed (%s inserts, %s selects), %s failed\n",
		humanize.Comma(info.QueriesExecuted),
		humanize.Comma(info.InsertsCount),
		humanize.Comma(info.SelectsCount),
		humanize.Comma(info.ErrorCount))
	return metaSuccess
}
