// Package logging provides a process-wide structured logger for fensql.
//
// The package wraps go.uber.org/zap and exposes a single global sugared
// logger that is initialized once and then retrieved via GetLogger. All
// subsystems obtain their logger through this package so that log level and
// output destination are controlled from a single place.
//
// # Initialisation
//
// Call Init (or InitDefault for sensible defaults) once at program startup:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, OutputPath: "fensql.log"}); err != nil {
//	    log.Fatal(err)
//	}
//
// With an OutputPath the file is rotated by lumberjack. Without one, logs go
// to Config.Writer or stderr, never stdout, because stdout belongs to the REPL.
//
// # Retrieving the logger
//
//	logger := logging.GetLogger()
//	logger.Infow("table opened", "max_pages", 100)
//
// If GetLogger is called before Init, a default WARN-level stderr logger is
// created lazily (via sync.Once).
//
// # Context helpers
//
//	log := logging.WithSession(id)      // adds session field
//	log := logging.WithTable(name)      // adds table field
//	log := logging.WithPage(pageNum)    // adds page field
package logging
