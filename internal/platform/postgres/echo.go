package postgres

import (
	"context"
	"log/slog"
	"strings"
)

// echoQuery logs the statement about to run against the database. The line
// is emitted at debug level, so it only appears when database.echo_queries
// lowers the log level to debug.
func echoQuery(ctx context.Context, log *slog.Logger, query string) {
	if !log.Enabled(ctx, slog.LevelDebug) {
		return
	}
	log.DebugContext(ctx, "executing query",
		slog.String("query", strings.Join(strings.Fields(query), " ")))
}
