package clickhouse

const (
	// TableReindexRunEvents is the name of the reindex run audit table.
	TableReindexRunEvents = "reindex_run_events"
)
