package postgres

const (
	// TableJobRecords is the name of the reindex job records table.
	TableJobRecords = "reindex_job_records"
	// TableCatalogEntities is the name of the catalog entities table.
	TableCatalogEntities = "catalog_entities"
)
