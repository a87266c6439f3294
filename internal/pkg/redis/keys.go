package redis

import "fmt"

// GetReindexStatusKey returns the cache key for the last reindex job record
// of the given run mode.
func GetReindexStatusKey(runMode string) string {
	return fmt.Sprintf("reindex:status:%s", runMode)
}
