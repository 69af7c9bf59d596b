package structs

// Well known execution attribute keys. Attributes are free form, these are
// simply the ones producers tend to send.
const (
	AttrRowsProcessed    = "rows_processed"
	AttrRowsInserted     = "rows_inserted"
	AttrRowsUpdated      = "rows_updated"
	AttrRowsDeleted      = "rows_deleted"
	AttrServerName       = "server_name"
	AttrDatabaseName     = "database_name"
	AttrCorrelationID    = "correlation_id"
	AttrTags             = "tags"
	AttrMachineName      = "machine_name"
	AttrMemoryUsageMB    = "memory_usage_mb"
	AttrSource           = "source"
	AttrDestination      = "destination"
	AttrRecordsExpected  = "records_expected"
	AttrRecordsActual    = "records_actual"
	AttrDataQuality      = "data_quality_score"
	AttrRetryCount       = "retry_count"
	AttrParentExecution  = "parent_execution_id"
	AttrUserName         = "user_name"
	maxAttributeKeyBytes = 128
)

// Attributes is the sparse enrichment set attached to an execution.
type Attributes map[string]interface{}

// Merge returns a new set with the values of other laid over a.
// Neither input is modified.
func (a Attributes) Merge(other Attributes) Attributes {
	if len(a) == 0 && len(other) == 0 {
		return nil
	}
	out := make(Attributes, len(a)+len(other))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Copy returns a shallow copy.
func (a Attributes) Copy() Attributes {
	if a == nil {
		return nil
	}
	return a.Merge(nil)
}

// ValidKeys returns false if any key is empty or overly long.
func (a Attributes) ValidKeys() bool {
	for k := range a {
		if k == "" || len(k) > maxAttributeKeyBytes {
			return false
		}
	}
	return true
}
