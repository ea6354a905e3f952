package domain

import "time"

// IngestStatus classifies how an ingestion run ended. Every status except
// StatusSuccess is terminal for the invocation and must not be retried;
// transport failures travel as errors instead so the caller's retry
// machinery only ever sees those.
type IngestStatus string

const (
	StatusSuccess           IngestStatus = "success"
	StatusConfigUnavailable IngestStatus = "config_unavailable"
	StatusCredentialMissing IngestStatus = "credential_missing"
	StatusProviderError     IngestStatus = "provider_error"
)

// IngestReport summarizes one fetch-and-store cycle for a configuration.
type IngestReport struct {
	ConfigID   int64        `json:"config_id"`
	ConfigName string       `json:"config_name,omitempty"`
	Status     IngestStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	Total      int          `json:"total_articles"`
	Created    int          `json:"created_count"`
	Duplicates int          `json:"duplicate_count"`
	Errors     int          `json:"error_count"`
}

// ScheduledJob acknowledges one ingestion job submitted by the fan-out.
type ScheduledJob struct {
	ConfigID   int64  `json:"config_id"`
	ConfigName string `json:"config_name"`
	JobID      string `json:"job_id"`
}

// FanoutSummary is returned by the fan-out immediately after submitting
// one job per active configuration; it never waits on job completion.
type FanoutSummary struct {
	Processed int            `json:"configs_processed"`
	Scheduled []ScheduledJob `json:"scheduled_jobs"`
}

// RetentionReport summarizes one retention sweep.
type RetentionReport struct {
	Deleted int64     `json:"deleted_count"`
	Cutoff  time.Time `json:"cutoff"`
}
