package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Report summarises one upload. The bucket counters always add up to
// TotalProcessed.
type Report struct {
	Message           string         `json:"message"`
	RunID             string         `json:"runId,omitempty"`
	TotalProcessed    int            `json:"totalProcessed"`
	TotalValid        int            `json:"totalValid"`
	TotalShipments    int            `json:"totalShipments"`
	DuplicatesSkipped int            `json:"duplicatesSkipped"`
	InvalidIDRows     int            `json:"invalidIdRows"`
	MissingFieldRows  int            `json:"missingFieldRows"`
	InvalidEnumRows   int            `json:"invalidEnumRows"`
	ProcessingTime    ProcessingTime `json:"processingTime"`
}

// Rejected returns the per bucket counts of rows that were not stored.
func (r Report) Rejected() map[string]int {
	return map[string]int{
		BucketDuplicate:    r.DuplicatesSkipped,
		BucketInvalidID:    r.InvalidIDRows,
		BucketMissingField: r.MissingFieldRows,
		BucketInvalidEnum:  r.InvalidEnumRows,
	}
}

const (
	BucketValid        = "valid"
	BucketDuplicate    = "duplicate"
	BucketInvalidID    = "invalid_id"
	BucketMissingField = "missing_field"
	BucketInvalidEnum  = "invalid_enum"
)

// ProcessingTime renders as seconds with two decimals, e.g. "1.23s".
type ProcessingTime time.Duration

func (p ProcessingTime) Seconds() float64 {
	return time.Duration(p).Seconds()
}

func (p ProcessingTime) String() string {
	return fmt.Sprintf("%.2fs", p.Seconds())
}

func (p ProcessingTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// IngestionRun is the persisted audit row of an upload.
type IngestionRun struct {
	ID                snowflake.ID      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FileName          string            `gorm:"column:file_name;not null" json:"fileName"`
	FileSize          int64             `gorm:"column:file_size;not null" json:"fileSize"`
	Format            string            `gorm:"column:format;type:varchar(8);not null" json:"format"`
	Status            RunStatus         `gorm:"column:status;type:varchar(16);not null" json:"status"`
	TotalProcessed    int               `gorm:"column:total_processed;not null" json:"totalProcessed"`
	TotalValid        int               `gorm:"column:total_valid;not null" json:"totalValid"`
	TotalShipments    int               `gorm:"column:total_shipments;not null" json:"totalShipments"`
	DuplicatesSkipped int               `gorm:"column:duplicates_skipped;not null" json:"duplicatesSkipped"`
	InvalidIDRows     int               `gorm:"column:invalid_id_rows;not null" json:"invalidIdRows"`
	MissingFieldRows  int               `gorm:"column:missing_field_rows;not null" json:"missingFieldRows"`
	InvalidEnumRows   int               `gorm:"column:invalid_enum_rows;not null" json:"invalidEnumRows"`
	Error             *string           `gorm:"column:error" json:"error,omitempty"`
	Metadata          datatypes.JSONMap `gorm:"column:metadata;not null" json:"metadata,omitempty"`
	StartedAt         time.Time         `gorm:"column:started_at;not null;index" json:"startedAt"`
	FinishedAt        time.Time         `gorm:"column:finished_at;not null" json:"finishedAt"`
}

func (IngestionRun) TableName() string {
	return "ingestion_runs"
}

// ReloadedEvent announces that the shipment store was replaced.
type ReloadedEvent struct {
	RunID      string    `json:"runId"`
	FileName   string    `json:"fileName"`
	Report     Report    `json:"report"`
	OccurredAt time.Time `json:"occurredAt"`
}
