// Snapshot metadata: the small JSON object written as the first archive
// entry so a reader can inspect the backup before extracting anything.
package backup

import (
	"encoding/json"
	"fmt"
)

// SnapshotVersion is the current binary-snapshot format version.
const SnapshotVersion = 2

// MetadataEntryName is the archive entry holding the metadata object.
const MetadataEntryName = "metadata.json"

// DocumentsPrefix is the archive path prefix for blob store entries.
const DocumentsPrefix = "documents/"

// Metadata describes a snapshot archive.
type Metadata struct {
	Version    int          `json:"version"`
	BackupDate int64        `json:"backupDate"` // epoch milliseconds
	AppVersion string       `json:"appVersion"`
	Settings   settingsJSON `json:"settings"`
}

// encodeMetadata serializes metadata for the archive entry.
func encodeMetadata(m Metadata) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return data, nil
}

// validateMetadata checks a raw metadata entry leniently: it must parse
// as a JSON object carrying at least one of the version or backupDate
// keys. The result is advisory; restore proceeds either way and only
// logs a failed check.
func validateMetadata(raw []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("metadata is not a JSON object: %w", err)
	}
	if _, ok := obj["version"]; ok {
		return nil
	}
	if _, ok := obj["backupDate"]; ok {
		return nil
	}
	return fmt.Errorf("metadata has neither version nor backupDate")
}

// extractSettings pulls the settings sub-object out of raw metadata with
// targeted per-field extraction. Each field decodes independently: a
// missing or malformed field is simply absent from the result, never an
// error, so one bad field cannot spoil the others.
type extractedSettings struct {
	Currency       *string
	AppLock        *bool
	PaymentMethods *string
}

func extractSettings(raw []byte) extractedSettings {
	var out extractedSettings

	var envelope struct {
		Settings map[string]json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Settings == nil {
		return out
	}

	if field, ok := envelope.Settings["currency"]; ok {
		var v string
		if err := json.Unmarshal(field, &v); err == nil && v != "" {
			out.Currency = &v
		}
	}
	if field, ok := envelope.Settings["appLock"]; ok {
		var v bool
		if err := json.Unmarshal(field, &v); err == nil {
			out.AppLock = &v
		}
	}
	if field, ok := envelope.Settings["paymentMethods"]; ok {
		var v string
		if err := json.Unmarshal(field, &v); err == nil && v != "" {
			out.PaymentMethods = &v
		}
	}
	return out
}
