package content

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type validator interface {
	Validate() error
}

// decodeList decodes each record on its own so one bad document only drops itself.
func decodeList[T validator](raw []json.RawMessage, query string, logger zerolog.Logger) []T {
	records := make([]T, 0, len(raw))
	for i, item := range raw {
		var record T
		if err := json.Unmarshal(item, &record); err != nil {
			logger.Warn().Err(err).Str("query", query).Int("index", i).Msg("dropping undecodable record")
			continue
		}
		if err := record.Validate(); err != nil {
			logger.Warn().Err(err).Str("query", query).Int("index", i).Msg("dropping invalid record")
			continue
		}
		records = append(records, record)
	}
	return records
}

// decodeOne treats an invalid singleton as absent.
func decodeOne[T validator](raw json.RawMessage, query string, logger zerolog.Logger) *T {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("treating undecodable record as absent")
		return nil
	}
	if err := record.Validate(); err != nil {
		logger.Warn().Err(err).Str("query", query).Msg("treating invalid record as absent")
		return nil
	}
	return &record
}
