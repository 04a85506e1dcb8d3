package storage

import (
	"encoding/json"
	"errors"

	"synaptogen/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRunConfig(cfg model.RunConfig) ([]byte, error) {
	return json.Marshal(cfg)
}

func DecodeRunConfig(data []byte) (model.RunConfig, error) {
	var cfg model.RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.RunConfig{}, err
	}
	if err := checkVersion(cfg.VersionedRecord); err != nil {
		return model.RunConfig{}, err
	}
	return cfg, nil
}

func EncodeRunSummary(summary model.RunSummary) ([]byte, error) {
	return json.Marshal(summary)
}

func DecodeRunSummary(data []byte) (model.RunSummary, error) {
	var summary model.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.RunSummary{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.RunSummary{}, err
	}
	return summary, nil
}

func EncodeConnectivity(records []model.ConnectivityRecord) ([]byte, error) {
	return json.Marshal(records)
}

func DecodeConnectivity(data []byte) ([]model.ConnectivityRecord, error) {
	var records []model.ConnectivityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func checkVersion(record model.VersionedRecord) error {
	if record.SchemaVersion != CurrentSchemaVersion || record.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
