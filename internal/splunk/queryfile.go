// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package splunk

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of an executed search. A search
// can be saved to a file and reloaded later without re-running the job.
// Credentials and session keys are never written.
type QueryFile struct {
	Query   QueryParams      `yaml:"query"`
	Service QueryFileService `yaml:"service"`
	Results ResultSet        `yaml:"results"`
	Summary QuerySummary     `yaml:"summary"`
}

// QueryParams stores the search both as typed and as submitted.
type QueryParams struct {
	Raw        string `yaml:"raw"`
	Normalized string `yaml:"normalized"`
}

// QueryFileService stores which deployment produced the results.
type QueryFileService struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// QuerySummary stores job statistics and a timestamp.
type QuerySummary struct {
	SID         string    `yaml:"sid"`
	ResultCount int       `yaml:"result_count"`
	DurationMS  int64     `yaml:"duration_ms"`
	Timestamp   time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves an executed search and its results to a YAML file.
func WriteQueryFile(path, rawQuery string, service QueryFileService, sid string, rs ResultSet, took time.Duration) error {
	qf := QueryFile{
		Query: QueryParams{
			Raw:        rawQuery,
			Normalized: Normalize(rawQuery),
		},
		Service: service,
		Results: rs,
		Summary: QuerySummary{
			SID:         sid,
			ResultCount: len(rs.Rows()),
			DurationMS:  took.Milliseconds(),
			Timestamp:   time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
