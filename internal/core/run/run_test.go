package run

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRecord() *Record {
	return &Record{
		ID:        "run-1",
		DatasetID: "iris",
		Eps:       0.3,
		MinPts:    3,
		Points:    150,
		Clusters:  2,
		Noise:     17,
		Timestamp: time.Now(),
		Version:   "1",
	}
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Record)
		wantErr error
	}{
		{name: "valid record", mutate: func(r *Record) {}},
		{name: "missing run id", mutate: func(r *Record) { r.ID = "" }, wantErr: ErrInvalidRunID},
		{name: "missing dataset id", mutate: func(r *Record) { r.DatasetID = "" }, wantErr: ErrInvalidDatasetID},
		{name: "negative points", mutate: func(r *Record) { r.Points = -1 }, wantErr: ErrNegativeCount},
		{name: "negative clusters", mutate: func(r *Record) { r.Clusters = -1 }, wantErr: ErrNegativeCount},
		{name: "negative noise", mutate: func(r *Record) { r.Noise = -1 }, wantErr: ErrNegativeCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)
			err := record.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name    string
		filter  Filter
		wantErr error
	}{
		{name: "empty filter", filter: Filter{}},
		{name: "valid window", filter: Filter{Since: &earlier, Before: &now}},
		{name: "negative limit", filter: Filter{Limit: -1}, wantErr: ErrInvalidLimit},
		{name: "negative offset", filter: Filter{Offset: -5}, wantErr: ErrInvalidOffset},
		{name: "inverted window", filter: Filter{Since: &now, Before: &earlier}, wantErr: ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
