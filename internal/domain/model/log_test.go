package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_With(t *testing.T) {
	tests := []struct {
		name  string
		entry *LogEntry
		calls [][2]any
		want  map[string]any
	}{
		{
			name:  "initializes nil fields",
			entry: &LogEntry{},
			calls: [][2]any{{"reference", "QT-1"}},
			want:  map[string]any{"reference": "QT-1"},
		},
		{
			name:  "keeps existing fields",
			entry: &LogEntry{Fields: map[string]any{"version": 2}},
			calls: [][2]any{{"checksum", "abc"}},
			want:  map[string]any{"version": 2, "checksum": "abc"},
		},
		{
			name:  "last write wins",
			entry: &LogEntry{},
			calls: [][2]any{{"total", "10.00"}, {"total", "12.00"}},
			want:  map[string]any{"total": "12.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.entry
			for _, c := range tt.calls {
				assert.Same(t, e, e.With(c[0].(string), c[1]))
			}
			assert.Equal(t, tt.want, e.Fields)
		})
	}
}
