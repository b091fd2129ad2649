package storage

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeBatch(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantErr     error
		wantQueries []string
	}{
		{
			name:        "valid",
			input:       `{"id":"b1","variant":"trip","queries":["Paris","Lyon"]}`,
			wantQueries: []string{"Paris", "Lyon"},
		},
		{
			name:        "blank queries dropped",
			input:       `{"id":"b1","variant":"property","queries":["  ","Mountain View, CA ",""]}`,
			wantQueries: []string{"Mountain View, CA"},
		},
		{name: "unknown variant", input: `{"variant":"spaceport","queries":["x"]}`, wantErr: ErrInvalidBatch},
		{name: "no queries", input: `{"variant":"trip","queries":[" "]}`, wantErr: ErrInvalidBatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeBatch(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeBatch error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeBatch error: %v", err)
			}
			if strings.Join(b.Queries, "|") != strings.Join(tt.wantQueries, "|") {
				t.Errorf("Queries = %q, want %q", b.Queries, tt.wantQueries)
			}
		})
	}
}

func TestDecodeBatch_GeneratesID(t *testing.T) {
	b, err := DecodeBatch(strings.NewReader(`{"variant":"trip","queries":["Paris"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.ID == "" {
		t.Error("ID not generated")
	}
}

func TestDecodeBatch_Malformed(t *testing.T) {
	if _, err := DecodeBatch(strings.NewReader("{")); err == nil || errors.Is(err, ErrInvalidBatch) {
		t.Errorf("DecodeBatch(malformed) error = %v", err)
	}
}
