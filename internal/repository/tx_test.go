package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/showgrid/theatre-api/internal/domain"
)

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure is retryable",
			err:  &pgconn.PgError{Code: pgerrcode.SerializationFailure},
			want: true,
		},
		{
			name: "deadlock is retryable",
			err:  &pgconn.PgError{Code: pgerrcode.DeadlockDetected},
			want: true,
		},
		{
			name: "wrapped serialization failure is still detected",
			err:  fmt.Errorf("query failed: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}),
			want: true,
		},
		{
			name: "unique violation is not retryable",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: false,
		},
		{
			name: "seat conflicts are terminal, never retried",
			err:  &domain.SeatConflictError{Seats: []int{1}},
			want: false,
		},
		{
			name: "plain errors are not retryable",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSerializationFailure(tt.err); got != tt.want {
				t.Errorf("isSerializationFailure(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
