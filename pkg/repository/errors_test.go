package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veridian-labs/regent/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	passthrough := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, errNotFound},
		{
			"wrapped no rows maps to not found",
			fmt.Errorf("query: %w", sql.ErrNoRows),
			errNotFound,
		},
		{
			"unique violation maps to duplicate",
			&pgconn.PgError{Code: "23505"},
			errDuplicate,
		},
		{
			"other pg errors pass through",
			&pgconn.PgError{Code: "23503"},
			nil,
		},
		{"unrelated errors pass through", passthrough, passthrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)

			if tt.want == nil {
				if got != tt.err {
					t.Errorf("MapError() = %v, want original error", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError() = %v, want %v", got, tt.want)
			}
		})
	}
}
