package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation matches does not exist")) {
		t.Fatalf("expected unrelated error to be false")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert admin: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(fakeErr("duplicate key")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestNullString(t *testing.T) {
	if got := nullString(""); got.Valid {
		t.Fatalf("expected empty string to be null")
	}
	if got := nullString("x"); !got.Valid || got.String != "x" {
		t.Fatalf("unexpected null string: %+v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
