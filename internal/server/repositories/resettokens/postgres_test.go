package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/travelguru/travelguru/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+reset_password_tokens`).
		WithArgs(sqlmock.AnyArg(), "alice", "deadbeef", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), "alice", "deadbeef", 5*time.Minute)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestFindByHash_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "username", "token_hash", "expires_at", "used", "created_at"}).
		AddRow("tid-1", "alice", "deadbeef", now.Add(5*time.Minute), false, now)
	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+reset_password_tokens\s+WHERE\s+token_hash`).
		WithArgs("deadbeef").
		WillReturnRows(rows)

	got, err := repo.FindByHash(context.Background(), "deadbeef")
	if err != nil {
		t.Fatalf("FindByHash error: %v", err)
	}
	if got.UserName != "alice" || got.Used {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestFindByHash_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*FROM\s+reset_password_tokens`).
		WithArgs("unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByHash(context.Background(), "unknown")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestConsume_FirstUseWins(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+reset_password_tokens\s+SET\s+used\s*=\s*TRUE\s+WHERE\s+token_hash\s*=\s*\$1\s+AND\s+NOT\s+used`).
		WithArgs("deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Consume(context.Background(), "deadbeef"); err != nil {
		t.Fatalf("Consume error: %v", err)
	}
}

func TestConsume_SecondUseRejected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+reset_password_tokens`).
		WithArgs("deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Consume(context.Background(), "deadbeef")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound for already-used token, got %v", err)
	}
}
