package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/expense-tracker/internal/models"
)

func TestExpenseRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO expenses \(user_id, amount, category, description, date\)`).
		WithArgs(7, 49.5, "Food", "lunch", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "description", "date"}).
			AddRow(1, 7, 49.5, "Food", "lunch", date))

	repo := NewExpenseRepo(db)
	e, err := repo.Create(context.Background(), 7, 49.5, "Food", "lunch", models.NewDate(2024, time.March, 1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.ID != 1 || e.UserID != 7 || e.Amount != 49.5 || e.Category != "Food" || e.Description != "lunch" {
		t.Errorf("unexpected expense: %+v", e)
	}
	if !e.Date.Time.Equal(date) {
		t.Errorf("unexpected date: %v", e.Date.Time)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "description", "date"}).
		AddRow(3, 7, 20.0, "Food", "", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)).
		AddRow(2, 7, 15.0, "Bills", "", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)).
		AddRow(1, 7, 10.0, "Other", "", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	mock.ExpectQuery(`SELECT id, user_id, amount, category, description, date\s+FROM expenses\s+WHERE user_id = \$1\s+ORDER BY date DESC, id DESC`).
		WithArgs(7).
		WillReturnRows(rows)

	repo := NewExpenseRepo(db)
	list, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date.Time) {
			t.Errorf("expenses not ordered newest first: %v before %v", list[i-1].Date, list[i].Date)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_ListByOwner_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, amount, category, description, date`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "description", "date"}))

	repo := NewExpenseRepo(db)
	list, err := repo.ListByOwner(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_UpdateByIDAndOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	date := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE expenses\s+SET amount = \$1, category = \$2, description = \$3, date = \$4\s+WHERE id = \$5 AND user_id = \$6`).
		WithArgs(60.0, "Shopping", "shoes", sqlmock.AnyArg(), 3, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "category", "description", "date"}).
			AddRow(3, 7, 60.0, "Shopping", "shoes", date))

	repo := NewExpenseRepo(db)
	e, err := repo.UpdateByIDAndOwner(context.Background(), 3, 7, 60.0, "Shopping", "shoes", models.NewDate(2024, time.March, 2))
	if err != nil {
		t.Fatalf("UpdateByIDAndOwner: %v", err)
	}
	if e.Amount != 60.0 || e.Category != "Shopping" {
		t.Errorf("unexpected expense: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// A row owned by someone else matches zero rows, exactly like a missing id.
func TestExpenseRepo_UpdateByIDAndOwner_NotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE expenses`).
		WithArgs(60.0, "Shopping", "", sqlmock.AnyArg(), 3, 99).
		WillReturnError(sql.ErrNoRows)

	repo := NewExpenseRepo(db)
	_, err = repo.UpdateByIDAndOwner(context.Background(), 3, 99, 60.0, "Shopping", "", models.NewDate(2024, time.March, 2))
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_DeleteByIDAndOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewExpenseRepo(db)
	if err := repo.DeleteByIDAndOwner(context.Background(), 3, 7); err != nil {
		t.Fatalf("DeleteByIDAndOwner: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_DeleteByIDAndOwner_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM expenses WHERE id = \$1 AND user_id = \$2`).
		WithArgs(999, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewExpenseRepo(db)
	err = repo.DeleteByIDAndOwner(context.Background(), 999, 7)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestExpenseRepo_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM expenses`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	repo := NewExpenseRepo(db)
	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 12 {
		t.Errorf("count: got %d, want 12", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
