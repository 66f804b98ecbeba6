package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/expense-tracker/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type ExpenseRepo struct {
	DB *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepo {
	return &ExpenseRepo{DB: db}
}

// ========================
// CREATE EXPENSE
// ========================

func (r *ExpenseRepo) Create(ctx context.Context, userID int, amount float64, category, description string, date models.Date) (models.Expense, error) {
	var e models.Expense
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, amount, category, description, date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, amount, category, description, date`,
		userID, amount, category, description, date,
	).Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&e.Category,
		&e.Description,
		&e.Date,
	)
	return e, err
}

// ========================
// LIST EXPENSES BY OWNER
// ========================

// ListByOwner returns every expense owned by userID, newest date first.
func (r *ExpenseRepo) ListByOwner(ctx context.Context, userID int) ([]models.Expense, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, amount, category, description, date
		 FROM expenses
		 WHERE user_id = $1
		 ORDER BY date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ========================
// UPDATE EXPENSE BY ID AND OWNER
// ========================

// UpdateByIDAndOwner replaces the mutable fields of the expense in a single
// owner-scoped statement. A missing row and a row owned by someone else both
// come back as sql.ErrNoRows, so callers cannot tell the two apart.
func (r *ExpenseRepo) UpdateByIDAndOwner(ctx context.Context, id, userID int, amount float64, category, description string, date models.Date) (models.Expense, error) {
	var e models.Expense
	err := r.DB.QueryRowContext(ctx,
		`UPDATE expenses
		 SET amount = $1, category = $2, description = $3, date = $4
		 WHERE id = $5 AND user_id = $6
		 RETURNING id, user_id, amount, category, description, date`,
		amount, category, description, date, id, userID,
	).Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&e.Category,
		&e.Description,
		&e.Date,
	)
	return e, err
}

// ========================
// DELETE EXPENSE BY ID AND OWNER
// ========================

// DeleteByIDAndOwner removes the expense only when owned by userID.
// Returns sql.ErrNoRows when nothing matched.
func (r *ExpenseRepo) DeleteByIDAndOwner(ctx context.Context, id, userID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ========================
// COUNT EXPENSES
// ========================

func (r *ExpenseRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n)
	return n, err
}
