package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/crucial707/expense-tracker/internal/middleware"
	"github.com/crucial707/expense-tracker/internal/models"
	"github.com/crucial707/expense-tracker/internal/repo"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ExpenseHandler struct {
	Repo *repo.ExpenseRepo
}

var validate = newValidator()

// newValidator registers the category rule so the accepted set stays in one
// place: models.Categories.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("expense_category", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.Categories, fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// expenseInput is the request body for create and update. Amount is a pointer
// so a zero amount still counts as present; the date is checked by hand
// because "required" cannot see inside the custom type.
type expenseInput struct {
	Amount      *float64    `json:"amount" validate:"required,gte=0"`
	Category    string      `json:"category" validate:"required,expense_category"`
	Description string      `json:"description" validate:"max=1000"`
	Date        models.Date `json:"date" validate:"-"`
}

// decodeExpenseInput decodes and validates the body, writing the error
// response itself. The bool reports whether the caller should continue.
func decodeExpenseInput(w http.ResponseWriter, r *http.Request) (expenseInput, bool) {
	var input expenseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return input, false
	}

	fields := make(map[string]string)
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Amount":
					fields["amount"] = "must be a non-negative number"
				case "Category":
					fields["category"] = "must be one of " + strings.Join(models.Categories, ", ")
				case "Description":
					fields["description"] = "too long"
				}
			}
		} else {
			JSONError(w, "validation failed", http.StatusBadRequest)
			return input, false
		}
	}
	if input.Date.IsZero() {
		fields["date"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return input, false
	}

	return input, true
}

//
// ==========================
// List Expenses
// ==========================
//

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid or missing token", http.StatusUnauthorized)
		return
	}

	expenses, err := h.Repo.ListByOwner(r.Context(), userID)
	if err != nil {
		slog.Error("list expenses", "err", err)
		JSONError(w, "Failed to fetch expenses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

//
// ==========================
// Create Expense
// ==========================
//

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid or missing token", http.StatusUnauthorized)
		return
	}

	input, ok := decodeExpenseInput(w, r)
	if !ok {
		return
	}

	expense, err := h.Repo.Create(r.Context(), userID, *input.Amount, input.Category, input.Description, input.Date)
	if err != nil {
		slog.Error("create expense", "err", err)
		JSONError(w, "Failed to add expense", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(expense)
}

//
// ==========================
// Update Expense
// ==========================
//

// UpdateExpense replaces the mutable fields of an expense the caller owns.
// The owner-scoped UPDATE means a foreign expense id looks exactly like a
// missing one: both are a 404.
func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid or missing token", http.StatusUnauthorized)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONError(w, "Expense not found", http.StatusNotFound)
		return
	}

	input, ok := decodeExpenseInput(w, r)
	if !ok {
		return
	}

	expense, err := h.Repo.UpdateByIDAndOwner(r.Context(), id, userID, *input.Amount, input.Category, input.Description, input.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "Expense not found", http.StatusNotFound)
			return
		}
		slog.Error("update expense", "err", err)
		JSONError(w, "Failed to update expense", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

//
// ==========================
// Delete Expense
// ==========================
//

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid or missing token", http.StatusUnauthorized)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		JSONError(w, "Expense not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.DeleteByIDAndOwner(r.Context(), id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			JSONError(w, "Expense not found", http.StatusNotFound)
			return
		}
		slog.Error("delete expense", "err", err)
		JSONError(w, "Failed to delete expense", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Expense deleted"})
}
