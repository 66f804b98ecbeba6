package expenses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/crucial707/expense-tracker/cmd/cli/config"
	"github.com/crucial707/expense-tracker/cmd/cli/output"
	"github.com/spf13/cobra"
)

// expense mirrors the API wire shape.
type expense struct {
	ID          int     `json:"_id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// ==========================
// Init Expenses
// ==========================
func InitExpenses(rootCmd *cobra.Command) {

	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage expenses",
	}

	expensesCmd.AddCommand(
		listExpensesCmd(),
		addExpenseCmd(),
		updateExpenseCmd(),
		deleteExpenseCmd(),
	)

	rootCmd.AddCommand(expensesCmd)
}

// ==========================
// LIST
// ==========================
func listExpensesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your expenses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []expense
			if err := doRequest("GET", "/expenses", nil, &list); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(list))
			for _, e := range list {
				rows = append(rows, []interface{}{e.ID, formatDate(e.Date), e.Category, fmt.Sprintf("%.2f", e.Amount), e.Description})
			}
			output.RenderTable([]string{"ID", "Date", "Category", "Amount", "Description"}, rows)
			return nil
		},
	}
}

// ==========================
// ADD
// ==========================
func addExpenseCmd() *cobra.Command {
	var amount float64
	var category, description, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"amount":      amount,
				"category":    category,
				"description": description,
				"date":        date,
			}

			var created expense
			if err := doRequest("POST", "/expenses", payload, &created); err != nil {
				return err
			}

			fmt.Printf("Added expense %d (%s %.2f on %s)\n", created.ID, created.Category, created.Amount, formatDate(created.Date))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount spent (non-negative)")
	cmd.Flags().StringVar(&category, "category", "", "Category: Food, Transport, Shopping, Bills, Entertainment, Other")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&date, "date", time.Now().Format("2006-01-02"), "Date (YYYY-MM-DD)")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateExpenseCmd() *cobra.Command {
	var id int
	var amount float64
	var category, description, date string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace an expense's fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			payload := map[string]interface{}{
				"amount":      amount,
				"category":    category,
				"description": description,
				"date":        date,
			}

			var updated expense
			if err := doRequest("PUT", fmt.Sprintf("/expenses/%d", id), payload, &updated); err != nil {
				return err
			}

			fmt.Printf("Updated expense %d\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Expense id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Amount spent (non-negative)")
	cmd.Flags().StringVar(&category, "category", "", "Category: Food, Transport, Shopping, Bills, Entertainment, Other")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteExpenseCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			var out struct {
				Message string `json:"message"`
			}
			if err := doRequest("DELETE", fmt.Sprintf("/expenses/%d", id), nil, &out); err != nil {
				return err
			}

			fmt.Println(out.Message)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Expense id")

	return cmd
}

// formatDate trims the RFC 3339 date the API returns down to YYYY-MM-DD.
func formatDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}

// doRequest sends an authenticated request and decodes the JSON reply into out.
func doRequest(method, path string, payload interface{}, out interface{}) error {
	token, err := config.ReadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, config.APIURL()+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}
	return nil
}
