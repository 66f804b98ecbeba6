package main

import (
	"fmt"
	"os"

	"github.com/crucial707/expense-tracker/cmd/cli/auth"
	"github.com/crucial707/expense-tracker/cmd/cli/expenses"
	"github.com/crucial707/expense-tracker/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	expenses.InitExpenses(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
