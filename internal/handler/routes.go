package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, groupHandler *GroupHandler, participantHandler *ParticipantHandler, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, settlementHandler *SettlementHandler, balanceHandler *BalanceHandler, chargeHandler *ChargeHandler, budgetHandler *BudgetHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Group routes
	groups := api.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.PUT("/:id", groupHandler.UpdateGroup)
	groups.DELETE("/:id", groupHandler.DeleteGroup)

	// Participant routes
	groups.POST("/:id/participants", participantHandler.AddParticipant)
	groups.GET("/:id/participants", participantHandler.ListParticipants)
	api.PUT("/participants/:id", participantHandler.UpdateParticipant)
	api.DELETE("/participants/:id", participantHandler.RemoveParticipant)

	// Category routes
	groups.POST("/:id/categories", categoryHandler.CreateCategory)
	groups.GET("/:id/categories", categoryHandler.ListCategories)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	// Expense routes
	groups.POST("/:id/expenses", expenseHandler.CreateExpense)
	groups.GET("/:id/expenses", expenseHandler.ListExpenses)
	api.GET("/expenses/:id", expenseHandler.GetExpense)
	api.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	// Settlement routes
	groups.POST("/:id/settlements", settlementHandler.RecordSettlement)
	groups.GET("/:id/settlements", settlementHandler.ListSettlements)
	api.DELETE("/settlements/:id", settlementHandler.DeleteSettlement)

	// Balance routes
	groups.GET("/:id/balances", balanceHandler.GetBalances)
	groups.GET("/:id/balances/suggestions", balanceHandler.GetSuggestions)

	// Recurring charge routes
	groups.GET("/:id/charges/debts", chargeHandler.GetDebts)

	// Budget routes
	groups.GET("/:id/budgets/:period", budgetHandler.GetPeriodStatus)
	groups.PUT("/:id/budgets/:period", budgetHandler.SetBudgets)
	groups.PUT("/:id/budgets/:period/:categoryId", budgetHandler.SetBudget)
	groups.DELETE("/:id/budgets/:period/:categoryId", budgetHandler.DeleteBudget)
}
