package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sales/src/finance/application/request"
	"sales/src/finance/application/usecase"
	"sales/src/finance/domain/entity"
	domainCriteria "sales/src/shared/domain/criteria"
	sqlcriteria "sales/src/shared/infrastructure/criteria"
	"sales/src/shared/infrastructure/middleware"
)

// expenseFilterFields campos expuestos para filtrar gastos por query string
var expenseFilterFields = []string{"category", "amount", "spent_at", "created_at"}

// FinanceController maneja las peticiones HTTP del módulo de finanzas
type FinanceController struct {
	setGoalUC       *usecase.SetMonthlyGoalUseCase
	recordExpenseUC *usecase.RecordExpenseUseCase
	listExpensesUC  *usecase.ListExpensesUseCase
	monthlyReportUC *usecase.MonthlyReportUseCase
	helper          *sqlcriteria.ControllerHelper
	logger          *zap.Logger
}

// NewFinanceController crea una nueva instancia del controlador
func NewFinanceController(
	setGoalUC *usecase.SetMonthlyGoalUseCase,
	recordExpenseUC *usecase.RecordExpenseUseCase,
	listExpensesUC *usecase.ListExpensesUseCase,
	monthlyReportUC *usecase.MonthlyReportUseCase,
	logger *zap.Logger,
) *FinanceController {
	return &FinanceController{
		setGoalUC:       setGoalUC,
		recordExpenseUC: recordExpenseUC,
		listExpensesUC:  listExpensesUC,
		monthlyReportUC: monthlyReportUC,
		helper:          sqlcriteria.NewControllerHelper(),
		logger:          logger,
	}
}

// RegisterRoutes registra las rutas del controlador
func (c *FinanceController) RegisterRoutes(router *gin.RouterGroup) {
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	adminOrOperator := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleOperator)

	router.POST("/goals", adminOnly, c.SetMonthlyGoal)
	router.POST("/expenses", adminOnly, c.RecordExpense)
	router.GET("/expenses", adminOrOperator, c.ListExpenses)
	router.GET("/reports/monthly", adminOrOperator, c.MonthlyReport)
}

// SetMonthlyGoal fija la meta del mes
func (c *FinanceController) SetMonthlyGoal(ctx *gin.Context) {
	var req request.SetMonthlyGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	goal, err := c.setGoalUC.Execute(ctx.Request.Context(), &req)
	if err != nil {
		c.respondError(ctx, "Error setting monthly goal", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"goal_id": goal.ID,
		"month":   goal.Month,
		"year":    goal.Year,
		"target":  goal.Target,
	})
}

// RecordExpense registra un gasto
func (c *FinanceController) RecordExpense(ctx *gin.Context) {
	var req request.RecordExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	expense, err := c.recordExpenseUC.Execute(ctx.Request.Context(), &req)
	if err != nil {
		c.respondError(ctx, "Error recording expense", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"expense_id": expense.ID,
		"amount":     expense.Amount,
		"spent_at":   expense.SpentAt,
	})
}

// ListExpenses lista gastos con filtros de query string
func (c *FinanceController) ListExpenses(ctx *gin.Context) {
	builder := c.helper.BuildCriteriaFromQuery(ctx)
	if category := ctx.Query("category"); category != "" {
		builder.WithFilter("category", domainCriteria.OpEqual, category)
	}

	crit := c.helper.ValidateAndSanitizeCriteria(builder.Build(), expenseFilterFields)
	if crit.Order.IsEmpty() {
		crit.Order = domainCriteria.NewOrder("spent_at", domainCriteria.DESC)
	}

	resp, err := c.listExpensesUC.Execute(ctx.Request.Context(), crit)
	if err != nil {
		c.respondError(ctx, "Error listing expenses", err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// MonthlyReport genera el reporte del mes contra la meta
func (c *FinanceController) MonthlyReport(ctx *gin.Context) {
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "month query param is required"})
		return
	}
	year, err := strconv.Atoi(ctx.Query("year"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "year query param is required"})
		return
	}

	report, err := c.monthlyReportUC.Execute(ctx.Request.Context(), month, year)
	if err != nil {
		c.respondError(ctx, "Error building monthly report", err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// respondError mapea errores de dominio a códigos HTTP
func (c *FinanceController) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrInvalidMonth),
		errors.Is(err, entity.ErrInvalidYear),
		errors.Is(err, entity.ErrInvalidGoalTarget),
		errors.Is(err, entity.ErrExpenseDescriptionRequired),
		errors.Is(err, entity.ErrInvalidExpenseAmount):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   msg,
			"details": err.Error(),
		})
	}
}
