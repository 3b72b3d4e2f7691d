package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/request"
	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/response"
	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

type ExpenseService interface {
	AddWorkerExpense(ctx context.Context, caller domain.User, title string, amount decimal.Decimal) (domain.WorkerExpense, decimal.Decimal, error)
}

type ExpenseLister interface {
	ListExpenses(ctx context.Context, caller domain.User) ([]domain.WorkerExpense, error)
}

type ExpenseHandler struct {
	svc    ExpenseService
	lister ExpenseLister
	uSvc   UserService
}

func NewExpenseHandler(svc ExpenseService, lister ExpenseLister, uSvc UserService) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		lister: lister,
		uSvc:   uSvc,
	}
}

// HandleAddExpense godoc
// @Summary      Record a worker expense
// @Description  The amount is deducted from the shop fund; the response carries the fund remaining after the deduction.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddExpenseRequest true "request body"
// @Success      201      {object}  response.ExpenseResponse
// @Failure      400      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /expenses [post]
// @Security     BearerAuth
func (h *ExpenseHandler) HandleAddExpense(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	expense, remaining, err := h.svc.AddWorkerExpense(ctx.Request.Context(), user, req.Title, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFundNotFound), errors.Is(err, service.ErrInsufficientFunds):
			response.RenderErr(ctx, response.ErrPaymentRequired(err))
		case errors.Is(err, service.ErrNoShop):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleAddExpense -> h.svc.AddWorkerExpense -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.ExpenseResponse{
		Expense:       expense,
		FundRemaining: remaining,
	})
}

// HandleGetExpenses godoc
// @Summary      List the caller's expenses
// @Tags         expenses
// @Produce      json
// @Success      200      {array}   domain.WorkerExpense
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /expenses [get]
// @Security     BearerAuth
func (h *ExpenseHandler) HandleGetExpenses(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	expenses, err := h.lister.ListExpenses(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetExpenses -> h.lister.ListExpenses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, expenses)
}
