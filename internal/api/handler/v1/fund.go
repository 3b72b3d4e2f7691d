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

type FundService interface {
	TopUpFund(ctx context.Context, caller domain.User, amount decimal.Decimal, givenBy string) (domain.ShopFund, error)
	FundBalance(ctx context.Context, caller domain.User) (domain.FundBalance, error)
}

type FundHandler struct {
	svc  FundService
	uSvc UserService
}

func NewFundHandler(svc FundService, uSvc UserService) *FundHandler {
	return &FundHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleAddFund godoc
// @Summary      Add money to the caller's shop fund
// @Tags         funds
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddFundRequest true "request body"
// @Success      201      {object}  domain.ShopFund
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /funds [post]
// @Security     BearerAuth
func (h *FundHandler) HandleAddFund(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddFundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	fund, err := h.svc.TopUpFund(ctx.Request.Context(), user, req.Amount, req.GivenBy)
	if err != nil {
		if errors.Is(err, service.ErrNoShop) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleAddFund -> h.svc.TopUpFund -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, fund)
}

// HandleGetFundBalance godoc
// @Summary      Get the caller's shop fund balance and top-up history
// @Tags         funds
// @Produce      json
// @Success      200      {object}  domain.FundBalance
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /funds [get]
// @Security     BearerAuth
func (h *FundHandler) HandleGetFundBalance(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	balance, err := h.svc.FundBalance(ctx.Request.Context(), user)
	if err != nil {
		if errors.Is(err, service.ErrNoShop) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetFundBalance -> h.svc.FundBalance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, balance)
}
