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

type PurchaseService interface {
	CreatePurchase(ctx context.Context, caller domain.User, in service.PurchaseInput) (domain.Purchase, error)
	UpdatePurchase(ctx context.Context, caller domain.User, id uint, in service.PurchaseInput) (domain.Purchase, error)
	DeletePurchase(ctx context.Context, caller domain.User, id uint) error
	PayPurchaseBorrow(ctx context.Context, caller domain.User, id uint, amount decimal.Decimal) (domain.Purchase, error)
}

type PurchaseLister interface {
	ListPurchases(ctx context.Context, caller domain.User, q service.ListQuery) ([]domain.Purchase, int64, error)
}

type PurchaseHandler struct {
	svc    PurchaseService
	lister PurchaseLister
	uSvc   UserService
}

func NewPurchaseHandler(svc PurchaseService, lister PurchaseLister, uSvc UserService) *PurchaseHandler {
	return &PurchaseHandler{
		svc:    svc,
		lister: lister,
		uSvc:   uSvc,
	}
}

func purchaseInputFromRequest(req request.PurchaseRequest) service.PurchaseInput {
	return service.PurchaseInput{
		ItemID:          req.ItemID,
		ItemName:        req.ItemName,
		Unit:            req.Unit,
		SupplierName:    req.SupplierName,
		SupplierContact: req.SupplierContact,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		PaymentType:     domain.PaymentType(req.PaymentType),
		BorrowAmount:    req.BorrowAmount,
		PurchaseDate:    parseRequestDate(req.PurchaseDate),
	}
}

// renderPurchaseErr maps the ledger's failure modes onto HTTP statuses.
func renderPurchaseErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrPurchaseNotFound):
		response.RenderErr(ctx, response.ErrNotFound("purchase", "ID", id))
	case errors.Is(err, service.ErrItemNotFound):
		response.RenderErr(ctx, response.ErrNotFound("item", "ID", id))
	case errors.Is(err, service.ErrFundNotFound), errors.Is(err, service.ErrInsufficientFunds):
		response.RenderErr(ctx, response.ErrPaymentRequired(err))
	case errors.Is(err, service.ErrNoShop),
		errors.Is(err, service.ErrNotBorrow),
		errors.Is(err, service.ErrInvalidPaymentAmount):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleCreatePurchase godoc
// @Summary      Record a purchase
// @Description  Non-borrow purchases deduct the total from the shop fund. Stock rises by the quantity.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request  body      request.PurchaseRequest true "request body"
// @Success      201      {object}  domain.Purchase
// @Failure      400      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /purchases [post]
// @Security     BearerAuth
func (h *PurchaseHandler) HandleCreatePurchase(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchase, err := h.svc.CreatePurchase(ctx.Request.Context(), user, purchaseInputFromRequest(req))
	if err != nil {
		renderPurchaseErr(ctx, "v1.HandleCreatePurchase -> h.svc.CreatePurchase", req.ItemID, err)
		return
	}

	ctx.JSON(http.StatusCreated, purchase)
}

// HandleGetPurchases godoc
// @Summary      List purchases
// @Description  Workers see their own records. Admins can pass shopId ("all" or a shop) to widen the scope.
// @Tags         purchases
// @Produce      json
// @Param        startDate    query     string false "start date (YYYY-MM-DD)"
// @Param        endDate      query     string false "end date (YYYY-MM-DD)"
// @Param        shopId       query     string false "shop scope for admins"
// @Param        paymentType  query     string false "paid or borrow"
// @Param        page         query     int    false "page number"
// @Param        limit        query     int    false "page size"
// @Success      200      {object}  response.ListResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /purchases [get]
// @Security     BearerAuth
func (h *PurchaseHandler) HandleGetPurchases(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	q, err := parseListQuery(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchases, totalCount, err := h.lister.ListPurchases(ctx.Request.Context(), user, q)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPurchases -> h.lister.ListPurchases -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ListResponse{
		Data:       purchases,
		TotalCount: totalCount,
	})
}

// HandleUpdatePurchase godoc
// @Summary      Update a purchase
// @Description  Stock moves by the quantity delta and the fund settles the difference between the old and new paid totals.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        purchaseID  path      int  true "purchase ID"
// @Param        request     body      request.PurchaseRequest true "request body"
// @Success      200      {object}  domain.Purchase
// @Failure      400      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /purchases/{purchaseID} [put]
// @Security     BearerAuth
func (h *PurchaseHandler) HandleUpdatePurchase(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	purchaseID, err := parseIDParam(ctx, "purchaseID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.PurchaseRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchase, err := h.svc.UpdatePurchase(ctx.Request.Context(), user, purchaseID, purchaseInputFromRequest(req))
	if err != nil {
		renderPurchaseErr(ctx, "v1.HandleUpdatePurchase -> h.svc.UpdatePurchase", purchaseID, err)
		return
	}

	ctx.JSON(http.StatusOK, purchase)
}

// HandleDeletePurchase godoc
// @Summary      Delete a purchase
// @Description  Stock drops by the quantity; non-borrow totals return to the shop fund.
// @Tags         purchases
// @Produce      json
// @Param        purchaseID  path      int  true "purchase ID"
// @Success      204      "no content"
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /purchases/{purchaseID} [delete]
// @Security     BearerAuth
func (h *PurchaseHandler) HandleDeletePurchase(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	purchaseID, err := parseIDParam(ctx, "purchaseID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeletePurchase(ctx.Request.Context(), user, purchaseID); err != nil {
		renderPurchaseErr(ctx, "v1.HandleDeletePurchase -> h.svc.DeletePurchase", purchaseID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePayPurchaseBorrow godoc
// @Summary      Pay an installment against a borrow purchase
// @Description  The installment is deducted from the shop fund. The record flips to paid when the borrow reaches zero.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        purchaseID  path      int  true "purchase ID"
// @Param        request     body      request.PayBorrowRequest true "request body"
// @Success      200      {object}  domain.Purchase
// @Failure      400      {object}  response.Err
// @Failure      402      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /purchases/{purchaseID}/pay-borrow [post]
// @Security     BearerAuth
func (h *PurchaseHandler) HandlePayPurchaseBorrow(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	purchaseID, err := parseIDParam(ctx, "purchaseID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.PayBorrowRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchase, err := h.svc.PayPurchaseBorrow(ctx.Request.Context(), user, purchaseID, req.Amount)
	if err != nil {
		renderPurchaseErr(ctx, "v1.HandlePayPurchaseBorrow -> h.svc.PayPurchaseBorrow", purchaseID, err)
		return
	}

	ctx.JSON(http.StatusOK, purchase)
}
