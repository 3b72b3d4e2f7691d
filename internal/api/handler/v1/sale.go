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

type SaleService interface {
	CreateSale(ctx context.Context, caller domain.User, in service.SaleInput) (domain.Sale, error)
	UpdateSale(ctx context.Context, caller domain.User, id uint, in service.SaleInput) (domain.Sale, error)
	DeleteSale(ctx context.Context, caller domain.User, id uint) error
	PaySaleBorrow(ctx context.Context, caller domain.User, id uint, amount decimal.Decimal) (domain.Sale, error)
}

type SaleLister interface {
	ListSales(ctx context.Context, caller domain.User, q service.ListQuery) ([]domain.Sale, int64, error)
}

type SaleHandler struct {
	svc    SaleService
	lister SaleLister
	uSvc   UserService
}

func NewSaleHandler(svc SaleService, lister SaleLister, uSvc UserService) *SaleHandler {
	return &SaleHandler{
		svc:    svc,
		lister: lister,
		uSvc:   uSvc,
	}
}

func saleInputFromRequest(req request.SaleRequest) service.SaleInput {
	return service.SaleInput{
		ItemID:          req.ItemID,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		PaymentType:     domain.PaymentType(req.PaymentType),
		BorrowAmount:    req.BorrowAmount,
		SaleDate:        parseRequestDate(req.SaleDate),
	}
}

func renderSaleErr(ctx *gin.Context, op string, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrSaleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("sale", "ID", id))
	case errors.Is(err, service.ErrItemNotFound):
		response.RenderErr(ctx, response.ErrNotFound("item", "ID", id))
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrNotBorrow),
		errors.Is(err, service.ErrInvalidPaymentAmount):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleCreateSale godoc
// @Summary      Record a sale
// @Description  Rejected when the quantity exceeds the item's stock. Stock drops by the quantity.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request  body      request.SaleRequest true "request body"
// @Success      201      {object}  domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales [post]
// @Security     BearerAuth
func (h *SaleHandler) HandleCreateSale(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.CreateSale(ctx.Request.Context(), user, saleInputFromRequest(req))
	if err != nil {
		renderSaleErr(ctx, "v1.HandleCreateSale -> h.svc.CreateSale", req.ItemID, err)
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}

// HandleGetSales godoc
// @Summary      List sales
// @Description  Workers see their own records. Admins can pass shopId ("all" or a shop) to widen the scope.
// @Tags         sales
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
// @Router       /sales [get]
// @Security     BearerAuth
func (h *SaleHandler) HandleGetSales(ctx *gin.Context) {
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

	sales, totalCount, err := h.lister.ListSales(ctx.Request.Context(), user, q)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetSales -> h.lister.ListSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ListResponse{
		Data:       sales,
		TotalCount: totalCount,
	})
}

// HandleUpdateSale godoc
// @Summary      Update a sale
// @Description  Stock moves by the quantity delta; the new quantity must be coverable once the old one is handed back.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        saleID   path      int  true "sale ID"
// @Param        request  body      request.SaleRequest true "request body"
// @Success      200      {object}  domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales/{saleID} [put]
// @Security     BearerAuth
func (h *SaleHandler) HandleUpdateSale(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	saleID, err := parseIDParam(ctx, "saleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SaleRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.UpdateSale(ctx.Request.Context(), user, saleID, saleInputFromRequest(req))
	if err != nil {
		renderSaleErr(ctx, "v1.HandleUpdateSale -> h.svc.UpdateSale", saleID, err)
		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// HandleDeleteSale godoc
// @Summary      Delete a sale
// @Description  The sold quantity returns to stock.
// @Tags         sales
// @Produce      json
// @Param        saleID   path      int  true "sale ID"
// @Success      204      "no content"
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales/{saleID} [delete]
// @Security     BearerAuth
func (h *SaleHandler) HandleDeleteSale(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	saleID, err := parseIDParam(ctx, "saleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteSale(ctx.Request.Context(), user, saleID); err != nil {
		renderSaleErr(ctx, "v1.HandleDeleteSale -> h.svc.DeleteSale", saleID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePaySaleBorrow godoc
// @Summary      Record an installment received against a borrow sale
// @Description  Customer money stays outside fund accounting; only the record's outstanding borrow changes.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        saleID   path      int  true "sale ID"
// @Param        request  body      request.PayBorrowRequest true "request body"
// @Success      200      {object}  domain.Sale
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sales/{saleID}/pay-borrow [post]
// @Security     BearerAuth
func (h *SaleHandler) HandlePaySaleBorrow(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	saleID, err := parseIDParam(ctx, "saleID")
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

	sale, err := h.svc.PaySaleBorrow(ctx.Request.Context(), user, saleID, req.Amount)
	if err != nil {
		renderSaleErr(ctx, "v1.HandlePaySaleBorrow -> h.svc.PaySaleBorrow", saleID, err)
		return
	}

	ctx.JSON(http.StatusOK, sale)
}
