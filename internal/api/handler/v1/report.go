package v1

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/response"
	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

type ReportService interface {
	DashboardStats(ctx context.Context, caller domain.User, q service.ListQuery) (domain.DashboardStats, error)
	DailyReport(ctx context.Context, caller domain.User, day time.Time, shopID string) (domain.DailyReport, error)
	ProfitLoss(ctx context.Context, caller domain.User, q service.ListQuery) (domain.ProfitLoss, error)
	ExcelReport(ctx context.Context, caller domain.User, q service.ListQuery) (*bytes.Buffer, error)
}

type ReportHandler struct {
	svc  ReportService
	uSvc UserService
}

func NewReportHandler(svc ReportService, uSvc UserService) *ReportHandler {
	return &ReportHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleDashboard godoc
// @Summary      Rollup of trades, expenses, inventory and fund for the caller's scope
// @Tags         reports
// @Produce      json
// @Param        startDate  query     string false "start date (YYYY-MM-DD)"
// @Param        endDate    query     string false "end date (YYYY-MM-DD)"
// @Param        shopId     query     string false "shop scope for admins"
// @Success      200      {object}  domain.DashboardStats
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/dashboard [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleDashboard(ctx *gin.Context) {
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

	stats, err := h.svc.DashboardStats(ctx.Request.Context(), user, q)
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.svc.DashboardStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleDailyReport godoc
// @Summary      One calendar day's totals
// @Tags         reports
// @Produce      json
// @Param        date    query     string false "day (YYYY-MM-DD), defaults to today"
// @Param        shopId  query     string false "shop scope for admins"
// @Success      200      {object}  domain.DailyReport
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/daily [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleDailyReport(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	day := time.Now().In(istZone)
	if raw := ctx.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, istZone)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date %q", raw)))
			return
		}
		day = parsed
	}

	report, err := h.svc.DailyReport(ctx.Request.Context(), user, day, ctx.Query("shopId"))
	if err != nil {
		err = fmt.Errorf("v1.HandleDailyReport -> h.svc.DailyReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleProfitLoss godoc
// @Summary      Profit estimate over a date range (admin only)
// @Tags         reports
// @Produce      json
// @Param        startDate  query     string false "start date (YYYY-MM-DD)"
// @Param        endDate    query     string false "end date (YYYY-MM-DD)"
// @Param        shopId     query     string false "shop scope"
// @Success      200      {object}  domain.ProfitLoss
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/profit-loss [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleProfitLoss(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	q, err := parseListQuery(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	report, err := h.svc.ProfitLoss(ctx.Request.Context(), user, q)
	if err != nil {
		err = fmt.Errorf("v1.HandleProfitLoss -> h.svc.ProfitLoss -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleExcelReport godoc
// @Summary      Download purchases and sales as an Excel workbook (admin only)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        startDate    query     string false "start date (YYYY-MM-DD)"
// @Param        endDate      query     string false "end date (YYYY-MM-DD)"
// @Param        shopId       query     string false "shop scope for admins"
// @Param        paymentType  query     string false "paid or borrow"
// @Success      200      {file}    binary
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reports/excel [get]
// @Security     BearerAuth
func (h *ReportHandler) HandleExcelReport(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.IsAdmin() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))
		return
	}

	q, err := parseListQuery(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	buf, err := h.svc.ExcelReport(ctx.Request.Context(), user, q)
	if err != nil {
		err = fmt.Errorf("v1.HandleExcelReport -> h.svc.ExcelReport -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("ledger-%v.xlsx", time.Now().In(istZone).Format(dateLayout))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
