package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/response"
	"github.com/shopkhata/shopkhata-api/internal/api/middleware"
	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

const dateLayout = "2006-01-02"

// Shop days run on Indian Standard Time.
var istZone = time.FixedZone("IST", 5*3600+30*60)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	rawID, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.User{}, response.ErrWrongCredentials(errors.New("missing user ID in context"))
	}

	userID, ok := rawID.(uint)
	if !ok {
		return domain.User{}, response.ErrWrongCredentials(errors.New("malformed user ID in context"))
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrWrongCredentials(err)
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}

// parseListQuery reads the shared listing query parameters. Dates are
// calendar days in IST; the end date is inclusive through end of day.
func parseListQuery(ctx *gin.Context) (service.ListQuery, error) {
	q := service.ListQuery{
		ShopID:      ctx.Query("shopId"),
		PaymentType: ctx.Query("paymentType"),
	}

	if raw := ctx.Query("startDate"); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, istZone)
		if err != nil {
			return service.ListQuery{}, fmt.Errorf("invalid startDate %q", raw)
		}
		q.From = &from
	}

	if raw := ctx.Query("endDate"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, istZone)
		if err != nil {
			return service.ListQuery{}, fmt.Errorf("invalid endDate %q", raw)
		}
		to := parsed.Add(24*time.Hour - time.Nanosecond)
		q.To = &to
	}

	if raw := ctx.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return service.ListQuery{}, fmt.Errorf("invalid page %q", raw)
		}
		q.Page = page
	}

	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return service.ListQuery{}, fmt.Errorf("invalid limit %q", raw)
		}
		q.Limit = limit
	}

	return q, nil
}

func parseRequestDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.ParseInLocation(dateLayout, raw, istZone)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
