package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/request"
	"github.com/shopkhata/shopkhata-api/internal/api/handler/v1/response"
	"github.com/shopkhata/shopkhata-api/internal/domain"
	"github.com/shopkhata/shopkhata-api/internal/service"
)

type ItemService interface {
	CreateItem(ctx context.Context, caller domain.User, item domain.Item) (domain.Item, error)
	GetItem(ctx context.Context, caller domain.User, id uint) (domain.Item, error)
	ListItems(ctx context.Context, caller domain.User) ([]domain.Item, error)
	ItemSummaries(ctx context.Context, caller domain.User) ([]domain.ItemSummary, error)
	UpdateItem(ctx context.Context, caller domain.User, item domain.Item) (domain.Item, error)
}

type ItemHandler struct {
	svc  ItemService
	uSvc UserService
}

func NewItemHandler(svc ItemService, uSvc UserService) *ItemHandler {
	return &ItemHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateItem godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateItemRequest true "request body"
// @Success      201      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items [post]
// @Security     BearerAuth
func (h *ItemHandler) HandleCreateItem(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.CreateItem(ctx.Request.Context(), user, domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        req.Unit,
		MinStock:    req.MinStock,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateItem -> h.svc.CreateItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleGetItems godoc
// @Summary      List the caller's items
// @Tags         items
// @Produce      json
// @Success      200      {array}   domain.Item
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items [get]
// @Security     BearerAuth
func (h *ItemHandler) HandleGetItems(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.ListItems(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetItems -> h.svc.ListItems -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetItemNames godoc
// @Summary      List item names and stock for pickers
// @Tags         items
// @Produce      json
// @Success      200      {array}   domain.ItemSummary
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/item-name [get]
// @Security     BearerAuth
func (h *ItemHandler) HandleGetItemNames(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summaries, err := h.svc.ItemSummaries(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetItemNames -> h.svc.ItemSummaries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summaries)
}

// HandleGetItem godoc
// @Summary      Get one item with its purchase and sale history
// @Tags         items
// @Produce      json
// @Param        itemID   path      int  true "item ID"
// @Success      200      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID} [get]
// @Security     BearerAuth
func (h *ItemHandler) HandleGetItem(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, err := parseIDParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.GetItem(ctx.Request.Context(), user, itemID)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
			return
		}

		err = fmt.Errorf("v1.HandleGetItem -> h.svc.GetItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// HandleUpdateItem godoc
// @Summary      Update an item's descriptive fields
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        itemID   path      int  true "item ID"
// @Param        request  body      request.UpdateItemRequest true "request body"
// @Success      200      {object}  domain.Item
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /items/{itemID} [put]
// @Security     BearerAuth
func (h *ItemHandler) HandleUpdateItem(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	itemID, err := parseIDParam(ctx, "itemID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateItemRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	item, err := h.svc.UpdateItem(ctx.Request.Context(), user, domain.Item{
		ID:          itemID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Unit:        req.Unit,
		MinStock:    req.MinStock,
	})
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("item", "ID", itemID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateItem -> h.svc.UpdateItem -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, item)
}
