package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/domain"
)

type CatalogService interface {
	CreateCategory(ctx context.Context, c domain.ServiceCategory) (domain.ServiceCategory, error)
	ListCategories(ctx context.Context, hostID uint) ([]domain.ServiceCategory, error)
	CreateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	GetService(ctx context.Context, id uint) (domain.Service, error)
	ListServices(ctx context.Context, hostID uint) ([]domain.Service, error)
	SaveForm(ctx context.Context, serviceID uint, form domain.CustomForm) (domain.CustomForm, error)
	GetForm(ctx context.Context, serviceID uint) (domain.CustomForm, error)
	CreateMenu(ctx context.Context, menu domain.MenuCard) (domain.MenuCard, error)
	ListMenus(ctx context.Context, hostID uint) ([]domain.MenuCard, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleListCategories godoc
// @Summary      List service categories
// @Tags         catalog
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.ServiceCategory
// @Router       /hosts/{hostID}/service-categories [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListCategories(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	cats, err := h.svc.ListCategories(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListCategories -> h.svc.ListCategories", err)
		return
	}

	ctx.JSON(http.StatusOK, cats)
}

// HandleCreateCategory godoc
// @Summary      Create a service category
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                            true  "host ID"
// @Param        input   body      request.CreateCategoryRequest  true  "category"
// @Success      201     {object}  domain.ServiceCategory
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/service-categories [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateCategory(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cat, err := h.svc.CreateCategory(ctx.Request.Context(), domain.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
		HostID:      hostID,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateCategory -> h.svc.CreateCategory", err)
		return
	}

	ctx.JSON(http.StatusCreated, cat)
}

// HandleListServices godoc
// @Summary      List services
// @Tags         catalog
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.Service
// @Router       /hosts/{hostID}/services [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListServices(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	services, err := h.svc.ListServices(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListServices -> h.svc.ListServices", err)
		return
	}

	ctx.JSON(http.StatusOK, services)
}

// HandleCreateService godoc
// @Summary      Create a service
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                           true  "host ID"
// @Param        input   body      request.CreateServiceRequest  true  "service"
// @Success      201     {object}  domain.Service
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/services [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateService(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateServiceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	svc, err := h.svc.CreateService(ctx.Request.Context(), req.ToDomain(hostID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateService -> h.svc.CreateService", err)
		return
	}

	ctx.JSON(http.StatusCreated, svc)
}

// serviceForCaller loads :serviceID and checks the caller manages its host.
func (h *CatalogHandler) serviceForCaller(ctx *gin.Context) (domain.Service, bool) {
	serviceID, ok := parseID(ctx, "serviceID")
	if !ok {
		return domain.Service{}, false
	}

	svc, err := h.svc.GetService(ctx.Request.Context(), serviceID)
	if err != nil {
		renderServiceErr(ctx, "v1.serviceForCaller -> h.svc.GetService", err)
		return domain.Service{}, false
	}

	return svc, authorizeHost(ctx, svc.HostID)
}

// HandleGetForm godoc
// @Summary      Get the custom form of a service
// @Tags         catalog
// @Produce      json
// @Param        serviceID  path      int  true  "service ID"
// @Success      200        {object}  domain.CustomForm
// @Failure      404        {object}  response.Err
// @Router       /services/{serviceID}/form [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetForm(ctx *gin.Context) {
	svc, ok := h.serviceForCaller(ctx)
	if !ok {
		return
	}

	form, err := h.svc.GetForm(ctx.Request.Context(), svc.ID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetForm -> h.svc.GetForm", err)
		return
	}

	ctx.JSON(http.StatusOK, form)
}

// HandleSaveForm godoc
// @Summary      Create or replace the custom form of a service
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        serviceID  path      int                      true  "service ID"
// @Param        input      body      request.SaveFormRequest  true  "form"
// @Success      200        {object}  domain.CustomForm
// @Failure      400        {object}  response.Err
// @Router       /services/{serviceID}/form [put]
// @Security BearerAuth
func (h *CatalogHandler) HandleSaveForm(ctx *gin.Context) {
	svc, ok := h.serviceForCaller(ctx)
	if !ok {
		return
	}

	var req request.SaveFormRequest
	if !bindJSON(ctx, &req) {
		return
	}

	form, err := h.svc.SaveForm(ctx.Request.Context(), svc.ID, domain.CustomForm{Name: req.Name, Fields: req.Fields})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSaveForm -> h.svc.SaveForm", err)
		return
	}

	ctx.JSON(http.StatusOK, form)
}

// HandleListMenus godoc
// @Summary      List menus
// @Tags         catalog
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.MenuCard
// @Router       /hosts/{hostID}/menus [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListMenus(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	menus, err := h.svc.ListMenus(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListMenus -> h.svc.ListMenus", err)
		return
	}

	ctx.JSON(http.StatusOK, menus)
}

// HandleCreateMenu godoc
// @Summary      Create a menu with its categories and items
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                        true  "host ID"
// @Param        input   body      request.CreateMenuRequest  true  "menu"
// @Success      201     {object}  domain.MenuCard
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/menus [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateMenu(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateMenuRequest
	if !bindJSON(ctx, &req) {
		return
	}

	menu, err := h.svc.CreateMenu(ctx.Request.Context(), domain.MenuCard{
		HostID:     hostID,
		Name:       req.Name,
		Categories: req.Categories,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateMenu -> h.svc.CreateMenu", err)
		return
	}

	ctx.JSON(http.StatusCreated, menu)
}
