package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderspot/connecthost-api/internal/api/handler/v1/request"
	"github.com/orderspot/connecthost-api/internal/domain"
)

type VenueService interface {
	CreateSite(ctx context.Context, site domain.Site) (domain.Site, error)
	ListSites(ctx context.Context, hostID uint) ([]domain.Site, error)
	CreateLocation(ctx context.Context, loc domain.Location) (domain.Location, error)
	ListLocations(ctx context.Context, hostID uint) ([]domain.Location, error)
	CreateTag(ctx context.Context, tag domain.Tag) (domain.Tag, error)
	ListTags(ctx context.Context, hostID uint) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, hostID, tagID uint) (int, error)
}

type VenueHandler struct {
	svc VenueService
}

func NewVenueHandler(svc VenueService) *VenueHandler {
	return &VenueHandler{
		svc: svc,
	}
}

// HandleListSites godoc
// @Summary      List the sites of a host
// @Tags         venues
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.Site
// @Router       /hosts/{hostID}/sites [get]
// @Security BearerAuth
func (h *VenueHandler) HandleListSites(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	sites, err := h.svc.ListSites(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListSites -> h.svc.ListSites", err)
		return
	}

	ctx.JSON(http.StatusOK, sites)
}

// HandleCreateSite godoc
// @Summary      Create a site
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                        true  "host ID"
// @Param        input   body      request.CreateSiteRequest  true  "site"
// @Success      201     {object}  domain.Site
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID}/sites [post]
// @Security BearerAuth
func (h *VenueHandler) HandleCreateSite(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateSiteRequest
	if !bindJSON(ctx, &req) {
		return
	}

	site, err := h.svc.CreateSite(ctx.Request.Context(), domain.Site{
		Name:   req.Name,
		HostID: hostID,
		Logo:   req.Logo,
		Color:  req.Color,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateSite -> h.svc.CreateSite", err)
		return
	}

	ctx.JSON(http.StatusCreated, site)
}

// HandleListLocations godoc
// @Summary      List the rooms and tables of a host
// @Tags         venues
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.Location
// @Router       /hosts/{hostID}/locations [get]
// @Security BearerAuth
func (h *VenueHandler) HandleListLocations(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	locations, err := h.svc.ListLocations(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListLocations -> h.svc.ListLocations", err)
		return
	}

	ctx.JSON(http.StatusOK, locations)
}

// HandleCreateLocation godoc
// @Summary      Create a room, table or zone
// @Description  A QR reference id is generated for the location.
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                            true  "host ID"
// @Param        input   body      request.CreateLocationRequest  true  "location"
// @Success      201     {object}  domain.Location
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID}/locations [post]
// @Security BearerAuth
func (h *VenueHandler) HandleCreateLocation(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateLocationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	loc, err := h.svc.CreateLocation(ctx.Request.Context(), req.ToDomain(hostID))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateLocation -> h.svc.CreateLocation", err)
		return
	}

	ctx.JSON(http.StatusCreated, loc)
}

// HandleListTags godoc
// @Summary      List the tags of a host
// @Tags         venues
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Success      200     {array}   domain.Tag
// @Router       /hosts/{hostID}/tags [get]
// @Security BearerAuth
func (h *VenueHandler) HandleListTags(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	tags, err := h.svc.ListTags(ctx.Request.Context(), hostID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListTags -> h.svc.ListTags", err)
		return
	}

	ctx.JSON(http.StatusOK, tags)
}

// HandleCreateTag godoc
// @Summary      Create a tag
// @Tags         venues
// @Accept       json
// @Produce      json
// @Param        hostID  path      int                       true  "host ID"
// @Param        input   body      request.CreateTagRequest  true  "tag"
// @Success      201     {object}  domain.Tag
// @Failure      400     {object}  response.Err
// @Router       /hosts/{hostID}/tags [post]
// @Security BearerAuth
func (h *VenueHandler) HandleCreateTag(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}

	var req request.CreateTagRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tag, err := h.svc.CreateTag(ctx.Request.Context(), domain.Tag{Name: req.Name, HostID: hostID})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateTag -> h.svc.CreateTag", err)
		return
	}

	ctx.JSON(http.StatusCreated, tag)
}

// HandleDeleteTag godoc
// @Summary      Delete a tag
// @Description  The tag is also removed from every location of the host.
// @Tags         venues
// @Produce      json
// @Param        hostID  path      int  true  "host ID"
// @Param        tagID   path      int  true  "tag ID"
// @Success      200     {object}  map[string]int
// @Failure      404     {object}  response.Err
// @Router       /hosts/{hostID}/tags/{tagID} [delete]
// @Security BearerAuth
func (h *VenueHandler) HandleDeleteTag(ctx *gin.Context) {
	hostID, ok := hostParam(ctx)
	if !ok {
		return
	}
	tagID, ok := parseID(ctx, "tagID")
	if !ok {
		return
	}

	touched, err := h.svc.DeleteTag(ctx.Request.Context(), hostID, tagID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteTag -> h.svc.DeleteTag", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"locationsUpdated": touched})
}
