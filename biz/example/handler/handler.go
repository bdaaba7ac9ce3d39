// Package handler provides example HTTP handlers.
package handler

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/example-api/biz/example/service"
	"github.com/ncobase/example-api/biz/example/structs"
	"github.com/ncobase/example-api/consts"
	"github.com/ncobase/example-api/helper"
	"github.com/ncobase/example-api/logging/logger"
	"github.com/ncobase/example-api/logging/observes"
	"github.com/ncobase/example-api/net/resp"
	"github.com/ncobase/example-api/validation/validator"
)

// queryKeys are the only accepted list parameters
var queryKeys = map[string]struct{}{
	"page": {}, "size": {}, "limit": {}, "status": {}, "search": {}, "from": {}, "to": {},
}

type Handler struct {
	service *service.Service
	logger  *logger.Logger
}

func New(svc *service.Service, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.StdLogger()
	}
	return &Handler{service: svc, logger: l}
}

// RegisterRoutes mounts the example resource under r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	examples := r.Group("/example")
	{
		examples.POST("", h.HandleCreate)
		examples.GET("", h.HandleList)
		examples.GET("/:id", h.HandleGet)
		examples.PUT("/:id", h.HandleUpdate)
		examples.DELETE("/:id", h.HandleDelete)
	}
}

func (h *Handler) HandleCreate(c *gin.Context) {
	var req structs.CreateExampleRequest
	errs, err := helper.ShouldBindAndValidateStruct(c, &req, helper.Lang(c))
	if err != nil {
		resp.Fail(c.Writer, helper.BindError(err))
		return
	}
	if len(errs) > 0 {
		resp.Fail(c.Writer, resp.BadRequest("Validation failed", errs))
		return
	}

	example, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "failed to create example", err)
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, example)
}

func (h *Handler) HandleList(c *gin.Context) {
	req, exc := queryRequest(c)
	if exc != nil {
		resp.Fail(c.Writer, exc)
		return
	}
	if errs := validator.ValidateStruct(req, helper.Lang(c)); len(errs) > 0 {
		resp.Fail(c.Writer, resp.BadRequest("Validation failed", errs))
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			resp.Fail(c.Writer, resp.BadRequest(err.Error()))
			return
		}
		h.fail(c, "failed to list examples", err)
		return
	}

	c.Header(consts.TotalKey, strconv.Itoa(result.Pagination.Total))
	resp.Success(c.Writer, result)
}

func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")

	example, found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "failed to get example", err)
		return
	}
	if !found {
		resp.Fail(c.Writer, resp.NotFound((&service.NotFoundError{ID: id}).Error()))
		return
	}

	resp.Success(c.Writer, example)
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	id := c.Param("id")

	// an empty body is an empty patch
	var req structs.UpdateExampleRequest
	errs, err := helper.ShouldBindAndValidateStruct(c, &req, helper.Lang(c))
	if err != nil && !helper.IsEmptyBody(err) {
		resp.Fail(c.Writer, helper.BindError(err))
		return
	}
	if len(errs) > 0 {
		resp.Fail(c.Writer, resp.BadRequest("Validation failed", errs))
		return
	}

	example, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, "failed to update example", err)
		return
	}

	resp.Success(c.Writer, example)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "failed to delete example", err)
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusNoContent)
}

// fail maps service errors to responses; anything unexpected is logged and
// reported as a 500 without leaking the cause
func (h *Handler) fail(c *gin.Context, msg string, err error) {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		resp.Fail(c.Writer, resp.NotFound(nf.Error()))
		return
	}

	ctx := c.Request.Context()
	h.logger.Error(ctx, msg, "error", err, "path", c.Request.URL.Path)
	observes.CaptureError(ctx, err)
	resp.Fail(c.Writer, resp.InternalServer(msg))
}

// queryRequest copies the raw query into a QueryRequest, leaving absent
// parameters nil. Unknown parameters are rejected.
func queryRequest(c *gin.Context) (*structs.QueryRequest, *resp.Exception) {
	values := c.Request.URL.Query()

	var unknown []string
	for key := range values {
		if _, ok := queryKeys[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		errs := make(map[string]string, len(unknown))
		for _, key := range unknown {
			errs[key] = helper.UnknownProperty(key)
		}
		return nil, resp.BadRequest(errs[unknown[0]], errs)
	}

	req := &structs.QueryRequest{}
	if v, ok := c.GetQuery("page"); ok {
		req.Page = v
	}
	if v, ok := c.GetQuery("size"); ok {
		req.Size = v
	}
	if v, ok := c.GetQuery("limit"); ok {
		req.Limit = v
	}
	req.Status = optional(c, "status")
	req.Search = optional(c, "search")
	req.From = optional(c, "from")
	req.To = optional(c, "to")
	return req, nil
}

func optional(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok {
		return &v
	}
	return nil
}
