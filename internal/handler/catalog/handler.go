package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/handler"
	"github.com/niramoy/clinic-api/internal/model"
	catalogService "github.com/niramoy/clinic-api/internal/service/catalog"
	"github.com/niramoy/clinic-api/internal/storage"
)

type Handler struct {
	service *catalogService.Service
	store   storage.StorageService
}

func NewHandler(service *catalogService.Service, store storage.StorageService) *Handler {
	return &Handler{service: service, store: store}
}

// RegisterRoutes mounts the catalog endpoints. Reads are public; the
// mutations require an authenticated admin.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAdmin ...gin.HandlerFunc) {
	services := r.Group("/services")
	{
		services.GET("", h.List)
		services.GET("/:id", h.Get)
		services.POST("", append(requireAdmin, h.Create)...)
		services.DELETE("/:id", append(requireAdmin, h.Delete)...)
	}
}

func (h *Handler) List(c *gin.Context) {
	services, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	service, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(service))
}

// Create accepts a multipart form: a "data" field carrying the service
// JSON (including its question schema) and optional "file" image parts.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := handler.BindMultipartData(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	urls, err := handler.UploadAll(c.Request.Context(), h.store, handler.FormFiles(c, "file"))
	if err != nil {
		handler.Error(c, err)
		return
	}
	image := ""
	if len(urls) > 0 {
		image = urls[0]
	}

	service, err := h.service.Create(c.Request.Context(), &req, image)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(service))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid service ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
