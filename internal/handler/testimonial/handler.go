package testimonial

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/handler"
	"github.com/niramoy/clinic-api/internal/model"
	testimonialService "github.com/niramoy/clinic-api/internal/service/testimonial"
	"github.com/niramoy/clinic-api/internal/storage"
)

type Handler struct {
	service *testimonialService.Service
	store   storage.StorageService
}

func NewHandler(service *testimonialService.Service, store storage.StorageService) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, requireAdmin ...gin.HandlerFunc) {
	testimonials := r.Group("/testimonial")
	{
		testimonials.GET("", h.List)
		testimonials.POST("", append(requireAdmin, h.Create)...)
		testimonials.DELETE("/:id", append(requireAdmin, h.Delete)...)
	}
}

func (h *Handler) List(c *gin.Context) {
	testimonials, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(testimonials))
}

// Create accepts a multipart form: a "data" JSON field plus one
// optional "file" image part.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTestimonialRequest
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

	testimonial, err := h.service.Create(c.Request.Context(), &req, image)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(testimonial))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid testimonial ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
