package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/handler"
	"github.com/niramoy/clinic-api/internal/model"
	appointmentService "github.com/niramoy/clinic-api/internal/service/appointment"
	"github.com/niramoy/clinic-api/internal/storage"
)

type Handler struct {
	service *appointmentService.Service
	store   storage.StorageService
}

func NewHandler(service *appointmentService.Service, store storage.StorageService) *Handler {
	return &Handler{service: service, store: store}
}

// RegisterRoutes mounts the appointment endpoints. Creation is public
// (the intake flow has no login); everything else is for the dashboard.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authenticated ...gin.HandlerFunc) {
	appointments := r.Group("/appointment")
	{
		appointments.POST("/create-appointment", h.Create)
		appointments.GET("", append(authenticated, h.List)...)
		appointments.GET("/:id", append(authenticated, h.Get)...)
		appointments.PATCH("/:id", append(authenticated, h.UpdateStatus)...)
		appointments.DELETE("/:id", append(authenticated, h.Delete)...)
	}
}

// Create accepts the intake submission: a multipart form with a "data"
// JSON field and zero or more "files" attachments.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := handler.BindMultipartData(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	urls, err := handler.UploadAll(c.Request.Context(), h.store, handler.FormFiles(c, "files"))
	if err != nil {
		handler.Error(c, err)
		return
	}

	appointment, err := h.service.CreateFromIntake(c.Request.Context(), &req, urls)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) List(c *gin.Context) {
	appointments, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	appointment, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appointment, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointment))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
