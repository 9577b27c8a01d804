package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/middleware"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/service"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/logger"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ContactHandler serves the tenant's contact info record
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler creates a contact handler
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Get returns the tenant's current contact record
func (h *ContactHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordContactOperation("read")

	tenantID, _ := c.Get("tenant_id").(string)

	defer prometheus.TrackDBOperation("query")(time.Now())

	info, err := h.contacts.Get(c.Request().Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotConfigured):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "contact info not configured"})
		case errors.Is(err, service.ErrTenantNotFound):
			log.Warn("Tenant not found for contact read", zap.String("tenant_id", tenantID))
			prometheus.RecordAdminError("tenant_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "tenant not found"})
		default:
			log.Error("Failed to read contact info", zap.String("tenant_id", tenantID), zap.Error(err))
			prometheus.RecordAdminError("db_error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "contact_info": info})
}

// Upsert creates the contact record on first write and partially updates
// it afterwards.
func (h *ContactHandler) Upsert(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, _ := c.Get("tenant_id").(string)

	var req service.ContactInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse contact info request", zap.Error(err))
		prometheus.RecordAdminError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request"})
	}

	if req.Email == nil && req.Phone == nil && req.Address == nil && req.City == nil && req.Country == nil {
		prometheus.RecordAdminError("empty_contact_update")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "at least one contact field is required"})
	}

	actor, _ := c.Get("email").(string)
	requestID, _ := c.Get(middleware.RequestIDKey).(string)
	meta := service.AuditMeta{
		Actor:     actor,
		RequestID: requestID,
		IP:        c.RealIP(),
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	info, created, err := h.contacts.Upsert(c.Request().Context(), tenantID, req, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotFound):
			log.Warn("Tenant not found for contact write", zap.String("tenant_id", tenantID))
			prometheus.RecordAdminError("tenant_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "tenant not found"})
		default:
			log.Error("Failed to write contact info", zap.String("tenant_id", tenantID), zap.Error(err))
			prometheus.RecordAdminError("db_error")
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
		}
	}

	status := http.StatusOK
	message := "Contact info updated successfully"
	operation := "update"
	if created {
		status = http.StatusCreated
		message = "Contact info created successfully"
		operation = "create"
	}
	prometheus.RecordContactOperation(operation)

	log.Info("Contact info saved",
		zap.String("tenant_id", tenantID),
		zap.Bool("created", created))

	return c.JSON(status, echo.Map{
		"success":      true,
		"message":      message,
		"contact_info": info,
	})
}
