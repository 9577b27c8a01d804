package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/datefilter"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/export"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/middleware"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/model"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/pagination"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/internal/service"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/database"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/logger"
	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// tenantExportColumns is the fixed column set for tenant directory exports
var tenantExportColumns = []export.Column{
	{Field: "tenant_id", Label: "Tenant ID"},
	{Field: "name", Label: "Name"},
	{Field: "db_alias", Label: "Database Alias"},
	{Field: "status", Label: "Status"},
	{Field: "active", Label: "Active"},
	{Field: "is_deleted", Label: "Deleted"},
	{Field: "created_at", Label: "Created At"},
}

// TenantHandler serves the superadmin tenant directory and the
// block/unblock toggle.
type TenantHandler struct {
	toggler  *service.Toggler
	exporter *export.Exporter
}

// NewTenantHandler creates a tenant handler
func NewTenantHandler(toggler *service.Toggler, exporter *export.Exporter) *TenantHandler {
	return &TenantHandler{toggler: toggler, exporter: exporter}
}

// ToggleStatus flips a tenant between ACTIVE and BLOCKED
func (h *TenantHandler) ToggleStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("toggle")

	tenantID := c.Param("tenant_id")
	if tenantID == "" {
		log.Error("Missing tenant identifier")
		prometheus.RecordAdminError("missing_tenant_id")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "tenant identifier is required"})
	}

	actor, _ := c.Get("email").(string)
	requestID, _ := c.Get(middleware.RequestIDKey).(string)
	meta := service.AuditMeta{
		Actor:     actor,
		RequestID: requestID,
		IP:        c.RealIP(),
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	result, err := h.toggler.Toggle(c.Request().Context(), tenantID, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenantNotFound):
			log.Warn("Tenant not found", zap.String("tenant_id", tenantID))
			prometheus.RecordAdminError("tenant_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "tenant not found"})
		case errors.Is(err, service.ErrApprovalPending):
			log.Warn("Toggle refused, approval pending", zap.String("tenant_id", tenantID))
			prometheus.RecordAdminError("approval_pending")
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "tenant approval is pending"})
		case errors.Is(err, service.ErrPrincipalMissing):
			log.Error("Principal record missing", zap.String("tenant_id", tenantID))
			prometheus.RecordAdminError("principal_missing")
			return c.JSON(http.StatusFailedDependency, echo.Map{"success": false, "message": "tenant admin record could not be located"})
		default:
			log.Error("Tenant toggle failed", zap.String("tenant_id", tenantID), zap.Error(err))
			prometheus.RecordAdminError("toggle_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
		}
	}

	prometheus.ToggleCounter.WithLabelValues(result.Action).Inc()
	log.Info("Tenant status toggled",
		zap.String("tenant_id", tenantID),
		zap.String("action", result.Action))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": result.Message,
		"action":  result.Action,
	})
}

// List returns a paginated, optionally date-filtered tenant directory
func (h *TenantHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("list")

	page := c.QueryParam("page")
	size := c.QueryParam("size")
	if violations := pagination.Validate(page, size); len(violations) > 0 {
		log.Warn("Invalid pagination parameters", zap.Any("errors", violations))
		prometheus.RecordAdminError("invalid_pagination")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"message": "invalid pagination parameters",
			"errors":  violations,
		})
	}
	pageN, sizeN := pagination.Parse(page, size)

	scope, err := datefilter.Scope(
		c.QueryParam("filter_type"),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
		"created_at",
		time.Now(),
	)
	if err != nil {
		log.Warn("Invalid date filter", zap.Error(err))
		prometheus.RecordAdminError("invalid_date_filter")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	query := database.GetDB().WithContext(c.Request().Context()).Model(&model.Tenant{}).Scopes(scope)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("Failed to count tenants", zap.Error(err))
		prometheus.RecordAdminError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
	}

	var tenants []model.Tenant
	if err := query.Order("created_at DESC").Offset((pageN - 1) * sizeN).Limit(sizeN).Find(&tenants).Error; err != nil {
		log.Error("Failed to list tenants", zap.Error(err))
		prometheus.RecordAdminError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"tenants": tenants,
		"total":   total,
		"page":    pageN,
		"size":    sizeN,
	})
}

// Export writes the (optionally date-filtered) tenant directory to a
// spreadsheet or CSV file and returns its download URL.
func (h *TenantHandler) Export(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("export")

	format := c.QueryParam("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		prometheus.RecordAdminError("invalid_export_format")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "format must be xlsx or csv"})
	}

	scope, err := datefilter.Scope(
		c.QueryParam("filter_type"),
		c.QueryParam("start_date"),
		c.QueryParam("end_date"),
		"created_at",
		time.Now(),
	)
	if err != nil {
		log.Warn("Invalid date filter", zap.Error(err))
		prometheus.RecordAdminError("invalid_date_filter")
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": err.Error()})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var tenants []model.Tenant
	if err := database.GetDB().WithContext(c.Request().Context()).Model(&model.Tenant{}).
		Scopes(scope).Order("created_at DESC").Find(&tenants).Error; err != nil {
		log.Error("Failed to load tenants for export", zap.Error(err))
		prometheus.RecordAdminError("db_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
	}

	rows := make([]map[string]any, len(tenants))
	for i, t := range tenants {
		rows[i] = map[string]any{
			"tenant_id":  t.TenantID,
			"name":       t.Name,
			"db_alias":   t.DBAlias,
			"status":     t.Status,
			"active":     t.Active,
			"is_deleted": t.IsDeleted,
			"created_at": t.CreatedAt,
		}
	}

	var url string
	if format == "csv" {
		host := c.Scheme() + "://" + c.Request().Host
		url, err = h.exporter.WriteCSV(host, rows, "tenants")
	} else {
		url, err = h.exporter.WriteExcel(rows, tenantExportColumns, "tenants")
	}
	if err != nil {
		log.Error("Export failed", zap.String("format", format), zap.Error(err))
		prometheus.RecordAdminError("export_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal server error"})
	}

	if url == "" {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "no records to export", "url": ""})
	}

	prometheus.ExportCounter.WithLabelValues(format).Inc()
	log.Info("Export generated", zap.String("format", format), zap.Int("records", len(rows)))

	return c.JSON(http.StatusOK, echo.Map{"success": true, "url": url})
}
