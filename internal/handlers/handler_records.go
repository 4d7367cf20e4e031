package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
)

// recordHandler handles debtor/creditor record requests, including payment
// reminders and PDF receipts.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

// newRecordHandler creates a new recordHandler.
func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs}
}

// registerRecordRoutes sets up the record routes. Traders must have
// completed setup before touching business data.
func registerRecordRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newRecordHandler(services.Record)

	records := rg.Group("/records", middleware.RequireRoles(domain.RoleTrader), middleware.RequireSetupComplete())
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
		records.GET("/:recordID", h.getRecord)
		records.PATCH("/:recordID", h.updateRecord)
		records.DELETE("/:recordID", h.deleteRecord)
		records.POST("/:recordID/reminders", h.sendReminder)
		records.GET("/:recordID/reminders", h.listReminders)
		records.GET("/:recordID/receipt", h.downloadReceipt)
	}
}

// createRecord godoc
// @Summary Create a debtor or creditor record
// @Description Costs 1 coin, debited atomically with the insert.
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.CreateRecordRequest true "Record details"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Security BearerAuth
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create record")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// listRecords godoc
// @Summary List debtor/creditor records
// @Description Returns the caller's records. Admins see all users.
// @Tags records
// @Produce json
// @Param type query string false "Filter by type" Enums(debtor, creditor)
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), actor, domain.RecordType(params.Type), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecordsResponse(records))
}

// getRecord godoc
// @Summary Get a record by ID
// @Tags records
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.recordService.GetRecord(c.Request.Context(), actor, c.Param("recordID"))
	if err != nil {
		respondError(c, err, "Failed to fetch record")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// updateRecord godoc
// @Summary Update a record
// @Tags records
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param update body dto.UpdateRecordRequest true "Fields to update"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [patch]
func (h *recordHandler) updateRecord(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), actor, c.Param("recordID"), req)
	if err != nil {
		respondError(c, err, "Failed to update record")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// deleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Produce json
// @Param recordID path string true "Record ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID} [delete]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.recordService.DeleteRecord(c.Request.Context(), actor, c.Param("recordID")); err != nil {
		respondError(c, err, "Failed to delete record")
		return
	}
	c.Status(http.StatusNoContent)
}

// sendReminder godoc
// @Summary Send a payment reminder for a record
// @Description Dispatches an SMS or WhatsApp reminder to the record's
// @Description contact. Costs 2 coins, debited atomically with the log.
// @Tags records
// @Accept json
// @Produce json
// @Param recordID path string true "Record ID"
// @Param reminder body dto.SendReminderRequest true "Channel and optional message"
// @Success 201 {object} dto.ReminderLogResponse
// @Failure 400 {object} ErrorResponse "Record has no contact number"
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID}/reminders [post]
func (h *recordHandler) sendReminder(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	log, err := h.recordService.SendReminder(c.Request.Context(), actor, c.Param("recordID"), req)
	if err != nil {
		respondError(c, err, "Failed to send reminder")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReminderLogResponse(log))
}

// listReminders godoc
// @Summary List reminders sent for a record
// @Tags records
// @Produce json
// @Param recordID path string true "Record ID"
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ListRemindersResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID}/reminders [get]
func (h *recordHandler) listReminders(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.recordService.ListReminders(c.Request.Context(), actor, c.Param("recordID"), limit)
	if err != nil {
		respondError(c, err, "Failed to list reminders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRemindersResponse(logs))
}

// downloadReceipt godoc
// @Summary Download a PDF receipt for a record
// @Description Costs 1 coin. Responds with the rendered PDF.
// @Tags records
// @Produce application/pdf
// @Param recordID path string true "Record ID"
// @Success 200 {file} binary
// @Failure 402 {object} ErrorResponse "Insufficient coins"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{recordID}/receipt [get]
func (h *recordHandler) downloadReceipt(c *gin.Context) {
	actor, ok := middleware.GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	pdf, filename, err := h.recordService.GenerateReceiptPDF(c.Request.Context(), actor, c.Param("recordID"))
	if err != nil {
		respondError(c, err, "Failed to generate receipt")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
