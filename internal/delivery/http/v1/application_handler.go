package v1

import (
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application workflow routes. All of them
// sit behind the auth middleware.
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/application")
	{
		applications.POST("/apply/:id", handler.Apply)
		applications.GET("/my", handler.MyApplications)
		applications.GET("/:id/applicants", handler.Applicants)
		applications.GET("/:id/applicants/export", handler.ExportApplicants)
		applications.POST("/:id/status", handler.UpdateStatus)
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application for a job; at most one per user per job
// @Tags         application
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/apply/{id} [post]
// @Security     CookieAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Job ID is required"))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job applied successfully", gin.H{"application": app})
}

// MyApplications godoc
// @Summary      List my applications
// @Description  Applications of the current user, newest first, with job and company
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /application/my [get]
// @Security     CookieAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.ListAppliedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", gin.H{"application": applications})
}

// Applicants godoc
// @Summary      List a job's applicants
// @Description  Job with its applications newest first, recruiter-owned jobs only
// @Tags         application
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobApplicants}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/{id}/applicants [get]
// @Security     CookieAuth
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Job ID is required"))
		return
	}

	result, err := h.applicationUC.ListApplicants(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants retrieved", gin.H{"job": result})
}

// ExportApplicants godoc
// @Summary      Export a job's applicants
// @Description  XLSX export of the applicant list, recruiter-owned jobs only
// @Tags         application
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Job ID"
// @Success      200 {file} file
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /application/{id}/applicants/export [get]
// @Security     CookieAuth
func (h *ApplicationHandler) ExportApplicants(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Job ID is required"))
		return
	}

	data, filename, err := h.applicationUC.ExportApplicants(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// UpdateStatusRequest is the status transition payload
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Transition an application to pending, accepted or rejected
// @Tags         application
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /application/{id}/status [post]
// @Security     CookieAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Application ID is required"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status is required"))
		return
	}

	if err := h.applicationUC.UpdateStatus(c.Request.Context(), userID, applicationID, req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Status updated successfully", nil)
}
