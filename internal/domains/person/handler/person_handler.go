package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"personaldata-backend/internal/domains/person"
	"personaldata-backend/internal/shared/response"
)

// PersonHandler handles HTTP requests for the person domain.
type PersonHandler struct {
	service person.Service
}

func NewPersonHandler(service person.Service) *PersonHandler {
	return &PersonHandler{
		service: service,
	}
}

// ListPersons handles GET /persons?pageNumber=&pageSize=&search=
// Out-of-range paging values are clamped, never rejected.
func (h *PersonHandler) ListPersons(c *gin.Context) {
	pageNumber := 1
	pageSize := 10

	if v := c.Query("pageNumber"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pageNumber = n
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pageSize = n
		}
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	query := person.ListQuery{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		SearchTerm: strings.TrimSpace(c.Query("search")),
	}

	result, err := h.service.ListPersons(c.Request.Context(), query)
	if err != nil {
		status, message, errs := person.GetErrorResponse(err)
		response.Error(c, status, message, errs...)
		return
	}

	response.Success(c, http.StatusOK, "Persons retrieved successfully", result)
}

// CreatePerson handles POST /persons
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req person.CreateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	result, err := h.service.CreatePerson(c.Request.Context(), &req)
	if err != nil {
		status, message, errs := person.GetErrorResponse(err)
		response.Error(c, status, message, errs...)
		return
	}

	response.Success(c, http.StatusCreated, "Person created successfully", result)
}

// UpdatePerson handles PUT /persons/:id
// The path id is authoritative; any id in the body is overwritten.
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	idStr := c.Param("id")

	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "Invalid person ID", "id must be a positive integer")
		return
	}

	var req person.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	req.ID = id

	result, err := h.service.UpdatePerson(c.Request.Context(), id, &req)
	if err != nil {
		status, message, errs := person.GetErrorResponse(err)
		response.Error(c, status, message, errs...)
		return
	}

	response.Success(c, http.StatusOK, "Person updated successfully", result)
}
