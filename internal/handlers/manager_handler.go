package handlers

import (
	stderrors "errors"
	"net/http"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/errors"
	"conta-bancaria/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ManagerHandler handles staff administration HTTP requests
type ManagerHandler struct {
	managerService services.ManagerServiceInterface
}

// NewManagerHandler creates a new manager handler
func NewManagerHandler(managerService services.ManagerServiceInterface) *ManagerHandler {
	return &ManagerHandler{managerService: managerService}
}

// Register creates a staff user
// @Summary Register a manager
// @Description Admin-only creation of a manager or admin user. The role defaults to manager when omitted.
// @Tags Managers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RegisterManagerRequest true "Manager registration details"
// @Success 201 {object} dto.ManagerResponse "Manager registered"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 409 {object} errors.ErrorResponse "MANAGER_002 - CPF or email already registered"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /managers [post]
func (h *ManagerHandler) Register(c echo.Context) error {
	var req dto.RegisterManagerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	manager, err := h.managerService.RegisterManager(req)
	if err != nil {
		if err == services.ErrManagerExists {
			return SendError(c, errors.ManagerExists)
		}
		if stderrors.Is(err, services.ErrPasswordTooShort) ||
			stderrors.Is(err, services.ErrPasswordTooLong) ||
			stderrors.Is(err, services.ErrPasswordWeak) ||
			stderrors.Is(err, services.ErrPasswordEmpty) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewManagerResponse(manager))
}

// GetManager retrieves a staff user by ID
// @Summary Get manager by ID
// @Description Admin-only lookup of an active manager or admin
// @Tags Managers
// @Security BearerAuth
// @Produce json
// @Param managerId path string true "Manager ID (UUID)"
// @Success 200 {object} dto.ManagerResponse "Manager profile"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid manager ID format"
// @Failure 404 {object} errors.ErrorResponse "MANAGER_001 - Manager not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /managers/{managerId} [get]
func (h *ManagerHandler) GetManager(c echo.Context) error {
	managerID, err := uuid.Parse(c.Param("managerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid manager ID"))
	}

	manager, err := h.managerService.GetManager(managerID)
	if err != nil {
		if err == services.ErrManagerNotFound {
			return SendError(c, errors.ManagerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewManagerResponse(manager))
}

// ListManagers retrieves active managers with pagination
// @Summary List managers
// @Description Admin-only listing of active managers
// @Tags Managers
// @Security BearerAuth
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} dto.ManagerListResponse "Manager profiles"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /managers [get]
func (h *ManagerHandler) ListManagers(c echo.Context) error {
	offset, limit := getPagination(c)

	managers, total, err := h.managerService.ListManagers(offset, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]*dto.ManagerResponse, 0, len(managers))
	for _, manager := range managers {
		responses = append(responses, dto.NewManagerResponse(manager))
	}

	return c.JSON(http.StatusOK, dto.ManagerListResponse{
		Managers: responses,
		Total:    total,
		Offset:   offset,
		Limit:    limit,
	})
}

// UpdateManager patches a manager's profile
// @Summary Update a manager
// @Description Admin-only update of a manager's name and/or email. Omitted fields are left untouched.
// @Tags Managers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param managerId path string true "Manager ID (UUID)"
// @Param request body dto.UpdateManagerRequest true "Fields to update"
// @Success 200 {object} dto.ManagerResponse "Updated manager profile"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 404 {object} errors.ErrorResponse "MANAGER_001 - Manager not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /managers/{managerId} [patch]
func (h *ManagerHandler) UpdateManager(c echo.Context) error {
	managerID, err := uuid.Parse(c.Param("managerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid manager ID"))
	}

	var req dto.UpdateManagerRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	manager, err := h.managerService.UpdateManager(managerID, req)
	if err != nil {
		if err == services.ErrManagerNotFound {
			return SendError(c, errors.ManagerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewManagerResponse(manager))
}

// Deactivate marks a staff user as inactive
// @Summary Deactivate a manager
// @Description Admin-only deactivation of a manager or admin. The record is kept; the CPF can no longer authenticate.
// @Tags Managers
// @Security BearerAuth
// @Produce json
// @Param managerId path string true "Manager ID (UUID)"
// @Success 200 {object} dto.MessageResponse "Manager deactivated"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid manager ID format"
// @Failure 404 {object} errors.ErrorResponse "MANAGER_001 - Manager not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /managers/{managerId} [delete]
func (h *ManagerHandler) Deactivate(c echo.Context) error {
	managerID, err := uuid.Parse(c.Param("managerId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid manager ID"))
	}

	if err := h.managerService.DeactivateManager(managerID); err != nil {
		if err == services.ErrManagerNotFound {
			return SendError(c, errors.ManagerNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Manager deactivated successfully"})
}
