package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// HRHandler empleados, nómina y aniversarios.
type HRHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewHRHandler construye el handler.
func NewHRHandler(uc *usecase.EmployeeUseCase) *HRHandler {
	return &HRHandler{uc: uc}
}

// Create godoc
// @Summary      Crear empleado
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hr [post]
func (h *HRHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), companyID, in)
	if err != nil {
		return employeeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        department  query  string  false  "Departamento"
// @Param        status      query  string  false  "active, inactive, vacation, leave"
// @Param        search      query  string  false  "Nombre, email o cargo"
// @Success      200  {array}   dto.EmployeeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/hr [get]
func (h *HRHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.List(c.Context(), companyID, repository.EmployeeFilter{
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar empleado
// @Tags         hr
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/hr/{id} [put]
func (h *HRHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return employeeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar empleado
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hr/{id}/deactivate [patch]
func (h *HRHandler) Deactivate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Deactivate(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return employeeError(c, err)
	}
	return c.JSON(out)
}

// Payroll godoc
// @Summary      Nómina por departamento
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PayrollReportDTO
// @Router       /api/hr/payroll [get]
func (h *HRHandler) Payroll(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Payroll(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Birthdays godoc
// @Summary      Aniversarios de contratación del mes
// @Tags         hr
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BirthdayReportDTO
// @Router       /api/hr/birthdays [get]
func (h *HRHandler) Birthdays(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Birthdays(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func employeeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_FIELD", Message: "ya existe un empleado con ese email o documento"})
	}
	return writeError(c, err)
}
