package handler

import (
	"net/http"

	"portal/internal/delivery/http/response"
	"portal/internal/domain/entity"
	"portal/internal/domain/repository"
	"portal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SectionHandler holds dependencies for cohort browsing.
type SectionHandler struct {
	uc usecase.SectionUsecase
}

// NewSectionHandler is the constructor for SectionHandler, injected by Fx.
func NewSectionHandler(uc usecase.SectionUsecase) *SectionHandler {
	return &SectionHandler{uc: uc}
}

// List returns the sections open to the cohort named by the query
// parameters. All three triad members are required.
func (h *SectionHandler) List(c echo.Context) error {
	studentType := entity.StudentType(c.QueryParam("studentType"))
	if !studentType.IsValid() {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Unknown student type", nil)
	}

	cohort := repository.Cohort{
		StudentType: studentType,
		Program:     c.QueryParam("programOrStrand"),
		YearLevel:   c.QueryParam("yearOrGrade"),
	}
	if !cohort.Complete() {
		return response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "programOrStrand and yearOrGrade are required", nil)
	}

	sections, err := h.uc.ListSections(c.Request().Context(), cohort)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sections)
}
