package impl

import (
	"context"
	"log/slog"

	deliverycontext "portal/internal/delivery/context"
	"portal/internal/domain/entity"
	"portal/internal/domain/repository"
	"portal/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sectionService implements the SectionUsecase interface.
type sectionService struct {
	sectionRepo repository.SectionRepository
	logger      *slog.Logger
}

// SectionServiceParams holds dependencies for sectionService, injected by Fx.
type SectionServiceParams struct {
	fx.In

	SectionRepo repository.SectionRepository
	Logger      *slog.Logger
}

// NewSectionService is the constructor for sectionService.
func NewSectionService(params SectionServiceParams) usecase.SectionUsecase {
	return &sectionService{
		sectionRepo: params.SectionRepo,
		logger:      params.Logger,
	}
}

// ListSections returns the sections open to a cohort. An empty slice means
// no sections are available for that cohort, which is a normal outcome.
func (srv *sectionService) ListSections(ctx context.Context, cohort repository.Cohort) ([]entity.Section, error) {
	sections, err := srv.sectionRepo.FindByCohort(ctx, cohort)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Section lookup failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list sections")
	}

	return sections, nil
}
