package service

import (
	"context"
	"fmt"
	"io"

	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
	"sitewatch/internal/storage"
)

// PlanService handles floor-plan upload, listing and deletion.
type PlanService interface {
	Upload(ctx context.Context, name, filename string, image io.Reader) (*model.Plan, error)
	List(ctx context.Context) ([]model.Plan, error)
	Delete(ctx context.Context, id uint) error
}

type planService struct {
	planRepo repository.PlanRepository
	store    *storage.PlanStore
}

// NewPlanService creates a new plan service.
func NewPlanService(planRepo repository.PlanRepository, store *storage.PlanStore) PlanService {
	return &planService{planRepo: planRepo, store: store}
}

// Upload stores the image under a unique name and inserts the plan row.
// If the insert fails the stored file is removed again.
func (s *planService) Upload(ctx context.Context, name, filename string, image io.Reader) (*model.Plan, error) {
	link, err := s.store.Save(filename, image)
	if err != nil {
		return nil, fmt.Errorf("store plan image: %w", err)
	}

	plan := &model.Plan{Name: name, ImgLink: link}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		_ = s.store.Remove(link)
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

func (s *planService) List(ctx context.Context) ([]model.Plan, error) {
	return s.planRepo.List(ctx)
}

// Delete removes the row first, then the backing file best-effort. A
// missing file never fails the deletion.
func (s *planService) Delete(ctx context.Context, id uint) error {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPlanNotFound
		}
		return fmt.Errorf("find plan: %w", err)
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	_ = s.store.Remove(plan.ImgLink)
	return nil
}
