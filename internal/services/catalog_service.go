package services

import (
	"context"

	"servioBack/internal/models"
	"servioBack/internal/repositories"
)

type CatalogService struct {
	CatalogRepo *repositories.CatalogRepository
}

// WizardPlan tells the request wizard which Service Details sub-steps apply
// to the chosen hierarchy node. A sub-step is present only when the node has
// corresponding questions or items configured.
type WizardPlan struct {
	Questions        []models.Question    `json:"questions,omitempty"`
	Items            []models.ServiceItem `json:"items,omitempty"`
	HasQuestionnaire bool                 `json:"has_questionnaire"`
	HasItems         bool                 `json:"has_items"`
	HasMeasurements  bool                 `json:"has_measurements"`
}

func (s *CatalogService) GetServices(ctx context.Context) ([]models.Service, error) {
	return s.CatalogRepo.GetServices(ctx)
}

func (s *CatalogService) GetSubServices(ctx context.Context, serviceID int) ([]models.SubService, error) {
	return s.CatalogRepo.GetSubServices(ctx, serviceID)
}

func (s *CatalogService) GetSpecialties(ctx context.Context, subServiceID int) ([]models.Specialty, error) {
	return s.CatalogRepo.GetSpecialties(ctx, subServiceID)
}

func (s *CatalogService) GetWizardPlan(ctx context.Context, serviceID int, subServiceID, specialtyID *int) (WizardPlan, error) {
	questions, err := s.CatalogRepo.GetQuestions(ctx, serviceID, subServiceID, specialtyID)
	if err != nil {
		return WizardPlan{}, err
	}
	items, err := s.CatalogRepo.GetItems(ctx, serviceID, subServiceID, specialtyID)
	if err != nil {
		return WizardPlan{}, err
	}

	plan := WizardPlan{
		Questions:        questions,
		Items:            items,
		HasQuestionnaire: len(questions) > 0,
		HasItems:         len(items) > 0,
	}
	for _, it := range items {
		switch it.ItemType {
		case models.ItemTypeArea, models.ItemTypeMaxArea, models.ItemTypeLinear, models.ItemTypeMaxLinear:
			plan.HasMeasurements = true
		}
	}
	return plan, nil
}

func (s *CatalogService) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	return s.CatalogRepo.CreateService(ctx, svc)
}

func (s *CatalogService) CreateSubService(ctx context.Context, sub models.SubService) (models.SubService, error) {
	return s.CatalogRepo.CreateSubService(ctx, sub)
}

func (s *CatalogService) CreateSpecialty(ctx context.Context, spec models.Specialty) (models.Specialty, error) {
	return s.CatalogRepo.CreateSpecialty(ctx, spec)
}
