package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"servioBack/internal/models"
)

type CatalogRepository struct {
	DB *sql.DB
}

func (r *CatalogRepository) GetServices(ctx context.Context) ([]models.Service, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, icon_path FROM catalog_services ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.IconPath); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *CatalogRepository) GetSubServices(ctx context.Context, serviceID int) ([]models.SubService, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, service_id, name FROM catalog_sub_services
		WHERE service_id = ? ORDER BY name`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.SubService
	for rows.Next() {
		var s models.SubService
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.Name); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *CatalogRepository) GetSpecialties(ctx context.Context, subServiceID int) ([]models.Specialty, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, sub_service_id, name FROM catalog_specialties
		WHERE sub_service_id = ? ORDER BY name`, subServiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var specs []models.Specialty
	for rows.Next() {
		var s models.Specialty
		if err := rows.Scan(&s.ID, &s.SubServiceID, &s.Name); err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}
	return specs, rows.Err()
}

// GetItems returns the billable items attached to any node of the selected
// hierarchy path; the wizard shows the quantities sub-step only when this
// list is non-empty.
func (r *CatalogRepository) GetItems(ctx context.Context, serviceID int, subServiceID, specialtyID *int) ([]models.ServiceItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, service_id, sub_service_id, specialty_id, name, item_type
		FROM service_items
		WHERE service_id = ?
		   OR (sub_service_id IS NOT NULL AND sub_service_id <=> ?)
		   OR (specialty_id IS NOT NULL AND specialty_id <=> ?)
		ORDER BY id`, serviceID, subServiceID, specialtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ServiceItem
	for rows.Next() {
		var it models.ServiceItem
		if err := rows.Scan(&it.ID, &it.ServiceID, &it.SubServiceID, &it.SpecialtyID, &it.Name, &it.ItemType); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *CatalogRepository) GetQuestions(ctx context.Context, serviceID int, subServiceID, specialtyID *int) ([]models.Question, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, service_id, sub_service_id, specialty_id, text, options
		FROM service_questions
		WHERE service_id = ?
		   OR (sub_service_id IS NOT NULL AND sub_service_id <=> ?)
		   OR (specialty_id IS NOT NULL AND specialty_id <=> ?)
		ORDER BY id`, serviceID, subServiceID, specialtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var options sql.NullString
		if err := rows.Scan(&q.ID, &q.ServiceID, &q.SubServiceID, &q.SpecialtyID, &q.Text, &options); err != nil {
			return nil, err
		}
		if options.Valid && options.String != "" {
			if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
				return nil, err
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *CatalogRepository) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO catalog_services (name, icon_path) VALUES (?, ?)`, s.Name, s.IconPath)
	if err != nil {
		return models.Service{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Service{}, err
	}
	s.ID = int(id)
	return s, nil
}

func (r *CatalogRepository) CreateSubService(ctx context.Context, s models.SubService) (models.SubService, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO catalog_sub_services (service_id, name) VALUES (?, ?)`, s.ServiceID, s.Name)
	if err != nil {
		return models.SubService{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.SubService{}, err
	}
	s.ID = int(id)
	return s, nil
}

func (r *CatalogRepository) CreateSpecialty(ctx context.Context, s models.Specialty) (models.Specialty, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO catalog_specialties (sub_service_id, name) VALUES (?, ?)`, s.SubServiceID, s.Name)
	if err != nil {
		return models.Specialty{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Specialty{}, err
	}
	s.ID = int(id)
	return s, nil
}
