package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"servioBack/internal/models"
	"servioBack/internal/services"
)

type CatalogHandler struct {
	Service *services.CatalogService
}

func (h *CatalogHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Service.GetServices(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

func (h *CatalogHandler) GetSubServices(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.Atoi(getParam(r, "service_id"))
	if err != nil {
		http.Error(w, "invalid service_id", http.StatusBadRequest)
		return
	}

	subs, err := h.Service.GetSubServices(r.Context(), serviceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subs)
}

func (h *CatalogHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	subServiceID, err := strconv.Atoi(getParam(r, "sub_service_id"))
	if err != nil {
		http.Error(w, "invalid sub_service_id", http.StatusBadRequest)
		return
	}

	specs, err := h.Service.GetSpecialties(r.Context(), subServiceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(specs)
}

// GetWizardPlan tells the client which Service Details sub-steps to render
// for the chosen hierarchy node.
func (h *CatalogHandler) GetWizardPlan(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.Atoi(getParam(r, "service_id"))
	if err != nil {
		http.Error(w, "invalid service_id", http.StatusBadRequest)
		return
	}

	subServiceID := optionalIntParam(r, "sub_service_id")
	specialtyID := optionalIntParam(r, "specialty_id")

	plan, err := h.Service.GetWizardPlan(r.Context(), serviceID, subServiceID, specialtyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan)
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateService(r.Context(), svc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CatalogHandler) CreateSubService(w http.ResponseWriter, r *http.Request) {
	var sub models.SubService
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateSubService(r.Context(), sub)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "service does not exist", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CatalogHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var spec models.Specialty
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateSpecialty(r.Context(), spec)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "sub-service does not exist", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func optionalIntParam(r *http.Request, name string) *int {
	val := getParam(r, name)
	if val == "" {
		return nil
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &id
}
