package models

// Catalog is a fixed three level hierarchy: service -> sub-service -> specialty.
// A specialty always belongs to exactly one sub-service, which belongs to
// exactly one service.

type Service struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IconPath string `json:"icon_path,omitempty"`
}

type SubService struct {
	ID        int    `json:"id"`
	ServiceID int    `json:"service_id"`
	Name      string `json:"name"`
}

type Specialty struct {
	ID           int    `json:"id"`
	SubServiceID int    `json:"sub_service_id"`
	Name         string `json:"name"`
}

// Item type tags determine how a provider's configured unit price is
// multiplied when a quote is priced.
const (
	ItemTypeQuantity  = "quantity"
	ItemTypeArea      = "area"
	ItemTypeLinear    = "linear"
	ItemTypeMaxArea   = "max_area"
	ItemTypeMaxLinear = "max_linear"
)

// ServiceItem is a billable unit belonging to a service, sub-service or
// specialty.
type ServiceItem struct {
	ID           int    `json:"id"`
	ServiceID    *int   `json:"service_id,omitempty"`
	SubServiceID *int   `json:"sub_service_id,omitempty"`
	SpecialtyID  *int   `json:"specialty_id,omitempty"`
	Name         string `json:"name"`
	ItemType     string `json:"item_type"`
}

// Question is asked in the wizard's questionnaire sub-step when the selected
// hierarchy node has questions configured.
type Question struct {
	ID           int      `json:"id"`
	ServiceID    *int     `json:"service_id,omitempty"`
	SubServiceID *int     `json:"sub_service_id,omitempty"`
	SpecialtyID  *int     `json:"specialty_id,omitempty"`
	Text         string   `json:"text"`
	Options      []string `json:"options,omitempty"`
}
