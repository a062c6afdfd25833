package handler

import (
	"net/http"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// SearchCatalogResponse is the GET /catalog/services envelope.
type SearchCatalogResponse struct {
	Data []domain.CatalogService `json:"data"`
}

// SearchCatalog handles GET /catalog/services?city=...&type=...
func (s *Server) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	itemType := r.URL.Query().Get("type")

	services, err := s.catalog.Search(r.Context(), city, itemType)
	if err != nil {
		respondServiceError(w, err, "catalog not found")
		return
	}
	if services == nil {
		services = []domain.CatalogService{}
	}

	respondJSON(w, http.StatusOK, SearchCatalogResponse{Data: services})
}
