package handlers

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/variety"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/dto"
)

// VarietyHTTPHandler is a type alias to shorten signatures.
type VarietyHTTPHandler = CatalogHandler[
	*variety.PlantVariety,
	dto.CreateVarietyRequest,
	dto.UpdateVarietyRequest,
]

// NewVarietyHandler creates a configured generic handler for varieties.
func NewVarietyHandler(
	base *BaseHandler,
	service *variety.Service,
) *VarietyHTTPHandler {

	config := CatalogHandlerConfig[
		*variety.PlantVariety,
		dto.CreateVarietyRequest,
		dto.UpdateVarietyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "variety",

		MapCreateDTO: func(req dto.CreateVarietyRequest) *variety.PlantVariety {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateVarietyRequest, existing *variety.PlantVariety) *variety.PlantVariety {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *variety.PlantVariety) any {
			return dto.FromVariety(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
