package handlers

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/size"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/dto"
)

// SizeHTTPHandler is a type alias to shorten signatures.
type SizeHTTPHandler = CatalogHandler[
	*size.PlantSize,
	dto.CreateSizeRequest,
	dto.UpdateSizeRequest,
]

// NewSizeHandler creates a configured generic handler for sizes.
func NewSizeHandler(
	base *BaseHandler,
	service *size.Service,
) *SizeHTTPHandler {

	config := CatalogHandlerConfig[
		*size.PlantSize,
		dto.CreateSizeRequest,
		dto.UpdateSizeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "size",

		MapCreateDTO: func(req dto.CreateSizeRequest) *size.PlantSize {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateSizeRequest, existing *size.PlantSize) *size.PlantSize {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *size.PlantSize) any {
			return dto.FromSize(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
