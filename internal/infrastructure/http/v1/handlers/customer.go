package handlers

import (
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/domain/catalogs/customer"
	"github.com/Patrickdoranlearning/hortitrack-sub010/internal/infrastructure/http/v1/dto"
)

// CustomerHTTPHandler is a type alias to shorten signatures.
type CustomerHTTPHandler = CatalogHandler[
	*customer.Customer,
	dto.CreateCustomerRequest,
	dto.UpdateCustomerRequest,
]

// NewCustomerHandler creates a configured generic handler for customers.
func NewCustomerHandler(
	base *BaseHandler,
	service *customer.Service,
) *CustomerHTTPHandler {

	config := CatalogHandlerConfig[
		*customer.Customer,
		dto.CreateCustomerRequest,
		dto.UpdateCustomerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "customer",

		MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *customer.Customer) any {
			return dto.FromCustomer(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
