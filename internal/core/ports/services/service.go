package services

import "github.com/lcodev/ecom_backend/internal/core/domain"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Session SessionSvcFacade
	Order   OrderSvcFacade
	Payment PaymentSvc
	User    UserSvcFacade
	Catalog CatalogSvcFacade

	// Policy is the static action table shared by every service.
	Policy *domain.Policy
}
