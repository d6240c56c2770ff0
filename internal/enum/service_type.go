package enum

type ServiceType string

const (
	ServiceTypeHosting        ServiceType = "hosting"
	ServiceTypeWebsiteBuilder ServiceType = "website_builder"
	ServiceTypeEcommerce      ServiceType = "ecommerce"
)

func (serviceType ServiceType) String() string {
	return string(serviceType)
}

func GetServiceType(s string) ServiceType {
	switch s {
	case "website_builder":
		return ServiceTypeWebsiteBuilder
	case "ecommerce":
		return ServiceTypeEcommerce
	default:
		return ServiceTypeHosting
	}
}
