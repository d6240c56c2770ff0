package dto

// Customer carries the fields WHMCS requires to create a client.
type Customer struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber"`
	CompanyName string `json:"companyname,omitempty"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	Postcode    string `json:"postcode"`
}

type OrderDomain struct {
	Name        string `json:"name"`
	DomainType  string `json:"domaintype"`
	RegPeriod   int    `json:"regperiod"`
	Nameserver1 string `json:"nameserver1,omitempty"`
	Nameserver2 string `json:"nameserver2,omitempty"`
}

type CreateOrderRequest struct {
	Customer      *Customer     `json:"customer"`
	Domains       []OrderDomain `json:"domains"`
	PaymentMethod string        `json:"paymentMethod"`
	Reference     string        `json:"reference,omitempty"`
	Amount        float64       `json:"amount,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Paid          bool          `json:"-"`
}

type CreateOrderResult struct {
	OrderID       string        `json:"orderId"`
	ClientID      string        `json:"clientId"`
	IsNewClient   bool          `json:"isNewClient"`
	Domains       []OrderDomain `json:"domains"`
	PaymentMethod string        `json:"paymentMethod"`
}
