package models

import (
	"time"

	"github.com/ruachost/domainstack/internal/enum"
)

type Order struct {
	ID               uint64           `gorm:"primary_key;autoIncrement" json:"id"`
	Reference        string           `gorm:"column:reference;type:varchar(255);NOT NULL;uniqueIndex" json:"reference"`
	CustomerEmail    string           `gorm:"column:customer_email;type:varchar(255);NOT NULL;index" json:"customerEmail"`
	Status           enum.OrderStatus `gorm:"column:status;type:varchar(32);NOT NULL;DEFAULT:'pending'" json:"status"`
	TotalAmount      float64          `gorm:"column:total_amount;type:numeric(12,2)" json:"totalAmount"`
	Currency         string           `gorm:"column:currency;type:varchar(8);NOT NULL;DEFAULT:'NGN'" json:"currency"`
	PaymentMethod    string           `gorm:"column:payment_method;type:varchar(64)" json:"paymentMethod"`
	PaymentReference string           `gorm:"column:payment_reference;type:varchar(255);index" json:"paymentReference"`
	WhmcsOrderID     string           `gorm:"column:whmcs_order_id;type:varchar(64)" json:"whmcsOrderId"`
	WhmcsClientID    string           `gorm:"column:whmcs_client_id;type:varchar(64)" json:"whmcsClientId"`
	CreatedAt        time.Time        `gorm:"column:created_at;type:timestamp;DEFAULT:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;type:timestamp;DEFAULT:current_timestamp" json:"updatedAt"`
	Domains          []OrderDomain    `gorm:"foreignKey:OrderID" json:"domains"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderDomain struct {
	ID          uint64 `gorm:"primary_key;autoIncrement" json:"id"`
	OrderID     uint64 `gorm:"column:order_id;NOT NULL;index" json:"orderId"`
	Domain      string `gorm:"column:domain;type:varchar(255);NOT NULL" json:"domain"`
	DomainType  string `gorm:"column:domain_type;type:varchar(32);NOT NULL;DEFAULT:'register'" json:"domainType"`
	RegPeriod   int    `gorm:"column:reg_period;type:int;NOT NULL;DEFAULT:1" json:"regPeriod"`
	Nameserver1 string `gorm:"column:nameserver1;type:varchar(255)" json:"nameserver1"`
	Nameserver2 string `gorm:"column:nameserver2;type:varchar(255)" json:"nameserver2"`
}

func (OrderDomain) TableName() string {
	return "order_domains"
}
