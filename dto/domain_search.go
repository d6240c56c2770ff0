package dto

// Challenge is the arithmetic proof shown to a visitor before a domain
// search is serviced. Validity is re-derived from the keyed signature, no
// server-side state is kept between issue and verify.
type Challenge struct {
	A           int    `json:"a"`
	B           int    `json:"b"`
	ChallengeID string `json:"challengeId"`
	Sig         string `json:"sig"`
}

type DomainSearchRequest struct {
	Domain      string `json:"domain"`
	Answer      *int   `json:"answer"`
	ChallengeID string `json:"challengeId"`
	Sig         string `json:"sig"`
}

type DomainSearchResult struct {
	Domain             string   `json:"domain"`
	Available          bool     `json:"available"`
	Price              float64  `json:"price"`
	Currency           string   `json:"currency"`
	RegistrationPeriod int      `json:"registrationPeriod"`
	RenewalPrice       *float64 `json:"renewalPrice,omitempty"`
}

type DomainPricing struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type DomainStatus struct {
	Domain     string `json:"domain"`
	Status     string `json:"status"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	DaysLeft   int    `json:"daysLeft"`
}
