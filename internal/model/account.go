package model

import "time"

// Account is an identity of either role. Admin accounts are internal staff,
// client accounts are tenant companies and carry a ClientProfile.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Address is a client's postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// DefaultCountry is applied when a client registers without a country.
const DefaultCountry = "India"

// ClientProfile holds the company details of a client account.
type ClientProfile struct {
	CompanyName        string  `json:"companyName"`
	PhoneNumber        string  `json:"phoneNumber"`
	Address            Address `json:"address"`
	Industry           string  `json:"industry,omitempty"`
	CompanySize        string  `json:"companySize,omitempty"`
	Website            string  `json:"website,omitempty"`
	TaxID              string  `json:"taxId,omitempty"`
	RegistrationNumber string  `json:"registrationNumber,omitempty"`
}

var companySizes = map[string]bool{
	"1-10": true, "11-50": true, "51-200": true, "201-500": true, "501+": true,
}

// ValidCompanySize reports whether s is empty or one of the accepted bands.
func ValidCompanySize(s string) bool {
	return s == "" || companySizes[s]
}

// Client is a client account joined with its profile.
type Client struct {
	Account
	ClientProfile
}
