package entity

// Address is embedded in orders and customer address books.
type Address struct {
	FirstName string `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`
	Address1  string `bson:"address1,omitempty" json:"address1,omitempty"`
	Address2  string `bson:"address2,omitempty" json:"address2,omitempty"`
	City      string `bson:"city,omitempty" json:"city,omitempty"`
	State     string `bson:"state,omitempty" json:"state,omitempty"`
	Zip       string `bson:"zip,omitempty" json:"zip,omitempty"`
	Country   string `bson:"country,omitempty" json:"country,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// IsZero reports whether no field of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}
