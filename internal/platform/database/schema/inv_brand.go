package schema

// InvBrandTable represents the 'inv.brand' table
type InvBrandTable struct {
	Table     string
	ID        string
	Name      string
	ImageURL  string
	CreatedAt string
	UpdatedAt string
}

// InvBrand is the schema definition for inv.brand
var InvBrand = InvBrandTable{
	Table:     "inv.brand",
	ID:        "id",
	Name:      "name",
	ImageURL:  "imageurl",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
