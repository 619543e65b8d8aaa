package schema

// InvAgentTable represents the 'inv.agent' table
type InvAgentTable struct {
	Table     string
	ID        string
	BrandID   string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// InvAgent is the schema definition for inv.agent.
// (name, brandid) carries a composite unique index.
var InvAgent = InvAgentTable{
	Table:     "inv.agent",
	ID:        "id",
	BrandID:   "brandid",
	Name:      "name",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
