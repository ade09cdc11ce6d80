package dto

// CreateVendorRuleRequest adds a tenant-scoped substring rule for the cascade.
type CreateVendorRuleRequest struct {
	VendorContains  string `json:"vendorContains" binding:"required"`
	Category        string `json:"category" binding:"required"`
	AppliesGlobally bool   `json:"appliesGlobally"`
}
