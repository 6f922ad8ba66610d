package model

// AllModels returns every model in migration order. Used by the migrate
// command and the test helpers.
func AllModels() []interface{} {
	return []interface{}{
		&Organization{},
		&User{},
		&Customer{},
		&Technician{},
		&Asset{},
		&Brand{},
		&Device{},
		&Part{},
		&WorkOrder{},
		&PartUsage{},
		&ServiceCall{},
		&ServicePartUsage{},
		&MaintenancePlan{},
		&Contract{},
		&ContractAsset{},
		&Inspection{},
		&Invoice{},
		&ServiceInvoice{},
		&PurchaseRequest{},
	}
}
