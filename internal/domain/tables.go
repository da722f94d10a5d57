package domain

var Tables = []interface{}{
	// System
	&Operator{},
	// Catalog
	&Product{},
	&Employee{},
	&Equipment{},
	&Material{},
	// Associations
	&LaborUsage{},
	&EquipmentUsage{},
	&MaterialUsage{},
	// Business
	&Client{},
	&Sale{},
}
