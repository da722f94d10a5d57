package costing

// AssocKind selects one of the three association relations.
type AssocKind string

const (
	AssocLabor     AssocKind = "labor"
	AssocEquipment AssocKind = "equipment"
	AssocMaterial  AssocKind = "material"
)

// counterpartKind maps an association kind to the entity kind it references.
func (k AssocKind) counterpartKind() string {
	switch k {
	case AssocLabor:
		return KindEmployee
	case AssocEquipment:
		return KindEquipment
	default:
		return KindMaterial
	}
}

type scopeKind int

const (
	scopeNone scopeKind = iota
	scopeProduct
	scopeAssociation
)

// Scope identifies exactly one product for recomputation, either directly by
// product id or indirectly through one of its association rows. The tagged
// form makes a zero-or-many-ids scope impossible to express; only the zero
// value is invalid.
type Scope struct {
	kind  scopeKind
	assoc AssocKind
	id    int64
}

// ProductScope targets a product directly.
func ProductScope(productID int64) Scope {
	return Scope{kind: scopeProduct, id: productID}
}

// AssociationScope targets the product owning one association row.
func AssociationScope(kind AssocKind, usageID int64) Scope {
	return Scope{kind: scopeAssociation, assoc: kind, id: usageID}
}
