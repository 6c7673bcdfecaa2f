package care

// Kind clasifica un acto de cuidado registrado.
type Kind string

const (
	KindVaccine       Kind = "VACCINE"
	KindAntiparasitic Kind = "ANTIPARASITIC"
	KindDewormer      Kind = "DEWORMER"
	KindTreatment     Kind = "TREATMENT"
	KindWeight        Kind = "WEIGHT"
)

// validKinds es el conjunto cerrado (pero extensible) de tipos aceptados.
var validKinds = map[Kind]struct{}{
	KindVaccine:       {},
	KindAntiparasitic: {},
	KindDewormer:      {},
	KindTreatment:     {},
	KindWeight:        {},
}

func IsValidKind(k Kind) bool {
	_, ok := validKinds[k]
	return ok
}
