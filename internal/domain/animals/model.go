package animals

import (
	"strings"
	"time"
)

// Sex define el sexo del animal.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// CatBreeds y DogBreeds son las listas base de razas ofrecidas al crear un
// animal de especie chat/chien (sin la opción "otra"; las especies libres
// aceptan cualquier raza).
var CatBreeds = []string{
	"Européen (chat de gouttière)",
	"Bengal",
	"Birman",
	"British shorthair",
	"Chartreux",
	"Maine Coon",
	"Norvégien",
	"Persan",
	"Ragdoll",
	"Sibérien",
	"Sphynx",
}

var DogBreeds = []string{
	"Berger Allemand",
	"Berger australien",
	"Beagle",
	"Beauceron",
	"Border Collie",
	"Bouledogue français",
	"Cavalier King Charles",
	"Chihuahua",
	"Cocker Spaniel Anglais",
	"Golden Retriever",
	"Labrador Retriever",
	"Malinois",
	"Rottweiler",
	"Staffordshire Bull Terrier",
	"Teckel",
	"Yorkshire Terrier",
	"Spitz allemand",
}

// BreedsFor devuelve la lista de razas sugeridas para una especie
// (case-insensitive). Para especies sin catálogo devuelve vacío: la raza
// es texto libre y no se valida contra la lista en ningún caso.
func BreedsFor(species string) []string {
	switch strings.ToLower(strings.TrimSpace(species)) {
	case "chat":
		return append([]string(nil), CatBreeds...)
	case "chien":
		return append([]string(nil), DogBreeds...)
	default:
		return []string{}
	}
}

// Animal representa el perfil de un animal registrado por un usuario.
type Animal struct {
	ID          string
	OwnerUserID string

	Name string

	// Species es texto libre ("chat", "chien", "lapin", ...). La búsqueda
	// en el catálogo de cuidados la canonicaliza a minúsculas; cualquier
	// especie desconocida resuelve a un catálogo vacío.
	Species string

	Breed string
	Sex   Sex

	// BirthDate es inmutable tras la creación: es el epoch de todos los
	// protocolos dependientes de la edad.
	BirthDate *time.Time

	Sterilized bool
	Microchip  string
	PhotoURL   string
	Notes      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
