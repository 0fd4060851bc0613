package animals

import "time"

// Type define las especies publicadas en el catálogo.
// @Enum dog, cat, bird, rabbit, livestock, wildlife, other
type Type string

const (
	TypeDog       Type = "dog"
	TypeCat       Type = "cat"
	TypeBird      Type = "bird"
	TypeRabbit    Type = "rabbit"
	TypeLivestock Type = "livestock"
	TypeWildlife  Type = "wildlife"
	TypeOther     Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeLivestock, TypeWildlife, TypeOther:
		return true
	}
	return false
}

// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// @Enum small, medium, large, extra-large
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra-large"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// Status no se fuerza a ser monótono; el backend es quien manda.
// @Enum available, pending, adopted, not_available
type Status string

const (
	StatusAvailable    Status = "available"
	StatusPending      Status = "pending"
	StatusAdopted      Status = "adopted"
	StatusNotAvailable Status = "not_available"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted, StatusNotAvailable:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Animal es la copia local (solo lectura) de un animal publicado.
type Animal struct {
	ID        string
	Name      string
	Type      Type
	Breed     string
	AgeYears  int
	AgeMonths int
	Gender    Gender
	Size      Size
	Weight    *float64
	Color     string

	Personality    []string // orden significativo
	MedicalHistory string

	SpecialNeeds            bool
	SpecialNeedsDescription string

	GoodWith []string
	Images   []string // la primera es la portada

	Location    string
	Coordinates *Coordinates

	AdoptionFee int
	Status      Status
	DateRescued *time.Time
	Story       string
	Featured    bool

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeInMonths une años y meses para ordenar/filtrar por edad.
func (a Animal) AgeInMonths() int {
	return a.AgeYears*12 + a.AgeMonths
}
