// Package catalog filtra, ordena y pagina en memoria la lista de animales
// que se muestra en la página de adopción.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"animal-rescue/internal/domain/animals"
)

const (
	All             = "all"
	DefaultPageSize = 12

	AgeYoung  = "young"
	AgeAdult  = "adult"
	AgeSenior = "senior"

	SortName        = "name"
	SortAge         = "age"
	SortDateAdded   = "date_added"
	SortAdoptionFee = "adoption_fee"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	MaxPageSize = 100
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filters son los criterios de búsqueda del visitante. "all", false y
// vacío no filtran.
type Filters struct {
	Query        string
	Type         string
	Age          string
	Size         string
	Gender       string
	Location     string
	SpecialNeeds bool
	GoodWith     []string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

func DefaultFilters() Filters {
	return Filters{
		Type:      All,
		Age:       All,
		Size:      All,
		Gender:    All,
		Location:  All,
		GoodWith:  []string{},
		SortBy:    SortDateAdded,
		SortOrder: OrderDesc,
		Page:      1,
	}
}

type Page struct {
	Items      []animals.Animal
	Total      int
	TotalPages int
	Page       int
	Limit      int
}

// Apply no modifica items. Sin SortBy se conserva el orden recibido.
func Apply(items []animals.Animal, f Filters) Page {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	matched := make([]animals.Animal, 0, len(items))
	for _, a := range items {
		if Matches(a, f) {
			matched = append(matched, a)
		}
	}
	if f.SortBy != "" {
		sortAnimals(matched, f.SortBy, f.SortOrder)
	}

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	if total == 0 {
		return Page{Items: []animals.Animal{}, Page: 1, Limit: limit}
	}

	start := (page - 1) * limit
	if start >= total {
		return Page{Items: []animals.Animal{}, Total: total, TotalPages: totalPages, Page: page, Limit: limit}
	}
	end := start + limit
	if end > total {
		end = total
	}
	return Page{Items: matched[start:end], Total: total, TotalPages: totalPages, Page: page, Limit: limit}
}

// Matches aplica los filtros en orden: tipo, tamaño, género, necesidades
// especiales, edad, ubicación, goodWith y por último el texto libre.
func Matches(a animals.Animal, f Filters) bool {
	if active(f.Type) && !strings.EqualFold(string(a.Type), f.Type) {
		return false
	}
	if active(f.Size) && !strings.EqualFold(string(a.Size), f.Size) {
		return false
	}
	if active(f.Gender) && !strings.EqualFold(string(a.Gender), f.Gender) {
		return false
	}
	if f.SpecialNeeds && !a.SpecialNeeds {
		return false
	}
	if active(f.Age) && AgeBucket(a) != strings.ToLower(f.Age) {
		return false
	}
	if active(f.Location) && !containsFold(a.Location, f.Location) {
		return false
	}
	for _, want := range f.GoodWith {
		if !hasFold(a.GoodWith, want) {
			return false
		}
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		return containsFold(a.Name, q) || containsFold(a.Breed, q) || anyContainsFold(a.Personality, q)
	}
	return true
}

// AgeBucket: young < 2 años, adult 2 a 7, senior desde 8.
func AgeBucket(a animals.Animal) string {
	switch {
	case a.AgeYears < 2:
		return AgeYoung
	case a.AgeYears < 8:
		return AgeAdult
	default:
		return AgeSenior
	}
}

// Validate revisa los enums; "all" y vacío siempre son válidos.
func Validate(f Filters) error {
	if active(f.Type) && !animals.Type(strings.ToLower(f.Type)).Valid() {
		return fmt.Errorf("%w: type %q", ErrInvalidFilter, f.Type)
	}
	if active(f.Size) && !animals.Size(strings.ToLower(f.Size)).Valid() {
		return fmt.Errorf("%w: size %q", ErrInvalidFilter, f.Size)
	}
	if active(f.Gender) && !animals.Gender(strings.ToLower(f.Gender)).Valid() {
		return fmt.Errorf("%w: gender %q", ErrInvalidFilter, f.Gender)
	}
	switch strings.ToLower(f.Age) {
	case "", All, AgeYoung, AgeAdult, AgeSenior:
	default:
		return fmt.Errorf("%w: age %q", ErrInvalidFilter, f.Age)
	}
	if !ValidSort(f.SortBy) {
		return fmt.Errorf("%w: sort_by %q", ErrInvalidFilter, f.SortBy)
	}
	if f.SortOrder != "" && f.SortOrder != OrderAsc && f.SortOrder != OrderDesc {
		return fmt.Errorf("%w: sort_order %q", ErrInvalidFilter, f.SortOrder)
	}
	if f.Limit < 0 || f.Limit > MaxPageSize {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidFilter, MaxPageSize)
	}
	return nil
}

func ValidSort(sortBy string) bool {
	switch sortBy {
	case "", SortName, SortAge, SortDateAdded, SortAdoptionFee:
		return true
	}
	return false
}

func sortAnimals(items []animals.Animal, sortBy, order string) {
	desc := order != OrderAsc
	if order == "" && sortBy != SortDateAdded {
		desc = false
	}

	var less func(a, b animals.Animal) bool
	switch sortBy {
	case SortName:
		less = func(a, b animals.Animal) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortAge:
		less = func(a, b animals.Animal) bool { return a.AgeInMonths() < b.AgeInMonths() }
	case SortAdoptionFee:
		less = func(a, b animals.Animal) bool { return a.AdoptionFee < b.AdoptionFee }
	default:
		less = func(a, b animals.Animal) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func anyContainsFold(list []string, sub string) bool {
	for _, s := range list {
		if containsFold(s, sub) {
			return true
		}
	}
	return false
}

func hasFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}
