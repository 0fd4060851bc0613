package animals

import (
	"time"

	"animal-rescue/internal/ports/rowstore"
)

const Table = "animals"

// Columnas snake_case: solo este archivo las conoce.
const (
	colID                      = "id"
	colName                    = "name"
	colType                    = "type"
	colBreed                   = "breed"
	colAgeYears                = "age_years"
	colAgeMonths               = "age_months"
	colGender                  = "gender"
	colSize                    = "size"
	colWeight                  = "weight"
	colColor                   = "color"
	colPersonality             = "personality"
	colMedicalHistory          = "medical_history"
	colSpecialNeeds            = "special_needs"
	colSpecialNeedsDescription = "special_needs_description"
	colGoodWith                = "good_with"
	colImages                  = "images"
	colLocation                = "location"
	colCoordinates             = "location_coordinates"
	colAdoptionFee             = "adoption_fee"
	colStatus                  = "status"
	colDateRescued             = "date_rescued"
	colStory                   = "story"
	colFeatured                = "featured"
	colCreatedBy               = "created_by"
	colCreatedAt               = "created_at"
	colUpdatedAt               = "updated_at"
)

func toRow(a Animal) rowstore.Row {
	r := rowstore.Row{
		colID:                      a.ID,
		colName:                    a.Name,
		colType:                    string(a.Type),
		colBreed:                   a.Breed,
		colAgeYears:                a.AgeYears,
		colAgeMonths:               a.AgeMonths,
		colGender:                  string(a.Gender),
		colSize:                    string(a.Size),
		colColor:                   a.Color,
		colPersonality:             nonNil(a.Personality),
		colMedicalHistory:          a.MedicalHistory,
		colSpecialNeeds:            a.SpecialNeeds,
		colSpecialNeedsDescription: a.SpecialNeedsDescription,
		colGoodWith:                nonNil(a.GoodWith),
		colImages:                  nonNil(a.Images),
		colLocation:                a.Location,
		colAdoptionFee:             a.AdoptionFee,
		colStatus:                  string(a.Status),
		colStory:                   a.Story,
		colFeatured:                a.Featured,
		colCreatedBy:               a.CreatedBy,
		colCreatedAt:               a.CreatedAt,
		colUpdatedAt:               a.UpdatedAt,
	}
	if a.Weight != nil {
		r[colWeight] = *a.Weight
	}
	if a.Coordinates != nil {
		r[colCoordinates] = coordinatesValue(*a.Coordinates)
	}
	if a.DateRescued != nil {
		r[colDateRescued] = *a.DateRescued
	}
	return r
}

func fromRow(r rowstore.Row) Animal {
	a := Animal{
		ID:                      r.String(colID),
		Name:                    r.String(colName),
		Type:                    Type(r.String(colType)),
		Breed:                   r.String(colBreed),
		AgeYears:                r.Int(colAgeYears),
		AgeMonths:               r.Int(colAgeMonths),
		Gender:                  Gender(r.String(colGender)),
		Size:                    Size(r.String(colSize)),
		Color:                   r.String(colColor),
		Personality:             r.Strings(colPersonality),
		MedicalHistory:          r.String(colMedicalHistory),
		SpecialNeeds:            r.Bool(colSpecialNeeds),
		SpecialNeedsDescription: r.String(colSpecialNeedsDescription),
		GoodWith:                r.Strings(colGoodWith),
		Images:                  r.Strings(colImages),
		Location:                r.String(colLocation),
		AdoptionFee:             r.Int(colAdoptionFee),
		Status:                  Status(r.String(colStatus)),
		Story:                   r.String(colStory),
		Featured:                r.Bool(colFeatured),
		CreatedBy:               r.String(colCreatedBy),
		CreatedAt:               r.Time(colCreatedAt),
		UpdatedAt:               r.Time(colUpdatedAt),
	}
	if w, ok := r.FloatOK(colWeight); ok {
		a.Weight = &w
	}
	a.Coordinates = CoordinatesFromRow(r, colCoordinates)
	if t, ok := r.TimeOK(colDateRescued); ok {
		a.DateRescued = &t
	}
	return a
}

// CoordinatesFromRow lee {lat,lng} de una columna JSON. Lo reusa rescues.
func CoordinatesFromRow(r rowstore.Row, col string) *Coordinates {
	obj := r.Object(col)
	if obj == nil {
		return nil
	}
	sub := rowstore.Row(obj)
	lat, okLat := sub.FloatOK("lat")
	lng, okLng := sub.FloatOK("lng")
	if !okLat || !okLng {
		return nil
	}
	return &Coordinates{Lat: lat, Lng: lng}
}

func coordinatesValue(c Coordinates) map[string]any {
	return map[string]any{"lat": c.Lat, "lng": c.Lng}
}

// CoordinatesValue es la forma de fila de Coordinates.
func CoordinatesValue(c *Coordinates) any {
	if c == nil {
		return nil
	}
	return coordinatesValue(*c)
}

func patchRow(in UpdateInput, now time.Time) rowstore.Row {
	r := rowstore.Row{colUpdatedAt: now}
	setIf(r, colName, in.Name)
	if in.Type != nil {
		r[colType] = string(*in.Type)
	}
	setIf(r, colBreed, in.Breed)
	setIf(r, colAgeYears, in.AgeYears)
	setIf(r, colAgeMonths, in.AgeMonths)
	if in.Gender != nil {
		r[colGender] = string(*in.Gender)
	}
	if in.Size != nil {
		r[colSize] = string(*in.Size)
	}
	setIf(r, colWeight, in.Weight)
	setIf(r, colColor, in.Color)
	if in.Personality != nil {
		r[colPersonality] = nonNil(*in.Personality)
	}
	setIf(r, colMedicalHistory, in.MedicalHistory)
	setIf(r, colSpecialNeeds, in.SpecialNeeds)
	setIf(r, colSpecialNeedsDescription, in.SpecialNeedsDescription)
	if in.GoodWith != nil {
		r[colGoodWith] = nonNil(*in.GoodWith)
	}
	if in.Images != nil {
		r[colImages] = nonNil(*in.Images)
	}
	setIf(r, colLocation, in.Location)
	if in.Coordinates != nil {
		r[colCoordinates] = coordinatesValue(*in.Coordinates)
	}
	setIf(r, colAdoptionFee, in.AdoptionFee)
	if in.Status != nil {
		r[colStatus] = string(*in.Status)
	}
	setIf(r, colDateRescued, in.DateRescued)
	setIf(r, colStory, in.Story)
	setIf(r, colFeatured, in.Featured)
	return r
}

func setIf[T any](r rowstore.Row, col string, v *T) {
	if v != nil {
		r[col] = *v
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
