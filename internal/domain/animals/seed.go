package animals

import (
	"context"
	"fmt"
)

// demoAnimals alimenta el catálogo en dev (driver memory/sqlite).
var demoAnimals = []CreateInput{
	{
		Name: "Luna", Type: TypeDog, Breed: "Golden Retriever Mix", AgeYears: 2,
		Gender: GenderFemale, Size: SizeLarge, Location: "Lahore",
		Personality: []string{"Friendly", "Energetic", "Good with kids"},
		GoodWith:    []string{"kids", "dogs"}, AdoptionFee: 15000, Featured: true,
		Images: []string{"https://images.pexels.com/photos/1108099/pexels-photo-1108099.jpeg"},
	},
	{
		Name: "Shadow", Type: TypeCat, Breed: "Persian", AgeYears: 3,
		Gender: GenderMale, Size: SizeMedium, Location: "Karachi",
		Personality: []string{"Calm", "Affectionate", "Indoor"},
		GoodWith:    []string{"cats"}, AdoptionFee: 12000, Featured: true,
		Images: []string{"https://images.pexels.com/photos/104827/cat-pet-animal-domestic-104827.jpeg"},
	},
	{
		Name: "Buddy", Type: TypeDog, Breed: "Labrador", AgeYears: 1,
		Gender: GenderMale, Size: SizeLarge, Location: "Islamabad",
		Personality: []string{"Playful", "Loyal", "Training ready"},
		GoodWith:    []string{"kids", "dogs", "cats"}, AdoptionFee: 18000, Featured: true,
		Images: []string{"https://images.pexels.com/photos/1851164/pexels-photo-1851164.jpeg"},
	},
	{
		Name: "Mithu", Type: TypeBird, Breed: "Rose-ringed Parakeet", AgeMonths: 8,
		Gender: GenderMale, Size: SizeSmall, Location: "Lahore",
		Personality: []string{"Chatty", "Curious"}, AdoptionFee: 3000,
	},
	{
		Name: "Bhola", Type: TypeDog, Breed: "Desi", AgeYears: 9,
		Gender: GenderMale, Size: SizeMedium, Location: "Karachi",
		Personality: []string{"Gentle", "Sleepy"}, GoodWith: []string{"kids"},
		SpecialNeeds: true, SpecialNeedsDescription: "Three legs, needs soft bedding",
		AdoptionFee: 2000,
	},
}

// SeedDemo carga los animales de ejemplo. Devuelve cuántos insertó.
func SeedDemo(ctx context.Context, svc *Service) (int, error) {
	for i, in := range demoAnimals {
		if _, err := svc.Create(ctx, "seed", in); err != nil {
			return i, fmt.Errorf("seed %s: %w", in.Name, err)
		}
	}
	return len(demoAnimals), nil
}
