package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-rescue/internal/adapters/storage/memory"
	"animal-rescue/internal/ports/rowstore"
)

// recordingStore guarda la última query para verificar qué se envió al backend.
type recordingStore struct {
	*memory.RowStore
	selects []rowstore.Query
	patches []rowstore.Row
}

func (s *recordingStore) Select(ctx context.Context, q rowstore.Query) ([]rowstore.Row, error) {
	s.selects = append(s.selects, q)
	return s.RowStore.Select(ctx, q)
}

func (s *recordingStore) Update(ctx context.Context, table, id string, patch rowstore.Row) (rowstore.Row, error) {
	s.patches = append(s.patches, patch)
	return s.RowStore.Update(ctx, table, id, patch)
}

func newTestService(t *testing.T) (*Service, *recordingStore) {
	t.Helper()
	store := &recordingStore{RowStore: memory.NewRowStore()}
	svc := NewService(store, nil)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	return svc, store
}

func mustCreate(t *testing.T, svc *Service, in CreateInput) Animal {
	t.Helper()
	a, err := svc.Create(context.Background(), "staff-1", in)
	if err != nil {
		t.Fatalf("create %s: %v", in.Name, err)
	}
	return a
}

func TestList_OnlyAvailableAndFilters(t *testing.T) {
	svc, store := newTestService(t)
	mustCreate(t, svc, CreateInput{Name: "Luna", Type: TypeDog, Gender: GenderFemale, Size: SizeLarge, Breed: "Labrador"})
	mustCreate(t, svc, CreateInput{Name: "Shadow", Type: TypeCat, Gender: GenderMale, Size: SizeMedium, Breed: "Persian"})
	mustCreate(t, svc, CreateInput{Name: "Max", Type: TypeDog, Gender: GenderMale, Size: SizeLarge, Status: StatusAdopted})

	items, err := svc.List(context.Background(), ListFilter{Type: "dog", Size: "all"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Luna" {
		t.Fatalf("expected only available dog Luna, got %+v", items)
	}

	last := store.selects[len(store.selects)-1]
	if len(last.Where) != 2 || last.Where[0].Column != "status" || last.Where[1].Column != "type" {
		t.Fatalf("unexpected where: %+v", last.Where)
	}
	if last.OrderBy != "created_at" || last.Ascending {
		t.Fatalf("expected default created_at desc, got %s asc=%v", last.OrderBy, last.Ascending)
	}
}

func TestList_SearchNameOrBreedCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, CreateInput{Name: "Luna", Type: TypeDog, Gender: GenderFemale, Size: SizeLarge, Breed: "Labrador"})
	mustCreate(t, svc, CreateInput{Name: "Labby", Type: TypeCat, Gender: GenderMale, Size: SizeSmall})
	mustCreate(t, svc, CreateInput{Name: "Shadow", Type: TypeCat, Gender: GenderMale, Size: SizeMedium, Breed: "Persian"})

	items, err := svc.List(context.Background(), ListFilter{Query: "LAB", SortBy: "name", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Labby" || items[1].Name != "Luna" {
		t.Fatalf("unexpected result %+v", items)
	}
}

func TestList_InvalidEnumFailsWithoutQuery(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.List(context.Background(), ListFilter{Type: "dragon"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	_, err = svc.List(context.Background(), ListFilter{SortBy: "weight"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for sort, got %v", err)
	}
	if len(store.selects) != 0 {
		t.Fatalf("no query should reach the backend, got %d", len(store.selects))
	}
}

func TestFeatured_LimitAndAvailability(t *testing.T) {
	svc, _ := newTestService(t)
	for i := 0; i < 8; i++ {
		mustCreate(t, svc, CreateInput{Name: "F", Type: TypeDog, Gender: GenderMale, Size: SizeSmall, Featured: true})
	}
	mustCreate(t, svc, CreateInput{Name: "Gone", Type: TypeDog, Gender: GenderMale, Size: SizeSmall, Featured: true, Status: StatusAdopted})

	items, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(items) != FeaturedLimit {
		t.Fatalf("expected %d, got %d", FeaturedLimit, len(items))
	}
	for _, a := range items {
		if a.Status != StatusAvailable {
			t.Fatalf("featured must be available, got %s", a.Status)
		}
	}
}

func TestGetByID_FoundAndNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	a := mustCreate(t, svc, CreateInput{
		Name: "Luna", Type: TypeDog, Gender: GenderFemale, Size: SizeLarge,
		GoodWith:    []string{"kids"},
		Coordinates: &Coordinates{Lat: 31.5, Lng: 74.3},
	})

	got, found, err := svc.GetByID(context.Background(), a.ID)
	if err != nil || !found {
		t.Fatalf("expected found, got found=%v err=%v", found, err)
	}
	if got.Name != "Luna" || got.Coordinates == nil || got.Coordinates.Lat != 31.5 || got.GoodWith[0] != "kids" {
		t.Fatalf("row mapping lost data: %+v", got)
	}

	_, found, err = svc.GetByID(context.Background(), "missing")
	if err != nil || found {
		t.Fatalf("expected not found without error, got found=%v err=%v", found, err)
	}
}

func TestUpdate_StampsUpdatedAtEvenForEmptyPatch(t *testing.T) {
	svc, store := newTestService(t)
	a := mustCreate(t, svc, CreateInput{Name: "Luna", Type: TypeDog, Gender: GenderFemale, Size: SizeLarge})

	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.UpdatedAt.After(a.UpdatedAt) {
		t.Fatalf("updated_at not refreshed: before=%v after=%v", a.UpdatedAt, updated.UpdatedAt)
	}
	if len(store.patches) != 1 || len(store.patches[0]) != 1 {
		t.Fatalf("expected patch with only updated_at, got %v", store.patches)
	}
}

func TestUpdate_PartialFieldsAndNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	a := mustCreate(t, svc, CreateInput{Name: "Luna", Type: TypeDog, Gender: GenderFemale, Size: SizeLarge, AdoptionFee: 100})

	status := StatusPending
	updated, err := svc.Update(context.Background(), a.ID, UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusPending || updated.AdoptionFee != 100 || updated.Name != "Luna" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := svc.Update(context.Background(), "missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	bad := Status("sold")
	if _, err := svc.Update(context.Background(), a.ID, UpdateInput{Status: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Create(context.Background(), "", CreateInput{Name: " ", Type: TypeDog, Gender: GenderMale, Size: SizeSmall}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name")
	}
	if _, err := svc.Create(context.Background(), "", CreateInput{Name: "X", Type: "dragon", Gender: GenderMale, Size: SizeSmall}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad type")
	}
}

func TestSeedDemo(t *testing.T) {
	svc, _ := newTestService(t)
	n, err := SeedDemo(context.Background(), svc)
	if err != nil || n != len(demoAnimals) {
		t.Fatalf("seed: n=%d err=%v", n, err)
	}
	featured, _ := svc.Featured(context.Background())
	if len(featured) != 3 {
		t.Fatalf("expected 3 featured demo animals, got %d", len(featured))
	}
}
