package validation

import (
	"math"
	"testing"
)

func validAdoption() Values {
	return Values{
		"animalId":              "a1",
		"fullName":              "Ayesha Khan",
		"email":                 "ayesha@example.com",
		"phone":                 "03001234567",
		"address":               "House 12, Street 4, Lahore",
		"age":                   float64(30),
		"occupation":            "Engineer",
		"housingType":           "house",
		"housingOwned":          true,
		"yardAvailable":         false,
		"petExperience":         "Raised two dogs from puppies over ten years",
		"householdMembers":      float64(3),
		"workSchedule":          "Nine to five, remote on Fridays",
		"exercisePlan":          "Two walks a day and weekend hikes in the hills",
		"trainingCommitment":    true,
		"veterinaryBudget":      float64(5000),
		"emergencyContactName":  "Bilal",
		"emergencyContactPhone": "03007654321",
		"reference1Name":        "Sana",
		"reference1Phone":       "03111111111",
		"reference2Name":        "Omar",
		"reference2Phone":       "03222222222",
	}
}

func TestAdoption_ValidRecord(t *testing.T) {
	res := Adoption.Validate(validAdoption())
	if !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
}

func TestAdoption_AgeBoundary(t *testing.T) {
	v := validAdoption()
	v["age"] = float64(17)
	res := Adoption.ValidateFields(v, []string{"age"})
	if res.Errors["age"] != "You must be at least 18 years old" {
		t.Fatalf("unexpected errors %v", res.Errors)
	}

	v["age"] = float64(18)
	if res := Adoption.ValidateFields(v, []string{"age"}); !res.Valid() {
		t.Fatalf("18 should be accepted: %v", res.Errors)
	}
}

func TestAdoption_NonNumericAgeHasDistinctMessage(t *testing.T) {
	v := validAdoption()
	v["age"] = "abc"
	res := Adoption.ValidateFields(v, []string{"age"})
	if res.Errors["age"] != msgNumber {
		t.Fatalf("expected number message, got %q", res.Errors["age"])
	}

	v["age"] = "25"
	if res := Adoption.ValidateFields(v, []string{"age"}); !res.Valid() {
		t.Fatalf("numeric string should be accepted: %v", res.Errors)
	}
}

func TestNumberFields_RejectInfAndNaN(t *testing.T) {
	fields := []string{"age", "householdMembers", "veterinaryBudget"}
	for _, raw := range []any{"Inf", "-inf", "infinity", "NaN", math.Inf(1), math.NaN()} {
		v := validAdoption()
		for _, f := range fields {
			v[f] = raw
		}
		res := Adoption.ValidateFields(v, fields)
		for _, f := range fields {
			if res.Errors[f] != msgNumber {
				t.Fatalf("%v in %s: expected %q, got %q", raw, f, msgNumber, res.Errors[f])
			}
		}
		if got := v.Int("age"); got != 0 {
			t.Fatalf("Int(%v) = %d, want 0", raw, got)
		}
	}

	d := Values{"amount": "Inf", "donationType": "one-time", "purpose": "general", "paymentMethod": "jazzcash", "donorName": "Ali", "donorEmail": "ali@example.com"}
	if res := Donation.Validate(d); res.Errors["amount"] != msgNumber {
		t.Fatalf("expected number message for amount, got %v", res.Errors)
	}
}

func TestAdoption_VeterinaryBudgetMinimum(t *testing.T) {
	v := validAdoption()
	v["veterinaryBudget"] = float64(999)
	res := Adoption.Validate(v)
	if res.Errors["veterinaryBudget"] != "Minimum budget should be Rs. 1000" || len(res.Errors) != 1 {
		t.Fatalf("unexpected errors %v", res.Errors)
	}
}

func TestAdoption_YardFencedOnlyWhenYardAvailable(t *testing.T) {
	v := validAdoption()
	if res := Adoption.ValidateFields(v, []string{"yardFenced"}); !res.Valid() {
		t.Fatalf("yardFenced must be skipped without a yard: %v", res.Errors)
	}

	v["yardAvailable"] = true
	res := Adoption.ValidateFields(v, []string{"yardFenced"})
	if _, ok := res.Errors["yardFenced"]; !ok {
		t.Fatalf("yardFenced required when yard available")
	}

	v["yardFenced"] = false
	if res := Adoption.ValidateFields(v, []string{"yardFenced"}); !res.Valid() {
		t.Fatalf("false is an answer: %v", res.Errors)
	}
}

func TestValidateFields_OnlyNamedFields(t *testing.T) {
	res := Adoption.ValidateFields(Values{}, AdoptionSteps[0])
	if len(res.Errors) != len(AdoptionSteps[0]) {
		t.Fatalf("expected errors only for step 1 fields, got %v", res.Errors)
	}
	if _, ok := res.Errors["housingType"]; ok {
		t.Fatalf("step 2 field reported in step 1")
	}
}

func TestAdoptionSteps_CoverSchemaExceptAnimalID(t *testing.T) {
	seen := map[string]bool{}
	for _, step := range AdoptionSteps {
		for _, name := range step {
			if _, ok := Adoption.Field(name); !ok {
				t.Fatalf("step field %q not in schema", name)
			}
			seen[name] = true
		}
	}
	for _, name := range Adoption.Names() {
		if !seen[name] && name != "animalId" {
			t.Fatalf("schema field %q not in any step", name)
		}
	}
}

func TestVolunteer_AgeMessagesAndConsent(t *testing.T) {
	v := Values{"age": float64(15)}
	if got := Volunteer.ValidateFields(v, []string{"age"}).Errors["age"]; got != "Must be at least 16 years old" {
		t.Fatalf("unexpected min message %q", got)
	}
	v["age"] = float64(81)
	if got := Volunteer.ValidateFields(v, []string{"age"}).Errors["age"]; got != "Invalid age" {
		t.Fatalf("unexpected max message %q", got)
	}

	v["backgroundCheckConsent"] = false
	if got := Volunteer.ValidateFields(v, []string{"backgroundCheckConsent"}).Errors["backgroundCheckConsent"]; got != "Background check consent is required" {
		t.Fatalf("unexpected consent message %q", got)
	}
	v["backgroundCheckConsent"] = true
	if res := Volunteer.ValidateFields(v, []string{"backgroundCheckConsent"}); !res.Valid() {
		t.Fatalf("consent true should pass: %v", res.Errors)
	}
}

func TestVolunteer_ListFields(t *testing.T) {
	v := Values{
		"interests":        []any{},
		"availabilityDays": []any{"Monday", "Funday"},
	}
	res := Volunteer.ValidateFields(v, []string{"interests", "availabilityDays"})
	if res.Errors["interests"] != "Please select at least one interest" {
		t.Fatalf("unexpected interests error %q", res.Errors["interests"])
	}
	if res.Errors["availabilityDays"] != "Please choose days of the week" {
		t.Fatalf("unexpected days error %q", res.Errors["availabilityDays"])
	}
}

func TestRescue_PhonePattern(t *testing.T) {
	cases := map[string]bool{
		"03001234567":   true,
		"+923001234567": true,
		"3001234567":    true,
		"04001234567":   false,
		"0300123456":    false,
		"hello":         false,
	}
	for phone, ok := range cases {
		res := Rescue.ValidateFields(Values{"contactPhone": phone}, []string{"contactPhone"})
		if res.Valid() != ok {
			t.Fatalf("phone %q: valid=%v want %v (%v)", phone, res.Valid(), ok, res.Errors)
		}
	}
}

func TestRescue_ImagesCap(t *testing.T) {
	v := Values{"images": []any{"1", "2", "3", "4", "5", "6"}}
	if res := Rescue.ValidateFields(v, []string{"images"}); res.Valid() {
		t.Fatalf("expected more than 5 images to fail")
	}
	if res := Rescue.ValidateFields(Values{}, []string{"images"}); !res.Valid() {
		t.Fatalf("images are optional: %v", res.Errors)
	}
}

func TestContact_OptionalPhoneStillAcceptsValue(t *testing.T) {
	v := Values{
		"name":         "Ali",
		"email":        "ali@example.com",
		"subject":      "Question",
		"message":      "I would like to know more about fostering.",
		"urgencyLevel": "medium",
		"messageType":  "general",
	}
	if res := Contact.Validate(v); !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	v["email"] = "not-an-email"
	v["subject"] = "Hey"
	res := Contact.Validate(v)
	if len(res.Errors) != 2 {
		t.Fatalf("expected email and subject errors, got %v", res.Errors)
	}
}

func TestDonation_MinimumAmount(t *testing.T) {
	v := Values{"amount": float64(99)}
	if got := Donation.ValidateFields(v, []string{"amount"}).Errors["amount"]; got != "Minimum donation amount is Rs. 100" {
		t.Fatalf("unexpected %q", got)
	}
	v["amount"] = float64(100)
	if res := Donation.ValidateFields(v, []string{"amount"}); !res.Valid() {
		t.Fatalf("100 should pass: %v", res.Errors)
	}
}

func TestValues_MergeAndClone(t *testing.T) {
	base := Values{"a": "1", "b": []any{"x"}}
	merged := base.Merge(Values{"a": nil, "c": true})

	if _, ok := merged["a"]; ok {
		t.Fatalf("nil should delete key")
	}
	if !merged.Bool("c") || merged.Strings("b")[0] != "x" {
		t.Fatalf("unexpected merge %v", merged)
	}
	if base.String("a") != "1" {
		t.Fatalf("merge mutated base")
	}
}

func TestValues_BlankStringIsMissing(t *testing.T) {
	res := Contact.ValidateFields(Values{"name": "   "}, []string{"name"})
	if res.Errors["name"] != "Name must be at least 2 characters" {
		t.Fatalf("unexpected %v", res.Errors)
	}
}
