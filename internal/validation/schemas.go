package validation

import (
	"regexp"
	"strings"
)

// Móvil pakistaní: +92 / 0 opcional, luego 3 y 9 dígitos.
var PakistaniMobile = regexp.MustCompile(`^(\+92|0)?3[0-9]{9}$`)

// Opciones de enums compartidas con los formularios.
var (
	HousingTypes       = []string{"house", "apartment", "farm", "other"}
	FrequencyOptions   = []string{"weekly", "bi-weekly", "monthly", "event-based"}
	Weekdays           = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	RescueAnimalTypes  = []string{"dog", "cat", "bird", "livestock", "wildlife", "other"}
	EmergencyLevels    = []string{"critical", "urgent", "standard"}
	ContactPreferences = []string{"phone", "email", "whatsapp"}
	UrgencyLevels      = []string{"low", "medium", "high", "emergency"}
	MessageTypes       = []string{"general", "adoption", "volunteer", "donation", "rescue", "complaint"}
	DonationPurposes   = []string{"general", "medical", "food", "shelter", "emergency"}
	DonationTypes      = []string{"one-time", "monthly"}
	PaymentMethods     = []string{"jazzcash", "easypaisa", "bank_transfer", "stripe", "paypal"}
	VolunteerInterests = []string{"Animal care & feeding", "Dog walking & exercise", "Cat socialization", "Administrative tasks", "Event organization", "Photography", "Transportation", "Fundraising", "Social media", "Education & outreach"}
)

func oneOf(opts []string) string {
	return "oneof=" + strings.Join(opts, " ")
}

func isTrue(field string) func(Values) bool {
	return func(v Values) bool { return v.Bool(field) }
}

var Adoption = Schema{
	Name: "adoption",
	Fields: []Field{
		{Name: "animalId", Message: "Please choose an animal to adopt"},

		{Name: "fullName", Rules: "min=2", Message: "Full name is required"},
		{Name: "email", Rules: "email", Message: "Please enter a valid email address"},
		{Name: "phone", Rules: "min=10", Message: "Please enter a valid phone number"},
		{Name: "address", Rules: "min=10", Message: "Please provide your full address"},
		{Name: "age", Kind: Number, Rules: "min=18", Message: "You must be at least 18 years old"},
		{Name: "occupation", Rules: "min=2", Message: "Occupation is required"},

		{Name: "housingType", Rules: oneOf(HousingTypes), Message: "Please select a housing type"},
		{Name: "housingOwned", Kind: Bool, Message: "Please tell us whether you own your home"},
		{Name: "yardAvailable", Kind: Bool, Message: "Please tell us whether you have a yard"},
		{Name: "yardFenced", Kind: Bool, Message: "Please tell us whether your yard is fenced", When: isTrue("yardAvailable")},

		{Name: "petExperience", Rules: "min=20", Message: "Please describe your pet experience"},
		{Name: "currentPets", Optional: true},
		{Name: "householdMembers", Kind: Number, Rules: "min=1", Message: "At least one household member is required"},
		{Name: "childrenAges", Optional: true},
		{Name: "workSchedule", Rules: "min=10", Message: "Please describe your work schedule"},
		{Name: "travelFrequency", Optional: true},

		{Name: "exercisePlan", Rules: "min=20", Message: "Please describe your exercise plan"},
		{Name: "trainingCommitment", Kind: Bool, Message: "Please confirm your training commitment"},
		{Name: "veterinaryBudget", Kind: Number, Rules: "min=1000", Message: "Minimum budget should be Rs. 1000"},
		{Name: "emergencyContactName", Rules: "min=2", Message: "Emergency contact name is required"},
		{Name: "emergencyContactPhone", Rules: "min=10", Message: "Emergency contact phone is required"},

		{Name: "reference1Name", Rules: "min=2", Message: "Reference name is required"},
		{Name: "reference1Phone", Rules: "min=10", Message: "Reference phone is required"},
		{Name: "reference2Name", Rules: "min=2", Message: "Reference name is required"},
		{Name: "reference2Phone", Rules: "min=10", Message: "Reference phone is required"},
	},
}

// Pasos del wizard de adopción. animalId no está en ningún paso: lo fija
// el catálogo al abrir el formulario y se revalida en el submit.
var AdoptionSteps = [][]string{
	{"fullName", "email", "phone", "address", "age", "occupation"},
	{"housingType", "housingOwned", "yardAvailable", "yardFenced"},
	{"petExperience", "currentPets", "householdMembers", "childrenAges", "workSchedule", "travelFrequency"},
	{"exercisePlan", "trainingCommitment", "veterinaryBudget", "emergencyContactName", "emergencyContactPhone"},
	{"reference1Name", "reference1Phone", "reference2Name", "reference2Phone"},
}

var Volunteer = Schema{
	Name: "volunteer",
	Fields: []Field{
		{Name: "age", Kind: Number, Rules: "min=16,max=80", Message: "Invalid age",
			Messages: map[string]string{"min": "Must be at least 16 years old", "max": "Invalid age"}},
		{Name: "occupation", Optional: true},
		{Name: "emergencyContactName", Rules: "min=2", Message: "Emergency contact name is required"},
		{Name: "emergencyContactPhone", Rules: "min=10", Message: "Valid phone number required"},
		{Name: "interests", Kind: List, Rules: "min=1", Message: "Please select at least one interest"},
		{Name: "availabilityDays", Kind: List, Rules: "min=1,dive," + oneOf(Weekdays), Message: "Please select at least one day",
			Messages: map[string]string{"oneof": "Please choose days of the week"}},
		{Name: "availabilityHours", Rules: "min=1", Message: "Please specify your available hours"},
		{Name: "frequencyPreference", Rules: oneOf(FrequencyOptions), Message: "Please choose how often you can volunteer"},
		{Name: "animalExperience", Optional: true},
		{Name: "volunteerExperience", Optional: true},
		{Name: "referenceName", Rules: "min=2", Message: "Reference name is required"},
		{Name: "referencePhone", Rules: "min=10", Message: "Reference phone is required"},
		{Name: "backgroundCheckConsent", Kind: Bool, Rules: "eq=true", Message: "Background check consent is required"},
	},
}

var Rescue = Schema{
	Name: "rescue",
	Fields: []Field{
		{Name: "animalType", Rules: oneOf(RescueAnimalTypes), Message: "Please select the animal type"},
		{Name: "emergencyLevel", Rules: oneOf(EmergencyLevels), Message: "Please select the emergency level"},
		{Name: "locationAddress", Rules: "min=10", Message: "Please provide a detailed location"},
		{Name: "contactName", Rules: "min=2", Message: "Name is required"},
		{Name: "contactPhone", Pattern: PakistaniMobile, Message: "Please enter a valid Pakistani mobile number"},
		{Name: "contactEmail", Rules: "email", Message: "Please enter a valid email address"},
		{Name: "contactPreference", Rules: oneOf(ContactPreferences), Message: "Please choose how we should contact you"},
		{Name: "description", Rules: "min=20", Message: "Please provide more details about the situation"},
		{Name: "images", Kind: List, Optional: true, Rules: "max=5", Message: "You can upload up to 5 images"},
	},
}

var Contact = Schema{
	Name: "contact",
	Fields: []Field{
		{Name: "name", Rules: "min=2", Message: "Name must be at least 2 characters"},
		{Name: "email", Rules: "email", Message: "Please enter a valid email address"},
		{Name: "phone", Optional: true},
		{Name: "subject", Rules: "min=5", Message: "Subject must be at least 5 characters"},
		{Name: "message", Rules: "min=20", Message: "Message must be at least 20 characters"},
		{Name: "urgencyLevel", Rules: oneOf(UrgencyLevels), Message: "Please select an urgency level"},
		{Name: "messageType", Rules: oneOf(MessageTypes), Message: "Please select a message type"},
	},
}

var Donation = Schema{
	Name: "donation",
	Fields: []Field{
		{Name: "amount", Kind: Number, Rules: "min=100", Message: "Minimum donation amount is Rs. 100"},
		{Name: "donationType", Rules: oneOf(DonationTypes), Message: "Please choose one-time or monthly"},
		{Name: "purpose", Rules: oneOf(DonationPurposes), Message: "Please choose what your donation supports"},
		{Name: "paymentMethod", Rules: oneOf(PaymentMethods), Message: "Please select a payment method"},
		{Name: "donorName", Rules: "min=2", Message: "Please provide your name and email"},
		{Name: "donorEmail", Rules: "email", Message: "Please provide your name and email"},
		{Name: "donorPhone", Optional: true},
		{Name: "anonymous", Kind: Bool, Optional: true},
		{Name: "publicRecognition", Kind: Bool, Optional: true},
	},
}
