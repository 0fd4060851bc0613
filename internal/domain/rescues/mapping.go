package rescues

import (
	"time"

	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/ports/rowstore"
)

const Table = "rescue_requests"

const (
	colID                = "id"
	colReferenceNumber   = "reference_number"
	colPublicID          = "public_id"
	colAnimalType        = "animal_type"
	colEmergencyLevel    = "emergency_level"
	colLocationAddress   = "location_address"
	colCoordinates       = "location_coordinates"
	colContactName       = "contact_name"
	colContactPhone      = "contact_phone"
	colContactEmail      = "contact_email"
	colContactPreference = "contact_preference"
	colDescription       = "description"
	colImages            = "images"
	colStatus            = "status"
	colAssignedTo        = "assigned_to"
	colPriorityScore     = "priority_score"
	colCreatedBy         = "created_by"
	colCreatedAt         = "created_at"
	colUpdatedAt         = "updated_at"
)

func toRow(rr RescueRequest) rowstore.Row {
	images := rr.Images
	if images == nil {
		images = []string{}
	}
	r := rowstore.Row{
		colID:                rr.ID,
		colReferenceNumber:   rr.ReferenceNumber,
		colPublicID:          rr.PublicID,
		colAnimalType:        string(rr.AnimalType),
		colEmergencyLevel:    string(rr.EmergencyLevel),
		colLocationAddress:   rr.LocationAddress,
		colContactName:       rr.ContactName,
		colContactPhone:      rr.ContactPhone,
		colContactEmail:      rr.ContactEmail,
		colContactPreference: string(rr.ContactPreference),
		colDescription:       rr.Description,
		colImages:            images,
		colStatus:            string(rr.Status),
		colAssignedTo:        rr.AssignedTo,
		colPriorityScore:     rr.PriorityScore,
		colCreatedBy:         rr.CreatedBy,
		colCreatedAt:         rr.CreatedAt,
		colUpdatedAt:         rr.UpdatedAt,
	}
	if rr.Coordinates != nil {
		r[colCoordinates] = animals.CoordinatesValue(rr.Coordinates)
	}
	return r
}

func fromRow(r rowstore.Row) RescueRequest {
	return RescueRequest{
		ID:                r.String(colID),
		ReferenceNumber:   r.String(colReferenceNumber),
		PublicID:          r.String(colPublicID),
		AnimalType:        AnimalType(r.String(colAnimalType)),
		EmergencyLevel:    EmergencyLevel(r.String(colEmergencyLevel)),
		LocationAddress:   r.String(colLocationAddress),
		Coordinates:       animals.CoordinatesFromRow(r, colCoordinates),
		ContactName:       r.String(colContactName),
		ContactPhone:      r.String(colContactPhone),
		ContactEmail:      r.String(colContactEmail),
		ContactPreference: ContactPreference(r.String(colContactPreference)),
		Description:       r.String(colDescription),
		Images:            r.Strings(colImages),
		Status:            Status(r.String(colStatus)),
		AssignedTo:        r.String(colAssignedTo),
		PriorityScore:     r.Int(colPriorityScore),
		CreatedBy:         r.String(colCreatedBy),
		CreatedAt:         r.Time(colCreatedAt),
		UpdatedAt:         r.Time(colUpdatedAt),
	}
}

func patchRow(in UpdateInput, now time.Time) rowstore.Row {
	r := rowstore.Row{colUpdatedAt: now}
	if in.Status != nil {
		r[colStatus] = string(*in.Status)
	}
	if in.AssignedTo != nil {
		r[colAssignedTo] = *in.AssignedTo
	}
	if in.EmergencyLevel != nil {
		r[colEmergencyLevel] = string(*in.EmergencyLevel)
		r[colPriorityScore] = PriorityScore(*in.EmergencyLevel)
	}
	return r
}
