package entity

import "time"

// UniversityFields are the writable columns of a university. Every field is
// optional: nil means absent (stored as NULL), never an empty object.
// The same shape doubles as a partial update where only non-nil fields are applied.
type UniversityFields struct {
	PhotoURL            *string        `json:"photoUrl"`
	Name                *LocalizedText `json:"name"`
	Description         *LocalizedText `json:"description"`
	Specials            *LocalizedText `json:"specials"`
	Financing           *LocalizedText `json:"financing"`
	Duration            *LocalizedText `json:"duration"`
	ApplicationDeadline *string        `json:"applicationDeadline"` // YYYY-MM-DD
	Gender              *LocalizedText `json:"gender"`
	Age                 *int           `json:"age"`
	Others              *LocalizedText `json:"others"`
	Medicine            *LocalizedText `json:"medicine"`
	Salary              *LocalizedText `json:"salary"`
	Dormitory           *LocalizedText `json:"dormitory"`
	Rewards             *LocalizedText `json:"rewards"`
	AdditionalOthers    *LocalizedText `json:"additionalOthers"`
	OfficialLink        *string        `json:"officialLink"`
}

// University is a directory record. It owns its ratings (cascade delete).
type University struct {
	ID int64 `json:"id"`
	UniversityFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Merge applies the non-nil fields of patch onto f.
func (f *UniversityFields) Merge(patch UniversityFields) {
	if patch.PhotoURL != nil {
		f.PhotoURL = patch.PhotoURL
	}
	if patch.Name != nil {
		f.Name = patch.Name
	}
	if patch.Description != nil {
		f.Description = patch.Description
	}
	if patch.Specials != nil {
		f.Specials = patch.Specials
	}
	if patch.Financing != nil {
		f.Financing = patch.Financing
	}
	if patch.Duration != nil {
		f.Duration = patch.Duration
	}
	if patch.ApplicationDeadline != nil {
		f.ApplicationDeadline = patch.ApplicationDeadline
	}
	if patch.Gender != nil {
		f.Gender = patch.Gender
	}
	if patch.Age != nil {
		f.Age = patch.Age
	}
	if patch.Others != nil {
		f.Others = patch.Others
	}
	if patch.Medicine != nil {
		f.Medicine = patch.Medicine
	}
	if patch.Salary != nil {
		f.Salary = patch.Salary
	}
	if patch.Dormitory != nil {
		f.Dormitory = patch.Dormitory
	}
	if patch.Rewards != nil {
		f.Rewards = patch.Rewards
	}
	if patch.AdditionalOthers != nil {
		f.AdditionalOthers = patch.AdditionalOthers
	}
	if patch.OfficialLink != nil {
		f.OfficialLink = patch.OfficialLink
	}
}

// MutationResult reports how many rows an update or delete touched.
type MutationResult struct {
	Affected int64 `json:"affected"`
}
