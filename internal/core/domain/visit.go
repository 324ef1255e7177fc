package domain

import "time"

// VisitStatus represents the lifecycle state of a visit.
type VisitStatus string

const (
	VisitCreated   VisitStatus = "Created"
	VisitCompleted VisitStatus = "Completed"
)

// visitTransitions defines the allowed state machine transitions.
// Completed is terminal.
var visitTransitions = map[VisitStatus][]VisitStatus{
	VisitCreated: {VisitCompleted},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	for _, allowed := range visitTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Visit is a field visit recorded by a Standard user at a store.
type Visit struct {
	ID        string      `json:"id" bson:"_id"`
	UserID    string      `json:"user_id" bson:"user_id"`
	StoreID   string      `json:"store_id" bson:"store_id"`
	VisitDate time.Time   `json:"visit_date" bson:"visit_date"`
	Status    VisitStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether userID owns the visit.
func (v *Visit) OwnedBy(userID string) bool {
	return v.UserID != "" && v.UserID == userID
}

// Photo is an image of a product taken during a visit. The image bytes live
// in object storage under ObjectKey; ownership follows the visit.
type Photo struct {
	ID          string    `json:"id" bson:"_id"`
	VisitID     string    `json:"visit_id" bson:"visit_id"`
	ProductID   string    `json:"product_id" bson:"product_id"`
	ObjectKey   string    `json:"object_key" bson:"object_key"`
	ContentType string    `json:"content_type" bson:"content_type"`
	SizeBytes   int64     `json:"size_bytes" bson:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at"`
}
