package models

import "time"

// Block owners. A block set belongs either to the company (applies to every
// worker) or to one specific worker (applies only to that worker).
const (
	OwnerCompany = "company"
	OwnerWorker  = "worker"
)

// BlockedDate removes availability for one whole calendar date.
type BlockedDate struct {
	ID        string    `bson:"id" json:"id"`
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD" in the owner's zone
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt,omitzero"`
}

// BlockedRange removes availability for a closed instant interval
// [StartAt, EndAt]. Both bounds are absolute instants; a range whose boundary
// touches a day's working window exactly still blocks that day.
type BlockedRange struct {
	ID        string    `bson:"id" json:"id"`
	StartAt   time.Time `bson:"start_at" json:"startDate"`
	EndAt     time.Time `bson:"end_at" json:"endDate"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	IsHoliday bool      `bson:"is_holiday,omitempty" json:"isHoliday,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt,omitzero"`
}

// BlockSet is the collection of blocking exceptions for one owner.
type BlockSet struct {
	OwnerKind string         `bson:"owner_kind" json:"ownerKind,omitempty"` // "company" or "worker"
	OwnerID   string         `bson:"owner_id" json:"ownerId,omitempty"`
	Dates     []BlockedDate  `bson:"dates" json:"dates"`
	Ranges    []BlockedRange `bson:"ranges" json:"ranges"`
	Version   int64          `bson:"version" json:"version,omitempty"`
}
