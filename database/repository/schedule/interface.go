// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository stores weekly templates and block sets. Every mutation
// bumps the owning document's version; derived availability is keyed by those
// versions, so a bump is what invalidates previously computed results.
type ScheduleRepository interface {
	EnsureIndexes(ctx context.Context) error
	GetCompanySchedule(ctx context.Context, companyID string) (*models.CompanySchedule, error)
	UpsertCompanySchedule(ctx context.Context, sched *models.CompanySchedule) (int64, error)
	GetBlockSet(ctx context.Context, ownerKind, ownerID string) (*models.BlockSet, error)
	AddBlockedDate(ctx context.Context, ownerKind, ownerID string, bd models.BlockedDate) (int64, error)
	AddBlockedRange(ctx context.Context, ownerKind, ownerID string, br models.BlockedRange) (int64, error)
	RemoveBlock(ctx context.Context, ownerKind, ownerID, blockID string) (int64, error)
}

type mongoScheduleRepo struct {
	schedules *mongo.Collection
	blocks    *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database("slotwise")
	return &mongoScheduleRepo{
		schedules: db.Collection("schedules"),
		blocks:    db.Collection("blocks"),
	}
}
