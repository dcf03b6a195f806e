// File: database/repository/schedule/schedule_mongo.go
package scheduleRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotwise/models"
)

func (r *mongoScheduleRepo) GetCompanySchedule(ctx context.Context, companyID string) (*models.CompanySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sched models.CompanySchedule
	err := r.schedules.FindOne(ctx, bson.M{"company_id": companyID}).Decode(&sched)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &sched, nil
}

func (r *mongoScheduleRepo) UpsertCompanySchedule(ctx context.Context, sched *models.CompanySchedule) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"company_id": sched.CompanyID}
	update := bson.M{
		"$set": bson.M{
			"zone":       sched.Zone,
			"weekly":     sched.Weekly,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"version": int64(1)},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var updated models.CompanySchedule
	if err := r.schedules.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return 0, err
	}
	return updated.Version, nil
}

func (r *mongoScheduleRepo) GetBlockSet(ctx context.Context, ownerKind, ownerID string) (*models.BlockSet, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bs models.BlockSet
	err := r.blocks.FindOne(ctx, bson.M{"owner_kind": ownerKind, "owner_id": ownerID}).Decode(&bs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// An owner with no recorded exceptions has an empty block set.
			return &models.BlockSet{OwnerKind: ownerKind, OwnerID: ownerID}, nil
		}
		return nil, err
	}
	return &bs, nil
}

func (r *mongoScheduleRepo) AddBlockedDate(ctx context.Context, ownerKind, ownerID string, bd models.BlockedDate) (int64, error) {
	if bd.ID == "" {
		bd.ID = uuid.New().String()
	}
	bd.CreatedAt = time.Now().UTC()
	return r.pushBlock(ctx, ownerKind, ownerID, bson.M{"$push": bson.M{"dates": bd}})
}

func (r *mongoScheduleRepo) AddBlockedRange(ctx context.Context, ownerKind, ownerID string, br models.BlockedRange) (int64, error) {
	if br.ID == "" {
		br.ID = uuid.New().String()
	}
	br.CreatedAt = time.Now().UTC()
	return r.pushBlock(ctx, ownerKind, ownerID, bson.M{"$push": bson.M{"ranges": br}})
}

func (r *mongoScheduleRepo) RemoveBlock(ctx context.Context, ownerKind, ownerID, blockID string) (int64, error) {
	return r.pushBlock(ctx, ownerKind, ownerID, bson.M{
		"$pull": bson.M{
			"dates":  bson.M{"id": blockID},
			"ranges": bson.M{"id": blockID},
		},
	})
}

func (r *mongoScheduleRepo) pushBlock(ctx context.Context, ownerKind, ownerID string, update bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update["$inc"] = bson.M{"version": int64(1)}
	filter := bson.M{"owner_kind": ownerKind, "owner_id": ownerID}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var updated models.BlockSet
	if err := r.blocks.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return 0, err
	}
	return updated.Version, nil
}
