// File: services/schedule/service.go
package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	scheduleRepo "slotwise/database/repository/schedule"
	"slotwise/models"
	"slotwise/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// resolvedCacheTTL bounds how long a memoized resolved-day stream may live.
// The version-qualified key already invalidates on mutation; the TTL only
// keeps dead keys from accumulating.
const resolvedCacheTTL = 10 * time.Minute

// AvailabilityService serves availability derived from stored schedules and
// applies schedule mutations. Reads follow snapshot-then-compute: schedule
// and block documents are fetched once per request, then the pure engine runs
// over that snapshot.
type AvailabilityService interface {
	WorkerAvailability(ctx context.Context, companyID, workerID, from string, days int) ([]models.ResolvedDay, error)
	WorkerBookingWindow(ctx context.Context, companyID, workerID string, req models.WorkRequest, horizonDays int) (models.BookingWindow, error)
	TeamBookingWindow(ctx context.Context, companyID string, team models.Team, req models.WorkRequest, horizonDays int) (models.BookingWindow, error)
	CompanyZone(ctx context.Context, companyID string) (string, error)
	PublishWeeklySchedule(ctx context.Context, companyID, zone string, weekly models.WeeklySchedule) (int64, error)
	AddBlockedDate(ctx context.Context, ownerKind, ownerID string, bd models.BlockedDate) (int64, error)
	AddBlockedRange(ctx context.Context, ownerKind, ownerID string, br models.BlockedRange) (int64, error)
	RemoveBlock(ctx context.Context, ownerKind, ownerID, blockID string) (int64, error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Repo  scheduleRepo.ScheduleRepository
	Cache *redis.Client    // optional; nil disables memoization
	Now   func() time.Time // defaults to time.Now
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type workerSnapshot struct {
	snap            Snapshot
	scheduleVersion int64
	companyVersion  int64
	personalVersion int64
}

func (s *DefaultAvailabilityService) loadSnapshot(ctx context.Context, companyID, workerID string) (workerSnapshot, error) {
	sched, err := s.Repo.GetCompanySchedule(ctx, companyID)
	if err != nil {
		return workerSnapshot{}, fmt.Errorf("failed to load company schedule: %w", err)
	}
	if sched == nil {
		return workerSnapshot{}, fmt.Errorf("no schedule published for company %s", companyID)
	}
	companyBlocks, err := s.Repo.GetBlockSet(ctx, models.OwnerCompany, companyID)
	if err != nil {
		return workerSnapshot{}, fmt.Errorf("failed to load company blocks: %w", err)
	}
	personalBlocks, err := s.Repo.GetBlockSet(ctx, models.OwnerWorker, workerID)
	if err != nil {
		return workerSnapshot{}, fmt.Errorf("failed to load worker blocks: %w", err)
	}
	return workerSnapshot{
		snap: Snapshot{
			Weekly:         sched.Weekly,
			CompanyBlocks:  *companyBlocks,
			PersonalBlocks: *personalBlocks,
			Zone:           sched.Zone,
		},
		scheduleVersion: sched.Version,
		companyVersion:  companyBlocks.Version,
		personalVersion: personalBlocks.Version,
	}, nil
}

// WorkerAvailability resolves a date range for one worker. Results are
// memoized in redis keyed by (owner, range, scheduleVersion, blockVersions);
// any schedule or block mutation bumps a version and thereby misses the key.
func (s *DefaultAvailabilityService) WorkerAvailability(ctx context.Context, companyID, workerID, from string, days int) ([]models.ResolvedDay, error) {
	ws, err := s.loadSnapshot(ctx, companyID, workerID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultHorizonDays
	}
	if from == "" {
		if from, _, err = ToCivil(s.now(), ws.snap.Zone); err != nil {
			return nil, err
		}
	}

	key := fmt.Sprintf("resolved:%s:%s:%s:%d:v%d.%d.%d",
		companyID, workerID, from, days, ws.scheduleVersion, ws.companyVersion, ws.personalVersion)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var out []models.ResolvedDay
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := ResolveRange(ws.snap, from, days)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if data, err := json.Marshal(out); err == nil {
			if err := s.Cache.Set(ctx, key, data, resolvedCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache resolved days", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return out, nil
}

// WorkerBookingWindow projects a work request onto one worker's stored
// schedule. Not memoized: the result depends on the current instant.
func (s *DefaultAvailabilityService) WorkerBookingWindow(ctx context.Context, companyID, workerID string, req models.WorkRequest, horizonDays int) (models.BookingWindow, error) {
	ws, err := s.loadSnapshot(ctx, companyID, workerID)
	if err != nil {
		return models.BookingWindow{}, err
	}
	return EarliestWindow(req, ws.snap.Resolver(), s.now(), ws.snap.Zone, horizonDays)
}

// TeamBookingWindow projects a work request onto a team sharing the company's
// template and company blocks, each member carrying their own exceptions.
func (s *DefaultAvailabilityService) TeamBookingWindow(ctx context.Context, companyID string, team models.Team, req models.WorkRequest, horizonDays int) (models.BookingWindow, error) {
	sched, err := s.Repo.GetCompanySchedule(ctx, companyID)
	if err != nil {
		return models.BookingWindow{}, fmt.Errorf("failed to load company schedule: %w", err)
	}
	if sched == nil {
		return models.BookingWindow{}, fmt.Errorf("no schedule published for company %s", companyID)
	}
	companyBlocks, err := s.Repo.GetBlockSet(ctx, models.OwnerCompany, companyID)
	if err != nil {
		return models.BookingWindow{}, fmt.Errorf("failed to load company blocks: %w", err)
	}

	resolvers := make(map[string]ResolveFunc, len(team.WorkerIDs))
	for _, workerID := range team.WorkerIDs {
		personalBlocks, err := s.Repo.GetBlockSet(ctx, models.OwnerWorker, workerID)
		if err != nil {
			return models.BookingWindow{}, fmt.Errorf("failed to load blocks for worker %s: %w", workerID, err)
		}
		snap := Snapshot{
			Weekly:         sched.Weekly,
			CompanyBlocks:  *companyBlocks,
			PersonalBlocks: *personalBlocks,
			Zone:           sched.Zone,
		}
		resolvers[workerID] = snap.Resolver()
	}
	return FindTeamWindow(req, team, resolvers, s.now(), sched.Zone, horizonDays)
}

// CompanyZone returns the IANA zone of a company's published schedule.
func (s *DefaultAvailabilityService) CompanyZone(ctx context.Context, companyID string) (string, error) {
	sched, err := s.Repo.GetCompanySchedule(ctx, companyID)
	if err != nil {
		return "", err
	}
	if sched == nil {
		return "", fmt.Errorf("no schedule published for company %s", companyID)
	}
	return sched.Zone, nil
}

// PublishWeeklySchedule validates and stores a company's weekly template.
func (s *DefaultAvailabilityService) PublishWeeklySchedule(ctx context.Context, companyID, zone string, weekly models.WeeklySchedule) (int64, error) {
	if _, err := LoadZone(zone); err != nil {
		return 0, err
	}
	if err := ValidateWeekly(weekly); err != nil {
		return 0, err
	}
	return s.Repo.UpsertCompanySchedule(ctx, &models.CompanySchedule{
		CompanyID: companyID,
		Zone:      zone,
		Weekly:    weekly,
	})
}

// AddBlockedDate validates and appends a single-date block.
func (s *DefaultAvailabilityService) AddBlockedDate(ctx context.Context, ownerKind, ownerID string, bd models.BlockedDate) (int64, error) {
	if err := validOwnerKind(ownerKind); err != nil {
		return 0, err
	}
	if _, _, _, err := ParseDate(bd.Date); err != nil {
		return 0, err
	}
	return s.Repo.AddBlockedDate(ctx, ownerKind, ownerID, bd)
}

// AddBlockedRange validates and appends an instant-range block.
func (s *DefaultAvailabilityService) AddBlockedRange(ctx context.Context, ownerKind, ownerID string, br models.BlockedRange) (int64, error) {
	if err := validOwnerKind(ownerKind); err != nil {
		return 0, err
	}
	if br.EndAt.Before(br.StartAt) {
		return 0, InvalidRangeError{Start: br.StartAt, End: br.EndAt}
	}
	return s.Repo.AddBlockedRange(ctx, ownerKind, ownerID, br)
}

// RemoveBlock deletes one block, date or range, by its id.
func (s *DefaultAvailabilityService) RemoveBlock(ctx context.Context, ownerKind, ownerID, blockID string) (int64, error) {
	if err := validOwnerKind(ownerKind); err != nil {
		return 0, err
	}
	if blockID == "" {
		return 0, fmt.Errorf("block id is required")
	}
	return s.Repo.RemoveBlock(ctx, ownerKind, ownerID, blockID)
}

func validOwnerKind(kind string) error {
	if kind != models.OwnerCompany && kind != models.OwnerWorker {
		return fmt.Errorf("unknown block owner kind %q", kind)
	}
	return nil
}
