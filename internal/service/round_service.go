package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "sitewatch/internal/errors"
	"sitewatch/internal/model"
	"sitewatch/internal/repository"
)

// RoundService handles the round/report lifecycle: create, assign-list,
// detail resolution, report submission and amendment.
type RoundService interface {
	CreateRound(ctx context.Context, name string, operatorID, creatorID uint, scheduledDate time.Time, equipmentIDs []uint) (*model.Round, error)
	ListAssigned(ctx context.Context, operatorID uint) ([]repository.AssignedRound, error)
	GetRoundDetail(ctx context.Context, roundID uint) ([]repository.TerrainDetail, error)
	SubmitReport(ctx context.Context, roundID, operatorID uint, entries []model.ReportEntry, state model.ReportState) (*model.Report, error)
	AmendReport(ctx context.Context, oldReportID, roundID, modifierID uint, entries []model.ReportEntry) (*model.Report, error)
	ListReports(ctx context.Context) ([]repository.ReportRow, error)
}

type roundService struct {
	roundRepo   repository.RoundRepository
	terrainRepo repository.TerrainRepository
}

// NewRoundService creates a new round service.
func NewRoundService(roundRepo repository.RoundRepository, terrainRepo repository.TerrainRepository) RoundService {
	return &roundService{roundRepo: roundRepo, terrainRepo: terrainRepo}
}

// CreateRound persists a pending round with the target set stored as a
// JSON integer array.
func (s *roundService) CreateRound(ctx context.Context, name string, operatorID, creatorID uint, scheduledDate time.Time, equipmentIDs []uint) (*model.Round, error) {
	if equipmentIDs == nil {
		equipmentIDs = []uint{}
	}
	encoded, err := json.Marshal(equipmentIDs)
	if err != nil {
		return nil, fmt.Errorf("encode equipment ids: %w", err)
	}

	round := &model.Round{
		Name:          name,
		OperatorID:    operatorID,
		CreatorID:     creatorID,
		ScheduledDate: scheduledDate,
		Status:        model.RoundStatusPending,
		EquipmentIDs:  datatypes.JSON(encoded),
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}
	return round, nil
}

func (s *roundService) ListAssigned(ctx context.Context, operatorID uint) ([]repository.AssignedRound, error) {
	return s.roundRepo.ListAssigned(ctx, operatorID)
}

// GetRoundDetail resolves the stored target-ID set to full equipment
// rows ordered by zone. An empty set yields an empty list; a stored
// value that fails to parse is reported as corrupted data.
func (s *roundService) GetRoundDetail(ctx context.Context, roundID uint) ([]repository.TerrainDetail, error) {
	round, err := s.roundRepo.FindByID(ctx, roundID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRoundNotFound
		}
		return nil, fmt.Errorf("find round: %w", err)
	}

	ids, err := decodeEquipmentIDs(round.EquipmentIDs)
	if err != nil {
		return nil, apperrors.ErrCorruptedRoundData
	}

	return s.terrainRepo.FindDetailsByIDs(ctx, ids)
}

// SubmitReport inserts the report, marks the round completed and applies
// the per-equipment live updates in a single transaction. Submitting
// against an already completed round is a conflict.
func (s *roundService) SubmitReport(ctx context.Context, roundID, operatorID uint, entries []model.ReportEntry, state model.ReportState) (*model.Report, error) {
	if state == "" {
		state = model.ReportStateValid
	}

	encoded, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode report data: %w", err)
	}

	report := &model.Report{
		RoundID:    roundID,
		OperatorID: operatorID,
		Data:       datatypes.JSON(encoded),
		State:      state,
	}

	err = s.roundRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RoundRepository) error {
		round, err := txRepo.FindByIDForUpdate(ctx, roundID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrRoundNotFound
			}
			return fmt.Errorf("find round: %w", err)
		}
		if round.Status == model.RoundStatusCompleted {
			return apperrors.ErrRoundCompleted
		}

		if err := txRepo.CreateReport(ctx, report); err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		if err := txRepo.UpdateStatus(ctx, roundID, model.RoundStatusCompleted); err != nil {
			return fmt.Errorf("complete round: %w", err)
		}
		return applyEntries(ctx, txRepo, entries)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// AmendReport supersedes a prior report: the old row flips to obsolete,
// a corrected report is inserted as "modifie" and the equipment updates
// are re-applied from the new data. The old report is re-read under a
// row lock inside the transaction, so two concurrent amendments cannot
// both supersede the same report.
func (s *roundService) AmendReport(ctx context.Context, oldReportID, roundID, modifierID uint, entries []model.ReportEntry) (*model.Report, error) {
	encoded, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode report data: %w", err)
	}

	report := &model.Report{
		RoundID:    roundID,
		OperatorID: modifierID,
		Data:       datatypes.JSON(encoded),
		State:      model.ReportStateAmended,
	}

	err = s.roundRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.RoundRepository) error {
		old, err := txRepo.FindReportByIDForUpdate(ctx, oldReportID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.ErrReportNotFound
			}
			return fmt.Errorf("find report: %w", err)
		}
		if old.State == model.ReportStateObsolete {
			return apperrors.ErrReportObsolete
		}
		if old.RoundID != roundID {
			return apperrors.ErrReportNotFound
		}

		if err := txRepo.UpdateReportState(ctx, oldReportID, model.ReportStateObsolete); err != nil {
			return fmt.Errorf("obsolete report: %w", err)
		}
		if err := txRepo.CreateReport(ctx, report); err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		return applyEntries(ctx, txRepo, entries)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *roundService) ListReports(ctx context.Context) ([]repository.ReportRow, error) {
	return s.roundRepo.ListReports(ctx)
}

// applyEntries overwrites each answered equipment's live state:
// status "1" reads as OK, the value is parsed as a decimal when present.
func applyEntries(ctx context.Context, repo repository.RoundRepository, entries []model.ReportEntry) error {
	for _, entry := range entries {
		var liveValue *decimal.Decimal
		if entry.Value != "" {
			parsed, err := decimal.NewFromString(entry.Value)
			if err == nil {
				liveValue = &parsed
			}
		}
		liveBool := entry.Status == "1"

		if err := repo.UpdateEquipmentLive(ctx, entry.EquipmentID, liveBool, liveValue, entry.Comment); err != nil {
			return fmt.Errorf("update equipment %d: %w", entry.EquipmentID, err)
		}
	}
	return nil
}

// decodeEquipmentIDs accepts the canonical JSON array form and, for
// legacy rows, a doubly encoded JSON string wrapping that array.
func decodeEquipmentIDs(raw datatypes.JSON) ([]uint, error) {
	if len(raw) == 0 {
		return []uint{}, nil
	}

	var ids []uint
	if err := json.Unmarshal(raw, &ids); err == nil {
		return ids, nil
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode equipment ids: %w", err)
	}
	if err := json.Unmarshal([]byte(wrapped), &ids); err != nil {
		return nil, fmt.Errorf("decode equipment ids: %w", err)
	}
	return ids, nil
}
