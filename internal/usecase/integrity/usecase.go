// Package integrity audits the asset/loan link invariants. It reports; it never repairs.
package integrity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/client"
	"motofinance-backend/internal/domain/loan"

	"go.uber.org/zap"
)

type Violation struct {
	AssetID string       `json:"asset_id"`
	Status  asset.Status `json:"asset_status"`
	LoanIDs []string     `json:"loan_ids,omitempty"`
	Problem string       `json:"problem"`
}

type Report struct {
	CheckedAt  time.Time   `json:"checked_at"`
	Scanned    int         `json:"scanned"`
	Violations []Violation `json:"violations"`
}

type Usecase struct {
	assets  asset.Repository
	loans   loan.Repository
	clients client.Repository
	log     *zap.Logger
	now     func() time.Time
}

func NewUsecase(assets asset.Repository, loans loan.Repository, clients client.Repository, log *zap.Logger) *Usecase {
	return &Usecase{
		assets:  assets,
		loans:   loans,
		clients: clients,
		log:     log.Named("integrity"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CheckAssetLinks verifies that every assigned asset backs exactly one open loan and that
// every transferred asset came from a completed loan or, with no loan at all, a cash sale
// to a linked client. Each violation is logged at error level.
func (u *Usecase) CheckAssetLinks(ctx context.Context) (Report, error) {
	rep := Report{CheckedAt: u.now(), Violations: []Violation{}}

	assets, err := u.assets.ListByStatus(ctx, asset.StatusAssigned, asset.StatusTransferred)
	if err != nil {
		return rep, err
	}
	for i := range assets {
		a := &assets[i]
		rep.Scanned++

		loans, err := u.loans.ListByAssetID(ctx, a.ID)
		if err != nil {
			return rep, err
		}
		var problem string
		switch a.Status {
		case asset.StatusAssigned:
			problem = checkAssigned(loans)
		case asset.StatusTransferred:
			problem, err = u.checkTransferred(ctx, a, loans)
			if err != nil {
				return rep, err
			}
		}
		if problem == "" {
			continue
		}

		v := Violation{AssetID: a.PublicID, Status: a.Status, Problem: problem}
		for _, l := range loans {
			v.LoanIDs = append(v.LoanIDs, l.PublicID)
		}
		rep.Violations = append(rep.Violations, v)
		u.log.Error("consistency violation",
			zap.String("asset_id", a.PublicID),
			zap.String("asset_status", string(a.Status)),
			zap.Strings("loan_ids", v.LoanIDs),
			zap.Error(apperr.Consistency("%s", problem)))
	}

	u.log.Info("asset link audit finished", zap.Int("scanned", rep.Scanned), zap.Int("violations", len(rep.Violations)))
	return rep, nil
}

func checkAssigned(loans []loan.Loan) string {
	open := 0
	for _, l := range loans {
		if l.Status.In(loan.Open...) {
			open++
		}
	}
	switch open {
	case 1:
		return ""
	case 0:
		return "assigned asset has no open loan"
	default:
		return fmt.Sprintf("assigned asset is held by %d open loans", open)
	}
}

func (u *Usecase) checkTransferred(ctx context.Context, a *asset.Asset, loans []loan.Loan) (string, error) {
	completed := false
	for _, l := range loans {
		if l.Status.In(loan.Open...) {
			return "transferred asset still has open loan " + l.PublicID, nil
		}
		if l.Status == loan.StatusCompleted {
			completed = true
		}
	}
	switch {
	case completed:
		return "", nil
	case len(loans) > 0:
		return "transferred asset has no completed loan", nil
	}
	// no loan at all: only a cash sale transfers an asset
	_, err := u.clients.GetByAssetID(ctx, a.ID)
	if errors.Is(err, client.ErrNotFound) {
		return "transferred asset has neither a loan nor a cash-sale client", nil
	}
	return "", err
}
