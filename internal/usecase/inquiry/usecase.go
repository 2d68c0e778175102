package inquiry

import (
	"context"
	"strings"

	"motofinance-backend/internal/domain/apperr"
	"motofinance-backend/internal/domain/asset"
	"motofinance-backend/internal/domain/inquiry"
	"motofinance-backend/internal/domain/uow"
	"motofinance-backend/pkg/id"

	"go.uber.org/zap"
)

type Usecase struct {
	inquiries inquiry.Repository
	uow       uow.UnitOfWork
	log       *zap.Logger
}

func NewUsecase(inquiries inquiry.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{
		inquiries: inquiries,
		uow:       tx,
		log:       log.Named("inquiry"),
	}
}

// Submit records a public inquiry in status new.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*inquiry.Inquiry, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, apperr.Validation("full name and phone are required")
	}
	if in.SaleType != inquiry.SaleTypeCash && in.SaleType != inquiry.SaleTypeLoan {
		return nil, apperr.Validation("sale type must be cash or loan")
	}
	if in.EstimatedIncome.IsNegative() {
		return nil, apperr.Validation("estimated income must not be negative")
	}

	q := &inquiry.Inquiry{
		PublicID:        id.NewID32(),
		FullName:        strings.TrimSpace(in.FullName),
		Phone:           strings.TrimSpace(in.Phone),
		Email:           strings.TrimSpace(in.Email),
		ProductInterest: in.ProductInterest,
		ProductID:       in.ProductID,
		EstimatedIncome: in.EstimatedIncome,
		SaleType:        in.SaleType,
		BranchID:        in.BranchID,
		Notes:           in.Notes,
		Status:          inquiry.StatusNew,
	}
	if err := u.inquiries.Create(ctx, q); err != nil {
		return nil, err
	}
	u.log.Info("inquiry submitted", zap.String("inquiry_id", q.PublicID), zap.String("sale_type", string(q.SaleType)))
	return q, nil
}

func (u *Usecase) Get(ctx context.Context, publicID string) (*inquiry.Inquiry, error) {
	return u.inquiries.GetByPublicID(ctx, publicID)
}

// Advance applies a manual status change. Conversion is not reachable here.
func (u *Usecase) Advance(ctx context.Context, publicID, staffID string, to inquiry.Status, notes string) (*inquiry.Inquiry, error) {
	var out *inquiry.Inquiry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		q, err := r.Inquiries.GetByPublicIDForUpdate(ctx, publicID)
		if err != nil {
			return err
		}
		if q.Status.Terminal() {
			return inquiry.ErrTerminal
		}
		if !q.Status.CanAdvance(to) {
			return inquiry.ErrInvalidTransition
		}

		fields := map[string]any{"handled_by": staffID}
		if notes != "" {
			fields["notes"] = notes
			q.Notes = notes
		}
		if err := r.Inquiries.Transition(ctx, q.ID, []inquiry.Status{q.Status}, to, fields); err != nil {
			return err
		}
		q.Status = to
		q.HandledBy = &staffID
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteCashSale hands an available asset straight to a new client: the asset moves
// to transferred, the client is created linked to it and the inquiry is converted.
func (u *Usecase) CompleteCashSale(ctx context.Context, publicID, staffID string, in CashSaleInput) (*CashSaleResult, error) {
	if err := in.Client.Validate(); err != nil {
		return nil, err
	}
	if in.AssetID == "" {
		return nil, apperr.Validation("asset id is required")
	}

	var res *CashSaleResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		q, err := r.Inquiries.GetByPublicIDForUpdate(ctx, publicID)
		if err != nil {
			return err
		}
		if q.SaleType != inquiry.SaleTypeCash {
			return apperr.Precondition("inquiry is not a cash sale")
		}
		if q.Status.Terminal() {
			return inquiry.ErrTerminal
		}

		ref, err := r.Assets.GetByPublicID(ctx, in.AssetID)
		if err != nil {
			return err
		}
		a, err := r.Assets.GetByIDForUpdate(ctx, ref.ID)
		if err != nil {
			return err
		}
		if a.Status != asset.StatusAvailable {
			return asset.ErrNotAvailable
		}
		if err := r.Assets.Transition(ctx, a.ID, asset.StatusAvailable, asset.StatusTransferred); err != nil {
			return err
		}

		c := in.Client.NewClient(id.NewID32(), staffID, &a.ID)
		if c.BranchID == nil {
			c.BranchID = q.BranchID
		}
		if err := r.Clients.Create(ctx, c); err != nil {
			return err
		}

		err = r.Inquiries.Transition(ctx, q.ID, inquiry.Convertible, inquiry.StatusConverted, map[string]any{
			"client_id":  c.ID,
			"handled_by": staffID,
		})
		if err != nil {
			return err
		}
		q.Status = inquiry.StatusConverted
		q.ClientID = &c.ID
		q.HandledBy = &staffID

		res = &CashSaleResult{Inquiry: q, Client: c, AssetID: a.PublicID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("cash sale completed",
		zap.String("inquiry_id", publicID), zap.String("asset_id", res.AssetID), zap.String("client_id", res.Client.PublicID))
	return res, nil
}
