package http

import (
	"motofinance-backend/internal/adapter/middleware"
	"motofinance-backend/internal/domain/access"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health    *Handler
	Inquiries *InquiryHandler
	Loans     *LoanHandler
	Payments  *PaymentHandler
	Recovery  *RecoveryHandler
}

// Register mounts the public routes and the staff routes. Every staff route checks the
// capability first, then runs staffMW (idempotency).
func Register(e *echo.Echo, h Handlers, policy access.Policy, staffMW ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.POST("/inquiries", h.Inquiries.Submit)

	can := func(c access.Capability) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{middleware.RequireCapability(policy, c)}, staffMW...)
	}

	e.GET("/inquiries/:inquiry_id", h.Inquiries.Get, can(access.CapInquiryView)...)
	e.POST("/inquiries/:inquiry_id/advance", h.Inquiries.Advance, can(access.CapInquiryAdvance)...)
	e.POST("/inquiries/:inquiry_id/cash-sale", h.Inquiries.CashSale, can(access.CapInquiryCashSale)...)

	e.POST("/loans/quote", h.Loans.Quote, can(access.CapLoanView)...)
	e.POST("/loans", h.Loans.Create, can(access.CapLoanCreate)...)
	e.GET("/loans/at-risk", h.Recovery.AtRisk, can(access.CapLoanView)...)
	e.GET("/loans/:loan_id", h.Loans.Get, can(access.CapLoanView)...)
	e.GET("/loans/:loan_id/schedule", h.Loans.Schedule, can(access.CapLoanView)...)
	e.POST("/loans/:loan_id/review", h.Loans.StartReview, can(access.CapLoanReview)...)
	e.POST("/loans/:loan_id/kyc", h.Loans.CompleteKYC, can(access.CapLoanReview)...)
	e.POST("/loans/:loan_id/asset-identifiers", h.Loans.RecordAssetIdentifiers, can(access.CapAssetIdentify)...)
	e.POST("/loans/:loan_id/approve", h.Loans.Approve, can(access.CapLoanApprove)...)
	e.POST("/loans/:loan_id/reject", h.Loans.Reject, can(access.CapLoanReject)...)

	e.GET("/loans/:loan_id/payments", h.Payments.ListByLoan, can(access.CapLoanView)...)
	e.POST("/loans/:loan_id/payments", h.Payments.Record, can(access.CapPaymentRecord)...)
	e.POST("/payments/:payment_id/confirm", h.Payments.Confirm, can(access.CapPaymentConfirm)...)
	e.POST("/payments/:payment_id/reject", h.Payments.Reject, can(access.CapPaymentReject)...)
	e.POST("/payments/:payment_id/reconcile", h.Payments.Reconcile, can(access.CapPaymentReconcile)...)

	e.POST("/loans/:loan_id/recovery", h.Recovery.Initiate, can(access.CapRecoveryInitiate)...)
	e.POST("/loans/:loan_id/recovered", h.Recovery.MarkRecovered, can(access.CapRecoveryComplete)...)
	e.POST("/assets/:asset_id/release", h.Recovery.ReleaseAsset, can(access.CapAssetRelease)...)
}
