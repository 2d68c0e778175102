// Package access is the capability check performed before every state-changing
// operation. Capabilities are "resource:action" strings; a grant of "resource:*"
// covers every action on the resource and "*:*" covers everything.
package access

import (
	"strings"

	"motofinance-backend/internal/domain/apperr"
)

type Capability string

const (
	wildcard = "*"

	CapSuperAdmin Capability = "*:*"

	CapInquiryAdvance  Capability = "inquiry:advance"
	CapInquiryView     Capability = "inquiry:view"
	CapInquiryCashSale Capability = "inquiry:cash_sale"

	CapLoanCreate  Capability = "loan:create"
	CapLoanView    Capability = "loan:view"
	CapLoanReview  Capability = "loan:review"
	CapLoanApprove Capability = "loan:approve"
	CapLoanReject  Capability = "loan:reject"

	CapAssetIdentify Capability = "asset:identify"
	CapAssetRelease  Capability = "asset:release"

	CapPaymentRecord    Capability = "payment:record"
	CapPaymentConfirm   Capability = "payment:confirm"
	CapPaymentReject    Capability = "payment:reject"
	CapPaymentReconcile Capability = "payment:reconcile"

	CapRecoveryInitiate Capability = "recovery:initiate"
	CapRecoveryComplete Capability = "recovery:complete"
)

func (c Capability) parse() (resource, action string) {
	parts := strings.SplitN(string(c), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Covers reports whether the granted capability c satisfies requested.
func (c Capability) Covers(requested Capability) bool {
	if c == CapSuperAdmin || c == requested {
		return true
	}
	res, act := c.parse()
	reqRes, _ := requested.parse()
	return res != "" && res == reqRes && act == wildcard
}

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleBranchManager   Role = "branch_manager"
	RoleSalesOfficer    Role = "sales_officer"
	RoleLoanOfficer     Role = "loan_officer"
	RoleCashier         Role = "cashier"
	RoleRecoveryOfficer Role = "recovery_officer"
)

// Policy maps roles to granted capabilities.
type Policy map[Role][]Capability

// DefaultPolicy is the role table used by the API.
func DefaultPolicy() Policy {
	return Policy{
		RoleAdmin: {CapSuperAdmin},
		RoleBranchManager: {
			"inquiry:*", "loan:*", "asset:*", "payment:*", "recovery:*",
		},
		RoleSalesOfficer: {
			CapInquiryAdvance, CapInquiryView, CapInquiryCashSale, CapLoanCreate, CapLoanView,
		},
		RoleLoanOfficer: {
			CapInquiryView, CapLoanCreate, CapLoanView, CapLoanReview, CapLoanReject, CapAssetIdentify,
		},
		RoleCashier: {
			CapLoanView, CapPaymentRecord, CapPaymentConfirm, CapPaymentReject, CapPaymentReconcile,
		},
		RoleRecoveryOfficer: {
			CapLoanView, CapRecoveryInitiate, CapRecoveryComplete, CapAssetRelease,
		},
	}
}

// Actor is the acting staff member as supplied by the identity provider.
type Actor struct {
	StaffID string
	Role    Role
}

// Authorize returns an apperr.ErrForbidden error unless the actor's role grants want.
func (p Policy) Authorize(a Actor, want Capability) error {
	if a.StaffID == "" {
		return apperr.Forbidden("no acting staff member")
	}
	for _, granted := range p[a.Role] {
		if granted.Covers(want) {
			return nil
		}
	}
	return apperr.Forbidden("role %q lacks %s", a.Role, want)
}
