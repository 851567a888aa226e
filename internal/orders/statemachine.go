package orders

import (
	"strings"
	"time"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

// legacyStatusAliases maps status values older clients still send to their
// current equivalents.
var legacyStatusAliases = map[string]enums.OrderStatus{
	"printing": enums.OrderStatusProcessing,
}

// TransitionRequest is one status-update call against an order. All fields
// are optional; raw strings are normalized and validated by Apply.
type TransitionRequest struct {
	Status          *string
	ApprovalStatus  *string
	RejectionReason *string
	AdminNotes      *string
}

// Apply validates the requested transition against the order's current state
// and mutates the order in place. Orders in a terminal status accept no
// further status or approval changes. An approval decision forces the
// fulfillment status (approved starts production, rejected cancels) and
// stamps ReviewedAt; any status supplied alongside it is superseded.
func Apply(order *models.Order, req TransitionRequest, now time.Time) error {
	status, approval, err := normalize(req)
	if err != nil {
		return err
	}

	changesState := status != nil || approval != nil
	if changesState && order.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			"order is "+order.Status.String()+" and can no longer change state")
	}

	switch {
	case approval != nil:
		if err := applyApproval(order, *approval, req.RejectionReason, now); err != nil {
			return err
		}
	case status != nil:
		order.Status = *status
	}

	if req.AdminNotes != nil {
		order.AdminNotes = req.AdminNotes
	}
	return nil
}

func applyApproval(order *models.Order, approval enums.ApprovalStatus, reason *string, now time.Time) error {
	if order.ApprovalStatus.IsDecided() {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			"order review is already "+order.ApprovalStatus.String())
	}

	switch approval {
	case enums.ApprovalStatusApproved:
		order.ApprovalStatus = enums.ApprovalStatusApproved
		order.Status = enums.OrderStatusProcessing
	case enums.ApprovalStatusRejected:
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"rejection_reason": {"required when rejecting an order"},
			})
		}
		trimmed := strings.TrimSpace(*reason)
		order.ApprovalStatus = enums.ApprovalStatusRejected
		order.RejectionReason = &trimmed
		order.Status = enums.OrderStatusCancelled
	default:
		return pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			"approval_status": {"must be approved or rejected"},
		})
	}

	order.ReviewedAt = &now
	return nil
}

// normalize resolves raw status strings, folding legacy aliases and
// approval decisions sent through the status field.
func normalize(req TransitionRequest) (*enums.OrderStatus, *enums.ApprovalStatus, error) {
	var approval *enums.ApprovalStatus
	if req.ApprovalStatus != nil {
		parsed, err := enums.ParseApprovalStatus(*req.ApprovalStatus)
		if err != nil {
			return nil, nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"approval_status": {"must be one of pending_review, approved, rejected"},
			})
		}
		approval = &parsed
	}

	var status *enums.OrderStatus
	if req.Status != nil {
		raw := *req.Status
		if alias, ok := legacyStatusAliases[raw]; ok {
			status = &alias
		} else if decision, err := enums.ParseApprovalStatus(raw); err == nil && decision.IsDecided() {
			// Old clients sent the review decision through the status field.
			if approval == nil {
				approval = &decision
			}
		} else {
			parsed, err := enums.ParseOrderStatus(raw)
			if err != nil {
				return nil, nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
					"status": {"invalid status value"},
				})
			}
			status = &parsed
		}
	}

	return status, approval, nil
}
