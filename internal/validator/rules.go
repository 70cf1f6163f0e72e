package validator

import (
	"log"

	"collegeskills_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-project-status", validateProjectStatus)
	mustRegister("is-proposal-status", validateProposalStatus)
	mustRegister("is-verification-decision", validateVerificationDecision)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}

	switch models.UserRole(value) {
	case models.UserRoleFreelancer, models.UserRoleClient, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateProjectStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ProjectStatus(value) {
	case models.ProjectStatusOpen, models.ProjectStatusInProgress,
		models.ProjectStatusCompleted, models.ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

func validateProposalStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ProposalStatus(value) {
	case models.ProposalStatusPending, models.ProposalStatusPaymentPending,
		models.ProposalStatusAccepted, models.ProposalStatusRejected:
		return true
	default:
		return false
	}
}

// Admin review decisions are a two-value subset of verification statuses.
func validateVerificationDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.VerificationStatus(value) {
	case models.VerificationStatusApproved, models.VerificationStatusRejected:
		return true
	default:
		return false
	}
}
