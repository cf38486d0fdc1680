package services

import "github.com/ueldo/ueldo-backend/internal/models"

// VerificationThreshold is the competition count at which unverified organizers are prompted.
const VerificationThreshold = 2

// ShouldPromptVerification latches off once proof has been submitted.
func ShouldPromptVerification(competitionCount int, status models.VerificationStatus) bool {
	return competitionCount >= VerificationThreshold &&
		(status == models.VerificationNone || status == "")
}
