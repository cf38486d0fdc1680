package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ueldo/ueldo-backend/internal/models"
	"github.com/ueldo/ueldo-backend/internal/store"
)

type IdentityService struct {
	repo store.Repository
}

func NewIdentityService(repo store.Repository) *IdentityService {
	return &IdentityService{repo: repo}
}

// Authenticate resolves phone to a user, creating one with no role on first
// contact, and binds it to the session.
func (s *IdentityService) Authenticate(ctx context.Context, sess Session, phone string) (*models.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	user, err := s.repo.Users().FindByPhone(ctx, phone)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "user logged in", "action", "auth.login", "user_id", user.ID.String())
	case errors.Is(err, store.ErrNotFound):
		user, err = s.signup(ctx, phone)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	sess.SetUserID(user.ID)
	return user, nil
}

func (s *IdentityService) signup(ctx context.Context, phone string) (*models.User, error) {
	user := &models.User{
		ID:                 uuid.New(),
		Phone:              phone,
		Role:               models.RoleUnset,
		VerificationStatus: models.VerificationNone,
	}
	if err := s.repo.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// lost a race with a concurrent first login for the same phone
			return s.repo.Users().FindByPhone(ctx, phone)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	slog.InfoContext(ctx, "user signed up", "action", "auth.signup", "user_id", user.ID.String())
	return user, nil
}

// CurrentUser resolves the session binding. A binding to a user that no longer
// exists clears the session and is reported as ErrUnauthenticated.
func (s *IdentityService) CurrentUser(ctx context.Context, sess Session) (*models.User, error) {
	id, ok := sess.UserID()
	if !ok {
		return nil, ErrUnauthenticated
	}
	user, err := s.repo.Users().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "session references missing user", "user_id", id.String())
			sess.Clear()
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// Route is RouteByRole applied to whatever the session currently resolves to.
func (s *IdentityService) Route(ctx context.Context, sess Session) (Destination, error) {
	user, err := s.CurrentUser(ctx, sess)
	if errors.Is(err, ErrUnauthenticated) {
		return DestinationLogin, nil
	}
	if err != nil {
		return DestinationLogin, err
	}
	return RouteByRole(user), nil
}

// SetRole assigns organizer or participant. Repeating the same role is a no-op.
func (s *IdentityService) SetRole(ctx context.Context, userID uuid.UUID, role string) (*models.User, error) {
	r, ok := models.ParseRole(role)
	if !ok {
		return nil, ErrInvalidRole
	}
	user, err := s.repo.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	if user.Role == r {
		return user, nil
	}
	if err := s.repo.Users().Update(ctx, userID, map[string]interface{}{"role": r}); err != nil {
		return nil, mapNotFound(err, ErrUserNotFound)
	}
	user.Role = r
	slog.InfoContext(ctx, "role set", "action", "role.set", "user_id", userID.String(), "role", string(r))
	return user, nil
}

func parseOrganizerType(s string) (models.OrganizerType, error) {
	switch t := models.OrganizerType(strings.TrimSpace(s)); t {
	case models.OrganizerClub, models.OrganizerIndividual:
		return t, nil
	default:
		return "", fmt.Errorf("%w: organizer type must be Club or Individual", ErrInvalidInput)
	}
}

func (s *IdentityService) SaveOrganizerType(ctx context.Context, userID uuid.UUID, orgType string) error {
	t, err := parseOrganizerType(orgType)
	if err != nil {
		return err
	}
	if err := s.repo.Users().Update(ctx, userID, map[string]interface{}{"organizer_type": t}); err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	return nil
}

// SubmitVerification records the organizer type and, when a document was
// attached, stores its key and marks verification as submitted. An empty
// orgType leaves the stored type alone.
func (s *IdentityService) SubmitVerification(ctx context.Context, userID uuid.UUID, orgType, proofKey string) error {
	fields := map[string]interface{}{}
	if strings.TrimSpace(orgType) != "" {
		t, err := parseOrganizerType(orgType)
		if err != nil {
			return err
		}
		fields["organizer_type"] = t
	}
	if proofKey != "" {
		fields["proof_doc"] = proofKey
		fields["verification_status"] = models.VerificationSubmitted
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.repo.Users().Update(ctx, userID, fields); err != nil {
		return mapNotFound(err, ErrUserNotFound)
	}
	if proofKey != "" {
		slog.InfoContext(ctx, "verification submitted", "action", "verification.submit", "user_id", userID.String())
	}
	return nil
}

// Logout never fails.
func (s *IdentityService) Logout(sess Session) {
	sess.Clear()
}
