package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	appErrors "github.com/noah-isme/schoolops-api/pkg/errors"
)

// IdentityService maps verified token claims to the student or teacher behind them.
// Ownership checks rely on this record, never on ids supplied in the request.
type IdentityService struct {
	uow    UnitOfWork
	logger *zap.Logger
}

// NewIdentityService constructs the identity resolver.
func NewIdentityService(uow UnitOfWork, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{uow: uow, logger: logger}
}

// Resolve loads the principal for claims. Administrators resolve without a lookup.
// A token whose user no longer exists, or whose role disagrees with the stored user, is forbidden.
func (s *IdentityService) Resolve(ctx context.Context, claims *models.JWTClaims) (*models.Principal, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if claims.Role == models.RoleAdmin || claims.Role == models.RoleSuperAdmin {
		return &models.Principal{UserID: userID, Role: claims.Role}, nil
	}
	if err != nil || userID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token carries no user id")
	}

	user, err := s.uow.Repos().Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "user no longer exists")
		}
		return nil, storageErr(err, "failed to load user")
	}
	if user.Role != claims.Role {
		s.logger.Warn("token role differs from stored role",
			zap.Int64("user_id", userID),
			zap.String("token_role", string(claims.Role)),
			zap.String("stored_role", string(user.Role)),
		)
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role mismatch")
	}
	return &models.Principal{UserID: user.ID, Role: user.Role, StudentID: user.StudentID, TeacherID: user.TeacherID}, nil
}
