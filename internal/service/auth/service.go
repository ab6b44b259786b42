package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/auth"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/company"
	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/database"
	"github.com/punchclock-io/punchclock-backend-go/internal/pkg/jwt"
	"github.com/punchclock-io/punchclock-backend-go/internal/repository/postgresql"
)

// Defaults applied to a company registered without explicit settings.
var defaultWeekendChoice = []string{"saturday", "sunday"}

const defaultWorkCapacity = 8.0

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	company.CompanyRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, companyRepository company.CompanyRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:                db,
		UserRepository:    userRepository,
		CompanyRepository: companyRepository,
		Service:           jwtService,
		JWTRepository:     jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. It creates the company and its
// owner account in one transaction and signs the owner in.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	usernameTaken, err := a.CompanyRepository.ExistsByUsername(ctx, req.CompanyUsername)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check company username: %w", err)
	}
	if usernameTaken {
		return auth.TokenResponse{}, company.ErrCompanyUsernameExists
	}

	emailTaken, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return auth.TokenResponse{}, user.ErrEmailExists
	}

	passHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		newCompany, err := a.CompanyRepository.Create(txCtx, company.Company{
			Name:                 req.CompanyName,
			Username:             req.CompanyUsername,
			DefaultWeekendChoice: defaultWeekendChoice,
			DefaultWorkCapacity:  defaultWorkCapacity,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		owner, err := a.UserRepository.Create(txCtx, user.User{
			Email:           req.Email,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			CompanyID:       newCompany.ID,
			Role:            "owner",
			Permission:      user.PermissionEmployer,
			PassHash:        passHash,
			IsActive:        true,
			WorkCapacity:    newCompany.DefaultWorkCapacity,
			EmploymentStart: time.Now().UTC(),
			WeekendChoice:   newCompany.DefaultWeekendChoice,
		})
		if err != nil {
			return fmt.Errorf("failed to create owner user: %w", err)
		}

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(owner.Email, owner.CompanyID, owner.Permission)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(owner.Email)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, owner.Email, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userData.PassHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.Email, userData.CompanyID, userData.Permission)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.Email)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.Email, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService. Every refresh token the user holds is
// revoked; the access token simply ages out.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return fmt.Errorf("email claim is missing or invalid")
	}
	return a.RevokeAllForUser(ctx, email)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	tok, err := jwtauth.VerifyToken(a.Service.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	tokenType, _ := tok.Get("type")
	if tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	emailClaim, _ := tok.Get("email")
	email, ok := emailClaim.(string)
	if !ok || email == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresIn, err := a.Service.GenerateAccessToken(userData.Email, userData.CompanyID, userData.Permission)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: accessToken, AccessTokenExpiresIn: expiresIn}, nil
}
