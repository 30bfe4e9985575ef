package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "eduledger/internal/auth/errors"
	"eduledger/internal/user"
	usererrors "eduledger/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error)
	Me(ctx context.Context, userID string) (user.UserResponse, error)
}

type service struct {
	userRepo user.Repository
	secret   []byte
}

func NewService(userRepo user.Repository) Service {
	return &service{
		userRepo: userRepo,
		secret:   []byte(os.Getenv("JWT_SECRET")),
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error) {
	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenPairResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	return s.issueTokens(u)
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error) {
	claims, err := s.parseToken(req.RefreshToken)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if kind, _ := claims["token_type"].(string); kind != "refresh" {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userID, _ := claims["user_id"].(string)
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
		}
		return TokenPairResponse{}, err
	}
	if !u.IsActive {
		return TokenPairResponse{}, autherrors.ErrUserInactive
	}

	return s.issueTokens(u)
}

func (s *service) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		}
		return user.UserResponse{}, err
	}

	return user.UserResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}, nil
}

func (s *service) issueTokens(u *user.User) (TokenPairResponse, error) {
	now := time.Now()

	access, err := s.signToken(jwt.MapClaims{
		"user_id":    u.ID.String(),
		"role":       u.Role,
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        now.Add(accessTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPairResponse{}, err
	}

	refresh, err := s.signToken(jwt.MapClaims{
		"user_id":    u.ID.String(),
		"token_type": "refresh",
		"iat":        now.Unix(),
		"exp":        now.Add(refreshTokenTTL).Unix(),
	})
	if err != nil {
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
		User: user.UserResponse{
			ID:       u.ID.String(),
			Name:     u.Name,
			Email:    u.Email,
			Role:     u.Role,
			IsActive: u.IsActive,
		},
	}, nil
}

func (s *service) signToken(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *service) parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
