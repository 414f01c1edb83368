package service

import (
	"context"
	"errors"

	"Aurora_Admin/internal/pkg"
	"Aurora_Admin/internal/repository/mysql"
	rds "Aurora_Admin/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	admins   *mysql.AdminRepository
	sessions *rds.AdminSessionRepository
}

func NewAuthService(admins *mysql.AdminRepository, sessions *rds.AdminSessionRepository) *AuthService {
	return &AuthService{admins: admins, sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*pkg.Pair, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("admin not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, err
	}
	// access token 入 redis，单点登录
	if err := s.sessions.AddAdminToken(ctx, admin.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, adminID uint64) error {
	return s.sessions.DeleteAdminToken(ctx, adminID)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	// 新 access 要同步进 redis，否则中间件比对不过
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AddAdminToken(ctx, claims.AdminID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}
