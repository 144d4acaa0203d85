package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Abdalla343/kushof/internal/apperrors"
	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/internal/repository"
)

// AuthService представляет сервис авторизации
type AuthService struct {
	userRepo      repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService создает новый сервис авторизации
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// AuthResult представляет результат регистрации или входа
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register регистрирует нового пользователя.
// Допустимые роли: teacher и student; по умолчанию student.
// Учителя создаются неподтвержденными до одобрения администратором.
func (s *AuthService) Register(name, email, password string, role models.UserRole) (*AuthResult, error) {
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleTeacher && role != models.RoleStudent {
		return nil, apperrors.New(apperrors.KindValidation, "Role must be either teacher or student")
	}

	// Проверяем, что email свободен
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsApproved:   false,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.KindConflict, "User already exists")
		}
		return nil, apperrors.Internal(err)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login проверяет учетные данные и выдает токен
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindUnauthenticated, "Invalid email or password")
		}
		return nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Invalid email or password")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken валидирует JWT токен и возвращает пользователя
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Not authorized, token failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Not authorized, token failed")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Not authorized, token failed")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Not authorized, token failed")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperrors.New(apperrors.KindUnauthenticated, "Not authorized, user not found")
	}

	return user, nil
}

// SetPrime выставляет премиум-флаг пользователя
func (s *AuthService) SetPrime(userID uuid.UUID, isPrime bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "User not found")
		}
		return nil, apperrors.Internal(err)
	}

	user.IsPrime = isPrime
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.Internal(err)
	}

	return user, nil
}

// generateJWT генерирует JWT токен для пользователя
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(s.jwtExpiration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
