package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/varejotech/backoffice-api/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
)

// TokenKind distingue tokens de acesso de tokens de renovação
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// JWTClaims representa as claims personalizadas do token JWT
type JWTClaims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Role   string    `json:"role"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenPair agrupa o token de acesso e o de renovação emitidos juntos
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey         []byte
	expiration        time.Duration
	refreshExpiration time.Duration
}

// NewJWTService cria uma nova instância de JWTService
func NewJWTService() (*JWTService, error) {
	secretKey := os.Getenv("JWT_SECRET_KEY")
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}

	// Duração padrão de 24 horas se não for configurado
	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	expiration := 24 * time.Hour
	if expirationStr != "" {
		expirationHours, err := time.ParseDuration(expirationStr + "h")
		if err == nil {
			expiration = expirationHours
		}
	}

	return &JWTService{
		secretKey:         []byte(secretKey),
		expiration:        expiration,
		refreshExpiration: 7 * 24 * time.Hour,
	}, nil
}

// GenerateTokenPair gera um par de tokens (acesso e renovação) para o usuário
func (s *JWTService) GenerateTokenPair(u *user.User) (*TokenPair, error) {
	expirationTime := time.Now().Add(s.expiration)

	accessToken, err := s.generateToken(u, TokenAccess, expirationTime)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateToken(u, TokenRefresh, time.Now().Add(s.refreshExpiration))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expirationTime,
	}, nil
}

func (s *JWTService) generateToken(u *user.User, kind TokenKind, expiresAt time.Time) (string, error) {
	claims := JWTClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "backoffice-api",
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// ValidateRefreshToken valida um token de renovação e retorna as claims.
// Tokens de acesso não são aceitos como tokens de renovação.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*JWTClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenRefresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
