package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Claims 签发的 JWT 载荷
type Claims struct {
    UserID   int64  `json:"uid"`
    Username string `json:"username"`
    Role     string `json:"role"`
    jwt.RegisteredClaims
}

// AuthService 登录认证：校验口令、签发管理端 JWT
type AuthService interface {
    Login(ctx context.Context, username, password string) (string, *model.User, error)
}

type authService struct {
    users    repository.UserRepository
    recorder *ActivityRecorder
    secret   []byte
    ttl      time.Duration
    now      func() time.Time
}

// NewAuthService 创建认证服务；recorder 可为 nil（不记录登录活动）
func NewAuthService(users repository.UserRepository, recorder *ActivityRecorder, secret string, ttl time.Duration) AuthService {
    if ttl <= 0 {
        ttl = 24 * time.Hour
    }
    return &authService{users: users, recorder: recorder, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
    user, err := s.users.FindByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return "", nil, ErrInvalidCredentials
        }
        return "", nil, fmt.Errorf("login lookup: %w", err)
    }
    if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
        return "", nil, ErrInvalidCredentials
    }

    now := s.now()
    claims := Claims{
        UserID:   user.ID,
        Username: user.Username,
        Role:     user.Role,
        RegisteredClaims: jwt.RegisteredClaims{
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
        },
    }
    token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
    if err != nil {
        return "", nil, fmt.Errorf("sign token: %w", err)
    }

    if s.recorder != nil {
        s.recorder.Enqueue(&model.Activity{
            Type:       model.ActivityUserLogin,
            Title:      fmt.Sprintf("%s logged in", user.Username),
            UserID:     &user.ID,
            EntityType: "USER",
            EntityID:   &user.ID,
        })
    }
    return token, user, nil
}

// ParseToken 校验并解析 JWT；中间件使用
func ParseToken(tokenString string, secret string) (*Claims, error) {
    claims := &Claims{}
    token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
        }
        return []byte(secret), nil
    })
    if err != nil {
        return nil, err
    }
    if !token.Valid {
        return nil, errors.New("invalid token")
    }
    return claims, nil
}
