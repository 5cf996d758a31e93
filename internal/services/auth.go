package services

import (
  "context"
  "crypto/rand"
  "errors"
  "fmt"
  "math/big"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "golang.org/x/crypto/bcrypt"
  "gorm.io/gorm"

  "github.com/ainstein-org/ainstein-backend/internal/errordata"
  "github.com/ainstein-org/ainstein-backend/internal/logger"
  "github.com/ainstein-org/ainstein-backend/internal/normalization"
  "github.com/ainstein-org/ainstein-backend/internal/repos"
  "github.com/ainstein-org/ainstein-backend/internal/types"
  "github.com/ainstein-org/ainstein-backend/internal/utils"
)

const purposeEmailVerification = "email_verification"

type JWTClaims struct {
  jwt.RegisteredClaims
  Email string `json:"email,omitempty"`
}

type TokenPair struct {
  AccessToken  string `json:"accessToken"`
  RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
  RegisterUser(ctx context.Context, name string, email string, password string) (*types.User, error)
  VerifyEmail(ctx context.Context, email string, code string) error
  ResendVerificationCode(ctx context.Context, email string) error
  Login(ctx context.Context, email string, password string) (*TokenPair, error)
  Refresh(ctx context.Context, accessToken string, refreshToken string) (*TokenPair, error)
  Logout(ctx context.Context, accessToken string) error
  ParseToken(tokenString string) (*JWTClaims, error)
}

type authService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  userTokenRepo   repos.UserTokenRepo
  oneTimeCodeRepo repos.OneTimeCodeRepo
  emailService    EmailService
  jwtSecretKey    string
  accessTTL       time.Duration
  refreshTTL      time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  oneTimeCodeRepo repos.OneTimeCodeRepo,
  emailService EmailService,
  jwtSecretKey string,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  accessMinutes := utils.GetEnvAsInt("ACCESS_TOKEN_TTL_MINUTES", 60, log)
  refreshHours := utils.GetEnvAsInt("REFRESH_TOKEN_TTL_HOURS", 720, log)
  return &authService{
    db:              db,
    log:             serviceLog,
    userRepo:        userRepo,
    userTokenRepo:   userTokenRepo,
    oneTimeCodeRepo: oneTimeCodeRepo,
    emailService:    emailService,
    jwtSecretKey:    jwtSecretKey,
    accessTTL:       time.Duration(accessMinutes) * time.Minute,
    refreshTTL:      time.Duration(refreshHours) * time.Hour,
  }
}

func (as *authService) RegisterUser(ctx context.Context, name string, email string, password string) (*types.User, error) {
  as.log.Info("Starting RegisterUser now...")

  name = normalization.ParseInputString(name)
  email = normalization.ParseEmail(email)
  if name == "" || email == "" || password == "" {
    return nil, errordata.BadRequest("Name, email and password are required")
  }

  exists, err := as.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    return nil, errordata.Internal("Failed to check email", err)
  }
  if exists {
    return nil, errordata.BadRequest("An account with that email already exists")
  }

  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return nil, errordata.Internal("Failed to hash password", err)
  }

  var user *types.User
  var code string
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    created, cErr := as.userRepo.Create(ctx, tx, []*types.User{{
      Name:     name,
      Email:    email,
      Password: string(hashed),
    }})
    if cErr != nil {
      return cErr
    }
    user = created[0]

    var gErr error
    code, gErr = generateNumericCode(6)
    if gErr != nil {
      return gErr
    }
    _, cErr = as.oneTimeCodeRepo.Create(ctx, tx, &types.OneTimeCode{
      UserID:    user.ID,
      Code:      code,
      Purpose:   purposeEmailVerification,
      ExpiresAt: time.Now().Add(15 * time.Minute),
    })
    return cErr
  })
  if err != nil {
    return nil, errordata.Internal("Failed to register user", err)
  }

  // Registration is already committed; mailing the code is best effort and
  // the service itself is optional at startup.
  if as.emailService == nil {
    as.log.Warn("Email service not configured, skipping verification email", "email", user.Email)
  } else if mErr := as.emailService.SendVerificationCode(ctx, user.Email, user.Name, code); mErr != nil {
    as.log.Warn("Failed to send verification email", "error", mErr, "email", user.Email)
  }

  as.log.Info("RegisterUser completed successfully :)", "userID", user.ID)
  return user, nil
}

func (as *authService) VerifyEmail(ctx context.Context, email string, code string) error {
  as.log.Info("Starting VerifyEmail now...")

  email = normalization.ParseEmail(email)
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return errordata.Internal("Failed to fetch user", err)
  }
  if len(users) == 0 {
    return errordata.NotFound("User not found")
  }
  user := users[0]

  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if _, gErr := as.oneTimeCodeRepo.GetActive(ctx, tx, user.ID, purposeEmailVerification, code); gErr != nil {
      if errors.Is(gErr, gorm.ErrRecordNotFound) {
        return errordata.BadRequest("Invalid or expired verification code")
      }
      return errordata.Internal("Failed to check verification code", gErr)
    }
    user.EmailVerified = true
    if _, uErr := as.userRepo.Update(ctx, tx, user); uErr != nil {
      return errordata.Internal("Failed to mark email verified", uErr)
    }
    if dErr := as.oneTimeCodeRepo.FullDeleteByUserAndPurpose(ctx, tx, user.ID, purposeEmailVerification); dErr != nil {
      return errordata.Internal("Failed to clean up verification codes", dErr)
    }
    return nil
  })
}

func (as *authService) ResendVerificationCode(ctx context.Context, email string) error {
  as.log.Info("Starting ResendVerificationCode now...")

  email = normalization.ParseEmail(email)
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return errordata.Internal("Failed to fetch user", err)
  }
  if len(users) == 0 {
    return errordata.NotFound("User not found")
  }
  user := users[0]
  if user.EmailVerified {
    return errordata.BadRequest("Email is already verified")
  }

  code, err := generateNumericCode(6)
  if err != nil {
    return errordata.Internal("Failed to generate verification code", err)
  }
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if dErr := as.oneTimeCodeRepo.FullDeleteByUserAndPurpose(ctx, tx, user.ID, purposeEmailVerification); dErr != nil {
      return dErr
    }
    _, cErr := as.oneTimeCodeRepo.Create(ctx, tx, &types.OneTimeCode{
      UserID:    user.ID,
      Code:      code,
      Purpose:   purposeEmailVerification,
      ExpiresAt: time.Now().Add(15 * time.Minute),
    })
    return cErr
  })
  if err != nil {
    return errordata.Internal("Failed to store verification code", err)
  }
  if as.emailService == nil {
    return errordata.Internal("Email delivery is not configured", nil)
  }
  if mErr := as.emailService.SendVerificationCode(ctx, user.Email, user.Name, code); mErr != nil {
    return errordata.Internal("Failed to send verification email", mErr)
  }
  return nil
}

func (as *authService) Login(ctx context.Context, email string, password string) (*TokenPair, error) {
  as.log.Info("Starting Login now...")

  email = normalization.ParseEmail(email)
  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return nil, errordata.Internal("Failed to fetch user", err)
  }
  if len(users) == 0 {
    return nil, errordata.Unauthorized("Invalid email or password")
  }
  user := users[0]

  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    as.log.Warn("Password mismatch on login", "email", email)
    return nil, errordata.Unauthorized("Invalid email or password")
  }
  if !user.EmailVerified {
    return nil, errordata.Unauthorized("Email is not verified")
  }

  var pair *TokenPair
  err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    accessToken, gErr := as.generateAccessToken(user)
    if gErr != nil {
      as.log.Warn("Generate Access Token Error, Cannot proceed. Returning error.", "error", gErr)
      return fmt.Errorf("Generate Access Token Error: %w", gErr)
    }
    refreshToken := uuid.New().String()
    userToken := types.UserToken{
      UserID:       user.ID,
      AccessToken:  accessToken,
      RefreshToken: refreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, &userToken); cErr != nil {
      as.log.Warn("Create User Token Error, Cannot proceed. Returning error.", "error", cErr)
      return fmt.Errorf("Create User Token Error: %w", cErr)
    }
    pair = &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}
    return nil
  })
  if err != nil {
    return nil, errordata.Internal("Failed to log in", err)
  }
  as.log.Info("Login completed successfully :)", "userID", user.ID)
  return pair, nil
}

func (as *authService) Refresh(ctx context.Context, accessToken string, refreshToken string) (*TokenPair, error) {
  as.log.Info("Starting Refresh now...")

  if accessToken == "" || refreshToken == "" {
    return nil, errordata.Unauthorized("Missing tokens")
  }

  var pair *TokenPair
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
    if gErr != nil {
      if errors.Is(gErr, gorm.ErrRecordNotFound) {
        return errordata.Unauthorized("Invalid refresh token")
      }
      return errordata.Internal("Failed to fetch refresh token", gErr)
    }
    if existing.ExpiresAt.Before(time.Now()) {
      return errordata.Unauthorized("Refresh token expired")
    }
    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existing.UserID})
    if uErr != nil || len(users) == 0 {
      return errordata.Unauthorized("User no longer exists")
    }
    user := users[0]

    newAccessToken, aErr := as.generateAccessToken(user)
    if aErr != nil {
      return errordata.Internal("Failed to generate access token", aErr)
    }
    newRefreshToken := uuid.New().String()
    newUserToken := types.UserToken{
      UserID:       user.ID,
      AccessToken:  newAccessToken,
      RefreshToken: newRefreshToken,
      ExpiresAt:    time.Now().Add(as.refreshTTL),
    }
    // Drop the old row first so the unique index on access_token can never
    // collide with the replacement pair.
    if dErr := as.userTokenRepo.FullDeleteByAccessToken(ctx, tx, existing.AccessToken); dErr != nil {
      return errordata.Internal("Failed to remove old user token", dErr)
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, &newUserToken); cErr != nil {
      return errordata.Internal("Failed to create new user token", cErr)
    }
    pair = &TokenPair{AccessToken: newAccessToken, RefreshToken: newRefreshToken}
    return nil
  })
  if err != nil {
    return nil, errordata.From(err)
  }
  return pair, nil
}

func (as *authService) Logout(ctx context.Context, accessToken string) error {
  as.log.Info("Starting Logout now...")

  if accessToken == "" {
    return errordata.Unauthorized("Missing access token")
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    if err := as.userTokenRepo.FullDeleteByAccessToken(ctx, tx, accessToken); err != nil {
      as.log.Warn("Error deleting user token, Cannot proceed. Returning error.", "error", err)
      return errordata.Internal("Failed to log out", err)
    }
    return nil
  })
}

func (as *authService) ParseToken(tokenString string) (*JWTClaims, error) {
  claims := &JWTClaims{}
  parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return nil, fmt.Errorf("failed to parse token: %w", err)
  }
  if !parsed.Valid {
    return nil, fmt.Errorf("token is not valid")
  }
  return claims, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      // The jti keeps tokens minted within the same second distinct.
      ID:        uuid.New().String(),
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
    Email: user.Email,
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func generateNumericCode(digits int) (string, error) {
  max := big.NewInt(1)
  for i := 0; i < digits; i++ {
    max.Mul(max, big.NewInt(10))
  }
  n, err := rand.Int(rand.Reader, max)
  if err != nil {
    return "", err
  }
  return fmt.Sprintf("%0*d", digits, n), nil
}
