package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"nightfly_backend/internal/gateway"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrOTPCooldown     = errors.New("an OTP was sent recently, please wait before retrying")
	ErrInvalidOTP      = errors.New("invalid or expired OTP")
	ErrTokenGeneration = errors.New("failed to generate token")
)

const (
	otpDigits = 6
	// MaxOTPAttempts is how many verifications a single code allows, right or wrong.
	MaxOTPAttempts = 5
)

// --- Data Transfer Objects (DTOs) ---

// OTPRequest DTO
type OTPRequest struct {
	Mobile string `json:"mobile" binding:"required,mobile"`
}

// OTPResponse DTO. ProviderReply is the SMS provider's text, unchanged.
type OTPResponse struct {
	Message       string `json:"message"`
	ProviderReply string `json:"providerReply,omitempty"`
}

// VerifyOTPRequest DTO
type VerifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required,mobile"`
	OTP    string `json:"otp" binding:"required,len=6,numeric"`
}

// AuthResponse DTO
type AuthResponse struct {
	Mobile      string    `json:"mobile"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	NewUser     bool      `json:"newUser"`
}

// --- AuthService Interface ---
type AuthService interface {
	RequestOTP(ctx context.Context, req OTPRequest) (*OTPResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error)
}

// OTPSettings controls code lifetime and resend pacing.
type OTPSettings struct {
	TTL            time.Duration
	ResendCooldown time.Duration
}

// --- authService Implementation ---
type authService struct {
	otpRepo  repositories.OTPRepository
	userRepo repositories.UserRepository
	sms      gateway.SMSSender
	tokens   *utils.TokenService
	settings OTPSettings
	now      func() time.Time
	newCode  func() (string, error)
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(otpRepo repositories.OTPRepository, userRepo repositories.UserRepository, sms gateway.SMSSender, tokens *utils.TokenService, settings OTPSettings) AuthService {
	return &authService{
		otpRepo:  otpRepo,
		userRepo: userRepo,
		sms:      sms,
		tokens:   tokens,
		settings: settings,
		now:      time.Now,
		newCode:  generateOTP,
	}
}

// generateOTP returns a uniformly random code in [100000, 999999].
func generateOTP() (string, error) {
	lower := int64(1)
	for i := 1; i < otpDigits; i++ {
		lower *= 10
	}
	n, err := rand.Int(rand.Reader, big.NewInt(9*lower))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+lower), nil
}

// RequestOTP issues a fresh code for mobile and relays it over SMS. Only the bcrypt
// hash is kept, for OTPSettings.TTL.
func (s *authService) RequestOTP(ctx context.Context, req OTPRequest) (*OTPResponse, error) {
	mobile := strings.TrimSpace(req.Mobile)
	if !utils.IsValidMobile(mobile) {
		return nil, fmt.Errorf("%w: invalid mobile number", ErrValidation)
	}

	acquired, err := s.otpRepo.AcquireCooldown(ctx, mobile, s.settings.ResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check otp cooldown: %w", err)
	}
	if !acquired {
		return nil, ErrOTPCooldown
	}

	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash otp: %w", err)
	}
	if err := s.otpRepo.SaveCode(ctx, mobile, string(hash), s.settings.TTL); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	reply, err := s.sms.SendOTP(ctx, mobile, code)
	if err != nil {
		if delErr := s.otpRepo.DeleteCode(ctx, mobile); delErr != nil {
			utils.LogWarn("Failed to discard undelivered OTP", map[string]interface{}{"error": delErr.Error()})
		}
		if relErr := s.otpRepo.ReleaseCooldown(ctx, mobile); relErr != nil {
			utils.LogWarn("Failed to release OTP cooldown", map[string]interface{}{"error": relErr.Error()})
		}
		switch {
		case errors.Is(err, gateway.ErrSMSNotConfigured):
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		case errors.Is(err, gateway.ErrProviderUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		default:
			return nil, fmt.Errorf("failed to send otp: %w", err)
		}
	}

	return &OTPResponse{Message: "OTP sent", ProviderReply: reply}, nil
}

// VerifyOTP consumes the stored code and issues an identity token. A code is
// discarded once MaxOTPAttempts verifications have been made against it.
func (s *authService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error) {
	mobile := strings.TrimSpace(req.Mobile)

	hash, err := s.otpRepo.GetCode(ctx, mobile)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, fmt.Errorf("failed to read otp: %w", err)
	}
	attempts, err := s.otpRepo.RegisterAttempt(ctx, mobile, s.settings.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to count otp attempt: %w", err)
	}
	if attempts > MaxOTPAttempts {
		if delErr := s.otpRepo.DeleteCode(ctx, mobile); delErr != nil {
			utils.LogWarn("Failed to discard exhausted OTP", map[string]interface{}{"error": delErr.Error()})
		}
		return nil, ErrInvalidOTP
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(strings.TrimSpace(req.OTP))); err != nil {
		return nil, ErrInvalidOTP
	}
	if err := s.otpRepo.DeleteCode(ctx, mobile); err != nil {
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}

	issuedAt := s.now()
	token, err := s.tokens.Issue(mobile)
	if err != nil {
		if errors.Is(err, utils.ErrTokenSecretMissing) {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	newUser := false
	if _, err := s.userRepo.GetUserByMobile(ctx, mobile); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			newUser = true
		} else {
			// The code is already consumed; a profile lookup failure must not void the login.
			utils.LogWarn("User lookup failed after OTP verification", map[string]interface{}{"error": err.Error()})
		}
	}

	return &AuthResponse{
		Mobile:      mobile,
		AccessToken: token,
		ExpiresAt:   issuedAt.Add(utils.IdentityTokenTTL).UTC(),
		NewUser:     newUser,
	}, nil
}
