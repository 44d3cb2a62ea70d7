package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"bagshop/internal/auth"
	"bagshop/internal/domain"
	"bagshop/internal/repos"
	"bagshop/internal/validate"
)

type SignupInput struct {
	Name            string  `json:"name" validate:"required,min=2,max=50"`
	Email           string  `json:"email" validate:"required,email,max=100"`
	PhoneNumber     string  `json:"phoneNumber" validate:"required,len=11,numeric"`
	PostCode        *string `json:"postCode" validate:"omitempty,len=5"`
	Address         *string `json:"address" validate:"omitempty,max=255"`
	Password        string  `json:"password" validate:"required,min=8,max=72,password"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required,eqfield=Password"`
	UserID          string  `json:"userId" validate:"required,min=2,max=50"`
}

// LoginInput authenticates by handle, not email.
type LoginInput struct {
	UserID   string `json:"userId" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateProfileInput struct {
	Email       *string `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,len=11,numeric"`
	PostCode    *string `json:"postCode" validate:"omitempty,len=5"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type AuthService struct {
	Users  *repos.UserRepo
	Hasher auth.Hasher
	Tokens *auth.Tokens

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users *repos.UserRepo, hasher auth.Hasher, tokens *auth.Tokens) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens}
}

// Signup validates in, rejects taken email or handle, and stores a bcrypt hash.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.UserResponse, error) {
	if err := validate.Struct(in); err != nil {
		return domain.UserResponse{}, err
	}
	if taken, err := s.emailTaken(ctx, in.Email, 0); err != nil {
		return domain.UserResponse{}, err
	} else if taken {
		return domain.UserResponse{}, domain.ErrEmailTaken
	}
	if _, err := s.Users.ByHandle(ctx, in.UserID); err == nil {
		return domain.UserResponse{}, domain.ErrHandleTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return domain.UserResponse{}, domain.DataAccess("user lookup failed", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}
	u, err := s.Users.Create(ctx, domain.NewUser{
		UserID:      in.UserID,
		Email:       in.Email,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		PostCode:    in.PostCode,
		Address:     in.Address,
		Hash:        hash,
	})
	if err != nil {
		if repos.IsUniqueViolation(err) {
			// lost a race with a concurrent signup
			return domain.UserResponse{}, s.signupConflict(ctx, in.Email)
		}
		return domain.UserResponse{}, domain.DataAccess("user insert failed", err)
	}
	return u.Response(), nil
}

// Login returns a signed token. Unknown handle and wrong password are the same
// error, and both pay for one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if err := validate.Struct(in); err != nil {
		return LoginResult{}, err
	}
	u, err := s.Users.ByHandle(ctx, in.UserID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return LoginResult{}, domain.DataAccess("user lookup failed", err)
		}
		_ = s.Hasher.Compare(s.dummy(), in.Password)
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(u.Hash, in.Password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials
	}
	tok, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: tok}, nil
}

func (s *AuthService) Profile(ctx context.Context, userNo int64) (domain.UserResponse, error) {
	u, err := s.Users.ByID(ctx, userNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, domain.DataAccess("user lookup failed", err)
	}
	return u.Response(), nil
}

// UpdateProfile changes contact fields; an email owned by someone else is a conflict.
func (s *AuthService) UpdateProfile(ctx context.Context, userNo int64, in UpdateProfileInput) (domain.UserResponse, error) {
	if err := validate.Struct(in); err != nil {
		return domain.UserResponse{}, err
	}
	if _, err := s.Profile(ctx, userNo); err != nil {
		return domain.UserResponse{}, err
	}
	ch := domain.ProfileChanges{Email: in.Email, PhoneNumber: in.PhoneNumber, PostCode: in.PostCode, Address: in.Address}
	if ch.Empty() {
		return s.Profile(ctx, userNo)
	}
	if in.Email != nil {
		if taken, err := s.emailTaken(ctx, *in.Email, userNo); err != nil {
			return domain.UserResponse{}, err
		} else if taken {
			return domain.UserResponse{}, domain.ErrEmailTaken
		}
	}
	if err := s.Users.UpdateProfile(ctx, userNo, ch); err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.UserResponse{}, domain.ErrEmailTaken
		}
		return domain.UserResponse{}, domain.DataAccess("user update failed", err)
	}
	return s.Profile(ctx, userNo)
}

func (s *AuthService) emailTaken(ctx context.Context, email string, except int64) (bool, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.DataAccess("user lookup failed", err)
	}
	return u.ID != except, nil
}

// signupConflict names the unique field an insert collided on.
func (s *AuthService) signupConflict(ctx context.Context, email string) error {
	taken, err := s.emailTaken(ctx, email, 0)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrEmailTaken
	}
	return domain.ErrHandleTaken
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("timing-equaliser-0!")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
