package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolerp_backend/internals/configs"
	"schoolerp_backend/internals/constants"
	schoolModel "schoolerp_backend/internals/features/schools/model"
	authHelper "schoolerp_backend/internals/features/users/auth/helper"
	authModel "schoolerp_backend/internals/features/users/auth/model"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	userController "schoolerp_backend/internals/features/users/user/controller"
	userModel "schoolerp_backend/internals/features/users/user/model"
	helpers "schoolerp_backend/internals/helpers"
	helpersAuth "schoolerp_backend/internals/helpers/auth"
	mailer "schoolerp_backend/internals/helpers/mail"
	"schoolerp_backend/internals/resource"
)

/* ==========================
   Types
========================== */

type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier checks an ID token against the client id.
type GoogleVerifier func(idToken, clientID string) (GoogleIdentity, error)

type AuthService struct {
	Users     resource.Store[userModel.UserModel]
	Schools   resource.Store[schoolModel.SchoolModel]
	Resets    resource.Store[authModel.PasswordResetModel]
	Blacklist authRepo.Blacklist
	Mailer    mailer.Mailer

	Secret         string
	TTL            time.Duration
	GoogleClientID string
	VerifyGoogle   GoogleVerifier
	FrontendURL    string
	ResetTTL       time.Duration
}

func NewAuthService(be resource.Backend, bl authRepo.Blacklist, m mailer.Mailer) *AuthService {
	return &AuthService{
		Users:          resource.StoreFor[userModel.UserModel](be),
		Schools:        resource.StoreFor[schoolModel.SchoolModel](be),
		Resets:         resource.StoreFor[authModel.PasswordResetModel](be),
		Blacklist:      bl,
		Mailer:         m,
		Secret:         configs.JWTSecret,
		TTL:            configs.JWTTTL,
		GoogleClientID: configs.GoogleClientID,
		VerifyGoogle:   VerifyGoogleIDToken,
		FrontendURL:    configs.FrontendURL,
		ResetTTL:       configs.PasswordResetTTL,
	}
}

func nowUTC() time.Time { return time.Now().UTC() }

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByEmail(ctx, s.Users, authHelper.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		log.Printf("[AUTH][LOGIN] find user: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if user.PasswordHash == "" || helpersAuth.CheckPasswordHash(user.PasswordHash, input.Password) != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	return s.issueTokens(c, user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

// VerifyGoogleIDToken checks signature, audience and expiry of a Google ID token.
func VerifyGoogleIDToken(idToken, clientID string) (GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return GoogleIdentity{}, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, err
	}
	return GoogleIdentity{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

// LoginGoogle signs in an existing account; accounts are created by school
// admins, so an unknown Google user is rejected.
func (s *AuthService) LoginGoogle(c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if s.GoogleClientID == "" || s.VerifyGoogle == nil {
		return helpers.JsonError(c, fiber.StatusServiceUnavailable, "Google login is not configured")
	}
	id, err := s.VerifyGoogle(input.IDToken, s.GoogleClientID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByGoogleID(ctx, s.Users, id.Sub)
	if errors.Is(err, resource.ErrNotFound) && id.Email != "" {
		user, err = authRepo.FindUserByEmail(ctx, s.Users, authHelper.NormalizeEmail(id.Email))
		if err == nil {
			sub := id.Sub
			user.GoogleID = &sub
			user.UpdatedAt = nowUTC()
			if err := s.Users.Replace(ctx, user); err != nil {
				log.Printf("[AUTH][GOOGLE] link google id: %v", err)
			}
		}
	}
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "No account is registered for this Google user")
		}
		log.Printf("[AUTH][GOOGLE] find user: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return s.issueTokens(c, user)
}

/* ==========================
   REGISTER SCHOOL
========================== */

type RegisterSchoolRequest struct {
	SchoolName string `json:"school_name"`
	Slug       string `json:"slug"`
	Timezone   string `json:"timezone"`
	AdminName  string `json:"admin_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
}

// RegisterSchool creates a tenant and its first admin, then signs the admin in.
func (s *AuthService) RegisterSchool(c *fiber.Ctx) error {
	var in RegisterSchoolRequest
	if err := c.BodyParser(&in); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := authHelper.ValidateRegisterSchoolInput(in.SchoolName, in.AdminName, in.Email, in.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	tz := strings.TrimSpace(in.Timezone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid timezone")
	}

	ctx := c.UserContext()
	email := authHelper.NormalizeEmail(in.Email)
	if err := userController.EnsureEmailFree(ctx, s.Users, email, uuid.Nil); err != nil {
		return helpers.FromFiberError(c, err)
	}

	base := in.Slug
	if strings.TrimSpace(base) == "" {
		base = in.SchoolName
	}
	slug, err := helpers.EnsureUniqueSlug(ctx, helpers.Slugify(base, 100), 100, func(ctx context.Context, candidate string) (bool, error) {
		n, err := s.Schools.Count(ctx, resource.Query{AllTenants: true, Where: map[string]any{"slug": candidate}})
		return n > 0, err
	})
	if err != nil {
		log.Printf("[AUTH][REGISTER] slug: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	now := nowUTC()
	schoolID := uuid.New()
	school := &schoolModel.SchoolModel{
		Base:     resource.Base{ID: schoolID, SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		Name:     strings.TrimSpace(in.SchoolName),
		Slug:     slug,
		Email:    email,
		Phone:    strings.TrimSpace(in.Phone),
		Timezone: tz,
		Status:   schoolModel.SchoolActive,
	}
	if err := s.Schools.Insert(ctx, school); err != nil {
		if errors.Is(err, resource.ErrDuplicate) {
			return helpers.JsonError(c, fiber.StatusConflict, "School already exists")
		}
		log.Printf("[AUTH][REGISTER] insert school: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	hash, err := helpersAuth.HashPassword(in.Password)
	if err != nil {
		_ = s.Schools.Delete(ctx, schoolID, schoolID)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	admin := &userModel.UserModel{
		Base:         resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		Name:         strings.TrimSpace(in.AdminName),
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleAdmin,
		Phone:        strings.TrimSpace(in.Phone),
		IsActive:     true,
	}
	if err := s.Users.Insert(ctx, admin); err != nil {
		// no transactions: undo the school by hand
		_ = s.Schools.Delete(ctx, schoolID, schoolID)
		if errors.Is(err, resource.ErrDuplicate) {
			return helpers.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		log.Printf("[AUTH][REGISTER] insert admin: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	log.Printf("[AUTH][REGISTER] school=%s slug=%s admin=%s", schoolID, slug, admin.ID)
	return s.respondWithToken(c, fiber.StatusCreated, "School registered successfully", admin, school)
}

/* ==========================
   LOGOUT / ME
========================== */

func (s *AuthService) Logout(c *fiber.Ctx) error {
	raw := helpersAuth.GetRawAccessToken(c)
	if raw != "" && s.Blacklist != nil {
		schoolID, _ := helpersAuth.GetSchoolIDFromToken(c)
		exp := helpersAuth.GetTokenExpiry(c)
		if exp.IsZero() {
			exp = nowUTC().Add(s.TTL)
		}
		if err := s.Blacklist.Add(c.UserContext(), schoolID, helpersAuth.HashToken(raw, s.Secret), exp); err != nil {
			log.Printf("[AUTH][LOGOUT] blacklist: %v", err)
			return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}
	clearAuthCookie(c)
	return helpers.JsonOK(c, "Logout successful", nil)
}

func (s *AuthService) Me(c *fiber.Ctx) error {
	uid, err := helpersAuth.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	schoolID, err := helpersAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	ctx := c.UserContext()
	user, err := s.Users.Get(ctx, schoolID, uid)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[AUTH][ME] %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	school, err := s.Schools.Get(ctx, schoolID, schoolID)
	if err != nil && !errors.Is(err, resource.ErrNotFound) {
		log.Printf("[AUTH][ME] school: %v", err)
	}
	return helpers.JsonOK(c, "ok", fiber.Map{"user": user, "school": school})
}
