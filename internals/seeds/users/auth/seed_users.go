package user

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"schoolerp_backend/internals/constants"
	schoolModel "schoolerp_backend/internals/features/schools/model"
	authHelper "schoolerp_backend/internals/features/users/auth/helper"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	"schoolerp_backend/internals/features/users/user/model"
	helpers "schoolerp_backend/internals/helpers"
	helpersAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SchoolSeed struct {
	Name         string     `json:"name"`
	Timezone     string     `json:"timezone"`
	AcademicYear string     `json:"academic_year"`
	Users        []UserSeed `json:"users"`
}

// SeedSchoolsFromJSON creates each school (by slug) and its users (by email)
// when they do not exist yet.
func SeedSchoolsFromJSON(ctx context.Context, be resource.Backend, filePath string) error {
	log.Println("📥 Reading seed file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var inputs []SchoolSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return err
	}

	schools := resource.StoreFor[schoolModel.SchoolModel](be)
	users := resource.StoreFor[model.UserModel](be)

	for _, in := range inputs {
		schoolID, err := ensureSchool(ctx, schools, in)
		if err != nil {
			log.Printf("❌ Seed school '%s': %v", in.Name, err)
			continue
		}
		for _, u := range in.Users {
			if err := ensureUser(ctx, users, schoolID, u); err != nil {
				log.Printf("❌ Seed user '%s': %v", u.Email, err)
			}
		}
	}
	return nil
}

func ensureSchool(ctx context.Context, schools resource.Store[schoolModel.SchoolModel], in SchoolSeed) (uuid.UUID, error) {
	slug := helpers.Slugify(in.Name, 100)
	found, err := schools.Find(ctx, resource.Query{AllTenants: true, Where: map[string]any{"slug": slug}, Limit: 1})
	if err != nil {
		return uuid.Nil, err
	}
	if len(found) > 0 {
		log.Printf("ℹ️ School '%s' already exists, skipped.", slug)
		return found[0].ID, nil
	}

	tz := in.Timezone
	if tz == "" {
		tz = "UTC"
	}
	now := time.Now().UTC()
	id := uuid.New()
	err = schools.Insert(ctx, &schoolModel.SchoolModel{
		Base:         resource.Base{ID: id, SchoolID: id, CreatedAt: now, UpdatedAt: now},
		Name:         in.Name,
		Slug:         slug,
		Timezone:     tz,
		AcademicYear: in.AcademicYear,
		Status:       schoolModel.SchoolActive,
	})
	if err != nil {
		return uuid.Nil, err
	}
	log.Printf("✅ School '%s' created", slug)
	return id, nil
}

func ensureUser(ctx context.Context, users resource.Store[model.UserModel], schoolID uuid.UUID, in UserSeed) error {
	email := authHelper.NormalizeEmail(in.Email)
	_, err := authRepo.FindUserByEmail(ctx, users, email)
	if err == nil {
		log.Printf("ℹ️ User '%s' already exists, skipped.", email)
		return nil
	}
	if !errors.Is(err, resource.ErrNotFound) {
		return err
	}
	if !constants.IsValidRole(in.Role) {
		return errors.New("invalid role " + in.Role)
	}

	hash, err := helpersAuth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := users.Insert(ctx, &model.UserModel{
		Base:         resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}); err != nil {
		return err
	}
	log.Printf("✅ User '%s' created", email)
	return nil
}
