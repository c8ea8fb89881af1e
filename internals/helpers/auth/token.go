// file: internals/helpers/auth/token.go
package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    uuid.UUID
	SchoolID  uuid.UUID
	Role      string
	Name      string
	StudentID uuid.UUID // uuid.Nil unless the user is a student
	Timezone  string
}

// IssueAccessToken signs an HS256 token carrying sub, school_id, role, name, exp.
func IssueAccessToken(secret string, ttl time.Duration, cl Claims) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	now := time.Now()
	exp := now.Add(ttl)
	mc := jwt.MapClaims{
		"sub":       cl.UserID.String(),
		"school_id": cl.SchoolID.String(),
		"role":      cl.Role,
		"name":      cl.Name,
		"iat":       now.Unix(),
		"exp":       exp.Unix(),
		"jti":       uuid.NewString(),
	}
	if cl.StudentID != uuid.Nil {
		mc["student_id"] = cl.StudentID.String()
	}
	if cl.Timezone != "" {
		mc["tz"] = cl.Timezone
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken verifies signature and expiry.
func ParseAccessToken(secret, raw string) (Claims, time.Time, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, time.Time{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, time.Time{}, ErrInvalidToken
	}

	var cl Claims
	if cl.UserID, err = uuid.Parse(claimString(mc, "sub")); err != nil {
		return Claims{}, time.Time{}, ErrInvalidToken
	}
	if cl.SchoolID, err = uuid.Parse(claimString(mc, "school_id")); err != nil {
		return Claims{}, time.Time{}, ErrInvalidToken
	}
	cl.Role = claimString(mc, "role")
	cl.Name = claimString(mc, "name")
	cl.Timezone = claimString(mc, "tz")
	if s := claimString(mc, "student_id"); s != "" {
		cl.StudentID, _ = uuid.Parse(s)
	}

	var exp time.Time
	if v, ok := mc["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0)
	}
	return cl, exp, nil
}

func claimString(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return strings.TrimSpace(s)
}

// ExtractToken reads "Authorization: Bearer <jwt>", falling back to the
// access_token cookie when allowCookie is set.
func ExtractToken(c *fiber.Ctx, allowCookie bool) string {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

// HashToken keeps raw tokens out of storage.
func HashToken(raw, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(raw))
	return hex.EncodeToString(m.Sum(nil))
}
