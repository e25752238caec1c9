package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inventario/inventory-console/internal/core/domain"
)

var parser = jwt.NewParser()

// Decode reads the identity out of a bearer token without verifying its
// signature. The inventory API is the only party that verifies tokens; the
// console only needs the claims to drive navigation.
//
// Expected payload: {username, userId|sub, rol, iat, exp}. A token without a
// numeric exp is malformed.
func Decode(token string) (*domain.UserIdentity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: missing exp claim", domain.ErrMalformedToken)
	}

	var issuedAt time.Time
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issuedAt = iat.Time
	}

	username, _ := claims["username"].(string)
	role, _ := claims["rol"].(string)

	userID, ok := numericClaim(claims["userId"])
	if !ok {
		userID, _ = numericClaim(claims["sub"])
	}

	return &domain.UserIdentity{
		Username:  username,
		UserID:    userID,
		Role:      role,
		IssuedAt:  issuedAt,
		ExpiresAt: exp.Time,
	}, nil
}

func numericClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
