package token

import (
	"testing"

	"freshfold-web/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cookieMap is a map-backed CookieSource for tests.
type cookieMap map[string]string

func (m cookieMap) Cookies(key string, defaultValue ...string) string {
	if v, ok := m[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// signToken mints a token the way the external login flow would. The secret
// is irrelevant to the reader, which never verifies signatures.
func signToken(t *testing.T, role string, userID, branchID uint) string {
	t.Helper()
	claims := jwt.MapClaims{
		"role":      role,
		"user_id":   userID,
		"branch_id": branchID,
		"name":      "Test User",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-login-secret"))
	require.NoError(t, err)
	return signed
}

func TestFromCookiesNoTokens(t *testing.T) {
	assert.Nil(t, FromCookies(cookieMap{}))
}

func TestFromCookiesIgnoresUnrelatedCookies(t *testing.T) {
	src := cookieMap{"wizard_session": "abc", "theme": "dark"}
	assert.Nil(t, FromCookies(src))
}

func TestFromCookiesDecodesPresentRoles(t *testing.T) {
	src := cookieMap{
		"CustomerToken": signToken(t, "Customer", 7, 2),
		"SupplierToken": signToken(t, "Supplier", 31, 2),
	}

	tokens := FromCookies(src)
	require.NotNil(t, tokens)
	require.Len(t, tokens, 2)

	customer := tokens[domain.RoleCustomer]
	require.NotNil(t, customer)
	assert.Equal(t, "Customer", customer.Role)
	assert.Equal(t, uint(7), customer.UserID)
	assert.Equal(t, uint(2), customer.BranchID)

	supplier := tokens[domain.RoleSupplier]
	require.NotNil(t, supplier)
	assert.Equal(t, "Supplier", supplier.Role)
}

func TestFromCookiesSkipsCorruptToken(t *testing.T) {
	src := cookieMap{
		"CustomerToken": "not-a-token",
		"EmployeeToken": signToken(t, "Employee", 5, 1),
	}

	tokens := FromCookies(src)
	require.NotNil(t, tokens)
	assert.Len(t, tokens, 1)
	assert.Nil(t, tokens[domain.RoleCustomer])
	assert.NotNil(t, tokens[domain.RoleEmployee])
}

func TestFromCookiesAllCorruptMeansNoSession(t *testing.T) {
	src := cookieMap{
		"CustomerToken": "garbage",
		"AdminToken":    "also.garbage",
	}
	assert.Nil(t, FromCookies(src))
}

func TestPermitted(t *testing.T) {
	customerTokens := FromCookies(cookieMap{"CustomerToken": signToken(t, "Customer", 7, 2)})
	require.NotNil(t, customerTokens)

	tests := []struct {
		name    string
		tokens  map[domain.Role]*Claims
		allowed []domain.Role
		want    bool
	}{
		{"nil tokens always denied", nil, []domain.Role{domain.RoleCustomer, domain.RoleAdmin}, false},
		{"matching role permitted", customerTokens, []domain.Role{domain.RoleCustomer, domain.RoleAdmin}, true},
		{"non-matching role denied", customerTokens, []domain.Role{domain.RoleAdmin}, false},
		{"empty allowed set denied", customerTokens, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Permitted(tt.tokens, tt.allowed...))
		})
	}
}

func TestPermittedUsesClaimRoleNotCookieKey(t *testing.T) {
	// A token stored under the wrong cookie still counts for the role its
	// claims carry, not the cookie it arrived in.
	tokens := FromCookies(cookieMap{"AdminToken": signToken(t, "Customer", 9, 1)})
	require.NotNil(t, tokens)

	assert.True(t, Permitted(tokens, domain.RoleCustomer))
	assert.False(t, Permitted(tokens, domain.RoleAdmin))
}

func TestFirstPicksDeterministically(t *testing.T) {
	tokens := FromCookies(cookieMap{
		"CustomerToken": signToken(t, "Customer", 7, 2),
		"EmployeeToken": signToken(t, "Employee", 5, 1),
	})
	require.NotNil(t, tokens)

	claims := First(tokens, domain.RoleEmployee, domain.RoleCustomer)
	require.NotNil(t, claims)
	// Customer precedes Employee in the fixed role order.
	assert.Equal(t, "Customer", claims.Role)

	assert.Nil(t, First(tokens, domain.RoleSupplier))
}
