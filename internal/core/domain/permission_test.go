package domain

import (
	"testing"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestPolicyAuthorize(t *testing.T) {
	p := NewPolicy(DefaultRequirements())

	customer := &User{UserID: "c", IsActive: true}
	staff := &User{UserID: "s", IsActive: true, IsStaff: true}
	root := &User{UserID: "r", IsActive: true, IsSuperuser: true}
	disabled := &User{UserID: "d", IsActive: false, IsStaff: true}

	assert.NoError(t, p.Authorize(ActionUserCreate, nil), "signup is public")
	assert.NoError(t, p.Authorize(ActionCatalogRead, nil))

	assert.ErrorIs(t, p.Authorize(ActionOrderPlace, nil), apperrors.ErrUnauthorized)
	assert.NoError(t, p.Authorize(ActionOrderPlace, customer))

	assert.ErrorIs(t, p.Authorize(ActionUserList, customer), apperrors.ErrForbidden)
	assert.NoError(t, p.Authorize(ActionUserList, staff))
	assert.NoError(t, p.Authorize(ActionUserList, root), "superuser implies staff")

	assert.ErrorIs(t, p.Authorize(ActionUserDelete, staff), apperrors.ErrForbidden)
	assert.NoError(t, p.Authorize(ActionUserDelete, root))

	assert.ErrorIs(t, p.Authorize(ActionCatalogWrite, disabled), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, p.Authorize(Action("order.refund"), root), apperrors.ErrForbidden)
}

func TestPolicyIsDetachedFromInput(t *testing.T) {
	table := DefaultRequirements()
	p := NewPolicy(table)
	table[ActionCatalogRead] = []Capability{CapSuperuser}

	caps, ok := p.Requires(ActionCatalogRead)
	assert.True(t, ok)
	assert.Empty(t, caps)
}

func TestUserPublicDropsHash(t *testing.T) {
	u := User{UserID: "u", PasswordHash: "$2a$10$abc"}
	assert.Empty(t, u.Public().PasswordHash)
	assert.Equal(t, "$2a$10$abc", u.PasswordHash)
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.doe+shop@example.com", "x-y@mail.org", "a_b@c.de"}
	invalid := []string{
		"", "a@b", "a@b.c", "a@b.info", "a@sub.example.com", "a@b.CO",
		"no-at-sign.com", "a b@c.com", "@b.co",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}
