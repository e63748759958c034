package credential_test

import (
	"testing"

	"go-jobboard-backend/pkg/credential"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	svc := credential.New("test-secret", bcrypt.MinCost)

	hash, err := svc.HashPassword("s3cret-pw")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", hash)

	assert.True(t, svc.CheckPassword("s3cret-pw", hash))
	assert.False(t, svc.CheckPassword("wrong-pw", hash))
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := credential.New("test-secret", bcrypt.MinCost)

	token, err := svc.IssueToken("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidateTokenFailures(t *testing.T) {
	svc := credential.New("test-secret", bcrypt.MinCost)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, credential.ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := credential.New("other-secret", bcrypt.MinCost)
		token, err := other.IssueToken("user-123")
		assert.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, credential.ErrInvalidToken)
	})
}
