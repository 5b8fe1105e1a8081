package inviteCode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	orgID := "exampleOrg"
	secret := "stringsy"
	encodedCode := GenerateCode(orgID, secret)
	assert.NotEmpty(t, encodedCode, "Encoded code should not be empty")
}

func TestDecode(t *testing.T) {
	// First, generate a code
	orgID := "testOrg"
	secret := "stringsy"
	encodedCode := GenerateCode(orgID, secret)

	// Now, decode the encoded code
	decodedOrgID, decodedSecret, err := Decode(encodedCode)

	// Check if there are any errors
	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, orgID, decodedOrgID, "Decoded org ID should match the original")
	assert.Equal(t, secret, decodedSecret, "Decoded secret should match the original")
}

func TestDecode_ErrorHandling(t *testing.T) {
	// Pass an incorrectly formatted string
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")
}

func TestNewSecret_Unique(t *testing.T) {
	assert.NotEqual(t, NewSecret(), NewSecret(), "Secrets should not repeat")
}
