package inviteCode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

// NewSecret returns a fresh uuidv7 string for use as an invite secret.
func NewSecret() string {
	return uuidv7.New().String()
}

func GenerateCode(orgID, secret string) string {
	code := fmt.Sprintf("%s|%s", orgID, secret)

	// Encoding the string
	return base64.StdEncoding.EncodeToString([]byte(code))
}

func Decode(code string) (orgID, secret string, err error) {
	// Decoding the string
	decodedBytes, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
