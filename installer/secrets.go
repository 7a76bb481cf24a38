package installer

import (
	"context"
	"encoding/base64"
	"io"
	"strings"

	"github.com/pkg/errors"

	"webup/stackup/domain"
)

const (
	SecretLength = 20

	secretEntropy = 32
	// characters unsafe in .env values and shell scripts
	secretStripped = "=+/"
)

// GenerateSecret draws a SecretLength alphanumeric string from r.
func GenerateSecret(r io.Reader) (string, error) {
	var secret strings.Builder
	buf := make([]byte, secretEntropy)

	for secret.Len() < SecretLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", errors.Wrap(err, "unable to read random bytes")
		}
		for _, c := range base64.StdEncoding.EncodeToString(buf) {
			if !strings.ContainsRune(secretStripped, c) {
				secret.WriteRune(c)
			}
		}
	}

	return secret.String()[:SecretLength], nil
}

func (in *Installer) secrets(ctx context.Context, ictx *domain.InstallContext) error {
	for _, target := range []*string{&ictx.DBRootPassword, &ictx.DBPassword, &ictx.RedisPassword} {
		secret, err := GenerateSecret(in.Random)
		if err != nil {
			return domain.Fail(domain.KindSecret, StepSecrets, err)
		}
		*target = secret
	}
	return nil
}
