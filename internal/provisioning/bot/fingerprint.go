package bot

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/lexdeploy/internal/config"
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
)

// fingerprintLength is the number of hex digits kept.
const fingerprintLength = 16

// Fingerprint hashes the bot blueprint and the function code. It labels a
// deployment in the plan and the output record.
func Fingerprint(cfg *config.Config, code []byte) (string, error) {
	blueprint, err := yaml.Marshal(cfg.Bot)
	if err != nil {
		return "", fmt.Errorf("failed to encode bot blueprint: %w", err)
	}

	h := sha256.New()
	h.Write(blueprint)
	h.Write([]byte{0})
	h.Write([]byte(cfg.Function.Runtime))
	h.Write([]byte{0})
	h.Write([]byte(cfg.Function.Handler))
	h.Write([]byte{0})
	h.Write(code)
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLength], nil
}

// DraftFingerprint identifies the DRAFT locale content a build was made from.
// It changes only when the locale is rebuilt, which happens only when the
// DRAFT changed since the previous build.
func DraftFingerprint(l awsplatform.Locale) string {
	h := sha256.New()
	h.Write([]byte(l.BotID))
	h.Write([]byte{0})
	h.Write([]byte(l.LocaleID))
	h.Write([]byte{0})
	h.Write([]byte(l.LastBuildSubmitted.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLength]
}
