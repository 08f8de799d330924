package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/imamik/lexdeploy/internal/config"
	"github.com/imamik/lexdeploy/internal/provisioning"
	"github.com/imamik/lexdeploy/internal/util/naming"
)

// Record describes a deployed bot.
type Record struct {
	BotID       string    `json:"botId"`
	BotAliasID  string    `json:"botAliasId"`
	BotName     string    `json:"botName,omitempty"`
	AliasName   string    `json:"aliasName,omitempty"`
	Region      string    `json:"region"`
	LocaleID    string    `json:"localeId"`
	Version     string    `json:"botVersion"`
	FunctionARN string    `json:"functionArn"`
	Fingerprint string    `json:"fingerprint,omitempty"`
	CreatedAt   time.Time `json:"timestamp"`
}

// FromRun builds the record of a finished run. It fails unless the run
// resolved the bot, version, alias and function.
func FromRun(cfg *config.Config, run *provisioning.Run, fingerprint string, now time.Time) (*Record, error) {
	if run == nil || run.State != provisioning.RunDone {
		return nil, fmt.Errorf("run did not complete")
	}

	refs := make(map[string]provisioning.ResourceRef)
	for _, name := range []string{naming.StepBot, naming.StepVersion, naming.StepAlias, naming.StepFunction} {
		ref, err := run.Refs.Require(name)
		if err != nil {
			return nil, err
		}
		refs[name] = ref
	}

	return &Record{
		BotID:       refs[naming.StepBot].ID,
		BotAliasID:  refs[naming.StepAlias].ID,
		BotName:     refs[naming.StepBot].Name,
		AliasName:   refs[naming.StepAlias].Name,
		Region:      cfg.Region,
		LocaleID:    cfg.Bot.Locale.ID,
		Version:     refs[naming.StepVersion].Qualifier,
		FunctionARN: refs[naming.StepFunction].ARN,
		Fingerprint: fingerprint,
		CreatedAt:   now.UTC(),
	}, nil
}

// Validate checks the fields a runtime session needs.
func (r *Record) Validate() error {
	switch {
	case r.BotID == "":
		return fmt.Errorf("record has no botId")
	case r.BotAliasID == "":
		return fmt.Errorf("record has no botAliasId")
	case r.LocaleID == "":
		return fmt.Errorf("record has no localeId")
	}
	return nil
}

// Marshal encodes the record as indented JSON.
func (r *Record) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes and validates a record.
func Unmarshal(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes the record to path, creating parent directories.
func Save(path string, r *Record) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write record %s: %w", path, err)
	}
	return nil
}

// Load reads the record at path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record %s: %w", path, err)
	}
	return Unmarshal(data)
}
