package provisioning

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{
			name:     "conflict",
			err:      &ResourceConflictError{Kind: KindAlias, Name: "TestAlias", Err: errBoom},
			sentinel: ErrResourceConflict,
			contains: `alias "TestAlias" already exists`,
		},
		{
			name:     "remote with code",
			err:      &RemoteOperationError{Kind: KindBot, Name: "bot", Code: "AccessDeniedException", Err: errBoom},
			sentinel: ErrRemoteOperation,
			contains: "(AccessDeniedException)",
		},
		{
			name:     "readiness failed",
			err:      &ReadinessFailedError{Kind: KindBuild, Name: "build/BOT1@en_US", Status: "Failed", Reason: "status Failed: slot type missing"},
			sentinel: ErrReadinessFailed,
			contains: "slot type missing",
		},
		{
			name:     "readiness timed out",
			err:      &ReadinessTimeoutError{Kind: KindVersion, Name: "version/BOT1@3", Timeout: 50 * time.Second, Elapsed: 55 * time.Second},
			sentinel: ErrReadinessTimedOut,
			contains: "last status unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := &StepError{Step: "x", Kind: KindBot, Err: fmt.Errorf("ctx: %w", tt.err)}

			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.Contains(t, wrapped.Error(), "step x (bot)")
		})
	}
}

func TestErrorTaxonomy_DistinctSentinels(t *testing.T) {
	t.Parallel()

	err := &ReadinessTimeoutError{Kind: KindAlias}
	assert.NotErrorIs(t, err, ErrReadinessFailed)
	assert.NotErrorIs(t, err, ErrRemoteOperation)
}
