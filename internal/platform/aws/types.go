package aws

import (
	"slices"
	"time"

	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	lextypes "github.com/aws/aws-sdk-go-v2/service/lexmodelsv2/types"
)

// DraftVersion is the editable working copy of a bot.
const DraftVersion = "DRAFT"

// RoleSpec holds the parameters for creating an IAM role.
type RoleSpec struct {
	Name        string
	Description string
	TrustPolicy string
	PolicyARNs  []string
}

// Role is an IAM role.
type Role struct {
	Name string
	ARN  string
}

// FunctionSpec holds the parameters for creating a Lambda function.
type FunctionSpec struct {
	Name        string
	Description string
	Runtime     string
	Handler     string
	RoleARN     string
	Timeout     int32
	MemorySize  int32
	ZipFile     []byte
}

// Function is a Lambda function configuration snapshot.
type Function struct {
	Name             string
	ARN              string
	State            string
	StateReason      string
	LastUpdateStatus string
}

// Terminal reports whether the function failed to become usable.
func (f Function) Terminal() bool {
	return f.State == string(lambdatypes.StateFailed) ||
		f.LastUpdateStatus == string(lambdatypes.LastUpdateStatusFailed)
}

// PermissionSpec describes one statement of a function's resource policy.
type PermissionSpec struct {
	FunctionName string
	StatementID  string
	Action       string
	Principal    string
	SourceARN    string
}

// Permission is a statement found in a function's resource policy.
type Permission struct {
	StatementID string
	Principal   string
	SourceARN   string
}

// BotSpec holds the parameters for creating a bot.
type BotSpec struct {
	Name           string
	Description    string
	RoleARN        string
	IdleSessionTTL int32
	ChildDirected  bool
}

// Bot is a bot status snapshot.
type Bot struct {
	ID             string
	Name           string
	Status         string
	FailureReasons []string
}

// Terminal reports whether the bot can no longer become Available.
func (b Bot) Terminal() bool {
	return slices.Contains([]string{
		string(lextypes.BotStatusFailed),
		string(lextypes.BotStatusDeleting),
	}, b.Status)
}

// LocaleSpec holds the parameters for adding a locale to the draft bot.
type LocaleSpec struct {
	BotID               string
	LocaleID            string
	Description         string
	ConfidenceThreshold float64
	VoiceID             string
}

// Locale is a locale status snapshot.
type Locale struct {
	BotID              string
	LocaleID           string
	Status             string
	FailureReasons     []string
	LastBuildSubmitted time.Time
	LastUpdated        time.Time
}

// Terminal reports whether the locale failed.
func (l Locale) Terminal() bool {
	return slices.Contains([]string{
		string(lextypes.BotLocaleStatusFailed),
		string(lextypes.BotLocaleStatusDeleting),
	}, l.Status)
}

// UpToDate reports whether the locale is built and has not been modified
// since its last build was submitted.
func (l Locale) UpToDate() bool {
	if l.Status != string(lextypes.BotLocaleStatusBuilt) {
		return false
	}
	return !l.LastUpdated.After(l.LastBuildSubmitted)
}

// IntentSpec holds the parameters for creating an intent.
type IntentSpec struct {
	BotID          string
	LocaleID       string
	Name           string
	Description    string
	Utterances     []string
	Fulfillment    bool
	SuccessMessage string
}

// Intent identifies an intent of the draft locale.
type Intent struct {
	ID             string
	Name           string
	SlotPriorities []SlotPriority
}

// SlotSpec holds the parameters for creating a slot.
type SlotSpec struct {
	BotID      string
	LocaleID   string
	IntentID   string
	Name       string
	TypeID     string
	Required   bool
	Prompt     string
	MaxRetries int32
}

// Slot identifies a slot of an intent.
type Slot struct {
	ID       string
	Name     string
	IntentID string
}

// SlotPriority orders slot elicitation within an intent; lower goes first.
type SlotPriority struct {
	SlotID   string
	Priority int32
}

// Version is a numbered bot version snapshot.
type Version struct {
	BotID          string
	Version        string
	Description    string
	Status         string
	FailureReasons []string
}

// Terminal reports whether the version failed.
func (v Version) Terminal() bool {
	return slices.Contains([]string{
		string(lextypes.BotStatusFailed),
		string(lextypes.BotStatusDeleting),
	}, v.Status)
}

// AliasSpec holds the parameters for creating or repointing an alias.
type AliasSpec struct {
	BotID       string
	Name        string
	Version     string
	LocaleID    string
	FunctionARN string
}

// Alias is a bot alias snapshot.
type Alias struct {
	ID      string
	Name    string
	BotID   string
	Version string
	Status  string
}

// Terminal reports whether the alias failed.
func (a Alias) Terminal() bool {
	return slices.Contains([]string{
		string(lextypes.BotAliasStatusFailed),
		string(lextypes.BotAliasStatusDeleting),
	}, a.Status)
}
