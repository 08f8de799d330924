package naming

import (
	"fmt"
	"strings"
)

// BasicExecutionPolicyARN is the managed policy letting Lambda write logs.
const BasicExecutionPolicyARN = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"

// DraftVersion is the editable working version of a bot.
const DraftVersion = "DRAFT"

// Step names of the singleton resources of a deployment.
const (
	StepRole            = "role"
	StepFunction        = "function"
	StepPermission      = "permission"
	StepBot             = "bot"
	StepLocale          = "locale"
	StepBuild           = "build"
	StepVersion         = "version"
	StepAlias           = "alias"
	StepAliasPermission = "alias-permission"
)

// versionPrefix marks bot versions created by lexdeploy.
const versionPrefix = "lexdeploy build "

func IntentStep(intent string) string {
	return fmt.Sprintf("intent/%s", intent)
}

func SlotStep(intent, slot string) string {
	return fmt.Sprintf("slot/%s/%s", intent, slot)
}

// LexSourceARN matches every Lex resource of the account in region.
func LexSourceARN(region, account string) string {
	return fmt.Sprintf("arn:aws:lex:%s:%s:*", region, account)
}

func BotAliasARN(region, account, botID, aliasID string) string {
	return fmt.Sprintf("arn:aws:lex:%s:%s:bot-alias/%s/%s", region, account, botID, aliasID)
}

// VersionDescription tags a bot version with the fingerprint of the DRAFT
// build it was published from.
func VersionDescription(fingerprint string) string {
	return versionPrefix + fingerprint
}

// FunctionNameFromARN returns the function name of a Lambda ARN. Unqualified
// names are returned unchanged.
func FunctionNameFromARN(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) < 7 {
		return parts[len(parts)-1]
	}
	return parts[6]
}
