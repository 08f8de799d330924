package bot

import (
	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
	"github.com/imamik/lexdeploy/internal/provisioning"
)

func roleRef(r awsplatform.Role) ref {
	return ref{Kind: provisioning.KindRole, ID: r.Name, Name: r.Name, ARN: r.ARN}
}

func functionRef(f awsplatform.Function) ref {
	return ref{Kind: provisioning.KindFunction, ID: f.Name, Name: f.Name, ARN: f.ARN}
}

// permissionRef is keyed by statement id; Name is the function.
func permissionRef(function string, p awsplatform.Permission) ref {
	return ref{Kind: provisioning.KindPermission, ID: p.StatementID, Name: function, ARN: p.SourceARN}
}

func botRef(b awsplatform.Bot) ref {
	return ref{Kind: provisioning.KindBot, ID: b.ID, Name: b.Name}
}

// localeRef serves both the locale and its build: both are addressed by
// bot id and locale id.
func localeRef(kind provisioning.Kind, l awsplatform.Locale) ref {
	return ref{Kind: kind, ID: l.BotID, Qualifier: l.LocaleID, Name: l.LocaleID}
}

func intentRef(localeID string, i awsplatform.Intent) ref {
	return ref{Kind: provisioning.KindIntent, ID: i.ID, Name: i.Name, Qualifier: localeID}
}

func slotRef(s awsplatform.Slot) ref {
	return ref{Kind: provisioning.KindSlot, ID: s.ID, Name: s.Name, Qualifier: s.IntentID}
}

func versionRef(v awsplatform.Version) ref {
	return ref{Kind: provisioning.KindVersion, ID: v.BotID, Qualifier: v.Version, Name: v.Description}
}
