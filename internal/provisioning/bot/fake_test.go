package bot

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	awsplatform "github.com/imamik/lexdeploy/internal/platform/aws"
)

// fakeManager is an in-memory Manager whose resources are ready as soon as
// they are created. Mutating calls that succeed are recorded.
type fakeManager struct {
	mu     sync.Mutex
	now    time.Time
	nextID int

	roles     map[string]awsplatform.Role
	attached  map[string][]string // role -> policy ARNs
	functions map[string]awsplatform.Function
	policies  map[string]map[string]awsplatform.Permission // function -> sid
	bots      map[string]awsplatform.Bot                   // id
	locales   map[string]*awsplatform.Locale               // bot id
	intents   map[string]*awsplatform.Intent               // id
	slots     map[string]awsplatform.Slot                  // id
	versions  map[string][]awsplatform.Version             // bot id
	aliases   map[string]awsplatform.Alias                 // id

	calls     []string
	mutations []string

	// buildFailure, if set, makes every build fail with the given reason.
	buildFailure string
	// attachFailure, if set, fails policy attachment after the role exists.
	attachFailure error
}

var _ awsplatform.Manager = (*fakeManager)(nil)

func newFakeManager() *fakeManager {
	return &fakeManager{
		now:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		roles:     make(map[string]awsplatform.Role),
		attached:  make(map[string][]string),
		functions: make(map[string]awsplatform.Function),
		policies:  make(map[string]map[string]awsplatform.Permission),
		bots:      make(map[string]awsplatform.Bot),
		locales:   make(map[string]*awsplatform.Locale),
		intents:   make(map[string]*awsplatform.Intent),
		slots:     make(map[string]awsplatform.Slot),
		versions:  make(map[string][]awsplatform.Version),
		aliases:   make(map[string]awsplatform.Alias),
	}
}

func (f *fakeManager) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeManager) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeManager) call(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeManager) mutate(name string) {
	f.mutations = append(f.mutations, name)
}

func (f *fakeManager) resetLog() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
	f.mutations = nil
}

func (f *fakeManager) mutationLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.mutations)
}

func conflict(kind, name string) error {
	return &awsplatform.ConflictError{Kind: kind, Name: name, Code: "ConflictException", Message: "already exists"}
}

func notFound(kind, name string) error {
	return &awsplatform.NotFoundError{Kind: kind, Name: name, Code: "ResourceNotFoundException"}
}

// touch marks the draft locale of botID as modified.
func (f *fakeManager) touch(botID string) {
	if l, ok := f.locales[botID]; ok {
		l.LastUpdated = f.tick()
		if l.Status == "Built" {
			l.Status = "NotBuilt"
		}
	}
}

func (f *fakeManager) Region() string { return "us-east-1" }

func (f *fakeManager) AccountID(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("AccountID")
	return "123456789012", nil
}

func (f *fakeManager) CreateRole(_ context.Context, spec awsplatform.RoleSpec) (awsplatform.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateRole")
	if _, ok := f.roles[spec.Name]; ok {
		return awsplatform.Role{}, conflict("role", spec.Name)
	}
	r := awsplatform.Role{Name: spec.Name, ARN: "arn:aws:iam::123456789012:role/" + spec.Name}
	f.roles[spec.Name] = r
	f.mutate("CreateRole")
	if err := f.attach(spec.Name, spec.PolicyARNs); err != nil {
		return awsplatform.Role{}, err
	}
	return r, nil
}

func (f *fakeManager) AttachRolePolicies(_ context.Context, name string, arns []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("AttachRolePolicies")
	if _, ok := f.roles[name]; !ok {
		return notFound("role", name)
	}
	return f.attach(name, arns)
}

func (f *fakeManager) attach(role string, arns []string) error {
	if f.attachFailure != nil {
		return f.attachFailure
	}
	for _, arn := range arns {
		if !slices.Contains(f.attached[role], arn) {
			f.attached[role] = append(f.attached[role], arn)
			f.mutate("AttachRolePolicy")
		}
	}
	return nil
}

func (f *fakeManager) GetRole(_ context.Context, name string) (awsplatform.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("GetRole")
	r, ok := f.roles[name]
	if !ok {
		return awsplatform.Role{}, notFound("role", name)
	}
	return r, nil
}

func (f *fakeManager) DeleteRole(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DeleteRole")
	if _, ok := f.roles[name]; !ok {
		return notFound("role", name)
	}
	delete(f.roles, name)
	delete(f.attached, name)
	f.mutate("DeleteRole")
	return nil
}

func (f *fakeManager) CreateFunction(_ context.Context, spec awsplatform.FunctionSpec) (awsplatform.Function, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateFunction")
	if _, ok := f.functions[spec.Name]; ok {
		return awsplatform.Function{}, conflict("function", spec.Name)
	}
	fn := awsplatform.Function{
		Name:  spec.Name,
		ARN:   "arn:aws:lambda:us-east-1:123456789012:function:" + spec.Name,
		State: "Active",
	}
	f.functions[spec.Name] = fn
	f.mutate("CreateFunction")
	return fn, nil
}

func (f *fakeManager) GetFunction(_ context.Context, name string) (awsplatform.Function, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("GetFunction")
	fn, ok := f.functions[name]
	if !ok {
		return awsplatform.Function{}, notFound("function", name)
	}
	return fn, nil
}

func (f *fakeManager) DeleteFunction(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DeleteFunction")
	if _, ok := f.functions[name]; !ok {
		return notFound("function", name)
	}
	delete(f.functions, name)
	delete(f.policies, name)
	f.mutate("DeleteFunction")
	return nil
}

func (f *fakeManager) AddPermission(_ context.Context, spec awsplatform.PermissionSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("AddPermission")
	if _, ok := f.functions[spec.FunctionName]; !ok {
		return notFound("function", spec.FunctionName)
	}
	policy := f.policies[spec.FunctionName]
	if policy == nil {
		policy = make(map[string]awsplatform.Permission)
		f.policies[spec.FunctionName] = policy
	}
	if _, ok := policy[spec.StatementID]; ok {
		return conflict("permission", spec.StatementID)
	}
	policy[spec.StatementID] = awsplatform.Permission{
		StatementID: spec.StatementID,
		Principal:   spec.Principal,
		SourceARN:   spec.SourceARN,
	}
	f.mutate("AddPermission")
	return nil
}

func (f *fakeManager) GetPermission(_ context.Context, functionName, statementID string) (awsplatform.Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("GetPermission")
	p, ok := f.policies[functionName][statementID]
	if !ok {
		return awsplatform.Permission{}, notFound("permission", statementID)
	}
	return p, nil
}

func (f *fakeManager) RemovePermission(_ context.Context, functionName, statementID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("RemovePermission")
	if _, ok := f.policies[functionName][statementID]; !ok {
		return notFound("permission", statementID)
	}
	delete(f.policies[functionName], statementID)
	f.mutate("RemovePermission")
	return nil
}

func (f *fakeManager) CreateBot(_ context.Context, spec awsplatform.BotSpec) (awsplatform.Bot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateBot")
	for _, b := range f.bots {
		if b.Name == spec.Name {
			return awsplatform.Bot{}, conflict("bot", spec.Name)
		}
	}
	b := awsplatform.Bot{ID: f.id("BOT"), Name: spec.Name, Status: "Available"}
	f.bots[b.ID] = b
	f.mutate("CreateBot")
	return b, nil
}

func (f *fakeManager) FindBot(_ context.Context, name string) (awsplatform.Bot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("FindBot")
	for _, b := range f.bots {
		if b.Name == name {
			return b, nil
		}
	}
	return awsplatform.Bot{}, notFound("bot", name)
}

func (f *fakeManager) DescribeBot(_ context.Context, botID string) (awsplatform.Bot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DescribeBot")
	b, ok := f.bots[botID]
	if !ok {
		return awsplatform.Bot{}, notFound("bot", botID)
	}
	return b, nil
}

func (f *fakeManager) DeleteBot(_ context.Context, botID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DeleteBot")
	if _, ok := f.bots[botID]; !ok {
		return notFound("bot", botID)
	}
	delete(f.bots, botID)
	delete(f.locales, botID)
	delete(f.versions, botID)
	for id, a := range f.aliases {
		if a.BotID == botID {
			delete(f.aliases, id)
		}
	}
	f.mutate("DeleteBot")
	return nil
}

func (f *fakeManager) CreateLocale(_ context.Context, spec awsplatform.LocaleSpec) (awsplatform.Locale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateLocale")
	if _, ok := f.locales[spec.BotID]; ok {
		return awsplatform.Locale{}, conflict("locale", spec.LocaleID)
	}
	l := &awsplatform.Locale{BotID: spec.BotID, LocaleID: spec.LocaleID, Status: "NotBuilt", LastUpdated: f.tick()}
	f.locales[spec.BotID] = l
	f.mutate("CreateLocale")
	return *l, nil
}

func (f *fakeManager) DescribeLocale(_ context.Context, botID, localeID string) (awsplatform.Locale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DescribeLocale")
	l, ok := f.locales[botID]
	if !ok || l.LocaleID != localeID {
		return awsplatform.Locale{}, notFound("locale", localeID)
	}
	return *l, nil
}

func (f *fakeManager) BuildLocale(_ context.Context, botID, localeID string) (awsplatform.Locale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("BuildLocale")
	l, ok := f.locales[botID]
	if !ok || l.LocaleID != localeID {
		return awsplatform.Locale{}, notFound("locale", localeID)
	}
	if l.UpToDate() {
		return awsplatform.Locale{}, &awsplatform.ConflictError{Kind: "build", Name: localeID, Code: "AlreadyBuilt"}
	}
	l.LastBuildSubmitted = f.tick()
	if f.buildFailure != "" {
		l.Status = "Failed"
		l.FailureReasons = []string{f.buildFailure}
	} else {
		l.Status = "Built"
	}
	f.mutate("BuildLocale")
	return *l, nil
}

func (f *fakeManager) CreateIntent(_ context.Context, spec awsplatform.IntentSpec) (awsplatform.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateIntent")
	for _, i := range f.intents {
		if i.Name == spec.Name {
			return awsplatform.Intent{}, conflict("intent", spec.Name)
		}
	}
	i := &awsplatform.Intent{ID: f.id("INTENT"), Name: spec.Name}
	f.intents[i.ID] = i
	f.touch(spec.BotID)
	f.mutate("CreateIntent")
	return *i, nil
}

func (f *fakeManager) FindIntent(_ context.Context, _, _, name string) (awsplatform.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("FindIntent")
	for _, i := range f.intents {
		if i.Name == name {
			return *i, nil
		}
	}
	return awsplatform.Intent{}, notFound("intent", name)
}

func (f *fakeManager) SetSlotPriorities(_ context.Context, botID, _, intentID string, priorities []awsplatform.SlotPriority) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("SetSlotPriorities")
	i, ok := f.intents[intentID]
	if !ok {
		return false, notFound("intent", intentID)
	}
	if slices.Equal(i.SlotPriorities, priorities) {
		return false, nil
	}
	i.SlotPriorities = slices.Clone(priorities)
	f.touch(botID)
	f.mutate("UpdateIntent")
	return true, nil
}

func (f *fakeManager) CreateSlot(_ context.Context, spec awsplatform.SlotSpec) (awsplatform.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateSlot")
	for _, s := range f.slots {
		if s.IntentID == spec.IntentID && s.Name == spec.Name {
			return awsplatform.Slot{}, conflict("slot", spec.Name)
		}
	}
	s := awsplatform.Slot{ID: f.id("SLOT"), Name: spec.Name, IntentID: spec.IntentID}
	f.slots[s.ID] = s
	f.touch(spec.BotID)
	f.mutate("CreateSlot")
	return s, nil
}

func (f *fakeManager) FindSlot(_ context.Context, _, _, intentID, name string) (awsplatform.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("FindSlot")
	for _, s := range f.slots {
		if s.IntentID == intentID && s.Name == name {
			return s, nil
		}
	}
	return awsplatform.Slot{}, notFound("slot", name)
}

func (f *fakeManager) CreateVersion(_ context.Context, botID, _, description string) (awsplatform.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateVersion")
	for _, v := range f.versions[botID] {
		if v.Description == description {
			return awsplatform.Version{}, &awsplatform.ConflictError{Kind: "version", Name: v.Version, Code: "VersionExists"}
		}
	}
	v := awsplatform.Version{
		BotID:       botID,
		Version:     strconv.Itoa(len(f.versions[botID]) + 1),
		Description: description,
		Status:      "Available",
	}
	f.versions[botID] = append(f.versions[botID], v)
	f.mutate("CreateVersion")
	return v, nil
}

func (f *fakeManager) FindVersion(_ context.Context, botID, description string) (awsplatform.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("FindVersion")
	for _, v := range f.versions[botID] {
		if v.Description == description {
			return v, nil
		}
	}
	return awsplatform.Version{}, notFound("version", description)
}

func (f *fakeManager) DescribeVersion(_ context.Context, botID, version string) (awsplatform.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DescribeVersion")
	for _, v := range f.versions[botID] {
		if v.Version == version {
			return v, nil
		}
	}
	return awsplatform.Version{}, notFound("version", version)
}

func (f *fakeManager) CreateAlias(_ context.Context, spec awsplatform.AliasSpec) (awsplatform.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("CreateAlias")
	for _, a := range f.aliases {
		if a.BotID == spec.BotID && a.Name == spec.Name {
			return awsplatform.Alias{}, conflict("alias", spec.Name)
		}
	}
	a := awsplatform.Alias{ID: f.id("ALIAS"), Name: spec.Name, BotID: spec.BotID, Version: spec.Version, Status: "Available"}
	f.aliases[a.ID] = a
	f.mutate("CreateAlias")
	return a, nil
}

func (f *fakeManager) FindAlias(_ context.Context, botID, name string) (awsplatform.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("FindAlias")
	for _, a := range f.aliases {
		if a.BotID == botID && a.Name == name {
			return a, nil
		}
	}
	return awsplatform.Alias{}, notFound("alias", name)
}

func (f *fakeManager) UpdateAlias(_ context.Context, aliasID string, spec awsplatform.AliasSpec) (awsplatform.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("UpdateAlias")
	a, ok := f.aliases[aliasID]
	if !ok {
		return awsplatform.Alias{}, notFound("alias", aliasID)
	}
	a.Version = spec.Version
	f.aliases[aliasID] = a
	f.mutate("UpdateAlias")
	return a, nil
}

func (f *fakeManager) DescribeAlias(_ context.Context, botID, aliasID string) (awsplatform.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DescribeAlias")
	a, ok := f.aliases[aliasID]
	if !ok || a.BotID != botID {
		return awsplatform.Alias{}, notFound("alias", aliasID)
	}
	return a, nil
}

func (f *fakeManager) DeleteAlias(_ context.Context, botID, aliasID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.call("DeleteAlias")
	a, ok := f.aliases[aliasID]
	if !ok || a.BotID != botID {
		return notFound("alias", aliasID)
	}
	delete(f.aliases, aliasID)
	f.mutate("DeleteAlias")
	return nil
}
