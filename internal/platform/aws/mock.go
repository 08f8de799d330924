package aws

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of Manager. Unset functions return
// zero values and no error. Calls records every invoked method name.
type MockClient struct {
	RegionName string

	CreateRoleFunc         func(ctx context.Context, spec RoleSpec) (Role, error)
	GetRoleFunc            func(ctx context.Context, name string) (Role, error)
	AttachRolePoliciesFunc func(ctx context.Context, name string, arns []string) error
	DeleteRoleFunc         func(ctx context.Context, name string) error
	CreateFunctionFunc     func(ctx context.Context, spec FunctionSpec) (Function, error)
	GetFunctionFunc        func(ctx context.Context, name string) (Function, error)
	DeleteFunctionFunc     func(ctx context.Context, name string) error
	AddPermissionFunc      func(ctx context.Context, spec PermissionSpec) error
	GetPermissionFunc      func(ctx context.Context, functionName, statementID string) (Permission, error)
	RemovePermissionFunc   func(ctx context.Context, functionName, statementID string) error
	CreateBotFunc          func(ctx context.Context, spec BotSpec) (Bot, error)
	FindBotFunc            func(ctx context.Context, name string) (Bot, error)
	DescribeBotFunc        func(ctx context.Context, botID string) (Bot, error)
	DeleteBotFunc          func(ctx context.Context, botID string) error
	CreateLocaleFunc       func(ctx context.Context, spec LocaleSpec) (Locale, error)
	DescribeLocaleFunc     func(ctx context.Context, botID, localeID string) (Locale, error)
	BuildLocaleFunc        func(ctx context.Context, botID, localeID string) (Locale, error)
	CreateIntentFunc       func(ctx context.Context, spec IntentSpec) (Intent, error)
	FindIntentFunc         func(ctx context.Context, botID, localeID, name string) (Intent, error)
	SetSlotPrioritiesFunc  func(ctx context.Context, botID, localeID, intentID string, priorities []SlotPriority) (bool, error)
	CreateSlotFunc         func(ctx context.Context, spec SlotSpec) (Slot, error)
	FindSlotFunc           func(ctx context.Context, botID, localeID, intentID, name string) (Slot, error)
	CreateVersionFunc      func(ctx context.Context, botID, localeID, description string) (Version, error)
	FindVersionFunc        func(ctx context.Context, botID, description string) (Version, error)
	DescribeVersionFunc    func(ctx context.Context, botID, version string) (Version, error)
	CreateAliasFunc        func(ctx context.Context, spec AliasSpec) (Alias, error)
	FindAliasFunc          func(ctx context.Context, botID, name string) (Alias, error)
	UpdateAliasFunc        func(ctx context.Context, aliasID string, spec AliasSpec) (Alias, error)
	DescribeAliasFunc      func(ctx context.Context, botID, aliasID string) (Alias, error)
	DeleteAliasFunc        func(ctx context.Context, botID, aliasID string) error
	AccountIDFunc          func(ctx context.Context) (string, error)

	mu    sync.Mutex
	calls []string
}

var _ Manager = (*MockClient)(nil)

func (m *MockClient) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
}

// Calls returns the invoked method names in order.
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Region returns RegionName.
func (m *MockClient) Region() string {
	return m.RegionName
}

func (m *MockClient) CreateRole(ctx context.Context, spec RoleSpec) (Role, error) {
	m.record("CreateRole")
	if m.CreateRoleFunc != nil {
		return m.CreateRoleFunc(ctx, spec)
	}
	return Role{}, nil
}

func (m *MockClient) GetRole(ctx context.Context, name string) (Role, error) {
	m.record("GetRole")
	if m.GetRoleFunc != nil {
		return m.GetRoleFunc(ctx, name)
	}
	return Role{}, nil
}

func (m *MockClient) AttachRolePolicies(ctx context.Context, name string, arns []string) error {
	m.record("AttachRolePolicies")
	if m.AttachRolePoliciesFunc != nil {
		return m.AttachRolePoliciesFunc(ctx, name, arns)
	}
	return nil
}

func (m *MockClient) DeleteRole(ctx context.Context, name string) error {
	m.record("DeleteRole")
	if m.DeleteRoleFunc != nil {
		return m.DeleteRoleFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) CreateFunction(ctx context.Context, spec FunctionSpec) (Function, error) {
	m.record("CreateFunction")
	if m.CreateFunctionFunc != nil {
		return m.CreateFunctionFunc(ctx, spec)
	}
	return Function{}, nil
}

func (m *MockClient) GetFunction(ctx context.Context, name string) (Function, error) {
	m.record("GetFunction")
	if m.GetFunctionFunc != nil {
		return m.GetFunctionFunc(ctx, name)
	}
	return Function{}, nil
}

func (m *MockClient) DeleteFunction(ctx context.Context, name string) error {
	m.record("DeleteFunction")
	if m.DeleteFunctionFunc != nil {
		return m.DeleteFunctionFunc(ctx, name)
	}
	return nil
}

func (m *MockClient) AddPermission(ctx context.Context, spec PermissionSpec) error {
	m.record("AddPermission")
	if m.AddPermissionFunc != nil {
		return m.AddPermissionFunc(ctx, spec)
	}
	return nil
}

func (m *MockClient) GetPermission(ctx context.Context, functionName, statementID string) (Permission, error) {
	m.record("GetPermission")
	if m.GetPermissionFunc != nil {
		return m.GetPermissionFunc(ctx, functionName, statementID)
	}
	return Permission{}, nil
}

func (m *MockClient) RemovePermission(ctx context.Context, functionName, statementID string) error {
	m.record("RemovePermission")
	if m.RemovePermissionFunc != nil {
		return m.RemovePermissionFunc(ctx, functionName, statementID)
	}
	return nil
}

func (m *MockClient) CreateBot(ctx context.Context, spec BotSpec) (Bot, error) {
	m.record("CreateBot")
	if m.CreateBotFunc != nil {
		return m.CreateBotFunc(ctx, spec)
	}
	return Bot{}, nil
}

func (m *MockClient) FindBot(ctx context.Context, name string) (Bot, error) {
	m.record("FindBot")
	if m.FindBotFunc != nil {
		return m.FindBotFunc(ctx, name)
	}
	return Bot{}, nil
}

func (m *MockClient) DescribeBot(ctx context.Context, botID string) (Bot, error) {
	m.record("DescribeBot")
	if m.DescribeBotFunc != nil {
		return m.DescribeBotFunc(ctx, botID)
	}
	return Bot{}, nil
}

func (m *MockClient) DeleteBot(ctx context.Context, botID string) error {
	m.record("DeleteBot")
	if m.DeleteBotFunc != nil {
		return m.DeleteBotFunc(ctx, botID)
	}
	return nil
}

func (m *MockClient) CreateLocale(ctx context.Context, spec LocaleSpec) (Locale, error) {
	m.record("CreateLocale")
	if m.CreateLocaleFunc != nil {
		return m.CreateLocaleFunc(ctx, spec)
	}
	return Locale{}, nil
}

func (m *MockClient) DescribeLocale(ctx context.Context, botID, localeID string) (Locale, error) {
	m.record("DescribeLocale")
	if m.DescribeLocaleFunc != nil {
		return m.DescribeLocaleFunc(ctx, botID, localeID)
	}
	return Locale{}, nil
}

func (m *MockClient) BuildLocale(ctx context.Context, botID, localeID string) (Locale, error) {
	m.record("BuildLocale")
	if m.BuildLocaleFunc != nil {
		return m.BuildLocaleFunc(ctx, botID, localeID)
	}
	return Locale{}, nil
}

func (m *MockClient) CreateIntent(ctx context.Context, spec IntentSpec) (Intent, error) {
	m.record("CreateIntent")
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, spec)
	}
	return Intent{}, nil
}

func (m *MockClient) FindIntent(ctx context.Context, botID, localeID, name string) (Intent, error) {
	m.record("FindIntent")
	if m.FindIntentFunc != nil {
		return m.FindIntentFunc(ctx, botID, localeID, name)
	}
	return Intent{}, nil
}

func (m *MockClient) SetSlotPriorities(ctx context.Context, botID, localeID, intentID string, priorities []SlotPriority) (bool, error) {
	m.record("SetSlotPriorities")
	if m.SetSlotPrioritiesFunc != nil {
		return m.SetSlotPrioritiesFunc(ctx, botID, localeID, intentID, priorities)
	}
	return false, nil
}

func (m *MockClient) CreateSlot(ctx context.Context, spec SlotSpec) (Slot, error) {
	m.record("CreateSlot")
	if m.CreateSlotFunc != nil {
		return m.CreateSlotFunc(ctx, spec)
	}
	return Slot{}, nil
}

func (m *MockClient) FindSlot(ctx context.Context, botID, localeID, intentID, name string) (Slot, error) {
	m.record("FindSlot")
	if m.FindSlotFunc != nil {
		return m.FindSlotFunc(ctx, botID, localeID, intentID, name)
	}
	return Slot{}, nil
}

func (m *MockClient) CreateVersion(ctx context.Context, botID, localeID, description string) (Version, error) {
	m.record("CreateVersion")
	if m.CreateVersionFunc != nil {
		return m.CreateVersionFunc(ctx, botID, localeID, description)
	}
	return Version{}, nil
}

func (m *MockClient) FindVersion(ctx context.Context, botID, description string) (Version, error) {
	m.record("FindVersion")
	if m.FindVersionFunc != nil {
		return m.FindVersionFunc(ctx, botID, description)
	}
	return Version{}, nil
}

func (m *MockClient) DescribeVersion(ctx context.Context, botID, version string) (Version, error) {
	m.record("DescribeVersion")
	if m.DescribeVersionFunc != nil {
		return m.DescribeVersionFunc(ctx, botID, version)
	}
	return Version{}, nil
}

func (m *MockClient) CreateAlias(ctx context.Context, spec AliasSpec) (Alias, error) {
	m.record("CreateAlias")
	if m.CreateAliasFunc != nil {
		return m.CreateAliasFunc(ctx, spec)
	}
	return Alias{}, nil
}

func (m *MockClient) FindAlias(ctx context.Context, botID, name string) (Alias, error) {
	m.record("FindAlias")
	if m.FindAliasFunc != nil {
		return m.FindAliasFunc(ctx, botID, name)
	}
	return Alias{}, nil
}

func (m *MockClient) UpdateAlias(ctx context.Context, aliasID string, spec AliasSpec) (Alias, error) {
	m.record("UpdateAlias")
	if m.UpdateAliasFunc != nil {
		return m.UpdateAliasFunc(ctx, aliasID, spec)
	}
	return Alias{}, nil
}

func (m *MockClient) DescribeAlias(ctx context.Context, botID, aliasID string) (Alias, error) {
	m.record("DescribeAlias")
	if m.DescribeAliasFunc != nil {
		return m.DescribeAliasFunc(ctx, botID, aliasID)
	}
	return Alias{}, nil
}

func (m *MockClient) DeleteAlias(ctx context.Context, botID, aliasID string) error {
	m.record("DeleteAlias")
	if m.DeleteAliasFunc != nil {
		return m.DeleteAliasFunc(ctx, botID, aliasID)
	}
	return nil
}

func (m *MockClient) AccountID(ctx context.Context) (string, error) {
	m.record("AccountID")
	if m.AccountIDFunc != nil {
		return m.AccountIDFunc(ctx)
	}
	return "", nil
}
