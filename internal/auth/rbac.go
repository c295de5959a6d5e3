package auth

import "teslo-shop/internal/domain"

// Operation names an inbound API operation
type Operation string

const (
	OpRegister       Operation = "register"
	OpLogin          Operation = "login"
	OpCheckStatus    Operation = "checkStatus"
	OpPrivate        Operation = "private"
	OpPrivateRoles   Operation = "privateRoles"
	OpCreateResource Operation = "createResource"
	OpListResources  Operation = "listResources"
	OpGetResource    Operation = "getResource"
	OpUpdateResource Operation = "updateResource"
	OpDeleteResource Operation = "deleteResource"
	OpUploadFile     Operation = "uploadFile"
	OpRunSeed        Operation = "runSeed"
)

// Requirement describes who may call an operation
type Requirement struct {
	Authenticated bool
	Roles         domain.Roles
}

// Policy maps each operation to its requirement. Operations missing from the table are public.
var Policy = map[Operation]Requirement{
	OpRegister:       {},
	OpLogin:          {},
	OpListResources:  {},
	OpGetResource:    {},
	OpRunSeed:        {},
	OpCheckStatus:    {Authenticated: true},
	OpPrivate:        {Authenticated: true},
	OpPrivateRoles:   {Authenticated: true, Roles: domain.Roles{domain.RoleAdmin, domain.RoleSeller}},
	OpCreateResource: {Authenticated: true},
	OpUpdateResource: {Authenticated: true},
	OpDeleteResource: {Authenticated: true, Roles: domain.Roles{domain.RoleAdmin}},
	OpUploadFile:     {Authenticated: true},
}

// Authorize decides whether principal satisfies the required roles.
// An empty role set allows everyone, including a nil principal.
func Authorize(principal *domain.User, required domain.Roles) error {
	if len(required) == 0 {
		return nil
	}
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	if !required.Contains(principal.Role) {
		return &domain.ForbiddenError{FullName: principal.FullName, Required: required}
	}
	return nil
}

// Check applies the policy entry for op to principal.
func Check(op Operation, principal *domain.User) error {
	req := Policy[op]
	if req.Authenticated && principal == nil {
		return domain.ErrUnauthenticated
	}
	return Authorize(principal, req.Roles)
}
