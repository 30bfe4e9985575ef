package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin      = "ADMIN"
	RoleAccountant = "ACCOUNTANT"
	RoleViewer     = "VIEWER"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

// defaultPolicies maps the three built-in roles to ledger resources.
// Admin can do anything; accountants run the books but cannot administer
// users; viewers only read.
var defaultPolicies = [][]string{
	{RoleAdmin, "*", "*"},

	{RoleAccountant, "fiscal_year", "read"},
	{RoleAccountant, "gl_head", "*"},
	{RoleAccountant, "invoice", "*"},
	{RoleAccountant, "payment", "*"},
	{RoleAccountant, "expense", "*"},
	{RoleAccountant, "employee", "*"},
	{RoleAccountant, "salary_structure", "*"},
	{RoleAccountant, "payroll_run", "*"},

	{RoleViewer, "fiscal_year", "read"},
	{RoleViewer, "gl_head", "read"},
	{RoleViewer, "invoice", "read"},
	{RoleViewer, "payment", "read"},
	{RoleViewer, "expense", "read"},
	{RoleViewer, "employee", "read"},
	{RoleViewer, "salary_structure", "read"},
	{RoleViewer, "payroll_run", "read"},
}

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
