// Package rbac holds the role-based access decision tables. The tables are
// the single source of truth for authorization: server middleware consults
// them before every mutation and the frontend renders its affordances from
// the same structure served at /api/auth/permissions. They are loaded once
// and never mutated at runtime.
package rbac

import (
	"poultry-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type Resource string

const (
	ResourceFlocks     Resource = "flocks"
	ResourceProduction Resource = "production"
	ResourceFeeding    Resource = "feeding"
	ResourceHealth     Resource = "health"
	ResourceInventory  Resource = "inventory"
	ResourceSales      Resource = "sales"
	ResourceExpenses   Resource = "expenses"
)

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// routeAccess gates page/endpoint-group visibility per role.
var routeAccess = map[string][]models.UserRole{
	"dashboard":  {models.RoleAdmin, models.RoleManager, models.RoleWorker, models.RoleVeterinarian},
	"flocks":     {models.RoleAdmin, models.RoleManager, models.RoleVeterinarian},
	"production": {models.RoleAdmin, models.RoleManager, models.RoleWorker},
	"feeding":    {models.RoleAdmin, models.RoleManager, models.RoleWorker},
	"health":     {models.RoleAdmin, models.RoleManager, models.RoleVeterinarian},
	"inventory":  {models.RoleAdmin, models.RoleManager},
	"sales":      {models.RoleAdmin, models.RoleManager},
	"expenses":   {models.RoleAdmin, models.RoleManager},
	"reports":    {models.RoleAdmin, models.RoleManager},
	"users":      {models.RoleAdmin},
	"profile":    {models.RoleAdmin, models.RoleManager, models.RoleWorker, models.RoleVeterinarian},
}

// Non-Admin grants per resource and action. Admin passes every check
// unconditionally, so it never appears here.
var createGrants = map[Resource][]models.UserRole{
	ResourceFlocks:     {models.RoleManager},
	ResourceProduction: {models.RoleManager, models.RoleWorker},
	ResourceFeeding:    {models.RoleManager, models.RoleWorker},
	ResourceHealth:     {models.RoleManager, models.RoleVeterinarian},
	ResourceInventory:  {models.RoleManager},
	ResourceSales:      {models.RoleManager},
	ResourceExpenses:   {models.RoleManager},
}

var updateGrants = map[Resource][]models.UserRole{
	ResourceFlocks:     {models.RoleManager},
	ResourceProduction: {models.RoleManager},
	ResourceFeeding:    {models.RoleManager},
	ResourceHealth:     {models.RoleManager, models.RoleVeterinarian},
	ResourceInventory:  {models.RoleManager},
	ResourceSales:      {models.RoleManager},
	ResourceExpenses:   {models.RoleManager},
}

var deleteGrants = map[Resource][]models.UserRole{
	ResourceProduction: {models.RoleManager},
	ResourceFeeding:    {models.RoleManager},
}

// Resources lists every resource covered by the action tables.
var Resources = []Resource{
	ResourceFlocks, ResourceProduction, ResourceFeeding, ResourceHealth,
	ResourceInventory, ResourceSales, ResourceExpenses,
}

// Actions lists every action covered by CanPerform.
var Actions = []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete}

// CanAccessRoute reports whether the role may see the given page.
func CanAccessRoute(role models.UserRole, route string) bool {
	return contains(routeAccess[route], role)
}

// CanPerform reports whether the role may perform the action on the
// resource. Admin is always allowed; view resolves to the route table entry
// for the resource's page.
func CanPerform(role models.UserRole, resource Resource, action Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	switch action {
	case ActionView:
		return CanAccessRoute(role, string(resource))
	case ActionCreate:
		return contains(createGrants[resource], role)
	case ActionUpdate:
		return contains(updateGrants[resource], role)
	case ActionDelete:
		return contains(deleteGrants[resource], role)
	}
	return false
}

// RequirePermission rejects the request with 403 before the handler runs
// unless the principal's role is granted the action. Mutating endpoints are
// wrapped in this so a denial causes no side effect.
func RequirePermission(resource Resource, action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role information unavailable")
		}
		if !CanPerform(role, resource, action) {
			return fiber.NewError(fiber.StatusForbidden, "You do not have permission to perform this action")
		}
		return c.Next()
	}
}

// RequireRoute rejects the request with 403 unless the principal's role may
// access the page the endpoint group belongs to.
func RequireRoute(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role information unavailable")
		}
		if !CanAccessRoute(role, route) {
			return fiber.NewError(fiber.StatusForbidden, "You do not have access to this resource")
		}
		return c.Next()
	}
}

// Tables is the wire form of the decision tables served to the frontend.
type Tables struct {
	Routes  map[string][]models.UserRole            `json:"routes"`
	Actions map[Resource]map[Action][]models.UserRole `json:"actions"`
}

// Snapshot returns a deep copy of the decision tables so callers cannot
// mutate policy. Admin is included explicitly to make the structure
// self-contained for the UI.
func Snapshot() Tables {
	t := Tables{
		Routes:  make(map[string][]models.UserRole, len(routeAccess)),
		Actions: make(map[Resource]map[Action][]models.UserRole, len(Resources)),
	}
	for route, roles := range routeAccess {
		t.Routes[route] = append([]models.UserRole(nil), roles...)
	}
	for _, res := range Resources {
		actions := make(map[Action][]models.UserRole, len(Actions))
		for _, act := range Actions {
			var granted []models.UserRole
			for _, role := range []models.UserRole{models.RoleAdmin, models.RoleManager, models.RoleWorker, models.RoleVeterinarian} {
				if CanPerform(role, res, act) {
					granted = append(granted, role)
				}
			}
			actions[act] = granted
		}
		t.Actions[res] = actions
	}
	return t
}

func contains(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
