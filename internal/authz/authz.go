// Package authz decides whether an actor may perform an action on a resource.
// Rules live in an embedded casbin RBAC model where ADMIN inherits every USER permission.
package authz

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/agora/internal/entities"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

var log = logrus.WithField("layer", "authz")

// Resource ...
type Resource string

// Resources.
const (
	Post         Resource = "post"
	Comment      Resource = "comment"
	Like         Resource = "like"
	Favorite     Resource = "favorite"
	Subscription Resource = "subscription"
	Category     Resource = "category"
	User         Resource = "user"
)

// Action ...
type Action string

// Actions.
const (
	Create       Action = "create"
	Update       Action = "update"
	Delete       Action = "delete"
	ReadInactive Action = "read_inactive"
	ChangeRole   Action = "change_role"
)

// Policy is an authorization predicate.
type Policy interface {
	// Allowed returns true if actor may perform action on resource. isOwner tells whether the actor owns the resource.
	Allowed(actor entities.Actor, resource Resource, action Action, isOwner bool) bool
}

type enforcer struct {
	e *casbin.SyncedEnforcer
}

// New creates a policy from the embedded model and rules.
func New() (Policy, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := loadPolicy(e, embeddedPolicy); err != nil {
		return nil, err
	}

	return enforcer{e: e}, nil
}

// loadPolicy parses policy csv lines into the enforcer.
func loadPolicy(e *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		rule := make([]interface{}, 0, len(parts)-1)
		for _, v := range parts[1:] {
			rule = append(rule, strings.TrimSpace(v))
		}

		switch strings.TrimSpace(parts[0]) {
		case "p":
			if _, err := e.AddPolicy(rule...); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", rule, err)
			}
		case "g":
			if _, err := e.AddGroupingPolicy(rule...); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
			}
		default:
			return fmt.Errorf("unknown policy type in line %q", line)
		}
	}

	return nil
}

func (p enforcer) Allowed(actor entities.Actor, resource Resource, action Action, isOwner bool) bool {
	if !actor.Role.Valid() {
		return false
	}

	ok, err := p.e.Enforce(string(actor.Role), string(resource), string(action), strconv.FormatBool(isOwner))
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"role":     actor.Role,
			"resource": resource,
			"action":   action,
		}).Error("failed to enforce policy")
		return false
	}

	return ok
}
