package capi

import (
	"fmt"
	"strings"
	"time"
)

// Command is a lifecycle transition requested by an operator.
type Command string

// Supported commands.
const (
	CommandStart   Command = "START"
	CommandStop    Command = "STOP"
	CommandRestart Command = "RESTART"
	CommandDelete  Command = "DELETE"
)

// ParseCommand normalizes a user-supplied command name.
func ParseCommand(s string) (Command, error) {
	switch cmd := Command(strings.ToUpper(strings.TrimSpace(s))); cmd {
	case CommandStart, CommandStop, CommandRestart, CommandDelete:
		return cmd, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCommand, s)
	}
}

// Outcome is the terminal state of an operation that did not fail.
type Outcome string

// Operation outcomes. Failures are reported as errors, not outcomes.
const (
	// OutcomeConverged means the runtime state matched the command.
	OutcomeConverged Outcome = "converged"
	// OutcomeTimedOut means the attempt budget ran out; the command may still converge.
	OutcomeTimedOut Outcome = "timed_out"
	// OutcomeCancelled means the caller's context ended while polling.
	OutcomeCancelled Outcome = "cancelled"
)

// Result describes how a lifecycle command ended.
type Result struct {
	ID       string        `json:"id"                 yaml:"id"`
	Command  Command       `json:"command"            yaml:"command"`
	Target   string        `json:"target"             yaml:"target"`
	Outcome  Outcome       `json:"outcome"            yaml:"outcome"`
	Expected string        `json:"expected,omitempty" yaml:"expected,omitempty"`
	Observed string        `json:"observed,omitempty" yaml:"observed,omitempty"`
	Attempts int           `json:"attempts"           yaml:"attempts"`
	Elapsed  time.Duration `json:"elapsed"            yaml:"elapsed"`
}

// AppKey identifies an application by its human-meaningful names.
type AppKey struct {
	Org   string `json:"org"   yaml:"org"`
	Space string `json:"space" yaml:"space"`
	App   string `json:"app"   yaml:"app"`
}

// String implements fmt.Stringer.
func (k AppKey) String() string {
	return k.Org + "/" + k.Space + "/" + k.App
}

// Metadata is the v2 resource envelope metadata.
type Metadata struct {
	GUID      string `json:"guid"                 yaml:"guid"`
	URL       string `json:"url,omitempty"        yaml:"url,omitempty"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Resource is a v2 resource envelope.
type Resource[T any] struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Entity   T        `json:"entity"   yaml:"entity"`
}

// OrganizationEntity is the entity part of an organization.
type OrganizationEntity struct {
	Name   string `json:"name"             yaml:"name"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// SpaceEntity is the entity part of a space.
type SpaceEntity struct {
	Name             string `json:"name"              yaml:"name"`
	OrganizationGUID string `json:"organization_guid" yaml:"organization_guid"`
}

// AppEntity is the entity part of an application.
type AppEntity struct {
	Name      string `json:"name"                yaml:"name"`
	SpaceGUID string `json:"space_guid"          yaml:"space_guid"`
	State     string `json:"state"               yaml:"state"`
	Instances int    `json:"instances,omitempty" yaml:"instances,omitempty"`
}

// DomainEntity is the entity part of a domain.
type DomainEntity struct {
	Name string `json:"name" yaml:"name"`
}

// RouteEntity is the entity part of a route.
type RouteEntity struct {
	Host       string `json:"host"           yaml:"host"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	DomainGUID string `json:"domain_guid"    yaml:"domain_guid"`
	SpaceGUID  string `json:"space_guid"     yaml:"space_guid"`
}

// Organization is a v2 organization resource.
type Organization = Resource[OrganizationEntity]

// Space is a v2 space resource.
type Space = Resource[SpaceEntity]

// App is a v2 application resource.
type App = Resource[AppEntity]

// Domain is a v2 domain resource.
type Domain = Resource[DomainEntity]

// Route is a v2 route resource.
type Route = Resource[RouteEntity]
