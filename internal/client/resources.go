package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// Organizations lists every organization.
func (c *Client) Organizations(ctx context.Context) ([]capi.Organization, error) {
	return listTyped[capi.OrganizationEntity](ctx, c, constants.OrganizationsPath, "organizations")
}

// Spaces lists the spaces of an organization.
func (c *Client) Spaces(ctx context.Context, orgGUID string) ([]capi.Space, error) {
	path := constants.OrganizationsPath + "/" + orgGUID + "/spaces"

	return listTyped[capi.SpaceEntity](ctx, c, path, "spaces")
}

// Apps lists the applications of a space.
func (c *Client) Apps(ctx context.Context, spaceGUID string) ([]capi.App, error) {
	path := constants.SpacesPath + "/" + spaceGUID + "/apps"

	return listTyped[capi.AppEntity](ctx, c, path, "apps")
}

// Domains lists every domain.
func (c *Client) Domains(ctx context.Context) ([]capi.Domain, error) {
	return listTyped[capi.DomainEntity](ctx, c, constants.DomainsPath, "domains")
}

// Routes lists every route.
func (c *Client) Routes(ctx context.Context) ([]capi.Route, error) {
	return listTyped[capi.RouteEntity](ctx, c, constants.RoutesPath, "routes")
}

// UpdateAppState sets the desired state of an application.
func (c *Client) UpdateAppState(ctx context.Context, appGUID, state string) (*capi.App, error) {
	path := constants.AppsPath + "/" + appGUID

	body, err := c.Put(ctx, path, map[string]string{"state": state})
	if err != nil {
		return nil, err
	}

	var app capi.App

	// Some deployments answer with an empty body.
	if len(body) == 0 {
		app.Metadata.GUID = appGUID
		app.Entity.State = state

		return &app, nil
	}

	err = json.Unmarshal(body, &app)
	if err != nil {
		return nil, fmt.Errorf("parsing app response: %w", err)
	}

	return &app, nil
}

// DeleteRoute deletes a route.
func (c *Client) DeleteRoute(ctx context.Context, routeGUID string) error {
	return c.Delete(ctx, constants.RoutesPath+"/"+routeGUID)
}

func listTyped[T any](ctx context.Context, c *Client, path, kind string) ([]capi.Resource[T], error) {
	records, err := c.List(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}

	resources := make([]capi.Resource[T], 0, len(records))

	for _, record := range records {
		var resource capi.Resource[T]

		err = json.Unmarshal(record, &resource)
		if err != nil {
			return nil, fmt.Errorf("parsing %s list: %w", kind, err)
		}

		resources = append(resources, resource)
	}

	return resources, nil
}
