package operation

import (
	"context"
	"strings"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// resolveApp walks organization, space and application by name.
func (c *Controller) resolveApp(ctx context.Context, key capi.AppKey) (string, error) {
	orgs, err := c.client.Organizations(ctx)
	if err != nil {
		return "", err
	}

	orgGUID, ok := findByName(orgs, key.Org, func(e capi.OrganizationEntity) string { return e.Name })
	if !ok {
		return "", &capi.NotFoundError{Kind: "organization", Name: key.Org}
	}

	spaces, err := c.client.Spaces(ctx, orgGUID)
	if err != nil {
		return "", err
	}

	spaceGUID, ok := findByName(spaces, key.Space, func(e capi.SpaceEntity) string { return e.Name })
	if !ok {
		return "", &capi.NotFoundError{Kind: "space", Name: key.Org + "/" + key.Space}
	}

	apps, err := c.client.Apps(ctx, spaceGUID)
	if err != nil {
		return "", err
	}

	appGUID, ok := findByName(apps, key.App, func(e capi.AppEntity) string { return e.Name })
	if !ok {
		return "", &capi.NotFoundError{Kind: "app", Name: key.String()}
	}

	return appGUID, nil
}

// resolveRoute finds the route whose host and domain join to hostAndDomain.
// A route without a host matches its bare domain.
func (c *Controller) resolveRoute(ctx context.Context, hostAndDomain string) (string, error) {
	target := strings.ToLower(strings.TrimSpace(hostAndDomain))

	domains, err := c.client.Domains(ctx)
	if err != nil {
		return "", err
	}

	domainNames := make(map[string]string, len(domains))
	for _, domain := range domains {
		domainNames[domain.Metadata.GUID] = domain.Entity.Name
	}

	routes, err := c.client.Routes(ctx)
	if err != nil {
		return "", err
	}

	for _, route := range routes {
		domainName, ok := domainNames[route.Entity.DomainGUID]
		if !ok {
			continue
		}

		fqdn := domainName
		if route.Entity.Host != "" {
			fqdn = route.Entity.Host + "." + domainName
		}

		if strings.EqualFold(fqdn, target) {
			return route.Metadata.GUID, nil
		}
	}

	return "", &capi.NotFoundError{Kind: "route", Name: hostAndDomain}
}

func findByName[T any](resources []capi.Resource[T], name string, nameOf func(T) string) (string, bool) {
	for _, resource := range resources {
		if nameOf(resource.Entity) == name {
			return resource.Metadata.GUID, true
		}
	}

	return "", false
}
