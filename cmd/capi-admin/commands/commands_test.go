package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
	"github.com/fivetwenty-io/capi-admin/pkg/capi/mocks"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

var records = []json.RawMessage{
	json.RawMessage(`{"metadata":{"guid":"o1"},"entity":{"name":"dev"}}`),
	json.RawMessage(`{"id":"u1","userName":"admin"}`),
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand("1.2.3", "abc", "today")

	assert.Equal(t, "capi-admin", root.Use)

	for _, name := range []string{"version", "list", "apps", "routes", "serve"} {
		assert.NotNil(t, findSubcommand(root, name), "missing command %s", name)
	}

	for _, flag := range []string{"api", "username", "password", "output", "poll-interval", "poll-attempts", "nats"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}

	apps := findSubcommand(root, "apps")
	require.NotNil(t, apps)

	for _, name := range []string{"start", "stop", "restart"} {
		sub := findSubcommand(apps, name)
		require.NotNil(t, sub, "missing apps %s", name)
		assert.Equal(t, name+" ORG SPACE APP", sub.Use)
		require.Error(t, sub.Args(sub, []string{"dev", "staging"}))
	}

	routes := findSubcommand(root, "routes")
	require.NotNil(t, routes)
	assert.NotNil(t, findSubcommand(routes, "delete"))

	list := findSubcommand(root, "list")
	require.NotNil(t, list)
	assert.NotNil(t, list.Flags().Lookup("identity"))

	serve := findSubcommand(root, "serve")
	require.NotNil(t, serve)
	assert.NotNil(t, serve.Flags().Lookup("listen"))
}

func TestVersionCommand(t *testing.T) {
	viper.Set("output", "json")
	t.Cleanup(func() { viper.Set("output", "") })

	cmd := NewVersionCommand("1.2.3", "abc", "today")

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.RunE(cmd, nil))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc", info.Commit)
	assert.NotEmpty(t, info.Go)
}

func TestRunList(t *testing.T) {
	t.Parallel()

	t.Run("control plane as table", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mocks.NewMockResourceClient(ctrl)
		client.EXPECT().List(gomock.Any(), "v2/organizations").Return(records, nil)

		var out bytes.Buffer
		require.NoError(t, runList(context.Background(), &out, client, "v2/organizations", false, "table"))

		assert.Contains(t, out.String(), "o1")
		assert.Contains(t, out.String(), "dev")
		assert.Contains(t, out.String(), "u1")
		assert.Contains(t, out.String(), "admin")
		assert.Contains(t, out.String(), "2 record(s)")
	})

	t.Run("identity service as json", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mocks.NewMockResourceClient(ctrl)
		client.EXPECT().ListIdentity(gomock.Any(), "Users").Return(records, nil)

		var out bytes.Buffer
		require.NoError(t, runList(context.Background(), &out, client, "Users", true, "json"))

		var decoded []map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "admin", decoded[1]["userName"])
	})

	t.Run("yaml decodes records", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mocks.NewMockResourceClient(ctrl)
		client.EXPECT().List(gomock.Any(), "v2/organizations").Return(records, nil)

		var out bytes.Buffer
		require.NoError(t, runList(context.Background(), &out, client, "v2/organizations", false, "yaml"))

		var decoded []map[string]interface{}
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "u1", decoded[1]["id"])
	})

	t.Run("errors are returned", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		client := mocks.NewMockResourceClient(ctrl)
		client.EXPECT().List(gomock.Any(), "v2/apps").Return(nil, capi.ErrPaginationCycle)

		var out bytes.Buffer
		require.ErrorIs(t, runList(context.Background(), &out, client, "v2/apps", false, "table"), capi.ErrPaginationCycle)
	})
}

func TestRunManageApplication(t *testing.T) {
	t.Parallel()

	t.Run("prints the result", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		ops := mocks.NewMockOperations(ctrl)
		ops.EXPECT().ManageApplication(gomock.Any(), capi.CommandRestart, "dev", "staging", "web").
			Return(&capi.Result{ID: "op-1", Command: capi.CommandRestart, Target: "dev/staging/web", Outcome: capi.OutcomeConverged, Expected: "STARTED", Observed: "STARTED", Attempts: 3, Elapsed: time.Second}, nil)

		var out bytes.Buffer
		require.NoError(t, runManageApplication(context.Background(), &out, ops, capi.CommandRestart, "dev", "staging", "web", "table"))

		assert.Contains(t, out.String(), "op-1")
		assert.Contains(t, out.String(), "converged")
		assert.Contains(t, out.String(), "STARTED")
	})

	t.Run("cancelled result is printed with the error", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		ops := mocks.NewMockOperations(ctrl)
		ops.EXPECT().ManageApplication(gomock.Any(), capi.CommandStop, "dev", "staging", "web").
			Return(&capi.Result{Command: capi.CommandStop, Target: "dev/staging/web", Outcome: capi.OutcomeCancelled}, context.Canceled)

		var out bytes.Buffer
		err := runManageApplication(context.Background(), &out, ops, capi.CommandStop, "dev", "staging", "web", "json")
		require.ErrorIs(t, err, context.Canceled)

		var result capi.Result
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, capi.OutcomeCancelled, result.Outcome)
	})

	t.Run("failure prints nothing", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		ops := mocks.NewMockOperations(ctrl)
		ops.EXPECT().ManageApplication(gomock.Any(), capi.CommandStart, "dev", "staging", "web").
			Return(nil, &capi.NotFoundError{Kind: "space", Name: "staging"})

		var out bytes.Buffer
		err := runManageApplication(context.Background(), &out, ops, capi.CommandStart, "dev", "staging", "web", "table")
		require.Error(t, err)
		assert.True(t, capi.IsNotFound(err))
		assert.Empty(t, out.String())
	})
}

func TestRunDeleteRoute(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ops := mocks.NewMockOperations(ctrl)
	ops.EXPECT().ManageRoute(gomock.Any(), capi.CommandDelete, "www.example.com").
		Return(&capi.Result{ID: "op-2", Command: capi.CommandDelete, Target: "www.example.com", Outcome: capi.OutcomeConverged}, nil)

	var out bytes.Buffer
	require.NoError(t, runDeleteRoute(context.Background(), &out, ops, "www.example.com", "yaml"))

	var result map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "op-2", result["id"])
	assert.Equal(t, "converged", result["outcome"])
}

func TestFirstString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "o1", firstString(records[0], guidFields))
	assert.Equal(t, "dev", firstString(records[0], nameFields))
	assert.Equal(t, "admin", firstString(records[1], nameFields))
	assert.Empty(t, firstString(json.RawMessage(`{}`), nameFields))
}
