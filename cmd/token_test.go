package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufukozendev/noobgg-sub002/config"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestTokenCmd_IssuesVerifiableToken(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "cli-test-secret")
	t.Setenv("AUTH_ISSUER", "noobgg-cli")

	out, err := runRoot(t, "token", "--subject", "user-7", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := service.NewTokenService(config.AuthConfig{JWTSecret: "cli-test-secret", Issuer: "noobgg-cli"}).Verify(out)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.Subject)
}

func TestTokenCmd_Rejections(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{name: "missing subject", env: "development", args: []string{"token"}},
		{name: "production", env: "production", args: []string{"token", "--subject", "user-7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("AUTH_JWT_SECRET", "cli-test-secret")

			_, err := runRoot(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed", "token"})
}
