package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("GIGLEDGER_TEST_DIR", "/tmp/ledger")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty passes through", in: "", want: ""},
		{name: "plain path unchanged", in: "/var/data/records.json", want: "/var/data/records.json"},
		{name: "tilde expands", in: "~/records.json", want: filepath.Join(home, "records.json")},
		{name: "bare tilde expands", in: "~", want: home},
		{name: "env var expands", in: "$GIGLEDGER_TEST_DIR/records.json", want: "/tmp/ledger/records.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
