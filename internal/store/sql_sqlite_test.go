package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{name: "empty", dsn: "", want: ""},
		{name: "memory", dsn: ":memory:", want: ":memory:?_foreign_keys=on"},
		{name: "plain file", dsn: "keeper.db", want: "keeper.db?_foreign_keys=on"},
		{name: "file with params", dsn: "file:keeper.db?cache=shared", want: "file:keeper.db?cache=shared&_foreign_keys=on"},
		{name: "explicit setting kept", dsn: "keeper.db?_foreign_keys=off", want: "keeper.db?_foreign_keys=off"},
		{name: "short alias kept", dsn: "keeper.db?_fk=1", want: "keeper.db?_fk=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func TestSQLite_ForeignKeysOnPooledConnections(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := testContext()

	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	var enabled int
	require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
}
