package database

import (
	iofs "io/fs"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyflow/core"
	"github.com/trezcool/studyflow/fs"
)

func TestDSN(t *testing.T) {
	conf := &core.Config{Database: core.DatabaseConfig{
		Engine:        "postgres",
		Host:          "db.local",
		Port:          "5433",
		Name:          "studyflow",
		User:          "app",
		Password:      "s3cret",
		AdminUser:     "root",
		AdminPassword: "toor",
	}}

	u, err := url.Parse(DSN(conf.Database.Name, false, conf))
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.local:5433", u.Host)
	assert.Equal(t, "/studyflow", u.Path)
	assert.Equal(t, "app", u.User.Username())
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	assert.Equal(t, "utc", u.Query().Get("timezone"))

	conf.Database.DisableTLS = true
	u, err = url.Parse(DSN(maintenanceDB, true, conf))
	require.NoError(t, err)
	assert.Equal(t, "root", u.User.Username())
	pwd, _ := u.User.Password()
	assert.Equal(t, "toor", pwd)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))

	conf.Database.AdminUser = ""
	u, err = url.Parse(DSN(maintenanceDB, true, conf))
	require.NoError(t, err)
	assert.Equal(t, "app", u.User.Username())
}

func TestMigrations_embedded(t *testing.T) {
	entries, err := iofs.ReadDir(appfs.FS, MigrationsDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"00001_create_courses.sql", "00002_create_assignments.sql"}, names)
}
