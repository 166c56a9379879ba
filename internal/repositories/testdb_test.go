package repositories

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"runmind/internal/infra"
	"runmind/internal/models/db_models"
)

const testDBPrefix = "testonlydb_"

// createTempDB creates and migrates a throwaway database next to the one named
// by TEST_POSTGRES_URL and drops it when the test ends. Tests are skipped when
// the variable is not set.
func createTempDB(t *testing.T) *gorm.DB {
	t.Helper()
	adminURL := os.Getenv("TEST_POSTGRES_URL")
	if adminURL == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	admin, err := infra.InitPostgresql(adminURL)
	require.NoError(t, err)

	name := testDBPrefix + uuid.NewString()[:8]
	require.NoError(t, admin.Exec("CREATE DATABASE "+name).Error)

	u, err := url.Parse(adminURL)
	require.NoError(t, err)
	u.Path = "/" + name
	db, err := infra.InitPostgresql(u.String())
	require.NoError(t, err)

	t.Cleanup(func() {
		// The database cannot be dropped while connections are open.
		infra.ClosePostgresql(db)
		admin.Exec("DROP DATABASE IF EXISTS " + name)
		infra.ClosePostgresql(admin)
	})

	require.NoError(t, infra.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) db_models.User {
	t.Helper()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@runmind.test"
	hash := "hash"
	user := db_models.User{Name: name, Email: &email, PasswordHash: &hash, Role: role}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), &user))
	return user
}
