// internal/seed/seed_test.go
package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"workgate/internal/auth"
	"workgate/internal/menu"
	"workgate/pkg/tenants"
)

const sampleSeed = `
tenants:
  - code: AD1000
    name: Head Office
    employees:
      - userId: alice
        name: Alice
        deptCode: D100
        password: s3cret
        passwordChangedAt: "20260301"
        authorities: [USER]
      - userId: bob
        name: Bob
        passwordHash: "$2a$04$precomputedprecomputedpreco"
        retired: true
    menus:
      - menuId: FW0001
        name: Dashboard
        level: 1
        order: 1
      - menuId: FW0101
        name: Widgets
        parentMenuId: FW0001
        level: 2
        order: 1
        active: false
    grants:
      - authority: USER
        menus: [FW0001, FW0101]
`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeSeed(t))
	require.NoError(t, err)
	require.Len(t, f.Tenants, 1)

	tenant := f.Tenants[0]
	assert.Equal(t, "AD1000", tenant.Code)
	require.Len(t, tenant.Employees, 2)
	assert.Equal(t, []string{"USER"}, tenant.Employees[0].Authorities)
	assert.True(t, tenant.Employees[1].Retired)

	require.Len(t, tenant.Menus, 2)
	assert.True(t, tenant.Menus[0].IsActive())
	assert.False(t, tenant.Menus[1].IsActive())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestApplyMemory(t *testing.T) {
	f, err := Load(writeSeed(t))
	require.NoError(t, err)

	registry := tenants.NewMemoryRegistry()
	credentials := auth.NewMemoryStore()
	menus := menu.NewMemoryStore()
	hasher := auth.BcryptHasher{Cost: bcrypt.MinCost}
	require.NoError(t, ApplyMemory(f, registry, credentials, menus, hasher, zap.NewNop().Sugar()))

	ctx := context.Background()

	tenant, err := registry.Find(ctx, "AD1000")
	require.NoError(t, err)
	assert.Equal(t, "Head Office", tenant.Name)
	assert.True(t, tenant.Active)

	// Plain password is hashed at load time and verifies.
	cred, err := credentials.FindCredential(ctx, "AD1000", "alice")
	require.NoError(t, err)
	assert.True(t, hasher.Verify(cred.PasswordHash, "s3cret"))
	assert.Equal(t, "20260301", cred.PasswordChangedAt)

	// Pre-hashed value is stored verbatim.
	cred, err = credentials.FindCredential(ctx, "AD1000", "bob")
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$precomputedprecomputedpreco", cred.PasswordHash)
	assert.True(t, cred.Retired)

	auths, err := credentials.FindAuthorities(ctx, "AD1000", "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"USER"}, auths)

	ids, err := credentials.FindAccessibleMenuIDs(ctx, "AD1000", []string{"USER"})
	require.NoError(t, err)
	assert.Equal(t, []string{"FW0001", "FW0101"}, ids)

	// Inactive menus are granted but filtered out of the visible listing.
	visible, err := menus.FindAccessibleMenus(ctx, "AD1000", []string{"USER"})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "FW0001", visible[0].MenuID)
}
