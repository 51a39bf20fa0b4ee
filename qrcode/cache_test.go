package qrcode

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifetag/models"
)

func TestGenerator_CacheHitOnUnchangedProfile(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	first := g.Generate(user, opts, false)
	require.False(t, first.FromCache)

	second := g.Generate(user, opts, false)
	require.True(t, second.FromCache)
	require.Equal(t, first.QRString, second.QRString)
	require.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestGenerator_InvalidatesOnRelevantFieldChange(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	first := g.Generate(user, opts, false)

	user.MedicalInfo.Allergies = append(user.MedicalInfo.Allergies, "latex")
	second := g.Generate(user, opts, false)

	require.False(t, second.FromCache)
	require.NotEqual(t, first.QRString, second.QRString)
	require.Contains(t, second.QRString, "latex")
}

func TestGenerator_UnrelatedFieldChangeStaysCached(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	g.Generate(user, opts, false)

	// Fields outside the structural hash must not invalidate
	user.Email = "new@example.com"
	user.DeviceToken = "tok-2"
	user.PersonalInfo.DateOfBirth = "1990-01-01"

	second := g.Generate(user, opts, false)
	require.True(t, second.FromCache)
}

func TestGenerator_ForceRefreshBypassesCache(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	first := g.Generate(user, opts, false)
	forced := g.Generate(user, opts, true)

	require.False(t, forced.FromCache)
	require.Equal(t, first.QRString, forced.QRString, "content unchanged, output identical")
}

func TestGenerator_OptionsChangeInvalidates(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()

	withID := g.Generate(user, Options{IncludeProfileID: true}, false)
	withoutID := g.Generate(user, Options{}, false)

	require.False(t, withoutID.FromCache)
	require.NotEqual(t, withID.QRString, withoutID.QRString)
}

func TestGenerator_DistinctProfilesDistinctEntries(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())

	a := testUser()
	b := testUser()
	b.ID = primitive.NewObjectID()
	b.PersonalInfo.FirstName = "Bob"

	ra := g.Generate(a, Options{}, false)
	rb := g.Generate(b, Options{}, false)
	require.NotEqual(t, ra.QRString, rb.QRString)

	require.True(t, g.Generate(a, Options{}, false).FromCache)
	require.True(t, g.Generate(b, Options{}, false).FromCache)
}

func TestGenerator_LRUBoundEvictsOldest(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(2, testClock())

	users := []*models.User{testUser(), testUser(), testUser()}
	for i, u := range users {
		u.ID = primitive.NewObjectID()
		u.PersonalInfo.FirstName = string(rune('A' + i))
		g.Generate(u, Options{}, false)
	}

	// Capacity 2: the first profile was evicted, the last two are cached
	require.False(t, g.Generate(users[0], Options{}, false).FromCache)
	require.True(t, g.Generate(users[2], Options{}, false).FromCache)
}

func TestGenerator_ConcurrentGenerateIsSafe(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	want := g.Generate(user, opts, false).QRString

	results := make(chan string, 16)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- g.Generate(user, opts, false).QRString
		}()
	}
	wg.Wait()
	close(results)

	for got := range results {
		require.Equal(t, want, got)
	}
}

func TestShouldRegenerate(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	current := g.Generate(user, opts, false).QRString
	require.False(t, g.ShouldRegenerate(current, user, opts))

	user.MedicalInfo.Allergies = append(user.MedicalInfo.Allergies, "latex")
	require.True(t, g.ShouldRegenerate(current, user, opts))

	require.True(t, g.ShouldRegenerate("not a qr code at all", user, opts))
}

func TestGenerator_Invalidate(t *testing.T) {
	t.Parallel()

	g := NewGeneratorWithClock(0, testClock())
	user := testUser()
	opts := DefaultOptions(user)

	g.Generate(user, opts, false)
	g.Invalidate(user)
	require.False(t, g.Generate(user, opts, false).FromCache)
}
