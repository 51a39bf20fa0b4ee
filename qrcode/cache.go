package qrcode

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"lifetag/models"
)

// DefaultCacheSize bounds the generator cache to one entry per recently
// encoded profile.
const DefaultCacheSize = 512

// Result is the outcome of a Generate call. FromCache marks hits for
// observability.
type Result struct {
	QRString    string           `json:"qrString"`
	Data        *EmergencyQRData `json:"data"`
	FromCache   bool             `json:"fromCache"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

type cacheEntry struct {
	qrString    string
	data        *EmergencyQRData
	hash        uint64
	generatedAt time.Time
}

// Generator encodes profiles into QR strings with change detection: the
// encoded string is memoized per profile id, keyed by a structural hash of
// the exact fields that influence the output. The mutex serializes the
// lookup-or-encode path so two concurrent calls for one profile cannot
// interleave a stale write after a fresh one.
type Generator struct {
	extractor *Extractor

	mu    sync.Mutex
	cache *lru.Cache
}

// NewGenerator creates a generator with an LRU-bounded cache. A size of zero
// or less selects DefaultCacheSize.
func NewGenerator(cacheSize int) *Generator {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New(cacheSize)
	return &Generator{
		extractor: NewExtractor(),
		cache:     cache,
	}
}

// NewGeneratorWithClock injects a clock for tests.
func NewGeneratorWithClock(cacheSize int, now func() time.Time) *Generator {
	g := NewGenerator(cacheSize)
	g.extractor = NewExtractorWithClock(now)
	return g
}

// Generate returns the QR encoding for the profile, serving the cached
// string when the relevant fields are unchanged and forceRefresh is false.
func (g *Generator) Generate(user *models.User, opts Options, forceRefresh bool) Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := cacheKey(user)
	hash := contentHash(user, opts)

	if !forceRefresh {
		if v, ok := g.cache.Get(key); ok {
			entry := v.(*cacheEntry)
			if entry.hash == hash {
				return Result{
					QRString:    entry.qrString,
					Data:        entry.data,
					FromCache:   true,
					GeneratedAt: entry.generatedAt,
				}
			}
		}
	}

	data := g.extractor.Extract(user, opts)
	qrString := Encode(data)

	entry := &cacheEntry{
		qrString:    qrString,
		data:        data,
		hash:        hash,
		generatedAt: g.extractor.now(),
	}
	g.cache.Add(key, entry)

	return Result{
		QRString:    qrString,
		Data:        data,
		FromCache:   false,
		GeneratedAt: entry.generatedAt,
	}
}

// Invalidate drops the cached encoding for a profile.
func (g *Generator) Invalidate(user *models.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cache.Remove(cacheKey(user))
}

// ShouldRegenerate decodes the currently displayed string and compares its
// emergency-relevant fields against a fresh extraction of the profile. Any
// difference, or an undecodable current string, signals regeneration.
func (g *Generator) ShouldRegenerate(currentQR string, user *models.User, opts Options) bool {
	decoded := Decode(currentQR)
	if decoded == nil {
		return true
	}
	fresh := g.extractor.Extract(user, opts)
	return !emergencyFieldsEqual(decoded, fresh)
}

func emergencyFieldsEqual(decoded, fresh *EmergencyQRData) bool {
	if decoded.Name != fresh.Name || decoded.BloodType != fresh.BloodType {
		return false
	}
	if len(decoded.Allergies) != len(fresh.Allergies) {
		return false
	}
	for i := range decoded.Allergies {
		if decoded.Allergies[i] != fresh.Allergies[i] {
			return false
		}
	}
	// The decoded note went through the machine-section truncation; apply
	// the same bound to the fresh side before comparing.
	if decoded.EmergencyNote != truncateWithEllipsis(fresh.EmergencyNote, noteMachineLimit) {
		return false
	}
	dc, fc := decoded.EmergencyContact, fresh.EmergencyContact
	if (dc == nil) != (fc == nil) {
		return false
	}
	if dc != nil && (dc.Name != fc.Name || dc.Phone != fc.Phone || dc.Relationship != fc.Relationship) {
		return false
	}
	return true
}

func cacheKey(user *models.User) string {
	if !user.ID.IsZero() {
		return user.ID.Hex()
	}
	return user.Email
}

// contentHash computes an FNV-1a hash over exactly the fields that feed the
// encoder, so unrelated profile changes never invalidate the cache.
func contentHash(user *models.User, opts Options) uint64 {
	h := fnv.New64a()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	write(user.FullName())
	write(user.MedicalInfo.BloodType)
	for _, a := range user.MedicalInfo.Allergies {
		write(a)
	}
	write(user.MedicalInfo.EmergencyNote)
	for _, c := range user.EmergencyContacts {
		write(c.Name)
		write(c.Phone)
		write(c.Relationship)
		write(strconv.FormatBool(c.IsPrimary))
	}
	write(strconv.FormatBool(user.Privacy.RequirePassword))
	write(user.ID.Hex())
	write(fmt.Sprintf("%t|%t", opts.EmergencyOnly, opts.IncludeProfileID))

	return h.Sum64()
}
