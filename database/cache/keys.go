package cache

import "fmt"

const (
	mineKeyPrefix     = "bookings:mine:"
	adminKeyPrefix    = "bookings:admin:"
	packagesKeyPrefix = "packages:list:"
)

// MineKey is the cache key for one page of a user's own bookings.
func MineKey(userID string, page, limit int) string {
	return fmt.Sprintf("%s%s:p%d:l%d", mineKeyPrefix, userID, page, limit)
}

// MineScope covers every cached page for one user.
func MineScope(userID string) string {
	return mineKeyPrefix + userID + ":"
}

// AdminKey is the cache key for one admin list query. The caller supplies a
// canonical serialization of the filter so equal queries share an entry.
func AdminKey(canonicalQuery string) string {
	return adminKeyPrefix + canonicalQuery
}

// AdminScope covers the entire admin list. Admin filters are too varied to
// target precisely, so mutations drop the whole prefix.
func AdminScope() string {
	return adminKeyPrefix
}

// PackagesKey is the cache key for one page of the public package list.
// Packages are written out of band, so these entries expire by TTL only.
func PackagesKey(page, limit int) string {
	return fmt.Sprintf("%sp%d:l%d", packagesKeyPrefix, page, limit)
}
